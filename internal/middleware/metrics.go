package middleware

import (
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// RedisErrors counts Redis command failures by operation so cache degradation
// is visible even though the API keeps serving from the database.
var RedisErrors = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "gamenexus_redis_errors_total",
		Help: "Total number of Redis command errors by operation",
	},
	[]string{"operation"},
)

// RateLimitRejections counts requests rejected by the rate limiter.
var RateLimitRejections = promauto.NewCounter(
	prometheus.CounterOpts{
		Name: "gamenexus_ratelimit_rejections_total",
		Help: "Total number of requests rejected by the rate limiter",
	},
)

var fiberProm *fiberprometheus.FiberPrometheus

// InitMetrics sets up the Prometheus HTTP metrics collector and returns it so
// the server can register the /metrics route.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	fiberProm = fiberprometheus.New(serviceName)
	return fiberProm
}

// MetricsMiddleware records per-request HTTP metrics. InitMetrics must be
// called first.
func MetricsMiddleware() fiber.Handler {
	if fiberProm == nil {
		return func(c *fiber.Ctx) error { return c.Next() }
	}
	return fiberProm.Middleware
}
