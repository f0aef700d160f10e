package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMiniredis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { SetClient(nil) })
	return mr
}

type fakePayload struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

func TestCacheAside_MissThenHit(t *testing.T) {
	setupMiniredis(t)
	ctx := context.Background()

	fetches := 0
	fetch := func(dest *fakePayload) func() error {
		return func() error {
			fetches++
			dest.ID = 7
			dest.Name = "zelda"
			return nil
		}
	}

	var got fakePayload
	err := CacheAside(ctx, "k1", &got, time.Minute, fetch(&got))
	require.NoError(t, err)
	assert.Equal(t, 1, fetches)
	assert.Equal(t, "zelda", got.Name)

	// Second read should be served from Redis without calling fetch.
	var again fakePayload
	err = CacheAside(ctx, "k1", &again, time.Minute, fetch(&again))
	require.NoError(t, err)
	assert.Equal(t, 1, fetches)
	assert.Equal(t, uint(7), again.ID)
}

func TestCacheAside_Expiry(t *testing.T) {
	mr := setupMiniredis(t)
	ctx := context.Background()

	var v fakePayload
	err := SetJSON(ctx, "k2", fakePayload{ID: 1, Name: "link"}, time.Minute)
	require.NoError(t, err)

	mr.FastForward(2 * time.Minute)

	found, err := GetJSON(ctx, "k2", &v)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestGetJSON_NilClientIsMiss(t *testing.T) {
	SetClient(nil)
	var v fakePayload
	found, err := GetJSON(context.Background(), "whatever", &v)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestInvalidate(t *testing.T) {
	setupMiniredis(t)
	ctx := context.Background()

	require.NoError(t, SetJSON(ctx, FeedFirstPageKey, fakePayload{ID: 2}, time.Minute))
	InvalidateFeed(ctx)

	var v fakePayload
	found, err := GetJSON(ctx, FeedFirstPageKey, &v)
	require.NoError(t, err)
	assert.False(t, found)
}
