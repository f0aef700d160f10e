// Command main runs the database seeder for Game Nexus.
package main

import (
	"flag"
	"log"

	"gamenexus/internal/config"
	"gamenexus/internal/database"
	"gamenexus/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 15, "Number of users to create")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	randSrc := flag.Int64("rand", 1, "Random source for repeatable data")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	opts := seed.Options{Users: *numUsers, Wipe: *shouldClean, RandSrc: *randSrc}
	if err := seed.Seed(db, opts); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Println("All done. Every seeded user has the password: password123")
}
