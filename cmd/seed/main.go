package main

import (
	"context"
	"flag"
	"log"
	"time"

	"pinboard/internal/config"
	"pinboard/internal/database"
	"pinboard/internal/seed"
)

func main() {
	users := flag.Int("users", 10, "number of users to create")
	pins := flag.Int("pins", 5, "pins per user")
	randSeed := flag.Int64("seed", time.Now().UnixNano(), "random seed for reproducible data")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.Env == "production" || cfg.Env == "prod" {
		log.Fatal("Refusing to seed a production database")
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if err := seed.Run(ctx, db, seed.Options{
		Users:       *users,
		PinsPerUser: *pins,
		Seed:        *randSeed,
	}); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Printf("Seeded %d users with %d pins each. Login password: %s", *users, *pins, seed.DefaultPassword)
}
