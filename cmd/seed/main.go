package main

import (
	"log"

	"volunteer-marketplace-be/internal/bootstrap"
	"volunteer-marketplace-be/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Error: invalid configuration: %v", err)
	}

	db, err := bootstrap.OpenDatabase(cfg.Database)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	SeedNotificationTypes(db)
}
