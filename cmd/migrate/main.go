package main

import (
	"log"

	"volunteer-marketplace-be/internal/bootstrap"
	"volunteer-marketplace-be/internal/config"
	"volunteer-marketplace-be/internal/model"
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

	log.Printf("Running AutoMigrate for %d tables (%s)...", len(model.All()), cfg.Database.Driver)
	if err := db.AutoMigrate(model.All()...); err != nil {
		log.Fatalf("Error: AutoMigrate failed: %v", err)
	}

	if cfg.Database.Driver == "postgres" {
		postMigrationSQL := []string{
			// One live campaign per project.
			`CREATE UNIQUE INDEX IF NOT EXISTS idx_featured_projects_live_project
			 ON featured_projects (project_public_id) WHERE status IN ('pending', 'approved');`,
		}
		for _, sql := range postMigrationSQL {
			if err := db.Exec(sql).Error; err != nil {
				log.Printf("Warn: Failed to execute post-migration SQL: %v", err)
			}
		}
	}

	log.Println("Success: Database migration completed.")
}
