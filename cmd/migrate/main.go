package main

import (
	"log"

	"weaponforge-be/internal/config"
	"weaponforge-be/pkg/database"
)

func main() {
	cfg := config.Load()
	if cfg.Database.Connection == "" {
		log.Fatal("Error: DATABASE_URL is not set")
	}

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection, cfg.Database.MaxConnections, cfg.IsProduction())
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Running migration for weapons...")
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Error: %v", err)
	}

	log.Println("Success: Database migration completed.")
}
