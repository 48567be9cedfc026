package database

import (
	"fmt"

	"weaponforge-be/internal/model"

	"gorm.io/gorm"
)

// Migrate brings the weapons table up to date. It is safe to run repeatedly.
func Migrate(db *gorm.DB) error {
	// gen_random_uuid() lives in pgcrypto before Postgres 13.
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto;`).Error; err != nil {
		return fmt.Errorf("create pgcrypto extension: %w", err)
	}

	if err := db.AutoMigrate(&model.Weapon{}); err != nil {
		return fmt.Errorf("automigrate weapons: %w", err)
	}

	return nil
}
