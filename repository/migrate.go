package repository

import (
	"context"
	"fmt"

	"github.com/amirphl/restaurant-hub/migrations"
	"github.com/pressly/goose/v3"
	"gorm.io/gorm"
)

// RunMigrations applies the embedded goose migrations to the database behind db
func RunMigrations(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, sqlDB, "."); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	return nil
}
