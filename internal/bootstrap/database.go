package bootstrap

import (
	"fmt"

	"gorm.io/gorm"

	"volunteer-marketplace-be/internal/config"
	"volunteer-marketplace-be/pkg/database"
)

// OpenDatabase connects to the configured driver.
func OpenDatabase(cfg config.DatabaseConfig) (*gorm.DB, error) {
	if cfg.Connection == "" {
		return nil, fmt.Errorf("DB_CONNECTION_STRING is empty")
	}
	if cfg.Driver == "sqlite" {
		return database.NewSQLiteDB(cfg.Connection)
	}

	pool := database.DefaultPoolConfig()
	if cfg.MaxOpenConns > 0 {
		pool.MaxOpenConns = cfg.MaxOpenConns
	}
	if cfg.MaxIdleConns > 0 {
		pool.MaxIdleConns = cfg.MaxIdleConns
	}
	if cfg.ConnMaxLifetime > 0 {
		pool.ConnMaxLifetime = cfg.ConnMaxLifetime
	}
	return database.NewGormDBFromDSN(cfg.Connection, pool)
}
