package database

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sangkips/restaurant-pos/internal/config"
	"github.com/sangkips/restaurant-pos/internal/domain/entity"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// gormLogWriter forwards GORM's SQL trace to zerolog.
type gormLogWriter struct{}

func (gormLogWriter) Printf(format string, args ...interface{}) {
	log.Debug().Str("component", "gorm").Msgf(format, args...)
}

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	logLevel := logger.Warn
	if cfg.LogQueries {
		logLevel = logger.Info
	}

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger: logger.New(gormLogWriter{}, logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logLevel,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying SQL DB to set connection pool settings
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	log.Info().Str("host", cfg.Host).Str("database", cfg.Name).Msg("Connected to PostgreSQL")
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities. Unique indexes on
// customers.doc_number and sales(series, number) are created from the struct tags.
func AutoMigrate(db *gorm.DB) error {
	log.Info().Msg("Running database migrations")

	err := db.AutoMigrate(
		// Floor and staff
		&entity.User{},
		&entity.Table{},
		&entity.Product{},

		// Orders
		&entity.Order{},
		&entity.OrderItem{},

		// Checkout and sales ledger
		&entity.Customer{},
		&entity.Payment{},
		&entity.Sale{},
		&entity.ReceiptSequence{},

		// System entities
		&entity.IdempotencyKey{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Info().Msg("Database migrations completed")
	return nil
}
