package database

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/sharath018/hotel-association-backend/config"
	"github.com/sharath018/hotel-association-backend/internal/auditlog"
	"github.com/sharath018/hotel-association-backend/internal/auth"
	"github.com/sharath018/hotel-association-backend/internal/event"
	"github.com/sharath018/hotel-association-backend/internal/hotel"
	"github.com/sharath018/hotel-association-backend/internal/news"
)

// Connect opens the postgres connection pool used by every repository.
func Connect(cfg *config.Config, logger *zap.Logger) (*gorm.DB, error) {
	level := gormlogger.Warn
	if cfg.IsDevelopment() {
		level = gormlogger.Info
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(level),
	})
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("postgres pool: %w", err)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	logger.Info("database connected", zap.String("host", cfg.DBHost), zap.String("db", cfg.DBName))
	return db, nil
}

// Migrate creates or updates the tables for every persisted model.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&auth.Profile{},
		&hotel.Application{},
		&auditlog.Activity{},
		&event.Event{},
		&news.Article{},
	)
}
