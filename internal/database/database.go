package database

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/crimpd/crimpd-backend/internal/config"
	"github.com/crimpd/crimpd-backend/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func Connect(cfg *config.Config) error {
	var err error
	// TranslateError turns driver unique-violation errors into
	// gorm.ErrDuplicatedKey, which the interaction ledger relies on.
	DB, err = gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetMaxIdleConns(25)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)

	slog.Info("database connected")
	return nil
}

func Migrate() error {
	return DB.AutoMigrate(
		&models.Gym{},
		&models.Membership{},
		&models.User{},
		&models.RefreshToken{},
		&models.Route{},
		&models.Send{},
		&models.Favorite{},
		&models.Rating{},
		&models.GymFollow{},
		&models.SystemLog{},
	)
}

func Ping() error {
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}
