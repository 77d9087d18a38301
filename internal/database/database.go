package database

import (
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/reliefops/disaster-relief-api/internal/config"
	"github.com/reliefops/disaster-relief-api/internal/logger"
	"github.com/reliefops/disaster-relief-api/internal/models"
)

var DB *gorm.DB

func Connect(cfg *config.Config) error {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		cfg.DBUser,
		cfg.DBPassword,
		cfg.DBHost,
		cfg.DBPort,
		cfg.DBName,
	)

	var err error
	DB, err = gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	logger.L().Info("database connection established")
	return nil
}

func Migrate() error {
	if err := AutoMigrate(DB); err != nil {
		return err
	}
	logger.L().Info("database migrations completed")
	return nil
}

// AutoMigrate creates or updates the schema for every model. Exported
// separately so tests can migrate their own database instance.
func AutoMigrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Volunteer{},
		&models.Task{},
		&models.Assignment{},
		&models.Incident{},
		&models.DonationCategory{},
		&models.Donation{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

func GetDB() *gorm.DB {
	return DB
}

// SetDB sets the database instance (used for testing)
func SetDB(db *gorm.DB) {
	DB = db
}
