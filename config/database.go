package config

import (
	"bookmycuts-backend/models"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func ConnectDB() {
	db, err := gorm.Open(postgres.Open(AppConfig.DatabaseURL), &gorm.Config{})
	if err != nil {
		zap.L().Fatal("Failed to connect database", zap.Error(err))
	}

	DB = db
}

// Migrate creates or updates every table the service owns.
func Migrate() {
	DB.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`)
	if err := DB.AutoMigrate(
		&models.User{},
		&models.Shop{},
		&models.Barber{},
		&models.Service{},
		&models.Booking{},
		&models.BookingItem{},
		&models.NotificationTemplate{},
		&models.NotificationLog{},
	); err != nil {
		zap.L().Fatal("Failed to migrate database", zap.Error(err))
	}
}
