package repository

import (
	"errors"

	"food-store-api/models"

	"gorm.io/gorm"
)

// AutoMigrate creates or updates every table the store uses
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.FoodCategory{},
		&models.Food{},
		&models.FoodSize{},
		&models.Order{},
		&models.OrderItem{},
		&models.Feedback{},
	)
}

func notFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
