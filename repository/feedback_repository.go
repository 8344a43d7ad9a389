package repository

import (
	"context"
	"fmt"
	"time"

	"food-store-api/models"

	"gorm.io/gorm"
)

type feedbackRepo struct {
	db *gorm.DB
}

func NewFeedbackRepository(db *gorm.DB) FeedbackRepository {
	return &feedbackRepo{db: db}
}

func (r *feedbackRepo) Create(ctx context.Context, orderID int, fb *models.Feedback) error {
	if fb.Rating < 1 || fb.Rating > 5 {
		return fmt.Errorf("%w: rating must be between 1 and 5", ErrInvalidInput)
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.First(&order, orderID).Error; err != nil {
			if notFound(err) {
				return ErrNotFound
			}
			return fmt.Errorf("failed to load order %d: %w", orderID, err)
		}

		// the placeholder id sent by clients is never stored
		fb.ID = 0
		fb.OrderID = order.ID
		if fb.CreateAt.IsZero() {
			fb.CreateAt = time.Now()
		}
		if err := tx.Create(fb).Error; err != nil {
			return fmt.Errorf("failed to create feedback: %w", err)
		}

		var foodIDs []int
		if err := tx.Model(&models.OrderItem{}).Where("order_id = ?", order.ID).Distinct().Pluck("food_id", &foodIDs).Error; err != nil {
			return fmt.Errorf("failed to list foods of order %d: %w", order.ID, err)
		}
		for _, foodID := range foodIDs {
			if err := refreshFoodRating(tx, foodID); err != nil {
				return err
			}
		}
		return nil
	})
}

// refreshFoodRating sets a food's rating to the mean of all feedback left on orders containing it
func refreshFoodRating(tx *gorm.DB, foodID int) error {
	ordersWithFood := tx.Model(&models.OrderItem{}).Select("order_id").Where("food_id = ?", foodID)

	var avg float64
	err := tx.Model(&models.Feedback{}).
		Select("COALESCE(AVG(rating), 0)").
		Where("order_id IN (?)", ordersWithFood).
		Scan(&avg).Error
	if err != nil {
		return fmt.Errorf("failed to average ratings of food %d: %w", foodID, err)
	}

	if err := tx.Model(&models.Food{}).Where("id = ?", foodID).Update("rating", avg).Error; err != nil {
		return fmt.Errorf("failed to store rating of food %d: %w", foodID, err)
	}
	return nil
}

func (r *feedbackRepo) GetByFoodID(ctx context.Context, foodID int) ([]models.Feedback, error) {
	db := r.db.WithContext(ctx)
	ordersWithFood := db.Model(&models.OrderItem{}).Select("order_id").Where("food_id = ?", foodID)

	feedbacks := []models.Feedback{}
	err := db.Where("order_id IN (?)", ordersWithFood).Order("create_at desc").Find(&feedbacks).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get feedbacks of food %d: %w", foodID, err)
	}
	return feedbacks, nil
}
