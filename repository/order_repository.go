package repository

import (
	"context"
	"fmt"

	"food-store-api/models"

	"gorm.io/gorm"
)

type orderRepo struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepo{db: db}
}

// Place prices every line from the current food sizes and stores the order with
// snapshot items. Deleted or not AVAILABLE foods cannot be ordered.
func (r *orderRepo) Place(ctx context.Context, order *models.Order, lines []OrderLine) error {
	if len(lines) == 0 {
		return fmt.Errorf("%w: an order needs at least one item", ErrInvalidInput)
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var items []models.OrderItem
		var total float64

		for _, line := range lines {
			if line.Quantity < 1 {
				return fmt.Errorf("%w: quantity must be at least 1", ErrInvalidInput)
			}
			var size models.FoodSize
			if err := tx.First(&size, line.FoodSizeID).Error; err != nil {
				if notFound(err) {
					return fmt.Errorf("%w: food size %d not found", ErrInvalidInput, line.FoodSizeID)
				}
				return fmt.Errorf("failed to load food size %d: %w", line.FoodSizeID, err)
			}
			var food models.Food
			if err := tx.First(&food, size.FoodID).Error; err != nil {
				return fmt.Errorf("failed to load food %d: %w", size.FoodID, err)
			}
			if food.IsDeleted || food.Status != models.FoodStatusAvailable {
				return fmt.Errorf("%w: %q", ErrUnavailable, food.Name)
			}

			total += size.Price * float64(line.Quantity)
			items = append(items, models.OrderItem{
				FoodID:     food.ID,
				FoodSizeID: size.ID,
				Quantity:   line.Quantity,
				Price:      size.Price,
				Name:       food.Name + " (" + size.Name + ")",
			})
		}

		order.ID = 0
		order.Status = models.OrderStatusPlaced
		order.TotalPrice = total
		order.Items = items
		if err := tx.Create(order).Error; err != nil {
			return fmt.Errorf("failed to place order: %w", err)
		}
		return nil
	})
}

func (r *orderRepo) GetByID(ctx context.Context, id int) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).Preload("Items").Preload("Feedbacks").First(&order, id).Error
	if err != nil {
		if notFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get order by id %d: %w", id, err)
	}
	return &order, nil
}

func (r *orderRepo) GetByCustomerID(ctx context.Context, customerID uint) ([]models.Order, error) {
	orders := []models.Order{}
	err := r.db.WithContext(ctx).Preload("Items").Preload("Feedbacks").
		Where("customer_id = ?", customerID).
		Order("created_at desc").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get orders of customer %d: %w", customerID, err)
	}
	return orders, nil
}

func (r *orderRepo) List(ctx context.Context, status models.OrderStatus) ([]models.Order, error) {
	orders := []models.Order{}
	query := r.db.WithContext(ctx).Preload("Items").Preload("Feedbacks")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Order("created_at desc").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

func (r *orderRepo) UpdateStatus(ctx context.Context, id int, status models.OrderStatus) error {
	res := r.db.WithContext(ctx).Model(&models.Order{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return fmt.Errorf("failed to update status of order %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
