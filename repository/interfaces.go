package repository

import (
	"context"

	"food-store-api/models"
)

// FoodFilter narrows a food listing. Zero fields do not filter.
type FoodFilter struct {
	CategoryID     int
	Status         models.FoodStatus
	Tag            string
	Search         string
	IncludeDeleted bool
}

type FoodRepository interface {
	Create(ctx context.Context, food *models.Food) error
	GetByID(ctx context.Context, id int) (*models.Food, error)
	List(ctx context.Context, filter FoodFilter) ([]models.Food, error)
	Update(ctx context.Context, food *models.Food) error
	UpdateStatus(ctx context.Context, id int, status models.FoodStatus) error
	SoftDelete(ctx context.Context, id int) error
}

type CategoryRepository interface {
	Create(ctx context.Context, category *models.FoodCategory) error
	GetByID(ctx context.Context, id int) (*models.FoodCategory, error)
	GetAll(ctx context.Context) ([]models.FoodCategory, error)
	Update(ctx context.Context, category *models.FoodCategory) error
	Delete(ctx context.Context, id int) error

	ExistsByName(ctx context.Context, name string) (bool, error)
}

// OrderLine asks for quantity of one food size
type OrderLine struct {
	FoodSizeID int
	Quantity   int
}

type OrderRepository interface {
	Place(ctx context.Context, order *models.Order, lines []OrderLine) error
	GetByID(ctx context.Context, id int) (*models.Order, error)
	GetByCustomerID(ctx context.Context, customerID uint) ([]models.Order, error)
	// List returns every order, newest first. An empty status does not filter.
	List(ctx context.Context, status models.OrderStatus) ([]models.Order, error)
	UpdateStatus(ctx context.Context, id int, status models.OrderStatus) error
}

type FeedbackRepository interface {
	// Create stores fb for orderID and refreshes the rating of every food in that order
	Create(ctx context.Context, orderID int, fb *models.Feedback) error
	GetByFoodID(ctx context.Context, foodID int) ([]models.Feedback, error)
}

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}
