package repository

import (
	"context"
	"fmt"
	"strings"

	"food-store-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type foodRepo struct {
	db *gorm.DB
}

func NewFoodRepository(db *gorm.DB) FoodRepository {
	return &foodRepo{db: db}
}

func validateFood(f *models.Food) error {
	if strings.TrimSpace(f.Name) == "" {
		return fmt.Errorf("%w: food name required", ErrInvalidInput)
	}
	if f.Status == "" {
		f.Status = models.FoodStatusAvailable
	}
	if !f.Status.IsValid() {
		return fmt.Errorf("%w: unknown food status %q", ErrInvalidInput, f.Status)
	}
	for _, size := range f.FoodSizes {
		if size.Price < 0 {
			return fmt.Errorf("%w: size %q has a negative price", ErrInvalidInput, size.Name)
		}
	}
	return nil
}

// Create stores a new food with its sizes. The category must already exist; the
// server owns id, rating and isDeleted.
func (r *foodRepo) Create(ctx context.Context, f *models.Food) error {
	if err := validateFood(f); err != nil {
		return err
	}
	f.ID = 0
	f.Rating = 0
	f.IsDeleted = false
	f.CategoryID = f.Category.ID
	for i := range f.FoodSizes {
		f.FoodSizes[i].ID = 0
	}

	if err := r.db.WithContext(ctx).Omit("Category").Create(f).Error; err != nil {
		return fmt.Errorf("failed to create food: %w", err)
	}
	return nil
}

func (r *foodRepo) GetByID(ctx context.Context, id int) (*models.Food, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: invalid food id %d", ErrInvalidInput, id)
	}
	var food models.Food
	err := r.db.WithContext(ctx).
		Preload("FoodSizes", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		Preload("Category").
		First(&food, id).Error
	if err != nil {
		if notFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get food by id %d: %w", id, err)
	}
	return &food, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes user text match literally inside a LIKE pattern
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func (r *foodRepo) List(ctx context.Context, filter FoodFilter) ([]models.Food, error) {
	query := r.db.WithContext(ctx).
		Preload("FoodSizes", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		Preload("Category")

	if !filter.IncludeDeleted {
		query = query.Where("is_deleted = ?", false)
	}
	if filter.CategoryID > 0 {
		query = query.Where("category_id = ?", filter.CategoryID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Tag != "" {
		// tags are stored as a JSON array
		query = query.Where(`tags LIKE ? ESCAPE '\'`, `%"`+escapeLike(filter.Tag)+`"%`)
	}
	if filter.Search != "" {
		query = query.Where(`name LIKE ? ESCAPE '\'`, "%"+escapeLike(filter.Search)+"%")
	}

	foods := []models.Food{}
	if err := query.Order("id").Find(&foods).Error; err != nil {
		return nil, fmt.Errorf("failed to list foods: %w", err)
	}
	return foods, nil
}

// Update overwrites the client-writable fields of an existing food and replaces its sizes
func (r *foodRepo) Update(ctx context.Context, f *models.Food) error {
	if err := validateFood(f); err != nil {
		return err
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Food
		if err := tx.First(&existing, f.ID).Error; err != nil {
			if notFound(err) {
				return ErrNotFound
			}
			return fmt.Errorf("failed to load food %d: %w", f.ID, err)
		}

		existing.Name = f.Name
		existing.Description = f.Description
		existing.Images = f.Images
		existing.Tags = f.Tags
		existing.Status = f.Status
		existing.CategoryID = f.Category.ID
		if err := tx.Omit(clause.Associations).Save(&existing).Error; err != nil {
			return fmt.Errorf("failed to update food %d: %w", f.ID, err)
		}

		if err := tx.Where("food_id = ?", existing.ID).Delete(&models.FoodSize{}).Error; err != nil {
			return fmt.Errorf("failed to clear sizes of food %d: %w", f.ID, err)
		}
		for i := range f.FoodSizes {
			f.FoodSizes[i].ID = 0
			f.FoodSizes[i].FoodID = existing.ID
		}
		if len(f.FoodSizes) > 0 {
			if err := tx.Create(&f.FoodSizes).Error; err != nil {
				return fmt.Errorf("failed to store sizes of food %d: %w", f.ID, err)
			}
		}

		f.Rating = existing.Rating
		f.IsDeleted = existing.IsDeleted
		f.CreatedAt = existing.CreatedAt
		f.CategoryID = existing.CategoryID
		return nil
	})
}

func (r *foodRepo) UpdateStatus(ctx context.Context, id int, status models.FoodStatus) error {
	if !status.IsValid() {
		return fmt.Errorf("%w: unknown food status %q", ErrInvalidInput, status)
	}
	res := r.db.WithContext(ctx).Model(&models.Food{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return fmt.Errorf("failed to update status of food %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *foodRepo) SoftDelete(ctx context.Context, id int) error {
	res := r.db.WithContext(ctx).Model(&models.Food{}).Where("id = ?", id).Update("is_deleted", true)
	if res.Error != nil {
		return fmt.Errorf("failed to delete food %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
