package repository

import (
	"context"
	"fmt"
	"strings"

	"food-store-api/models"

	"gorm.io/gorm"
)

type categoryRepo struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepo{db: db}
}

func (r *categoryRepo) Create(ctx context.Context, c *models.FoodCategory) error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("%w: category name required", ErrInvalidInput)
	}
	exists, err := r.ExistsByName(ctx, c.Name)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%w: category %q", ErrDuplicate, c.Name)
	}
	c.ID = 0
	if err := r.db.WithContext(ctx).Create(c).Error; err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}

func (r *categoryRepo) GetByID(ctx context.Context, id int) (*models.FoodCategory, error) {
	var c models.FoodCategory
	if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		if notFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get category by id %d: %w", id, err)
	}
	return &c, nil
}

func (r *categoryRepo) GetAll(ctx context.Context) ([]models.FoodCategory, error) {
	categories := []models.FoodCategory{}
	if err := r.db.WithContext(ctx).Order("id").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

func (r *categoryRepo) Update(ctx context.Context, c *models.FoodCategory) error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("%w: category name required", ErrInvalidInput)
	}
	existing, err := r.GetByID(ctx, c.ID)
	if err != nil {
		return err
	}
	var count int64
	err = r.db.WithContext(ctx).Model(&models.FoodCategory{}).
		Where("name = ? AND id <> ?", c.Name, c.ID).
		Count(&count).Error
	if err != nil {
		return fmt.Errorf("failed to check category name: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("%w: category %q", ErrDuplicate, c.Name)
	}
	existing.Name = c.Name
	existing.Image = c.Image
	if err := r.db.WithContext(ctx).Save(existing).Error; err != nil {
		return fmt.Errorf("failed to update category %d: %w", c.ID, err)
	}
	*c = *existing
	return nil
}

// Delete removes a category no food refers to. Soft-deleted foods still count.
func (r *categoryRepo) Delete(ctx context.Context, id int) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Food{}).Where("category_id = ?", id).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count foods of category %d: %w", id, err)
	}
	if count > 0 {
		return fmt.Errorf("%w: category %d has %d foods", ErrInUse, id, count)
	}
	res := r.db.WithContext(ctx).Delete(&models.FoodCategory{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete category %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *categoryRepo) ExistsByName(ctx context.Context, name string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.FoodCategory{}).Where("name = ?", name).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check category name: %w", err)
	}
	return count > 0, nil
}
