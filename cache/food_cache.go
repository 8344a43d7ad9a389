// Package cache keeps hot food reads in redis in front of the database.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"food-store-api/models"
	"food-store-api/repository"

	"github.com/redis/go-redis/v9"
)

const (
	notFoundMarker  = "notfound"
	notFoundTTL     = time.Minute
	menuKey         = "foods:menu"
	DefaultCacheTTL = 5 * time.Minute
)

// CachedFoodRepository serves single foods and the unfiltered public menu from redis.
// Any redis failure falls through to the wrapped repository.
type CachedFoodRepository struct {
	realRepo repository.FoodRepository
	redis    *redis.Client
	ttl      time.Duration
}

func NewCachedFoodRepository(realRepo repository.FoodRepository, rdb *redis.Client, ttl time.Duration) *CachedFoodRepository {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &CachedFoodRepository{
		realRepo: realRepo,
		redis:    rdb,
		ttl:      ttl,
	}
}

func foodKey(id int) string {
	return fmt.Sprintf("food:%d", id)
}

func (c *CachedFoodRepository) GetByID(ctx context.Context, id int) (*models.Food, error) {
	key := foodKey(id)

	data, err := c.redis.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		if string(data) == notFoundMarker {
			return nil, repository.ErrNotFound
		}
		var food models.Food
		if err := json.Unmarshal(data, &food); err != nil {
			log.Printf("Failed to unmarshal cached food (continuing with DB): %v", err)
			break
		}
		return &food, nil
	case errors.Is(err, redis.Nil):
	default:
		log.Printf("Redis error (continuing with DB): %v", err)
	}

	food, err := c.realRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			if setErr := c.redis.Set(ctx, key, notFoundMarker, notFoundTTL).Err(); setErr != nil {
				log.Printf("Failed to cache notfound: %v", setErr)
			}
		}
		return nil, err
	}

	c.store(ctx, key, food)
	return food, nil
}

// List caches only the plain public menu; filtered listings go straight to the database.
func (c *CachedFoodRepository) List(ctx context.Context, filter repository.FoodFilter) ([]models.Food, error) {
	if filter != (repository.FoodFilter{}) {
		return c.realRepo.List(ctx, filter)
	}

	data, err := c.redis.Get(ctx, menuKey).Bytes()
	if err == nil {
		var foods []models.Food
		if err := json.Unmarshal(data, &foods); err == nil {
			return foods, nil
		}
		log.Printf("Failed to unmarshal cached menu (continuing with DB): %v", err)
	} else if !errors.Is(err, redis.Nil) {
		log.Printf("Redis error: %v (continuing with DB)", err)
	}

	foods, err := c.realRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	c.store(ctx, menuKey, foods)
	return foods, nil
}

func (c *CachedFoodRepository) Create(ctx context.Context, food *models.Food) error {
	if err := c.realRepo.Create(ctx, food); err != nil {
		return err
	}
	c.invalidate(ctx, food.ID)
	return nil
}

func (c *CachedFoodRepository) Update(ctx context.Context, food *models.Food) error {
	err := c.realRepo.Update(ctx, food)
	c.invalidate(ctx, food.ID)
	return err
}

func (c *CachedFoodRepository) UpdateStatus(ctx context.Context, id int, status models.FoodStatus) error {
	err := c.realRepo.UpdateStatus(ctx, id, status)
	c.invalidate(ctx, id)
	return err
}

func (c *CachedFoodRepository) SoftDelete(ctx context.Context, id int) error {
	err := c.realRepo.SoftDelete(ctx, id)
	c.invalidate(ctx, id)
	return err
}

// Invalidate drops cached copies of a food, e.g. after its rating was recomputed
func (c *CachedFoodRepository) Invalidate(ctx context.Context, ids ...int) {
	for _, id := range ids {
		c.invalidate(ctx, id)
	}
}

// InvalidateCategory drops the menu and every cached food of a category, whose
// embedded copy of the category just went stale
func (c *CachedFoodRepository) InvalidateCategory(ctx context.Context, categoryID int) {
	foods, err := c.realRepo.List(ctx, repository.FoodFilter{CategoryID: categoryID, IncludeDeleted: true})
	if err != nil {
		log.Printf("Failed to list foods of category %d for invalidation: %v", categoryID, err)
	}
	keys := []string{menuKey}
	for _, food := range foods {
		keys = append(keys, foodKey(food.ID))
	}
	if err := c.redis.Del(ctx, keys...).Err(); err != nil {
		log.Printf("Failed to delete cache of category %d: %v", categoryID, err)
	}
}

func (c *CachedFoodRepository) invalidate(ctx context.Context, id int) {
	if err := c.redis.Del(ctx, foodKey(id), menuKey).Err(); err != nil {
		log.Printf("Failed to delete food cache %s: %v", foodKey(id), err)
	}
}

func (c *CachedFoodRepository) store(ctx context.Context, key string, v any) {
	jsonData, err := json.Marshal(v)
	if err != nil {
		log.Printf("Failed to marshal %s: %v", key, err)
		return
	}
	if err := c.redis.Set(ctx, key, jsonData, c.ttl).Err(); err != nil {
		log.Printf("Failed to cache %s: %v", key, err)
	}
}
