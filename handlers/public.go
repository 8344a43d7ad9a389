package handlers

import (
	"net/http"
	"strconv"

	"food-store-api/models"
	"food-store-api/repository"
	"food-store-api/statemachine"

	"github.com/gin-gonic/gin"
)

// ListFoods returns the menu. Soft-deleted foods are never listed.
func (h *Handler) ListFoods(c *gin.Context) {
	var filter repository.FoodFilter
	if category := c.Query("category"); category != "" {
		id, err := strconv.Atoi(category)
		if err != nil || id <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category"})
			return
		}
		filter.CategoryID = id
	}
	if status := c.Query("status"); status != "" {
		filter.Status = models.FoodStatus(status)
		if !filter.Status.IsValid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
			return
		}
	}
	filter.Tag = c.Query("tag")
	filter.Search = c.Query("search")

	foods, err := h.foods.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err, "Food not found")
		return
	}
	c.JSON(http.StatusOK, foods)
}

// GetFood returns one food in the receive shape
func (h *Handler) GetFood(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	food, err := h.foods.GetByID(c.Request.Context(), id)
	if err == nil && food.IsDeleted {
		err = repository.ErrNotFound
	}
	if err != nil {
		respondError(c, err, "Food not found")
		return
	}
	c.JSON(http.StatusOK, food)
}

// GetFoodFeedbacks lists the feedback left on orders that contained the food
func (h *Handler) GetFoodFeedbacks(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	food, err := h.foods.GetByID(c.Request.Context(), id)
	if err == nil && food.IsDeleted {
		err = repository.ErrNotFound
	}
	if err != nil {
		respondError(c, err, "Food not found")
		return
	}
	feedbacks, err := h.feedbacks.GetByFoodID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Food not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(feedbacks), "feedbacks": feedbacks})
}

func (h *Handler) ListCategories(c *gin.Context) {
	categories, err := h.categories.GetAll(c.Request.Context())
	if err != nil {
		respondError(c, err, "Category not found")
		return
	}
	c.JSON(http.StatusOK, categories)
}

func (h *Handler) GetCategory(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	category, err := h.categories.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Category not found")
		return
	}
	c.JSON(http.StatusOK, category)
}

// GetFoodStatusMachine returns the food lifecycle, useful for API docs
func (h *Handler) GetFoodStatusMachine(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"description": "Food Lifecycle State Machine",
		"states": []models.FoodStatus{
			models.FoodStatusAvailable,
			models.FoodStatusOutOfStock,
			models.FoodStatusDiscontinued,
		},
		"transitions":     statemachine.GetFoodTransitions(),
		"order_lifecycle": gin.H{
			"states": []models.OrderStatus{
				models.OrderStatusPlaced,
				models.OrderStatusDelivered,
				models.OrderStatusCancelled,
			},
			"transitions": statemachine.GetOrderTransitions(),
		},
	})
}
