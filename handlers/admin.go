package handlers

import (
	"errors"
	"net/http"

	"food-store-api/converter"
	"food-store-api/models"
	"food-store-api/repository"
	"food-store-api/statemachine"

	"github.com/gin-gonic/gin"
)

// DefaultCategoryImage is stored for categories created without an image
const DefaultCategoryImage = "https://cdnphoto.dantri.com.vn/lod4Tx8WqZ2WBLsoEmwjyuA6ZU4=/thumb_w/960/2021/03/27/thuytrang-2731-1616857929781.jpg"

// ── Foods ───────────────────────────────────────────────────────────────────

// foodFromRequest binds the send shape and resolves its category
func (h *Handler) foodFromRequest(c *gin.Context) (models.Food, bool) {
	var req converter.FoodSend
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return models.Food{}, false
	}
	category, err := h.categories.GetByID(c.Request.Context(), req.Category.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Category not found"})
			return models.Food{}, false
		}
		respondError(c, err, "Category not found")
		return models.Food{}, false
	}
	food, err := converter.FoodFromSend(req, *category)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return models.Food{}, false
	}
	return food, true
}

// CreateFood adds a food to the menu
func (h *Handler) CreateFood(c *gin.Context) {
	food, ok := h.foodFromRequest(c)
	if !ok {
		return
	}
	if err := h.foods.Create(c.Request.Context(), &food); err != nil {
		respondError(c, err, "Food not found")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Food created", "food": food})
}

// UpdateFood replaces the client-writable fields of a food. A status change must
// follow the food lifecycle.
func (h *Handler) UpdateFood(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	existing, err := h.foods.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Food not found")
		return
	}
	food, ok := h.foodFromRequest(c)
	if !ok {
		return
	}
	food.ID = id
	if food.Status == "" {
		food.Status = existing.Status
	}
	if food.Status != existing.Status {
		if err := statemachine.CanTransitionFood(existing.Status, food.Status); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":             err.Error(),
				"valid_next_states": statemachine.ValidFoodTransitionsFrom(existing.Status),
			})
			return
		}
	}
	if err := h.foods.Update(c.Request.Context(), &food); err != nil {
		respondError(c, err, "Food not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Food updated", "food": food})
}

// DeleteFood hides a food from the menu. Past orders keep referencing it.
func (h *Handler) DeleteFood(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.foods.SoftDelete(c.Request.Context(), id); err != nil {
		respondError(c, err, "Food not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Food deleted"})
}

type UpdateFoodStatusRequest struct {
	Status models.FoodStatus `json:"status" binding:"required"`
}

// UpdateFoodStatus moves a food through its lifecycle
func (h *Handler) UpdateFoodStatus(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req UpdateFoodStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !req.Status.IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
		return
	}

	food, err := h.foods.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Food not found")
		return
	}
	if err := statemachine.CanTransitionFood(food.Status, req.Status); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":             err.Error(),
			"valid_next_states": statemachine.ValidFoodTransitionsFrom(food.Status),
		})
		return
	}
	if err := h.foods.UpdateStatus(c.Request.Context(), id, req.Status); err != nil {
		respondError(c, err, "Food not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Food status updated",
		"food_id":     id,
		"from_status": food.Status,
		"new_status":  req.Status,
		"next_states": statemachine.ValidFoodTransitionsFrom(req.Status),
	})
}

// ── Categories ──────────────────────────────────────────────────────────────

type CategoryRequest struct {
	Name  string `json:"name" binding:"required"`
	Image string `json:"image"`
}

func (h *Handler) CreateCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	category := models.FoodCategory{Name: req.Name, Image: req.Image}
	if category.Image == "" {
		category.Image = DefaultCategoryImage
	}
	if err := h.categories.Create(c.Request.Context(), &category); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Category already exists"})
			return
		}
		respondError(c, err, "Category not found")
		return
	}
	c.JSON(http.StatusCreated, category)
}

func (h *Handler) UpdateCategory(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	category := models.FoodCategory{ID: id, Name: req.Name, Image: req.Image}
	if err := h.categories.Update(c.Request.Context(), &category); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Category already exists"})
			return
		}
		respondError(c, err, "Category not found")
		return
	}
	h.invalidateCategory(c, id)
	c.JSON(http.StatusOK, category)
}

func (h *Handler) DeleteCategory(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.categories.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrInUse) {
			c.JSON(http.StatusConflict, gin.H{"error": "Category still has foods"})
			return
		}
		respondError(c, err, "Category not found")
		return
	}
	h.invalidateCategory(c, id)
	c.JSON(http.StatusOK, gin.H{"message": "Category deleted"})
}

// invalidateCategory drops cached foods that embed the category
func (h *Handler) invalidateCategory(c *gin.Context, id int) {
	if inv, ok := h.foods.(foodInvalidator); ok {
		inv.InvalidateCategory(c.Request.Context(), id)
	}
}
