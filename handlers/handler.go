package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"

	"food-store-api/repository"

	"github.com/gin-gonic/gin"
)

// Handler serves the HTTP API over the repositories
type Handler struct {
	foods      repository.FoodRepository
	categories repository.CategoryRepository
	orders     repository.OrderRepository
	feedbacks  repository.FeedbackRepository
	users      repository.UserRepository

	adminSignup bool
}

func New(
	foods repository.FoodRepository,
	categories repository.CategoryRepository,
	orders repository.OrderRepository,
	feedbacks repository.FeedbackRepository,
	users repository.UserRepository,
) *Handler {
	return &Handler{
		foods:      foods,
		categories: categories,
		orders:     orders,
		feedbacks:  feedbacks,
		users:      users,
	}
}

// SetAdminSignup controls whether Register accepts the admin role
func (h *Handler) SetAdminSignup(allow bool) {
	h.adminSignup = allow
}

// foodInvalidator is implemented by food repositories that keep cached copies
type foodInvalidator interface {
	Invalidate(ctx context.Context, ids ...int)
	InvalidateCategory(ctx context.Context, categoryID int)
}

func idParam(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return 0, false
	}
	return id, true
}

// respondError maps repository errors onto status codes. notFoundMsg is used for ErrNotFound.
func respondError(c *gin.Context, err error, notFoundMsg string) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": notFoundMsg})
	case errors.Is(err, repository.ErrInvalidInput), errors.Is(err, repository.ErrUnavailable):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, repository.ErrDuplicate), errors.Is(err, repository.ErrInUse):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		log.Printf("request %s failed: %v", c.GetString("requestID"), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
