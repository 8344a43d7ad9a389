package routes

import (
	"net/http"

	"food-store-api/handlers"
	"food-store-api/middleware"
	"food-store-api/models"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, h *handlers.Handler) {
	// ── Public routes ──────────────────────────────────────────────
	public := r.Group("/api")
	{
		// Auth
		public.POST("/auth/register", h.Register)
		public.POST("/auth/login", h.Login)

		// Menu (no auth needed)
		public.GET("/foods", h.ListFoods)
		public.GET("/foods/:id", h.GetFood)
		public.GET("/foods/:id/feedbacks", h.GetFoodFeedbacks)
		public.GET("/categories", h.ListCategories)
		public.GET("/categories/:id", h.GetCategory)

		// Food lifecycle info
		public.GET("/food-status-machine", h.GetFoodStatusMachine)
	}

	// ── Authenticated routes ───────────────────────────────────────
	auth := r.Group("/api")
	auth.Use(middleware.AuthRequired())
	{
		auth.GET("/profile", h.GetProfile)
	}

	// ── Customer routes ────────────────────────────────────────────
	customer := r.Group("/api/customer")
	customer.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleCustomer))
	{
		customer.POST("/orders", h.PlaceOrder)
		customer.GET("/orders", h.GetMyOrders)
		customer.GET("/orders/:id", h.GetOrderDetail)
		customer.PUT("/orders/:id/cancel", h.CancelOrder)
		customer.POST("/orders/:id/feedback", h.SendFeedback)
	}

	// ── Admin routes ───────────────────────────────────────────────
	admin := r.Group("/api/admin")
	admin.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleAdmin))
	{
		admin.POST("/foods", h.CreateFood)
		admin.PUT("/foods/:id", h.UpdateFood)
		admin.DELETE("/foods/:id", h.DeleteFood)
		admin.PUT("/foods/:id/status", h.UpdateFoodStatus)

		admin.GET("/orders", h.AdminGetAllOrders)
		admin.PUT("/orders/:id/status", h.AdminUpdateOrderStatus)

		admin.POST("/categories", h.CreateCategory)
		admin.PUT("/categories/:id", h.UpdateCategory)
		admin.DELETE("/categories/:id", h.DeleteCategory)
	}
}

// NewRouter builds the engine with the shared middleware, service endpoints and API routes
func NewRouter(h *handlers.Handler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	r.Use(middleware.RequestID(), middleware.CORS())

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "Food Store API",
			"version": "1.0.0",
		})
	})

	// Welcome
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "🍜 Welcome to the Food Store API",
			"docs":    "/api/food-status-machine",
			"health":  "/health",
			"roles":   []models.UserRole{models.RoleCustomer, models.RoleAdmin},
		})
	})

	SetupRoutes(r, h)
	return r
}
