package handlers

import (
	"net/http"
	"time"

	"food-store-api/middleware"
	"food-store-api/models"
	"food-store-api/repository"
	"food-store-api/statemachine"

	"github.com/gin-gonic/gin"
)

type PlaceOrderRequest struct {
	DeliveryAddress string `json:"deliveryAddress" binding:"required"`
	Items           []struct {
		FoodSizeID int `json:"foodSizeId" binding:"required,gt=0"`
		Quantity   int `json:"quantity" binding:"required,min=1"`
	} `json:"items" binding:"required,min=1,dive"`
}

// PlaceOrder creates an order priced from the current menu
func (h *Handler) PlaceOrder(c *gin.Context) {
	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	lines := make([]repository.OrderLine, 0, len(req.Items))
	for _, item := range req.Items {
		lines = append(lines, repository.OrderLine{FoodSizeID: item.FoodSizeID, Quantity: item.Quantity})
	}
	order := models.Order{
		CustomerID:      middleware.GetUserID(c),
		DeliveryAddress: req.DeliveryAddress,
	}
	if err := h.orders.Place(c.Request.Context(), &order, lines); err != nil {
		respondError(c, err, "Order not found")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Order placed successfully", "order": order})
}

// GetMyOrders returns all orders of the logged-in customer
func (h *Handler) GetMyOrders(c *gin.Context) {
	orders, err := h.orders.GetByCustomerID(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		respondError(c, err, "Order not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(orders), "orders": orders})
}

// ownOrder loads an order and checks the caller placed it
func (h *Handler) ownOrder(c *gin.Context) (*models.Order, bool) {
	id, ok := idParam(c, "id")
	if !ok {
		return nil, false
	}
	order, err := h.orders.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Order not found")
		return nil, false
	}
	if order.CustomerID != middleware.GetUserID(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only access your own orders"})
		return nil, false
	}
	return order, true
}

func (h *Handler) GetOrderDetail(c *gin.Context) {
	order, ok := h.ownOrder(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": order})
}

// FeedbackRequest mirrors the feedback a client builds. The id is a placeholder
// and createAt may be omitted.
type FeedbackRequest struct {
	ID       int       `json:"id"`
	Content  string    `json:"content"`
	Rating   int       `json:"rating" binding:"required,min=1,max=5"`
	CreateAt time.Time `json:"createAt"`
}

// SendFeedback stores the customer's rating of one of their orders
func (h *Handler) SendFeedback(c *gin.Context) {
	var req FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	order, ok := h.ownOrder(c)
	if !ok {
		return
	}

	feedback := models.Feedback{
		Content:  req.Content,
		Rating:   req.Rating,
		CreateAt: req.CreateAt,
	}
	if err := h.feedbacks.Create(c.Request.Context(), order.ID, &feedback); err != nil {
		respondError(c, err, "Order not found")
		return
	}

	// ratings of the ordered foods just changed
	if inv, ok := h.foods.(foodInvalidator); ok {
		ids := make([]int, 0, len(order.Items))
		for _, item := range order.Items {
			ids = append(ids, item.FoodID)
		}
		inv.Invalidate(c.Request.Context(), ids...)
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Feedback was sent successfully", "feedback": feedback})
}

// CancelOrder lets the customer cancel an order that was not delivered yet
func (h *Handler) CancelOrder(c *gin.Context) {
	order, ok := h.ownOrder(c)
	if !ok {
		return
	}
	if err := statemachine.CanTransitionOrder(order.Status, models.OrderStatusCancelled, models.RoleCustomer); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":         "Cannot cancel order",
			"reason":        err.Error(),
			"current_state": order.Status,
		})
		return
	}
	if err := h.orders.UpdateStatus(c.Request.Context(), order.ID, models.OrderStatusCancelled); err != nil {
		respondError(c, err, "Order not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order cancelled successfully", "order_id": order.ID})
}
