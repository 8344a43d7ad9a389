package handlers

import (
	"net/http"

	"food-store-api/middleware"
	"food-store-api/models"
	"food-store-api/statemachine"

	"github.com/gin-gonic/gin"
)

// AdminGetAllOrders returns every order with a per-status summary
func (h *Handler) AdminGetAllOrders(c *gin.Context) {
	orders, err := h.orders.List(c.Request.Context(), models.OrderStatus(c.Query("status")))
	if err != nil {
		respondError(c, err, "Order not found")
		return
	}

	summary := map[models.OrderStatus]int{}
	var totalRevenue float64
	for _, o := range orders {
		summary[o.Status]++
		if o.Status == models.OrderStatusDelivered {
			totalRevenue += o.TotalPrice
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"order_summary": summary,
		"total_revenue": totalRevenue,
		"count":         len(orders),
		"orders":        orders,
	})
}

type UpdateOrderStatusRequest struct {
	Status models.OrderStatus `json:"status" binding:"required"`
}

// AdminUpdateOrderStatus moves an order along its lifecycle
func (h *Handler) AdminUpdateOrderStatus(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	order, err := h.orders.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Order not found")
		return
	}
	if err := statemachine.CanTransitionOrder(order.Status, req.Status, middleware.GetRole(c)); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":             err.Error(),
			"valid_next_states": statemachine.ValidOrderTransitionsFrom(order.Status),
		})
		return
	}
	if err := h.orders.UpdateStatus(c.Request.Context(), id, req.Status); err != nil {
		respondError(c, err, "Order not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":     "Order status updated",
		"order_id":    id,
		"from_status": order.Status,
		"new_status":  req.Status,
	})
}
