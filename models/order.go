package models

import "time"

// OrderStatus represents the states of a customer order
type OrderStatus string

const (
	OrderStatusPlaced    OrderStatus = "PLACED"
	OrderStatusDelivered OrderStatus = "DELIVERED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

type Order struct {
	ID              int         `json:"id" gorm:"primaryKey"`
	CustomerID      uint        `json:"customerId" gorm:"not null;index"`
	Status          OrderStatus `json:"status" gorm:"not null;default:'PLACED'"`
	TotalPrice      float64     `json:"totalPrice"`
	DeliveryAddress string      `json:"deliveryAddress"`
	Items           []OrderItem `json:"items,omitempty" gorm:"foreignKey:OrderID"`
	Feedbacks       []Feedback  `json:"feedbacks,omitempty" gorm:"foreignKey:OrderID"`
	CreatedAt       time.Time   `json:"createdAt"`
	UpdatedAt       time.Time   `json:"updatedAt"`
}

type OrderItem struct {
	ID         int     `json:"id" gorm:"primaryKey"`
	OrderID    int     `json:"orderId" gorm:"not null;index"`
	FoodID     int     `json:"foodId" gorm:"not null;index"`
	FoodSizeID int     `json:"foodSizeId" gorm:"not null"`
	Quantity   int     `json:"quantity" gorm:"not null"`
	Price      float64 `json:"price" gorm:"not null"` // snapshot price at time of order
	Name       string  `json:"name"`                  // snapshot "food (size)"
}
