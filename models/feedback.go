package models

import "time"

// UnassignedFeedbackID marks a feedback built on the client that the server has not stored yet
const UnassignedFeedbackID = -1

// Feedback is a customer's rating of an order. It is immutable once created.
type Feedback struct {
	ID       int       `json:"id" gorm:"primaryKey"`
	OrderID  int       `json:"-" gorm:"not null;index"`
	Content  string    `json:"content"`
	Rating   int       `json:"rating" gorm:"not null" validate:"min=1,max=5"`
	CreateAt time.Time `json:"createAt"`
}
