package statemachine

import (
	"errors"
	"strings"

	"food-store-api/models"
)

// OrderTransition is a valid order status change and the role allowed to make it
type OrderTransition struct {
	From  models.OrderStatus `json:"from"`
	To    models.OrderStatus `json:"to"`
	Actor models.UserRole    `json:"actor"`
}

var orderTransitions = []OrderTransition{
	// Admin marks the order as handed over
	{From: models.OrderStatusPlaced, To: models.OrderStatusDelivered, Actor: models.RoleAdmin},
	// Either side can cancel before delivery
	{From: models.OrderStatusPlaced, To: models.OrderStatusCancelled, Actor: models.RoleCustomer},
	{From: models.OrderStatusPlaced, To: models.OrderStatusCancelled, Actor: models.RoleAdmin},
}

type orderTransitionKey struct {
	From  models.OrderStatus
	To    models.OrderStatus
	Actor models.UserRole
}

var orderTransitionSet = func() map[orderTransitionKey]bool {
	m := make(map[orderTransitionKey]bool, len(orderTransitions))
	for _, t := range orderTransitions {
		m[orderTransitionKey{t.From, t.To, t.Actor}] = true
	}
	return m
}()

// ValidOrderTransitionsFrom returns all valid next states from a given state
func ValidOrderTransitionsFrom(status models.OrderStatus) []models.OrderStatus {
	var nexts []models.OrderStatus
	seen := map[models.OrderStatus]bool{}
	for _, t := range orderTransitions {
		if t.From == status && !seen[t.To] {
			nexts = append(nexts, t.To)
			seen[t.To] = true
		}
	}
	return nexts
}

// CanTransitionOrder checks if actor can move an order from one state to another
func CanTransitionOrder(from, to models.OrderStatus, actor models.UserRole) error {
	if orderTransitionSet[orderTransitionKey{From: from, To: to, Actor: actor}] {
		return nil
	}
	return errors.New(
		"invalid transition: " + string(from) + " → " + string(to) +
			" is not allowed for actor '" + string(actor) + "'. " +
			"Valid transitions from " + string(from) + " are: " + describeOrderValidFrom(from),
	)
}

func describeOrderValidFrom(status models.OrderStatus) string {
	nexts := ValidOrderTransitionsFrom(status)
	if len(nexts) == 0 {
		return "none (terminal state)"
	}
	names := make([]string, len(nexts))
	for i, s := range nexts {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}

// GetOrderTransitions returns the order lifecycle for documentation
func GetOrderTransitions() []OrderTransition {
	return orderTransitions
}
