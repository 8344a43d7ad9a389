package statemachine

import (
	"errors"
	"strings"

	"food-store-api/models"
)

// FoodTransition is one allowed change of a food's lifecycle status
type FoodTransition struct {
	From        models.FoodStatus `json:"from"`
	To          models.FoodStatus `json:"to"`
	Description string            `json:"description"`
}

// foodTransitions is the authoritative lifecycle definition
var foodTransitions = []FoodTransition{
	{From: models.FoodStatusAvailable, To: models.FoodStatusOutOfStock, Description: "kitchen ran out"},
	{From: models.FoodStatusOutOfStock, To: models.FoodStatusAvailable, Description: "restocked"},
	{From: models.FoodStatusAvailable, To: models.FoodStatusDiscontinued, Description: "removed from the menu"},
	{From: models.FoodStatusOutOfStock, To: models.FoodStatusDiscontinued, Description: "removed from the menu"},
	{From: models.FoodStatusDiscontinued, To: models.FoodStatusAvailable, Description: "back on the menu"},
}

type foodTransitionKey struct {
	From models.FoodStatus
	To   models.FoodStatus
}

var foodTransitionSet = func() map[foodTransitionKey]bool {
	m := make(map[foodTransitionKey]bool, len(foodTransitions))
	for _, t := range foodTransitions {
		m[foodTransitionKey{t.From, t.To}] = true
	}
	return m
}()

// ValidFoodTransitionsFrom returns all valid next statuses from a given status
func ValidFoodTransitionsFrom(status models.FoodStatus) []models.FoodStatus {
	var nexts []models.FoodStatus
	for _, t := range foodTransitions {
		if t.From == status {
			nexts = append(nexts, t.To)
		}
	}
	return nexts
}

// CanTransitionFood checks whether a food may move from one status to another
func CanTransitionFood(from, to models.FoodStatus) error {
	if foodTransitionSet[foodTransitionKey{From: from, To: to}] {
		return nil
	}
	return errors.New(
		"invalid transition: " + string(from) + " → " + string(to) + " is not allowed. " +
			"Valid transitions from " + string(from) + " are: " + describeFoodValidFrom(from),
	)
}

func describeFoodValidFrom(status models.FoodStatus) string {
	nexts := ValidFoodTransitionsFrom(status)
	if len(nexts) == 0 {
		return "none"
	}
	names := make([]string, len(nexts))
	for i, s := range nexts {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}

// GetFoodTransitions returns the full lifecycle for documentation
func GetFoodTransitions() []FoodTransition {
	return foodTransitions
}
