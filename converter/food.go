// Package converter reshapes Food records between the form-data, send and receive
// representations used on the wire.
package converter

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"food-store-api/models"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

// newValidator reports field errors by their JSON names
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// CategoryRef is a category reduced to its identity
type CategoryRef struct {
	ID int `json:"id" binding:"required,gt=0"`
}

type FoodSizeSend struct {
	ID     int     `json:"id"`
	Name   string  `json:"name"`
	Price  float64 `json:"price" binding:"gte=0"`
	Weight float64 `json:"weight" binding:"gte=0"`
	Note   string  `json:"note"`
}

// FoodSend is what a client posts to create or update a food. Server-owned fields
// (id, rating, isDeleted) are absent.
type FoodSend struct {
	Name        string            `json:"name" binding:"required"`
	Description string            `json:"description"`
	Category    CategoryRef       `json:"category"`
	Images      []string          `json:"images"`
	Tags        []string          `json:"tags"`
	Status      models.FoodStatus `json:"status"`
	FoodSizes   []FoodSizeSend    `json:"foodSizes" binding:"dive"`
	CreateAt    string            `json:"createAt"`
}

type FoodSizeFormData struct {
	SizeName string  `json:"sizeName"`
	Price    float64 `json:"price"`
	Weight   float64 `json:"weight"`
	Note     string  `json:"note"`
}

// FoodFormData is the state of the new-food form. Image slots the user left empty are nil.
type FoodFormData struct {
	Name        string             `json:"name"`
	Description string             `json:"description"`
	CategoryID  int                `json:"categoryId"`
	Images      []*string          `json:"images"`
	Sizes       []FoodSizeFormData `json:"sizes"`
	Tags        []string           `json:"tags"`
	Status      string             `json:"status"`
}

// DeserializationError reports a received payload that does not describe a Food
type DeserializationError struct {
	Field  string
	Reason string
}

func (e *DeserializationError) Error() string {
	if e.Field == "" {
		return "cannot deserialize food: " + e.Reason
	}
	return fmt.Sprintf("cannot deserialize food: field %q %s", e.Field, e.Reason)
}

func FoodToSend(food models.Food) FoodSend {
	sizes := make([]FoodSizeSend, 0, len(food.FoodSizes))
	for _, size := range food.FoodSizes {
		sizes = append(sizes, FoodSizeSend{
			ID:     size.ID,
			Name:   size.Name,
			Price:  size.Price,
			Weight: size.Weight,
			Note:   size.Note,
		})
	}
	return FoodSend{
		Name:        food.Name,
		Description: food.Description,
		Category:    CategoryRef{ID: food.Category.ID},
		Images:      food.Images,
		Tags:        food.Tags,
		Status:      food.Status,
		FoodSizes:   sizes,
		CreateAt:    FormatTimestamp(food.CreatedAt),
	}
}

// FoodFormDataToFood builds an unsaved Food from the form and its resolved category
func FoodFormDataToFood(form FoodFormData, category models.FoodCategory) models.Food {
	images := make([]string, 0, len(form.Images))
	for _, image := range form.Images {
		if image == nil {
			continue
		}
		images = append(images, *image)
	}

	sizes := make([]models.FoodSize, 0, len(form.Sizes))
	for _, size := range form.Sizes {
		sizes = append(sizes, models.FoodSize{
			ID:     0,
			Name:   size.SizeName,
			Price:  size.Price,
			Weight: size.Weight,
			Note:   size.Note,
		})
	}

	return models.Food{
		ID:          0,
		Name:        form.Name,
		Description: form.Description,
		Images:      images,
		IsDeleted:   false,
		FoodSizes:   sizes,
		Category:    category,
		Rating:      0,
		Tags:        form.Tags,
		Status:      models.FoodStatus(form.Status),
		CreatedAt:   time.Now(),
	}
}

// receivedFood mirrors the receive shape with pointers so absent fields can be told
// apart from zero values.
type receivedFood struct {
	ID          *int                 `json:"id" validate:"required"`
	Name        *string              `json:"name" validate:"required"`
	Description string               `json:"description"`
	Images      []string             `json:"images"`
	IsDeleted   bool                 `json:"isDeleted"`
	FoodSizes   []models.FoodSize    `json:"foodSizes"`
	Category    *models.FoodCategory `json:"category" validate:"required"`
	Rating      float64              `json:"rating"`
	Tags        []string             `json:"tags"`
	Status      *models.FoodStatus   `json:"status" validate:"required"`
	CreatedAt   *string              `json:"createdAt" validate:"required"`
}

// FoodToReceive decodes a server payload into a Food. Payloads missing id, name,
// category, status or createdAt, or carrying an unparsable createdAt, are rejected.
func FoodToReceive(data []byte) (models.Food, error) {
	var in receivedFood
	if err := json.Unmarshal(data, &in); err != nil {
		return models.Food{}, &DeserializationError{Reason: err.Error()}
	}
	return in.toFood()
}

// FoodsToReceive decodes a JSON array of foods
func FoodsToReceive(data []byte) ([]models.Food, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &DeserializationError{Reason: err.Error()}
	}
	foods := make([]models.Food, 0, len(raw))
	for _, item := range raw {
		food, err := FoodToReceive(item)
		if err != nil {
			return nil, err
		}
		foods = append(foods, food)
	}
	return foods, nil
}

func (in receivedFood) toFood() (models.Food, error) {
	if err := validate.Struct(in); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return models.Food{}, &DeserializationError{
				Field:  verrs[0].Field(),
				Reason: "is missing",
			}
		}
		return models.Food{}, &DeserializationError{Reason: err.Error()}
	}

	createdAt, err := ParseTimestamp(*in.CreatedAt)
	if err != nil {
		return models.Food{}, &DeserializationError{Field: "createdAt", Reason: err.Error()}
	}

	return models.Food{
		ID:          *in.ID,
		Name:        *in.Name,
		Description: in.Description,
		Images:      in.Images,
		IsDeleted:   in.IsDeleted,
		FoodSizes:   in.FoodSizes,
		Category:    *in.Category,
		Rating:      in.Rating,
		Tags:        in.Tags,
		Status:      *in.Status,
		CreatedAt:   createdAt,
	}, nil
}

// FoodFromSend rebuilds an unsaved Food from a posted send shape on the server side.
// An empty createAt means "now".
func FoodFromSend(in FoodSend, category models.FoodCategory) (models.Food, error) {
	createdAt := time.Now()
	if in.CreateAt != "" {
		t, err := ParseTimestamp(in.CreateAt)
		if err != nil {
			return models.Food{}, &DeserializationError{Field: "createAt", Reason: err.Error()}
		}
		createdAt = t
	}

	sizes := make([]models.FoodSize, 0, len(in.FoodSizes))
	for _, size := range in.FoodSizes {
		sizes = append(sizes, models.FoodSize{
			ID:     size.ID,
			Name:   size.Name,
			Price:  size.Price,
			Weight: size.Weight,
			Note:   size.Note,
		})
	}

	return models.Food{
		Name:        in.Name,
		Description: in.Description,
		Images:      in.Images,
		FoodSizes:   sizes,
		CategoryID:  category.ID,
		Category:    category,
		Tags:        in.Tags,
		Status:      in.Status,
		CreatedAt:   createdAt,
	}, nil
}
