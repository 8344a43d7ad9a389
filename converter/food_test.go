package converter

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"
	"time"

	"food-store-api/models"
)

const wellFormedPayload = `{
	"id": 7,
	"name": "Pho bo",
	"description": "Beef noodle soup",
	"images": ["pho-1.png", "pho-2.png"],
	"isDeleted": false,
	"foodSizes": [
		{"id": 11, "name": "Small", "price": 4.5, "weight": 350, "note": ""},
		{"id": 12, "name": "Large", "price": 6, "weight": 550, "note": "extra beef"}
	],
	"category": {"id": 3, "name": "Noodles", "image": "noodles.png"},
	"rating": 4.2,
	"tags": ["soup", "beef"],
	"status": "AVAILABLE",
	"createdAt": "2024-03-01T10:20:30.000Z"
}`

func strPtr(s string) *string { return &s }

func TestFoodToReceiveThenSendKeepsClientFields(t *testing.T) {
	food, err := FoodToReceive([]byte(wellFormedPayload))
	if err != nil {
		t.Fatalf("FoodToReceive: %v", err)
	}

	sent := FoodToSend(food)

	if sent.Category.ID != 3 {
		t.Errorf("category id = %d, want 3", sent.Category.ID)
	}
	wantSizes := []FoodSizeSend{
		{ID: 11, Name: "Small", Price: 4.5, Weight: 350},
		{ID: 12, Name: "Large", Price: 6, Weight: 550, Note: "extra beef"},
	}
	if !reflect.DeepEqual(sent.FoodSizes, wantSizes) {
		t.Errorf("foodSizes = %+v, want %+v", sent.FoodSizes, wantSizes)
	}
	if !reflect.DeepEqual(sent.Tags, []string{"soup", "beef"}) {
		t.Errorf("tags = %v", sent.Tags)
	}
	if sent.Status != models.FoodStatusAvailable {
		t.Errorf("status = %q", sent.Status)
	}
	if sent.CreateAt != "2024-03-01T10:20:30.000Z" {
		t.Errorf("createAt = %q", sent.CreateAt)
	}

	raw, err := json.Marshal(sent)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(raw, &keys); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, owned := range []string{"id", "rating", "isDeleted"} {
		if _, ok := keys[owned]; ok {
			t.Errorf("send shape carries server-owned field %q", owned)
		}
	}
	var category map[string]json.RawMessage
	if err := json.Unmarshal(keys["category"], &category); err != nil {
		t.Fatalf("category: %v", err)
	}
	if len(category) != 1 {
		t.Errorf("category should only carry id, got %s", keys["category"])
	}
}

func TestFoodToReceiveRejectsMissingFields(t *testing.T) {
	for _, field := range []string{"id", "name", "category", "status", "createdAt"} {
		t.Run(field, func(t *testing.T) {
			var payload map[string]any
			if err := json.Unmarshal([]byte(wellFormedPayload), &payload); err != nil {
				t.Fatal(err)
			}
			delete(payload, field)
			raw, _ := json.Marshal(payload)

			_, err := FoodToReceive(raw)
			var derr *DeserializationError
			if !errors.As(err, &derr) {
				t.Fatalf("err = %v, want DeserializationError", err)
			}
			if derr.Field != field {
				t.Errorf("field = %q, want %q", derr.Field, field)
			}
		})
	}
}

func TestFoodToReceiveRejectsBadInput(t *testing.T) {
	cases := map[string]string{
		"not json":      `{"id": 1,`,
		"bad timestamp": `{"id":1,"name":"x","category":{"id":1},"status":"AVAILABLE","createdAt":"yesterday"}`,
		"wrong type":    `{"id":"seven","name":"x","category":{"id":1},"status":"AVAILABLE","createdAt":"2024-03-01T10:20:30Z"}`,
	}
	for name, payload := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := FoodToReceive([]byte(payload))
			var derr *DeserializationError
			if !errors.As(err, &derr) {
				t.Fatalf("err = %v, want DeserializationError", err)
			}
		})
	}
}

func TestFoodToReceiveAcceptsZonelessTimestamp(t *testing.T) {
	payload := `{"id":1,"name":"x","category":{"id":1},"status":"AVAILABLE","createdAt":"2024-05-01T08:00:00"}`
	food, err := FoodToReceive([]byte(payload))
	if err != nil {
		t.Fatalf("FoodToReceive: %v", err)
	}
	want := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	if !food.CreatedAt.Equal(want) {
		t.Errorf("createdAt = %v, want %v", food.CreatedAt, want)
	}
}

func TestFoodsToReceive(t *testing.T) {
	foods, err := FoodsToReceive([]byte("[" + wellFormedPayload + "," + wellFormedPayload + "]"))
	if err != nil {
		t.Fatalf("FoodsToReceive: %v", err)
	}
	if len(foods) != 2 || foods[1].Name != "Pho bo" {
		t.Errorf("foods = %+v", foods)
	}
}

func TestFoodFormDataToFoodDropsEmptyImageSlots(t *testing.T) {
	form := FoodFormData{
		Name:   "Banh mi",
		Images: []*string{strPtr("a.png"), nil, strPtr("b.png")},
	}

	food := FoodFormDataToFood(form, models.FoodCategory{ID: 2, Name: "Bread"})

	if !reflect.DeepEqual(food.Images, []string{"a.png", "b.png"}) {
		t.Errorf("images = %v, want [a.png b.png]", food.Images)
	}
}

func TestFoodFormDataToFoodMarksUnsaved(t *testing.T) {
	before := time.Now()
	form := FoodFormData{
		Name:        "Banh mi",
		Description: "Baguette sandwich",
		Sizes: []FoodSizeFormData{
			{SizeName: "Regular", Price: 3, Weight: 200, Note: "with pate"},
		},
		Tags:   []string{"street"},
		Status: "OUT_OF_STOCK",
	}
	category := models.FoodCategory{ID: 2, Name: "Bread"}

	food := FoodFormDataToFood(form, category)

	if food.ID != 0 || food.IsDeleted || food.Rating != 0 {
		t.Errorf("id=%d isDeleted=%v rating=%v, want unsaved defaults", food.ID, food.IsDeleted, food.Rating)
	}
	if food.CreatedAt.Before(before) {
		t.Errorf("createdAt %v is older than the call", food.CreatedAt)
	}
	if food.Category != category {
		t.Errorf("category = %+v", food.Category)
	}
	wantSizes := []models.FoodSize{{ID: 0, Name: "Regular", Price: 3, Weight: 200, Note: "with pate"}}
	if !reflect.DeepEqual(food.FoodSizes, wantSizes) {
		t.Errorf("sizes = %+v", food.FoodSizes)
	}
	if food.Status != models.FoodStatusOutOfStock || !reflect.DeepEqual(food.Tags, []string{"street"}) {
		t.Errorf("status=%q tags=%v", food.Status, food.Tags)
	}
}

func TestFoodFromSend(t *testing.T) {
	in := FoodSend{
		Name:      "Com tam",
		Category:  CategoryRef{ID: 5},
		FoodSizes: []FoodSizeSend{{Name: "Plate", Price: 5}},
		Status:    models.FoodStatusAvailable,
		CreateAt:  "2024-03-01T10:20:30.000Z",
	}

	food, err := FoodFromSend(in, models.FoodCategory{ID: 5, Name: "Rice"})
	if err != nil {
		t.Fatalf("FoodFromSend: %v", err)
	}
	if food.CategoryID != 5 || food.Category.Name != "Rice" {
		t.Errorf("category = %d %+v", food.CategoryID, food.Category)
	}
	if FormatTimestamp(food.CreatedAt) != in.CreateAt {
		t.Errorf("createdAt = %v", food.CreatedAt)
	}

	in.CreateAt = "not a time"
	if _, err := FoodFromSend(in, models.FoodCategory{ID: 5}); err == nil {
		t.Error("expected an error for a malformed createAt")
	}
}
