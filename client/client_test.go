package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"reflect"
	"testing"

	"food-store-api/config"
	"food-store-api/converter"
	"food-store-api/handlers"
	"food-store-api/models"
	"food-store-api/ratingform"
	"food-store-api/repository"
	"food-store-api/routes"

	"github.com/gin-gonic/gin"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db, err := config.InitDB(filepath.Join(t.TempDir(), "client.db"))
	if err != nil {
		t.Fatalf("InitDB: %v", err)
	}
	h := handlers.New(
		repository.NewFoodRepository(db),
		repository.NewCategoryRepository(db),
		repository.NewOrderRepository(db),
		repository.NewFeedbackRepository(db),
		repository.NewUserRepository(db),
	)
	h.SetAdminSignup(true)
	srv := httptest.NewServer(routes.NewRouter(h))
	t.Cleanup(srv.Close)
	return srv
}

type recordingNotifier struct {
	successes, failures []string
}

func (n *recordingNotifier) NotifySuccess(message string) { n.successes = append(n.successes, message) }
func (n *recordingNotifier) NotifyFailure(message string) { n.failures = append(n.failures, message) }

func strPtr(s string) *string { return &s }

func TestCreateFoodFromFormThenRate(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()

	admin := New(srv.URL)
	if _, err := admin.Register(ctx, "Admin", "admin@example.com", "secret123", models.RoleAdmin); err != nil {
		t.Fatalf("register admin: %v", err)
	}
	category, err := admin.CreateCategory(ctx, "Noodles", "")
	if err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}

	food, err := admin.CreateFoodFromForm(ctx, converter.FoodFormData{
		Name:       "Bun bo Hue",
		CategoryID: category.ID,
		Images:     []*string{strPtr("a.png"), nil, strPtr("b.png")},
		Sizes:      []converter.FoodSizeFormData{{SizeName: "Bowl", Price: 6, Weight: 450}},
		Tags:       []string{"spicy"},
		Status:     string(models.FoodStatusAvailable),
	})
	if err != nil {
		t.Fatalf("CreateFoodFromForm: %v", err)
	}
	if !food.IsPersisted() || food.Category.Name != "Noodles" {
		t.Fatalf("created food = %+v", food)
	}
	if !reflect.DeepEqual(food.Images, []string{"a.png", "b.png"}) {
		t.Errorf("images = %v", food.Images)
	}

	listed, err := admin.ListFoods(ctx, FoodQuery{Tag: "spicy"})
	if err != nil || len(listed) != 1 || listed[0].ID != food.ID {
		t.Fatalf("ListFoods = %+v, %v", listed, err)
	}

	customer := New(srv.URL)
	if _, err := customer.Register(ctx, "Cus", "cus@example.com", "secret123", models.RoleCustomer); err != nil {
		t.Fatalf("register customer: %v", err)
	}
	order, err := customer.PlaceOrder(ctx, "1 Main St", []OrderLine{{FoodSizeID: food.FoodSizes[0].ID, Quantity: 1}})
	if err != nil {
		t.Fatalf("PlaceOrder: %v", err)
	}

	notes := &recordingNotifier{}
	form := ratingform.New(customer, notes)
	form.Open(food)
	if err := form.Select(5); err != nil {
		t.Fatal(err)
	}
	form.SetComment("Perfect broth")
	if got := form.Submit(ctx, &order); got != ratingform.OutcomeSent {
		t.Fatalf("outcome = %s, failures = %v", got, notes.failures)
	}
	if len(notes.successes) != 1 || notes.successes[0] != ratingform.SuccessMessage {
		t.Errorf("notifications = %+v", notes)
	}

	rated, err := customer.GetFood(ctx, food.ID)
	if err != nil {
		t.Fatalf("GetFood: %v", err)
	}
	if rated.Rating != 5 {
		t.Errorf("rating = %v, want 5", rated.Rating)
	}
}

func TestErrorsBecomeAPIError(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()
	c := New(srv.URL)

	_, err := c.GetCategory(ctx, 99)
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusNotFound || apiErr.Message != "Category not found" {
		t.Errorf("GetCategory err = %v", err)
	}

	err = c.SendFeedback(ctx, 1, models.Feedback{ID: models.UnassignedFeedbackID, Rating: 3})
	if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusUnauthorized {
		t.Errorf("SendFeedback without token err = %v", err)
	}
}

func TestFailedSubmitNotifiesFailure(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()
	c := New(srv.URL, WithToken("not-a-token"))

	notes := &recordingNotifier{}
	form := ratingform.New(c, notes)
	form.Open(models.Food{ID: 1, Name: "Pho"})
	_ = form.Select(2)

	if got := form.Submit(ctx, &models.Order{ID: 1}); got != ratingform.OutcomeFailed {
		t.Errorf("outcome = %s", got)
	}
	if len(notes.failures) != 1 || notes.failures[0] != ratingform.FailureMessage {
		t.Errorf("notifications = %+v", notes)
	}
	if form.IsOpen() {
		t.Error("form left open after failure")
	}
}

func TestFoodQueryEncode(t *testing.T) {
	if got := (FoodQuery{}).encode(); got != "" {
		t.Errorf("empty query = %q", got)
	}
	got := FoodQuery{CategoryID: 2, Tag: "soup"}.encode()
	if got != "?category=2&tag=soup" {
		t.Errorf("query = %q", got)
	}
}
