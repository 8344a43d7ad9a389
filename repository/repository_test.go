package repository

import (
	"context"
	"errors"
	"testing"

	"food-store-api/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	// every connection to :memory: is its own database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedFood(t *testing.T, db *gorm.DB, name string, tags ...string) (*models.Food, models.FoodCategory) {
	t.Helper()
	ctx := context.Background()
	category := models.FoodCategory{Name: "cat-" + name}
	if err := NewCategoryRepository(db).Create(ctx, &category); err != nil {
		t.Fatalf("create category: %v", err)
	}
	food := &models.Food{
		ID:       99,
		Name:     name,
		Images:   []string{name + ".png"},
		Category: category,
		Rating:   4.9,
		Tags:     tags,
		FoodSizes: []models.FoodSize{
			{ID: 5, Name: "S", Price: 2, Weight: 100},
			{Name: "L", Price: 3.5, Weight: 200},
		},
	}
	if err := NewFoodRepository(db).Create(ctx, food); err != nil {
		t.Fatalf("create food: %v", err)
	}
	return food, category
}

func TestFoodCreateAndGet(t *testing.T) {
	db := newTestDB(t)
	repo := NewFoodRepository(db)
	created, category := seedFood(t, db, "pho", "soup")

	if created.ID == 99 || created.Rating != 0 || created.Status != models.FoodStatusAvailable {
		t.Errorf("server-owned fields not reset: %+v", created)
	}

	got, err := repo.GetByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Category.ID != category.ID || got.Category.Name != category.Name {
		t.Errorf("category = %+v", got.Category)
	}
	if len(got.FoodSizes) != 2 || got.FoodSizes[1].Name != "L" {
		t.Errorf("sizes = %+v", got.FoodSizes)
	}
	if len(got.Images) != 1 || got.Tags[0] != "soup" {
		t.Errorf("images=%v tags=%v", got.Images, got.Tags)
	}

	if _, err := repo.GetByID(context.Background(), 12345); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing food err = %v", err)
	}
}

func TestFoodCreateRejectsInvalid(t *testing.T) {
	repo := NewFoodRepository(newTestDB(t))
	for name, food := range map[string]models.Food{
		"no name":    {Name: " "},
		"bad status": {Name: "x", Status: "SOMETIMES"},
		"neg price":  {Name: "x", FoodSizes: []models.FoodSize{{Name: "S", Price: -1}}},
	} {
		if err := repo.Create(context.Background(), &food); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("%s: err = %v", name, err)
		}
	}
}

func TestFoodListFiltersAndSoftDelete(t *testing.T) {
	db := newTestDB(t)
	repo := NewFoodRepository(db)
	ctx := context.Background()
	pho, _ := seedFood(t, db, "pho", "soup", "beef")
	bun, _ := seedFood(t, db, "bun", "noodle")

	foods, err := repo.List(ctx, FoodFilter{Tag: "beef"})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(foods) != 1 || foods[0].ID != pho.ID {
		t.Errorf("tag filter = %+v", foods)
	}

	foods, _ = repo.List(ctx, FoodFilter{Search: "bu"})
	if len(foods) != 1 || foods[0].ID != bun.ID {
		t.Errorf("search = %+v", foods)
	}

	if err := repo.SoftDelete(ctx, pho.ID); err != nil {
		t.Fatalf("SoftDelete: %v", err)
	}
	foods, _ = repo.List(ctx, FoodFilter{})
	if len(foods) != 1 || foods[0].ID != bun.ID {
		t.Errorf("deleted food still listed: %+v", foods)
	}
	foods, _ = repo.List(ctx, FoodFilter{IncludeDeleted: true})
	if len(foods) != 2 {
		t.Errorf("include deleted = %d foods", len(foods))
	}
	if err := repo.SoftDelete(ctx, 777); !errors.Is(err, ErrNotFound) {
		t.Errorf("delete missing err = %v", err)
	}
}

func TestFoodUpdateReplacesSizes(t *testing.T) {
	db := newTestDB(t)
	repo := NewFoodRepository(db)
	ctx := context.Background()
	pho, category := seedFood(t, db, "pho")

	update := &models.Food{
		ID:        pho.ID,
		Name:      "pho ga",
		Category:  category,
		Status:    models.FoodStatusOutOfStock,
		FoodSizes: []models.FoodSize{{Name: "XL", Price: 7}},
	}
	if err := repo.Update(ctx, update); err != nil {
		t.Fatalf("Update: %v", err)
	}

	got, _ := repo.GetByID(ctx, pho.ID)
	if got.Name != "pho ga" || got.Status != models.FoodStatusOutOfStock {
		t.Errorf("got %+v", got)
	}
	if len(got.FoodSizes) != 1 || got.FoodSizes[0].Name != "XL" {
		t.Errorf("sizes = %+v", got.FoodSizes)
	}

	if err := repo.Update(ctx, &models.Food{ID: 4040, Name: "ghost"}); !errors.Is(err, ErrNotFound) {
		t.Errorf("update missing err = %v", err)
	}
}

func TestCategoryDuplicateName(t *testing.T) {
	repo := NewCategoryRepository(newTestDB(t))
	ctx := context.Background()
	if err := repo.Create(ctx, &models.FoodCategory{Name: "Rice"}); err != nil {
		t.Fatal(err)
	}
	if err := repo.Create(ctx, &models.FoodCategory{Name: "Rice"}); !errors.Is(err, ErrDuplicate) {
		t.Errorf("duplicate err = %v", err)
	}
	if err := repo.Delete(ctx, 999); !errors.Is(err, ErrNotFound) {
		t.Errorf("delete missing err = %v", err)
	}
}

func TestFeedbackRefreshesFoodRating(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	pho, _ := seedFood(t, db, "pho")
	orders := NewOrderRepository(db)
	feedbacks := NewFeedbackRepository(db)

	place := func() *models.Order {
		order := &models.Order{CustomerID: 1}
		if err := orders.Place(ctx, order, []OrderLine{{FoodSizeID: pho.FoodSizes[0].ID, Quantity: 2}}); err != nil {
			t.Fatalf("Place: %v", err)
		}
		return order
	}
	first, second := place(), place()
	if first.TotalPrice != 4 {
		t.Errorf("total = %v, want 4", first.TotalPrice)
	}

	fb := &models.Feedback{ID: models.UnassignedFeedbackID, Content: "good", Rating: 4}
	if err := feedbacks.Create(ctx, first.ID, fb); err != nil {
		t.Fatalf("Create feedback: %v", err)
	}
	if fb.ID <= 0 || fb.CreateAt.IsZero() {
		t.Errorf("feedback not assigned an identity: %+v", fb)
	}
	if err := feedbacks.Create(ctx, second.ID, &models.Feedback{Rating: 1}); err != nil {
		t.Fatalf("Create feedback: %v", err)
	}

	got, _ := NewFoodRepository(db).GetByID(ctx, pho.ID)
	if got.Rating != 2.5 {
		t.Errorf("rating = %v, want 2.5", got.Rating)
	}

	list, err := feedbacks.GetByFoodID(ctx, pho.ID)
	if err != nil || len(list) != 2 {
		t.Errorf("GetByFoodID = %v, %v", list, err)
	}

	if err := feedbacks.Create(ctx, 9999, &models.Feedback{Rating: 3}); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing order err = %v", err)
	}
	if err := feedbacks.Create(ctx, first.ID, &models.Feedback{Rating: 9}); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("bad rating err = %v", err)
	}
}

func TestPlaceRejectsUnavailableFood(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	pho, _ := seedFood(t, db, "pho")
	if err := NewFoodRepository(db).UpdateStatus(ctx, pho.ID, models.FoodStatusOutOfStock); err != nil {
		t.Fatal(err)
	}
	err := NewOrderRepository(db).Place(ctx, &models.Order{CustomerID: 1}, []OrderLine{{FoodSizeID: pho.FoodSizes[0].ID, Quantity: 1}})
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("err = %v, want ErrUnavailable", err)
	}
	err = NewOrderRepository(db).Place(ctx, &models.Order{CustomerID: 1}, []OrderLine{{FoodSizeID: 4242, Quantity: 1}})
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("err = %v, want ErrInvalidInput", err)
	}
}

func TestOrderListAndUpdateStatus(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	pho, _ := seedFood(t, db, "pho")
	orders := NewOrderRepository(db)

	for i := 0; i < 2; i++ {
		if err := orders.Place(ctx, &models.Order{CustomerID: 1}, []OrderLine{{FoodSizeID: pho.FoodSizes[0].ID, Quantity: 1}}); err != nil {
			t.Fatalf("Place: %v", err)
		}
	}
	all, err := orders.List(ctx, "")
	if err != nil || len(all) != 2 {
		t.Fatalf("List = %d orders, %v", len(all), err)
	}

	if err := orders.UpdateStatus(ctx, all[0].ID, models.OrderStatusDelivered); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	delivered, err := orders.List(ctx, models.OrderStatusDelivered)
	if err != nil || len(delivered) != 1 || delivered[0].ID != all[0].ID {
		t.Errorf("delivered = %+v, %v", delivered, err)
	}
	if err := orders.UpdateStatus(ctx, 999, models.OrderStatusCancelled); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing order err = %v", err)
	}
}

func TestCategoryUpdateRejectsTakenName(t *testing.T) {
	repo := NewCategoryRepository(newTestDB(t))
	ctx := context.Background()
	a := models.FoodCategory{Name: "A"}
	b := models.FoodCategory{Name: "B"}
	if err := repo.Create(ctx, &a); err != nil {
		t.Fatal(err)
	}
	if err := repo.Create(ctx, &b); err != nil {
		t.Fatal(err)
	}

	err := repo.Update(ctx, &models.FoodCategory{ID: b.ID, Name: "A"})
	if !errors.Is(err, ErrDuplicate) {
		t.Errorf("rename onto taken name err = %v, want ErrDuplicate", err)
	}
	if err := repo.Update(ctx, &models.FoodCategory{ID: a.ID, Name: "A", Image: "a.png"}); err != nil {
		t.Errorf("keeping own name: %v", err)
	}
}

func TestCategoryDeleteRefusesReferenced(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	pho, category := seedFood(t, db, "pho")
	repo := NewCategoryRepository(db)

	if err := repo.Delete(ctx, category.ID); !errors.Is(err, ErrInUse) {
		t.Errorf("delete referenced err = %v, want ErrInUse", err)
	}
	if err := NewFoodRepository(db).SoftDelete(ctx, pho.ID); err != nil {
		t.Fatal(err)
	}
	if err := repo.Delete(ctx, category.ID); !errors.Is(err, ErrInUse) {
		t.Errorf("soft-deleted food should still hold the category, err = %v", err)
	}

	empty := models.FoodCategory{Name: "empty"}
	if err := repo.Create(ctx, &empty); err != nil {
		t.Fatal(err)
	}
	if err := repo.Delete(ctx, empty.ID); err != nil {
		t.Errorf("delete unused category: %v", err)
	}
}

func TestFoodListTreatsWildcardsLiterally(t *testing.T) {
	db := newTestDB(t)
	repo := NewFoodRepository(db)
	ctx := context.Background()
	seedFood(t, db, "pho", "soup")
	odd, _ := seedFood(t, db, "100%_rice", "50%_off")

	for _, filter := range []FoodFilter{{Tag: "%"}, {Tag: "_"}} {
		foods, err := repo.List(ctx, filter)
		if err != nil {
			t.Fatalf("List(%+v): %v", filter, err)
		}
		if len(foods) != 0 {
			t.Errorf("List(%+v) matched %d foods", filter, len(foods))
		}
	}
	for _, filter := range []FoodFilter{{Search: "%"}, {Search: "_"}} {
		foods, _ := repo.List(ctx, filter)
		if len(foods) != 1 || foods[0].ID != odd.ID {
			t.Errorf("List(%+v) = %+v, want only %q", filter, foods, odd.Name)
		}
	}

	foods, _ := repo.List(ctx, FoodFilter{Search: "0%_r"})
	if len(foods) != 1 || foods[0].ID != odd.ID {
		t.Errorf("literal search = %+v", foods)
	}
	foods, _ = repo.List(ctx, FoodFilter{Tag: "50%_off"})
	if len(foods) != 1 || foods[0].ID != odd.ID {
		t.Errorf("literal tag = %+v", foods)
	}
}
