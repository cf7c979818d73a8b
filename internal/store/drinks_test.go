package store

import (
	"context"
	"errors"
	"testing"

	"github.com/cesargomez89/fullstack/internal/domain"
)

func TestDB_Drinks(t *testing.T) {
	db := setupTestDB(t, DrinkSchema)
	ctx := context.Background()

	drink := &domain.Drink{
		Title:  "Water",
		Recipe: domain.Recipe{{Name: "water", Color: "blue", Parts: 1}},
	}
	if err := db.CreateDrink(ctx, drink); err != nil {
		t.Fatalf("CreateDrink failed: %v", err)
	}

	dup := &domain.Drink{Title: "Water", Recipe: domain.Recipe{{Name: "water", Color: "clear", Parts: 1}}}
	if err := db.CreateDrink(ctx, dup); !errors.Is(err, domain.ErrConflict) {
		t.Errorf("Expected ErrConflict for duplicate title, got %v", err)
	}

	fetched, err := db.GetDrink(ctx, drink.ID)
	if err != nil {
		t.Fatalf("GetDrink failed: %v", err)
	}
	if len(fetched.Recipe) != 1 || fetched.Recipe[0].Color != "blue" {
		t.Errorf("Expected recipe round trip, got %+v", fetched.Recipe)
	}

	title := "Sparkling Water"
	updated, err := db.UpdateDrink(ctx, drink.ID, domain.DrinkUpdate{Title: &title})
	if err != nil {
		t.Fatalf("UpdateDrink failed: %v", err)
	}
	if updated.Title != title || len(updated.Recipe) != 1 {
		t.Errorf("Unexpected update result %+v", updated)
	}

	if err := db.DeleteDrink(ctx, drink.ID); err != nil {
		t.Fatalf("DeleteDrink failed: %v", err)
	}
	if err := db.DeleteDrink(ctx, drink.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Expected ErrNotFound on second delete, got %v", err)
	}

	drinks, err := db.ListDrinks(ctx)
	if err != nil {
		t.Fatalf("ListDrinks failed: %v", err)
	}
	if len(drinks) != 0 {
		t.Errorf("Expected no drinks, got %d", len(drinks))
	}
}
