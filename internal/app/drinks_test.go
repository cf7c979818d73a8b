package app

import (
	"context"
	"errors"
	"testing"

	"github.com/cesargomez89/fullstack/internal/domain"
	"github.com/cesargomez89/fullstack/internal/logger"
	"github.com/cesargomez89/fullstack/internal/store"
)

func TestDrinkService(t *testing.T) {
	svc := NewDrinkService(newTestStore(t, store.DrinkSchema), logger.Discard())
	ctx := context.Background()

	if _, err := svc.ShortDrinks(ctx); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Expected ErrNotFound with no drinks, got %v", err)
	}

	d := &domain.Drink{
		Title: "Matcha Shake",
		Recipe: domain.Recipe{
			{Name: "milk", Color: "grey", Parts: 1},
			{Name: "matcha", Color: "green", Parts: 3},
		},
	}
	if err := svc.CreateDrink(ctx, d); err != nil {
		t.Fatalf("CreateDrink failed: %v", err)
	}

	short, err := svc.ShortDrinks(ctx)
	if err != nil {
		t.Fatalf("ShortDrinks failed: %v", err)
	}
	if len(short) != 1 || len(short[0].Recipe) != 2 || short[0].Recipe[1].Color != "green" {
		t.Errorf("Unexpected short drinks %+v", short)
	}

	recipe := domain.Recipe{{Name: "water", Color: "blue", Parts: 1}}
	updated, err := svc.UpdateDrink(ctx, d.ID, domain.DrinkUpdate{Recipe: recipe})
	if err != nil {
		t.Fatalf("UpdateDrink failed: %v", err)
	}
	if updated.Title != "Matcha Shake" || len(updated.Recipe) != 1 {
		t.Errorf("Unexpected update %+v", updated)
	}

	if err := svc.DeleteDrink(ctx, d.ID); err != nil {
		t.Fatalf("DeleteDrink failed: %v", err)
	}
	if err := svc.DeleteDrink(ctx, d.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Expected ErrNotFound on second delete, got %v", err)
	}
}
