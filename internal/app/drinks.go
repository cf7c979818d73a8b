package app

import (
	"context"
	"fmt"

	"github.com/cesargomez89/fullstack/internal/domain"
	"github.com/cesargomez89/fullstack/internal/logger"
	"github.com/cesargomez89/fullstack/internal/store"
)

type DrinkService struct {
	Repo   *store.DB
	Logger *logger.Logger
}

func NewDrinkService(repo *store.DB, log *logger.Logger) *DrinkService {
	return &DrinkService{Repo: repo, Logger: log.WithComponent("drinks")}
}

// ListDrinks returns every drink, or domain.ErrNotFound when there are none.
func (s *DrinkService) ListDrinks(ctx context.Context) ([]domain.Drink, error) {
	drinks, err := s.Repo.ListDrinks(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list drinks: %w", err)
	}
	if len(drinks) == 0 {
		return nil, domain.ErrNotFound
	}
	return drinks, nil
}

// ShortDrinks is ListDrinks in the public representation.
func (s *DrinkService) ShortDrinks(ctx context.Context) ([]domain.ShortDrink, error) {
	drinks, err := s.ListDrinks(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.ShortDrink, 0, len(drinks))
	for _, d := range drinks {
		out = append(out, d.Short())
	}
	return out, nil
}

func (s *DrinkService) CreateDrink(ctx context.Context, d *domain.Drink) error {
	if err := s.Repo.CreateDrink(ctx, d); err != nil {
		return err
	}
	s.Logger.InfoContext(ctx, "Drink created", "drink_id", d.ID, "title", d.Title)
	return nil
}

func (s *DrinkService) UpdateDrink(ctx context.Context, id int, u domain.DrinkUpdate) (*domain.Drink, error) {
	d, err := s.Repo.UpdateDrink(ctx, id, u)
	if err != nil {
		return nil, err
	}
	s.Logger.InfoContext(ctx, "Drink updated", "drink_id", id)
	return d, nil
}

func (s *DrinkService) DeleteDrink(ctx context.Context, id int) error {
	if err := s.Repo.DeleteDrink(ctx, id); err != nil {
		return err
	}
	s.Logger.InfoContext(ctx, "Drink deleted", "drink_id", id)
	return nil
}
