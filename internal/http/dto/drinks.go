package dto

import (
	"strings"

	"github.com/cesargomez89/fullstack/internal/domain"
)

type DrinkRequest struct {
	Title  string      `json:"title" validate:"required,notblank,max=80"`
	Recipe RecipeInput `json:"recipe" validate:"required,min=1,dive"`
}

func (r *DrinkRequest) ToDrink() *domain.Drink {
	return &domain.Drink{Title: strings.TrimSpace(r.Title), Recipe: domain.Recipe(r.Recipe)}
}

// DrinkPatchRequest updates the title, the recipe or both.
type DrinkPatchRequest struct {
	Title  *string     `json:"title" validate:"omitempty,max=80"`
	Recipe RecipeInput `json:"recipe" validate:"omitempty,min=1,dive"`
}

func (r *DrinkPatchRequest) ToUpdate() domain.DrinkUpdate {
	return domain.DrinkUpdate{Title: nonEmpty(r.Title), Recipe: domain.Recipe(r.Recipe)}
}

func (r *DrinkPatchRequest) Empty() bool {
	u := r.ToUpdate()
	return u.Title == nil && len(u.Recipe) == 0
}
