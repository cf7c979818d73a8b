package domain

import (
	"database/sql/driver"

	"github.com/goccy/go-json"
)

// Ingredient is one layer of a drink recipe.
type Ingredient struct {
	Name  string `json:"name" validate:"required,max=80"`
	Color string `json:"color" validate:"required,max=40"`
	Parts int    `json:"parts" validate:"gte=1,lte=20"`
}

// Recipe is an ordered ingredient list stored as a JSON column.
type Recipe []Ingredient

func (r Recipe) Value() (driver.Value, error) {
	if len(r) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(r)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (r *Recipe) Scan(value interface{}) error {
	data, err := jsonBytes(value)
	if err != nil || data == nil {
		*r = nil
		return err
	}
	return json.Unmarshal(data, r)
}

// Drink is a menu item with its recipe.
type Drink struct {
	ID     int    `json:"id" db:"id"`
	Title  string `json:"title" db:"title"`
	Recipe Recipe `json:"recipe" db:"recipe"`
}

// ShortIngredient is the public view of an ingredient: no name.
type ShortIngredient struct {
	Color string `json:"color"`
	Parts int    `json:"parts"`
}

// ShortDrink is the public drink representation.
type ShortDrink struct {
	ID     int               `json:"id"`
	Title  string            `json:"title"`
	Recipe []ShortIngredient `json:"recipe"`
}

// Short returns the public view of the drink.
func (d Drink) Short() ShortDrink {
	out := ShortDrink{ID: d.ID, Title: d.Title, Recipe: make([]ShortIngredient, 0, len(d.Recipe))}
	for _, ing := range d.Recipe {
		out.Recipe = append(out.Recipe, ShortIngredient{Color: ing.Color, Parts: ing.Parts})
	}
	return out
}

// DrinkUpdate carries the fields of a partial drink update.
type DrinkUpdate struct {
	Title  *string
	Recipe Recipe
}
