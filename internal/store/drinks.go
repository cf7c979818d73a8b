package store

import (
	"context"

	"github.com/cesargomez89/fullstack/internal/domain"
)

func (db *DB) ListDrinks(ctx context.Context) ([]domain.Drink, error) {
	var drinks []domain.Drink
	err := db.selectAll(ctx, &drinks, `SELECT id, title, recipe FROM drinks ORDER BY id`)
	return drinks, err
}

func (db *DB) GetDrink(ctx context.Context, id int) (*domain.Drink, error) {
	var d domain.Drink
	if err := db.get(ctx, &d, `SELECT id, title, recipe FROM drinks WHERE id = ?`, id); err != nil {
		return nil, err
	}
	return &d, nil
}

// CreateDrink inserts the drink. A duplicate title yields domain.ErrConflict.
func (db *DB) CreateDrink(ctx context.Context, d *domain.Drink) error {
	id, err := db.insert(ctx, `INSERT INTO drinks (title, recipe) VALUES (?, ?)`, d.Title, d.Recipe)
	if err != nil {
		return err
	}
	d.ID = id
	return nil
}

// UpdateDrink applies the set fields of u and returns the result.
func (db *DB) UpdateDrink(ctx context.Context, id int, u domain.DrinkUpdate) (*domain.Drink, error) {
	var updated *domain.Drink
	err := db.RunInTx(ctx, func(tx *DB) error {
		d, err := tx.GetDrink(ctx, id)
		if err != nil {
			return err
		}
		if u.Title != nil {
			d.Title = *u.Title
		}
		if u.Recipe != nil {
			d.Recipe = u.Recipe
		}
		if err := tx.exec(ctx, `UPDATE drinks SET title = ?, recipe = ? WHERE id = ?`, d.Title, d.Recipe, d.ID); err != nil {
			return err
		}
		updated = d
		return nil
	})
	return updated, err
}

func (db *DB) DeleteDrink(ctx context.Context, id int) error {
	return db.exec(ctx, `DELETE FROM drinks WHERE id = ?`, id)
}
