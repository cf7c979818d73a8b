package store

import (
	"context"

	"github.com/cesargomez89/fullstack/internal/domain"
)

// DefaultCategories are inserted by SeedCategories into an empty table.
var DefaultCategories = []string{"Science", "Art", "Geography", "History", "Entertainment", "Sports"}

func (db *DB) ListCategories(ctx context.Context) ([]domain.Category, error) {
	var categories []domain.Category
	err := db.selectAll(ctx, &categories, `SELECT id, type FROM categories ORDER BY id`)
	return categories, err
}

func (db *DB) GetCategory(ctx context.Context, id int) (*domain.Category, error) {
	var c domain.Category
	if err := db.get(ctx, &c, `SELECT id, type FROM categories WHERE id = ?`, id); err != nil {
		return nil, err
	}
	return &c, nil
}

// SeedCategories fills the categories table when it is empty.
func (db *DB) SeedCategories(ctx context.Context) error {
	return db.RunInTx(ctx, func(tx *DB) error {
		var count int
		if err := tx.get(ctx, &count, `SELECT COUNT(*) FROM categories`); err != nil {
			return err
		}
		if count > 0 {
			return nil
		}
		for _, name := range DefaultCategories {
			if _, err := tx.insert(ctx, `INSERT INTO categories (type) VALUES (?)`, name); err != nil {
				return err
			}
		}
		return nil
	})
}
