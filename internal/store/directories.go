package store

import (
	"context"

	"github.com/cesargomez89/fullstack/internal/domain"
)

func (db *DB) CreateDirectory(ctx context.Context, d *domain.Directory) error {
	id, err := db.insert(ctx, `INSERT INTO directories (name) VALUES (?)`, d.Name)
	if err != nil {
		return err
	}
	d.ID = id
	if d.Bookmarks == nil {
		d.Bookmarks = []domain.Bookmark{}
	}
	return nil
}

// GetDirectory returns the directory with its bookmarks.
func (db *DB) GetDirectory(ctx context.Context, id int) (*domain.Directory, error) {
	var d domain.Directory
	if err := db.get(ctx, &d, `SELECT id, name FROM directories WHERE id = ?`, id); err != nil {
		return nil, err
	}
	bookmarks, err := db.ListBookmarksByDirectory(ctx, id)
	if err != nil {
		return nil, err
	}
	d.Bookmarks = bookmarks
	return &d, nil
}

// ListDirectories returns every directory with its bookmarks attached.
func (db *DB) ListDirectories(ctx context.Context) ([]domain.Directory, error) {
	var dirs []domain.Directory
	if err := db.selectAll(ctx, &dirs, `SELECT id, name FROM directories ORDER BY id`); err != nil {
		return nil, err
	}
	if len(dirs) == 0 {
		return dirs, nil
	}

	var filed []domain.Bookmark
	err := db.selectAll(ctx, &filed,
		`SELECT `+bookmarkColumns+` FROM bookmarks WHERE directory_id IS NOT NULL ORDER BY id`)
	if err != nil {
		return nil, err
	}
	byDir := make(map[int][]domain.Bookmark)
	for _, b := range filed {
		byDir[*b.DirectoryID] = append(byDir[*b.DirectoryID], b)
	}
	for i := range dirs {
		dirs[i].Bookmarks = byDir[dirs[i].ID]
		if dirs[i].Bookmarks == nil {
			dirs[i].Bookmarks = []domain.Bookmark{}
		}
	}
	return dirs, nil
}

func (db *DB) RenameDirectory(ctx context.Context, id int, name string) error {
	return db.exec(ctx, `UPDATE directories SET name = ? WHERE id = ?`, name, id)
}

// DeleteDirectory removes the directory and the bookmarks filed in it in
// one transaction.
func (db *DB) DeleteDirectory(ctx context.Context, id int) error {
	return db.RunInTx(ctx, func(tx *DB) error {
		if _, err := tx.ExecContext(ctx, tx.Rebind(`DELETE FROM bookmarks WHERE directory_id = ?`), id); err != nil {
			return translate(err)
		}
		return tx.exec(ctx, `DELETE FROM directories WHERE id = ?`, id)
	})
}
