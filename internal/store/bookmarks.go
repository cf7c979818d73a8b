package store

import (
	"context"

	"github.com/cesargomez89/fullstack/internal/domain"
)

const bookmarkColumns = `id, title, url, date_add, directory_id`

func (db *DB) CreateBookmark(ctx context.Context, b *domain.Bookmark) error {
	b.DateAdded = b.DateAdded.UTC()
	id, err := db.insert(ctx, `INSERT INTO bookmarks (title, url, date_add, directory_id) VALUES (?, ?, ?, ?)`,
		b.Title, b.URL, b.DateAdded, b.DirectoryID)
	if err != nil {
		return err
	}
	b.ID = id
	return nil
}

func (db *DB) GetBookmark(ctx context.Context, id int) (*domain.Bookmark, error) {
	var b domain.Bookmark
	if err := db.get(ctx, &b, `SELECT `+bookmarkColumns+` FROM bookmarks WHERE id = ?`, id); err != nil {
		return nil, err
	}
	return &b, nil
}

func (db *DB) ListBookmarks(ctx context.Context) ([]domain.Bookmark, error) {
	var bookmarks []domain.Bookmark
	err := db.selectAll(ctx, &bookmarks, `SELECT `+bookmarkColumns+` FROM bookmarks ORDER BY id`)
	return bookmarks, err
}

func (db *DB) ListBookmarksByDirectory(ctx context.Context, directoryID int) ([]domain.Bookmark, error) {
	bookmarks := []domain.Bookmark{}
	err := db.selectAll(ctx, &bookmarks,
		`SELECT `+bookmarkColumns+` FROM bookmarks WHERE directory_id = ? ORDER BY id`, directoryID)
	return bookmarks, err
}

// SearchBookmarks matches the term against title or url, ignoring case.
func (db *DB) SearchBookmarks(ctx context.Context, term string) ([]domain.Bookmark, error) {
	pattern := likePattern(term)
	var bookmarks []domain.Bookmark
	err := db.selectAll(ctx, &bookmarks,
		`SELECT `+bookmarkColumns+` FROM bookmarks
		WHERE LOWER(title) LIKE ? ESCAPE '\' OR LOWER(url) LIKE ? ESCAPE '\' ORDER BY id`,
		pattern, pattern)
	return bookmarks, err
}

// UpdateBookmark applies the non-nil fields of u and returns the result.
func (db *DB) UpdateBookmark(ctx context.Context, id int, u domain.BookmarkUpdate) (*domain.Bookmark, error) {
	var updated *domain.Bookmark
	err := db.RunInTx(ctx, func(tx *DB) error {
		b, err := tx.GetBookmark(ctx, id)
		if err != nil {
			return err
		}
		if u.Title != nil {
			b.Title = *u.Title
		}
		if u.URL != nil {
			b.URL = *u.URL
		}
		if u.DirectoryID != nil {
			b.DirectoryID = u.DirectoryID
		}
		if err := tx.exec(ctx, `UPDATE bookmarks SET title = ?, url = ?, directory_id = ? WHERE id = ?`,
			b.Title, b.URL, b.DirectoryID, b.ID); err != nil {
			return err
		}
		updated = b
		return nil
	})
	return updated, err
}

func (db *DB) DeleteBookmark(ctx context.Context, id int) error {
	return db.exec(ctx, `DELETE FROM bookmarks WHERE id = ?`, id)
}
