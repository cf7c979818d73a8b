package domain

import "time"

// Directory is a named folder of bookmarks.
type Directory struct {
	ID        int        `json:"id" db:"id"`
	Name      string     `json:"name" db:"name"`
	Bookmarks []Bookmark `json:"urls" db:"-"`
}

// Bookmark is a saved URL, optionally filed in a directory.
type Bookmark struct {
	ID          int       `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	URL         string    `json:"url" db:"url"`
	DateAdded   time.Time `json:"date_add" db:"date_add"`
	DirectoryID *int      `json:"directory_id" db:"directory_id"`
}

// BookmarkUpdate carries the fields of a partial bookmark update.
// Nil fields are left unchanged.
type BookmarkUpdate struct {
	Title       *string
	URL         *string
	DirectoryID *int
}
