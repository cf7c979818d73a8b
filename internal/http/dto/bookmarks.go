package dto

import (
	"strings"

	"github.com/cesargomez89/fullstack/internal/domain"
)

type BookmarkRequest struct {
	Title       string `json:"title" validate:"max=256"`
	URL         string `json:"url" validate:"required,url"`
	DirectoryID *int   `json:"directory_id" validate:"omitempty,gte=1"`
}

func (r *BookmarkRequest) ToBookmark() *domain.Bookmark {
	return &domain.Bookmark{
		Title:       strings.TrimSpace(r.Title),
		URL:         strings.TrimSpace(r.URL),
		DirectoryID: r.DirectoryID,
	}
}

// BookmarkPatchRequest is a partial update. Empty strings count as absent.
type BookmarkPatchRequest struct {
	Title       *string `json:"title" validate:"omitempty,max=256"`
	URL         *string `json:"url" validate:"omitempty,url_or_blank"`
	DirectoryID *int    `json:"directory_id" validate:"omitempty,gte=1"`
}

func (r *BookmarkPatchRequest) ToUpdate() domain.BookmarkUpdate {
	return domain.BookmarkUpdate{
		Title:       nonEmpty(r.Title),
		URL:         nonEmpty(r.URL),
		DirectoryID: r.DirectoryID,
	}
}

// Empty reports whether the patch changes nothing.
func (r *BookmarkPatchRequest) Empty() bool {
	u := r.ToUpdate()
	return u.Title == nil && u.URL == nil && u.DirectoryID == nil
}

type DirectoryRequest struct {
	Name string `json:"name" validate:"required,notblank,max=50"`
}

type BookmarkSearchRequest struct {
	SearchTerm string `json:"search_term" validate:"required"`
}

func nonEmpty(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
