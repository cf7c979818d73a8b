package app

import (
	"context"
	"fmt"

	"github.com/jonboulle/clockwork"

	"github.com/cesargomez89/fullstack/internal/domain"
	"github.com/cesargomez89/fullstack/internal/logger"
	"github.com/cesargomez89/fullstack/internal/store"
)

type BookmarkService struct {
	Repo   *store.DB
	Logger *logger.Logger
	Clock  clockwork.Clock
}

func NewBookmarkService(repo *store.DB, log *logger.Logger, clock clockwork.Clock) *BookmarkService {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &BookmarkService{Repo: repo, Logger: log.WithComponent("bookmarks"), Clock: clock}
}

// ListBookmarks returns every bookmark. An empty store is reported as
// domain.ErrNotFound.
func (s *BookmarkService) ListBookmarks(ctx context.Context) ([]domain.Bookmark, error) {
	bookmarks, err := s.Repo.ListBookmarks(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookmarks: %w", err)
	}
	if len(bookmarks) == 0 {
		return nil, domain.ErrNotFound
	}
	return bookmarks, nil
}

func (s *BookmarkService) SearchBookmarks(ctx context.Context, term string) ([]domain.Bookmark, error) {
	bookmarks, err := s.Repo.SearchBookmarks(ctx, term)
	if err != nil {
		return nil, fmt.Errorf("failed to search bookmarks: %w", err)
	}
	if bookmarks == nil {
		bookmarks = []domain.Bookmark{}
	}
	return bookmarks, nil
}

func (s *BookmarkService) ListDirectories(ctx context.Context) ([]domain.Directory, error) {
	dirs, err := s.Repo.ListDirectories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list directories: %w", err)
	}
	if len(dirs) == 0 {
		return nil, domain.ErrNotFound
	}
	return dirs, nil
}

// DirectoryBookmarks returns the bookmarks of a directory. A missing or
// empty directory is reported as domain.ErrNotFound.
func (s *BookmarkService) DirectoryBookmarks(ctx context.Context, id int) ([]domain.Bookmark, error) {
	dir, err := s.Repo.GetDirectory(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(dir.Bookmarks) == 0 {
		return nil, domain.ErrNotFound
	}
	return dir.Bookmarks, nil
}

func (s *BookmarkService) CreateBookmark(ctx context.Context, b *domain.Bookmark) error {
	b.DateAdded = s.Clock.Now()
	if err := s.Repo.CreateBookmark(ctx, b); err != nil {
		return err
	}
	s.Logger.InfoContext(ctx, "Bookmark created", "bookmark_id", b.ID, "url", b.URL)
	return nil
}

func (s *BookmarkService) UpdateBookmark(ctx context.Context, id int, u domain.BookmarkUpdate) (*domain.Bookmark, error) {
	b, err := s.Repo.UpdateBookmark(ctx, id, u)
	if err != nil {
		return nil, err
	}
	s.Logger.InfoContext(ctx, "Bookmark updated", "bookmark_id", id)
	return b, nil
}

func (s *BookmarkService) DeleteBookmark(ctx context.Context, id int) (*domain.Bookmark, error) {
	b, err := s.Repo.GetBookmark(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.DeleteBookmark(ctx, id); err != nil {
		return nil, err
	}
	s.Logger.InfoContext(ctx, "Bookmark deleted", "bookmark_id", id)
	return b, nil
}

func (s *BookmarkService) CreateDirectory(ctx context.Context, d *domain.Directory) error {
	if err := s.Repo.CreateDirectory(ctx, d); err != nil {
		return err
	}
	s.Logger.InfoContext(ctx, "Directory created", "directory_id", d.ID, "name", d.Name)
	return nil
}

func (s *BookmarkService) RenameDirectory(ctx context.Context, id int, name string) error {
	if err := s.Repo.RenameDirectory(ctx, id, name); err != nil {
		return err
	}
	s.Logger.InfoContext(ctx, "Directory renamed", "directory_id", id, "name", name)
	return nil
}

// DeleteDirectory removes the directory and every bookmark filed in it.
func (s *BookmarkService) DeleteDirectory(ctx context.Context, id int) (*domain.Directory, error) {
	dir, err := s.Repo.GetDirectory(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.DeleteDirectory(ctx, id); err != nil {
		return nil, err
	}
	s.Logger.InfoContext(ctx, "Directory deleted", "directory_id", id, "bookmarks", len(dir.Bookmarks))
	return dir, nil
}
