package httpapp

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cesargomez89/fullstack/internal/app"
	"github.com/cesargomez89/fullstack/internal/auth"
	"github.com/cesargomez89/fullstack/internal/constants"
	"github.com/cesargomez89/fullstack/internal/domain"
	apperrors "github.com/cesargomez89/fullstack/internal/errors"
	"github.com/cesargomez89/fullstack/internal/http/dto"
	"github.com/cesargomez89/fullstack/internal/logger"
)

type BookmarkHandler struct {
	base
	Service *app.BookmarkService
	Auth    *auth.Authorizer
}

// NewBookmarkHandler wires the handler to verifier; authentication
// failures are written with the handler's error envelope.
func NewBookmarkHandler(svc *app.BookmarkService, verifier auth.TokenVerifier, log *logger.Logger) *BookmarkHandler {
	h := &BookmarkHandler{base: base{Logger: log.WithComponent("bookmarks_http")}, Service: svc}
	h.Auth = auth.NewAuthorizer(verifier, h.fail)
	return h
}

func (h *BookmarkHandler) RegisterRoutes(r chi.Router) {
	can := h.Auth.RequirePermission

	r.Get("/", h.Welcome)

	r.With(can(constants.PermGetBookmarks)).Get("/bookmarks", h.ListBookmarks)
	r.With(can(constants.PermGetBookmarks)).Post("/bookmarks/search", h.SearchBookmarks)
	r.With(can(constants.PermPostBookmarks)).Post("/bookmarks/create", h.CreateBookmark)
	r.With(can(constants.PermPatchBookmarks)).Patch("/bookmarks/{id}/modify", h.UpdateBookmark)
	r.With(can(constants.PermDeleteBookmarks)).Delete("/bookmarks/{id}/delete", h.DeleteBookmark)

	r.With(can(constants.PermGetDirectories)).Get("/directories", h.ListDirectories)
	r.With(can(constants.PermGetBookmarks)).Get("/directories/{id}", h.DirectoryBookmarks)
	r.With(can(constants.PermPostDirectories)).Post("/directories/create", h.CreateDirectory)
	r.With(can(constants.PermPatchDirectories)).Patch("/directories/{id}/modify", h.RenameDirectory)
	r.With(can(constants.PermDeleteDirectories)).Delete("/directories/{id}/delete", h.DeleteDirectory)
}

func (h *BookmarkHandler) Welcome(w http.ResponseWriter, r *http.Request) {
	h.respond(w, http.StatusOK, envelope{"message": "Welcome to Bookmarkie!"})
}

func (h *BookmarkHandler) ListBookmarks(w http.ResponseWriter, r *http.Request) {
	bookmarks, err := h.Service.ListBookmarks(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.respond(w, http.StatusOK, envelope{"bookmarks": bookmarks})
}

func (h *BookmarkHandler) SearchBookmarks(w http.ResponseWriter, r *http.Request) {
	var req dto.BookmarkSearchRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if errs := dto.Validate(&req); len(errs) > 0 {
		h.invalid(w, r, errs)
		return
	}

	bookmarks, err := h.Service.SearchBookmarks(r.Context(), req.SearchTerm)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.respond(w, http.StatusOK, envelope{"bookmarks": bookmarks, "count": len(bookmarks)})
}

func (h *BookmarkHandler) CreateBookmark(w http.ResponseWriter, r *http.Request) {
	var req dto.BookmarkRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if errs := dto.Validate(&req); len(errs) > 0 {
		h.invalid(w, r, errs)
		return
	}

	b := req.ToBookmark()
	if err := h.Service.CreateBookmark(r.Context(), b); err != nil {
		h.failWrite(w, r, err)
		return
	}
	h.respond(w, http.StatusOK, envelope{
		"message":  fmt.Sprintf("The Bookmark (%s) was created successfully!", bookmarkLabel(b)),
		"bookmark": b,
	})
}

func (h *BookmarkHandler) UpdateBookmark(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	var req dto.BookmarkPatchRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if errs := dto.Validate(&req); len(errs) > 0 {
		h.invalid(w, r, errs)
		return
	}
	if req.Empty() {
		h.writeError(w, r, apperrors.BadRequest("no fields to update", nil))
		return
	}

	b, err := h.Service.UpdateBookmark(r.Context(), id, req.ToUpdate())
	if err != nil {
		h.failWrite(w, r, err)
		return
	}
	h.respond(w, http.StatusOK, envelope{
		"message":  fmt.Sprintf("The Bookmark (%s) was modified successfully!", bookmarkLabel(b)),
		"bookmark": b,
	})
}

func (h *BookmarkHandler) DeleteBookmark(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	b, err := h.Service.DeleteBookmark(r.Context(), id)
	if err != nil {
		h.failWrite(w, r, err)
		return
	}
	h.respond(w, http.StatusOK, envelope{
		"message": fmt.Sprintf("The Bookmark (%s) was deleted successfully!", bookmarkLabel(b)),
		"deleted": id,
	})
}

func (h *BookmarkHandler) ListDirectories(w http.ResponseWriter, r *http.Request) {
	dirs, err := h.Service.ListDirectories(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.respond(w, http.StatusOK, envelope{"directories": dirs})
}

func (h *BookmarkHandler) DirectoryBookmarks(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	bookmarks, err := h.Service.DirectoryBookmarks(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.respond(w, http.StatusOK, envelope{"bookmarks": bookmarks})
}

func (h *BookmarkHandler) CreateDirectory(w http.ResponseWriter, r *http.Request) {
	var req dto.DirectoryRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if errs := dto.Validate(&req); len(errs) > 0 {
		h.invalid(w, r, errs)
		return
	}

	d := &domain.Directory{Name: req.Name}
	if err := h.Service.CreateDirectory(r.Context(), d); err != nil {
		h.failWrite(w, r, err)
		return
	}
	h.respond(w, http.StatusOK, envelope{
		"message":   fmt.Sprintf("The Directory (%s) was created successfully!", d.Name),
		"directory": d,
	})
}

func (h *BookmarkHandler) RenameDirectory(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	var req dto.DirectoryRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if errs := dto.Validate(&req); len(errs) > 0 {
		h.invalid(w, r, errs)
		return
	}

	if err := h.Service.RenameDirectory(r.Context(), id, req.Name); err != nil {
		h.failWrite(w, r, err)
		return
	}
	h.respond(w, http.StatusOK, envelope{
		"message": fmt.Sprintf("The Directory (%s) was modified successfully!", req.Name),
	})
}

func (h *BookmarkHandler) DeleteDirectory(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	d, err := h.Service.DeleteDirectory(r.Context(), id)
	if err != nil {
		h.failWrite(w, r, err)
		return
	}
	h.respond(w, http.StatusOK, envelope{
		"message":           fmt.Sprintf("The Directory (%s) was deleted successfully!", d.Name),
		"deleted":           id,
		"deleted_bookmarks": len(d.Bookmarks),
	})
}

// bookmarkLabel is the title, or the url for untitled bookmarks.
func bookmarkLabel(b *domain.Bookmark) string {
	if b.Title != "" {
		return b.Title
	}
	return b.URL
}
