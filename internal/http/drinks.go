package httpapp

import (
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

type DrinkHandler struct {
	base
	Service *app.DrinkService
	Auth    *auth.Authorizer
}

func NewDrinkHandler(svc *app.DrinkService, verifier auth.TokenVerifier, log *logger.Logger) *DrinkHandler {
	h := &DrinkHandler{base: base{Logger: log.WithComponent("drinks_http")}, Service: svc}
	h.Auth = auth.NewAuthorizer(verifier, h.fail)
	return h
}

func (h *DrinkHandler) RegisterRoutes(r chi.Router) {
	can := h.Auth.RequirePermission

	r.Get("/drinks", h.ListDrinks)
	r.With(can(constants.PermGetDrinksDetail)).Get("/drinks-detail", h.ListDrinksDetail)
	r.With(can(constants.PermPostDrinks)).Post("/drinks", h.CreateDrink)
	r.With(can(constants.PermPatchDrinks)).Patch("/drinks/{id}", h.UpdateDrink)
	r.With(can(constants.PermDeleteDrinks)).Delete("/drinks/{id}", h.DeleteDrink)
}

func (h *DrinkHandler) ListDrinks(w http.ResponseWriter, r *http.Request) {
	drinks, err := h.Service.ShortDrinks(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.respond(w, http.StatusOK, envelope{"drinks": drinks})
}

func (h *DrinkHandler) ListDrinksDetail(w http.ResponseWriter, r *http.Request) {
	drinks, err := h.Service.ListDrinks(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.respond(w, http.StatusOK, envelope{"drinks": drinks})
}

func (h *DrinkHandler) CreateDrink(w http.ResponseWriter, r *http.Request) {
	var req dto.DrinkRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if errs := dto.Validate(&req); len(errs) > 0 {
		h.invalid(w, r, errs)
		return
	}

	d := req.ToDrink()
	if err := h.Service.CreateDrink(r.Context(), d); err != nil {
		h.failWrite(w, r, err)
		return
	}
	h.respond(w, http.StatusOK, envelope{"drinks": d})
}

func (h *DrinkHandler) UpdateDrink(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	var req dto.DrinkPatchRequest
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

	d, err := h.Service.UpdateDrink(r.Context(), id, req.ToUpdate())
	if err != nil {
		h.failWrite(w, r, err)
		return
	}
	h.respond(w, http.StatusOK, envelope{"drinks": []domain.Drink{*d}})
}

func (h *DrinkHandler) DeleteDrink(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if err := h.Service.DeleteDrink(r.Context(), id); err != nil {
		h.failWrite(w, r, err)
		return
	}
	h.respond(w, http.StatusOK, envelope{"delete": id})
}
