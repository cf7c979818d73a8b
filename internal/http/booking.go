package httpapp

import (
	"bytes"
	"fmt"
	"html/template"
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/cesargomez89/fullstack/internal/app"
	"github.com/cesargomez89/fullstack/internal/constants"
	"github.com/cesargomez89/fullstack/internal/domain"
	apperrors "github.com/cesargomez89/fullstack/internal/errors"
	"github.com/cesargomez89/fullstack/internal/http/dto"
	"github.com/cesargomez89/fullstack/internal/logger"
	"github.com/cesargomez89/fullstack/web"
)

const recentListings = 10

var bookingPages = []string{
	"pages/home.html",
	"pages/venues.html",
	"pages/artists.html",
	"pages/search.html",
	"pages/show_venue.html",
	"pages/show_artist.html",
	"pages/shows.html",
	"forms/venue.html",
	"forms/artist.html",
	"forms/show.html",
	"errors/404.html",
	"errors/500.html",
}

var templateFuncs = template.FuncMap{
	"contains": slices.Contains[[]string, string],
}

// BookingHandler serves the venue, artist and show pages. Every route
// answers JSON, or HTML when the client accepts text/html.
type BookingHandler struct {
	base
	Service   *app.BookingService
	Templates map[string]*template.Template
}

func NewBookingHandler(svc *app.BookingService, log *logger.Logger) (*BookingHandler, error) {
	h := &BookingHandler{
		base:      base{Logger: log.WithComponent("booking_http")},
		Service:   svc,
		Templates: make(map[string]*template.Template, len(bookingPages)),
	}
	for _, page := range bookingPages {
		tmpl, err := template.New("base.html").Funcs(templateFuncs).ParseFS(web.Files,
			"templates/base.html",
			"templates/"+page,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", page, err)
		}
		h.Templates[page] = tmpl
	}
	return h, nil
}

func (h *BookingHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.Home)

	r.Get("/venues", h.ListVenues)
	r.Post("/venues/search", h.SearchVenues)
	r.Get("/venues/create", h.NewVenueForm)
	r.Post("/venues/create", h.CreateVenue)
	r.Get("/venues/{id}", h.ShowVenue)
	r.Delete("/venues/{id}", h.DeleteVenue)
	r.Get("/venues/{id}/edit", h.EditVenueForm)
	r.Post("/venues/{id}/edit", h.UpdateVenue)

	r.Get("/artists", h.ListArtists)
	r.Post("/artists/search", h.SearchArtists)
	r.Get("/artists/create", h.NewArtistForm)
	r.Post("/artists/create", h.CreateArtist)
	r.Get("/artists/{id}", h.ShowArtist)
	r.Delete("/artists/{id}", h.DeleteArtist)
	r.Get("/artists/{id}/edit", h.EditArtistForm)
	r.Post("/artists/{id}/edit", h.UpdateArtist)

	r.Get("/shows", h.ListShows)
	r.Get("/shows/create", h.NewShowForm)
	r.Post("/shows/create", h.CreateShow)
}

// pageData is what every booking template receives.
type pageData struct {
	Title  string
	Flash  string
	Action string
	Errors map[string]string
	Genres []string
	States []string
	Data   interface{}
}

func wantsHTML(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), constants.MimeTypeHTML)
}

func (h *BookingHandler) render(w http.ResponseWriter, r *http.Request, status int, page string, data pageData) {
	tmpl, ok := h.Templates[page]
	if !ok {
		h.writeError(w, r, apperrors.Internal("unknown template "+page, nil))
		return
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "base.html", data); err != nil {
		h.writeError(w, r, apperrors.Internal("failed to render "+page, err))
		return
	}
	w.Header().Set("Content-Type", constants.MimeTypeHTML+"; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// problem writes err as the error envelope, or as an error page for
// browsers.
func (h *BookingHandler) problem(w http.ResponseWriter, r *http.Request, e *apperrors.Error) {
	if !wantsHTML(r) {
		h.writeError(w, r, e)
		return
	}
	logError(h.Logger, r, e)
	status := e.HTTPStatus()
	if status == http.StatusNotFound {
		h.render(w, r, status, "errors/404.html", pageData{Title: "Not Found"})
		return
	}
	h.render(w, r, status, "errors/500.html", pageData{Title: apperrors.StatusMessage(status), Data: status})
}

func (h *BookingHandler) failRead(w http.ResponseWriter, r *http.Request, err error) {
	h.problem(w, r, apperrors.From(err))
}

func (h *BookingHandler) failMutation(w http.ResponseWriter, r *http.Request, err error) {
	h.problem(w, r, apperrors.FromMutation(err))
}

// invalidForm re-renders the form with the field errors for browsers and
// writes the 400 envelope otherwise.
func (h *BookingHandler) invalidForm(w http.ResponseWriter, r *http.Request, errs []dto.ValidationError, page string, data pageData) {
	if !wantsHTML(r) {
		h.invalid(w, r, errs)
		return
	}
	data.Errors = dto.ToMap(errs)
	data.Genres = dto.Genres
	data.States = dto.States
	h.render(w, r, http.StatusBadRequest, page, data)
}

func (h *BookingHandler) Home(w http.ResponseWriter, r *http.Request) {
	if wantsHTML(r) {
		h.home(w, r, http.StatusOK, "")
		return
	}
	venues, artists, err := h.Service.Recent(r.Context(), recentListings)
	if err != nil {
		h.failRead(w, r, err)
		return
	}
	h.respond(w, http.StatusOK, envelope{"recent_venues": venues, "recent_artists": artists})
}

func (h *BookingHandler) home(w http.ResponseWriter, r *http.Request, status int, flash string) {
	venues, artists, err := h.Service.Recent(r.Context(), recentListings)
	if err != nil {
		h.failRead(w, r, err)
		return
	}
	h.render(w, r, status, "pages/home.html", pageData{
		Flash: flash,
		Data:  map[string]interface{}{"Venues": venues, "Artists": artists},
	})
}

func (h *BookingHandler) ListVenues(w http.ResponseWriter, r *http.Request) {
	areas, err := h.Service.ListVenueAreas(r.Context())
	if err != nil {
		h.failRead(w, r, err)
		return
	}
	if wantsHTML(r) {
		h.render(w, r, http.StatusOK, "pages/venues.html", pageData{Title: "Venues", Data: areas})
		return
	}
	h.respond(w, http.StatusOK, envelope{"areas": areas})
}

func (h *BookingHandler) SearchVenues(w http.ResponseWriter, r *http.Request) {
	var form dto.SearchForm
	if err := decodeBody(w, r, &form); err != nil {
		h.problem(w, r, apperrors.BadRequest(err.Error(), err))
		return
	}

	result, err := h.Service.SearchVenues(r.Context(), form.SearchTerm)
	if err != nil {
		h.failRead(w, r, err)
		return
	}
	h.searchResult(w, r, "venues", form.SearchTerm, result)
}

func (h *BookingHandler) searchResult(w http.ResponseWriter, r *http.Request, kind, term string, result *domain.SearchResult) {
	if wantsHTML(r) {
		h.render(w, r, http.StatusOK, "pages/search.html", pageData{
			Title: "Search",
			Data:  map[string]interface{}{"Kind": kind, "Term": term, "Result": result},
		})
		return
	}
	h.respond(w, http.StatusOK, envelope{"search_term": term, "count": result.Count, "data": result.Data})
}

func (h *BookingHandler) ShowVenue(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		h.failRead(w, r, err)
		return
	}

	venue, err := h.Service.GetVenue(r.Context(), id)
	if err != nil {
		h.failRead(w, r, err)
		return
	}
	if wantsHTML(r) {
		h.render(w, r, http.StatusOK, "pages/show_venue.html", pageData{Title: venue.Name, Data: venue})
		return
	}
	h.respond(w, http.StatusOK, envelope{"venue": venue})
}

func (h *BookingHandler) NewVenueForm(w http.ResponseWriter, r *http.Request) {
	h.form(w, r, "forms/venue.html", "List a new venue", "/venues/create", dto.VenueForm{Genres: []string{}})
}

// form renders an empty or prefilled form, or describes it as JSON.
func (h *BookingHandler) form(w http.ResponseWriter, r *http.Request, page, title, action string, form interface{}) {
	if wantsHTML(r) {
		h.render(w, r, http.StatusOK, page, pageData{
			Title:  title,
			Action: action,
			Genres: dto.Genres,
			States: dto.States,
			Data:   form,
		})
		return
	}
	h.respond(w, http.StatusOK, envelope{
		"form":   form,
		"action": action,
		"genres": dto.Genres,
		"states": dto.States,
	})
}

func (h *BookingHandler) CreateVenue(w http.ResponseWriter, r *http.Request) {
	var form dto.VenueForm
	if err := decodeBody(w, r, &form); err != nil {
		h.problem(w, r, apperrors.BadRequest(err.Error(), err))
		return
	}
	if errs := dto.Validate(&form); len(errs) > 0 {
		h.invalidForm(w, r, errs, "forms/venue.html", pageData{Title: "List a new venue", Action: "/venues/create", Data: form})
		return
	}

	venue := form.Venue()
	if err := h.Service.CreateVenue(r.Context(), venue); err != nil {
		h.failMutation(w, r, err)
		return
	}

	msg := "Venue " + venue.Name + " was successfully listed!"
	if wantsHTML(r) {
		h.home(w, r, http.StatusCreated, msg)
		return
	}
	h.respond(w, http.StatusCreated, envelope{"message": msg, "venue": venue})
}

func (h *BookingHandler) EditVenueForm(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		h.failRead(w, r, err)
		return
	}
	venue, err := h.Service.GetVenue(r.Context(), id)
	if err != nil {
		h.failRead(w, r, err)
		return
	}
	action := "/venues/" + strconv.Itoa(id) + "/edit"
	h.form(w, r, "forms/venue.html", "Edit venue "+venue.Name, action, dto.VenueFormFrom(&venue.Venue))
}

func (h *BookingHandler) UpdateVenue(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		h.failRead(w, r, err)
		return
	}

	var form dto.VenueForm
	if err := decodeBody(w, r, &form); err != nil {
		h.problem(w, r, apperrors.BadRequest(err.Error(), err))
		return
	}
	action := "/venues/" + strconv.Itoa(id) + "/edit"
	if errs := dto.Validate(&form); len(errs) > 0 {
		h.invalidForm(w, r, errs, "forms/venue.html", pageData{Title: "Edit venue", Action: action, Data: form})
		return
	}

	venue := form.Venue()
	venue.ID = id
	if err := h.Service.UpdateVenue(r.Context(), venue); err != nil {
		h.failMutation(w, r, err)
		return
	}

	if wantsHTML(r) {
		http.Redirect(w, r, "/venues/"+strconv.Itoa(id), http.StatusSeeOther)
		return
	}
	h.respond(w, http.StatusOK, envelope{"message": "Venue " + venue.Name + " was successfully updated!", "venue": venue})
}

func (h *BookingHandler) DeleteVenue(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		h.failRead(w, r, err)
		return
	}
	if err := h.Service.DeleteVenue(r.Context(), id); err != nil {
		h.failMutation(w, r, err)
		return
	}
	h.respond(w, http.StatusOK, envelope{"deleted": id, "message": "Venue was successfully deleted!"})
}

func (h *BookingHandler) ListArtists(w http.ResponseWriter, r *http.Request) {
	artists, err := h.Service.ListArtists(r.Context())
	if err != nil {
		h.failRead(w, r, err)
		return
	}
	if wantsHTML(r) {
		h.render(w, r, http.StatusOK, "pages/artists.html", pageData{Title: "Artists", Data: artists})
		return
	}
	h.respond(w, http.StatusOK, envelope{"artists": artists})
}

func (h *BookingHandler) SearchArtists(w http.ResponseWriter, r *http.Request) {
	var form dto.SearchForm
	if err := decodeBody(w, r, &form); err != nil {
		h.problem(w, r, apperrors.BadRequest(err.Error(), err))
		return
	}

	result, err := h.Service.SearchArtists(r.Context(), form.SearchTerm)
	if err != nil {
		h.failRead(w, r, err)
		return
	}
	h.searchResult(w, r, "artists", form.SearchTerm, result)
}

func (h *BookingHandler) ShowArtist(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		h.failRead(w, r, err)
		return
	}

	artist, err := h.Service.GetArtist(r.Context(), id)
	if err != nil {
		h.failRead(w, r, err)
		return
	}
	if wantsHTML(r) {
		h.render(w, r, http.StatusOK, "pages/show_artist.html", pageData{Title: artist.Name, Data: artist})
		return
	}
	h.respond(w, http.StatusOK, envelope{"artist": artist})
}

func (h *BookingHandler) NewArtistForm(w http.ResponseWriter, r *http.Request) {
	h.form(w, r, "forms/artist.html", "List a new artist", "/artists/create", dto.ArtistForm{Genres: []string{}})
}

func (h *BookingHandler) CreateArtist(w http.ResponseWriter, r *http.Request) {
	var form dto.ArtistForm
	if err := decodeBody(w, r, &form); err != nil {
		h.problem(w, r, apperrors.BadRequest(err.Error(), err))
		return
	}
	if errs := dto.Validate(&form); len(errs) > 0 {
		h.invalidForm(w, r, errs, "forms/artist.html", pageData{Title: "List a new artist", Action: "/artists/create", Data: form})
		return
	}

	artist := form.Artist()
	if err := h.Service.CreateArtist(r.Context(), artist); err != nil {
		h.failMutation(w, r, err)
		return
	}

	msg := "Artist " + artist.Name + " was successfully listed!"
	if wantsHTML(r) {
		h.home(w, r, http.StatusCreated, msg)
		return
	}
	h.respond(w, http.StatusCreated, envelope{"message": msg, "artist": artist})
}

func (h *BookingHandler) EditArtistForm(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		h.failRead(w, r, err)
		return
	}
	artist, err := h.Service.GetArtist(r.Context(), id)
	if err != nil {
		h.failRead(w, r, err)
		return
	}
	action := "/artists/" + strconv.Itoa(id) + "/edit"
	h.form(w, r, "forms/artist.html", "Edit artist "+artist.Name, action, dto.ArtistFormFrom(&artist.Artist))
}

func (h *BookingHandler) UpdateArtist(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		h.failRead(w, r, err)
		return
	}

	var form dto.ArtistForm
	if err := decodeBody(w, r, &form); err != nil {
		h.problem(w, r, apperrors.BadRequest(err.Error(), err))
		return
	}
	action := "/artists/" + strconv.Itoa(id) + "/edit"
	if errs := dto.Validate(&form); len(errs) > 0 {
		h.invalidForm(w, r, errs, "forms/artist.html", pageData{Title: "Edit artist", Action: action, Data: form})
		return
	}

	artist := form.Artist()
	artist.ID = id
	if err := h.Service.UpdateArtist(r.Context(), artist); err != nil {
		h.failMutation(w, r, err)
		return
	}

	if wantsHTML(r) {
		http.Redirect(w, r, "/artists/"+strconv.Itoa(id), http.StatusSeeOther)
		return
	}
	h.respond(w, http.StatusOK, envelope{"message": "Artist " + artist.Name + " was successfully updated!", "artist": artist})
}

func (h *BookingHandler) DeleteArtist(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		h.failRead(w, r, err)
		return
	}
	if err := h.Service.DeleteArtist(r.Context(), id); err != nil {
		h.failMutation(w, r, err)
		return
	}
	h.respond(w, http.StatusOK, envelope{"deleted": id, "message": "Artist was successfully deleted!"})
}

func (h *BookingHandler) ListShows(w http.ResponseWriter, r *http.Request) {
	shows, err := h.Service.ListShows(r.Context())
	if err != nil {
		h.failRead(w, r, err)
		return
	}
	if wantsHTML(r) {
		h.render(w, r, http.StatusOK, "pages/shows.html", pageData{Title: "Shows", Data: shows})
		return
	}
	h.respond(w, http.StatusOK, envelope{"shows": shows})
}

func (h *BookingHandler) NewShowForm(w http.ResponseWriter, r *http.Request) {
	h.form(w, r, "forms/show.html", "List a new show", "/shows/create", dto.ShowForm{})
}

func (h *BookingHandler) CreateShow(w http.ResponseWriter, r *http.Request) {
	var form dto.ShowForm
	if err := decodeBody(w, r, &form); err != nil {
		h.problem(w, r, apperrors.BadRequest(err.Error(), err))
		return
	}
	if errs := form.Validate(); len(errs) > 0 {
		h.invalidForm(w, r, errs, "forms/show.html", pageData{Title: "List a new show", Action: "/shows/create", Data: form})
		return
	}

	show := form.Show()
	if err := h.Service.CreateShow(r.Context(), show); err != nil {
		h.failMutation(w, r, err)
		return
	}

	msg := "Show was successfully listed!"
	if wantsHTML(r) {
		h.home(w, r, http.StatusCreated, msg)
		return
	}
	h.respond(w, http.StatusCreated, envelope{"message": msg, "show": show})
}
