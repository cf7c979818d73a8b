package httpapp

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cesargomez89/fullstack/internal/app"
	"github.com/cesargomez89/fullstack/internal/constants"
	"github.com/cesargomez89/fullstack/internal/logger"
	"github.com/cesargomez89/fullstack/internal/store"
)

var bookingNow = time.Date(2030, time.June, 1, 12, 0, 0, 0, time.UTC)

func newBookingRouter(t *testing.T) http.Handler {
	t.Helper()
	db := newTestStore(t, store.BookingSchema)
	svc := app.NewBookingService(db, logger.Discard(), clockwork.NewFakeClockAt(bookingNow))
	h, err := NewBookingHandler(svc, logger.Discard())
	require.NoError(t, err)
	return newTestRouter(t, constants.AppFyyur, db, h)
}

func venueBody(name, city, state string) map[string]interface{} {
	return map[string]interface{}{
		"name":           name,
		"city":           city,
		"state":          state,
		"address":        "1015 Folsom Street",
		"phone":          "123-123-1234",
		"genres":         []string{"Jazz", "Folk"},
		"seeking_talent": "y",
	}
}

func artistBody(name string) map[string]interface{} {
	return map[string]interface{}{
		"name":          name,
		"city":          "San Francisco",
		"state":         "CA",
		"genres":        []string{"Rock n Roll"},
		"seeking_venue": true,
	}
}

func mustCreate(t *testing.T, h http.Handler, path, key string, body interface{}) int {
	t.Helper()
	rec := do(t, h, request{method: http.MethodPost, path: path, body: body})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return int(readJSON(t, rec)[key].(map[string]interface{})["id"].(float64))
}

func TestBooking_VenueAreas(t *testing.T) {
	h := newBookingRouter(t)
	mustCreate(t, h, "/venues/create", "venue", venueBody("The Musical Hop", "San Francisco", "CA"))
	mustCreate(t, h, "/venues/create", "venue", venueBody("Park Square", "San Francisco", "CA"))
	mustCreate(t, h, "/venues/create", "venue", venueBody("The Dueling Pianos", "New York", "NY"))

	rec := do(t, h, request{method: http.MethodGet, path: "/venues"})

	require.Equal(t, http.StatusOK, rec.Code)
	areas := readJSON(t, rec)["areas"].([]interface{})
	require.Len(t, areas, 2)
	first := areas[0].(map[string]interface{})
	assert.Equal(t, "San Francisco", first["city"])
	assert.Len(t, first["venues"], 2)
}

func TestBooking_CreateVenueFromForm(t *testing.T) {
	h := newBookingRouter(t)

	form := url.Values{
		"name":           {"The Musical Hop"},
		"city":           {"San Francisco"},
		"state":          {"CA"},
		"address":        {"1015 Folsom Street"},
		"genres":         {"Jazz", "Reggae"},
		"seeking_talent": {"y"},
	}
	rec := do(t, h, request{
		method:  http.MethodPost,
		path:    "/venues/create",
		body:    form.Encode(),
		headers: map[string]string{"Content-Type": constants.MimeTypeForm},
	})

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	venue := readJSON(t, rec)["venue"].(map[string]interface{})
	assert.Equal(t, true, venue["seeking_talent"])
	assert.Equal(t, []interface{}{"Jazz", "Reggae"}, venue["genres"])
	assert.Equal(t, "Venue The Musical Hop was successfully listed!", readJSON(t, rec)["message"])
}

func TestBooking_CreateVenueValidation(t *testing.T) {
	h := newBookingRouter(t)

	tests := []struct {
		name  string
		edit  func(map[string]interface{})
		field string
	}{
		{"unknown state", func(b map[string]interface{}) { b["state"] = "ZZ" }, "state"},
		{"unknown genre", func(b map[string]interface{}) { b["genres"] = []string{"Polka"} }, "genres[0]"},
		{"no genres", func(b map[string]interface{}) { b["genres"] = []string{} }, "genres"},
		{"bad website", func(b map[string]interface{}) { b["website"] = "nope" }, "website"},
		{"missing name", func(b map[string]interface{}) { delete(b, "name") }, "name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := venueBody("The Musical Hop", "San Francisco", "CA")
			tt.edit(body)

			rec := do(t, h, request{method: http.MethodPost, path: "/venues/create", body: body})

			require.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, readJSON(t, rec)["fields"], tt.field)
		})
	}
}

func TestBooking_InvalidFormRerendersForBrowsers(t *testing.T) {
	h := newBookingRouter(t)
	body := venueBody("The Musical Hop", "San Francisco", "CA")
	body["state"] = "ZZ"

	rec := do(t, h, request{
		method:  http.MethodPost,
		path:    "/venues/create",
		body:    body,
		headers: map[string]string{"Accept": "text/html"},
	})

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), constants.MimeTypeHTML)
	assert.Contains(t, rec.Body.String(), "The Musical Hop")
}

func TestBooking_ShowsSplitAroundNow(t *testing.T) {
	h := newBookingRouter(t)
	venueID := mustCreate(t, h, "/venues/create", "venue", venueBody("The Musical Hop", "San Francisco", "CA"))
	artistID := mustCreate(t, h, "/artists/create", "artist", artistBody("Guns N Petals"))

	for _, start := range []string{"2019-05-21 21:30:00", "2035-04-01T20:00:00Z", "2035-04-08 20:00"} {
		mustCreate(t, h, "/shows/create", "show", map[string]interface{}{
			"artist_id": artistID, "venue_id": venueID, "start_time": start,
		})
	}

	rec := do(t, h, request{method: http.MethodGet, path: fmt.Sprintf("/venues/%d", venueID)})
	require.Equal(t, http.StatusOK, rec.Code)
	venue := readJSON(t, rec)["venue"].(map[string]interface{})
	assert.Equal(t, float64(1), venue["past_shows_count"])
	assert.Equal(t, float64(2), venue["upcoming_shows_count"])

	rec = do(t, h, request{method: http.MethodGet, path: fmt.Sprintf("/artists/%d", artistID)})
	require.Equal(t, http.StatusOK, rec.Code)
	artist := readJSON(t, rec)["artist"].(map[string]interface{})
	assert.Equal(t, float64(2), artist["upcoming_shows_count"])
	assert.Equal(t, "The Musical Hop", artist["past_shows"].([]interface{})[0].(map[string]interface{})["venue_name"])

	rec = do(t, h, request{method: http.MethodGet, path: "/shows"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, readJSON(t, rec)["shows"], 3)

	rec = do(t, h, request{method: http.MethodPost, path: "/artists/search", body: map[string]string{"search_term": "petals"}})
	require.Equal(t, http.StatusOK, rec.Code)
	body := readJSON(t, rec)
	assert.Equal(t, float64(1), body["count"])
	assert.Equal(t, float64(2), body["data"].([]interface{})[0].(map[string]interface{})["num_upcoming_shows"])
}

func TestBooking_CreateShowFailures(t *testing.T) {
	h := newBookingRouter(t)
	venueID := mustCreate(t, h, "/venues/create", "venue", venueBody("The Musical Hop", "San Francisco", "CA"))

	rec := do(t, h, request{method: http.MethodPost, path: "/shows/create", body: map[string]interface{}{
		"artist_id": 42, "venue_id": venueID, "start_time": "2035-04-01 20:00:00",
	}})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code, rec.Body.String())

	rec = do(t, h, request{method: http.MethodPost, path: "/shows/create", body: map[string]interface{}{
		"artist_id": 1, "venue_id": venueID, "start_time": "next tuesday",
	}})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, readJSON(t, rec)["fields"], "start_time")
}

func TestBooking_DeleteVenueCascades(t *testing.T) {
	h := newBookingRouter(t)
	venueID := mustCreate(t, h, "/venues/create", "venue", venueBody("The Musical Hop", "San Francisco", "CA"))
	artistID := mustCreate(t, h, "/artists/create", "artist", artistBody("Guns N Petals"))
	mustCreate(t, h, "/shows/create", "show", map[string]interface{}{
		"artist_id": artistID, "venue_id": venueID, "start_time": "2035-04-01 20:00:00",
	})

	rec := do(t, h, request{method: http.MethodDelete, path: fmt.Sprintf("/venues/%d", venueID)})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(venueID), readJSON(t, rec)["deleted"])

	rec = do(t, h, request{method: http.MethodGet, path: "/shows"})
	assert.Len(t, readJSON(t, rec)["shows"], 0)

	rec = do(t, h, request{method: http.MethodGet, path: fmt.Sprintf("/venues/%d", venueID)})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, h, request{method: http.MethodDelete, path: fmt.Sprintf("/venues/%d", venueID)})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBooking_EditArtist(t *testing.T) {
	h := newBookingRouter(t)
	artistID := mustCreate(t, h, "/artists/create", "artist", artistBody("Guns N Petals"))
	path := fmt.Sprintf("/artists/%d/edit", artistID)

	rec := do(t, h, request{method: http.MethodGet, path: path})
	require.Equal(t, http.StatusOK, rec.Code)
	body := readJSON(t, rec)
	assert.Equal(t, "Guns N Petals", body["form"].(map[string]interface{})["name"])
	assert.Equal(t, path, body["action"])

	update := artistBody("Guns N Roses")
	rec = do(t, h, request{method: http.MethodPost, path: path, body: update})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "Guns N Roses", readJSON(t, rec)["artist"].(map[string]interface{})["name"])

	rec = do(t, h, request{method: http.MethodPost, path: path, body: update, headers: map[string]string{"Accept": "text/html"}})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, fmt.Sprintf("/artists/%d", artistID), rec.Header().Get("Location"))
}

func TestBooking_HTMLPages(t *testing.T) {
	h := newBookingRouter(t)
	venueID := mustCreate(t, h, "/venues/create", "venue", venueBody("The Musical Hop", "San Francisco", "CA"))
	html := map[string]string{"Accept": "text/html,application/xhtml+xml"}

	tests := []struct {
		path   string
		status int
		want   string
	}{
		{"/", http.StatusOK, "The Musical Hop"},
		{"/venues", http.StatusOK, "San Francisco"},
		{fmt.Sprintf("/venues/%d", venueID), http.StatusOK, "1015 Folsom Street"},
		{"/venues/create", http.StatusOK, "Rock n Roll"},
		{"/shows/create", http.StatusOK, "start_time"},
		{"/artists/999", http.StatusNotFound, "Not Found"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := do(t, h, request{method: http.MethodGet, path: tt.path, headers: html})

			require.Equal(t, tt.status, rec.Code)
			assert.True(t, strings.HasPrefix(rec.Header().Get("Content-Type"), constants.MimeTypeHTML))
			assert.Contains(t, rec.Body.String(), tt.want)
		})
	}
}

func TestBooking_HomeJSON(t *testing.T) {
	h := newBookingRouter(t)
	mustCreate(t, h, "/venues/create", "venue", venueBody("First", "San Francisco", "CA"))
	mustCreate(t, h, "/venues/create", "venue", venueBody("Second", "San Francisco", "CA"))

	rec := do(t, h, request{method: http.MethodGet, path: "/"})

	require.Equal(t, http.StatusOK, rec.Code)
	body := readJSON(t, rec)
	venues := body["recent_venues"].([]interface{})
	require.Len(t, venues, 2)
	assert.Equal(t, "Second", venues[0].(map[string]interface{})["name"])
	assert.Len(t, body["recent_artists"], 0)
}
