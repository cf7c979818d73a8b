package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cesargomez89/fullstack/internal/domain"
)

func seedBooking(t *testing.T, db *DB) (*domain.Venue, *domain.Artist) {
	t.Helper()
	ctx := context.Background()

	venue := &domain.Venue{
		Name:          "The Musical Hop",
		City:          "San Francisco",
		State:         "CA",
		Address:       "1015 Folsom Street",
		Genres:        domain.StringSlice{"Jazz", "Reggae"},
		SeekingTalent: true,
	}
	if err := db.CreateVenue(ctx, venue); err != nil {
		t.Fatalf("CreateVenue failed: %v", err)
	}
	artist := &domain.Artist{
		Name:   "Guns N Petals",
		City:   "San Francisco",
		State:  "CA",
		Genres: domain.StringSlice{"Rock n Roll"},
	}
	if err := db.CreateArtist(ctx, artist); err != nil {
		t.Fatalf("CreateArtist failed: %v", err)
	}
	return venue, artist
}

func TestDB_Venues(t *testing.T) {
	db := setupTestDB(t, BookingSchema)
	ctx := context.Background()
	venue, _ := seedBooking(t, db)

	if venue.ID == 0 {
		t.Fatal("Expected venue ID to be set")
	}

	fetched, err := db.GetVenue(ctx, venue.ID)
	if err != nil {
		t.Fatalf("GetVenue failed: %v", err)
	}
	if fetched.Name != venue.Name {
		t.Errorf("Expected name %s, got %s", venue.Name, fetched.Name)
	}
	if len(fetched.Genres) != 2 || fetched.Genres[1] != "Reggae" {
		t.Errorf("Expected genres round trip, got %v", fetched.Genres)
	}
	if !fetched.SeekingTalent {
		t.Error("Expected seeking_talent to be true")
	}

	fetched.Name = "The Dueling Pianos Bar"
	if err := db.UpdateVenue(ctx, fetched); err != nil {
		t.Fatalf("UpdateVenue failed: %v", err)
	}

	results, err := db.SearchVenues(ctx, "piano")
	if err != nil {
		t.Fatalf("SearchVenues failed: %v", err)
	}
	if len(results) != 1 {
		t.Errorf("Expected 1 result, got %d", len(results))
	}

	results, err = db.SearchVenues(ctx, "Hop")
	if err != nil {
		t.Fatalf("SearchVenues failed: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("Expected 0 results after rename, got %d", len(results))
	}

	if _, err := db.GetVenue(ctx, 999); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
	if err := db.UpdateVenue(ctx, &domain.Venue{ID: 999}); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Expected ErrNotFound updating missing venue, got %v", err)
	}
}

func TestDB_Shows(t *testing.T) {
	db := setupTestDB(t, BookingSchema)
	ctx := context.Background()
	venue, artist := seedBooking(t, db)

	start := time.Date(2035, 4, 1, 20, 0, 0, 0, time.FixedZone("PDT", -7*3600))
	show := &domain.Show{ArtistID: artist.ID, VenueID: venue.ID, StartTime: start}
	if err := db.CreateShow(ctx, show); err != nil {
		t.Fatalf("CreateShow failed: %v", err)
	}

	shows, err := db.ListShowsByVenue(ctx, venue.ID)
	if err != nil {
		t.Fatalf("ListShowsByVenue failed: %v", err)
	}
	if len(shows) != 1 {
		t.Fatalf("Expected 1 show, got %d", len(shows))
	}
	if shows[0].ArtistName != artist.Name || shows[0].VenueName != venue.Name {
		t.Errorf("Unexpected listing %+v", shows[0])
	}
	if !shows[0].StartTime.Equal(start) {
		t.Errorf("Expected start %v, got %v", start, shows[0].StartTime)
	}

	byArtist, err := db.ListShowsByArtist(ctx, artist.ID)
	if err != nil {
		t.Fatalf("ListShowsByArtist failed: %v", err)
	}
	if len(byArtist) != 1 {
		t.Errorf("Expected 1 show for artist, got %d", len(byArtist))
	}

	bad := &domain.Show{ArtistID: 999, VenueID: venue.ID, StartTime: start}
	if err := db.CreateShow(ctx, bad); !errors.Is(err, domain.ErrReference) {
		t.Errorf("Expected ErrReference for unknown artist, got %v", err)
	}
}

func TestDB_DeleteVenueCascadesShows(t *testing.T) {
	db := setupTestDB(t, BookingSchema)
	ctx := context.Background()
	venue, artist := seedBooking(t, db)

	if err := db.CreateShow(ctx, &domain.Show{ArtistID: artist.ID, VenueID: venue.ID, StartTime: time.Now()}); err != nil {
		t.Fatalf("CreateShow failed: %v", err)
	}

	if err := db.DeleteVenue(ctx, venue.ID); err != nil {
		t.Fatalf("DeleteVenue failed: %v", err)
	}

	shows, err := db.ListShows(ctx)
	if err != nil {
		t.Fatalf("ListShows failed: %v", err)
	}
	if len(shows) != 0 {
		t.Errorf("Expected shows to be deleted with venue, got %d", len(shows))
	}

	if err := db.DeleteVenue(ctx, venue.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Expected ErrNotFound on second delete, got %v", err)
	}
}

func TestDB_DeleteArtistCascadesShows(t *testing.T) {
	db := setupTestDB(t, BookingSchema)
	ctx := context.Background()
	venue, artist := seedBooking(t, db)

	if err := db.CreateShow(ctx, &domain.Show{ArtistID: artist.ID, VenueID: venue.ID, StartTime: time.Now()}); err != nil {
		t.Fatalf("CreateShow failed: %v", err)
	}
	if err := db.DeleteArtist(ctx, artist.ID); err != nil {
		t.Fatalf("DeleteArtist failed: %v", err)
	}

	shows, _ := db.ListShowsByVenue(ctx, venue.ID)
	if len(shows) != 0 {
		t.Errorf("Expected 0 shows, got %d", len(shows))
	}
	artists, _ := db.ListArtists(ctx)
	if len(artists) != 0 {
		t.Errorf("Expected 0 artists, got %d", len(artists))
	}
}
