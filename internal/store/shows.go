package store

import (
	"context"

	"github.com/cesargomez89/fullstack/internal/domain"
)

const showListingQuery = `SELECT s.id, s.start_time,
	v.id AS venue_id, v.name AS venue_name, v.image_link AS venue_image_link,
	a.id AS artist_id, a.name AS artist_name, a.image_link AS artist_image_link
	FROM shows s
	JOIN venues v ON v.id = s.venue_id
	JOIN artists a ON a.id = s.artist_id`

// CreateShow books a show. Unknown artist or venue ids yield domain.ErrReference.
func (db *DB) CreateShow(ctx context.Context, s *domain.Show) error {
	s.StartTime = s.StartTime.UTC()
	id, err := db.insert(ctx, `INSERT INTO shows (artist_id, venue_id, start_time) VALUES (?, ?, ?)`,
		s.ArtistID, s.VenueID, s.StartTime)
	if err != nil {
		return err
	}
	s.ID = id
	return nil
}

func (db *DB) ListShows(ctx context.Context) ([]domain.ShowListing, error) {
	var shows []domain.ShowListing
	err := db.selectAll(ctx, &shows, showListingQuery+` ORDER BY s.start_time, s.id`)
	return shows, err
}

func (db *DB) ListShowsByVenue(ctx context.Context, venueID int) ([]domain.ShowListing, error) {
	var shows []domain.ShowListing
	err := db.selectAll(ctx, &shows, showListingQuery+` WHERE s.venue_id = ? ORDER BY s.start_time, s.id`, venueID)
	return shows, err
}

func (db *DB) ListShowsByArtist(ctx context.Context, artistID int) ([]domain.ShowListing, error) {
	var shows []domain.ShowListing
	err := db.selectAll(ctx, &shows, showListingQuery+` WHERE s.artist_id = ? ORDER BY s.start_time, s.id`, artistID)
	return shows, err
}
