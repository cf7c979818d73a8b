package store

import (
	"context"

	"github.com/cesargomez89/fullstack/internal/domain"
)

const venueColumns = `id, name, city, state, address, phone, image_link, facebook_link,
	website, genres, seeking_talent, seeking_description`

func (db *DB) CreateVenue(ctx context.Context, v *domain.Venue) error {
	id, err := db.insert(ctx, `INSERT INTO venues (name, city, state, address, phone, image_link,
		facebook_link, website, genres, seeking_talent, seeking_description)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		v.Name, v.City, v.State, v.Address, v.Phone, v.ImageLink,
		v.FacebookLink, v.Website, v.Genres, v.SeekingTalent, v.SeekingDescription)
	if err != nil {
		return err
	}
	v.ID = id
	return nil
}

func (db *DB) GetVenue(ctx context.Context, id int) (*domain.Venue, error) {
	var v domain.Venue
	if err := db.get(ctx, &v, `SELECT `+venueColumns+` FROM venues WHERE id = ?`, id); err != nil {
		return nil, err
	}
	return &v, nil
}

// ListVenues returns every venue ordered by area, then id.
func (db *DB) ListVenues(ctx context.Context) ([]domain.Venue, error) {
	var venues []domain.Venue
	err := db.selectAll(ctx, &venues, `SELECT `+venueColumns+` FROM venues ORDER BY state, city, id`)
	return venues, err
}

// SearchVenues matches the term as a case-insensitive substring of the name.
func (db *DB) SearchVenues(ctx context.Context, term string) ([]domain.Venue, error) {
	var venues []domain.Venue
	err := db.selectAll(ctx, &venues,
		`SELECT `+venueColumns+` FROM venues WHERE LOWER(name) LIKE ? ESCAPE '\' ORDER BY id`,
		likePattern(term))
	return venues, err
}

func (db *DB) UpdateVenue(ctx context.Context, v *domain.Venue) error {
	return db.exec(ctx, `UPDATE venues SET name = ?, city = ?, state = ?, address = ?, phone = ?,
		image_link = ?, facebook_link = ?, website = ?, genres = ?, seeking_talent = ?,
		seeking_description = ? WHERE id = ?`,
		v.Name, v.City, v.State, v.Address, v.Phone, v.ImageLink, v.FacebookLink,
		v.Website, v.Genres, v.SeekingTalent, v.SeekingDescription, v.ID)
}

// DeleteVenue removes the venue and its shows in one transaction.
func (db *DB) DeleteVenue(ctx context.Context, id int) error {
	return db.RunInTx(ctx, func(tx *DB) error {
		if _, err := tx.ExecContext(ctx, tx.Rebind(`DELETE FROM shows WHERE venue_id = ?`), id); err != nil {
			return translate(err)
		}
		return tx.exec(ctx, `DELETE FROM venues WHERE id = ?`, id)
	})
}
