package store

import (
	"context"

	"github.com/cesargomez89/fullstack/internal/domain"
)

const artistColumns = `id, name, city, state, phone, image_link, facebook_link,
	website, genres, seeking_venue, seeking_description`

func (db *DB) CreateArtist(ctx context.Context, a *domain.Artist) error {
	id, err := db.insert(ctx, `INSERT INTO artists (name, city, state, phone, image_link,
		facebook_link, website, genres, seeking_venue, seeking_description)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.Name, a.City, a.State, a.Phone, a.ImageLink,
		a.FacebookLink, a.Website, a.Genres, a.SeekingVenue, a.SeekingDescription)
	if err != nil {
		return err
	}
	a.ID = id
	return nil
}

func (db *DB) GetArtist(ctx context.Context, id int) (*domain.Artist, error) {
	var a domain.Artist
	if err := db.get(ctx, &a, `SELECT `+artistColumns+` FROM artists WHERE id = ?`, id); err != nil {
		return nil, err
	}
	return &a, nil
}

func (db *DB) ListArtists(ctx context.Context) ([]domain.Artist, error) {
	var artists []domain.Artist
	err := db.selectAll(ctx, &artists, `SELECT `+artistColumns+` FROM artists ORDER BY id`)
	return artists, err
}

func (db *DB) SearchArtists(ctx context.Context, term string) ([]domain.Artist, error) {
	var artists []domain.Artist
	err := db.selectAll(ctx, &artists,
		`SELECT `+artistColumns+` FROM artists WHERE LOWER(name) LIKE ? ESCAPE '\' ORDER BY id`,
		likePattern(term))
	return artists, err
}

func (db *DB) UpdateArtist(ctx context.Context, a *domain.Artist) error {
	return db.exec(ctx, `UPDATE artists SET name = ?, city = ?, state = ?, phone = ?,
		image_link = ?, facebook_link = ?, website = ?, genres = ?, seeking_venue = ?,
		seeking_description = ? WHERE id = ?`,
		a.Name, a.City, a.State, a.Phone, a.ImageLink, a.FacebookLink,
		a.Website, a.Genres, a.SeekingVenue, a.SeekingDescription, a.ID)
}

// DeleteArtist removes the artist and its shows in one transaction.
func (db *DB) DeleteArtist(ctx context.Context, id int) error {
	return db.RunInTx(ctx, func(tx *DB) error {
		if _, err := tx.ExecContext(ctx, tx.Rebind(`DELETE FROM shows WHERE artist_id = ?`), id); err != nil {
			return translate(err)
		}
		return tx.exec(ctx, `DELETE FROM artists WHERE id = ?`, id)
	})
}
