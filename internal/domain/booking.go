package domain

import "time"

// Venue is a place that hosts shows.
type Venue struct {
	ID                 int         `json:"id" db:"id"`
	Name               string      `json:"name" db:"name"`
	City               string      `json:"city" db:"city"`
	State              string      `json:"state" db:"state"`
	Address            string      `json:"address" db:"address"`
	Phone              string      `json:"phone" db:"phone"`
	ImageLink          string      `json:"image_link" db:"image_link"`
	FacebookLink       string      `json:"facebook_link" db:"facebook_link"`
	Website            string      `json:"website" db:"website"`
	Genres             StringSlice `json:"genres" db:"genres"`
	SeekingTalent      bool        `json:"seeking_talent" db:"seeking_talent"`
	SeekingDescription string      `json:"seeking_description" db:"seeking_description"`
}

// Artist is a performer that plays shows at venues.
type Artist struct {
	ID                 int         `json:"id" db:"id"`
	Name               string      `json:"name" db:"name"`
	City               string      `json:"city" db:"city"`
	State              string      `json:"state" db:"state"`
	Phone              string      `json:"phone" db:"phone"`
	ImageLink          string      `json:"image_link" db:"image_link"`
	FacebookLink       string      `json:"facebook_link" db:"facebook_link"`
	Website            string      `json:"website" db:"website"`
	Genres             StringSlice `json:"genres" db:"genres"`
	SeekingVenue       bool        `json:"seeking_venue" db:"seeking_venue"`
	SeekingDescription string      `json:"seeking_description" db:"seeking_description"`
}

// Show books an artist at a venue. It is the join between the two.
type Show struct {
	ID        int       `json:"id" db:"id"`
	ArtistID  int       `json:"artist_id" db:"artist_id"`
	VenueID   int       `json:"venue_id" db:"venue_id"`
	StartTime time.Time `json:"start_time" db:"start_time"`
}

// ShowListing is a show joined with the names and images of both sides.
type ShowListing struct {
	ID              int       `json:"id" db:"id"`
	VenueID         int       `json:"venue_id" db:"venue_id"`
	VenueName       string    `json:"venue_name" db:"venue_name"`
	VenueImageLink  string    `json:"venue_image_link" db:"venue_image_link"`
	ArtistID        int       `json:"artist_id" db:"artist_id"`
	ArtistName      string    `json:"artist_name" db:"artist_name"`
	ArtistImageLink string    `json:"artist_image_link" db:"artist_image_link"`
	StartTime       time.Time `json:"start_time" db:"start_time"`
}

// Upcoming reports whether the show starts after now.
func (s ShowListing) Upcoming(now time.Time) bool {
	return s.StartTime.After(now)
}

// Summary is the short form used in listings and search results.
type Summary struct {
	ID               int    `json:"id"`
	Name             string `json:"name"`
	NumUpcomingShows int    `json:"num_upcoming_shows"`
}

// Area groups venues by city and state.
type Area struct {
	City   string    `json:"city"`
	State  string    `json:"state"`
	Venues []Summary `json:"venues"`
}

// SearchResult is the response of a name search.
type SearchResult struct {
	Count int       `json:"count"`
	Data  []Summary `json:"data"`
}

// ShowSplit holds shows partitioned around the current time.
type ShowSplit struct {
	PastShows          []ShowListing `json:"past_shows"`
	UpcomingShows      []ShowListing `json:"upcoming_shows"`
	PastShowsCount     int           `json:"past_shows_count"`
	UpcomingShowsCount int           `json:"upcoming_shows_count"`
}

// SplitShows partitions shows into past and upcoming relative to now.
func SplitShows(shows []ShowListing, now time.Time) ShowSplit {
	split := ShowSplit{
		PastShows:     []ShowListing{},
		UpcomingShows: []ShowListing{},
	}
	for _, s := range shows {
		if s.Upcoming(now) {
			split.UpcomingShows = append(split.UpcomingShows, s)
		} else {
			split.PastShows = append(split.PastShows, s)
		}
	}
	split.PastShowsCount = len(split.PastShows)
	split.UpcomingShowsCount = len(split.UpcomingShows)
	return split
}

// VenueDetail is a venue with its shows.
type VenueDetail struct {
	Venue
	ShowSplit
}

// ArtistDetail is an artist with its shows.
type ArtistDetail struct {
	Artist
	ShowSplit
}
