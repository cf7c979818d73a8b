package dto

import (
	"fmt"
	"strings"
	"time"

	"github.com/cesargomez89/fullstack/internal/domain"
)

// Genres are the genres a venue or artist can list.
var Genres = []string{
	"Alternative", "Blues", "Classical", "Country", "Electronic", "Folk",
	"Funk", "Hip-Hop", "Heavy Metal", "Instrumental", "Jazz",
	"Musical Theatre", "Pop", "Punk", "R&B", "Reggae", "Rock n Roll",
	"Soul", "Other",
}

// States are the two letter codes accepted for venue and artist locations.
var States = []string{
	"AL", "AK", "AZ", "AR", "CA", "CO", "CT", "DE", "DC", "FL", "GA", "HI",
	"ID", "IL", "IN", "IA", "KS", "KY", "LA", "ME", "MT", "NE", "NV", "NH",
	"NJ", "NM", "NY", "NC", "ND", "OH", "OK", "OR", "MD", "MA", "MI", "MN",
	"MS", "MO", "PA", "RI", "SC", "SD", "TN", "TX", "UT", "VT", "VA", "WA",
	"WV", "WI", "WY",
}

type VenueForm struct {
	Name               string   `json:"name" form:"name" validate:"required,notblank,max=120"`
	City               string   `json:"city" form:"city" validate:"required,max=120"`
	State              string   `json:"state" form:"state" validate:"required,us_state"`
	Address            string   `json:"address" form:"address" validate:"required,max=120"`
	Phone              string   `json:"phone" form:"phone" validate:"max=120"`
	ImageLink          string   `json:"image_link" form:"image_link" validate:"omitempty,url,max=500"`
	FacebookLink       string   `json:"facebook_link" form:"facebook_link" validate:"omitempty,url,max=120"`
	Website            string   `json:"website" form:"website" validate:"omitempty,url,max=120"`
	Genres             []string `json:"genres" form:"genres" validate:"required,min=1,dive,genre"`
	SeekingTalent      YesNo    `json:"seeking_talent" form:"seeking_talent"`
	SeekingDescription string   `json:"seeking_description" form:"seeking_description" validate:"max=500"`
}

func (f *VenueForm) Venue() *domain.Venue {
	return &domain.Venue{
		Name:               strings.TrimSpace(f.Name),
		City:               strings.TrimSpace(f.City),
		State:              f.State,
		Address:            strings.TrimSpace(f.Address),
		Phone:              f.Phone,
		ImageLink:          f.ImageLink,
		FacebookLink:       f.FacebookLink,
		Website:            f.Website,
		Genres:             domain.StringSlice(f.Genres),
		SeekingTalent:      bool(f.SeekingTalent),
		SeekingDescription: f.SeekingDescription,
	}
}

// VenueFormFrom fills the edit form from a stored venue.
func VenueFormFrom(v *domain.Venue) VenueForm {
	return VenueForm{
		Name:               v.Name,
		City:               v.City,
		State:              v.State,
		Address:            v.Address,
		Phone:              v.Phone,
		ImageLink:          v.ImageLink,
		FacebookLink:       v.FacebookLink,
		Website:            v.Website,
		Genres:             []string(v.Genres),
		SeekingTalent:      YesNo(v.SeekingTalent),
		SeekingDescription: v.SeekingDescription,
	}
}

type ArtistForm struct {
	Name               string   `json:"name" form:"name" validate:"required,notblank,max=120"`
	City               string   `json:"city" form:"city" validate:"required,max=120"`
	State              string   `json:"state" form:"state" validate:"required,us_state"`
	Phone              string   `json:"phone" form:"phone" validate:"max=120"`
	ImageLink          string   `json:"image_link" form:"image_link" validate:"omitempty,url,max=500"`
	FacebookLink       string   `json:"facebook_link" form:"facebook_link" validate:"omitempty,url,max=120"`
	Website            string   `json:"website" form:"website" validate:"omitempty,url,max=120"`
	Genres             []string `json:"genres" form:"genres" validate:"required,min=1,dive,genre"`
	SeekingVenue       YesNo    `json:"seeking_venue" form:"seeking_venue"`
	SeekingDescription string   `json:"seeking_description" form:"seeking_description" validate:"max=500"`
}

func (f *ArtistForm) Artist() *domain.Artist {
	return &domain.Artist{
		Name:               strings.TrimSpace(f.Name),
		City:               strings.TrimSpace(f.City),
		State:              f.State,
		Phone:              f.Phone,
		ImageLink:          f.ImageLink,
		FacebookLink:       f.FacebookLink,
		Website:            f.Website,
		Genres:             domain.StringSlice(f.Genres),
		SeekingVenue:       bool(f.SeekingVenue),
		SeekingDescription: f.SeekingDescription,
	}
}

func ArtistFormFrom(a *domain.Artist) ArtistForm {
	return ArtistForm{
		Name:               a.Name,
		City:               a.City,
		State:              a.State,
		Phone:              a.Phone,
		ImageLink:          a.ImageLink,
		FacebookLink:       a.FacebookLink,
		Website:            a.Website,
		Genres:             []string(a.Genres),
		SeekingVenue:       YesNo(a.SeekingVenue),
		SeekingDescription: a.SeekingDescription,
	}
}

type ShowForm struct {
	ArtistID  int    `json:"artist_id" form:"artist_id" validate:"required,gte=1"`
	VenueID   int    `json:"venue_id" form:"venue_id" validate:"required,gte=1"`
	StartTime string `json:"start_time" form:"start_time" validate:"required"`
}

// startTimeLayouts are tried in order. Layouts without a zone are read as UTC.
var startTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04",
}

func ParseStartTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range startTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized time %q", s)
}

// Validate runs the tag checks and then parses the start time.
func (f *ShowForm) Validate() []ValidationError {
	errs := Validate(f)
	if f.StartTime != "" {
		if _, err := ParseStartTime(f.StartTime); err != nil {
			errs = append(errs, ValidationError{Field: "start_time", Message: "start_time must be a date and time such as 2035-04-01 20:00:00"})
		}
	}
	return errs
}

// Show converts a validated form.
func (f *ShowForm) Show() *domain.Show {
	start, _ := ParseStartTime(f.StartTime)
	return &domain.Show{ArtistID: f.ArtistID, VenueID: f.VenueID, StartTime: start}
}

type SearchForm struct {
	SearchTerm string `json:"search_term" form:"search_term"`
}
