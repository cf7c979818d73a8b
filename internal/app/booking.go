package app

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/jonboulle/clockwork"

	"github.com/cesargomez89/fullstack/internal/domain"
	"github.com/cesargomez89/fullstack/internal/logger"
	"github.com/cesargomez89/fullstack/internal/store"
)

// BookingService backs the venue, artist and show pages. Whether a show is
// past or upcoming is decided against Clock.
type BookingService struct {
	Repo   *store.DB
	Logger *logger.Logger
	Clock  clockwork.Clock
}

func NewBookingService(repo *store.DB, log *logger.Logger, clock clockwork.Clock) *BookingService {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &BookingService{Repo: repo, Logger: log.WithComponent("booking"), Clock: clock}
}

// upcomingCounts returns the number of upcoming shows per venue and per artist.
func (s *BookingService) upcomingCounts(ctx context.Context) (byVenue, byArtist map[int]int, err error) {
	shows, err := s.Repo.ListShows(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list shows: %w", err)
	}
	now := s.Clock.Now()
	byVenue = make(map[int]int)
	byArtist = make(map[int]int)
	for _, sh := range shows {
		if sh.Upcoming(now) {
			byVenue[sh.VenueID]++
			byArtist[sh.ArtistID]++
		}
	}
	return byVenue, byArtist, nil
}

// ListVenueAreas groups venues by city and state.
func (s *BookingService) ListVenueAreas(ctx context.Context) ([]domain.Area, error) {
	venues, err := s.Repo.ListVenues(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list venues: %w", err)
	}
	counts, _, err := s.upcomingCounts(ctx)
	if err != nil {
		return nil, err
	}

	areas := []domain.Area{}
	index := make(map[[2]string]int)
	for _, v := range venues {
		key := [2]string{v.City, v.State}
		i, ok := index[key]
		if !ok {
			i = len(areas)
			index[key] = i
			areas = append(areas, domain.Area{City: v.City, State: v.State})
		}
		areas[i].Venues = append(areas[i].Venues, domain.Summary{
			ID:               v.ID,
			Name:             v.Name,
			NumUpcomingShows: counts[v.ID],
		})
	}
	return areas, nil
}

func (s *BookingService) SearchVenues(ctx context.Context, term string) (*domain.SearchResult, error) {
	venues, err := s.Repo.SearchVenues(ctx, term)
	if err != nil {
		return nil, fmt.Errorf("failed to search venues: %w", err)
	}
	counts, _, err := s.upcomingCounts(ctx)
	if err != nil {
		return nil, err
	}
	res := &domain.SearchResult{Data: make([]domain.Summary, 0, len(venues))}
	for _, v := range venues {
		res.Data = append(res.Data, domain.Summary{ID: v.ID, Name: v.Name, NumUpcomingShows: counts[v.ID]})
	}
	res.Count = len(res.Data)
	return res, nil
}

func (s *BookingService) GetVenue(ctx context.Context, id int) (*domain.VenueDetail, error) {
	venue, err := s.Repo.GetVenue(ctx, id)
	if err != nil {
		return nil, err
	}
	shows, err := s.Repo.ListShowsByVenue(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list venue shows: %w", err)
	}
	return &domain.VenueDetail{Venue: *venue, ShowSplit: domain.SplitShows(shows, s.Clock.Now())}, nil
}

func (s *BookingService) CreateVenue(ctx context.Context, v *domain.Venue) error {
	if err := s.Repo.CreateVenue(ctx, v); err != nil {
		return err
	}
	s.Logger.InfoContext(ctx, "Venue created", "venue_id", v.ID, "name", v.Name)
	return nil
}

func (s *BookingService) UpdateVenue(ctx context.Context, v *domain.Venue) error {
	if err := s.Repo.UpdateVenue(ctx, v); err != nil {
		return err
	}
	s.Logger.InfoContext(ctx, "Venue updated", "venue_id", v.ID)
	return nil
}

func (s *BookingService) DeleteVenue(ctx context.Context, id int) error {
	if err := s.Repo.DeleteVenue(ctx, id); err != nil {
		return err
	}
	s.Logger.InfoContext(ctx, "Venue deleted", "venue_id", id)
	return nil
}

func (s *BookingService) ListArtists(ctx context.Context) ([]domain.Summary, error) {
	artists, err := s.Repo.ListArtists(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list artists: %w", err)
	}
	_, counts, err := s.upcomingCounts(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Summary, 0, len(artists))
	for _, a := range artists {
		out = append(out, domain.Summary{ID: a.ID, Name: a.Name, NumUpcomingShows: counts[a.ID]})
	}
	return out, nil
}

func (s *BookingService) SearchArtists(ctx context.Context, term string) (*domain.SearchResult, error) {
	artists, err := s.Repo.SearchArtists(ctx, term)
	if err != nil {
		return nil, fmt.Errorf("failed to search artists: %w", err)
	}
	_, counts, err := s.upcomingCounts(ctx)
	if err != nil {
		return nil, err
	}
	res := &domain.SearchResult{Data: make([]domain.Summary, 0, len(artists))}
	for _, a := range artists {
		res.Data = append(res.Data, domain.Summary{ID: a.ID, Name: a.Name, NumUpcomingShows: counts[a.ID]})
	}
	res.Count = len(res.Data)
	return res, nil
}

func (s *BookingService) GetArtist(ctx context.Context, id int) (*domain.ArtistDetail, error) {
	artist, err := s.Repo.GetArtist(ctx, id)
	if err != nil {
		return nil, err
	}
	shows, err := s.Repo.ListShowsByArtist(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list artist shows: %w", err)
	}
	return &domain.ArtistDetail{Artist: *artist, ShowSplit: domain.SplitShows(shows, s.Clock.Now())}, nil
}

func (s *BookingService) CreateArtist(ctx context.Context, a *domain.Artist) error {
	if err := s.Repo.CreateArtist(ctx, a); err != nil {
		return err
	}
	s.Logger.InfoContext(ctx, "Artist created", "artist_id", a.ID, "name", a.Name)
	return nil
}

func (s *BookingService) UpdateArtist(ctx context.Context, a *domain.Artist) error {
	if err := s.Repo.UpdateArtist(ctx, a); err != nil {
		return err
	}
	s.Logger.InfoContext(ctx, "Artist updated", "artist_id", a.ID)
	return nil
}

func (s *BookingService) DeleteArtist(ctx context.Context, id int) error {
	if err := s.Repo.DeleteArtist(ctx, id); err != nil {
		return err
	}
	s.Logger.InfoContext(ctx, "Artist deleted", "artist_id", id)
	return nil
}

func (s *BookingService) ListShows(ctx context.Context) ([]domain.ShowListing, error) {
	shows, err := s.Repo.ListShows(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list shows: %w", err)
	}
	if shows == nil {
		shows = []domain.ShowListing{}
	}
	return shows, nil
}

func (s *BookingService) CreateShow(ctx context.Context, sh *domain.Show) error {
	if err := s.Repo.CreateShow(ctx, sh); err != nil {
		return err
	}
	s.Logger.InfoContext(ctx, "Show created", "show_id", sh.ID, "artist_id", sh.ArtistID, "venue_id", sh.VenueID)
	return nil
}

// Recent returns up to n of the most recently listed venues and artists,
// newest first.
func (s *BookingService) Recent(ctx context.Context, n int) (venues, artists []domain.Summary, err error) {
	vs, err := s.Repo.ListVenues(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list venues: %w", err)
	}
	as, err := s.Repo.ListArtists(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list artists: %w", err)
	}
	byVenue, byArtist, err := s.upcomingCounts(ctx)
	if err != nil {
		return nil, nil, err
	}

	slices.SortFunc(vs, func(a, b domain.Venue) int { return cmp.Compare(b.ID, a.ID) })
	slices.SortFunc(as, func(a, b domain.Artist) int { return cmp.Compare(b.ID, a.ID) })

	venues = []domain.Summary{}
	for _, v := range vs[:min(n, len(vs))] {
		venues = append(venues, domain.Summary{ID: v.ID, Name: v.Name, NumUpcomingShows: byVenue[v.ID]})
	}
	artists = []domain.Summary{}
	for _, a := range as[:min(n, len(as))] {
		artists = append(artists, domain.Summary{ID: a.ID, Name: a.Name, NumUpcomingShows: byArtist[a.ID]})
	}
	return venues, artists, nil
}
