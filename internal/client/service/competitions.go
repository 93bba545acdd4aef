package service

import (
	"context"
	"fmt"

	"github.com/vietsport/eprofile/internal/client/api"
	"github.com/vietsport/eprofile/internal/models"
	"github.com/vietsport/eprofile/internal/profile"
)

// Competitions adapts the /api/Competitions master catalog.
type Competitions struct {
	api *api.Client
}

func NewCompetitions(c *api.Client) *Competitions {
	return &Competitions{api: c}
}

// List fetches catalog rows matching the filters.
func (s *Competitions) List(ctx context.Context, filters Filters, orderby string) ([]models.Competition, error) {
	return list[models.Competition](ctx, s.api, "/api/Competitions", "List Competitions failed", filters, orderby)
}

// ListBySport filters the catalog by the Vietnamese sport_type label, newest
// first, matching the competition pickers on the per-sport forms.
func (s *Competitions) ListBySport(ctx context.Context, sport profile.Sport) ([]models.Competition, error) {
	return s.List(ctx, Filters{"sport_type": profile.SportLabelVN(sport)}, "id-desc")
}

// Create adds a catalog row.
func (s *Competitions) Create(ctx context.Context, payload models.Competition) (*models.Competition, error) {
	return create[models.Competition](ctx, s.api, "/api/Competitions", "Create Competition failed", payload)
}

// Update replaces a catalog row.
func (s *Competitions) Update(ctx context.Context, id int64, payload models.Competition) (*models.Competition, error) {
	return update[models.Competition](ctx, s.api, fmt.Sprintf("/api/Competitions/%d", id), "Update Competition failed", payload)
}

// Delete removes a catalog row, reporting the envelope outcome.
func (s *Competitions) Delete(ctx context.Context, id int64) (bool, string, error) {
	return remove(ctx, s.api, fmt.Sprintf("/api/Competitions/%d", id))
}

// Results adapts the four per-sport competition-result collections. The row
// shape is identical across sports; the sport only picks the collection.
type Results struct {
	api *api.Client
}

func NewResults(c *api.Client) *Results {
	return &Results{api: c}
}

// resultsPath maps a sport to its collection path.
func resultsPath(sport profile.Sport) string {
	switch sport {
	case profile.SportArchery:
		return "/api/Archery_Competitions"
	case profile.SportShooting:
		return "/api/Shooting_Competitions"
	case profile.SportBoxing:
		return "/api/Boxing_Competitions"
	case profile.SportTaekwondo:
		return "/api/Taekwondo_Competitions"
	default:
		return ""
	}
}

var errUnknownSport = fmt.Errorf("môn thể thao không hợp lệ")

// List fetches result rows for one sport.
func (s *Results) List(ctx context.Context, sport profile.Sport, filters Filters, orderby string) ([]models.CompetitionResult, error) {
	path := resultsPath(sport)
	if path == "" {
		return nil, errUnknownSport
	}
	return list[models.CompetitionResult](ctx, s.api, path,
		fmt.Sprintf("List %s competitions failed", sport), filters, orderby)
}

// ListByAthlete adds athlete_id to the filter set.
func (s *Results) ListByAthlete(ctx context.Context, sport profile.Sport, athleteID int64, orderby string) ([]models.CompetitionResult, error) {
	return s.List(ctx, sport, Filters{"athlete_id": athleteID}, orderby)
}

// GetByID fetches one result row.
func (s *Results) GetByID(ctx context.Context, sport profile.Sport, id int64) (*models.CompetitionResult, error) {
	path := resultsPath(sport)
	if path == "" {
		return nil, errUnknownSport
	}
	return getOne[models.CompetitionResult](ctx, s.api, fmt.Sprintf("%s/%d", path, id),
		fmt.Sprintf("Get %s competition failed", sport))
}

// Create adds a result row; the id field is stripped before sending.
func (s *Results) Create(ctx context.Context, sport profile.Sport, payload models.CompetitionResult) (*models.CompetitionResult, error) {
	path := resultsPath(sport)
	if path == "" {
		return nil, errUnknownSport
	}
	return create[models.CompetitionResult](ctx, s.api, path,
		fmt.Sprintf("Create %s competition failed", sport), payload)
}

// Update replaces a result row.
func (s *Results) Update(ctx context.Context, sport profile.Sport, id int64, payload models.CompetitionResult) (*models.CompetitionResult, error) {
	path := resultsPath(sport)
	if path == "" {
		return nil, errUnknownSport
	}
	return update[models.CompetitionResult](ctx, s.api, fmt.Sprintf("%s/%d", path, id),
		fmt.Sprintf("Update %s competition failed", sport), payload)
}

// Delete removes a result row, reporting the envelope outcome.
func (s *Results) Delete(ctx context.Context, sport profile.Sport, id int64) (bool, string, error) {
	path := resultsPath(sport)
	if path == "" {
		return false, "", errUnknownSport
	}
	return remove(ctx, s.api, fmt.Sprintf("%s/%d", path, id))
}
