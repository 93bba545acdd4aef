package service

import (
	"context"
	"fmt"

	"github.com/vietsport/eprofile/internal/client/api"
	"github.com/vietsport/eprofile/internal/models"
	"github.com/vietsport/eprofile/internal/profile"
)

// practicePath maps a sport to its practice collection path.
func practicePath(sport profile.Sport) string {
	switch sport {
	case profile.SportArchery:
		return "/api/Archery_Practice"
	case profile.SportShooting:
		return "/api/Shooting_Practice"
	case profile.SportBoxing:
		return "/api/Boxing_Practice"
	case profile.SportTaekwondo:
		return "/api/Taekwondo_Practice"
	default:
		return ""
	}
}

// Practices adapts the per-sport practice-session collections. Unlike
// results, each sport keeps its own row shape, so sports get their own typed
// methods over one shared adapter.
type Practices struct {
	api *api.Client
}

func NewPractices(c *api.Client) *Practices {
	return &Practices{api: c}
}

func listPractices[T any](ctx context.Context, s *Practices, sport profile.Sport, filters Filters, orderby string) ([]T, error) {
	path := practicePath(sport)
	if path == "" {
		return nil, errUnknownSport
	}
	return list[T](ctx, s.api, path, fmt.Sprintf("List %s practice failed", sport), filters, orderby)
}

func createPractice[T any](ctx context.Context, s *Practices, sport profile.Sport, payload any) (*T, error) {
	path := practicePath(sport)
	if path == "" {
		return nil, errUnknownSport
	}
	return create[T](ctx, s.api, path, fmt.Sprintf("Create %s practice failed", sport), payload)
}

func updatePractice[T any](ctx context.Context, s *Practices, sport profile.Sport, id int64, payload any) (*T, error) {
	path := practicePath(sport)
	if path == "" {
		return nil, errUnknownSport
	}
	return update[T](ctx, s.api, fmt.Sprintf("%s/%d", path, id),
		fmt.Sprintf("Update %s practice failed", sport), payload)
}

// Delete removes one practice row of any sport.
func (s *Practices) Delete(ctx context.Context, sport profile.Sport, id int64) (bool, string, error) {
	path := practicePath(sport)
	if path == "" {
		return false, "", errUnknownSport
	}
	return remove(ctx, s.api, fmt.Sprintf("%s/%d", path, id))
}

// Shooting

func (s *Practices) ListShooting(ctx context.Context, filters Filters, orderby string) ([]models.ShootingPractice, error) {
	return listPractices[models.ShootingPractice](ctx, s, profile.SportShooting, filters, orderby)
}

func (s *Practices) ListShootingByAthlete(ctx context.Context, athleteID int64, orderby string) ([]models.ShootingPractice, error) {
	return s.ListShooting(ctx, Filters{"athlete_id": athleteID}, orderby)
}

func (s *Practices) CreateShooting(ctx context.Context, p models.ShootingPractice) (*models.ShootingPractice, error) {
	return createPractice[models.ShootingPractice](ctx, s, profile.SportShooting, p)
}

func (s *Practices) UpdateShooting(ctx context.Context, id int64, p models.ShootingPractice) (*models.ShootingPractice, error) {
	return updatePractice[models.ShootingPractice](ctx, s, profile.SportShooting, id, p)
}

// Archery

func (s *Practices) ListArchery(ctx context.Context, filters Filters, orderby string) ([]models.ArcheryPractice, error) {
	return listPractices[models.ArcheryPractice](ctx, s, profile.SportArchery, filters, orderby)
}

func (s *Practices) ListArcheryByAthlete(ctx context.Context, athleteID int64, orderby string) ([]models.ArcheryPractice, error) {
	return s.ListArchery(ctx, Filters{"athlete_id": athleteID}, orderby)
}

func (s *Practices) CreateArchery(ctx context.Context, p models.ArcheryPractice) (*models.ArcheryPractice, error) {
	return createPractice[models.ArcheryPractice](ctx, s, profile.SportArchery, p)
}

func (s *Practices) UpdateArchery(ctx context.Context, id int64, p models.ArcheryPractice) (*models.ArcheryPractice, error) {
	return updatePractice[models.ArcheryPractice](ctx, s, profile.SportArchery, id, p)
}

// Boxing

func (s *Practices) ListBoxing(ctx context.Context, filters Filters, orderby string) ([]models.BoxingPractice, error) {
	return listPractices[models.BoxingPractice](ctx, s, profile.SportBoxing, filters, orderby)
}

func (s *Practices) ListBoxingByAthlete(ctx context.Context, athleteID int64, orderby string) ([]models.BoxingPractice, error) {
	return s.ListBoxing(ctx, Filters{"athlete_id": athleteID}, orderby)
}

func (s *Practices) CreateBoxing(ctx context.Context, p models.BoxingPractice) (*models.BoxingPractice, error) {
	return createPractice[models.BoxingPractice](ctx, s, profile.SportBoxing, p)
}

func (s *Practices) UpdateBoxing(ctx context.Context, id int64, p models.BoxingPractice) (*models.BoxingPractice, error) {
	return updatePractice[models.BoxingPractice](ctx, s, profile.SportBoxing, id, p)
}

// Taekwondo

func (s *Practices) ListTaekwondo(ctx context.Context, filters Filters, orderby string) ([]models.TaekwondoPractice, error) {
	return listPractices[models.TaekwondoPractice](ctx, s, profile.SportTaekwondo, filters, orderby)
}

func (s *Practices) ListTaekwondoByAthlete(ctx context.Context, athleteID int64, orderby string) ([]models.TaekwondoPractice, error) {
	return s.ListTaekwondo(ctx, Filters{"athlete_id": athleteID}, orderby)
}

func (s *Practices) CreateTaekwondo(ctx context.Context, p models.TaekwondoPractice) (*models.TaekwondoPractice, error) {
	return createPractice[models.TaekwondoPractice](ctx, s, profile.SportTaekwondo, p)
}

func (s *Practices) UpdateTaekwondo(ctx context.Context, id int64, p models.TaekwondoPractice) (*models.TaekwondoPractice, error) {
	return updatePractice[models.TaekwondoPractice](ctx, s, profile.SportTaekwondo, id, p)
}
