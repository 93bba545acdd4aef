package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/vietsport/eprofile/internal/client/api"
	"github.com/vietsport/eprofile/internal/models"
	"github.com/vietsport/eprofile/internal/profile"
)

// ErrUserNotFound is returned when neither lookup strategy finds the user.
var ErrUserNotFound = errors.New("Không tìm thấy người dùng")

// Users adapts the /api/Users collection.
type Users struct {
	api *api.Client
}

func NewUsers(c *api.Client) *Users {
	return &Users{api: c}
}

// List fetches users matching the filters.
func (s *Users) List(ctx context.Context, filters Filters, orderby string) ([]models.User, error) {
	return list[models.User](ctx, s.api, "/api/Users", "List Users failed", filters, orderby)
}

// ListAthletes fetches all users and keeps the ones whose role classifies as
// athlete.
func (s *Users) ListAthletes(ctx context.Context) ([]models.User, error) {
	users, err := s.List(ctx, nil, "id-asc")
	if err != nil {
		return nil, err
	}
	out := make([]models.User, 0, len(users))
	for _, u := range users {
		if profile.ClassifyRole(u.Role) == profile.RoleAthlete {
			out = append(out, u)
		}
	}
	return out, nil
}

// ListCoaches fetches all users and keeps the ones whose role classifies as
// coach.
func (s *Users) ListCoaches(ctx context.Context) ([]models.User, error) {
	users, err := s.List(ctx, nil, "id-asc")
	if err != nil {
		return nil, err
	}
	out := make([]models.User, 0, len(users))
	for _, u := range users {
		if profile.ClassifyRole(u.Role) == profile.RoleCoach {
			out = append(out, u)
		}
	}
	return out, nil
}

// GetByID fetches one user directly. A non-success envelope yields nil
// without an error; some deployments do not support single-record fetch.
func (s *Users) GetByID(ctx context.Context, id int64) (*models.User, error) {
	var env models.Envelope[models.User]
	if err := s.api.Get(ctx, fmt.Sprintf("/api/Users/%d", id), nil, &env); err != nil {
		return nil, err
	}
	if env.Status != models.StatusSuccess {
		return nil, nil
	}
	return &env.Data, nil
}

// GetByIDFromList fetches the full list and scans for the id, the fallback
// for APIs that do not serve /api/Users/{id} reliably.
func (s *Users) GetByIDFromList(ctx context.Context, id int64) (*models.User, error) {
	users, err := s.List(ctx, nil, "id-asc")
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].ID == id {
			return &users[i], nil
		}
	}
	return nil, nil
}

// Resolve tries the direct fetch first, then the list scan.
func (s *Users) Resolve(ctx context.Context, id int64) (*models.User, error) {
	u, err := s.GetByID(ctx, id)
	if err == nil && u != nil {
		return u, nil
	}
	return s.GetByIDFromList(ctx, id)
}

// Update patches the user with the given fields.
func (s *Users) Update(ctx context.Context, id int64, patch map[string]any) error {
	_, err := update[json.RawMessage](ctx, s.api, fmt.Sprintf("/api/Users/%d", id), "Cập nhật thất bại", patch)
	return err
}

// UpdateMerged fetches the current record, merges the patch over it, strips
// the server-owned fields, and puts the result back. Last write wins; there
// is no concurrency guard.
func (s *Users) UpdateMerged(ctx context.Context, id int64, patch map[string]any) error {
	current, err := s.Resolve(ctx, id)
	if err != nil {
		return err
	}
	if current == nil {
		return ErrUserNotFound
	}
	merged, err := stripID(current)
	if err != nil {
		return err
	}
	delete(merged, "created_at")
	delete(merged, "updated_at")
	for k, v := range patch {
		if v == nil {
			continue
		}
		merged[k] = v
	}
	delete(merged, "id")

	var env models.Envelope[json.RawMessage]
	if err := s.api.Put(ctx, fmt.Sprintf("/api/Users/%d", id), merged, &env); err != nil {
		return err
	}
	if env.Status != models.StatusSuccess {
		return envelopeErr(env.Message, "Cập nhật thất bại")
	}
	return nil
}

// Delete removes the user, reporting the envelope outcome.
func (s *Users) Delete(ctx context.Context, id int64) (bool, string, error) {
	return remove(ctx, s.api, fmt.Sprintf("/api/Users/%d", id))
}

// Athletes adapts the /api/Athletes supplementary-profile collection.
type Athletes struct {
	api *api.Client
}

func NewAthletes(c *api.Client) *Athletes {
	return &Athletes{api: c}
}

// List fetches athlete profiles matching the filters.
func (s *Athletes) List(ctx context.Context, filters Filters, orderby string) ([]models.Athlete, error) {
	return list[models.Athlete](ctx, s.api, "/api/Athletes", "Fetch Athletes failed", filters, orderby)
}

// GetByUserID returns the first athlete profile matching user_id, nil when
// none exists.
func (s *Athletes) GetByUserID(ctx context.Context, userID int64) (*models.Athlete, error) {
	rows, err := s.List(ctx, Filters{"user_id": userID}, "")
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}
