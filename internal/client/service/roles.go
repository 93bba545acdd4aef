package service

import (
	"context"
	"fmt"

	"github.com/vietsport/eprofile/internal/client/api"
	"github.com/vietsport/eprofile/internal/models"
)

// Roles adapts the /api/Role catalog.
type Roles struct {
	api *api.Client
}

func NewRoles(c *api.Client) *Roles {
	return &Roles{api: c}
}

func (s *Roles) List(ctx context.Context, filters Filters, orderby string) ([]models.Role, error) {
	return list[models.Role](ctx, s.api, "/api/Role", "List Roles failed", filters, orderby)
}

func (s *Roles) GetByID(ctx context.Context, id int64) (*models.Role, error) {
	return getOne[models.Role](ctx, s.api, fmt.Sprintf("/api/Role/%d", id), "Get Role failed")
}

func (s *Roles) Create(ctx context.Context, name string) (*models.Role, error) {
	return create[models.Role](ctx, s.api, "/api/Role", "Create Role failed", map[string]any{"name": name})
}

func (s *Roles) Update(ctx context.Context, id int64, name string) (*models.Role, error) {
	return update[models.Role](ctx, s.api, fmt.Sprintf("/api/Role/%d", id), "Update Role failed", map[string]any{"name": name})
}

func (s *Roles) Delete(ctx context.Context, id int64) (bool, string, error) {
	return remove(ctx, s.api, fmt.Sprintf("/api/Role/%d", id))
}
