package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/vietsport/eprofile/internal/repository"
)

// Collection access failures surfaced to the client.
var (
	ErrUnknownCollection = errors.New("Không tìm thấy tài nguyên")
	ErrNotFound          = errors.New("Không tìm thấy bản ghi")
	ErrUseRegistry       = errors.New("Tạo người dùng qua /api/registry")
)

// collections is the allowlist of collection names the API serves.
var collections = map[string]bool{
	"Users":        true,
	"Athletes":     true,
	"Competitions": true,
	"Role":         true,

	"Archery_Competitions":   true,
	"Shooting_Competitions":  true,
	"Boxing_Competitions":    true,
	"Taekwondo_Competitions": true,

	"Archery_Practice":   true,
	"Shooting_Practice":  true,
	"Boxing_Practice":    true,
	"Taekwondo_Practice": true,
}

// RecordsRepository defines the persistence operations needed for the
// JSONB-backed collections.
type RecordsRepository interface {
	List(ctx context.Context, collection string, filters map[string]string, order *repository.OrderBy) ([]map[string]any, error)
	Get(ctx context.Context, collection string, id int64) (map[string]any, error)
	Create(ctx context.Context, collection string, data map[string]any) (map[string]any, error)
	Update(ctx context.Context, collection string, id int64, data map[string]any) (map[string]any, error)
	Delete(ctx context.Context, collection string, id int64) (bool, error)
}

// UsersStore defines the merged-object operations the Users collection
// needs beyond authentication.
type UsersStore interface {
	List(ctx context.Context, filters map[string]string, order *repository.OrderBy) ([]map[string]any, error)
	GetByID(ctx context.Context, id int64) (map[string]any, error)
	Update(ctx context.Context, id int64, data map[string]any) (map[string]any, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// RecordsService serves CRUD for the allowlisted collections, routing
// Users to the typed table and everything else to the records table.
type RecordsService struct {
	records RecordsRepository
	users   UsersStore
}

// NewRecordsService constructs a RecordsService from the two stores.
func NewRecordsService(records RecordsRepository, users UsersStore) *RecordsService {
	return &RecordsService{records: records, users: users}
}

// List returns a collection's rows, filtered and sorted.
func (s *RecordsService) List(ctx context.Context, collection string, filters map[string]string, order *repository.OrderBy) ([]map[string]any, error) {
	if !collections[collection] {
		return nil, ErrUnknownCollection
	}
	if collection == "Users" {
		return s.users.List(ctx, filters, order)
	}
	return s.records.List(ctx, collection, filters, order)
}

// Get returns a single row by id, or ErrNotFound.
func (s *RecordsService) Get(ctx context.Context, collection string, id int64) (map[string]any, error) {
	if !collections[collection] {
		return nil, ErrUnknownCollection
	}

	var (
		rec map[string]any
		err error
	)
	if collection == "Users" {
		rec, err = s.users.GetByID(ctx, id)
	} else {
		rec, err = s.records.Get(ctx, collection, id)
	}
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return rec, err
}

// Create inserts a new row and returns it with its assigned id. Users
// are created through registration, not here.
func (s *RecordsService) Create(ctx context.Context, collection string, data map[string]any) (map[string]any, error) {
	if !collections[collection] {
		return nil, ErrUnknownCollection
	}
	if collection == "Users" {
		return nil, ErrUseRegistry
	}
	delete(data, "id")
	return s.records.Create(ctx, collection, data)
}

// Update merges the given fields into a row and returns the result, or
// ErrNotFound.
func (s *RecordsService) Update(ctx context.Context, collection string, id int64, data map[string]any) (map[string]any, error) {
	if !collections[collection] {
		return nil, ErrUnknownCollection
	}

	var (
		rec map[string]any
		err error
	)
	if collection == "Users" {
		rec, err = s.users.Update(ctx, id, data)
	} else {
		rec, err = s.records.Update(ctx, collection, id, data)
	}
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return rec, err
}

// Delete soft-deletes a row, or returns ErrNotFound.
func (s *RecordsService) Delete(ctx context.Context, collection string, id int64) error {
	if !collections[collection] {
		return ErrUnknownCollection
	}

	var (
		ok  bool
		err error
	)
	if collection == "Users" {
		ok, err = s.users.Delete(ctx, id)
	} else {
		ok, err = s.records.Delete(ctx, collection, id)
	}
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}
