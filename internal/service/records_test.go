package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/vietsport/eprofile/internal/repository"
)

type fakeRecordsRepo struct {
	lastCollection string
	lastData       map[string]any
	missing        bool
}

func (f *fakeRecordsRepo) List(_ context.Context, collection string, _ map[string]string, _ *repository.OrderBy) ([]map[string]any, error) {
	f.lastCollection = collection
	return []map[string]any{{"id": int64(1)}}, nil
}

func (f *fakeRecordsRepo) Get(_ context.Context, collection string, _ int64) (map[string]any, error) {
	f.lastCollection = collection
	if f.missing {
		return nil, sql.ErrNoRows
	}
	return map[string]any{"id": int64(1)}, nil
}

func (f *fakeRecordsRepo) Create(_ context.Context, collection string, data map[string]any) (map[string]any, error) {
	f.lastCollection = collection
	f.lastData = data
	data["id"] = int64(9)
	return data, nil
}

func (f *fakeRecordsRepo) Update(_ context.Context, collection string, id int64, data map[string]any) (map[string]any, error) {
	f.lastCollection = collection
	f.lastData = data
	if f.missing {
		return nil, sql.ErrNoRows
	}
	data["id"] = id
	return data, nil
}

func (f *fakeRecordsRepo) Delete(_ context.Context, collection string, _ int64) (bool, error) {
	f.lastCollection = collection
	return !f.missing, nil
}

type fakeUsersStore struct {
	listed  bool
	got     bool
	updated bool
	deleted bool
}

func (f *fakeUsersStore) List(_ context.Context, _ map[string]string, _ *repository.OrderBy) ([]map[string]any, error) {
	f.listed = true
	return nil, nil
}

func (f *fakeUsersStore) GetByID(_ context.Context, _ int64) (map[string]any, error) {
	f.got = true
	return map[string]any{"id": int64(3)}, nil
}

func (f *fakeUsersStore) Update(_ context.Context, _ int64, _ map[string]any) (map[string]any, error) {
	f.updated = true
	return map[string]any{"id": int64(3)}, nil
}

func (f *fakeUsersStore) Delete(_ context.Context, _ int64) (bool, error) {
	f.deleted = true
	return true, nil
}

func TestRecords_UnknownCollection(t *testing.T) {
	svc := NewRecordsService(&fakeRecordsRepo{}, &fakeUsersStore{})

	if _, err := svc.List(context.Background(), "Secrets", nil, nil); !errors.Is(err, ErrUnknownCollection) {
		t.Errorf("List: expected ErrUnknownCollection, got %v", err)
	}
	if err := svc.Delete(context.Background(), "Secrets", 1); !errors.Is(err, ErrUnknownCollection) {
		t.Errorf("Delete: expected ErrUnknownCollection, got %v", err)
	}
}

func TestRecords_UsersRouteToTypedStore(t *testing.T) {
	users := &fakeUsersStore{}
	svc := NewRecordsService(&fakeRecordsRepo{}, users)
	ctx := context.Background()

	if _, err := svc.List(ctx, "Users", nil, nil); err != nil {
		t.Fatalf("List: %v", err)
	}
	if _, err := svc.Get(ctx, "Users", 3); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if _, err := svc.Update(ctx, "Users", 3, map[string]any{"firstName": "Lan"}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if err := svc.Delete(ctx, "Users", 3); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	if !users.listed || !users.got || !users.updated || !users.deleted {
		t.Errorf("Users operations did not hit the typed store: %+v", users)
	}
}

func TestRecords_CreateUsersRejected(t *testing.T) {
	svc := NewRecordsService(&fakeRecordsRepo{}, &fakeUsersStore{})

	_, err := svc.Create(context.Background(), "Users", map[string]any{"email": "x@vff.vn"})
	if !errors.Is(err, ErrUseRegistry) {
		t.Errorf("expected ErrUseRegistry, got %v", err)
	}
}

func TestRecords_CreateStripsID(t *testing.T) {
	repo := &fakeRecordsRepo{}
	svc := NewRecordsService(repo, &fakeUsersStore{})

	rec, err := svc.Create(context.Background(), "Athletes", map[string]any{
		"id":   float64(5),
		"name": "Lan",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.lastCollection != "Athletes" {
		t.Errorf("expected Athletes, got %q", repo.lastCollection)
	}
	if _, ok := repo.lastData["name"]; !ok {
		t.Errorf("payload not passed through: %v", repo.lastData)
	}
	if rec["id"] != int64(9) {
		t.Errorf("expected assigned id 9, got %v", rec["id"])
	}
}

func TestRecords_NotFoundMapping(t *testing.T) {
	svc := NewRecordsService(&fakeRecordsRepo{missing: true}, &fakeUsersStore{})
	ctx := context.Background()

	if _, err := svc.Get(ctx, "Role", 42); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get: expected ErrNotFound, got %v", err)
	}
	if _, err := svc.Update(ctx, "Role", 42, map[string]any{}); !errors.Is(err, ErrNotFound) {
		t.Errorf("Update: expected ErrNotFound, got %v", err)
	}
	if err := svc.Delete(ctx, "Role", 42); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete: expected ErrNotFound, got %v", err)
	}
}
