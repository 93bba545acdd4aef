package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"

	"github.com/vietsport/eprofile/internal/models"
)

type fakeUsersRepo struct {
	taken bool
	cred  *models.Credential

	createdEmail   string
	createdHash    []byte
	createdRole    string
	createdAt      string
	createdProfile map[string]any
}

func (f *fakeUsersRepo) EmailTaken(_ context.Context, _ string) (bool, error) {
	return f.taken, nil
}

func (f *fakeUsersRepo) Create(_ context.Context, email string, hash []byte, role, createdAt string, profile map[string]any) (int64, error) {
	f.createdEmail = email
	f.createdHash = hash
	f.createdRole = role
	f.createdAt = createdAt
	f.createdProfile = profile
	return 42, nil
}

func (f *fakeUsersRepo) GetByEmail(_ context.Context, _ string) (*models.Credential, error) {
	if f.cred == nil {
		return nil, sql.ErrNoRows
	}
	return f.cred, nil
}

func newTestAuth(repo *fakeUsersRepo) *AuthService {
	return NewAuthService(repo, NewTokenIssuer("test-secret", time.Hour))
}

func TestRegister_EmailTaken(t *testing.T) {
	svc := newTestAuth(&fakeUsersRepo{taken: true})

	_, err := svc.Register(context.Background(), RegisterParams{Email: "lan@vff.vn", Password: "pw"})
	if !errors.Is(err, ErrEmailTaken) {
		t.Errorf("expected ErrEmailTaken, got %v", err)
	}
}

func TestRegister_HashesPasswordAndDefaults(t *testing.T) {
	repo := &fakeUsersRepo{}
	svc := newTestAuth(repo)

	id, err := svc.Register(context.Background(), RegisterParams{
		Email:    "lan@vff.vn",
		Password: "s3cret",
		Profile:  map[string]any{"firstName": "Lan"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != 42 {
		t.Errorf("expected id 42, got %d", id)
	}
	if bcrypt.CompareHashAndPassword(repo.createdHash, []byte("s3cret")) != nil {
		t.Errorf("stored hash does not match password")
	}
	if repo.createdRole != "Management" {
		t.Errorf("expected default role Management, got %q", repo.createdRole)
	}
	if repo.createdAt == "" {
		t.Errorf("expected created_at to be filled in")
	}
	if repo.createdProfile["firstName"] != "Lan" {
		t.Errorf("profile not passed through: %v", repo.createdProfile)
	}
}

func testCredential(t *testing.T, password string) *models.Credential {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return &models.Credential{
		UserID:       3,
		Email:        "lan@vff.vn",
		PasswordHash: hash,
		AccessRole:   "Athlete",
		IsActive:     1,
		CreatedAt:    "2025-03-01 10:00:00",
	}
}

func TestLogin_Success(t *testing.T) {
	svc := newTestAuth(&fakeUsersRepo{cred: testCredential(t, "s3cret")})

	result, err := svc.Login(context.Background(), "lan@vff.vn", "s3cret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.User.UserID != 3 || result.User.AccessRole != "Athlete" {
		t.Errorf("unexpected user payload: %+v", result.User)
	}
	if result.RefreshToken == "" {
		t.Errorf("expected a refresh token")
	}

	claims := &models.TokenClaims{}
	parsed, err := jwt.ParseWithClaims(result.AccessToken, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("access token does not verify: %v", err)
	}
	if claims.UserID != 3 || claims.Email != "lan@vff.vn" {
		t.Errorf("unexpected claims: %+v", claims)
	}
}

func TestLogin_Failures(t *testing.T) {
	cred := testCredential(t, "s3cret")
	inactive := *cred
	inactive.IsActive = 0

	cases := []struct {
		name     string
		repo     *fakeUsersRepo
		password string
		want     error
	}{
		{"unknown email", &fakeUsersRepo{}, "s3cret", ErrInvalidCredentials},
		{"wrong password", &fakeUsersRepo{cred: cred}, "nope", ErrInvalidCredentials},
		{"inactive account", &fakeUsersRepo{cred: &inactive}, "s3cret", ErrInactiveAccount},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := newTestAuth(tc.repo).Login(context.Background(), "lan@vff.vn", tc.password)
			if !errors.Is(err, tc.want) {
				t.Errorf("expected %v, got %v", tc.want, err)
			}
		})
	}
}
