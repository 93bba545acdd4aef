// Package service provides the business logic of the development API
// server: authentication and collection access, delegating persistence
// to repository interfaces.
package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/vietsport/eprofile/internal/models"
)

// Login and registration failures surfaced to the client.
var (
	ErrEmailTaken         = errors.New("Email đã tồn tại")
	ErrInvalidCredentials = errors.New("Sai email hoặc mật khẩu")
	ErrInactiveAccount    = errors.New("Tài khoản đã bị khóa")
)

// UsersRepository defines the persistence operations required by the
// authentication service.
type UsersRepository interface {
	EmailTaken(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, email string, passwordHash []byte, accessRole, createdAt string, profile map[string]any) (int64, error)
	GetByEmail(ctx context.Context, email string) (*models.Credential, error)
}

// LoginResult carries the issued token pair and the user payload
// returned by a successful login.
type LoginResult struct {
	AccessToken  string
	RefreshToken string
	User         models.SessionUser
}

// AuthService implements registration and login on top of a
// UsersRepository and a TokenIssuer.
type AuthService struct {
	repo   UsersRepository
	tokens *TokenIssuer
}

// NewAuthService constructs an AuthService using the provided repository
// and token issuer.
func NewAuthService(repo UsersRepository, tokens *TokenIssuer) *AuthService {
	return &AuthService{repo: repo, tokens: tokens}
}

// RegisterParams carries a registration request. Profile holds the
// loosely-typed fields beyond the auth columns.
type RegisterParams struct {
	Email      string
	Password   string
	AccessRole string
	CreatedAt  string
	Profile    map[string]any
}

// Register hashes the password and creates the user. Returns the new
// user id, or ErrEmailTaken when the email is already registered.
func (s *AuthService) Register(ctx context.Context, params RegisterParams) (int64, error) {
	taken, err := s.repo.EmailTaken(ctx, params.Email)
	if err != nil {
		return 0, fmt.Errorf("check email: %w", err)
	}
	if taken {
		return 0, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcrypt.DefaultCost)
	if err != nil {
		return 0, fmt.Errorf("hash password: %w", err)
	}

	role := params.AccessRole
	if role == "" {
		role = "Management"
	}
	createdAt := params.CreatedAt
	if createdAt == "" {
		createdAt = time.Now().Format("2006-01-02 15:04:05")
	}

	id, err := s.repo.Create(ctx, params.Email, hash, role, createdAt, params.Profile)
	if err != nil {
		return 0, fmt.Errorf("create user: %w", err)
	}
	return id, nil
}

// Login verifies the email and password and issues a token pair.
// Returns ErrInvalidCredentials for unknown emails and wrong passwords
// alike, and ErrInactiveAccount for deactivated users.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	cred, err := s.repo.GetByEmail(ctx, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("fetch credential: %w", err)
	}

	if bcrypt.CompareHashAndPassword(cred.PasswordHash, []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	if cred.IsActive == 0 {
		return nil, ErrInactiveAccount
	}

	access, refresh, err := s.tokens.Issue(cred)
	if err != nil {
		return nil, fmt.Errorf("issue tokens: %w", err)
	}

	return &LoginResult{
		AccessToken:  access,
		RefreshToken: refresh,
		User:         cred.SessionPayload(),
	}, nil
}
