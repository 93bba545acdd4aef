package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/vietsport/eprofile/internal/client/api"
	"github.com/vietsport/eprofile/internal/client/session"
	"github.com/vietsport/eprofile/internal/models"
)

// Validation errors raised before any network call, worded as the sign-in
// and sign-up forms word them.
var (
	ErrEmailRequired    = errors.New("Email là bắt buộc")
	ErrEmailInvalid     = errors.New("Email không hợp lệ")
	ErrPasswordRequired = errors.New("Mật khẩu là bắt buộc")
	ErrPasswordMismatch = errors.New("Mật khẩu xác nhận không khớp")
)

// Auth signs users in and out and registers new accounts.
type Auth struct {
	api     *api.Client
	session *session.Store
}

// NewAuth builds the auth service over the shared client and session store.
func NewAuth(c *api.Client, sess *session.Store) *Auth {
	return &Auth{api: c, session: sess}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Status       string              `json:"status"`
	Message      string              `json:"message,omitempty"`
	AccessToken  string              `json:"access_token,omitempty"`
	RefreshToken string              `json:"refresh_token,omitempty"`
	Expires      int64               `json:"expires,omitempty"`
	Time         int64               `json:"time,omitempty"`
	Data         *models.SessionUser `json:"data,omitempty"`
}

// SignIn authenticates with email and password, storing tokens and the user
// envelope in the session on success.
func (a *Auth) SignIn(ctx context.Context, email, password string) (*models.SessionUser, error) {
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if password == "" {
		return nil, ErrPasswordRequired
	}

	var resp loginResponse
	err := a.api.Post(ctx, "/api/login", loginRequest{Username: email, Password: password}, &resp)
	if err != nil {
		return nil, err
	}
	if resp.Status != models.StatusSuccess || resp.AccessToken == "" || resp.Data == nil {
		return nil, envelopeErr(resp.Message, "Đăng nhập thất bại")
	}
	if err := a.session.StoreLogin(resp.AccessToken, resp.RefreshToken, *resp.Data); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}
	return resp.Data, nil
}

// RegisterParams carries the sign-up form fields. AccessRole defaults to
// Management and CreatedAt to now, exactly what the form submits.
type RegisterParams struct {
	Email           string
	Password        string
	ConfirmPassword string
	AccessRole      string
	CreatedAt       string
}

// SignUp registers a new account, returning the new user id when the server
// echoes one.
func (a *Auth) SignUp(ctx context.Context, p RegisterParams) (int64, error) {
	if err := validateEmail(p.Email); err != nil {
		return 0, err
	}
	if p.Password == "" {
		return 0, ErrPasswordRequired
	}
	if p.ConfirmPassword != "" && p.ConfirmPassword != p.Password {
		return 0, ErrPasswordMismatch
	}

	role := p.AccessRole
	if role == "" {
		role = "Management"
	}
	createdAt := p.CreatedAt
	if createdAt == "" {
		createdAt = time.Now().Format("2006-01-02 15:04:05")
	}

	body := map[string]any{
		"email":       p.Email,
		"password":    p.Password,
		"access_role": role,
		"created_at":  createdAt,
	}
	var env models.Envelope[int64]
	if err := a.api.Post(ctx, "/api/registry", body, &env); err != nil {
		return 0, err
	}
	if env.Status != models.StatusSuccess {
		return 0, envelopeErr(env.Message, "Đăng ký thất bại")
	}
	return env.Data, nil
}

// SignOut clears the local session. The server call is best effort; a remote
// failure never blocks the local wipe.
func (a *Auth) SignOut(ctx context.Context) error {
	_ = a.api.Post(ctx, "/api/signOut", nil, nil)
	return a.session.Clear()
}

func validateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return ErrEmailRequired
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return ErrEmailInvalid
	}
	return nil
}
