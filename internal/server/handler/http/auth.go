package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/vietsport/eprofile/internal/models"
	"github.com/vietsport/eprofile/internal/service"
)

// AuthService defines the authentication operations required by the
// HTTP handlers.
type AuthService interface {
	Login(ctx context.Context, email, password string) (*service.LoginResult, error)
	Register(ctx context.Context, params service.RegisterParams) (int64, error)
}

// AuthHandler handles login, registration and sign-out requests.
type AuthHandler struct {
	AuthService AuthService
}

// loginRequest is the JSON payload for POST /api/login. The dashboard
// sends the email under "username".
type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// loginResponse carries the token pair at the top level next to the
// envelope fields, matching what the dashboard client expects.
type loginResponse struct {
	Status       string              `json:"status"`
	Message      string              `json:"message,omitempty"`
	AccessToken  string              `json:"access_token"`
	RefreshToken string              `json:"refresh_token"`
	Data         *models.SessionUser `json:"data"`
}

// Login handles POST /api/login. On success it returns the access and
// refresh tokens plus the session user payload.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Username == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Thiếu email hoặc mật khẩu")
		return
	}

	result, err := h.AuthService.Login(r.Context(), req.Username, req.Password)
	switch {
	case errors.Is(err, service.ErrInvalidCredentials), errors.Is(err, service.ErrInactiveAccount):
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, "Đăng nhập thất bại")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(loginResponse{
		Status:       models.StatusSuccess,
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
		Data:         &result.User,
	})
}

// Registry handles POST /api/registry. The body is the registration
// object; email and password are required, everything else beyond the
// auth fields lands in the user's profile.
func (h *AuthHandler) Registry(w http.ResponseWriter, r *http.Request) {
	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Yêu cầu không hợp lệ")
		return
	}

	params := service.RegisterParams{
		Email:      stringField(body, "email"),
		Password:   stringField(body, "password"),
		AccessRole: stringField(body, "access_role"),
		CreatedAt:  stringField(body, "created_at"),
	}
	if params.Email == "" || params.Password == "" {
		writeError(w, http.StatusBadRequest, "Thiếu email hoặc mật khẩu")
		return
	}

	delete(body, "email")
	delete(body, "password")
	delete(body, "access_role")
	delete(body, "created_at")
	delete(body, "id")
	params.Profile = body

	id, err := h.AuthService.Register(r.Context(), params)
	switch {
	case errors.Is(err, service.ErrEmailTaken):
		writeError(w, http.StatusConflict, err.Error())
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, "Đăng ký thất bại")
		return
	}

	writeMessage(w, http.StatusCreated, "Đăng ký thành công", id)
}

// SignOut handles POST /api/signOut. Tokens are stateless, so this only
// acknowledges; the client clears its own session.
func (h *AuthHandler) SignOut(w http.ResponseWriter, _ *http.Request) {
	writeMessage(w, http.StatusOK, "Đã đăng xuất", nil)
}

func stringField(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}
