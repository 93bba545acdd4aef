// Package session keeps the client-local session: tokens and the cached user,
// persisted as a small JSON key-value file standing in for browser storage.
package session

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/vietsport/eprofile/internal/models"
)

// Storage keys, named as the dashboard names them.
const (
	KeyAccessToken  = "eprofile_access_token"
	KeyRefreshToken = "eprofile_refresh_token"
	KeyUser         = "eprofile_user"
	KeyUIUser       = "eprofile_user_ui"
	KeyAuthMarker   = "custom-auth-token"
)

// Store is the session state, guarded for the odd concurrent reader. All
// writes happen on login and logout; Save is the explicit persistence
// boundary.
type Store struct {
	path   string
	mu     sync.Mutex
	values map[string]string
}

// Open loads the session file at path, or starts empty when it does not
// exist yet.
func Open(path string) (*Store, error) {
	s := &Store{path: path, values: make(map[string]string)}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("open session file: %w", err)
	}
	defer f.Close()
	if err := json.NewDecoder(f).Decode(&s.values); err != nil {
		return nil, fmt.Errorf("decode session file: %w", err)
	}
	return s, nil
}

// Save writes the current keys back to the session file.
func (s *Store) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked()
}

func (s *Store) saveLocked() error {
	b, err := json.Marshal(s.values)
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, b, 0o600)
}

// StoreLogin records a successful login: tokens, the raw server user, a
// synthesized opaque auth marker, and the display-shaped user.
func (s *Store) StoreLogin(accessToken, refreshToken string, user models.SessionUser) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return err
	}
	ui, err := json.Marshal(uiUserFor(user))
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[KeyAccessToken] = accessToken
	if refreshToken != "" {
		s.values[KeyRefreshToken] = refreshToken
	}
	s.values[KeyUser] = string(raw)
	s.values[KeyUIUser] = string(ui)
	s.values[KeyAuthMarker] = newAuthMarker()
	return s.saveLocked()
}

// Clear wipes every session key. Used at logout and on an HTTP 401.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, k := range []string{KeyAccessToken, KeyRefreshToken, KeyUser, KeyUIUser, KeyAuthMarker} {
		delete(s.values, k)
	}
	return s.saveLocked()
}

// AccessToken returns the stored bearer token, empty when logged out.
func (s *Store) AccessToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.values[KeyAccessToken]
}

// HasToken reports whether any auth credential is present, mirroring the
// guard check (access token or the opaque marker).
func (s *Store) HasToken() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.values[KeyAccessToken] != "" || s.values[KeyAuthMarker] != ""
}

// User returns the cached raw server user, nil when absent or corrupt.
func (s *Store) User() *models.SessionUser {
	s.mu.Lock()
	raw := s.values[KeyUser]
	s.mu.Unlock()
	if raw == "" {
		return nil
	}
	var u models.SessionUser
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		return nil
	}
	return &u
}

// UIUser returns the cached display-shaped user, nil when absent or corrupt.
func (s *Store) UIUser() *models.UIUser {
	s.mu.Lock()
	raw := s.values[KeyUIUser]
	s.mu.Unlock()
	if raw == "" {
		return nil
	}
	var u models.UIUser
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		return nil
	}
	return &u
}

var trailingDigits = regexp.MustCompile(`(\d+)$`)

// LoggedInUserID derives the numeric user id from the raw envelope, falling
// back to the trailing digits of the UI id string. ok is false when no user
// is logged in.
func (s *Store) LoggedInUserID() (id int64, ok bool) {
	if u := s.User(); u != nil && u.UserID != 0 {
		return u.UserID, true
	}
	if ui := s.UIUser(); ui != nil {
		if m := trailingDigits.FindString(ui.ID); m != "" {
			n, err := strconv.ParseInt(m, 10, 64)
			if err == nil {
				return n, true
			}
		}
	}
	return 0, false
}

// LoggedInEmail returns the stored email from either cached user shape.
func (s *Store) LoggedInEmail() string {
	if u := s.User(); u != nil && u.Email != "" {
		return u.Email
	}
	if ui := s.UIUser(); ui != nil {
		return ui.Email
	}
	return ""
}

func uiUserFor(u models.SessionUser) models.UIUser {
	first, _, _ := strings.Cut(u.Email, "@")
	if first == "" {
		first = "User"
	}
	return models.UIUser{
		ID:        fmt.Sprintf("USR-%03d", u.UserID),
		Avatar:    "/assets/avatar.png",
		FirstName: first,
		LastName:  u.AccessRole,
		Email:     u.Email,
	}
}

func newAuthMarker() string {
	b := make([]byte, 12)
	// rand.Read never fails on supported platforms
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
