package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vietsport/eprofile/internal/models"
)

func testUser() models.SessionUser {
	return models.SessionUser{
		UserID:     42,
		Email:      "linh.tran@vsf.vn",
		AccessRole: "Management",
		IsActive:   1,
		CreatedAt:  "2025-01-02 10:00:00",
	}
}

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "session.json"))
	require.NoError(t, err)
	return s
}

func TestOpen_MissingFileStartsEmpty(t *testing.T) {
	s := openStore(t)
	assert.False(t, s.HasToken())
	assert.Nil(t, s.User())
	_, ok := s.LoggedInUserID()
	assert.False(t, ok)
}

func TestStoreLogin_PersistsAllKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.StoreLogin("acc-token", "ref-token", testUser()))

	// reopen from disk
	s2, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, "acc-token", s2.AccessToken())
	assert.True(t, s2.HasToken())

	u := s2.User()
	require.NotNil(t, u)
	assert.Equal(t, int64(42), u.UserID)
	assert.Equal(t, "linh.tran@vsf.vn", u.Email)

	ui := s2.UIUser()
	require.NotNil(t, ui)
	assert.Equal(t, "USR-042", ui.ID)
	assert.Equal(t, "linh.tran", ui.FirstName)
	assert.Equal(t, "Management", ui.LastName)

	id, ok := s2.LoggedInUserID()
	assert.True(t, ok)
	assert.Equal(t, int64(42), id)
	assert.Equal(t, "linh.tran@vsf.vn", s2.LoggedInEmail())
}

func TestLoggedInUserID_FallsBackToUIID(t *testing.T) {
	s := openStore(t)
	require.NoError(t, s.StoreLogin("tok", "", testUser()))

	// drop the raw envelope, keep the UI user
	s.mu.Lock()
	delete(s.values, KeyUser)
	s.mu.Unlock()

	id, ok := s.LoggedInUserID()
	assert.True(t, ok)
	assert.Equal(t, int64(42), id)
}

func TestClear_WipesEverything(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.StoreLogin("tok", "ref", testUser()))
	require.NoError(t, s.Clear())

	assert.False(t, s.HasToken())
	assert.Empty(t, s.AccessToken())
	assert.Nil(t, s.User())
	assert.Nil(t, s.UIUser())
	_, ok := s.LoggedInUserID()
	assert.False(t, ok)

	// cleared state survives a reopen
	s2, err := Open(path)
	require.NoError(t, err)
	assert.False(t, s2.HasToken())
}

func TestOpen_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))
	_, err := Open(path)
	assert.Error(t, err)
}
