package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vietsport/eprofile/internal/client/session"
	"github.com/vietsport/eprofile/internal/models"
)

func newSession(t *testing.T) *session.Store {
	t.Helper()
	s, err := session.Open(filepath.Join(t.TempDir(), "session.json"))
	if err != nil {
		t.Fatalf("open session: %v", err)
	}
	return s
}

func loggedIn(t *testing.T) *session.Store {
	t.Helper()
	s := newSession(t)
	err := s.StoreLogin("test-token", "test-refresh", models.SessionUser{
		UserID: 7, Email: "coach@vsf.vn", AccessRole: "Coach", IsActive: 1,
	})
	if err != nil {
		t.Fatalf("store login: %v", err)
	}
	return s
}

func TestClient_AttachesBearerToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"status":"success","data":[]}`))
	}))
	defer srv.Close()

	c := New(srv.URL, loggedIn(t), nil)
	var env models.Envelope[[]models.User]
	if err := c.Get(context.Background(), "/api/Users", nil, &env); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if gotAuth != "Bearer test-token" {
		t.Errorf("Authorization = %q", gotAuth)
	}
}

func TestClient_NoTokenNoHeader(t *testing.T) {
	var sawAuth bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, sawAuth = r.Header["Authorization"]
		w.Write([]byte(`{"status":"success"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, newSession(t), nil)
	if err := c.Get(context.Background(), "/api/Role", nil, nil); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if sawAuth {
		t.Error("Authorization header sent without a stored token")
	}
}

func TestClient_401ClearsSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	sess := loggedIn(t)
	c := New(srv.URL, sess, nil)
	err := c.Get(context.Background(), "/api/Users", nil, nil)
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if sess.HasToken() {
		t.Error("session still holds a token after 401")
	}
	if sess.User() != nil {
		t.Error("session still holds a user after 401")
	}
	if _, ok := sess.LoggedInUserID(); ok {
		t.Error("LoggedInUserID still resolves after 401")
	}
}

func TestClient_ServerErrorCarriesEnvelopeMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"status":"error","message":"Thiếu athlete_id"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, newSession(t), nil)
	err := c.Get(context.Background(), "/api/Archery_Practice", nil, nil)
	if err == nil {
		t.Fatal("expected an error")
	}
	if want := "Thiếu athlete_id"; !strings.Contains(err.Error(), want) {
		t.Errorf("error %q does not carry server message %q", err, want)
	}
}

func TestClient_QueryEncoding(t *testing.T) {
	var gotQuery url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write([]byte(`{"status":"success","data":[]}`))
	}))
	defer srv.Close()

	c := New(srv.URL, newSession(t), nil)
	q := url.Values{}
	q.Set("athlete_id", "12")
	q.Set("orderby", "id-desc")
	if err := c.Get(context.Background(), "/api/Boxing_Competitions", q, nil); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if gotQuery.Get("athlete_id") != "12" || gotQuery.Get("orderby") != "id-desc" {
		t.Errorf("query = %v", gotQuery)
	}
}
