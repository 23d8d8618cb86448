package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aaryan1901/Gigyasa-backend/internal/audit"
	"github.com/Aaryan1901/Gigyasa-backend/internal/auth"
	"github.com/Aaryan1901/Gigyasa-backend/internal/config"
)

type memDir struct {
	users   map[string]*auth.User
	findErr error
}

func (d *memDir) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	if d.findErr != nil {
		return nil, d.findErr
	}
	u, ok := d.users[email]
	if !ok {
		return nil, auth.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (d *memDir) FindByID(_ context.Context, id uuid.UUID) (*auth.User, error) {
	if d.findErr != nil {
		return nil, d.findErr
	}
	for _, u := range d.users {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, auth.ErrUserNotFound
}

func (d *memDir) Insert(_ context.Context, u *auth.User) error {
	if _, exists := d.users[u.Email]; exists {
		return auth.ErrEmailTaken
	}
	u.ID = uuid.New()
	cp := *u
	d.users[u.Email] = &cp
	return nil
}

type memSink struct {
	events []audit.Event
}

func (s *memSink) Record(_ context.Context, ev audit.Event) error {
	s.events = append(s.events, ev)
	return nil
}

func (s *memSink) RecentByUser(_ context.Context, userID uuid.UUID, limit int) ([]audit.Event, error) {
	var out []audit.Event
	for _, ev := range s.events {
		if ev.UserID != nil && *ev.UserID == userID {
			out = append(out, ev)
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *memSink) PruneBefore(_ context.Context, _ time.Time) (int64, error) {
	return 0, nil
}

func newTestRouter(t *testing.T) (http.Handler, *memDir, *auth.Service) {
	t.Helper()

	dir := &memDir{users: map[string]*auth.User{}}
	sink := &memSink{}
	jwtSvc := auth.NewJWT("test-secret")
	svc := &auth.Service{Dir: dir, JWT: jwtSvc, Audit: sink, Precheck: true}

	cfg := config.Config{
		CORSAllowedOrigins:   []string{"https://frontend.example"},
		CORSAllowCredentials: true,
	}
	return NewRouter(cfg, svc, jwtSvc, sink), dir, svc
}

func doJSON(t *testing.T, r http.Handler, method, path string, body any, header map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func registerAnn(t *testing.T, r http.Handler) {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/register", map[string]string{
		"name":            "Ann",
		"email":           "Ann@x.com",
		"password":        "p1",
		"confirmPassword": "p1",
	}, nil)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestLiveness(t *testing.T) {
	r, _, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Backend is running successfully!", w.Body.String())

	w = doJSON(t, r, http.MethodGet, "/health", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRegister_OK(t *testing.T) {
	r, dir, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/register", map[string]string{
		"name":            "Ann",
		"email":           "Ann@x.com",
		"password":        "p1",
		"confirmPassword": "p1",
	}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Message string `json:"message"`
		User    struct {
			ID    string `json:"id"`
			Name  string `json:"name"`
			Email string `json:"email"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "User registered successfully!", resp.Message)
	assert.Equal(t, "Ann", resp.User.Name)
	assert.Equal(t, "ann@x.com", resp.User.Email)
	assert.NotEmpty(t, resp.User.ID)

	// hash stays server-side
	assert.NotContains(t, strings.ToLower(w.Body.String()), "password")
	_, stored := dir.users["ann@x.com"]
	assert.True(t, stored)
}

func TestRegister_Validation(t *testing.T) {
	r, _, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/register", map[string]string{
		"name": "Ann", "email": "a@x.com", "password": "p1",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "All fields are required")

	w = doJSON(t, r, http.MethodPost, "/register", map[string]string{
		"name": "Ann", "email": "a@x.com", "password": "p1", "confirmPassword": "p2",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Passwords do not match")
}

func TestRegister_Duplicate(t *testing.T) {
	r, _, _ := newTestRouter(t)
	registerAnn(t, r)

	w := doJSON(t, r, http.MethodPost, "/register", map[string]string{
		"name": "Ann2", "email": "ANN@X.com", "password": "p9", "confirmPassword": "p9",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Email already exists")
}

func TestLogin_OK(t *testing.T) {
	r, _, _ := newTestRouter(t)
	registerAnn(t, r)

	w := doJSON(t, r, http.MethodPost, "/login", map[string]string{
		"email": "ANN@x.com", "password": "p1",
	}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Token string `json:"token"`
		Name  string `json:"name"`
		Email string `json:"email"`
		ID    string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "Ann", resp.Name)
	assert.Equal(t, "ann@x.com", resp.Email)
	assert.NotEmpty(t, resp.ID)
}

func TestLogin_Failures(t *testing.T) {
	r, _, _ := newTestRouter(t)
	registerAnn(t, r)

	w := doJSON(t, r, http.MethodPost, "/login", map[string]string{
		"email": "nobody@x.com", "password": "p1",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "User not found")

	w = doJSON(t, r, http.MethodPost, "/login", map[string]string{
		"email": "ann@x.com", "password": "wrong",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid credentials")
}

func TestLogin_DirectoryDown(t *testing.T) {
	r, dir, _ := newTestRouter(t)
	registerAnn(t, r)
	dir.findErr = fmt.Errorf("%w: connection refused", auth.ErrDirectory)

	w := doJSON(t, r, http.MethodPost, "/login", map[string]string{
		"email": "ann@x.com", "password": "p1",
	}, nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "User not found")
	assert.NotContains(t, w.Body.String(), "connection refused")
}

func loginAnn(t *testing.T, r http.Handler) string {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/login", map[string]string{
		"email": "ann@x.com", "password": "p1",
	}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Token
}

func TestUser_RequiresAuth(t *testing.T) {
	r, _, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/user", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, r, http.MethodGet, "/user", nil, map[string]string{
		"Authorization": "Bearer not.a.token",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUser_TamperedToken(t *testing.T) {
	r, _, _ := newTestRouter(t)
	registerAnn(t, r)
	token := loginAnn(t, r)

	w := doJSON(t, r, http.MethodGet, "/user", nil, map[string]string{
		"Authorization": "Bearer " + token + "x",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUser_OK(t *testing.T) {
	r, _, _ := newTestRouter(t)
	registerAnn(t, r)
	token := loginAnn(t, r)

	w := doJSON(t, r, http.MethodGet, "/user", nil, map[string]string{
		"Authorization": "Bearer " + token,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Ann", resp["name"])
	assert.Equal(t, "ann@x.com", resp["email"])
	assert.NotEmpty(t, resp["id"])
	assert.NotContains(t, strings.ToLower(w.Body.String()), "password")
}

func TestUser_DeletedAfterTokenIssued(t *testing.T) {
	r, dir, _ := newTestRouter(t)
	registerAnn(t, r)
	token := loginAnn(t, r)

	// token stays valid for its lifetime even after the record is gone
	delete(dir.users, "ann@x.com")

	w := doJSON(t, r, http.MethodGet, "/user", nil, map[string]string{
		"Authorization": "Bearer " + token,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "User not found")
}

func TestUserActivity(t *testing.T) {
	r, _, _ := newTestRouter(t)
	registerAnn(t, r)
	token := loginAnn(t, r)

	w := doJSON(t, r, http.MethodGet, "/user/activity?limit=10", nil, map[string]string{
		"Authorization": "Bearer " + token,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var events []audit.Event
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &events))
	require.Len(t, events, 2)
	kinds := []string{events[0].Kind, events[1].Kind}
	assert.Contains(t, kinds, audit.KindRegister)
	assert.Contains(t, kinds, audit.KindLogin)

	w = doJSON(t, r, http.MethodGet, "/user/activity", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
