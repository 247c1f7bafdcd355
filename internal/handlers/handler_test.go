package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"clientportal/internal/middleware"
	"clientportal/internal/models"
	"clientportal/internal/session"
)

// --- shared fakes for handler tests ---

// fakeSessions records session operations in memory.
type fakeSessions struct {
	created   []*session.Data
	updated   []*session.Data
	destroyed int
	createErr error
}

func (f *fakeSessions) Create(_ context.Context, _ http.ResponseWriter, data *session.Data) (string, error) {
	if f.createErr != nil {
		return "", f.createErr
	}
	f.created = append(f.created, data)
	return "sid", nil
}

func (f *fakeSessions) Update(_ context.Context, _ *http.Request, data *session.Data) error {
	f.updated = append(f.updated, data)
	return nil
}

func (f *fakeSessions) Destroy(context.Context, http.ResponseWriter, *http.Request) error {
	f.destroyed++
	return nil
}

// fakeUsers is an in-memory UserSource keyed by email. Passwords are
// stored in the clear; CheckPassword compares against the hash field.
type fakeUsers struct {
	mu      sync.Mutex
	byEmail map[string]*models.User
	findErr error
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byEmail: make(map[string]*models.User)}
}

func (f *fakeUsers) add(u *models.User) *models.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	f.byEmail[u.Email] = u
	return u
}

func (f *fakeUsers) FindByEmail(_ context.Context, email string) (*models.User, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.byEmail[email], nil
}

func (f *fakeUsers) FindByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUsers) Create(_ context.Context, email, password, name string, role models.Role) (*models.User, error) {
	u := &models.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: password,
		Name:         name,
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.byEmail[email] = u
	return u, nil
}

func (f *fakeUsers) SetTOTPSecret(_ context.Context, userID uuid.UUID, secret string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.byEmail {
		if u.ID == userID {
			u.TOTPSecret = &secret
			return nil
		}
	}
	return errors.New("user not found")
}

func (f *fakeUsers) EnableTOTP(_ context.Context, userID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.byEmail {
		if u.ID == userID {
			u.TOTPEnabled = true
			return nil
		}
	}
	return errors.New("user not found")
}

func (f *fakeUsers) CheckPassword(user *models.User, password string) bool {
	return user.PasswordHash == password
}

// fakeActivities records activity feed entries.
type fakeActivities struct {
	mu      sync.Mutex
	entries []string
}

func (f *fakeActivities) Record(_ context.Context, kind, description string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries = append(f.entries, kind+": "+description)
	return nil
}

func (f *fakeActivities) Recent(context.Context, int) ([]models.Activity, error) {
	return nil, nil
}

// memCache is an in-memory DocumentCache.
type memCache struct {
	doc          *models.BrandingSettings
	sets         int
	invalidation int
}

func (c *memCache) Get(context.Context) (*models.BrandingSettings, bool) {
	if c.doc == nil {
		return nil, false
	}
	return c.doc, true
}

func (c *memCache) Set(_ context.Context, doc *models.BrandingSettings) {
	c.doc = doc
	c.sets++
}

func (c *memCache) Invalidate(context.Context) {
	c.doc = nil
	c.invalidation++
}

// fakeObjectStorage captures uploads in memory.
type fakeObjectStorage struct {
	uploads map[string][]byte
	deleted []string
}

func newFakeObjectStorage() *fakeObjectStorage {
	return &fakeObjectStorage{uploads: make(map[string][]byte)}
}

func (f *fakeObjectStorage) Upload(_ context.Context, key, _ string, body io.Reader, _ int64) error {
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	f.uploads[key] = data
	return nil
}

func (f *fakeObjectStorage) Delete(_ context.Context, key string) error {
	f.deleted = append(f.deleted, key)
	delete(f.uploads, key)
	return nil
}

func (f *fakeObjectStorage) FileURL(key string) string {
	return "https://files.test/" + key
}

func (f *fakeObjectStorage) ExtractKey(rawURL string) (string, bool) {
	const prefix = "https://files.test/"
	if len(rawURL) > len(prefix) && rawURL[:len(prefix)] == prefix {
		return rawURL[len(prefix):], true
	}
	return "", false
}

// withChiParam injects a chi route parameter, standing in for the router.
func withChiParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// withSession attaches session data to a request, standing in for the
// LoadSession middleware.
func withSession(r *http.Request, data *session.Data) *http.Request {
	ctx := context.WithValue(r.Context(), middleware.SessionKey, data)
	return r.WithContext(ctx)
}

func adminSession() *session.Data {
	return &session.Data{
		UserID:    uuid.New(),
		Email:     "admin@portal.test",
		Name:      "Admin",
		Role:      "admin",
		TwoFADone: true,
	}
}

func do(h http.HandlerFunc, r *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h(rec, r)
	return rec
}
