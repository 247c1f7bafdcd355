package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"clientportal/internal/freshbooks"
	"clientportal/internal/models"
)

// memTokenStore is an in-memory freshbooks.TokenStore.
type memTokenStore struct {
	mu     sync.Mutex
	values map[string]string
}

func newMemTokenStore() *memTokenStore {
	return &memTokenStore{values: make(map[string]string)}
}

func (m *memTokenStore) Get(_ context.Context, key, fallback string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if v, ok := m.values[key]; ok {
		return v, nil
	}
	return fallback, nil
}

func (m *memTokenStore) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func connectedClient(t *testing.T, baseURL string) *freshbooks.Client {
	t.Helper()
	tokens := newMemTokenStore()
	seed, _ := json.Marshal(map[string]any{
		"access_token": "at",
		"expires_at":   time.Now().Add(time.Hour).Format(time.RFC3339),
	})
	tokens.Set(context.Background(), "freshbooks_token", string(seed))
	return freshbooks.New(freshbooks.Config{ClientID: "id", ClientSecret: "s", BaseURL: baseURL}, tokens)
}

func TestFreshbooksConnect(t *testing.T) {
	client := freshbooks.New(freshbooks.Config{
		ClientID: "abc", ClientSecret: "s", RedirectURI: "https://portal.test/cb",
	}, newMemTokenStore())
	h := NewFreshbooks(client, nil, &fakeActivities{})

	rec := do(h.Connect, httptest.NewRequest(http.MethodGet, "/api/freshbooks/connect", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp map[string]string
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if !strings.Contains(resp["url"], "client_id=abc") {
		t.Errorf("url = %q", resp["url"])
	}
}

func TestFreshbooksConnect_Unconfigured(t *testing.T) {
	h := NewFreshbooks(freshbooks.New(freshbooks.Config{}, newMemTokenStore()), nil, &fakeActivities{})

	rec := do(h.Connect, httptest.NewRequest(http.MethodGet, "/api/freshbooks/connect", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
}

func TestFreshbooksCallback_MissingCode(t *testing.T) {
	h := NewFreshbooks(freshbooks.New(freshbooks.Config{}, newMemTokenStore()), nil, &fakeActivities{})

	rec := do(h.Callback, httptest.NewRequest(http.MethodGet, "/api/freshbooks/callback", nil))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestFreshbooksSync(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	acts := &fakeActivities{}
	h := NewFreshbooks(connectedClient(t, srv.URL), nil, acts)

	rec := do(h.Sync, httptest.NewRequest(http.MethodPost, "/api/freshbooks/sync", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}

	var result freshbooks.SyncResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if string(result.Clients) != `{"ok":true}` {
		t.Errorf("clients = %s", result.Clients)
	}
	if len(acts.entries) != 1 {
		t.Error("expected an activity entry for the sync")
	}
}

func TestFreshbooksSync_NotConnected(t *testing.T) {
	h := NewFreshbooks(freshbooks.New(freshbooks.Config{}, newMemTokenStore()), nil, &fakeActivities{})

	rec := do(h.Sync, httptest.NewRequest(http.MethodPost, "/api/freshbooks/sync", nil))
	if rec.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409", rec.Code)
	}
}

// fakeClientSyncer records upserted clients and projects.
type fakeClientSyncer struct {
	clients  []models.Client
	projects []models.Project
}

func (f *fakeClientSyncer) UpsertByFreshbooksID(_ context.Context, c *models.Client) error {
	f.clients = append(f.clients, *c)
	return nil
}

func (f *fakeClientSyncer) UpsertProjectByFreshbooksID(_ context.Context, p *models.Project) error {
	f.projects = append(f.projects, *p)
	return nil
}

func TestFreshbooksSync_PersistsClientsAndProjects(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "/clients"):
			w.Write([]byte(`{"response":{"result":{"clients":[
				{"id":7,"organization":"Acme","email":"billing@acme.test"},
				{"id":8,"fname":"Jo","lname":"Doe","email":"jo@doe.test","home_phone":"555-1234"}
			]}}}`))
		case strings.HasSuffix(r.URL.Path, "/projects"):
			w.Write([]byte(`{"projects":[
				{"id":42,"title":"Website rebuild","active":true,"due_date":"2026-10-01"}
			]}`))
		default:
			w.Write([]byte(`{"response":{"result":{}}}`))
		}
	}))
	defer srv.Close()

	syncer := &fakeClientSyncer{}
	h := NewFreshbooks(connectedClient(t, srv.URL), syncer, &fakeActivities{})

	rec := do(h.Sync, httptest.NewRequest(http.MethodPost, "/api/freshbooks/sync", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}

	if len(syncer.clients) != 2 {
		t.Fatalf("client upserts = %d, want 2", len(syncer.clients))
	}
	if syncer.clients[0].FreshbooksID != "7" || syncer.clients[0].Name != "Acme" {
		t.Errorf("first upsert = %+v", syncer.clients[0])
	}
	if syncer.clients[1].Name != "Jo Doe" || syncer.clients[1].Phone != "555-1234" {
		t.Errorf("second upsert = %+v", syncer.clients[1])
	}

	if len(syncer.projects) != 1 {
		t.Fatalf("project upserts = %d, want 1", len(syncer.projects))
	}
	p := syncer.projects[0]
	if p.FreshbooksID != "42" || p.Name != "Website rebuild" || p.Status != models.ProjectActive {
		t.Errorf("project upsert = %+v", p)
	}
	if p.DueDate == nil || p.DueDate.Format("2006-01-02") != "2026-10-01" {
		t.Errorf("project due date = %v", p.DueDate)
	}
}
