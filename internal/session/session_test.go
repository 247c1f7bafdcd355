// session_test.go exercises the session lifecycle against a real Valkey.
// Tests are skipped when Valkey is unavailable.
package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func testStore(t *testing.T) *Store {
	t.Helper()

	client := redis.NewClient(&redis.Options{
		Addr:     envOr("VALKEY_HOST", "localhost") + ":" + envOr("VALKEY_PORT", "6379"),
		Password: os.Getenv("VALKEY_PASSWORD"),
		DB:       15,
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		client.Close()
		t.Skipf("skipping: Valkey not reachable: %v", err)
	}
	t.Cleanup(func() { client.Close() })

	return NewStore(client, false)
}

// requestWithCookie copies the session cookie from a recorder onto a
// fresh request, mimicking the browser's next call.
func requestWithCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		if c.Name == CookieName {
			req.AddCookie(c)
			return req
		}
	}
	t.Fatal("no session cookie issued")
	return nil
}

func TestSessionLifecycle(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	rec := httptest.NewRecorder()
	userID := uuid.New()
	if _, err := store.Create(ctx, rec, &Data{
		UserID: userID, Email: "t@portal.test", Name: "T", Role: "client", TwoFADone: true,
	}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	req := requestWithCookie(t, rec)
	data, err := store.Get(ctx, req)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if data == nil || data.UserID != userID || data.Role != "client" {
		t.Fatalf("data = %+v", data)
	}

	data.TwoFADone = false
	if err := store.Update(ctx, req, data); err != nil {
		t.Fatalf("Update: %v", err)
	}
	updated, _ := store.Get(ctx, req)
	if updated == nil || updated.TwoFADone {
		t.Errorf("updated = %+v, TwoFADone should persist as false", updated)
	}

	destroyRec := httptest.NewRecorder()
	if err := store.Destroy(ctx, destroyRec, req); err != nil {
		t.Fatalf("Destroy: %v", err)
	}
	gone, err := store.Get(ctx, req)
	if err != nil {
		t.Fatalf("Get after destroy: %v", err)
	}
	if gone != nil {
		t.Errorf("session survived destroy: %+v", gone)
	}
}

func TestGet_NoCookie(t *testing.T) {
	store := testStore(t)

	data, err := store.Get(context.Background(), httptest.NewRequest(http.MethodGet, "/", nil))
	if err != nil || data != nil {
		t.Errorf("Get = %+v, %v; want nil, nil without a cookie", data, err)
	}
}

func TestIsAdmin(t *testing.T) {
	if !(&Data{Role: "admin"}).IsAdmin() {
		t.Error("admin role not recognized")
	}
	if (&Data{Role: "client"}).IsAdmin() {
		t.Error("client role treated as admin")
	}
}
