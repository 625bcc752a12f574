// ABOUTME: Tests for the request logging middleware.
// ABOUTME: Verifies request records reach the store and health checks are skipped.

package logging

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/2389/rota/internal/store"
)

func TestMiddleware_LogsRequest(t *testing.T) {
	dbPath := "test_logging.db"
	defer os.Remove(dbPath)

	s, err := store.New(dbPath)
	if err != nil {
		t.Fatalf("store.New() error = %v", err)
	}
	defer s.Close()

	h := Middleware(s)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	req := httptest.NewRequest("GET", "/v1/availability", nil)
	req.Header.Set("User-Agent", "rota-test")
	h.ServeHTTP(httptest.NewRecorder(), req)

	// The write is fire-and-forget; poll briefly for it to land.
	var logs []store.RequestLog
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		logs, err = s.RecentRequestLogs(10)
		if err != nil {
			t.Fatalf("RecentRequestLogs() error = %v", err)
		}
		if len(logs) > 0 {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}

	if len(logs) != 1 {
		t.Fatalf("got %d request logs, want 1", len(logs))
	}
	if logs[0].Path != "/v1/availability" {
		t.Errorf("path = %q, want /v1/availability", logs[0].Path)
	}
	if logs[0].StatusCode != http.StatusTeapot {
		t.Errorf("status = %d, want %d", logs[0].StatusCode, http.StatusTeapot)
	}
	if logs[0].UserAgent != "rota-test" {
		t.Errorf("user agent = %q, want rota-test", logs[0].UserAgent)
	}
}

func TestMiddleware_SkipsHealthz(t *testing.T) {
	dbPath := "test_logging_healthz.db"
	defer os.Remove(dbPath)

	s, err := store.New(dbPath)
	if err != nil {
		t.Fatalf("store.New() error = %v", err)
	}
	defer s.Close()

	h := Middleware(s)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/healthz", nil))

	time.Sleep(50 * time.Millisecond)
	logs, err := s.RecentRequestLogs(10)
	if err != nil {
		t.Fatalf("RecentRequestLogs() error = %v", err)
	}
	if len(logs) != 0 {
		t.Errorf("got %d request logs for /healthz, want 0", len(logs))
	}
}
