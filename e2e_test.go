// ABOUTME: End-to-end integration tests for the rota server.
// ABOUTME: Verifies the full request/response flow from API client to SQLite store.

package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/2389/rota/internal/apiclient"
	"github.com/2389/rota/internal/auth"
	"github.com/2389/rota/internal/availability"
	"github.com/2389/rota/internal/events"
	"github.com/2389/rota/internal/schedule"
	"github.com/2389/rota/internal/store"
	"github.com/2389/rota/internal/stream"
)

func setupTestServer(t *testing.T) (*httptest.Server, func()) {
	dbPath := "test_e2e.db"

	s, err := store.New(dbPath)
	if err != nil {
		t.Fatalf("store.New() error = %v", err)
	}

	// Seed test data
	s.CreateMember(&schedule.Member{Name: "harper", Email: "harper@example.com"})
	s.CreateSlot(&schedule.Slot{MemberName: "harper", Status: schedule.StatusGood, StartTime: "2026-03-10T09:00:00Z", EndTime: "2026-03-10T17:00:00Z"})
	s.CreateSlot(&schedule.Slot{MemberName: "harper", Status: schedule.StatusBad, StartTime: "2026-03-11T09:00:00Z", EndTime: "2026-03-11T13:00:00Z"})
	s.CreateEvent(&schedule.Event{Summary: "Planning", StartTime: "2026-03-10T10:00:00Z", EndTime: "2026-03-10T11:00:00Z", Attendees: []string{"harper"}})

	hub := stream.NewHub()
	go hub.Run()

	r := chi.NewRouter()
	r.Use(auth.Middleware)
	availability.NewHandlers(s, hub).RegisterRoutes(r)
	events.NewHandlers(s, hub).RegisterRoutes(r)

	srv := httptest.NewServer(r)

	cleanup := func() {
		srv.Close()
		hub.Stop()
		s.Close()
		os.Remove(dbPath)
	}

	return srv, cleanup
}

func TestE2E_AvailabilityFlow(t *testing.T) {
	srv, cleanup := setupTestServer(t)
	defer cleanup()

	client := apiclient.New(srv.URL, "user:harper")

	slots, err := client.GetAvailability(context.Background(), "2026-03-01T00:00:00Z", "2026-03-31T23:59:59Z")
	if err != nil {
		t.Fatalf("GetAvailability() error = %v", err)
	}
	if len(slots) != 2 {
		t.Fatalf("slots count = %d, want 2", len(slots))
	}
	if slots[0].MemberName != "harper" {
		t.Errorf("member = %q, want %q", slots[0].MemberName, "harper")
	}

	o := schedule.BuildOverview(slots)
	rows := o.Rows()
	if len(rows) != 1 {
		t.Fatalf("overview rows = %d, want 1", len(rows))
	}
	if got := rows[0].Hours[schedule.StatusGood]; got != 8.0 {
		t.Errorf("good hours = %v, want 8.0", got)
	}
	if got := rows[0].TotalSlots(); got != 2 {
		t.Errorf("total slots = %d, want 2", got)
	}
}

func TestE2E_CreateSlotRoundTrip(t *testing.T) {
	srv, cleanup := setupTestServer(t)
	defer cleanup()

	body := `{"member_name":"quinn","status":"ok","start_time":"2026-03-12T09:00:00Z","end_time":"2026-03-12T17:00:00Z"}`
	req, _ := http.NewRequest("POST", srv.URL+"/v1/availability", strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer user:quinn")
	req.Header.Set("Content-Type", "application/json")

	resp, err := srv.Client().Do(req)
	if err != nil {
		t.Fatalf("create slot error: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status = %d, want %d", resp.StatusCode, http.StatusCreated)
	}

	var created schedule.Slot
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode created slot: %v", err)
	}
	if !strings.HasPrefix(created.ID, "slot_") {
		t.Errorf("slot ID = %q, want slot_ prefix", created.ID)
	}

	client := apiclient.New(srv.URL, "user:quinn")
	slots, err := client.GetAvailability(context.Background(), "2026-03-12T00:00:00Z", "2026-03-12T23:59:59Z")
	if err != nil {
		t.Fatalf("GetAvailability() error = %v", err)
	}
	if len(slots) != 1 || slots[0].ID != created.ID {
		t.Errorf("round trip slots = %+v, want the created slot back", slots)
	}
}

func TestE2E_EventsFlow(t *testing.T) {
	srv, cleanup := setupTestServer(t)
	defer cleanup()

	client := apiclient.New(srv.URL, "user:harper")

	evts, err := client.GetEvents(context.Background(), "2026-03-01T00:00:00Z", "2026-03-31T23:59:59Z")
	if err != nil {
		t.Fatalf("GetEvents() error = %v", err)
	}
	if len(evts) != 1 {
		t.Fatalf("events count = %d, want 1", len(evts))
	}
	if evts[0].Summary != "Planning" {
		t.Errorf("summary = %q, want %q", evts[0].Summary, "Planning")
	}

	window := schedule.Window{
		Start: mustParseDay(t, "2026-03-08"),
		End:   mustParseDay(t, "2026-03-14"),
	}
	buckets := schedule.BucketByDay(evts, window)
	if len(buckets) != 1 {
		t.Fatalf("day buckets = %d, want 1", len(buckets))
	}
	if len(buckets[0].Events) != 1 {
		t.Errorf("bucket events = %d, want 1", len(buckets[0].Events))
	}
}

func TestE2E_ValidationErrors(t *testing.T) {
	srv, cleanup := setupTestServer(t)
	defer cleanup()

	// Missing window parameters
	resp, err := http.Get(srv.URL + "/v1/availability")
	if err != nil {
		t.Fatalf("list error: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("missing window status = %d, want %d", resp.StatusCode, http.StatusBadRequest)
	}

	// Bad status value
	body := `{"member_name":"quinn","status":"maybe","start_time":"2026-03-12T09:00:00Z","end_time":"2026-03-12T17:00:00Z"}`
	resp, err = http.Post(srv.URL+"/v1/availability", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("create error: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("bad status code = %d, want %d", resp.StatusCode, http.StatusBadRequest)
	}

	var errResp struct {
		Error struct {
			Code  string `json:"code"`
			Field string `json:"field"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&errResp); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if errResp.Error.Field != "status" {
		t.Errorf("error field = %q, want %q", errResp.Error.Field, "status")
	}
}

func mustParseDay(t *testing.T, day string) time.Time {
	t.Helper()
	out, err := time.Parse("2006-01-02", day)
	if err != nil {
		t.Fatalf("time.Parse(%q) error = %v", day, err)
	}
	return out
}
