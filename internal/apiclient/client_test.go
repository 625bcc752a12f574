// ABOUTME: Tests for the rota HTTP API client.
// ABOUTME: Verifies query construction, auth headers, decoding, and error surfacing.

package apiclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/2389/rota/internal/schedule"
)

func TestGetAvailability(t *testing.T) {
	var gotPath, gotStart, gotEnd, gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotStart = r.URL.Query().Get("start")
		gotEnd = r.URL.Query().Get("end")
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(map[string]any{
			"items": []schedule.Slot{
				{ID: "slot_1", MemberName: "alice", Status: schedule.StatusGood,
					StartTime: "2026-03-10T09:00:00Z", EndTime: "2026-03-10T17:00:00Z"},
			},
		})
	}))
	defer srv.Close()

	c := New(srv.URL, "user:alice")
	slots, err := c.GetAvailability(context.Background(), "2026-03-01T00:00:00Z", "2026-03-31T23:59:59Z")
	if err != nil {
		t.Fatalf("GetAvailability() error = %v", err)
	}

	if gotPath != "/v1/availability" {
		t.Errorf("path = %q, want /v1/availability", gotPath)
	}
	if gotStart != "2026-03-01T00:00:00Z" || gotEnd != "2026-03-31T23:59:59Z" {
		t.Errorf("window = (%q, %q), want request bounds", gotStart, gotEnd)
	}
	if gotAuth != "Bearer user:alice" {
		t.Errorf("Authorization = %q, want Bearer user:alice", gotAuth)
	}
	if len(slots) != 1 || slots[0].MemberName != "alice" {
		t.Errorf("slots = %+v, want one slot for alice", slots)
	}
}

func TestGetEvents(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/events" {
			t.Errorf("path = %q, want /v1/events", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"items": []schedule.Event{
				{ID: "evt_1", Summary: "Standup", StartTime: "2026-03-10T09:30:00Z", EndTime: "2026-03-10T09:45:00Z"},
			},
		})
	}))
	defer srv.Close()

	c := New(srv.URL, "")
	events, err := c.GetEvents(context.Background(), "2026-03-01T00:00:00Z", "2026-03-31T23:59:59Z")
	if err != nil {
		t.Fatalf("GetEvents() error = %v", err)
	}
	if len(events) != 1 || events[0].Summary != "Standup" {
		t.Errorf("events = %+v, want one Standup event", events)
	}
}

func TestGet_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(srv.URL, "")
	if _, err := c.GetAvailability(context.Background(), "a", "b"); err == nil {
		t.Error("GetAvailability() on 500 should return an error")
	}
}

func TestGet_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := New(srv.URL, "")
	if _, err := c.GetEvents(ctx, "a", "b"); err == nil {
		t.Error("GetEvents() with cancelled context should return an error")
	}
}
