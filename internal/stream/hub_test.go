// ABOUTME: Tests for the stream hub and subscription client.
// ABOUTME: Verifies broadcast delivery over a real WebSocket round trip.

package stream

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestHub_BroadcastReachesSubscriber(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	srv := httptest.NewServer(http.HandlerFunc(hub.Handler))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	notices, err := Subscribe(ctx, srv.URL)
	if err != nil {
		t.Fatalf("Subscribe() error = %v", err)
	}

	// Registration races the broadcast; give the hub a beat to settle.
	time.Sleep(50 * time.Millisecond)
	hub.Broadcast(NewNotice(NoticeAvailabilityChanged, "slot_1"))

	select {
	case n, ok := <-notices:
		if !ok {
			t.Fatal("notice channel closed before delivery")
		}
		if n.Type != NoticeAvailabilityChanged {
			t.Errorf("notice type = %q, want %q", n.Type, NoticeAvailabilityChanged)
		}
		if n.ID != "slot_1" {
			t.Errorf("notice id = %q, want slot_1", n.ID)
		}
		if n.At == "" {
			t.Error("notice has no timestamp")
		}
	case <-ctx.Done():
		t.Fatal("timed out waiting for notice")
	}
}

func TestHub_NilSafeBroadcast(t *testing.T) {
	var hub *Hub
	// Must not panic; handlers run without a stream in tests.
	hub.Broadcast(NewNotice(NoticeEventChanged, "evt_1"))
}

func TestSubscribe_ClosesOnCancel(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	srv := httptest.NewServer(http.HandlerFunc(hub.Handler))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	notices, err := Subscribe(ctx, srv.URL)
	if err != nil {
		t.Fatalf("Subscribe() error = %v", err)
	}

	cancel()

	select {
	case _, ok := <-notices:
		if ok {
			t.Error("expected closed channel after cancel")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("notice channel did not close after cancel")
	}
}
