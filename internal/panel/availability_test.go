// ABOUTME: Tests for the availability overview panel.
// ABOUTME: Uses a func-field fake client and gotest.tools assertions on rendered output.

package panel

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"gotest.tools/v3/assert"

	"github.com/2389/rota/internal/schedule"
)

// fakeClient satisfies apiclient.Client with configurable func fields.
type fakeClient struct {
	availability func(ctx context.Context, startISO, endISO string) ([]schedule.Slot, error)
	events       func(ctx context.Context, startISO, endISO string) ([]schedule.Event, error)
}

func (f *fakeClient) GetAvailability(ctx context.Context, startISO, endISO string) ([]schedule.Slot, error) {
	return f.availability(ctx, startISO, endISO)
}

func (f *fakeClient) GetEvents(ctx context.Context, startISO, endISO string) ([]schedule.Event, error) {
	return f.events(ctx, startISO, endISO)
}

func window() schedule.Window {
	return schedule.DayWindow(time.Date(2026, time.March, 9, 0, 0, 0, 0, time.UTC), 7)
}

func TestRenderPlain_Overview(t *testing.T) {
	client := &fakeClient{
		availability: func(ctx context.Context, startISO, endISO string) ([]schedule.Slot, error) {
			return []schedule.Slot{
				{MemberName: "alice", Status: schedule.StatusGood, StartTime: "2026-03-10T09:00:00Z", EndTime: "2026-03-10T17:00:00Z"},
				{MemberName: "bob", Status: schedule.StatusBad, StartTime: "2026-03-10T09:00:00Z", EndTime: "2026-03-10T13:00:00Z"},
			}, nil
		},
	}

	var buf bytes.Buffer
	err := NewAvailabilityPanel(client, false).RenderPlain(context.Background(), &buf, window())
	assert.NilError(t, err)

	out := stripANSI(buf.String())
	assert.Assert(t, strings.Contains(out, "Availability 2026-03-09 to 2026-03-15"))
	assert.Assert(t, strings.Contains(out, "Alice"), "member names are title-cased: %s", out)
	assert.Assert(t, strings.Contains(out, "Bob"))
	assert.Assert(t, strings.Contains(out, "Total"))
	assert.Assert(t, strings.Contains(out, "good"), "legend present")
}

func TestRenderPlain_EmptyWindow(t *testing.T) {
	client := &fakeClient{
		availability: func(ctx context.Context, startISO, endISO string) ([]schedule.Slot, error) {
			return nil, nil
		},
	}

	var buf bytes.Buffer
	err := NewAvailabilityPanel(client, false).RenderPlain(context.Background(), &buf, window())
	assert.NilError(t, err)
	assert.Assert(t, strings.Contains(buf.String(), "no availability recorded"))
}

func TestRenderPlain_FetchError(t *testing.T) {
	client := &fakeClient{
		availability: func(ctx context.Context, startISO, endISO string) ([]schedule.Slot, error) {
			return nil, errors.New("connection refused")
		},
	}

	var buf bytes.Buffer
	err := NewAvailabilityPanel(client, false).RenderPlain(context.Background(), &buf, window())
	assert.ErrorContains(t, err, "connection refused")
}

func TestRenderPlain_EventsStrip(t *testing.T) {
	client := &fakeClient{
		availability: func(ctx context.Context, startISO, endISO string) ([]schedule.Slot, error) {
			return []schedule.Slot{
				{MemberName: "alice", Status: schedule.StatusGood, StartTime: "2026-03-10T09:00:00Z", EndTime: "2026-03-10T17:00:00Z"},
			}, nil
		},
		events: func(ctx context.Context, startISO, endISO string) ([]schedule.Event, error) {
			return []schedule.Event{
				{Summary: "Standup", StartTime: "2026-03-10T09:30:00Z", EndTime: "2026-03-10T09:45:00Z"},
				{Summary: "Retro", StartTime: "2026-03-12T16:00:00Z", EndTime: "2026-03-12T17:00:00Z"},
			}, nil
		},
	}

	var buf bytes.Buffer
	err := NewAvailabilityPanel(client, true).RenderPlain(context.Background(), &buf, window())
	assert.NilError(t, err)

	out := buf.String()
	assert.Assert(t, strings.Contains(out, "Events"))
	assert.Assert(t, strings.Contains(out, "2026-03-10"))
	assert.Assert(t, strings.Contains(out, "Standup"))
	assert.Assert(t, strings.Contains(out, "Retro"))
}

func TestRows_TotalsLast(t *testing.T) {
	o := schedule.BuildOverview([]schedule.Slot{
		{MemberName: "alice", Status: schedule.StatusGood, StartTime: "2026-03-10T09:00:00Z", EndTime: "2026-03-10T17:00:00Z"},
		{MemberName: "alice", Status: schedule.StatusOK, StartTime: "2026-03-11T09:00:00Z", EndTime: "2026-03-11T13:00:00Z"},
	})

	rows := Rows(o)
	assert.Equal(t, len(rows), 2)
	assert.DeepEqual(t, []string(rows[0]), []string(table.Row{"Alice", "1", "1", "0", "12.0", "50%"}))
	assert.Equal(t, rows[1][0], "Total")
}
