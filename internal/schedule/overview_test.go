// ABOUTME: Tests for the availability overview rollup and day bucketing.
// ABOUTME: Uses gotest.tools assertions with go-cmp for structural comparison.

package schedule

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"gotest.tools/v3/assert"
)

func sampleSlots() []Slot {
	return []Slot{
		{MemberName: "alice", Status: StatusGood, StartTime: "2026-03-10T09:00:00Z", EndTime: "2026-03-10T17:00:00Z"},
		{MemberName: "alice", Status: StatusGood, StartTime: "2026-03-11T09:00:00Z", EndTime: "2026-03-11T13:00:00Z"},
		{MemberName: "alice", Status: StatusBad, StartTime: "2026-03-12T09:00:00Z", EndTime: "2026-03-12T17:00:00Z"},
		{MemberName: "bob", Status: StatusOK, StartTime: "2026-03-10T10:00:00Z", EndTime: "2026-03-10T16:00:00Z"},
	}
}

func TestBuildOverview_Rows(t *testing.T) {
	o := BuildOverview(sampleSlots())
	rows := o.Rows()

	assert.Equal(t, len(rows), 2)
	assert.Equal(t, rows[0].Member, "alice")
	assert.Equal(t, rows[1].Member, "bob")

	alice := rows[0]
	assert.DeepEqual(t, alice.Counts, map[Status]int{StatusGood: 2, StatusBad: 1})
	assert.Equal(t, alice.TotalSlots(), 3)
	assert.Equal(t, alice.Hours[StatusGood], 12.0)
	assert.Equal(t, alice.TotalHours(), 20.0)

	bob := rows[1]
	assert.Equal(t, bob.Counts[StatusOK], 1)
	assert.Equal(t, bob.Hours[StatusOK], 6.0)
}

func TestMemberStats_Share(t *testing.T) {
	o := BuildOverview(sampleSlots())
	alice := o.Rows()[0]

	assert.Equal(t, alice.Share(StatusGood), 100*2.0/3.0)
	assert.Equal(t, alice.Share(StatusOK), 0.0)

	empty := MemberStats{Member: "nobody", Counts: map[Status]int{}}
	assert.Equal(t, empty.Share(StatusGood), 0.0)
}

func TestOverview_Totals(t *testing.T) {
	totals := BuildOverview(sampleSlots()).Totals()

	assert.Equal(t, totals.TotalSlots(), 4)
	assert.DeepEqual(t, totals.Counts, map[Status]int{StatusGood: 2, StatusOK: 1, StatusBad: 1})
	assert.Equal(t, totals.TotalHours(), 26.0)
}

func TestBucketByDay(t *testing.T) {
	window := DayWindow(time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC), 3)
	events := []Event{
		{ID: "e1", Summary: "standup", StartTime: "2026-03-10T09:30:00Z", EndTime: "2026-03-10T09:45:00Z"},
		{ID: "e2", Summary: "review", StartTime: "2026-03-10T14:00:00Z", EndTime: "2026-03-10T15:00:00Z"},
		{ID: "e3", Summary: "retro", StartTime: "2026-03-12T16:00:00Z", EndTime: "2026-03-12T17:00:00Z"},
		{ID: "e4", Summary: "outside", StartTime: "2026-03-20T09:00:00Z", EndTime: "2026-03-20T10:00:00Z"},
		{ID: "e5", Summary: "garbled", StartTime: "whenever", EndTime: ""},
	}

	buckets := BucketByDay(events, window)

	assert.Equal(t, len(buckets), 2)
	assert.Equal(t, buckets[0].Date, "2026-03-10")
	assert.Equal(t, buckets[1].Date, "2026-03-12")

	var ids []string
	for _, evt := range buckets[0].Events {
		ids = append(ids, evt.ID)
	}
	assert.Assert(t, cmp.Diff([]string{"e1", "e2"}, ids) == "")
}
