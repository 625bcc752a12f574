// ABOUTME: Illustrative panel and domain checks written on the checkish harness.
// ABOUTME: Run by `rota check` and by an in-process test that requires zero failures.

package suite

import (
	"context"
	"io"
	"time"

	"github.com/2389/rota/internal/checkish"
	"github.com/2389/rota/internal/schedule"
)

// stubClient adapts checkish stubs to the apiclient.Client surface so the
// panels' data path can run without a server.
type stubClient struct {
	availability *checkish.Stub
	events       *checkish.Stub
}

func (c *stubClient) GetAvailability(ctx context.Context, startISO, endISO string) ([]schedule.Slot, error) {
	v, err := c.availability.Call(startISO, endISO)
	if err != nil {
		return nil, err
	}
	slots, _ := v.([]schedule.Slot)
	return slots, nil
}

func (c *stubClient) GetEvents(ctx context.Context, startISO, endISO string) ([]schedule.Event, error) {
	v, err := c.events.Call(startISO, endISO)
	if err != nil {
		return nil, err
	}
	events, _ := v.([]schedule.Event)
	return events, nil
}

// Run executes the full suite against out and waits for async cases to
// settle. The caller inspects the returned runner for the aggregate outcome.
func Run(out io.Writer) *checkish.Runner {
	runner := checkish.NewRunner(checkish.WithOutput(out))

	client := &stubClient{availability: checkish.Fn(), events: checkish.Fn()}
	runner.BeforeEach(func() {
		client.availability.Clear()
		client.events.Clear()
	})

	registerGeneratorChecks(runner, out)
	registerWindowChecks(runner)
	registerOverviewChecks(runner, client)
	registerClientChecks(runner, client)

	runner.Wait()
	return runner
}

func registerGeneratorChecks(runner *checkish.Runner, out io.Writer) {
	params := &checkish.RunParams{NumRuns: 100, Output: out}

	runner.Describe("generators", func(g *checkish.Group) {
		g.Test("member names stay within length bounds", func() {
			ok := checkish.Assert(checkish.Property(
				checkish.String(1, 12),
				func(name string) bool { return len(name) >= 1 && len(name) <= 12 },
			), params)
			checkish.Expect(ok).ToBe(true)
		})

		g.Test("statuses come from the valid set", func() {
			statusGen := checkish.ConstantFrom(schedule.StatusGood, schedule.StatusOK, schedule.StatusBad)
			ok := checkish.Assert(checkish.Property(statusGen, func(s schedule.Status) bool {
				_, err := schedule.ParseStatus(string(s))
				return err == nil
			}), params)
			checkish.Expect(ok).ToBe(true)
		})

		g.Test("slot dates land inside the generation window", func() {
			min := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
			max := time.Date(2026, time.March, 31, 23, 59, 59, 0, time.UTC)
			ok := checkish.Assert(checkish.Property(
				checkish.Date(min, max),
				func(d time.Time) bool { return !d.Before(min) && !d.After(max) },
			), params)
			checkish.Expect(ok).ToBe(true)
		})

		g.Test("slot records carry exactly the wire keys", func() {
			slotGen := checkish.Record(map[string]any{
				"member_name": checkish.String(1, 12),
				"status":      checkish.ConstantFrom("good", "ok", "bad"),
				"start_time":  "2026-03-10T09:00:00Z",
				"end_time":    "2026-03-10T17:00:00Z",
			})
			ok := checkish.Assert(checkish.Property(slotGen, func(rec map[string]any) bool {
				if len(rec) != 4 {
					return false
				}
				_, hasName := rec["member_name"]
				_, hasStatus := rec["status"]
				return hasName && hasStatus
			}), params)
			checkish.Expect(ok).ToBe(true)
		})

		g.Test("slot batches respect the array bounds", func() {
			batchGen := checkish.Array(checkish.String(1, 8), 1, 6)
			ok := checkish.Assert(checkish.Property(batchGen, func(batch []string) bool {
				return len(batch) >= 1 && len(batch) <= 6
			}), params)
			checkish.Expect(ok).ToBe(true)
		})
	})
}

func registerWindowChecks(runner *checkish.Runner) {
	runner.Describe("windows", func(g *checkish.Group) {
		g.Test("month grids start on Sunday and end on Saturday", func() {
			w := schedule.MonthWindow(2026, time.September)
			checkish.Expect(int(w.Start.Weekday())).ToBe(int(time.Sunday))
			checkish.Expect(int(w.End.Weekday())).ToBe(int(time.Saturday))
		})

		g.Test("grid weeks are always full", func() {
			for _, week := range schedule.MonthWindow(2026, time.May).Weeks() {
				checkish.Expect(week).ToHaveLength(7)
			}
		})

		g.Test("day windows contain their own days only", func() {
			w := schedule.DayWindow(time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC), 3)
			checkish.Expect(w.Contains(time.Date(2026, time.March, 11, 8, 0, 0, 0, time.UTC))).ToBe(true)
			checkish.Expect(w.Contains(time.Date(2026, time.March, 13, 0, 0, 0, 0, time.UTC))).ToBe(false)
		})
	})
}

func registerOverviewChecks(runner *checkish.Runner, client *stubClient) {
	runner.Describe("overview", func(g *checkish.Group) {
		slots := []schedule.Slot{
			{MemberName: "alice", Status: schedule.StatusGood, StartTime: "2026-03-10T09:00:00Z", EndTime: "2026-03-10T17:00:00Z"},
			{MemberName: "alice", Status: schedule.StatusBad, StartTime: "2026-03-11T09:00:00Z", EndTime: "2026-03-11T17:00:00Z"},
			{MemberName: "bob", Status: schedule.StatusOK, StartTime: "2026-03-10T10:00:00Z", EndTime: "2026-03-10T14:00:00Z"},
		}

		g.Test("rolls slots up per member", func() {
			o := schedule.BuildOverview(slots)
			rows := o.Rows()
			checkish.Expect(rows).ToHaveLength(2)
			checkish.Expect(rows[0].Member).ToBe("alice")
			checkish.Expect(rows[0].TotalSlots()).ToBe(2)
			checkish.Expect(rows[1].Hours[schedule.StatusOK]).ToBe(4.0)
		})

		g.Test("share percentages stay under the whole", func() {
			o := schedule.BuildOverview(slots)
			alice := o.Rows()[0]
			checkish.Expect(alice.Share(schedule.StatusGood)).ToBeLessThan(100.0)
		})

		g.Test("totals match the slot count", func() {
			o := schedule.BuildOverview(slots)
			checkish.Expect(o.Totals().TotalSlots()).ToBe(len(slots))
		})

		g.Test("stubbed availability flows through the client surface", func() {
			client.availability.ResolveWith(slots)
			got, err := client.GetAvailability(context.Background(), "2026-03-01T00:00:00Z", "2026-03-31T23:59:59Z")
			checkish.Expect(err).ToBeNull()
			checkish.Expect(got).ToHaveLength(3)
			checkish.Expect(got).ToEqual(slots)
		})
	})
}

func registerClientChecks(runner *checkish.Runner, client *stubClient) {
	runner.Describe("client", func(g *checkish.Group) {
		g.TestAsync("event fetch settles with the stubbed payload", func() error {
			client.events.ResolveOnceWith([]schedule.Event{
				{ID: "evt_1", Summary: "Standup", StartTime: "2026-03-10T09:30:00Z", EndTime: "2026-03-10T09:45:00Z"},
			})
			events, err := client.GetEvents(context.Background(), "2026-03-01T00:00:00Z", "2026-03-31T23:59:59Z")
			if err != nil {
				return err
			}
			checkish.Expect(events).ToHaveLength(1)
			checkish.Expect(events[0].Summary).ToBe("Standup")
			return nil
		})
	})
}
