// ABOUTME: Per-member availability rollups for the overview panel.
// ABOUTME: Aggregates slot counts and hours by status and computes share percentages.

package schedule

import "sort"

// MemberStats accumulates one member's slots by status.
type MemberStats struct {
	Member string
	Counts map[Status]int
	Hours  map[Status]float64
}

// TotalSlots sums counts across statuses.
func (m MemberStats) TotalSlots() int {
	total := 0
	for _, c := range m.Counts {
		total += c
	}
	return total
}

// TotalHours sums hours across statuses.
func (m MemberStats) TotalHours() float64 {
	total := 0.0
	for _, h := range m.Hours {
		total += h
	}
	return total
}

// Share reports the percentage of the member's slots carrying status, zero
// when the member has no slots.
func (m MemberStats) Share(status Status) float64 {
	total := m.TotalSlots()
	if total == 0 {
		return 0
	}
	return float64(m.Counts[status]) / float64(total) * 100
}

// Overview is the availability rollup across members.
type Overview struct {
	byMember map[string]*MemberStats
}

// BuildOverview folds slots into per-member stats. Slots with unparseable
// times still count; their hours contribute zero.
func BuildOverview(slots []Slot) Overview {
	o := Overview{byMember: make(map[string]*MemberStats)}
	for _, slot := range slots {
		stats, ok := o.byMember[slot.MemberName]
		if !ok {
			stats = &MemberStats{
				Member: slot.MemberName,
				Counts: make(map[Status]int),
				Hours:  make(map[Status]float64),
			}
			o.byMember[slot.MemberName] = stats
		}
		stats.Counts[slot.Status]++
		stats.Hours[slot.Status] += slot.Hours()
	}
	return o
}

// Rows returns the per-member stats sorted by member name.
func (o Overview) Rows() []MemberStats {
	rows := make([]MemberStats, 0, len(o.byMember))
	for _, stats := range o.byMember {
		rows = append(rows, *stats)
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Member < rows[j].Member
	})
	return rows
}

// Totals folds every member's stats into one row.
func (o Overview) Totals() MemberStats {
	totals := MemberStats{
		Member: "total",
		Counts: make(map[Status]int),
		Hours:  make(map[Status]float64),
	}
	for _, stats := range o.byMember {
		for status, c := range stats.Counts {
			totals.Counts[status] += c
		}
		for status, h := range stats.Hours {
			totals.Hours[status] += h
		}
	}
	return totals
}

// DayBucket groups the events starting on one day.
type DayBucket struct {
	Date   string
	Events []Event
}

// BucketByDay groups events by start day within the window, oldest day first.
// Events outside the window or with unparseable times are dropped.
func BucketByDay(events []Event, window Window) []DayBucket {
	byDay := make(map[string][]Event)
	for _, evt := range events {
		start, err := evt.Start()
		if err != nil || !window.Contains(start) {
			continue
		}
		key := ISODate(start)
		byDay[key] = append(byDay[key], evt)
	}

	keys := make([]string, 0, len(byDay))
	for key := range byDay {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	buckets := make([]DayBucket, 0, len(keys))
	for _, key := range keys {
		buckets = append(buckets, DayBucket{Date: key, Events: byDay[key]})
	}
	return buckets
}
