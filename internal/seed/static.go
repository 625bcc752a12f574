// ABOUTME: Static fallback data when the OpenAI API key is not available.
// ABOUTME: Deterministic members, availability slots, and events over the next two weeks.

package seed

import (
	"fmt"
	"time"

	"github.com/2389/rota/internal/schedule"
)

var staticMembers = []schedule.Member{
	{Name: "alice", Email: "alice.chen@example.com"},
	{Name: "bob", Email: "bob.martinez@example.com"},
	{Name: "carol", Email: "carol.johnson@example.com"},
	{Name: "dave", Email: "dave.wilson@example.com"},
	{Name: "erin", Email: "erin.taylor@example.com"},
	{Name: "frank", Email: "frank.rivera@example.com"},
	{Name: "grace", Email: "grace.lee@example.com"},
	{Name: "henry", Email: "henry.brown@example.com"},
	{Name: "iris", Email: "iris.davis@example.com"},
	{Name: "jack", Email: "jack.moore@example.com"},
}

var eventTemplates = []struct {
	summary     string
	description string
	hour        int
	minutes     int
}{
	{"Daily standup", "Quick sync on yesterday, today, blockers", 9, 15},
	{"Sprint planning", "Pick up the next batch of work", 10, 60},
	{"Design review", "Walk through the panel layout changes", 14, 45},
	{"1:1", "Weekly catch-up", 11, 30},
	{"Retro", "What went well, what to change", 16, 60},
	{"Team lunch", "Thai place around the corner", 12, 60},
	{"On-call handover", "Rotate the pager", 17, 15},
	{"Demo", "Show the availability overview to the team", 15, 30},
	{"Architecture chat", "Where the stream hub is heading", 13, 45},
	{"Focus block", "No meetings", 9, 120},
}

// generateStatic creates deterministic fallback fixture data anchored at the
// current day.
func (g *Generator) generateStatic(numMembers, slotsPerMember, numEvents int) *GeneratedData {
	if numMembers > len(staticMembers) {
		numMembers = len(staticMembers)
	}
	start := time.Now().UTC().Truncate(24 * time.Hour)

	data := &GeneratedData{Members: make([]schedule.Member, numMembers)}
	copy(data.Members, staticMembers[:numMembers])

	// Cycle statuses so every member gets a mix across the window.
	statuses := schedule.Statuses()
	for mi, member := range data.Members {
		for si := 0; si < slotsPerMember; si++ {
			day := start.AddDate(0, 0, si%14)
			slotStart := day.Add(9 * time.Hour)
			slotEnd := day.Add(17 * time.Hour)
			data.Slots = append(data.Slots, schedule.Slot{
				MemberName: member.Name,
				Status:     statuses[(mi+si)%len(statuses)],
				StartTime:  slotStart.Format(time.RFC3339),
				EndTime:    slotEnd.Format(time.RFC3339),
			})
		}
	}

	for i := 0; i < numEvents; i++ {
		tmpl := eventTemplates[i%len(eventTemplates)]
		day := start.AddDate(0, 0, i%14)
		evtStart := day.Add(time.Duration(tmpl.hour) * time.Hour)
		attendees := []string{
			data.Members[i%numMembers].Email,
			data.Members[(i+1)%numMembers].Email,
		}
		data.Events = append(data.Events, schedule.Event{
			Summary:     tmpl.summary,
			Description: tmpl.description,
			StartTime:   evtStart.Format(time.RFC3339),
			EndTime:     evtStart.Add(time.Duration(tmpl.minutes) * time.Minute).Format(time.RFC3339),
			Attendees:   attendees,
		})
	}

	return data
}

// Summary renders a one-line description of the generated data.
func (d *GeneratedData) Summary() string {
	return fmt.Sprintf("%d members, %d slots, %d events", len(d.Members), len(d.Slots), len(d.Events))
}
