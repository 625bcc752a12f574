// ABOUTME: Core domain types shared by the rota server, client, and panels.
// ABOUTME: Defines members, availability slots, events, and their wire shapes.

package schedule

import (
	"errors"
	"fmt"
	"time"
)

// Status classifies a member's availability within a slot.
type Status string

const (
	StatusGood Status = "good"
	StatusOK   Status = "ok"
	StatusBad  Status = "bad"
)

// ErrUnknownStatus indicates a status outside the good/ok/bad set.
var ErrUnknownStatus = errors.New("unknown availability status")

// ParseStatus validates a wire status string.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusGood, StatusOK, StatusBad:
		return Status(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStatus, s)
}

// Statuses lists all valid statuses in display order.
func Statuses() []Status {
	return []Status{StatusGood, StatusOK, StatusBad}
}

// Member is a person on the rota.
type Member struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Slot is one member-availability window. Times travel as RFC3339 strings.
type Slot struct {
	ID         string `json:"id,omitempty"`
	MemberName string `json:"member_name"`
	Status     Status `json:"status"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
}

// Start parses the slot's start time.
func (s Slot) Start() (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s.StartTime)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid start_time: %w", err)
	}
	return t, nil
}

// End parses the slot's end time.
func (s Slot) End() (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s.EndTime)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid end_time: %w", err)
	}
	return t, nil
}

// Hours reports the slot's duration in hours, zero for unparseable or
// inverted bounds.
func (s Slot) Hours() float64 {
	start, err := s.Start()
	if err != nil {
		return 0
	}
	end, err := s.End()
	if err != nil || end.Before(start) {
		return 0
	}
	return end.Sub(start).Hours()
}

// Event is a calendar entry visible to the panels.
type Event struct {
	ID          string   `json:"id,omitempty"`
	Summary     string   `json:"summary"`
	Description string   `json:"description,omitempty"`
	StartTime   string   `json:"start_time"`
	EndTime     string   `json:"end_time"`
	Attendees   []string `json:"attendees,omitempty"`
}

// Start parses the event's start time.
func (e Event) Start() (time.Time, error) {
	t, err := time.Parse(time.RFC3339, e.StartTime)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid start_time: %w", err)
	}
	return t, nil
}
