// ABOUTME: Calendar event store operations.
// ABOUTME: Handles creation, retrieval, and listing with time range filtering.

package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/2389/rota/internal/schedule"
)

func (s *Store) CreateEvent(e *schedule.Event) (*schedule.Event, error) {
	if e.ID == "" {
		e.ID = "evt_" + uuid.NewString()
	}
	attendees, err := json.Marshal(e.Attendees)
	if err != nil {
		return nil, err
	}
	updatedAt := time.Now().UTC().Format(time.RFC3339)

	_, err = s.db.Exec(
		`INSERT INTO calendar_events (id, summary, description, start_time, end_time, attendees, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Summary, e.Description, e.StartTime, e.EndTime, string(attendees), updatedAt,
	)
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (s *Store) GetEvent(id string) (*schedule.Event, error) {
	var e schedule.Event
	var attendees string
	err := s.db.QueryRow(
		`SELECT id, summary, COALESCE(description, ''), start_time, end_time, COALESCE(attendees, '[]')
		 FROM calendar_events WHERE id = ?`, id,
	).Scan(&e.ID, &e.Summary, &e.Description, &e.StartTime, &e.EndTime, &attendees)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	json.Unmarshal([]byte(attendees), &e.Attendees)
	return &e, nil
}

// ListEvents returns events whose start falls within [start, end], oldest
// first. Empty bounds are open.
func (s *Store) ListEvents(start, end string) ([]schedule.Event, error) {
	query := `SELECT id, summary, COALESCE(description, ''), start_time, end_time, COALESCE(attendees, '[]')
		FROM calendar_events WHERE 1=1`
	args := []any{}

	if start != "" {
		query += " AND start_time >= ?"
		args = append(args, start)
	}
	if end != "" {
		query += " AND start_time <= ?"
		args = append(args, end)
	}

	query += " ORDER BY start_time ASC"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []schedule.Event
	for rows.Next() {
		var e schedule.Event
		var attendees string
		if err := rows.Scan(&e.ID, &e.Summary, &e.Description, &e.StartTime, &e.EndTime, &attendees); err != nil {
			return nil, err
		}
		json.Unmarshal([]byte(attendees), &e.Attendees)
		events = append(events, e)
	}
	return events, rows.Err()
}
