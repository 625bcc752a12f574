// ABOUTME: Availability slot store operations.
// ABOUTME: Handles CRUD and listing with time range and member filtering.

package store

import (
	"github.com/google/uuid"

	"github.com/2389/rota/internal/schedule"
)

func (s *Store) CreateSlot(slot *schedule.Slot) (*schedule.Slot, error) {
	if slot.ID == "" {
		slot.ID = "slot_" + uuid.NewString()
	}
	_, err := s.db.Exec(
		`INSERT INTO availability_slots (id, member_name, status, start_time, end_time)
		 VALUES (?, ?, ?, ?, ?)`,
		slot.ID, slot.MemberName, string(slot.Status), slot.StartTime, slot.EndTime,
	)
	if err != nil {
		return nil, err
	}
	return slot, nil
}

// ListSlots returns slots whose start falls within [start, end], oldest
// first. Empty bounds are open; a non-empty member narrows to that member.
func (s *Store) ListSlots(start, end, member string) ([]schedule.Slot, error) {
	query := "SELECT id, member_name, status, start_time, end_time FROM availability_slots WHERE 1=1"
	args := []any{}

	if start != "" {
		query += " AND start_time >= ?"
		args = append(args, start)
	}
	if end != "" {
		query += " AND start_time <= ?"
		args = append(args, end)
	}
	if member != "" {
		query += " AND member_name = ?"
		args = append(args, member)
	}

	query += " ORDER BY start_time ASC"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var slots []schedule.Slot
	for rows.Next() {
		var slot schedule.Slot
		var status string
		if err := rows.Scan(&slot.ID, &slot.MemberName, &status, &slot.StartTime, &slot.EndTime); err != nil {
			return nil, err
		}
		slot.Status = schedule.Status(status)
		slots = append(slots, slot)
	}
	return slots, rows.Err()
}

func (s *Store) DeleteSlot(id string) error {
	res, err := s.db.Exec("DELETE FROM availability_slots WHERE id = ?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
