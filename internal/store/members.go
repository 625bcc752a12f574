// ABOUTME: Member store operations.
// ABOUTME: Handles creation and listing with optional name prefix search.

package store

import (
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/2389/rota/internal/schedule"
)

func (s *Store) CreateMember(m *schedule.Member) (*schedule.Member, error) {
	if m.ID == "" {
		m.ID = "mem_" + uuid.NewString()
	}
	_, err := s.db.Exec(
		"INSERT INTO members (id, name, email) VALUES (?, ?, ?)",
		m.ID, m.Name, m.Email,
	)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (s *Store) GetMember(id string) (*schedule.Member, error) {
	var m schedule.Member
	err := s.db.QueryRow(
		"SELECT id, name, email FROM members WHERE id = ?", id,
	).Scan(&m.ID, &m.Name, &m.Email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// ListMembers returns members ordered by name. A non-empty search narrows to
// names starting with it.
func (s *Store) ListMembers(search string) ([]schedule.Member, error) {
	query := "SELECT id, name, email FROM members"
	args := []any{}
	if search != "" {
		query += " WHERE name LIKE ? ESCAPE '\\'"
		args = append(args, escapeSQLLike(search)+"%")
	}
	query += " ORDER BY name ASC"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []schedule.Member
	for rows.Next() {
		var m schedule.Member
		if err := rows.Scan(&m.ID, &m.Name, &m.Email); err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}
