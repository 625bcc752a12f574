// ABOUTME: Request log store operations.
// ABOUTME: Persists HTTP request records captured by the logging middleware.

package store

// RequestLog is one captured HTTP request.
type RequestLog struct {
	ID         int
	Timestamp  string
	Method     string
	Path       string
	StatusCode int
	DurationMs int
	UserID     string
	IPAddress  string
	UserAgent  string
}

func (s *Store) LogRequest(rl *RequestLog) error {
	_, err := s.db.Exec(
		`INSERT INTO request_logs (method, path, status_code, duration_ms, user_id, ip_address, user_agent)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rl.Method, rl.Path, rl.StatusCode, rl.DurationMs, rl.UserID, rl.IPAddress, rl.UserAgent,
	)
	return err
}

// RecentRequestLogs returns the latest limit request logs, newest first.
func (s *Store) RecentRequestLogs(limit int) ([]RequestLog, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.Query(
		`SELECT id, timestamp, method, path, status_code, duration_ms, user_id, ip_address, user_agent
		 FROM request_logs ORDER BY timestamp DESC, id DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []RequestLog
	for rows.Next() {
		var rl RequestLog
		if err := rows.Scan(&rl.ID, &rl.Timestamp, &rl.Method, &rl.Path, &rl.StatusCode,
			&rl.DurationMs, &rl.UserID, &rl.IPAddress, &rl.UserAgent); err != nil {
			return nil, err
		}
		logs = append(logs, rl)
	}
	return logs, rows.Err()
}
