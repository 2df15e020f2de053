package store

import (
	"fmt"
	"time"
)

// AddFocusSession records a finished focus session of the given whole minutes.
func (s *Store) AddFocusSession(minutes int) (*FocusSession, error) {
	if minutes <= 0 {
		return nil, fmt.Errorf("insert focus session: duration must be positive, got %d", minutes)
	}
	now := s.now()
	res, err := s.db.Exec(
		`INSERT INTO focus_sessions (duration, date, timestamp) VALUES (?, ?, ?)`,
		minutes, formatDate(now), now.Format(tsLayout),
	)
	if err != nil {
		return nil, fmt.Errorf("insert focus session: %w", err)
	}
	id, _ := res.LastInsertId()
	return &FocusSession{
		ID:        id,
		Duration:  minutes,
		Date:      truncateDay(now),
		Timestamp: parseTimestamp(now.Format(tsLayout)),
	}, nil
}

func (s *Store) FocusSessionsFor(day time.Time) ([]FocusSession, error) {
	return s.queryFocusSessions(
		`SELECT id, duration, date, timestamp FROM focus_sessions WHERE date = ? ORDER BY timestamp, id`,
		formatDate(day),
	)
}

func (s *Store) AllFocusSessions() ([]FocusSession, error) {
	return s.queryFocusSessions(`SELECT id, duration, date, timestamp FROM focus_sessions ORDER BY timestamp, id`)
}

func (s *Store) queryFocusSessions(query string, args ...any) ([]FocusSession, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list focus sessions: %w", err)
	}
	defer rows.Close()

	var sessions []FocusSession
	for rows.Next() {
		var f FocusSession
		var date, ts string
		if err := rows.Scan(&f.ID, &f.Duration, &date, &ts); err != nil {
			return nil, err
		}
		f.Date = parseDate(date)
		f.Timestamp = parseTimestamp(ts)
		sessions = append(sessions, f)
	}
	return sessions, rows.Err()
}
