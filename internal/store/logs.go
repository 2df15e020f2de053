package store

import (
	"fmt"
	"time"
)

func (s *Store) AddLog(entry string) (*LogEntry, error) {
	now := s.now()
	res, err := s.db.Exec(
		`INSERT INTO logs (entry, date, timestamp) VALUES (?, ?, ?)`,
		entry, formatDate(now), now.Format(tsLayout),
	)
	if err != nil {
		return nil, fmt.Errorf("insert log: %w", err)
	}
	id, _ := res.LastInsertId()
	return &LogEntry{
		ID:        id,
		Entry:     entry,
		Date:      truncateDay(now),
		Timestamp: parseTimestamp(now.Format(tsLayout)),
	}, nil
}

// LogsFor returns the entries logged on the given day in timestamp order.
func (s *Store) LogsFor(day time.Time) ([]LogEntry, error) {
	return s.queryLogs(
		`SELECT id, entry, date, timestamp FROM logs WHERE date = ? ORDER BY timestamp, id`,
		formatDate(day),
	)
}

func (s *Store) AllLogs() ([]LogEntry, error) {
	return s.queryLogs(`SELECT id, entry, date, timestamp FROM logs ORDER BY timestamp, id`)
}

func (s *Store) queryLogs(query string, args ...any) ([]LogEntry, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list logs: %w", err)
	}
	defer rows.Close()

	var logs []LogEntry
	for rows.Next() {
		var l LogEntry
		var date, ts string
		if err := rows.Scan(&l.ID, &l.Entry, &date, &ts); err != nil {
			return nil, err
		}
		l.Date = parseDate(date)
		l.Timestamp = parseTimestamp(ts)
		logs = append(logs, l)
	}
	return logs, rows.Err()
}
