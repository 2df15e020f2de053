package store

import (
	"fmt"
	"time"
)

// DailyStats counts the day's tasks, focus sessions and log entries. Every
// filter is an exact match on the stored calendar date.
func (s *Store) DailyStats(day time.Time) (*DailyStats, error) {
	d := formatDate(day)
	st := &DailyStats{}

	err := s.db.QueryRow(`
		SELECT COALESCE(SUM(CASE WHEN completed = 1 THEN 1 ELSE 0 END), 0),
		       COALESCE(SUM(CASE WHEN completed = 1 THEN 0 ELSE 1 END), 0)
		FROM tasks WHERE date_added = ?`, d,
	).Scan(&st.CompletedTasks, &st.PendingTasks)
	if err != nil {
		return nil, fmt.Errorf("task stats: %w", err)
	}

	err = s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(duration), 0) FROM focus_sessions WHERE date = ?`, d,
	).Scan(&st.FocusSessions, &st.TotalFocusTime)
	if err != nil {
		return nil, fmt.Errorf("focus stats: %w", err)
	}

	err = s.db.QueryRow(`SELECT COUNT(*) FROM logs WHERE date = ?`, d).Scan(&st.LogEntries)
	if err != nil {
		return nil, fmt.Errorf("log stats: %w", err)
	}
	return st, nil
}

// History returns one row per day for the `days` days ending on `end`,
// oldest first. Days without activity are present with zero totals.
func (s *Store) History(end time.Time, days int) ([]DayTotals, error) {
	if days <= 0 {
		return nil, nil
	}
	end = truncateDay(end)
	start := end.AddDate(0, 0, -(days - 1))

	totals := make([]DayTotals, days)
	index := make(map[string]int, days)
	for i := range totals {
		d := start.AddDate(0, 0, i)
		totals[i].Date = d
		index[formatDate(d)] = i
	}

	rows, err := s.db.Query(`
		SELECT date, COUNT(*), COALESCE(SUM(duration), 0)
		FROM focus_sessions
		WHERE date >= ? AND date <= ?
		GROUP BY date`,
		formatDate(start), formatDate(end),
	)
	if err != nil {
		return nil, fmt.Errorf("focus history: %w", err)
	}
	for rows.Next() {
		var date string
		var count, minutes int
		if err := rows.Scan(&date, &count, &minutes); err != nil {
			rows.Close()
			return nil, err
		}
		if i, ok := index[formatDate(parseDate(date))]; ok {
			totals[i].FocusSessions = count
			totals[i].FocusMinutes = minutes
		}
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}

	rows, err = s.db.Query(`
		SELECT date_completed, COUNT(*)
		FROM tasks
		WHERE completed = 1 AND date_completed >= ? AND date_completed <= ?
		GROUP BY date_completed`,
		formatDate(start), formatDate(end),
	)
	if err != nil {
		return nil, fmt.Errorf("task history: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var date string
		var count int
		if err := rows.Scan(&date, &count); err != nil {
			return nil, err
		}
		if i, ok := index[formatDate(parseDate(date))]; ok {
			totals[i].CompletedTasks = count
		}
	}
	return totals, rows.Err()
}
