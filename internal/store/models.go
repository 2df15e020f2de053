package store

import "time"

type Task struct {
	ID            int64
	Text          string
	Completed     bool
	DateAdded     time.Time
	DateCompleted *time.Time
}

type FocusSession struct {
	ID        int64
	Duration  int // minutes
	Date      time.Time
	Timestamp time.Time
}

type LogEntry struct {
	ID        int64
	Entry     string
	Date      time.Time
	Timestamp time.Time
}

type Setting struct {
	Key   string
	Value string
}

// DailyStats holds the counters for a single calendar day.
type DailyStats struct {
	CompletedTasks int
	PendingTasks   int
	FocusSessions  int
	TotalFocusTime int // minutes
	LogEntries     int
}

// DayTotals is one row of the focus history.
type DayTotals struct {
	Date           time.Time
	FocusMinutes   int
	FocusSessions  int
	CompletedTasks int
}
