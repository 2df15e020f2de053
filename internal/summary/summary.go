// Package summary assembles the snapshot of a day that the review is built
// from.
package summary

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/sadopc/reflex/internal/store"
)

// Source is the slice of the store the builder reads from.
type Source interface {
	DailyStats(day time.Time) (*store.DailyStats, error)
	ListTasksFor(day time.Time) ([]store.Task, error)
	LogsFor(day time.Time) ([]store.LogEntry, error)
}

type TaskLine struct {
	Text      string
	Completed bool
}

type LogLine struct {
	Entry     string
	Timestamp time.Time
}

// Summary is a read-only view of one day.
type Summary struct {
	Stats *store.DailyStats
	Tasks []TaskLine
	Logs  []LogLine
}

// Empty is the all-zero summary substituted when history cannot be read.
func Empty() *Summary {
	return &Summary{
		Stats: &store.DailyStats{},
		Tasks: []TaskLine{},
		Logs:  []LogLine{},
	}
}

// Build reads the day from src. It never fails: a stats or log read error
// yields Empty, a task read error yields an empty task list.
func Build(src Source, day time.Time, log *zap.Logger) *Summary {
	if log == nil {
		log = zap.NewNop()
	}

	stats, err := src.DailyStats(day)
	if err != nil || stats == nil {
		log.Warn("read daily stats", zap.Error(err))
		return Empty()
	}

	s := &Summary{Stats: stats, Tasks: []TaskLine{}, Logs: []LogLine{}}

	tasks, err := src.ListTasksFor(day)
	if err != nil {
		log.Warn("read tasks", zap.Error(err))
	}
	for _, t := range tasks {
		s.Tasks = append(s.Tasks, TaskLine{Text: t.Text, Completed: t.Completed})
	}

	logs, err := src.LogsFor(day)
	if err != nil {
		log.Warn("read logs", zap.Error(err))
		return Empty()
	}
	for _, l := range logs {
		s.Logs = append(s.Logs, LogLine{Entry: l.Entry, Timestamp: l.Timestamp})
	}
	return s
}

var (
	ErrNoSummary = errors.New("summary is missing")
	ErrNoStats   = errors.New("summary has no stats")
	ErrNoTasks   = errors.New("summary has no task list")
	ErrNoLogs    = errors.New("summary has no log list")
)

// Validate reports whether s can be turned into a prompt.
func Validate(s *Summary) error {
	switch {
	case s == nil:
		return ErrNoSummary
	case s.Stats == nil:
		return ErrNoStats
	case s.Tasks == nil:
		return ErrNoTasks
	case s.Logs == nil:
		return ErrNoLogs
	}

	fields := []struct {
		name  string
		value int
	}{
		{"completed_tasks", s.Stats.CompletedTasks},
		{"pending_tasks", s.Stats.PendingTasks},
		{"focus_sessions", s.Stats.FocusSessions},
		{"total_focus_time", s.Stats.TotalFocusTime},
		{"log_entries", s.Stats.LogEntries},
	}
	for _, f := range fields {
		if f.value < 0 {
			return fmt.Errorf("invalid stat %s: %d", f.name, f.value)
		}
	}
	return nil
}
