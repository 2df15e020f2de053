// Package export writes the full activity history as CSV or JSON.
package export

import (
	"fmt"
	"io"
	"os"

	"github.com/sadopc/reflex/internal/store"
)

// Data is everything that gets exported.
type Data struct {
	Tasks         []store.Task
	FocusSessions []store.FocusSession
	Logs          []store.LogEntry
}

// Load reads the full history from s.
func Load(s *store.Store) (*Data, error) {
	tasks, err := s.AllTasks()
	if err != nil {
		return nil, err
	}
	sessions, err := s.AllFocusSessions()
	if err != nil {
		return nil, err
	}
	logs, err := s.AllLogs()
	if err != nil {
		return nil, err
	}
	return &Data{Tasks: tasks, FocusSessions: sessions, Logs: logs}, nil
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func formatMinutes(mins int) string {
	return fmt.Sprintf("%02d:%02d", mins/60, mins%60)
}

const dateLayout = "2006-01-02"
