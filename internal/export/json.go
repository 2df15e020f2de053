package export

import (
	"encoding/json"
	"fmt"
	"io"
	"time"
)

type jsonExport struct {
	ExportedAt    string      `json:"exported_at"`
	Counts        jsonCounts  `json:"counts"`
	Tasks         []jsonTask  `json:"tasks"`
	FocusSessions []jsonFocus `json:"focus_sessions"`
	Logs          []jsonLog   `json:"logs"`
}

type jsonCounts struct {
	Tasks         int `json:"tasks"`
	FocusSessions int `json:"focus_sessions"`
	Logs          int `json:"logs"`
	FocusMinutes  int `json:"focus_minutes"`
}

type jsonTask struct {
	ID            int64  `json:"id"`
	Task          string `json:"task"`
	Completed     bool   `json:"completed"`
	DateAdded     string `json:"date_added"`
	DateCompleted string `json:"date_completed,omitempty"`
}

type jsonFocus struct {
	ID        int64  `json:"id"`
	Minutes   int    `json:"duration_minutes"`
	Duration  string `json:"duration"`
	Date      string `json:"date"`
	Timestamp string `json:"timestamp"`
}

type jsonLog struct {
	ID        int64  `json:"id"`
	Entry     string `json:"entry"`
	Date      string `json:"date"`
	Timestamp string `json:"timestamp"`
}

// WriteJSON writes d as a single indented JSON document.
func WriteJSON(w io.Writer, d *Data, now time.Time) error {
	export := jsonExport{
		ExportedAt:    now.UTC().Format(time.RFC3339),
		Tasks:         []jsonTask{},
		FocusSessions: []jsonFocus{},
		Logs:          []jsonLog{},
	}

	for _, t := range d.Tasks {
		jt := jsonTask{
			ID:        t.ID,
			Task:      t.Text,
			Completed: t.Completed,
			DateAdded: t.DateAdded.Format(dateLayout),
		}
		if t.DateCompleted != nil {
			jt.DateCompleted = t.DateCompleted.Format(dateLayout)
		}
		export.Tasks = append(export.Tasks, jt)
	}

	for _, f := range d.FocusSessions {
		export.FocusSessions = append(export.FocusSessions, jsonFocus{
			ID:        f.ID,
			Minutes:   f.Duration,
			Duration:  formatMinutes(f.Duration),
			Date:      f.Date.Format(dateLayout),
			Timestamp: f.Timestamp.Local().Format(time.RFC3339),
		})
		export.Counts.FocusMinutes += f.Duration
	}

	for _, l := range d.Logs {
		export.Logs = append(export.Logs, jsonLog{
			ID:        l.ID,
			Entry:     l.Entry,
			Date:      l.Date.Format(dateLayout),
			Timestamp: l.Timestamp.Local().Format(time.RFC3339),
		})
	}

	export.Counts.Tasks = len(export.Tasks)
	export.Counts.FocusSessions = len(export.FocusSessions)
	export.Counts.Logs = len(export.Logs)

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return err
	}
	return nil
}

func ToJSON(d *Data, path string) error {
	err := writeFile(path, func(w io.Writer) error { return WriteJSON(w, d, time.Now()) })
	if err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}
