package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"
)

var csvHeader = []string{"Type", "ID", "Date", "Timestamp", "Text", "Completed", "Date Completed", "Minutes", "Duration"}

// WriteCSV writes one row per task, focus session and log entry.
func WriteCSV(out io.Writer, d *Data) error {
	w := csv.NewWriter(out)

	if err := w.Write(csvHeader); err != nil {
		return err
	}

	for _, t := range d.Tasks {
		completed := ""
		if t.DateCompleted != nil {
			completed = t.DateCompleted.Format(dateLayout)
		}
		row := []string{
			"task",
			fmt.Sprintf("%d", t.ID),
			t.DateAdded.Format(dateLayout),
			"",
			t.Text,
			fmt.Sprintf("%t", t.Completed),
			completed,
			"",
			"",
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	for _, f := range d.FocusSessions {
		row := []string{
			"focus",
			fmt.Sprintf("%d", f.ID),
			f.Date.Format(dateLayout),
			f.Timestamp.Local().Format(time.RFC3339),
			"",
			"",
			"",
			fmt.Sprintf("%d", f.Duration),
			formatMinutes(f.Duration),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	for _, l := range d.Logs {
		row := []string{
			"log",
			fmt.Sprintf("%d", l.ID),
			l.Date.Format(dateLayout),
			l.Timestamp.Local().Format(time.RFC3339),
			l.Entry,
			"",
			"",
			"",
			"",
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func ToCSV(d *Data, path string) error {
	if err := writeFile(path, func(w io.Writer) error { return WriteCSV(w, d) }); err != nil {
		return fmt.Errorf("write csv file: %w", err)
	}
	return nil
}
