// Package tui renders reflex output for the terminal: status lines, panels,
// tables, the history chart and the interactive focus timer.
package tui

import (
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/sadopc/reflex/internal/store"
)

// --- Status lines ---

func Success(msg string) string { return successStyle.Render("✅ " + msg) }
func Warn(msg string) string    { return warningStyle.Render("⚠️ " + msg) }
func Error(msg string) string   { return errorStyle.Render("❌ " + msg) }
func Info(msg string) string    { return infoStyle.Render("ℹ️ " + msg) }
func Hint(msg string) string    { return highlightStyle.Render("💡 " + msg) }
func Muted(msg string) string   { return mutedStyle.Render(msg) }
func Title(msg string) string   { return titleStyle.Render(msg) }

// Panel draws body inside a rounded border with a bold title line.
func Panel(title, body string, border lipgloss.Color) string {
	return panelStyle.
		BorderForeground(border).
		Render(lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render(title), "", body))
}

// --- Tables ---

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorSubtle)).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerCellStyle
			}
			return cellStyle
		})
}

// TaskTable lists tasks with their id, status and text.
func TaskTable(title string, tasks []store.Task) string {
	if len(tasks) == 0 {
		return Muted("No tasks for today. Add one with: reflex add \"task\"")
	}
	t := newTable("ID", "Status", "Task")
	for _, task := range tasks {
		status := "⏳ Pending"
		if task.Completed {
			status = "✅ Done"
		}
		t.Row(strconv.FormatInt(task.ID, 10), status, task.Text)
	}
	return lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render(title), t.Render())
}

// Commits is the GitHub row of the stats table. Count is ignored unless OK.
type Commits struct {
	Count int
	OK    bool
}

// StatsTable renders the day's counters as a metric/value table.
func StatsTable(st *store.DailyStats, commits Commits) string {
	t := newTable("Metric", "Value")
	t.Row("Tasks Completed", strconv.Itoa(st.CompletedTasks))
	t.Row("Tasks Pending", strconv.Itoa(st.PendingTasks))
	t.Row("Focus Sessions", strconv.Itoa(st.FocusSessions))
	t.Row("Focus Time", fmt.Sprintf("%d min", st.TotalFocusTime))
	t.Row("Log Entries", strconv.Itoa(st.LogEntries))
	if commits.OK {
		t.Row("GitHub Commits", strconv.Itoa(commits.Count))
	} else {
		t.Row("GitHub Commits", "0 (not tracked)")
	}
	return lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render("📊 Today's Stats"), t.Render())
}

// SettingsTable renders stored settings as key/value rows.
func SettingsTable(settings []store.Setting) string {
	t := newTable("Setting", "Value")
	for _, s := range settings {
		t.Row(s.Key, formatSettingValue(s.Key, s.Value))
	}
	return t.Render()
}

// CommitLine is one row of the track-commits listing.
type CommitLine struct {
	Message string
	Time    time.Time
}

// CommitTable lists commits with their local time of day.
func CommitTable(commits []CommitLine) string {
	t := newTable("Time", "Message")
	for _, c := range commits {
		t.Row(c.Time.Local().Format("15:04"), c.Message)
	}
	return t.Render()
}

func formatSettingValue(k, v string) string {
	switch k {
	case "focus_minutes":
		if n, err := strconv.Atoi(v); err == nil {
			return fmt.Sprintf("%d min", n)
		}
	case "history_days":
		if n, err := strconv.Atoi(v); err == nil {
			return fmt.Sprintf("%d days", n)
		}
	}
	return v
}
