package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type tickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// FocusModel is the Bubble Tea model for a single focus session. It ticks
// once per second and quits when the target is reached or the user stops.
type FocusModel struct {
	timer    focusTimer
	progress progress.Model
	help     help.Model
	width    int

	finished  bool
	cancelled bool
}

func NewFocusModel(target time.Duration, now func() time.Time) FocusModel {
	h := help.New()
	h.ShowAll = false
	t := newFocusTimer(target, now)
	t.start()
	return FocusModel{
		timer:    t,
		progress: progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
		help:     h,
	}
}

func (m FocusModel) Init() tea.Cmd {
	return tickCmd()
}

func (m FocusModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		m.progress.Width = max(10, min(msg.Width-12, 60))
		return m, nil

	case tickMsg:
		if m.timer.done() {
			m.timer.stop()
			m.finished = true
			return m, tea.Quit
		}
		return m, tickCmd()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Pause):
			m.timer.toggle()
		case key.Matches(msg, keys.Stop), key.Matches(msg, keys.Quit):
			m.timer.stop()
			m.cancelled = true
			return m, tea.Quit
		case key.Matches(msg, keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		}
	}
	return m, nil
}

func (m FocusModel) View() string {
	if m.finished || m.cancelled {
		return ""
	}

	style := timerRunningStyle
	label := successStyle.Bold(true).Render("FOCUS")
	if m.timer.paused() {
		style = timerPausedStyle
		label = warningStyle.Bold(true).Render("PAUSED")
	}

	content := lipgloss.JoinVertical(lipgloss.Center,
		titleStyle.Render(fmt.Sprintf("🎯 Focus session (%d min)", int(m.timer.target/time.Minute))),
		"",
		style.Render(formatClock(m.timer.remaining())),
		label,
		"",
		m.progress.ViewAs(m.timer.percent()),
	)
	return panelStyle.Render(
		lipgloss.JoinVertical(lipgloss.Center, content, "", m.help.View(keys)),
	) + "\n"
}

// FocusResult describes how a focus session ended.
type FocusResult struct {
	Minutes   int
	Completed bool
}

// FocusOptions configures RunFocus. Zero values use the terminal.
type FocusOptions struct {
	Input  io.Reader
	Output io.Writer
	Now    func() time.Time
}

// RunFocus blocks for the session. An early stop, an interrupt or a cancelled
// ctx all end the session with the whole minutes elapsed so far.
func RunFocus(ctx context.Context, target time.Duration, opts FocusOptions) (FocusResult, error) {
	var progOpts []tea.ProgramOption
	progOpts = append(progOpts, tea.WithContext(ctx))
	if opts.Input != nil {
		progOpts = append(progOpts, tea.WithInput(opts.Input))
	}
	if opts.Output != nil {
		progOpts = append(progOpts, tea.WithOutput(opts.Output))
	}

	final, err := tea.NewProgram(NewFocusModel(target, opts.Now), progOpts...).Run()
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) && !errors.Is(err, tea.ErrInterrupted) {
		return FocusResult{}, fmt.Errorf("run focus timer: %w", err)
	}
	m, ok := final.(FocusModel)
	if !ok {
		return FocusResult{}, nil
	}
	return m.Result(), nil
}

// Result reports the outcome so far.
func (m FocusModel) Result() FocusResult {
	return FocusResult{
		Minutes:   m.timer.minutes(),
		Completed: m.finished,
	}
}

func formatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	m := int(d.Minutes())
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d", m, s)
}
