package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/sadopc/reflex/internal/store"
)

// SettingsValues holds the editable settings as form strings.
type SettingsValues struct {
	FocusMinutes string
	HistoryDays  string
}

func positiveInt(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return fmt.Errorf("enter a whole number greater than zero")
	}
	return nil
}

// SettingsForm builds the settings editor over v.
func SettingsForm(v *SettingsValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Focus session length (min)").Value(&v.FocusMinutes).Validate(positiveInt),
			huh.NewInput().Title("Stats history (days)").Value(&v.HistoryDays).Validate(positiveInt),
		).Title("Settings"),
	).WithShowHelp(true).WithShowErrors(true)
}

// EditSettings loads the current settings, runs the form and saves the
// result. huh.ErrUserAborted is returned unchanged when the user quits.
func EditSettings(s *store.Store) error {
	v := &SettingsValues{
		FocusMinutes: getVal(s, "focus_minutes", "25"),
		HistoryDays:  getVal(s, "history_days", "7"),
	}
	if err := SettingsForm(v).Run(); err != nil {
		return err
	}
	return SaveSettings(s, v)
}

// SaveSettings validates and stores v.
func SaveSettings(s *store.Store, v *SettingsValues) error {
	values := []struct{ key, val string }{
		{"focus_minutes", v.FocusMinutes},
		{"history_days", v.HistoryDays},
	}
	for _, kv := range values {
		if err := positiveInt(kv.val); err != nil {
			return fmt.Errorf("%s: %w", kv.key, err)
		}
	}
	for _, kv := range values {
		if err := s.SetSetting(kv.key, strings.TrimSpace(kv.val)); err != nil {
			return err
		}
	}
	return nil
}

func getVal(s *store.Store, k, fallback string) string {
	v, err := s.GetSetting(k)
	if err != nil {
		return fallback
	}
	return v
}

// PromptGitHub asks for whichever of username and token is still empty.
func PromptGitHub(username, token *string) error {
	var fields []huh.Field
	if strings.TrimSpace(*username) == "" {
		fields = append(fields, huh.NewInput().
			Title("GitHub username").
			Value(username).
			Validate(huh.ValidateNotEmpty()))
	}
	if strings.TrimSpace(*token) == "" {
		fields = append(fields, huh.NewInput().
			Title("GitHub personal access token").
			Description("Needs read access to your commits.").
			EchoMode(huh.EchoModePassword).
			Value(token).
			Validate(huh.ValidateNotEmpty()))
	}
	if len(fields) == 0 {
		return nil
	}
	return huh.NewForm(huh.NewGroup(fields...)).Run()
}

// Confirm asks a yes/no question.
func Confirm(title string) (bool, error) {
	var ok bool
	err := huh.NewConfirm().
		Title(title).
		Affirmative("Yes").
		Negative("No").
		Value(&ok).
		Run()
	return ok, err
}
