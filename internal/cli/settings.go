package cli

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/sadopc/reflex/internal/tui"
)

var settingKeys = []string{"focus_minutes", "history_days"}

func settingsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "⚙️ Show or change settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.printSettings(cmd)
		},
	}
	cmd.AddCommand(settingsSetCmd(a), settingsEditCmd(a))
	return cmd
}

func (a *app) printSettings(cmd *cobra.Command) error {
	settings, err := a.store.GetAllSettings()
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), tui.SettingsTable(settings))
	return nil
}

func settingsSetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a setting (focus_minutes, history_days)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := strings.ToLower(strings.TrimSpace(args[0]))
			if !slices.Contains(settingKeys, key) {
				return fmt.Errorf("unknown setting %q (valid: %s)", key, strings.Join(settingKeys, ", "))
			}
			n, err := strconv.Atoi(strings.TrimSpace(args[1]))
			if err != nil || n <= 0 {
				return fmt.Errorf("%s must be a whole number greater than zero, got %q", key, args[1])
			}
			if err := a.store.SetSetting(key, strconv.Itoa(n)); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tui.Success(fmt.Sprintf("%s set to %d", key, n)))
			return nil
		},
	}
}

func settingsEditCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "edit",
		Short: "Edit settings in a form",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.editSettings(a.store); err != nil {
				if errors.Is(err, huh.ErrUserAborted) {
					fmt.Fprintln(cmd.OutOrStdout(), tui.Muted("Cancelled"))
					return nil
				}
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tui.Success("Settings saved."))
			return a.printSettings(cmd)
		},
	}
}
