package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sadopc/reflex/internal/tui"
)

func startFocusCmd(a *app) *cobra.Command {
	var minutes int

	cmd := &cobra.Command{
		Use:     "start-focus",
		Aliases: []string{"focus"},
		Short:   "🎯 Start a focus session",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("minutes") {
				minutes = a.store.GetIntSetting("focus_minutes", 25)
			}
			if minutes <= 0 {
				return fmt.Errorf("minutes must be greater than zero, got %d", minutes)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "🎯 Starting %d-minute focus session...\n", minutes)
			fmt.Fprintln(out, tui.Muted("Press q or ctrl+c to stop early"))

			opts := tui.FocusOptions{Output: out}
			if in := cmd.InOrStdin(); in != io.Reader(os.Stdin) {
				opts.Input = in
			}
			res, err := a.runFocus(cmd.Context(), time.Duration(minutes)*time.Minute, opts)
			if err != nil {
				return err
			}

			if res.Minutes > 0 {
				if _, err := a.store.AddFocusSession(res.Minutes); err != nil {
					return fmt.Errorf("save focus session: %w", err)
				}
			} else {
				a.log.Debug("focus session shorter than a minute, not recorded")
			}

			if res.Completed {
				fmt.Fprintf(out, "🎉 Focus session completed! (%d minutes)\n", res.Minutes)
			} else {
				fmt.Fprintf(out, "⏹️ Focus session stopped. Time focused: %d minutes\n", res.Minutes)
			}
			a.log.Debug("focus session ended", zap.Int("minutes", res.Minutes), zap.Bool("completed", res.Completed))
			return nil
		},
	}

	cmd.Flags().IntVarP(&minutes, "minutes", "m", 25, "session length in minutes (default: focus_minutes setting)")
	return cmd
}
