package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sadopc/reflex/internal/tui"
)

const (
	chartWidth    = 60
	githubTimeout = 10 * time.Second
)

func statsCmd(a *app) *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "📊 Show today's stats and focus history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("days") {
				days = a.store.GetIntSetting("history_days", 7)
			}
			if days <= 0 {
				return fmt.Errorf("days must be greater than zero, got %d", days)
			}

			out := cmd.OutOrStdout()
			today := a.store.Today()

			st, err := a.store.DailyStats(today)
			if err != nil {
				return err
			}

			fmt.Fprintln(out, tui.StatsTable(st, a.commitCount(cmd.Context(), today)))
			fmt.Fprintln(out)

			history, err := a.store.History(today, days)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, tui.Title(fmt.Sprintf("🎯 Focus minutes, last %d days", days)))
			fmt.Fprintln(out, tui.HistoryChart(history, chartWidth))
			return nil
		},
	}

	cmd.Flags().IntVarP(&days, "days", "d", 7, "days of history to chart (default: history_days setting)")
	return cmd
}

// commitCount asks GitHub for today's commit count when credentials are
// configured. Failures only cost the row.
func (a *app) commitCount(ctx context.Context, day time.Time) tui.Commits {
	gh := a.newGitHub(a.cfg.GitHubUsername, a.cfg.GitHubToken)
	if !gh.Configured() {
		return tui.Commits{}
	}
	ctx, cancel := context.WithTimeout(ctx, githubTimeout)
	defer cancel()

	n, err := gh.Count(ctx, day)
	if err != nil {
		a.log.Warn("count github commits", zap.Error(err))
		return tui.Commits{}
	}
	return tui.Commits{Count: n, OK: true}
}
