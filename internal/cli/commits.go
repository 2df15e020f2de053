package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sadopc/reflex/internal/config"
	"github.com/sadopc/reflex/internal/tui"
)

func trackCommitsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "track-commits",
		Short: "🔗 Show today's GitHub commits",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			username, token := a.cfg.GitHubUsername, a.cfg.GitHubToken

			if strings.TrimSpace(username) == "" || strings.TrimSpace(token) == "" {
				fmt.Fprintln(out, tui.Error("Missing GitHub credentials."))
				if err := a.promptGitHub(&username, &token); err != nil {
					if errors.Is(err, huh.ErrUserAborted) {
						fmt.Fprintln(out, tui.Muted("Cancelled"))
						return nil
					}
					return fmt.Errorf("prompt github credentials: %w", err)
				}
				a.offerSave(out, username, token)
			}

			today := a.store.Today()
			ctx, cancel := context.WithTimeout(cmd.Context(), githubTimeout)
			defer cancel()

			commits, err := a.newGitHub(username, token).Commits(ctx, today)
			if err != nil {
				fmt.Fprintln(out, tui.Error("Failed to fetch commits: "+err.Error()))
				return nil
			}

			fmt.Fprintln(out, tui.Title("Commits for "+today.Format("2006-01-02")+":"))
			if len(commits) == 0 {
				fmt.Fprintln(out, tui.Muted("No commits found."))
				return nil
			}
			lines := make([]tui.CommitLine, 0, len(commits))
			for _, c := range commits {
				lines = append(lines, tui.CommitLine{Message: c.Message, Time: c.Time})
			}
			fmt.Fprintln(out, tui.CommitTable(lines))
			return nil
		},
	}
}

func (a *app) offerSave(out io.Writer, username, token string) {
	ok, err := a.confirm("Save credentials to .env?")
	if err != nil || !ok {
		return
	}
	err = config.SaveCredentials(a.envPath, map[string]string{
		"GITHUB_USERNAME": strings.TrimSpace(username),
		"GITHUB_TOKEN":    strings.TrimSpace(token),
	})
	if err != nil {
		a.log.Warn("save github credentials", zap.Error(err))
		fmt.Fprintln(out, tui.Warn("Could not save credentials: "+err.Error()))
		return
	}
	fmt.Fprintln(out, tui.Success("Credentials saved."))
}
