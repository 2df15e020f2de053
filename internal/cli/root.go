// Package cli wires the reflex commands onto cobra. Each invocation builds
// one app holding the configuration, logger and store for that run.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sadopc/reflex/internal/ai"
	"github.com/sadopc/reflex/internal/config"
	"github.com/sadopc/reflex/internal/github"
	"github.com/sadopc/reflex/internal/logging"
	"github.com/sadopc/reflex/internal/store"
	"github.com/sadopc/reflex/internal/tui"
)

type app struct {
	dbPath  string
	debug   bool
	envPath string

	cfg   *config.Config
	log   *zap.Logger
	store *store.Store
	owned bool

	newManager   func(ctx context.Context) *ai.Manager
	newGitHub    func(username, token string) *github.Client
	runFocus     func(ctx context.Context, target time.Duration, opts tui.FocusOptions) (tui.FocusResult, error)
	promptGitHub func(username, token *string) error
	confirm      func(title string) (bool, error)
	editSettings func(s *store.Store) error
}

func newApp() *app {
	a := &app{
		envPath:      config.DotEnvFile,
		newGitHub:    github.NewClient,
		runFocus:     tui.RunFocus,
		promptGitHub: tui.PromptGitHub,
		confirm:      tui.Confirm,
		editSettings: tui.EditSettings,
	}
	a.newManager = func(ctx context.Context) *ai.Manager {
		return ai.NewManager(ctx, ai.Builders(a.cfg.AIConfigs(a.log)), a.cfg.DefaultProvider, a.log)
	}
	return a
}

// setup runs before every subcommand. Pieces already present (tests inject
// them) are left alone.
func (a *app) setup() error {
	if a.cfg == nil {
		if err := config.LoadDotEnv(a.envPath); err != nil {
			return err
		}
		a.cfg = config.Load()
	}
	if a.log == nil {
		a.log = logging.Must(a.debug || a.cfg.Debug)
	}
	if a.store != nil {
		return nil
	}

	path := a.dbPath
	if path == "" {
		path = a.cfg.DBPath
	}
	if path == "" {
		p, err := store.DefaultDBPath()
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}
		path = p
	}
	a.log.Debug("opening database", zap.String("path", path))

	s, err := store.New(path)
	if err != nil {
		return fmt.Errorf("initialize database: %w", err)
	}
	a.store = s
	a.owned = true
	return nil
}

func (a *app) close() {
	if a.owned && a.store != nil {
		if err := a.store.Close(); err != nil {
			a.log.Warn("close database", zap.Error(err))
		}
		a.store = nil
	}
	if a.log != nil {
		_ = a.log.Sync()
	}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "reflex",
		Short: "🧠 Reflex: tasks, focus sessions and daily reviews in your terminal",
		Long: `Reflex keeps today's tasks, focus sessions and work log in a local
database and reviews your day, with an AI provider when one is configured.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd == cmd.Root() || cmd.Name() == "help" {
				return nil
			}
			return a.setup()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	root.CompletionOptions.DisableDefaultCmd = true

	root.PersistentFlags().StringVar(&a.dbPath, "db", "", "database path (default: $REFLEX_DB or the user config dir)")
	root.PersistentFlags().BoolVar(&a.debug, "debug", false, "enable debug logging")

	root.AddCommand(
		addCmd(a),
		completeCmd(a),
		listTasksCmd(a),
		logCmd(a),
		startFocusCmd(a),
		statsCmd(a),
		reviewCmd(a),
		providersCmd(a),
		trackCommitsCmd(a),
		exportCmd(a),
		settingsCmd(a),
	)
	return root
}

// Execute runs the command line and returns the error that should end the
// process with a non-zero status, if any.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	a := newApp()
	defer a.close()

	root := newRootCmd(a)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(root.ErrOrStderr(), tui.Error(err.Error()))
		return err
	}
	return nil
}
