package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sadopc/reflex/internal/review"
)

func reviewCmd(a *app) *cobra.Command {
	var opts review.Options

	cmd := &cobra.Command{
		Use:   "review",
		Short: "🤖 Review your day, with AI when available",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.ModelSet = cmd.Flags().Changed("model")

			r := &review.Reviewer{
				Out:        cmd.OutOrStdout(),
				Log:        a.log,
				Source:     a.store,
				Today:      a.store.Today,
				NewManager: a.newManager,
			}
			res := r.Run(cmd.Context(), opts)
			a.log.Debug("review finished", zap.String("mode", string(res.Mode)), zap.NamedError("cause", res.Err))
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.Provider, "provider", "p", "", "AI provider (openai, anthropic, gemini, ollama)")
	cmd.Flags().StringVarP(&opts.Model, "model", "m", "", "model name for the provider")
	return cmd
}

func providersCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "providers",
		Short: "🔧 List supported AI providers and their status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			review.ListProviders(cmd.OutOrStdout(), a.newManager(cmd.Context()))
			return nil
		},
	}
}
