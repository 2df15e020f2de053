package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/sadopc/reflex/internal/export"
	"github.com/sadopc/reflex/internal/tui"
)

func exportCmd(a *app) *cobra.Command {
	var format, out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "💾 Export tasks, focus sessions and logs",
		Long:  "Export the full history as CSV or JSON. Use --out - to write to stdout.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format = strings.ToLower(strings.TrimSpace(format))
			if format != "csv" && format != "json" {
				return fmt.Errorf("unknown export format %q (use csv or json)", format)
			}

			data, err := export.Load(a.store)
			if err != nil {
				return fmt.Errorf("load history: %w", err)
			}

			if out == "-" {
				if format == "json" {
					return export.WriteJSON(cmd.OutOrStdout(), data, time.Now())
				}
				return export.WriteCSV(cmd.OutOrStdout(), data)
			}

			if out == "" {
				out = "reflex-export." + format
			}
			if format == "json" {
				err = export.ToJSON(data, out)
			} else {
				err = export.ToCSV(data, out)
			}
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), tui.Success(fmt.Sprintf(
				"Exported %d tasks, %d focus sessions and %d log entries to %s",
				len(data.Tasks), len(data.FocusSessions), len(data.Logs), out)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "csv", "export format: csv or json")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default reflex-export.<format>)")
	return cmd
}
