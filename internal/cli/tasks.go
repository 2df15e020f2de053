package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sadopc/reflex/internal/sanitize"
	"github.com/sadopc/reflex/internal/store"
	"github.com/sadopc/reflex/internal/tui"
)

// cleanInput joins args into one text and applies the input checks.
func cleanInput(kind string, args []string) (string, error) {
	text := strings.Join(args, " ")
	if !sanitize.IsReasonable(text) {
		return "", fmt.Errorf("invalid %s text", kind)
	}
	return sanitize.Clean(text), nil
}

func addCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "add <task>",
		Short: "📝 Add a task for today",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := cleanInput("task", args)
			if err != nil {
				return err
			}
			task, err := a.store.AddTask(text)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tui.Success("Added task: "+task.Text))
			return nil
		},
	}
}

func completeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "complete <task-id>",
		Short: "✅ Mark a task as completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(strings.TrimSpace(args[0]), 10, 64)
			if err != nil {
				return fmt.Errorf("task ID must be a number, got %q", args[0])
			}
			if err := a.store.CompleteTask(id); err != nil {
				if errors.Is(err, store.ErrNotFound) {
					return fmt.Errorf("task %d not found", id)
				}
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tui.Success(fmt.Sprintf("Task %d marked as completed!", id)))
			return nil
		},
	}
}

func listTasksCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "list-tasks",
		Aliases: []string{"list"},
		Short:   "📋 List today's tasks",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tasks, err := a.store.ListTasksFor(a.store.Today())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tui.TaskTable("📋 Today's Tasks", tasks))
			return nil
		},
	}
}

func logCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "log <entry>",
		Short: "📖 Add to today's work log",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := cleanInput("log", args)
			if err != nil {
				return err
			}
			entry, err := a.store.AddLog(text)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "📝 Logged: "+entry.Entry)
			return nil
		},
	}
}
