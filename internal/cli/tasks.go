package cli

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/me/optrack/pkg/model"
)

func newTasksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "Manage future tasks scheduled against a submission",
	}
	cmd.AddCommand(newTasksListCmd(), newTasksAddCmd(), newTasksRemoveCmd())
	return cmd
}

func newTasksListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list <submission_id>",
		Short: "List a submission's future tasks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := client.Get(submissionPath(args[0])+"/future-tasks/", nil)
			if err != nil {
				return fmt.Errorf("list future tasks: %w", err)
			}
			var tasks []*model.FutureTask
			if err := decode(resp, &tasks); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(tasks) == 0 {
				fmt.Fprintln(out, "No future tasks.")
				return nil
			}
			fmt.Fprintf(out, "%-38s  %-30s  %-16s  %-10s  %-8s  %s\n", "ID", "TASK", "ASSIGNEE", "DUE", "PRIORITY", "STATUS")
			for _, t := range tasks {
				fmt.Fprintf(out, "%-38s  %-30s  %-16s  %-10s  %-8s  %s\n",
					t.ID, truncate(t.Task, 30), truncate(t.Assignee, 16), t.DueDate, t.Priority, t.Status)
			}
			return nil
		},
	}
}

func newTasksAddCmd() *cobra.Command {
	var task, assignee, due, priority string
	cmd := &cobra.Command{
		Use:   "add <submission_id>",
		Short: "Schedule a future task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := client.Post(submissionPath(args[0])+"/future-tasks/", map[string]any{
				"task":     task,
				"assignee": assignee,
				"due_date": due,
				"priority": priority,
			})
			if err != nil {
				return fmt.Errorf("add future task: %w", err)
			}
			var t model.FutureTask
			if err := decode(resp, &t); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Task scheduled: %s\n", t.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&task, "task", "", "Task description (required)")
	cmd.Flags().StringVar(&assignee, "assignee", "", "Assignee (required)")
	cmd.Flags().StringVar(&due, "due", "", "Due date, e.g. 2025-01-31 (required)")
	cmd.Flags().StringVar(&priority, "priority", string(model.PriorityMedium), "Priority (high, medium, low)")
	cmd.MarkFlagRequired("task")
	cmd.MarkFlagRequired("assignee")
	cmd.MarkFlagRequired("due")
	return cmd
}

func newTasksRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <task_id>",
		Short: "Remove a future task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := client.Delete("/api/v1/future-tasks/" + url.PathEscape(args[0])); err != nil {
				return fmt.Errorf("remove future task: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Task %s removed\n", args[0])
			return nil
		},
	}
}
