package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/me/optrack/pkg/model"
)

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <submission_id>",
		Short: "Show a submission with its comments and future tasks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]

			resp, err := client.Get(submissionPath(id), nil)
			if err != nil {
				return fmt.Errorf("get submission: %w", err)
			}
			var sub model.Submission
			if err := decode(resp, &sub); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Submission: %s\n", sub.ID)
			fmt.Fprintf(out, "  Operator:    %s\n", sub.Operator)
			fmt.Fprintf(out, "  Report:      %s (%s, %s)\n", sub.ReportType, sub.ReportParty, sub.Frequency)
			fmt.Fprintf(out, "  Period:      %s\n", sub.Period)
			fmt.Fprintf(out, "  Lease:       %s\n", sub.LeaseName)
			fmt.Fprintf(out, "  Properties:  %s\n", sub.Properties)
			fmt.Fprintf(out, "  Status:      %s (%d days)\n", sub.Status.Label(), sub.DaysUnderStatus)
			fmt.Fprintf(out, "  Due:         %s", sub.DueDate)
			if sub.DaysOverdue > 0 {
				fmt.Fprintf(out, " (%d days overdue)", sub.DaysOverdue)
			}
			fmt.Fprintln(out)
			if sub.Received() {
				fmt.Fprintf(out, "  Received:    %s\n", sub.ReceivedDate)
			}
			fmt.Fprintf(out, "  Reviewer:    %s\n", sub.ReviewerApprover)
			fmt.Fprintf(out, "  Team:        %s / %s / %s / %s\n", sub.AssetManager, sub.InvManager, sub.LeaseAdmin, sub.InvAssociate)
			if sub.Dataset == model.DatasetArchived {
				fmt.Fprintln(out, "  (archived, read-only)")
			}

			if len(sub.Comments) > 0 {
				fmt.Fprintln(out, "  Comments:")
				for _, c := range sub.Comments {
					fmt.Fprintf(out, "    - %s\n", c.Line())
				}
			}

			if sub.Dataset == model.DatasetArchived {
				return nil
			}
			tresp, err := client.Get(submissionPath(id)+"/future-tasks/", nil)
			if err != nil {
				return fmt.Errorf("list future tasks: %w", err)
			}
			var tasks []*model.FutureTask
			if err := decode(tresp, &tasks); err != nil {
				return err
			}
			if len(tasks) > 0 {
				fmt.Fprintln(out, "  Future tasks:")
				for _, t := range tasks {
					fmt.Fprintf(out, "    - %s: %s (%s, due %s, %s)\n", t.ID, t.Task, t.Assignee, t.DueDate, t.Priority)
				}
			}
			return nil
		},
	}
}
