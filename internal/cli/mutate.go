package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/me/optrack/pkg/model"
)

func newSetStatusCmd() *cobra.Command {
	var reason, author string
	cmd := &cobra.Command{
		Use:   "set-status <submission_id> <status>",
		Short: "Change a submission's status, recording the reason as a comment",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := client.Put(submissionPath(args[0])+"/status", map[string]any{
				"status": args[1],
				"reason": reason,
				"author": author,
			})
			if err != nil {
				return fmt.Errorf("set status: %w", err)
			}
			var sub model.Submission
			if err := decode(resp, &sub); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s is now %s\n", sub.ID, sub.Status.Label())
			return nil
		},
	}
	cmd.Flags().StringVar(&reason, "reason", "", "Reason for the change (required)")
	cmd.Flags().StringVar(&author, "author", "", "Who made the change")
	cmd.MarkFlagRequired("reason")
	return cmd
}

func newCommentCmd() *cobra.Command {
	var commentType, author string
	cmd := &cobra.Command{
		Use:   "comment <submission_id> <text...>",
		Short: "Add a comment to a submission",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := client.Post(submissionPath(args[0])+"/comments", map[string]any{
				"text":   strings.Join(args[1:], " "),
				"type":   commentType,
				"author": author,
			})
			if err != nil {
				return fmt.Errorf("add comment: %w", err)
			}
			var sub model.Submission
			if err := decode(resp, &sub); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Comment added to %s (%d total)\n", sub.ID, len(sub.Comments))
			return nil
		},
	}
	cmd.Flags().StringVar(&commentType, "type", string(model.CommentGeneral), "Comment type (general, feedback, correction, approval, follow-up)")
	cmd.Flags().StringVar(&author, "author", "", "Comment author")
	return cmd
}
