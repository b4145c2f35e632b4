package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/me/optrack/internal/query"
)

func newStatsCmd() *cobra.Command {
	var (
		view     viewFlags
		archived bool
	)
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show the dashboard stat counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := view.values()
			if err != nil {
				return err
			}
			path := "/api/v1/stats"
			if archived {
				path = "/api/v1/archived/stats"
			}

			resp, err := client.Get(path, q)
			if err != nil {
				return fmt.Errorf("get stats: %w", err)
			}
			var st query.Stats
			if err := decode(resp, &st); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Total:         %d\n", st.Total)
			fmt.Fprintf(out, "Approved:      %d\n", st.Approved)
			fmt.Fprintf(out, "Pending:       %d\n", st.Pending)
			fmt.Fprintf(out, "In Review:     %d\n", st.InReview)
			fmt.Fprintf(out, "Submitted:     %d\n", st.Submitted)
			fmt.Fprintf(out, "Non-Compliant: %d\n", st.NonCompliant)
			fmt.Fprintf(out, "Overdue:       %d\n", st.Overdue)
			fmt.Fprintf(out, "Operators:     %d\n", st.Operators)
			return nil
		},
	}
	view.register(cmd, false)
	cmd.Flags().BoolVar(&archived, "archived", false, "Count the archived dataset")
	return cmd
}
