package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/me/optrack/pkg/model"
)

func newListCmd() *cobra.Command {
	var (
		view viewFlags
		page pageFlags
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List live submissions",
		RunE: func(cmd *cobra.Command, args []string) error {
			return listSubmissions(cmd, "/api/v1/submissions/", &view, &page)
		},
	}
	view.register(cmd, true)
	page.register(cmd)
	return cmd
}

func newArchivedCmd() *cobra.Command {
	var (
		view viewFlags
		page pageFlags
	)
	cmd := &cobra.Command{
		Use:   "archived",
		Short: "List archived submissions",
		RunE: func(cmd *cobra.Command, args []string) error {
			return listSubmissions(cmd, "/api/v1/archived/", &view, &page)
		},
	}
	view.register(cmd, true)
	page.register(cmd)
	return cmd
}

func listSubmissions(cmd *cobra.Command, path string, view *viewFlags, page *pageFlags) error {
	q, err := view.values()
	if err != nil {
		return err
	}
	page.apply(q)

	resp, err := client.Get(path, q)
	if err != nil {
		return fmt.Errorf("list submissions: %w", err)
	}

	var subs []*model.Submission
	if err := decode(resp, &subs); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(subs) == 0 {
		fmt.Fprintln(out, "No submissions found.")
		return nil
	}

	printSubmissions(out, subs)

	if resp.Pagination != nil && resp.Pagination.HasMore {
		fmt.Fprintf(out, "\n(%d of %d shown)\n", len(subs), resp.Pagination.Total)
	}
	return nil
}

func printSubmissions(out io.Writer, subs []*model.Submission) {
	fmt.Fprintf(out, "%-8s  %-28s  %-34s  %-10s  %-10s  %s\n", "ID", "OPERATOR", "REPORT TYPE", "DUE", "STATUS", "DAYS")
	fmt.Fprintf(out, "%-8s  %-28s  %-34s  %-10s  %-10s  %s\n", "--", "--------", "-----------", "---", "------", "----")
	for _, s := range subs {
		fmt.Fprintf(out, "%-8s  %-28s  %-34s  %-10s  %-10s  %d\n",
			s.ID, truncate(s.Operator, 28), truncate(s.ReportType, 34), s.DueDate, s.Status, s.DaysUnderStatus)
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
