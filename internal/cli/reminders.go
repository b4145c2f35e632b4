package cli

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/me/optrack/pkg/model"
)

func newRemindersCmd() *cobra.Command {
	var active bool
	cmd := &cobra.Command{
		Use:   "reminders",
		Short: "List upload reminders",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			var rems []*model.Reminder
			if active {
				resp, err := client.Get("/api/v1/reminders/active", nil)
				if err != nil {
					return fmt.Errorf("active reminders: %w", err)
				}
				var data struct {
					Reminders []*model.Reminder `json:"reminders"`
					CheckedAt time.Time         `json:"checked_at"`
				}
				if err := decode(resp, &data); err != nil {
					return err
				}
				rems = data.Reminders
				if !data.CheckedAt.IsZero() {
					fmt.Fprintf(out, "Checked at %s\n", data.CheckedAt.Format(time.RFC3339))
				}
			} else {
				resp, err := client.Get("/api/v1/reminders/", nil)
				if err != nil {
					return fmt.Errorf("list reminders: %w", err)
				}
				if err := decode(resp, &rems); err != nil {
					return err
				}
			}

			if len(rems) == 0 {
				fmt.Fprintln(out, "No reminders.")
				return nil
			}
			for _, r := range rems {
				fmt.Fprintf(out, "%-4s  %-10s  %-16s  %s\n", r.ID, r.DueDate, r.Recipient, r.Message)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&active, "active", false, "Only reminders currently coming due")
	return cmd
}

func newActivityCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "activity",
		Short: "Show the recent activity feed",
		RunE: func(cmd *cobra.Command, args []string) error {
			q := url.Values{}
			if limit > 0 {
				q.Set("limit", strconv.Itoa(limit))
			}
			resp, err := client.Get("/api/v1/activity", q)
			if err != nil {
				return fmt.Errorf("list activity: %w", err)
			}
			var items []*model.ActivityItem
			if err := decode(resp, &items); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(items) == 0 {
				fmt.Fprintln(out, "No activity yet.")
				return nil
			}
			for _, it := range items {
				fmt.Fprintf(out, "%s  %-10s  %s: %s\n", it.CreatedAt.Format("2006-01-02 15:04"), it.Type, it.Title, it.Description)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum items (server default when 0)")
	return cmd
}
