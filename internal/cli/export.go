package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newExportCmd() *cobra.Command {
	var (
		view     viewFlags
		output   string
		archived bool
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Download the filtered table as an XLSX workbook",
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := view.values()
			if err != nil {
				return err
			}
			if archived {
				q.Set("dataset", "archived")
			}

			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("create %s: %w", output, err)
			}
			n, err := client.Download("/api/v1/export.xlsx", q, f)
			if cerr := f.Close(); err == nil {
				err = cerr
			}
			if err != nil {
				os.Remove(output)
				return fmt.Errorf("export: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d bytes)\n", output, n)
			return nil
		},
	}
	view.register(cmd, true)
	cmd.Flags().StringVarP(&output, "output", "o", "optrack-export.xlsx", "Output file")
	cmd.Flags().BoolVar(&archived, "archived", false, "Export the archived dataset")
	return cmd
}
