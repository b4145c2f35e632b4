// Package export renders dashboard tables as XLSX workbooks.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/me/optrack/internal/query"
	"github.com/me/optrack/pkg/model"
)

// ContentType is the MIME type of the workbook.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

const (
	submissionsSheet = "Submissions"
	summarySheet     = "Summary"
)

type column struct {
	heading string
	value   func(s *model.Submission) any
}

func text(col query.Column) column {
	return column{col.Label(), func(s *model.Submission) any { return col.Value(s) }}
}

var columns = []column{
	{"ID", func(s *model.Submission) any { return s.ID }},
	text(query.ColOperator),
	text(query.ColCategory),
	text(query.ColReportType),
	text(query.ColReportParty),
	text(query.ColFrequency),
	text(query.ColPeriod),
	text(query.ColLeaseName),
	text(query.ColProperties),
	text(query.ColDueDate),
	text(query.ColReceivedDate),
	{query.ColStatus.Label(), func(s *model.Submission) any { return s.Status.Label() }},
	text(query.ColReviewerApprover),
	{query.ColDaysUnderStatus.Label(), func(s *model.Submission) any { return s.DaysUnderStatus }},
	text(query.ColAssetManager),
	text(query.ColInvManager),
	text(query.ColLeaseAdmin),
	text(query.ColInvAssociate),
	text(query.ColComments),
}

// Headings returns the submission sheet header row.
func Headings() []string {
	out := make([]string, len(columns))
	for i, c := range columns {
		out[i] = c.heading
	}
	return out
}

// Write renders rows and their stats as a two-sheet workbook.
func Write(w io.Writer, rows []*model.Submission, stats query.Stats) error {
	f := excelize.NewFile()
	defer f.Close()

	// NewFile starts with "Sheet1".
	if err := f.SetSheetName("Sheet1", submissionsSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	header := make([]any, len(columns))
	for i, c := range columns {
		header[i] = c.heading
	}
	if err := f.SetSheetRow(submissionsSheet, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for r, s := range rows {
		cells := make([]any, len(columns))
		for i, c := range columns {
			cells[i] = c.value(s)
		}
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(submissionsSheet, cell, &cells); err != nil {
			return fmt.Errorf("write row %d: %w", r+2, err)
		}
	}
	if err := f.SetPanes(submissionsSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("freeze header: %w", err)
	}

	if _, err := f.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("add summary sheet: %w", err)
	}
	summary := [][]any{
		{"Metric", "Count"},
		{"Total", stats.Total},
		{"Approved", stats.Approved},
		{"Pending", stats.Pending},
		{"In Review", stats.InReview},
		{"Submitted", stats.Submitted},
		{"Non-Compliant", stats.NonCompliant},
		{"Overdue", stats.Overdue},
		{"Operators", stats.Operators},
	}
	for i, row := range summary {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(summarySheet, cell, &row); err != nil {
			return fmt.Errorf("write summary: %w", err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
