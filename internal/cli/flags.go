package cli

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

// viewFlags are the dashboard filters shared by list, stats and export.
type viewFlags struct {
	search     string
	status     string
	reportType string
	dateRange  string
	sort       string
	dir        string
	columns    []string
}

func (f *viewFlags) register(cmd *cobra.Command, withSort bool) {
	cmd.Flags().StringVarP(&f.search, "query", "q", "", "Free-text search across all fields")
	cmd.Flags().StringVar(&f.status, "status", "", "Filter by status (approved, pending, in-review, submitted, non-compliant, overdue)")
	cmd.Flags().StringVar(&f.reportType, "report-type", "", "Filter by report type (name or slug)")
	cmd.Flags().StringVar(&f.dateRange, "date-range", "", "Due-date window (today, week, month, quarter, year)")
	cmd.Flags().StringArrayVar(&f.columns, "col", nil, "Column filter as column=value (repeatable)")
	if withSort {
		cmd.Flags().StringVar(&f.sort, "sort", "", "Sort column")
		cmd.Flags().StringVar(&f.dir, "dir", "asc", "Sort direction (asc, desc)")
	}
}

// values encodes the flags as API query parameters.
func (f *viewFlags) values() (url.Values, error) {
	q := url.Values{}
	set := func(key, val string) {
		if val != "" {
			q.Set(key, val)
		}
	}
	set("q", f.search)
	set("status", f.status)
	set("report_type", f.reportType)
	set("date_range", f.dateRange)
	if f.sort != "" {
		q.Set("sort", f.sort)
		q.Set("dir", f.dir)
	}
	for _, c := range f.columns {
		col, val, ok := strings.Cut(c, "=")
		if !ok || col == "" {
			return nil, fmt.Errorf("invalid --col %q: want column=value", c)
		}
		q.Set("col."+col, val)
	}
	return q, nil
}

// pageFlags are the pagination flags of list commands.
type pageFlags struct {
	limit  int
	offset int
}

func (f *pageFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.limit, "limit", 0, "Maximum rows to return (server default when 0)")
	cmd.Flags().IntVar(&f.offset, "offset", 0, "Rows to skip")
}

func (f *pageFlags) apply(q url.Values) {
	if f.limit > 0 {
		q.Set("limit", strconv.Itoa(f.limit))
	}
	if f.offset > 0 {
		q.Set("offset", strconv.Itoa(f.offset))
	}
}
