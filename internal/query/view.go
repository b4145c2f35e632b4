package query

import "github.com/me/optrack/pkg/model"

// View is everything that shapes the dashboard table for one request.
type View struct {
	Criteria Criteria
	Columns  ColumnFilters
	Sort     Sort
	Groups   GroupState
}

// Table is the rendered table: the flat ordered rows and their operator groups.
type Table struct {
	Rows   []*model.Submission `json:"rows"`
	Groups []Group             `json:"groups"`
	Sort   Sort                `json:"sort"`
}

// Build runs subs through filter, column filters, sort and grouping.
func Build(subs []*model.Submission, v View) Table {
	rows := Filter(subs, v.Criteria)
	rows = v.Columns.Apply(rows)
	rows = v.Sort.Apply(rows)
	return Table{
		Rows:   rows,
		Groups: GroupByOperator(rows, v.Groups),
		Sort:   v.Sort,
	}
}
