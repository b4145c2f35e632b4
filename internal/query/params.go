package query

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/me/optrack/pkg/model"
)

// Query parameter names shared by the API and the HTML pages.
const (
	ParamSearch     = "q"
	ParamStatus     = "status"
	ParamReportType = "report_type"
	ParamDateRange  = "date_range"
	ParamSort       = "sort"
	ParamDirection  = "dir"
	columnPrefix    = "col."
)

// ParseCriteria reads the dashboard-level filters.
func ParseCriteria(v url.Values) (Criteria, []model.FieldError) {
	var c Criteria
	var errs []model.FieldError

	c.Search = v.Get(ParamSearch)
	st, err := ParseStatusFilter(v.Get(ParamStatus))
	if err != nil {
		errs = append(errs, model.FieldError{Field: ParamStatus, Message: err.Error()})
	}
	c.Status = st
	c.ReportType = v.Get(ParamReportType)
	dr, err := ParseDateRange(v.Get(ParamDateRange))
	if err != nil {
		errs = append(errs, model.FieldError{Field: ParamDateRange, Message: err.Error()})
	}
	c.DateRange = dr
	return c, errs
}

// ParseView reads a full table view. Invalid parameters are reported as a
// VALIDATION_ERROR listing every bad field.
func ParseView(v url.Values) (View, error) {
	c, errs := ParseCriteria(v)
	view := View{Criteria: c, Columns: ColumnFilters{}, Groups: ParseGroupState(v)}

	for key, vals := range v {
		name, ok := strings.CutPrefix(key, columnPrefix)
		if !ok || len(vals) == 0 {
			continue
		}
		if err := view.Columns.Set(Column(name), vals[0]); err != nil {
			errs = append(errs, model.FieldError{Field: key, Message: err.Error()})
		}
	}

	if key := v.Get(ParamSort); key != "" {
		col, err := ParseColumn(key)
		if err != nil {
			errs = append(errs, model.FieldError{Field: ParamSort, Message: err.Error()})
		}
		view.Sort.Key = col
		view.Sort.Direction = Asc
		switch dir := Direction(strings.ToLower(v.Get(ParamDirection))); dir {
		case "", Asc:
		case Desc:
			view.Sort.Direction = Desc
		default:
			errs = append(errs, model.FieldError{Field: ParamDirection, Message: fmt.Sprintf("unknown direction %q", dir)})
		}
	}

	if len(errs) > 0 {
		return View{}, model.NewValidationError("invalid query parameters", errs...)
	}
	return view, nil
}

// Values encodes the view back into query parameters. ParseView(v.Values())
// reproduces v, except that the reference clock is not carried.
func (v View) Values() url.Values {
	out := url.Values{}
	if v.Criteria.Search != "" {
		out.Set(ParamSearch, v.Criteria.Search)
	}
	if v.Criteria.Status != "" {
		out.Set(ParamStatus, string(v.Criteria.Status))
	}
	if v.Criteria.ReportType != "" && v.Criteria.ReportType != FilterAll {
		out.Set(ParamReportType, v.Criteria.ReportType)
	}
	if v.Criteria.DateRange.Active() {
		out.Set(ParamDateRange, string(v.Criteria.DateRange))
	}
	for col, val := range v.Columns.Active() {
		out.Set(columnPrefix+string(col), val)
	}
	if v.Sort.Key != "" {
		out.Set(ParamSort, string(v.Sort.Key))
		out.Set(ParamDirection, string(v.Sort.Direction))
	}
	v.Groups.Encode(out)
	return out
}
