package server

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/me/optrack/internal/query"
	"github.com/me/optrack/pkg/model"
)

const (
	paramDataset = "dataset"
	paramLimit   = "limit"
	paramOffset  = "offset"
)

// datasetOf reads ?dataset=, defaulting to live.
func datasetOf(v url.Values) (model.Dataset, error) {
	switch d := model.Dataset(v.Get(paramDataset)); d {
	case "", model.DatasetLive:
		return model.DatasetLive, nil
	case model.DatasetArchived:
		return d, nil
	default:
		return "", model.NewValidationError("invalid query parameters",
			model.FieldError{Field: paramDataset, Message: fmt.Sprintf("unknown dataset %q", d)})
	}
}

// listOptionsOf reads ?limit= and ?offset=.
func listOptionsOf(v url.Values) (model.ListOptions, error) {
	opts := model.DefaultListOptions()
	var errs []model.FieldError
	for _, p := range []struct {
		name string
		dst  *int
	}{{paramLimit, &opts.Limit}, {paramOffset, &opts.Offset}} {
		raw := v.Get(p.name)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			errs = append(errs, model.FieldError{Field: p.name, Message: fmt.Sprintf("%q is not an integer", raw)})
			continue
		}
		*p.dst = n
	}
	if len(errs) > 0 {
		return opts, model.NewValidationError("invalid query parameters", errs...)
	}
	opts.Clamp()
	return opts, nil
}

// viewOf parses the table view from the request query.
func viewOf(r *http.Request) (query.View, error) {
	return query.ParseView(r.URL.Query())
}
