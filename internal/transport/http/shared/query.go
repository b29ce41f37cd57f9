package shared

import (
	"net/http"
	"strconv"

	"github.com/Devender0077/HRMS-Go-V5-sub000/internal/listquery"
)

// PageLimits carries the configured pagination bounds into handlers.
type PageLimits struct {
	Default int
	Max     int
}

// ParseListQuery reads list parameters from the request query string.
// Unknown or malformed values fall back to defaults rather than erroring,
// matching how the pages treated their URL state.
func ParseListQuery(r *http.Request, defaultPageSize, maxPageSize int) listquery.Query {
	values := r.URL.Query()

	page := 0
	if raw := values.Get("page"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v >= 0 {
			page = v
		}
	}

	pageSize := defaultPageSize
	if raw := values.Get("pageSize"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			pageSize = v
		}
	}
	if maxPageSize > 0 && pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	dir := listquery.Asc
	if values.Get("dir") == string(listquery.Desc) {
		dir = listquery.Desc
	}

	return listquery.Query{
		Term:     values.Get("term"),
		Status:   values.Get("status"),
		Type:     values.Get("type"),
		SortKey:  values.Get("sort"),
		SortDir:  dir,
		Page:     page,
		PageSize: pageSize,
	}
}
