// Package listquery derives the visible slice of a canonical collection from
// query parameters: free-text term, categorical filters, stable sort and
// pagination. It is pure and does no I/O; every handler recomputes its slice
// from the cached snapshot on each request.
package listquery

import (
	"sort"
	"strings"
	"time"
)

// All is the sentinel filter value that bypasses a categorical filter.
const All = "all"

type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Query carries the list parameters the legacy pages kept in component
// state. Page is 0-based.
type Query struct {
	Term     string
	Status   string
	Type     string
	SortKey  string
	SortDir  Direction
	Page     int
	PageSize int
}

// Schema declares how the engine reads an entity: which fields the free-text
// term searches, which fields the categorical filters match, and the
// comparators available per sort key.
type Schema[T any] struct {
	Searchable []func(T) string
	Status     func(T) string
	Type       func(T) string
	SortKeys   map[string]func(a, b T) int
}

// Result holds the visible slice plus the post-filter, pre-page total, so
// pagination controls reflect the filtered set rather than the raw one.
type Result[T any] struct {
	Items []T
	Total int
}

// Run filters, sorts and paginates items. A nil collection and a page past
// the end both degrade to an empty slice, never an error.
func Run[T any](items []T, q Query, schema Schema[T]) Result[T] {
	filtered := make([]T, 0, len(items))
	term := strings.ToLower(strings.TrimSpace(q.Term))
	for _, item := range items {
		if !matchesTerm(item, term, schema.Searchable) {
			continue
		}
		if !matchesFilter(item, q.Status, schema.Status) {
			continue
		}
		if !matchesFilter(item, q.Type, schema.Type) {
			continue
		}
		filtered = append(filtered, item)
	}

	if compare, ok := schema.SortKeys[q.SortKey]; ok && q.SortKey != "" {
		// SliceStable keeps equal-key items in their original relative
		// order across repeated direction toggles.
		sort.SliceStable(filtered, func(i, j int) bool {
			if q.SortDir == Desc {
				return compare(filtered[j], filtered[i]) < 0
			}
			return compare(filtered[i], filtered[j]) < 0
		})
	}

	total := len(filtered)
	pageSize := q.PageSize
	if pageSize <= 0 {
		return Result[T]{Items: filtered, Total: total}
	}
	start := q.Page * pageSize
	if q.Page < 0 || start >= total {
		return Result[T]{Items: []T{}, Total: total}
	}
	end := start + pageSize
	if end > total {
		end = total
	}
	return Result[T]{Items: filtered[start:end], Total: total}
}

func matchesTerm[T any](item T, term string, searchable []func(T) string) bool {
	if term == "" {
		return true
	}
	for _, field := range searchable {
		if strings.Contains(strings.ToLower(field(item)), term) {
			return true
		}
	}
	return false
}

func matchesFilter[T any](item T, value string, field func(T) string) bool {
	if value == "" || value == All || field == nil {
		return true
	}
	return field(item) == value
}

// ByString builds a case-normalized lexicographic comparator.
func ByString[T any](get func(T) string) func(a, b T) int {
	return func(a, b T) int {
		return strings.Compare(strings.ToLower(get(a)), strings.ToLower(get(b)))
	}
}

// ByNumber builds a numeric comparator.
func ByNumber[T any](get func(T) float64) func(a, b T) int {
	return func(a, b T) int {
		switch va, vb := get(a), get(b); {
		case va < vb:
			return -1
		case va > vb:
			return 1
		default:
			return 0
		}
	}
}

// ByDate compares date strings by parsed value, falling back to string
// order when a side does not parse. Accepts RFC3339 or YYYY-MM-DD.
func ByDate[T any](get func(T) string) func(a, b T) int {
	return func(a, b T) int {
		ta, oka := parseDate(get(a))
		tb, okb := parseDate(get(b))
		if oka && okb {
			switch {
			case ta.Before(tb):
				return -1
			case ta.After(tb):
				return 1
			default:
				return 0
			}
		}
		return strings.Compare(get(a), get(b))
	}
}

func parseDate(value string) (time.Time, bool) {
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}
