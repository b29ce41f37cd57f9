// Package envelope normalizes the response shapes returned by the legacy
// HRMS API. The upstream endpoints disagree on how they wrap collections:
// some return a bare array, some `{success, data}`, some name the collection
// after the entity (`{payslips: [...]}`). Unwrap reduces all of them to one
// canonical result.
package envelope

import (
	"fmt"
	"strconv"
	"strings"
)

// Result is the canonical unwrapped form of an upstream collection response.
type Result struct {
	OK      bool
	Items   []map[string]any
	Message string
}

// defaultKeys are the alternate collection keys observed across the legacy
// services, checked in this order when no `data` array is present.
var defaultKeys = []string{"jobs", "payslips", "payrolls", "types", "balances", "payload"}

// Unwrap matches a decoded JSON response against the known envelope shapes.
// Precedence, first match wins:
//
//  1. bare array
//  2. success == true and data is an array
//  3. success absent and data is an array
//  4. success true or absent, and a known alternate collection key holds an
//     array (defaultKeys plus any extraKeys the caller supplies)
//  5. anything else fails, carrying the response message when present
//
// An explicit success == false always fails, even when the response still
// carries a data array: some endpoints return stale data alongside a
// failure flag and that data must not be surfaced as a valid list.
func Unwrap(response any, extraKeys ...string) Result {
	if items, ok := asItems(response); ok {
		return Result{OK: true, Items: items}
	}

	obj, ok := response.(map[string]any)
	if !ok {
		return Result{Message: "unrecognized response shape"}
	}

	if flag, present := obj["success"].(bool); present && !flag {
		return Result{Message: messageOf(obj)}
	}

	if items, ok := asItems(obj["data"]); ok {
		return Result{OK: true, Items: items}
	}

	for _, key := range defaultKeys {
		if items, ok := asItems(obj[key]); ok {
			return Result{OK: true, Items: items}
		}
	}
	for _, key := range extraKeys {
		if items, ok := asItems(obj[key]); ok {
			return Result{OK: true, Items: items}
		}
	}

	return Result{Message: messageOf(obj)}
}

func asItems(value any) ([]map[string]any, bool) {
	raw, ok := value.([]any)
	if !ok {
		return nil, false
	}
	items := make([]map[string]any, 0, len(raw))
	for _, element := range raw {
		if obj, ok := element.(map[string]any); ok {
			items = append(items, obj)
			continue
		}
		// Non-object elements keep their slot so adapters still see the
		// original index; they normalize to an all-defaults record.
		items = append(items, nil)
	}
	return items, true
}

func messageOf(obj map[string]any) string {
	if msg, ok := obj["message"].(string); ok && msg != "" {
		return msg
	}
	return "unrecognized response shape"
}

// Str returns the first key whose value is a non-empty string, else fallback.
// This is the `a.title || a.job_title || a.name` coalescing the legacy pages
// performed inline; adapters declare their chains with it.
func Str(obj map[string]any, fallback string, keys ...string) string {
	for _, key := range keys {
		if value, ok := obj[key].(string); ok && value != "" {
			return value
		}
	}
	return fallback
}

// Num returns the first key holding a numeric value (JSON number or numeric
// string), else fallback.
func Num(obj map[string]any, fallback float64, keys ...string) float64 {
	for _, key := range keys {
		if value, ok := numeric(obj[key]); ok {
			return value
		}
	}
	return fallback
}

// Int is Num truncated to an int.
func Int(obj map[string]any, fallback int, keys ...string) int {
	return int(Num(obj, float64(fallback), keys...))
}

// Bool returns the first key holding a boolean, else fallback. Upstream
// sometimes encodes flags as 0/1 or "true"; those are accepted too.
func Bool(obj map[string]any, fallback bool, keys ...string) bool {
	for _, key := range keys {
		switch value := obj[key].(type) {
		case bool:
			return value
		case float64:
			return value != 0
		case string:
			if value == "true" || value == "1" {
				return true
			}
			if value == "false" || value == "0" {
				return false
			}
		}
	}
	return fallback
}

// ID resolves an identifier through the chain, falling back to
// "<name>-<index>" when no identifier field is present, so records from
// sloppy payloads are kept rather than dropped. Numeric ids are rendered
// without a decimal point.
func ID(obj map[string]any, name string, index int, keys ...string) string {
	for _, key := range keys {
		switch value := obj[key].(type) {
		case string:
			if value != "" {
				return value
			}
		case float64:
			return formatNumber(value)
		}
	}
	return fmt.Sprintf("%s-%d", name, index)
}

func numeric(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case string:
		if parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			return parsed, true
		}
	}
	return 0, false
}

func formatNumber(value float64) string {
	if value == float64(int64(value)) {
		return strconv.FormatInt(int64(value), 10)
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}
