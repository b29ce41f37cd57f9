package leave

import "time"

// days returns the inclusive day count between two date strings, or 0 when
// either side does not parse. Used when the payload carries dates but no
// precomputed day count.
func days(startRaw, endRaw string) int {
	start, okStart := parseDate(startRaw)
	end, okEnd := parseDate(endRaw)
	if !okStart || !okEnd || end.Before(start) {
		return 0
	}
	return int(end.Sub(start).Hours()/24) + 1
}

func parseDate(value string) (time.Time, bool) {
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}
