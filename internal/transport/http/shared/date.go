package shared

import (
	"net/http"
	"strconv"
	"strings"
	"time"
)

// ParseDate accepts RFC3339 or YYYY-MM-DD.
func ParseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	if parsed, err := time.Parse(time.RFC3339, value); err == nil {
		return parsed, nil
	}
	return time.Parse(time.DateOnly, value)
}

// YearMonth reads ?year and ?month. month is optional when requireMonth is false and is then
// returned as zero.
func YearMonth(r *http.Request, requireMonth bool) (int, time.Month, error) {
	v := NewValidator()
	query := r.URL.Query()

	year, err := strconv.Atoi(strings.TrimSpace(query.Get("year")))
	if err != nil || year < 1900 || year > 9999 {
		v.Add("year", "must be a four digit year")
	}

	var month int
	raw := strings.TrimSpace(query.Get("month"))
	switch {
	case raw == "" && !requireMonth:
	case raw == "":
		v.Add("month", "is required")
	default:
		month, err = strconv.Atoi(raw)
		if err != nil || month < 1 || month > 12 {
			v.Add("month", "must be between 1 and 12")
		}
	}
	if err := v.Err(); err != nil {
		return 0, 0, err
	}
	return year, time.Month(month), nil
}
