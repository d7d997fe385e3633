// Package effective resolves effective-dated rows: a row is valid from its effective date
// until a later-dated row of the same kind supersedes it.
package effective

import (
	"sort"
	"time"
)

// Latest returns the row with the greatest effective date that is on or before the given day.
// Rows sharing an effective date resolve to the one appearing last in rows, so callers pass rows
// in insertion order (created_at ascending) to make the later record win.
func Latest[T any](rows []T, on time.Time, dateOf func(T) time.Time) (T, bool) {
	var best T
	found := false
	var bestDate time.Time
	day := Day(on)
	for _, row := range rows {
		d := Day(dateOf(row))
		if d.After(day) {
			continue
		}
		if !found || !d.Before(bestDate) {
			best = row
			bestDate = d
			found = true
		}
	}
	return best, found
}

// Timeline answers repeated lookups against one set of rows. Rows are sorted once by effective
// date with ties kept in their original order.
type Timeline[T any] struct {
	rows   []T
	dates  []time.Time
	dateOf func(T) time.Time
}

func NewTimeline[T any](rows []T, dateOf func(T) time.Time) *Timeline[T] {
	sorted := make([]T, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		return Day(dateOf(sorted[i])).Before(Day(dateOf(sorted[j])))
	})
	dates := make([]time.Time, len(sorted))
	for i, row := range sorted {
		dates[i] = Day(dateOf(row))
	}
	return &Timeline[T]{rows: sorted, dates: dates, dateOf: dateOf}
}

// At returns the row in effect on the given day.
func (t *Timeline[T]) At(on time.Time) (T, bool) {
	var zero T
	if t == nil {
		return zero, false
	}
	day := Day(on)
	// first index whose date is after day; the row before it is the latest on or before day
	idx := sort.Search(len(t.dates), func(i int) bool { return t.dates[i].After(day) })
	if idx == 0 {
		return zero, false
	}
	return t.rows[idx-1], true
}

func (t *Timeline[T]) Len() int {
	if t == nil {
		return 0
	}
	return len(t.rows)
}

// Day truncates a timestamp to its calendar date, keeping the year/month/day as written.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
