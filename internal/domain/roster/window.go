package roster

import (
	"time"

	"github.com/jackc/pgx/v5/pgtype"

	"hradmin/internal/domain/effective"
)

// Window is an inclusive range of calendar days.
type Window struct {
	From time.Time
	To   time.Time
}

func MonthWindow(year int, month time.Month) Window {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return Window{From: first, To: first.AddDate(0, 1, -1)}
}

func YearWindow(year int) Window {
	return Window{From: time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC), To: time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)}
}

// ClipStart moves the start forward to start when that date is later.
func (w Window) ClipStart(start pgtype.Date) Window {
	if start.Valid && effective.Day(start.Time).After(w.From) {
		w.From = effective.Day(start.Time)
	}
	return w
}

// ClipEnd moves the end back to end when that date is earlier.
func (w Window) ClipEnd(end time.Time) Window {
	end = effective.Day(end)
	if end.Before(w.To) {
		w.To = end
	}
	return w
}

func (w Window) Empty() bool { return w.From.After(w.To) }

func (w Window) Days() int {
	if w.Empty() {
		return 0
	}
	return daysBetween(w.From, w.To) + 1
}

func (w Window) Each(fn func(day time.Time)) {
	for day := w.From; !day.After(w.To); day = day.AddDate(0, 0, 1) {
		fn(day)
	}
}
