package roster

import (
	"sort"
	"time"

	"github.com/jackc/pgx/v5/pgtype"

	"hradmin/internal/domain/effective"
)

const (
	HolidayGeneral = "general"
	HolidaySpecial = "special"
)

// HolidayEntry is one row of the general + special holiday union.
type HolidayEntry struct {
	UUID     string `json:"uuid"`
	Name     string `json:"name"`
	Type     string `json:"type"`
	FromDate string `json:"from_date"`
	ToDate   string `json:"to_date"`
	Days     int    `json:"days"`
}

// UnionHolidays merges both holiday kinds ordered by start date, general before special on
// the same date.
func UnionHolidays(general []GeneralHoliday, special []SpecialHoliday) []HolidayEntry {
	out := make([]HolidayEntry, 0, len(general)+len(special))
	for _, h := range general {
		if !h.Date.Valid {
			continue
		}
		d := formatDate(h.Date.Time)
		out = append(out, HolidayEntry{UUID: h.UUID, Name: h.Name, Type: HolidayGeneral, FromDate: d, ToDate: d, Days: 1})
	}
	for _, h := range special {
		if !h.FromDate.Valid || !h.ToDate.Valid {
			continue
		}
		out = append(out, HolidayEntry{
			UUID:     h.UUID,
			Name:     h.Name,
			Type:     HolidaySpecial,
			FromDate: formatDate(h.FromDate.Time),
			ToDate:   formatDate(h.ToDate.Time),
			Days:     daysBetween(h.FromDate.Time, h.ToDate.Time) + 1,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].FromDate != out[j].FromDate {
			return out[i].FromDate < out[j].FromDate
		}
		return out[i].Type < out[j].Type
	})
	return out
}

// HolidaySet answers whether a date is covered by any holiday.
type HolidaySet struct {
	dates map[time.Time]struct{}
	spans []span
}

type span struct {
	from time.Time
	to   time.Time
}

func NewHolidaySet(general []GeneralHoliday, special []SpecialHoliday) HolidaySet {
	set := HolidaySet{dates: make(map[time.Time]struct{}, len(general))}
	for _, h := range general {
		if h.Date.Valid {
			set.dates[effective.Day(h.Date.Time)] = struct{}{}
		}
	}
	for _, h := range special {
		if h.FromDate.Valid && h.ToDate.Valid {
			set.spans = append(set.spans, span{from: effective.Day(h.FromDate.Time), to: effective.Day(h.ToDate.Time)})
		}
	}
	return set
}

func (h HolidaySet) On(day time.Time) bool {
	day = effective.Day(day)
	if _, ok := h.dates[day]; ok {
		return true
	}
	for _, s := range h.spans {
		if !day.Before(s.from) && !day.After(s.to) {
			return true
		}
	}
	return false
}

func formatDate(t time.Time) string { return t.Format(time.DateOnly) }

func daysBetween(from, to time.Time) int {
	return int(effective.Day(to).Sub(effective.Day(from)).Hours() / 24)
}

// DateOf builds a valid pgtype.Date for a calendar day.
func DateOf(t time.Time) pgtype.Date {
	return pgtype.Date{Time: effective.Day(t), Valid: true}
}
