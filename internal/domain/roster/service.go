// Package roster resolves which shift an employee works on a date. Shift groups, shifts,
// effective-dated rosters and holidays are stored here and shared with payroll.
package roster

import (
	"context"
	"fmt"
	"time"
)

type Service struct {
	Facts FactStore
	Cache *HolidayCache
}

func NewService(facts FactStore, cache *HolidayCache) *Service {
	if cache == nil {
		cache = NewHolidayCache(nil, 0)
	}
	return &Service{Facts: facts, Cache: cache}
}

// Calendar lists the month day by day for one employee, starting at the joining date when
// that falls inside the month.
func (s *Service) Calendar(ctx context.Context, employeeUUID string, year int, month time.Month) (Calendar, error) {
	emp, err := s.Facts.Employee(ctx, employeeUUID)
	if err != nil {
		return Calendar{}, err
	}
	full := MonthWindow(year, month)
	w := full.ClipStart(emp.StartDate)

	ids := []string{emp.UUID}
	assignments, err := s.Facts.GroupAssignments(ctx, ids, full.To)
	if err != nil {
		return Calendar{}, fmt.Errorf("load shift group history: %w", err)
	}
	entries, err := s.Facts.RosterEntries(ctx, full.To)
	if err != nil {
		return Calendar{}, fmt.Errorf("load rosters: %w", err)
	}
	shiftList, err := s.Facts.Shifts(ctx)
	if err != nil {
		return Calendar{}, fmt.Errorf("load shifts: %w", err)
	}
	general, err := s.Facts.GeneralHolidays(ctx, full)
	if err != nil {
		return Calendar{}, fmt.Errorf("load general holidays: %w", err)
	}
	special, err := s.Facts.SpecialHolidays(ctx, full)
	if err != nil {
		return Calendar{}, fmt.Errorf("load special holidays: %w", err)
	}
	leaves, err := s.Facts.ApprovedLeaves(ctx, ids, full)
	if err != nil {
		return Calendar{}, fmt.Errorf("load leaves: %w", err)
	}

	schedule := NewBook(entries, shiftList).Schedule(assignments[emp.UUID])
	return Calendar{
		Roster:          BuildCalendar(w, schedule, NewHolidaySet(general, special), leaves[emp.UUID]),
		SpecialHolidays: special,
		GeneralHolidays: general,
	}, nil
}

// Holidays returns the general and special holidays touching the window as one list.
func (s *Service) Holidays(ctx context.Context, w Window) ([]HolidayEntry, error) {
	return s.Cache.Get(ctx, w, func(ctx context.Context) ([]HolidayEntry, error) {
		general, err := s.Facts.GeneralHolidays(ctx, w)
		if err != nil {
			return nil, err
		}
		special, err := s.Facts.SpecialHolidays(ctx, w)
		if err != nil {
			return nil, err
		}
		return UnionHolidays(general, special), nil
	})
}

func (s *Service) InvalidateHolidays(ctx context.Context) {
	s.Cache.Invalidate(ctx)
}
