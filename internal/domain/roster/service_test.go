package roster

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hradmin/internal/platform/apperr"
)

type fakeFacts struct {
	employees   map[string]EmployeeRef
	assignments map[string][]GroupAssignment
	rosters     []RosterEntry
	shifts      []Shift
	general     []GeneralHoliday
	special     []SpecialHoliday
	leaves      map[string][]LeaveSpan
	holidayHits int
}

func (f *fakeFacts) Employee(_ context.Context, uuid string) (EmployeeRef, error) {
	emp, ok := f.employees[uuid]
	if !ok {
		return EmployeeRef{}, apperr.NotFound("employee")
	}
	return emp, nil
}

func (f *fakeFacts) GroupAssignments(context.Context, []string, time.Time) (map[string][]GroupAssignment, error) {
	return f.assignments, nil
}

func (f *fakeFacts) RosterEntries(context.Context, time.Time) ([]RosterEntry, error) {
	return f.rosters, nil
}

func (f *fakeFacts) Shifts(context.Context) ([]Shift, error) { return f.shifts, nil }

func (f *fakeFacts) GeneralHolidays(context.Context, Window) ([]GeneralHoliday, error) {
	f.holidayHits++
	return f.general, nil
}

func (f *fakeFacts) SpecialHolidays(context.Context, Window) ([]SpecialHoliday, error) {
	return f.special, nil
}

func (f *fakeFacts) ApprovedLeaves(context.Context, []string, Window) (map[string][]LeaveSpan, error) {
	return f.leaves, nil
}

func TestServiceCalendar(t *testing.T) {
	facts := &fakeFacts{
		employees: map[string]EmployeeRef{"emp000000000001": {UUID: "emp000000000001", Name: "Rahim", StartDate: DateOf(day(2024, 6, 10))}},
		assignments: map[string][]GroupAssignment{
			"emp000000000001": {{ShiftGroupUUID: "grp", EffectiveDate: day(2024, 1, 1)}},
		},
		rosters: []RosterEntry{{UUID: "ros", ShiftGroupUUID: "grp", ShiftsUUID: dayShift.UUID, EffectiveDate: day(2024, 1, 1), OffDays: []string{"fri", "sat"}}},
		shifts:  []Shift{dayShift},
		general: []GeneralHoliday{{UUID: "gh", Name: "Holiday", Date: DateOf(day(2024, 6, 12))}},
		special: []SpecialHoliday{},
	}
	svc := NewService(facts, nil)

	cal, err := svc.Calendar(context.Background(), "emp000000000001", 2024, time.June)
	require.NoError(t, err)
	require.Len(t, cal.Roster, 21)
	assert.Equal(t, "2024-06-10", cal.Roster[0].Date)
	assert.Len(t, cal.GeneralHolidays, 1)
	assert.NotNil(t, cal.SpecialHolidays)
	assert.True(t, cal.Roster[2].IsHoliday)
	assert.Equal(t, "Day", *cal.Roster[0].ShiftName)
}

func TestServiceCalendarUnknownEmployee(t *testing.T) {
	svc := NewService(&fakeFacts{}, nil)
	_, err := svc.Calendar(context.Background(), "missing", 2024, time.June)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestServiceHolidaysUsesLoaderWithoutRedis(t *testing.T) {
	facts := &fakeFacts{
		general: []GeneralHoliday{{UUID: "gh", Name: "Holiday", Date: DateOf(day(2024, 6, 12))}},
		special: []SpecialHoliday{{UUID: "sh", Name: "Break", FromDate: DateOf(day(2024, 6, 1)), ToDate: DateOf(day(2024, 6, 3))}},
	}
	svc := NewService(facts, nil)
	got, err := svc.Holidays(context.Background(), june)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "sh", got[0].UUID)
	assert.Equal(t, 1, facts.holidayHits)
	svc.InvalidateHolidays(context.Background())
}
