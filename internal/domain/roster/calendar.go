package roster

import (
	"time"

	"hradmin/internal/domain/effective"
)

// LeaveSpan is an approved leave application reduced to its dates.
type LeaveSpan struct {
	UUID         string    `json:"uuid" db:"uuid"`
	EmployeeUUID string    `json:"-" db:"employee_uuid"`
	CategoryName *string   `json:"leave_category_name" db:"leave_category_name"`
	Type         string    `json:"type" db:"type"`
	FromDate     time.Time `json:"-" db:"from_date"`
	ToDate       time.Time `json:"-" db:"to_date"`
}

func (l LeaveSpan) Covers(day time.Time) bool {
	day = effective.Day(day)
	return !day.Before(effective.Day(l.FromDate)) && !day.After(effective.Day(l.ToDate))
}

type CalendarLeave struct {
	UUID              string  `json:"uuid"`
	LeaveCategoryName *string `json:"leave_category_name"`
	Type              string  `json:"type"`
	FromDate          string  `json:"from_date"`
	ToDate            string  `json:"to_date"`
}

// CalendarDay is the resolved schedule for one date. Shift fields are null when no shift group
// or roster applies on that date.
type CalendarDay struct {
	Date            string          `json:"date"`
	Weekday         string          `json:"weekday"`
	ShiftGroupUUID  *string         `json:"shift_group_uuid"`
	ShiftGroupName  *string         `json:"shift_group_name"`
	RosterUUID      *string         `json:"roster_uuid"`
	ShiftsUUID      *string         `json:"shifts_uuid"`
	ShiftName       *string         `json:"shift_name"`
	StartTime       *string         `json:"start_time"`
	EndTime         *string         `json:"end_time"`
	LateTime        *string         `json:"late_time"`
	EarlyExitBefore *string         `json:"early_exit_before"`
	Color           *string         `json:"color"`
	OffDays         []string        `json:"off_days"`
	IsOffDay        bool            `json:"is_off_day"`
	IsHoliday       bool            `json:"is_holiday"`
	Leaves          []CalendarLeave `json:"leaves"`
}

type Calendar struct {
	Roster          []CalendarDay    `json:"roster"`
	SpecialHolidays []SpecialHoliday `json:"special_holidays"`
	GeneralHolidays []GeneralHoliday `json:"general_holidays"`
}

// BuildCalendar resolves every date of the window against the schedule, holidays and leaves.
func BuildCalendar(w Window, schedule *Schedule, holidays HolidaySet, leaves []LeaveSpan) []CalendarDay {
	days := make([]CalendarDay, 0, w.Days())
	w.Each(func(day time.Time) {
		resolved := schedule.On(day)
		entry := CalendarDay{
			Date:      formatDate(day),
			Weekday:   day.Weekday().String(),
			OffDays:   []string{},
			IsOffDay:  resolved.IsOffDay,
			IsHoliday: holidays.On(day),
			Leaves:    []CalendarLeave{},
		}
		if resolved.HasGroup() {
			group := resolved.ShiftGroupUUID
			entry.ShiftGroupUUID = &group
			entry.ShiftGroupName = resolved.ShiftGroupName
		}
		if resolved.Roster != nil {
			entry.RosterUUID = &resolved.Roster.UUID
			if resolved.Roster.OffDays != nil {
				entry.OffDays = resolved.Roster.OffDays
			}
		}
		if s := resolved.Shift; s != nil {
			entry.ShiftsUUID = &s.UUID
			entry.ShiftName = &s.Name
			entry.StartTime = &s.StartTime
			entry.EndTime = &s.EndTime
			entry.LateTime = &s.LateTime
			entry.EarlyExitBefore = &s.EarlyExitBefore
			entry.Color = s.Color
		}
		for _, l := range leaves {
			if l.Covers(day) {
				entry.Leaves = append(entry.Leaves, CalendarLeave{
					UUID:              l.UUID,
					LeaveCategoryName: l.CategoryName,
					Type:              l.Type,
					FromDate:          formatDate(l.FromDate),
					ToDate:            formatDate(l.ToDate),
				})
			}
		}
		days = append(days, entry)
	})
	return days
}
