package roster

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"hradmin/internal/domain/effective"
)

// Timing holds a shift's thresholds as offsets from midnight.
type Timing struct {
	Start     time.Duration
	End       time.Duration
	Late      time.Duration
	EarlyExit time.Duration
}

// ParseClock reads HH:MM or HH:MM:SS into an offset from midnight.
func ParseClock(value string) (time.Duration, error) {
	parts := strings.Split(strings.TrimSpace(value), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, fmt.Errorf("invalid time of day %q", value)
	}
	limits := []int{23, 59, 59}
	units := []time.Duration{time.Hour, time.Minute, time.Second}
	var out time.Duration
	for i, part := range parts {
		// fractional seconds are dropped
		if i == 2 {
			part, _, _ = strings.Cut(part, ".")
		}
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 || n > limits[i] || len(part) != 2 {
			return 0, fmt.Errorf("invalid time of day %q", value)
		}
		out += time.Duration(n) * units[i]
	}
	return out, nil
}

func (s Shift) Timing() (Timing, error) {
	var t Timing
	var err error
	if t.Start, err = ParseClock(s.StartTime); err != nil {
		return Timing{}, err
	}
	if t.End, err = ParseClock(s.EndTime); err != nil {
		return Timing{}, err
	}
	if t.Late, err = ParseClock(s.LateTime); err != nil {
		return Timing{}, err
	}
	if t.EarlyExit, err = ParseClock(s.EarlyExitBefore); err != nil {
		return Timing{}, err
	}
	return t, nil
}

// ClockOf is the wall-clock offset of a timestamp from its own midnight.
func ClockOf(t time.Time) time.Duration {
	return t.Sub(time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location()))
}

var weekdayNames = map[string]time.Weekday{
	"sun": time.Sunday,
	"mon": time.Monday,
	"tue": time.Tuesday,
	"wed": time.Wednesday,
	"thu": time.Thursday,
	"fri": time.Friday,
	"sat": time.Saturday,
}

// ParseWeekday accepts short or full English day names in any case.
func ParseWeekday(name string) (time.Weekday, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if len(name) < 3 {
		return 0, false
	}
	day, ok := weekdayNames[name[:3]]
	if !ok {
		return 0, false
	}
	if len(name) > 3 && !strings.EqualFold(day.String(), name) {
		return 0, false
	}
	return day, true
}

// GroupAssignment is an employee_log row of type shift_group.
type GroupAssignment struct {
	ShiftGroupUUID string    `db:"type_uuid"`
	ShiftGroupName *string   `db:"shift_group_name"`
	EffectiveDate  time.Time `db:"effective_date"`
}

// RosterEntry is a roster row reduced to what schedule resolution needs.
type RosterEntry struct {
	UUID           string    `db:"uuid"`
	ShiftGroupUUID string    `db:"shift_group_uuid"`
	ShiftsUUID     string    `db:"shifts_uuid"`
	EffectiveDate  time.Time `db:"effective_date"`
	OffDays        []string  `db:"off_days"`
}

func assignmentDate(a GroupAssignment) time.Time { return a.EffectiveDate }
func rosterDate(r RosterEntry) time.Time         { return r.EffectiveDate }

// Book indexes every shift group's roster history together with the shift definitions.
type Book struct {
	rosters map[string]*effective.Timeline[RosterEntry]
	shifts  map[string]Shift
	timings map[string]Timing
}

// NewBook expects rosters ordered by effective date then creation time.
func NewBook(rosters []RosterEntry, shifts []Shift) *Book {
	grouped := map[string][]RosterEntry{}
	for _, r := range rosters {
		grouped[r.ShiftGroupUUID] = append(grouped[r.ShiftGroupUUID], r)
	}
	b := &Book{
		rosters: make(map[string]*effective.Timeline[RosterEntry], len(grouped)),
		shifts:  make(map[string]Shift, len(shifts)),
		timings: make(map[string]Timing, len(shifts)),
	}
	for group, rows := range grouped {
		b.rosters[group] = effective.NewTimeline(rows, rosterDate)
	}
	for _, s := range shifts {
		b.shifts[s.UUID] = s
		if t, err := s.Timing(); err == nil {
			b.timings[s.UUID] = t
		}
	}
	return b
}

// Schedule binds one employee's shift group history to the book.
func (b *Book) Schedule(assignments []GroupAssignment) *Schedule {
	return &Schedule{book: b, groups: effective.NewTimeline(assignments, assignmentDate)}
}

type Schedule struct {
	book   *Book
	groups *effective.Timeline[GroupAssignment]
}

// DayShift is the resolved assignment for one date. Zero value means no shift group applies.
type DayShift struct {
	ShiftGroupUUID string
	ShiftGroupName *string
	Roster         *RosterEntry
	Shift          *Shift
	// Timing is nil when the date has no shift or the shift's times cannot be read.
	Timing   *Timing
	IsOffDay bool
}

func (d DayShift) HasGroup() bool { return d.ShiftGroupUUID != "" }

func (s *Schedule) On(day time.Time) DayShift {
	var out DayShift
	if s == nil || s.book == nil {
		return out
	}
	group, ok := s.groups.At(day)
	if !ok {
		return out
	}
	out.ShiftGroupUUID = group.ShiftGroupUUID
	out.ShiftGroupName = group.ShiftGroupName

	entry, ok := s.book.rosters[group.ShiftGroupUUID].At(day)
	if !ok {
		return out
	}
	out.Roster = &entry
	out.IsOffDay = isOffDay(entry.OffDays, day.Weekday())
	if shift, ok := s.book.shifts[entry.ShiftsUUID]; ok {
		out.Shift = &shift
		if t, ok := s.book.timings[entry.ShiftsUUID]; ok {
			out.Timing = &t
		}
	}
	return out
}

func isOffDay(offDays []string, weekday time.Weekday) bool {
	for _, name := range offDays {
		if d, ok := ParseWeekday(name); ok && d == weekday {
			return true
		}
	}
	return false
}
