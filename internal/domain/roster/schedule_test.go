package roster

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ptr[T any](v T) *T { return &v }

var (
	dayShift   = Shift{UUID: "shf000000000001", Name: "Day", StartTime: "09:00:00", EndTime: "18:00:00", LateTime: "09:15:00", EarlyExitBefore: "17:30:00"}
	nightShift = Shift{UUID: "shf000000000002", Name: "Night", StartTime: "21:00:00", EndTime: "06:00:00", LateTime: "21:10:00", EarlyExitBefore: "05:30:00"}
)

func TestParseClock(t *testing.T) {
	got, err := ParseClock("09:15:30")
	require.NoError(t, err)
	assert.Equal(t, 9*time.Hour+15*time.Minute+30*time.Second, got)

	got, err = ParseClock("17:45")
	require.NoError(t, err)
	assert.Equal(t, 17*time.Hour+45*time.Minute, got)

	got, err = ParseClock("08:00:00.250")
	require.NoError(t, err)
	assert.Equal(t, 8*time.Hour, got)

	for _, bad := range []string{"", "9", "24:00", "12:60", "9:00", "ab:cd", "01:02:03:04"} {
		_, err := ParseClock(bad)
		assert.Error(t, err, bad)
	}
}

func TestParseWeekday(t *testing.T) {
	for name, want := range map[string]time.Weekday{"fri": time.Friday, "Friday": time.Friday, "SAT": time.Saturday, "sunday": time.Sunday} {
		got, ok := ParseWeekday(name)
		assert.True(t, ok, name)
		assert.Equal(t, want, got, name)
	}
	for _, bad := range []string{"", "fr", "fridays", "xyz"} {
		_, ok := ParseWeekday(bad)
		assert.False(t, ok, bad)
	}
}

func TestScheduleResolvesGroupThenRoster(t *testing.T) {
	book := NewBook([]RosterEntry{
		{UUID: "ros-a1", ShiftGroupUUID: "grp-a", ShiftsUUID: dayShift.UUID, EffectiveDate: day(2024, 1, 1), OffDays: []string{"fri"}},
		{UUID: "ros-a2", ShiftGroupUUID: "grp-a", ShiftsUUID: nightShift.UUID, EffectiveDate: day(2024, 3, 10), OffDays: []string{"sat", "sun"}},
		{UUID: "ros-b1", ShiftGroupUUID: "grp-b", ShiftsUUID: dayShift.UUID, EffectiveDate: day(2024, 2, 1), OffDays: []string{"sun"}},
	}, []Shift{dayShift, nightShift})

	schedule := book.Schedule([]GroupAssignment{
		{ShiftGroupUUID: "grp-a", ShiftGroupName: ptr("Alpha"), EffectiveDate: day(2024, 1, 15)},
		{ShiftGroupUUID: "grp-b", ShiftGroupName: ptr("Beta"), EffectiveDate: day(2024, 3, 20)},
	})

	before := schedule.On(day(2024, 1, 14))
	assert.False(t, before.HasGroup())
	assert.Nil(t, before.Shift)

	jan := schedule.On(day(2024, 1, 19)) // Friday
	require.True(t, jan.HasGroup())
	assert.Equal(t, "Alpha", *jan.ShiftGroupName)
	assert.Equal(t, "ros-a1", jan.Roster.UUID)
	assert.True(t, jan.IsOffDay)
	require.NotNil(t, jan.Timing)
	assert.Equal(t, 9*time.Hour+15*time.Minute, jan.Timing.Late)

	march := schedule.On(day(2024, 3, 10))
	assert.Equal(t, "ros-a2", march.Roster.UUID, "roster effective on its own date")
	assert.Equal(t, "Night", march.Shift.Name)
	assert.True(t, march.IsOffDay, "10 March 2024 is a Sunday")

	moved := schedule.On(day(2024, 3, 22))
	assert.Equal(t, "grp-b", moved.ShiftGroupUUID)
	assert.Equal(t, "ros-b1", moved.Roster.UUID)
	assert.False(t, moved.IsOffDay)
}

func TestScheduleGroupWithoutRoster(t *testing.T) {
	schedule := NewBook(nil, nil).Schedule([]GroupAssignment{{ShiftGroupUUID: "grp-x", EffectiveDate: day(2024, 1, 1)}})
	got := schedule.On(day(2024, 5, 1))
	assert.True(t, got.HasGroup())
	assert.Nil(t, got.Roster)
	assert.Nil(t, got.Timing)
	assert.False(t, got.IsOffDay)
}

func TestScheduleUnreadableShiftHasNoTiming(t *testing.T) {
	broken := Shift{UUID: "shf-broken", Name: "Broken", StartTime: "nine", EndTime: "18:00:00", LateTime: "09:15:00", EarlyExitBefore: "17:00:00"}
	book := NewBook([]RosterEntry{{UUID: "r", ShiftGroupUUID: "g", ShiftsUUID: broken.UUID, EffectiveDate: day(2024, 1, 1)}}, []Shift{broken})
	got := book.Schedule([]GroupAssignment{{ShiftGroupUUID: "g", EffectiveDate: day(2024, 1, 1)}}).On(day(2024, 1, 2))
	require.NotNil(t, got.Shift)
	assert.Nil(t, got.Timing)
}

func TestNilScheduleResolvesNothing(t *testing.T) {
	var schedule *Schedule
	assert.False(t, schedule.On(day(2024, 1, 1)).HasGroup())
}

func TestClockOf(t *testing.T) {
	assert.Equal(t, 9*time.Hour+5*time.Minute, ClockOf(time.Date(2024, 1, 2, 9, 5, 0, 0, time.UTC)))
}
