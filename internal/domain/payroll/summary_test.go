package payroll

import (
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hradmin/internal/domain/roster"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func at(d time.Time, hour, minute int) time.Time {
	return d.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

var officeShift = roster.Shift{UUID: "shf000000000001", Name: "Office", StartTime: "09:00:00", EndTime: "17:00:00", LateTime: "09:15:00", EarlyExitBefore: "16:30:00"}

func officeSchedule(offDays ...string) *roster.Schedule {
	book := roster.NewBook([]roster.RosterEntry{
		{UUID: "ros000000000001", ShiftGroupUUID: "grp000000000001", ShiftsUUID: officeShift.UUID, EffectiveDate: day(2020, 1, 1), OffDays: offDays},
	}, []roster.Shift{officeShift})
	return book.Schedule([]roster.GroupAssignment{{ShiftGroupUUID: "grp000000000001", EffectiveDate: day(2020, 1, 1)}})
}

func employee(start time.Time) Employee {
	return Employee{
		UUID:          "emp000000000001",
		Name:          "Karim",
		StartDate:     pgtype.Date{Time: start, Valid: !start.IsZero()},
		LateDayUnit:   3,
		JoiningAmount: dec("30000"),
		TaxAmount:     dec("500"),
	}
}

func dailyPunches(w roster.Window, hour, minute int) []time.Time {
	var out []time.Time
	w.Each(func(d time.Time) {
		out = append(out, at(d, hour, minute), at(d, 17, 5))
	})
	return out
}

func assertBucketsAddUp(t *testing.T, s Summary) {
	t.Helper()
	assert.Equal(t, s.TotalDays, s.PresentDays+s.LateDays+s.LeaveDays+s.HolidayDays+s.OffDays+s.AbsentDays)
	assert.True(t, s.NetPayable.Equal(s.GrossSalary.Sub(s.LateSalaryDeduction)))
}

func TestSummarizeJoinedMidMonth(t *testing.T) {
	emp := employee(day(2024, 6, 10))
	w := roster.MonthWindow(2024, time.June).ClipStart(emp.StartDate)
	sum := Summarize(Facts{
		Employee: emp,
		Schedule: officeSchedule(),
		Punches:  dailyPunches(w, 8, 55),
	}, w)

	assert.Equal(t, 21, sum.TotalDays)
	assert.Equal(t, 21, sum.PresentDays)
	assert.Equal(t, 0, sum.AbsentDays)
	assert.Equal(t, 0, sum.LateDays)
	assert.Equal(t, "2024-06-10", sum.FromDate)
	assert.Equal(t, "2024-06-30", sum.ToDate)
	assert.True(t, dec("1000").Equal(sum.DailySalary))
	assert.True(t, dec("21000").Equal(sum.GrossSalary))
	assert.True(t, dec("21000").Equal(sum.NetPayable))
	assertBucketsAddUp(t, sum)
}

func TestSummarizePrecedence(t *testing.T) {
	w := roster.MonthWindow(2024, time.June).ClipEnd(day(2024, 6, 10))
	// June 2024: the 7th is a Friday.
	holidays := roster.NewHolidaySet(
		[]roster.GeneralHoliday{{Date: roster.DateOf(day(2024, 6, 3))}},
		[]roster.SpecialHoliday{{FromDate: roster.DateOf(day(2024, 6, 7)), ToDate: roster.DateOf(day(2024, 6, 7))}},
	)
	leaves := []roster.LeaveSpan{{UUID: "lv", FromDate: day(2024, 6, 4), ToDate: day(2024, 6, 5)}}
	punches := []time.Time{
		at(day(2024, 6, 1), 8, 50),  // Saturday: off day even though punched
		at(day(2024, 6, 3), 9, 0),   // holiday wins
		at(day(2024, 6, 4), 9, 0),   // leave wins
		at(day(2024, 6, 6), 9, 40),  // late
		at(day(2024, 6, 6), 17, 0),  //
		at(day(2024, 6, 8), 9, 30),  // Saturday off
		at(day(2024, 6, 9), 9, 30),  // late but exempted
		at(day(2024, 6, 9), 16, 0),  // early exit
		at(day(2024, 6, 10), 9, 15), // exactly on the threshold
	}
	sum := Summarize(Facts{
		Employee:       employee(time.Time{}),
		Schedule:       officeSchedule("sat"),
		Holidays:       holidays,
		Leaves:         leaves,
		LateExemptions: []time.Time{day(2024, 6, 9)},
		Punches:        punches,
	}, w)

	assert.Equal(t, 10, sum.TotalDays)
	assert.Equal(t, 2, sum.HolidayDays, "3rd general, 7th special")
	assert.Equal(t, 2, sum.OffDays, "1st and 8th are Saturdays")
	assert.Equal(t, 2, sum.LeaveDays)
	assert.Equal(t, 1, sum.LateDays)
	assert.Equal(t, 2, sum.PresentDays)
	assert.Equal(t, 1, sum.AbsentDays, "2nd has no punch")
	assert.Equal(t, 2, sum.EarlyExitDays, "10th has a single punch before the early-exit time")
	assertBucketsAddUp(t, sum)
}

func TestSummarizeNoShiftCountsAbsent(t *testing.T) {
	w := roster.MonthWindow(2024, time.June).ClipEnd(day(2024, 6, 5))
	sum := Summarize(Facts{
		Employee: employee(time.Time{}),
		Schedule: roster.NewBook(nil, nil).Schedule(nil),
		Punches:  dailyPunches(w, 9, 0),
	}, w)
	assert.Equal(t, 5, sum.AbsentDays)
	assert.Equal(t, 5, sum.NoShiftDays)
	assert.Zero(t, sum.PresentDays)
	assert.True(t, sum.GrossSalary.IsZero())
	assertBucketsAddUp(t, sum)
}

func TestSummarizeSalaryFigures(t *testing.T) {
	w := roster.MonthWindow(2024, time.April)
	emp := employee(time.Time{})
	emp.LateDayUnit = 2
	sum := Summarize(Facts{
		Employee: emp,
		Schedule: officeSchedule(),
		Punches:  dailyPunches(w, 9, 20),
		Increments: []IncrementRow{
			{Amount: dec("3000"), EffectiveDate: day(2024, 1, 1), NewTDS: decimal.NewNullDecimal(dec("700"))},
			{Amount: dec("1500"), EffectiveDate: day(2024, 4, 15)},
			{Amount: dec("9999"), EffectiveDate: day(2024, 5, 1), NewTDS: decimal.NewNullDecimal(dec("900"))},
		},
		Loans:      []Movement{{Date: day(2024, 2, 1), Amount: dec("10000")}, {Date: day(2024, 5, 2), Amount: dec("5000")}},
		Repayments: []Movement{{Date: day(2024, 3, 1), Amount: dec("2500")}, {Date: day(2024, 4, 30), Amount: dec("2500")}},
	}, w)

	assert.Equal(t, 30, sum.LateDays)
	assert.True(t, dec("4500").Equal(sum.TotalIncrement), "future increment excluded")
	assert.True(t, dec("34500").Equal(sum.BaseSalary))
	assert.True(t, dec("1150").Equal(sum.DailySalary))
	assert.True(t, sum.GrossSalary.IsZero(), "late days are not paid")
	assert.True(t, sum.LateSalaryDeduction.IsZero(), "deduction is capped at gross")
	assert.True(t, dec("5000").Equal(sum.LoanOutstanding))
	assert.True(t, dec("0").Equal(sum.NetPayable))
	assert.True(t, dec("500").Equal(sum.NewTDS), "latest increment carries no TDS, tax_amount applies")
	assertBucketsAddUp(t, sum)
}

func TestSummarizeTDSFallsBackToTaxAmount(t *testing.T) {
	w := roster.MonthWindow(2024, time.April)
	sum := Summarize(Facts{Employee: employee(time.Time{}), Schedule: officeSchedule()}, w)
	assert.True(t, dec("500").Equal(sum.NewTDS))
	assert.Equal(t, 30, sum.AbsentDays)

	sum = Summarize(Facts{
		Employee:   employee(time.Time{}),
		Schedule:   officeSchedule(),
		Increments: []IncrementRow{{Amount: dec("100"), EffectiveDate: day(2024, 3, 1), NewTDS: decimal.NewNullDecimal(dec("650.5"))}},
	}, w)
	assert.True(t, dec("650.5").Equal(sum.NewTDS))
}

func TestLateDeduction(t *testing.T) {
	daily := dec("1000")
	assert.True(t, LateDeduction(7, 3, daily).Equal(dec("2000")))
	assert.True(t, LateDeduction(2, 3, daily).IsZero())
	assert.True(t, LateDeduction(5, 0, daily).IsZero())
	assert.True(t, LateDeduction(5, -1, daily).IsZero())
}

func TestSummarizeLateDeductionReducesNet(t *testing.T) {
	w := roster.MonthWindow(2024, time.April)
	var punches []time.Time
	w.Each(func(d time.Time) {
		start := 8
		if d.Day() <= 7 {
			start = 10
		}
		punches = append(punches, at(d, start, 0), at(d, 17, 0))
	})
	sum := Summarize(Facts{Employee: employee(time.Time{}), Schedule: officeSchedule(), Punches: punches}, w)

	assert.Equal(t, 7, sum.LateDays)
	assert.Equal(t, 23, sum.PresentDays)
	assert.True(t, dec("23000").Equal(sum.GrossSalary))
	assert.True(t, dec("2000").Equal(sum.LateSalaryDeduction))
	assert.True(t, dec("21000").Equal(sum.NetPayable))
	assert.False(t, sum.NetPayable.IsNegative())
	assertBucketsAddUp(t, sum)
}

func TestSummarizeRoundsMoney(t *testing.T) {
	w := roster.MonthWindow(2024, time.April).ClipEnd(day(2024, 4, 1))
	emp := employee(time.Time{})
	emp.JoiningAmount = dec("10000")
	sum := Summarize(Facts{Employee: emp, Schedule: officeSchedule(), Punches: dailyPunches(w, 9, 0)}, w)
	require.Equal(t, 1, sum.PresentDays)
	assert.Equal(t, "333.33", sum.DailySalary.String())
	assert.Equal(t, "333.33", sum.GrossSalary.String())
}

func TestClassifyDay(t *testing.T) {
	timing := &roster.Timing{Late: 9*time.Hour + 15*time.Minute, EarlyExit: 16*time.Hour + 30*time.Minute}
	shift := roster.DayShift{ShiftGroupUUID: "g", Timing: timing}
	d := day(2024, 6, 4)

	assert.Equal(t, StatusAbsent, ClassifyDay(DayInput{Shift: shift}).Status)
	got := ClassifyDay(DayInput{Shift: shift, Punch: &Attendance{First: at(d, 9, 16), Last: at(d, 16, 29)}})
	assert.Equal(t, StatusLate, got.Status)
	assert.True(t, got.EarlyExit)

	got = ClassifyDay(DayInput{Shift: shift, LateExempt: true, Punch: &Attendance{First: at(d, 11, 0), Last: at(d, 18, 0)}})
	assert.Equal(t, StatusPresent, got.Status)
	assert.False(t, got.EarlyExit)

	assert.Equal(t, StatusHoliday, ClassifyDay(DayInput{Holiday: true, OnLeave: true, Shift: roster.DayShift{IsOffDay: true}}).Status)
	assert.Equal(t, StatusOff, ClassifyDay(DayInput{OnLeave: true, Shift: roster.DayShift{IsOffDay: true}}).Status)
	assert.Equal(t, StatusLeave, ClassifyDay(DayInput{OnLeave: true, Shift: shift}).Status)
}
