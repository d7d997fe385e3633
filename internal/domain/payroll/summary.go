package payroll

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"hradmin/internal/domain/effective"
	"hradmin/internal/domain/roster"
)

// DaysPerMonth is the fixed divisor for the daily rate regardless of month length.
const DaysPerMonth = 30

type DayStatus string

const (
	StatusHoliday DayStatus = "holiday"
	StatusOff     DayStatus = "off"
	StatusLeave   DayStatus = "leave"
	StatusPresent DayStatus = "present"
	StatusLate    DayStatus = "late"
	StatusAbsent  DayStatus = "absent"
)

// Attendance is the first and last punch of one day.
type Attendance struct {
	First time.Time
	Last  time.Time
}

// DayInput gathers what is known about a single day for one employee.
type DayInput struct {
	Holiday    bool
	Shift      roster.DayShift
	OnLeave    bool
	LateExempt bool
	Punch      *Attendance
}

// DayResult is the bucket a day lands in plus the early-exit and missing-shift overlays, which
// never move the day to another bucket.
type DayResult struct {
	Status    DayStatus
	EarlyExit bool
	NoShift   bool
}

// ClassifyDay applies holiday, off-day, leave and attendance in that order. A punch on a day
// without a readable shift counts as absent and is flagged NoShift.
func ClassifyDay(in DayInput) DayResult {
	switch {
	case in.Holiday:
		return DayResult{Status: StatusHoliday}
	case in.Shift.IsOffDay:
		return DayResult{Status: StatusOff}
	case in.OnLeave:
		return DayResult{Status: StatusLeave}
	case in.Punch == nil:
		return DayResult{Status: StatusAbsent}
	case in.Shift.Timing == nil:
		return DayResult{Status: StatusAbsent, NoShift: true}
	}

	timing := in.Shift.Timing
	out := DayResult{Status: StatusLate}
	if roster.ClockOf(in.Punch.First) <= timing.Late || in.LateExempt {
		out.Status = StatusPresent
	}
	out.EarlyExit = roster.ClockOf(in.Punch.Last) < timing.EarlyExit
	return out
}

// Facts is everything the summary of one employee is computed from.
type Facts struct {
	Employee       Employee
	Schedule       *roster.Schedule
	Holidays       roster.HolidaySet
	Leaves         []roster.LeaveSpan
	LateExemptions []time.Time
	Punches        []time.Time
	Increments     []IncrementRow
	Loans          []Movement
	Repayments     []Movement
}

type Summary struct {
	EmployeeUUID        string          `json:"employee_uuid"`
	EmployeeName        string          `json:"employee_name"`
	DepartmentName      *string         `json:"department_name"`
	DesignationName     *string         `json:"designation_name"`
	Year                int             `json:"year"`
	Month               int             `json:"month"`
	FromDate            string          `json:"from_date"`
	ToDate              string          `json:"to_date"`
	TotalDays           int             `json:"total_days"`
	PresentDays         int             `json:"present_days"`
	LateDays            int             `json:"late_days"`
	EarlyExitDays       int             `json:"early_exit_days"`
	LeaveDays           int             `json:"leave_days"`
	HolidayDays         int             `json:"holiday_days"`
	OffDays             int             `json:"off_days"`
	AbsentDays          int             `json:"absent_days"`
	NoShiftDays         int             `json:"no_shift_days"`
	LateDayUnit         int             `json:"late_day_unit"`
	JoiningAmount       decimal.Decimal `json:"joining_amount"`
	TotalIncrement      decimal.Decimal `json:"total_increment"`
	BaseSalary          decimal.Decimal `json:"base_salary"`
	DailySalary         decimal.Decimal `json:"daily_salary"`
	GrossSalary         decimal.Decimal `json:"gross_salary"`
	LateSalaryDeduction decimal.Decimal `json:"late_salary_deduction"`
	NetPayable          decimal.Decimal `json:"net_payable"`
	LoanOutstanding     decimal.Decimal `json:"loan_outstanding"`
	NewTDS              decimal.Decimal `json:"new_tds"`
}

// Summarize computes the attendance buckets and salary figures for the window. Money is
// computed exactly and rounded to two places only in the returned summary.
func Summarize(f Facts, w roster.Window) Summary {
	sum := Summary{
		EmployeeUUID:    f.Employee.UUID,
		EmployeeName:    f.Employee.Name,
		DepartmentName:  f.Employee.DepartmentName,
		DesignationName: f.Employee.DesignationName,
		Year:            w.From.Year(),
		Month:           int(w.From.Month()),
		FromDate:        w.From.Format(time.DateOnly),
		ToDate:          w.To.Format(time.DateOnly),
		TotalDays:       w.Days(),
		LateDayUnit:     f.Employee.LateDayUnit,
	}

	punches := groupPunches(f.Punches)
	exempt := make(map[time.Time]bool, len(f.LateExemptions))
	for _, d := range f.LateExemptions {
		exempt[effective.Day(d)] = true
	}

	w.Each(func(day time.Time) {
		result := ClassifyDay(DayInput{
			Holiday:    f.Holidays.On(day),
			Shift:      f.Schedule.On(day),
			OnLeave:    onLeave(f.Leaves, day),
			LateExempt: exempt[day],
			Punch:      punches[day],
		})
		switch result.Status {
		case StatusHoliday:
			sum.HolidayDays++
		case StatusOff:
			sum.OffDays++
		case StatusLeave:
			sum.LeaveDays++
		case StatusPresent:
			sum.PresentDays++
		case StatusLate:
			sum.LateDays++
		}
		if result.EarlyExit {
			sum.EarlyExitDays++
		}
		if result.NoShift {
			sum.NoShiftDays++
		}
	})
	sum.AbsentDays = sum.TotalDays - (sum.PresentDays + sum.LateDays + sum.LeaveDays + sum.HolidayDays + sum.OffDays)

	increment := decimal.Zero
	for _, inc := range f.Increments {
		if !effective.Day(inc.EffectiveDate).After(w.To) {
			increment = increment.Add(inc.Amount)
		}
	}
	base := f.Employee.JoiningAmount.Add(increment)
	daily := base.Div(decimal.NewFromInt(DaysPerMonth))
	paid := sum.PresentDays + sum.OffDays + sum.LeaveDays + sum.HolidayDays
	gross := daily.Mul(decimal.NewFromInt(int64(paid)))
	deduction := LateDeduction(sum.LateDays, f.Employee.LateDayUnit, daily)
	if deduction.GreaterThan(gross) {
		deduction = gross
	}

	sum.JoiningAmount = money(f.Employee.JoiningAmount)
	sum.TotalIncrement = money(increment)
	sum.BaseSalary = money(base)
	sum.DailySalary = money(daily)
	sum.GrossSalary = money(gross)
	sum.LateSalaryDeduction = money(deduction)
	sum.NetPayable = money(gross.Sub(deduction))
	sum.LoanOutstanding = money(total(f.Loans, w.To).Sub(total(f.Repayments, w.To)))
	sum.NewTDS = money(currentTDS(f.Increments, w.To, f.Employee.TaxAmount))
	return sum
}

// LateDeduction charges one day's salary for every full unit of late days. A unit of zero
// or less disables the deduction.
func LateDeduction(lateDays, unit int, daily decimal.Decimal) decimal.Decimal {
	if unit <= 0 || lateDays <= 0 {
		return decimal.Zero
	}
	return daily.Mul(decimal.NewFromInt(int64(lateDays / unit)))
}

func currentTDS(rows []IncrementRow, to time.Time, fallback decimal.Decimal) decimal.Decimal {
	latest, ok := effective.Latest(rows, to, func(r IncrementRow) time.Time { return r.EffectiveDate })
	if !ok || !latest.NewTDS.Valid {
		return fallback
	}
	return latest.NewTDS.Decimal
}

func total(moves []Movement, to time.Time) decimal.Decimal {
	out := decimal.Zero
	for _, m := range moves {
		if !effective.Day(m.Date).After(effective.Day(to)) {
			out = out.Add(m.Amount)
		}
	}
	return out
}

func groupPunches(punches []time.Time) map[time.Time]*Attendance {
	sorted := make([]time.Time, len(punches))
	copy(sorted, punches)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Before(sorted[j]) })

	out := map[time.Time]*Attendance{}
	for _, p := range sorted {
		d := effective.Day(p)
		if a, ok := out[d]; ok {
			a.Last = p
			continue
		}
		out[d] = &Attendance{First: p, Last: p}
	}
	return out
}

func onLeave(leaves []roster.LeaveSpan, day time.Time) bool {
	for _, l := range leaves {
		if l.Covers(day) {
			return true
		}
	}
	return false
}

func money(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
