package employee

import (
	"context"
	"time"

	"hradmin/internal/domain/effective"
	"hradmin/internal/platform/db"
)

// Assignments are the shift group and leave policy in force for an employee on one day.
type Assignments struct {
	EmployeeUUID string `json:"employee_uuid"`
	Date         string `json:"date"`
	ShiftGroup   *Log   `json:"shift_group"`
	LeavePolicy  *Log   `json:"leave_policy"`
}

// Current picks, per log type, the latest row effective on day. rows must be in insertion order.
func Current(rows []Log, day time.Time) Assignments {
	out := Assignments{Date: day.Format(time.DateOnly)}
	byType := map[string][]Log{}
	for _, row := range rows {
		byType[row.Type] = append(byType[row.Type], row)
	}
	dateOf := func(l Log) time.Time { return l.EffectiveDate.Time }
	if row, ok := effective.Latest(byType[LogShiftGroup], day, dateOf); ok {
		out.ShiftGroup = &row
	}
	if row, ok := effective.Latest(byType[LogLeavePolicy], day, dateOf); ok {
		out.LeavePolicy = &row
	}
	return out
}

// CurrentAssignments resolves Current for a stored employee; an unknown employee is not found.
func CurrentAssignments(ctx context.Context, q db.Querier, employeeUUID string, day time.Time) (Assignments, error) {
	if _, err := employees.Get(ctx, q, employeeUUID); err != nil {
		return Assignments{}, err
	}
	history := logs
	history.OrderBy = "t.effective_date ASC, t.created_at ASC"
	rows, _, err := history.List(ctx, q, db.Filter{Where: "t.employee_uuid = $1", Args: []any{employeeUUID}}, db.Page{})
	if err != nil {
		return Assignments{}, err
	}
	out := Current(rows, day)
	out.EmployeeUUID = employeeUUID
	return out, nil
}
