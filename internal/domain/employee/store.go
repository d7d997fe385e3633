// Package employee owns employee records and their effective-dated shift group and
// leave policy history.
package employee

import (
	"context"
	"errors"

	"hradmin/internal/domain/crud"
	"hradmin/internal/platform/apperr"
	"hradmin/internal/platform/db"
)

var employees = db.Table[Employee]{
	Name:   "hr.employee",
	Entity: "employee",
	Key:    "uuid",
	KeyRef: "t.uuid",
	Select: `SELECT t.uuid, t.user_uuid, t.name, t.email, t.department_uuid, d.department AS department_name,
      t.designation_uuid, g.designation AS designation_name, t.start_date, t.late_day_unit,
      t.joining_amount, t.tax_amount, t.status, ` + crud.AuditColumns + `
    FROM hr.employee t
    LEFT JOIN hr.department d ON d.uuid = t.department_uuid
    LEFT JOIN hr.designation g ON g.uuid = t.designation_uuid ` + crud.AuditJoin,
	OrderBy: "t.name ASC",
	Touch:   true,
}

var logs = db.Table[Log]{
	Name:   "hr.employee_log",
	Entity: "employee log",
	Key:    "uuid",
	KeyRef: "t.uuid",
	Select: `SELECT t.uuid, t.employee_uuid, e.name AS employee_name, t.type, t.type_uuid,
      COALESCE(sg.name, lp.name) AS type_name, t.effective_date, ` + crud.AuditColumns + `
    FROM hr.employee_log t
    JOIN hr.employee e ON e.uuid = t.employee_uuid
    LEFT JOIN hr.shift_group sg ON t.type = 'shift_group' AND sg.uuid = t.type_uuid
    LEFT JOIN hr.leave_policy lp ON t.type = 'leave_policy' AND lp.uuid = t.type_uuid ` + crud.AuditJoin,
	OrderBy: "t.effective_date DESC, t.created_at DESC",
	Touch:   true,
}

func NewEmployees(pool db.DB) *crud.Repo[Employee, Input, Patch] {
	return &crud.Repo[Employee, Input, Patch]{
		DB:    pool,
		Table: employees,
		Filters: map[string]string{
			"department_uuid":  "t.department_uuid",
			"designation_uuid": "t.designation_uuid",
			"status":           "t.status::text",
		},
	}
}

// ReferenceChecker validates the polymorphic type_uuid of a log row, which has no foreign key.
type ReferenceChecker func(ctx context.Context, kind, id string) error

func NewLogs(pool db.DB) *crud.Repo[Log, LogInput, LogPatch] {
	check := TypeReferenceExists(pool)
	return &crud.Repo[Log, LogInput, LogPatch]{
		DB:    pool,
		Table: logs,
		Filters: map[string]string{
			"employee_uuid": "t.employee_uuid",
			"type":          "t.type",
		},
		Prepare: func(ctx context.Context, input *LogInput) error {
			return check(ctx, input.Type, input.TypeUUID)
		},
	}
}

func TypeReferenceExists(q db.Querier) ReferenceChecker {
	return func(ctx context.Context, kind, id string) error {
		var query string
		switch kind {
		case LogShiftGroup:
			query = `SELECT EXISTS (SELECT 1 FROM hr.shift_group WHERE uuid = $1)`
		case LogLeavePolicy:
			query = `SELECT EXISTS (SELECT 1 FROM hr.leave_policy WHERE uuid = $1)`
		default:
			return errors.New("unknown employee log type")
		}
		var ok bool
		if err := q.QueryRow(ctx, query, id).Scan(&ok); err != nil {
			return err
		}
		if !ok {
			return apperr.ErrInvalidReference
		}
		return nil
	}
}
