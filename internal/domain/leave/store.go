// Package leave covers leave categories, leave policies, leave applications and late
// exemptions.
package leave

import (
	"context"
	"time"

	"hradmin/internal/domain/crud"
	"hradmin/internal/platform/apperr"
	"hradmin/internal/platform/db"
)

var categories = db.Table[Category]{
	Name:   "hr.leave_category",
	Entity: "leave category",
	Key:    "uuid",
	KeyRef: "t.uuid",
	Select: `SELECT t.uuid, t.name, ` + crud.AuditColumns + `
    FROM hr.leave_category t ` + crud.AuditJoin,
	OrderBy: "t.name ASC",
	Touch:   true,
}

var policies = db.Table[Policy]{
	Name:   "hr.leave_policy",
	Entity: "leave policy",
	Key:    "uuid",
	KeyRef: "t.uuid",
	Select: `SELECT t.uuid, t.name, t.is_default, ` + crud.AuditColumns + `
    FROM hr.leave_policy t ` + crud.AuditJoin,
	OrderBy: "t.name ASC",
	Touch:   true,
}

var applications = db.Table[Application]{
	Name:   "hr.apply_leave",
	Entity: "leave application",
	Key:    "uuid",
	KeyRef: "t.uuid",
	Select: `SELECT t.uuid, t.leave_category_uuid, lc.name AS leave_category_name, t.employee_uuid,
      e.name AS employee_name, t.year, t.type, t.from_date, t.to_date, t.reason, t.approval, ` + crud.AuditColumns + `
    FROM hr.apply_leave t
    JOIN hr.leave_category lc ON lc.uuid = t.leave_category_uuid
    JOIN hr.employee e ON e.uuid = t.employee_uuid ` + crud.AuditJoin,
	OrderBy: "t.from_date DESC, t.created_at DESC",
	Touch:   true,
}

var lateApplications = db.Table[LateApplication]{
	Name:   "hr.apply_late",
	Entity: "late application",
	Key:    "uuid",
	KeyRef: "t.uuid",
	Select: `SELECT t.uuid, t.employee_uuid, e.name AS employee_name, t.date, t.reason, t.approval, ` + crud.AuditColumns + `
    FROM hr.apply_late t
    JOIN hr.employee e ON e.uuid = t.employee_uuid ` + crud.AuditJoin,
	OrderBy: "t.date DESC, t.created_at DESC",
	Touch:   true,
}

func NewCategories(pool db.DB) *crud.Repo[Category, CategoryInput, CategoryPatch] {
	return &crud.Repo[Category, CategoryInput, CategoryPatch]{DB: pool, Table: categories}
}

func NewPolicies(pool db.DB) *crud.Repo[Policy, PolicyInput, PolicyPatch] {
	return &crud.Repo[Policy, PolicyInput, PolicyPatch]{DB: pool, Table: policies}
}

func NewApplications(pool db.DB) *crud.Repo[Application, ApplicationInput, ApplicationPatch] {
	repo := &crud.Repo[Application, ApplicationInput, ApplicationPatch]{
		DB:    pool,
		Table: applications,
		Filters: map[string]string{
			"employee_uuid":       "t.employee_uuid",
			"leave_category_uuid": "t.leave_category_uuid",
			"approval":            "t.approval",
			"year":                "t.year::text",
		},
		Prepare: func(_ context.Context, input *ApplicationInput) error {
			return CheckSpan(input.FromDate, input.ToDate)
		},
	}
	repo.PreparePatch = func(ctx context.Context, id string, patch *ApplicationPatch) error {
		return crud.CheckPatchedSpan(patch.FromDate, patch.ToDate, func() (time.Time, time.Time, error) {
			row, err := repo.Get(ctx, id)
			return row.FromDate.Time, row.ToDate.Time, err
		})
	}
	return repo
}

func NewLateApplications(pool db.DB) *crud.Repo[LateApplication, LateApplicationInput, LateApplicationPatch] {
	return &crud.Repo[LateApplication, LateApplicationInput, LateApplicationPatch]{
		DB:    pool,
		Table: lateApplications,
		Filters: map[string]string{
			"employee_uuid": "t.employee_uuid",
			"approval":      "t.approval",
		},
	}
}

// CheckSpan rejects a leave span that ends before it starts.
func CheckSpan(from, to string) error {
	start, err := time.Parse(time.DateOnly, from)
	if err != nil {
		return apperr.Invalid("from_date", "must be a valid date in YYYY-MM-DD format")
	}
	end, err := time.Parse(time.DateOnly, to)
	if err != nil {
		return apperr.Invalid("to_date", "must be a valid date in YYYY-MM-DD format")
	}
	if end.Before(start) {
		return apperr.Invalid("to_date", "must be on or after from_date")
	}
	return nil
}
