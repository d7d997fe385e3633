package roster

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"hradmin/internal/domain/crud"
	"hradmin/internal/platform/apperr"
	"hradmin/internal/platform/db"
)

var shiftGroups = db.Table[ShiftGroup]{
	Name:   "hr.shift_group",
	Entity: "shift group",
	Key:    "uuid",
	KeyRef: "t.uuid",
	Select: `SELECT t.uuid, t.name, t.default_shift, t.status, ` + crud.AuditColumns + `
    FROM hr.shift_group t ` + crud.AuditJoin,
	OrderBy: "t.name ASC",
	Touch:   true,
}

var shifts = db.Table[Shift]{
	Name:   "hr.shifts",
	Entity: "shift",
	Key:    "uuid",
	KeyRef: "t.uuid",
	Select: `SELECT t.uuid, t.name, t.start_time::text AS start_time, t.end_time::text AS end_time,
      t.late_time::text AS late_time, t.early_exit_before::text AS early_exit_before, t.color,
      t.default_shift, ` + crud.AuditColumns + `
    FROM hr.shifts t ` + crud.AuditJoin,
	OrderBy: "t.name ASC",
	Touch:   true,
}

var rosters = db.Table[Roster]{
	Name:   "hr.roster",
	Entity: "roster",
	Key:    "uuid",
	KeyRef: "t.uuid",
	Select: `SELECT t.uuid, t.shift_group_uuid, sg.name AS shift_group_name, t.shifts_uuid, s.name AS shift_name,
      t.effective_date, t.off_days, ` + crud.AuditColumns + `
    FROM hr.roster t
    JOIN hr.shift_group sg ON sg.uuid = t.shift_group_uuid
    JOIN hr.shifts s ON s.uuid = t.shifts_uuid ` + crud.AuditJoin,
	OrderBy: "t.effective_date DESC, t.created_at DESC",
	Touch:   true,
}

var generalHolidays = db.Table[GeneralHoliday]{
	Name:   "hr.general_holiday",
	Entity: "general holiday",
	Key:    "uuid",
	KeyRef: "t.uuid",
	Select: `SELECT t.uuid, t.name, t.date, ` + crud.AuditColumns + `
    FROM hr.general_holiday t ` + crud.AuditJoin,
	OrderBy: "t.date ASC",
	Touch:   true,
}

var specialHolidays = db.Table[SpecialHoliday]{
	Name:   "hr.special_holiday",
	Entity: "special holiday",
	Key:    "uuid",
	KeyRef: "t.uuid",
	Select: `SELECT t.uuid, t.name, t.from_date, t.to_date, ` + crud.AuditColumns + `
    FROM hr.special_holiday t ` + crud.AuditJoin,
	OrderBy: "t.from_date ASC",
	Touch:   true,
}

func NewShiftGroups(pool db.DB) *crud.Repo[ShiftGroup, ShiftGroupInput, ShiftGroupPatch] {
	return &crud.Repo[ShiftGroup, ShiftGroupInput, ShiftGroupPatch]{
		DB:      pool,
		Table:   shiftGroups,
		Filters: map[string]string{"status": "t.status::text"},
	}
}

func NewShifts(pool db.DB) *crud.Repo[Shift, ShiftInput, ShiftPatch] {
	return &crud.Repo[Shift, ShiftInput, ShiftPatch]{DB: pool, Table: shifts}
}

func NewRosters(pool db.DB) *crud.Repo[Roster, RosterInput, RosterPatch] {
	return &crud.Repo[Roster, RosterInput, RosterPatch]{
		DB:    pool,
		Table: rosters,
		Filters: map[string]string{
			"shift_group_uuid": "t.shift_group_uuid",
			"shifts_uuid":      "t.shifts_uuid",
		},
		Prepare: func(_ context.Context, input *RosterInput) error {
			if input.OffDays == nil {
				input.OffDays = []string{}
			}
			return nil
		},
	}
}

func NewGeneralHolidays(pool db.DB) *crud.Repo[GeneralHoliday, GeneralHolidayInput, GeneralHolidayPatch] {
	return &crud.Repo[GeneralHoliday, GeneralHolidayInput, GeneralHolidayPatch]{DB: pool, Table: generalHolidays}
}

func NewSpecialHolidays(pool db.DB) *crud.Repo[SpecialHoliday, SpecialHolidayInput, SpecialHolidayPatch] {
	repo := &crud.Repo[SpecialHoliday, SpecialHolidayInput, SpecialHolidayPatch]{
		DB:    pool,
		Table: specialHolidays,
		Prepare: func(_ context.Context, input *SpecialHolidayInput) error {
			return checkRange(input.FromDate, input.ToDate)
		},
	}
	repo.PreparePatch = func(ctx context.Context, id string, patch *SpecialHolidayPatch) error {
		return crud.CheckPatchedSpan(patch.FromDate, patch.ToDate, func() (time.Time, time.Time, error) {
			row, err := repo.Get(ctx, id)
			return row.FromDate.Time, row.ToDate.Time, err
		})
	}
	return repo
}

func checkRange(from, to string) error {
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

// EmployeeRef is the part of an employee the calendar needs.
type EmployeeRef struct {
	UUID      string      `db:"uuid"`
	Name      string      `db:"name"`
	StartDate pgtype.Date `db:"start_date"`
}

// FactStore loads the rows schedule resolution runs over.
type FactStore interface {
	Employee(ctx context.Context, uuid string) (EmployeeRef, error)
	GroupAssignments(ctx context.Context, employeeUUIDs []string, to time.Time) (map[string][]GroupAssignment, error)
	RosterEntries(ctx context.Context, to time.Time) ([]RosterEntry, error)
	Shifts(ctx context.Context) ([]Shift, error)
	GeneralHolidays(ctx context.Context, w Window) ([]GeneralHoliday, error)
	SpecialHolidays(ctx context.Context, w Window) ([]SpecialHoliday, error)
	ApprovedLeaves(ctx context.Context, employeeUUIDs []string, w Window) (map[string][]LeaveSpan, error)
}

type Store struct {
	DB db.Querier
}

func NewStore(q db.Querier) *Store {
	return &Store{DB: q}
}

func (s *Store) Employee(ctx context.Context, uuid string) (EmployeeRef, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT uuid, name, start_date
    FROM hr.employee
    WHERE uuid = $1
  `, uuid)
	if err != nil {
		return EmployeeRef{}, err
	}
	ref, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[EmployeeRef])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return EmployeeRef{}, apperr.NotFound("employee")
		}
		return EmployeeRef{}, err
	}
	return ref, nil
}

type assignmentRow struct {
	EmployeeUUID string `db:"employee_uuid"`
	GroupAssignment
}

// GroupAssignments returns shift group history per employee in effective order, ties in
// creation order.
func (s *Store) GroupAssignments(ctx context.Context, employeeUUIDs []string, to time.Time) (map[string][]GroupAssignment, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT l.employee_uuid, l.type_uuid, sg.name AS shift_group_name, l.effective_date
    FROM hr.employee_log l
    LEFT JOIN hr.shift_group sg ON sg.uuid = l.type_uuid
    WHERE l.type = 'shift_group'
      AND l.employee_uuid = ANY($1)
      AND l.effective_date <= $2
    ORDER BY l.effective_date ASC, l.created_at ASC
  `, employeeUUIDs, to)
	if err != nil {
		return nil, err
	}
	list, err := pgx.CollectRows(rows, pgx.RowToStructByName[assignmentRow])
	if err != nil {
		return nil, err
	}
	out := make(map[string][]GroupAssignment, len(employeeUUIDs))
	for _, row := range list {
		out[row.EmployeeUUID] = append(out[row.EmployeeUUID], row.GroupAssignment)
	}
	return out, nil
}

func (s *Store) RosterEntries(ctx context.Context, to time.Time) ([]RosterEntry, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT uuid, shift_group_uuid, shifts_uuid, effective_date, off_days
    FROM hr.roster
    WHERE effective_date <= $1
    ORDER BY effective_date ASC, created_at ASC
  `, to)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[RosterEntry])
}

func (s *Store) Shifts(ctx context.Context) ([]Shift, error) {
	list, _, err := shifts.List(ctx, s.DB, db.Filter{}, db.Page{})
	return list, err
}

func (s *Store) GeneralHolidays(ctx context.Context, w Window) ([]GeneralHoliday, error) {
	list, _, err := generalHolidays.List(ctx, s.DB, db.Filter{
		Where: "t.date BETWEEN $1 AND $2",
		Args:  []any{w.From, w.To},
	}, db.Page{})
	return list, err
}

func (s *Store) SpecialHolidays(ctx context.Context, w Window) ([]SpecialHoliday, error) {
	list, _, err := specialHolidays.List(ctx, s.DB, db.Filter{
		Where: "t.from_date <= $2 AND t.to_date >= $1",
		Args:  []any{w.From, w.To},
	}, db.Page{})
	return list, err
}

func (s *Store) ApprovedLeaves(ctx context.Context, employeeUUIDs []string, w Window) (map[string][]LeaveSpan, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT al.uuid, al.employee_uuid, lc.name AS leave_category_name, al.type, al.from_date, al.to_date
    FROM hr.apply_leave al
    LEFT JOIN hr.leave_category lc ON lc.uuid = al.leave_category_uuid
    WHERE al.approval = 'approved'
      AND al.employee_uuid = ANY($1)
      AND al.from_date <= $3
      AND al.to_date >= $2
    ORDER BY al.from_date ASC
  `, employeeUUIDs, w.From, w.To)
	if err != nil {
		return nil, err
	}
	list, err := pgx.CollectRows(rows, pgx.RowToStructByName[LeaveSpan])
	if err != nil {
		return nil, err
	}
	out := make(map[string][]LeaveSpan, len(employeeUUIDs))
	for _, l := range list {
		out[l.EmployeeUUID] = append(out[l.EmployeeUUID], l)
	}
	return out, nil
}
