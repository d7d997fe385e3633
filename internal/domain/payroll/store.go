package payroll

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"hradmin/internal/domain/crud"
	"hradmin/internal/domain/roster"
	"hradmin/internal/platform/apperr"
	"hradmin/internal/platform/db"
)

var increments = db.Table[Increment]{
	Name:   "hr.salary_increment",
	Entity: "salary increment",
	Key:    "uuid",
	KeyRef: "t.uuid",
	Select: `SELECT t.uuid, t.employee_uuid, e.name AS employee_name, t.amount, t.effective_date, t.new_tds, ` + crud.AuditColumns + `
    FROM hr.salary_increment t
    JOIN hr.employee e ON e.uuid = t.employee_uuid ` + crud.AuditJoin,
	OrderBy: "t.effective_date DESC, t.created_at DESC",
	Touch:   true,
}

var loans = db.Table[Loan]{
	Name:   "hr.loan",
	Entity: "loan",
	Key:    "uuid",
	KeyRef: "t.uuid",
	Select: `SELECT t.uuid, t.employee_uuid, e.name AS employee_name, t.type, t.amount,
      COALESCE((SELECT SUM(le.amount) FROM hr.loan_entry le WHERE le.loan_uuid = t.uuid), 0) AS paid_amount,
      t.date, ` + crud.AuditColumns + `
    FROM hr.loan t
    JOIN hr.employee e ON e.uuid = t.employee_uuid ` + crud.AuditJoin,
	OrderBy: "t.date DESC, t.created_at DESC",
	Touch:   true,
}

var loanEntries = db.Table[LoanEntry]{
	Name:   "hr.loan_entry",
	Entity: "loan entry",
	Key:    "uuid",
	KeyRef: "t.uuid",
	Select: `SELECT t.uuid, t.loan_uuid, l.employee_uuid, e.name AS employee_name, t.type, t.amount, t.date, ` + crud.AuditColumns + `
    FROM hr.loan_entry t
    JOIN hr.loan l ON l.uuid = t.loan_uuid
    JOIN hr.employee e ON e.uuid = l.employee_uuid ` + crud.AuditJoin,
	OrderBy: "t.date DESC, t.created_at DESC",
	Touch:   true,
}

func NewIncrements(pool db.DB) *crud.Repo[Increment, IncrementInput, IncrementPatch] {
	return &crud.Repo[Increment, IncrementInput, IncrementPatch]{
		DB:      pool,
		Table:   increments,
		Filters: map[string]string{"employee_uuid": "t.employee_uuid"},
		Prepare: func(_ context.Context, input *IncrementInput) error {
			if input.NewTDS != nil && input.NewTDS.IsNegative() {
				return apperr.Invalid("new_tds", "must not be negative")
			}
			return nil
		},
	}
}

func NewLoans(pool db.DB) *crud.Repo[Loan, LoanInput, LoanPatch] {
	return &crud.Repo[Loan, LoanInput, LoanPatch]{
		DB:    pool,
		Table: loans,
		Filters: map[string]string{
			"employee_uuid": "t.employee_uuid",
			"type":          "t.type",
		},
		Prepare: func(_ context.Context, input *LoanInput) error {
			return positive("amount", input.Amount)
		},
	}
}

func NewLoanEntries(pool db.DB) *crud.Repo[LoanEntry, LoanEntryInput, LoanEntryPatch] {
	return &crud.Repo[LoanEntry, LoanEntryInput, LoanEntryPatch]{
		DB:    pool,
		Table: loanEntries,
		Filters: map[string]string{
			"loan_uuid":     "t.loan_uuid",
			"employee_uuid": "l.employee_uuid",
		},
		Prepare: func(_ context.Context, input *LoanEntryInput) error {
			return positive("amount", input.Amount)
		},
	}
}

func positive(field string, v decimal.Decimal) error {
	if !v.IsPositive() {
		return apperr.Invalid(field, "must be greater than zero")
	}
	return nil
}

// Employee carries the salary terms of one employee.
type Employee struct {
	UUID            string          `json:"uuid" db:"uuid"`
	Name            string          `json:"name" db:"name"`
	DepartmentName  *string         `json:"department_name" db:"department_name"`
	DesignationName *string         `json:"designation_name" db:"designation_name"`
	StartDate       pgtype.Date     `json:"start_date" db:"start_date"`
	LateDayUnit     int             `json:"late_day_unit" db:"late_day_unit"`
	JoiningAmount   decimal.Decimal `json:"joining_amount" db:"joining_amount"`
	TaxAmount       decimal.Decimal `json:"tax_amount" db:"tax_amount"`
}

// IncrementRow is a salary increment as the summary consumes it.
type IncrementRow struct {
	EmployeeUUID  string              `db:"employee_uuid"`
	Amount        decimal.Decimal     `db:"amount"`
	EffectiveDate time.Time           `db:"effective_date"`
	NewTDS        decimal.NullDecimal `db:"new_tds"`
}

// Movement is a dated amount: a loan disbursed or a repayment made.
type Movement struct {
	EmployeeUUID string          `db:"employee_uuid"`
	Date         time.Time       `db:"date"`
	Amount       decimal.Decimal `db:"amount"`
}

type punchRow struct {
	EmployeeUUID string    `db:"employee_uuid"`
	PunchTime    time.Time `db:"punch_time"`
}

type FactStore interface {
	// Employees returns one employee when employeeUUID is set, otherwise every active employee.
	Employees(ctx context.Context, employeeUUID string) ([]Employee, error)
	Punches(ctx context.Context, employeeUUIDs []string, w roster.Window) (map[string][]time.Time, error)
	LateExemptions(ctx context.Context, employeeUUIDs []string, w roster.Window) (map[string][]time.Time, error)
	Increments(ctx context.Context, employeeUUIDs []string, to time.Time) (map[string][]IncrementRow, error)
	Loans(ctx context.Context, employeeUUIDs []string, to time.Time) (map[string][]Movement, error)
	Repayments(ctx context.Context, employeeUUIDs []string, to time.Time) (map[string][]Movement, error)
}

type Store struct {
	DB db.Querier
}

func NewStore(q db.Querier) *Store {
	return &Store{DB: q}
}

const employeeColumns = `SELECT e.uuid, e.name, d.department AS department_name, g.designation AS designation_name,
      e.start_date, e.late_day_unit, e.joining_amount, e.tax_amount
    FROM hr.employee e
    LEFT JOIN hr.department d ON d.uuid = e.department_uuid
    LEFT JOIN hr.designation g ON g.uuid = e.designation_uuid`

func (s *Store) Employees(ctx context.Context, employeeUUID string) ([]Employee, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if employeeUUID != "" {
		rows, err = s.DB.Query(ctx, employeeColumns+` WHERE e.uuid = $1`, employeeUUID)
	} else {
		rows, err = s.DB.Query(ctx, employeeColumns+` WHERE e.status = true ORDER BY e.name ASC`)
	}
	if err != nil {
		return nil, err
	}
	list, err := pgx.CollectRows(rows, pgx.RowToStructByName[Employee])
	if err != nil {
		return nil, err
	}
	if employeeUUID != "" && len(list) == 0 {
		return nil, apperr.NotFound("employee")
	}
	return list, nil
}

func (s *Store) Punches(ctx context.Context, employeeUUIDs []string, w roster.Window) (map[string][]time.Time, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT employee_uuid, punch_time
    FROM hr.punch_log
    WHERE employee_uuid = ANY($1)
      AND punch_time >= $2
      AND punch_time < $3
    ORDER BY punch_time ASC
  `, employeeUUIDs, w.From, w.To.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}
	list, err := pgx.CollectRows(rows, pgx.RowToStructByName[punchRow])
	if err != nil {
		return nil, err
	}
	out := make(map[string][]time.Time, len(employeeUUIDs))
	for _, p := range list {
		out[p.EmployeeUUID] = append(out[p.EmployeeUUID], p.PunchTime)
	}
	return out, nil
}

func (s *Store) LateExemptions(ctx context.Context, employeeUUIDs []string, w roster.Window) (map[string][]time.Time, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT employee_uuid, date AS punch_time
    FROM hr.apply_late
    WHERE approval = 'approved'
      AND employee_uuid = ANY($1)
      AND date BETWEEN $2 AND $3
  `, employeeUUIDs, w.From, w.To)
	if err != nil {
		return nil, err
	}
	list, err := pgx.CollectRows(rows, pgx.RowToStructByName[punchRow])
	if err != nil {
		return nil, err
	}
	out := make(map[string][]time.Time, len(employeeUUIDs))
	for _, p := range list {
		out[p.EmployeeUUID] = append(out[p.EmployeeUUID], p.PunchTime)
	}
	return out, nil
}

func (s *Store) Increments(ctx context.Context, employeeUUIDs []string, to time.Time) (map[string][]IncrementRow, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT employee_uuid, amount, effective_date, new_tds
    FROM hr.salary_increment
    WHERE employee_uuid = ANY($1)
      AND effective_date <= $2
    ORDER BY effective_date ASC, created_at ASC
  `, employeeUUIDs, to)
	if err != nil {
		return nil, err
	}
	list, err := pgx.CollectRows(rows, pgx.RowToStructByName[IncrementRow])
	if err != nil {
		return nil, err
	}
	out := make(map[string][]IncrementRow, len(employeeUUIDs))
	for _, row := range list {
		out[row.EmployeeUUID] = append(out[row.EmployeeUUID], row)
	}
	return out, nil
}

func (s *Store) Loans(ctx context.Context, employeeUUIDs []string, to time.Time) (map[string][]Movement, error) {
	return s.movements(ctx, `
    SELECT employee_uuid, date, amount
    FROM hr.loan
    WHERE employee_uuid = ANY($1)
      AND date <= $2
  `, employeeUUIDs, to)
}

func (s *Store) Repayments(ctx context.Context, employeeUUIDs []string, to time.Time) (map[string][]Movement, error) {
	return s.movements(ctx, `
    SELECT l.employee_uuid, le.date, le.amount
    FROM hr.loan_entry le
    JOIN hr.loan l ON l.uuid = le.loan_uuid
    WHERE l.employee_uuid = ANY($1)
      AND le.date <= $2
  `, employeeUUIDs, to)
}

func (s *Store) movements(ctx context.Context, query string, employeeUUIDs []string, to time.Time) (map[string][]Movement, error) {
	rows, err := s.DB.Query(ctx, query, employeeUUIDs, to)
	if err != nil {
		return nil, err
	}
	list, err := pgx.CollectRows(rows, pgx.RowToStructByName[Movement])
	if err != nil {
		return nil, err
	}
	out := make(map[string][]Movement, len(employeeUUIDs))
	for _, m := range list {
		out[m.EmployeeUUID] = append(out[m.EmployeeUUID], m)
	}
	return out, nil
}
