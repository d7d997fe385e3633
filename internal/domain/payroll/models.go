package payroll

import (
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"hradmin/internal/domain/crud"
)

type Increment struct {
	UUID          string              `json:"uuid" db:"uuid"`
	EmployeeUUID  string              `json:"employee_uuid" db:"employee_uuid"`
	EmployeeName  *string             `json:"employee_name" db:"employee_name"`
	Amount        decimal.Decimal     `json:"amount" db:"amount"`
	EffectiveDate pgtype.Date         `json:"effective_date" db:"effective_date"`
	NewTDS        decimal.NullDecimal `json:"new_tds" db:"new_tds"`
	crud.Audit
}

type IncrementInput struct {
	UUID          string           `json:"uuid" db:"uuid" validate:"required,len=15|len=21"`
	EmployeeUUID  string           `json:"employee_uuid" db:"employee_uuid" validate:"required,len=15|len=21"`
	Amount        decimal.Decimal  `json:"amount" db:"amount"`
	EffectiveDate string           `json:"effective_date" db:"effective_date" validate:"required,datetime=2006-01-02"`
	NewTDS        *decimal.Decimal `json:"new_tds" db:"new_tds"`
	crud.AuditInput
}

type IncrementPatch struct {
	Amount        *decimal.Decimal `json:"amount" db:"amount"`
	EffectiveDate *string          `json:"effective_date" db:"effective_date" validate:"omitempty,datetime=2006-01-02"`
	NewTDS        *decimal.Decimal `json:"new_tds" db:"new_tds"`
	crud.AuditPatch
}

type Loan struct {
	UUID         string          `json:"uuid" db:"uuid"`
	EmployeeUUID string          `json:"employee_uuid" db:"employee_uuid"`
	EmployeeName *string         `json:"employee_name" db:"employee_name"`
	Type         string          `json:"type" db:"type"`
	Amount       decimal.Decimal `json:"amount" db:"amount"`
	Paid         decimal.Decimal `json:"paid_amount" db:"paid_amount"`
	Date         pgtype.Date     `json:"date" db:"date"`
	crud.Audit
}

type LoanInput struct {
	UUID         string          `json:"uuid" db:"uuid" validate:"required,len=15|len=21"`
	EmployeeUUID string          `json:"employee_uuid" db:"employee_uuid" validate:"required,len=15|len=21"`
	Type         *string         `json:"type" db:"type" validate:"omitempty,oneof=salary_advance other"`
	Amount       decimal.Decimal `json:"amount" db:"amount"`
	Date         string          `json:"date" db:"date" validate:"required,datetime=2006-01-02"`
	crud.AuditInput
}

type LoanPatch struct {
	Type   *string          `json:"type" db:"type" validate:"omitempty,oneof=salary_advance other"`
	Amount *decimal.Decimal `json:"amount" db:"amount"`
	Date   *string          `json:"date" db:"date" validate:"omitempty,datetime=2006-01-02"`
	crud.AuditPatch
}

type LoanEntry struct {
	UUID         string          `json:"uuid" db:"uuid"`
	LoanUUID     string          `json:"loan_uuid" db:"loan_uuid"`
	EmployeeUUID string          `json:"employee_uuid" db:"employee_uuid"`
	EmployeeName *string         `json:"employee_name" db:"employee_name"`
	Type         string          `json:"type" db:"type"`
	Amount       decimal.Decimal `json:"amount" db:"amount"`
	Date         pgtype.Date     `json:"date" db:"date"`
	crud.Audit
}

type LoanEntryInput struct {
	UUID     string          `json:"uuid" db:"uuid" validate:"required,len=15|len=21"`
	LoanUUID string          `json:"loan_uuid" db:"loan_uuid" validate:"required,len=15|len=21"`
	Type     *string         `json:"type" db:"type" validate:"omitempty,oneof=salary manual"`
	Amount   decimal.Decimal `json:"amount" db:"amount"`
	Date     string          `json:"date" db:"date" validate:"required,datetime=2006-01-02"`
	crud.AuditInput
}

type LoanEntryPatch struct {
	Type   *string          `json:"type" db:"type" validate:"omitempty,oneof=salary manual"`
	Amount *decimal.Decimal `json:"amount" db:"amount"`
	Date   *string          `json:"date" db:"date" validate:"omitempty,datetime=2006-01-02"`
	crud.AuditPatch
}
