package employee

import (
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"hradmin/internal/domain/crud"
)

const (
	LogShiftGroup  = "shift_group"
	LogLeavePolicy = "leave_policy"
)

type Employee struct {
	UUID            string          `json:"uuid" db:"uuid"`
	UserUUID        *string         `json:"user_uuid" db:"user_uuid"`
	Name            string          `json:"name" db:"name"`
	Email           *string         `json:"email" db:"email"`
	DepartmentUUID  *string         `json:"department_uuid" db:"department_uuid"`
	DepartmentName  *string         `json:"department_name" db:"department_name"`
	DesignationUUID *string         `json:"designation_uuid" db:"designation_uuid"`
	DesignationName *string         `json:"designation_name" db:"designation_name"`
	StartDate       pgtype.Date     `json:"start_date" db:"start_date"`
	LateDayUnit     int             `json:"late_day_unit" db:"late_day_unit"`
	JoiningAmount   decimal.Decimal `json:"joining_amount" db:"joining_amount"`
	TaxAmount       decimal.Decimal `json:"tax_amount" db:"tax_amount"`
	Status          bool            `json:"status" db:"status"`
	crud.Audit
}

type Input struct {
	UUID            string           `json:"uuid" db:"uuid" validate:"required,len=15|len=21"`
	UserUUID        *string          `json:"user_uuid" db:"user_uuid" validate:"omitempty,len=15|len=21"`
	Name            string           `json:"name" db:"name" validate:"required,max=255"`
	Email           *string          `json:"email" db:"email" validate:"omitempty,email"`
	DepartmentUUID  *string          `json:"department_uuid" db:"department_uuid" validate:"omitempty,len=15|len=21"`
	DesignationUUID *string          `json:"designation_uuid" db:"designation_uuid" validate:"omitempty,len=15|len=21"`
	StartDate       *string          `json:"start_date" db:"start_date" validate:"omitempty,datetime=2006-01-02"`
	LateDayUnit     *int             `json:"late_day_unit" db:"late_day_unit" validate:"omitempty,min=0"`
	JoiningAmount   *decimal.Decimal `json:"joining_amount" db:"joining_amount"`
	TaxAmount       *decimal.Decimal `json:"tax_amount" db:"tax_amount"`
	Status          *bool            `json:"status" db:"status"`
	crud.AuditInput
}

type Patch struct {
	UserUUID        *string          `json:"user_uuid" db:"user_uuid" validate:"omitempty,len=15|len=21"`
	Name            *string          `json:"name" db:"name" validate:"omitempty,min=1,max=255"`
	Email           *string          `json:"email" db:"email" validate:"omitempty,email"`
	DepartmentUUID  *string          `json:"department_uuid" db:"department_uuid" validate:"omitempty,len=15|len=21"`
	DesignationUUID *string          `json:"designation_uuid" db:"designation_uuid" validate:"omitempty,len=15|len=21"`
	StartDate       *string          `json:"start_date" db:"start_date" validate:"omitempty,datetime=2006-01-02"`
	LateDayUnit     *int             `json:"late_day_unit" db:"late_day_unit" validate:"omitempty,min=0"`
	JoiningAmount   *decimal.Decimal `json:"joining_amount" db:"joining_amount"`
	TaxAmount       *decimal.Decimal `json:"tax_amount" db:"tax_amount"`
	Status          *bool            `json:"status" db:"status"`
	crud.AuditPatch
}

// Log is one effective-dated assignment of a shift group or leave policy to an employee.
type Log struct {
	UUID          string      `json:"uuid" db:"uuid"`
	EmployeeUUID  string      `json:"employee_uuid" db:"employee_uuid"`
	EmployeeName  *string     `json:"employee_name" db:"employee_name"`
	Type          string      `json:"type" db:"type"`
	TypeUUID      string      `json:"type_uuid" db:"type_uuid"`
	TypeName      *string     `json:"type_name" db:"type_name"`
	EffectiveDate pgtype.Date `json:"effective_date" db:"effective_date"`
	crud.Audit
}

type LogInput struct {
	UUID          string `json:"uuid" db:"uuid" validate:"required,len=15|len=21"`
	EmployeeUUID  string `json:"employee_uuid" db:"employee_uuid" validate:"required,len=15|len=21"`
	Type          string `json:"type" db:"type" validate:"required,oneof=shift_group leave_policy"`
	TypeUUID      string `json:"type_uuid" db:"type_uuid" validate:"required,len=15|len=21"`
	EffectiveDate string `json:"effective_date" db:"effective_date" validate:"required,datetime=2006-01-02"`
	crud.AuditInput
}

type LogPatch struct {
	Type          *string `json:"type" db:"type" validate:"omitempty,oneof=shift_group leave_policy"`
	TypeUUID      *string `json:"type_uuid" db:"type_uuid" validate:"omitempty,len=15|len=21"`
	EffectiveDate *string `json:"effective_date" db:"effective_date" validate:"omitempty,datetime=2006-01-02"`
	crud.AuditPatch
}
