package leave

import (
	"github.com/jackc/pgx/v5/pgtype"

	"hradmin/internal/domain/crud"
)

const (
	ApprovalPending  = "pending"
	ApprovalApproved = "approved"
	ApprovalRejected = "rejected"
)

type Category struct {
	UUID string `json:"uuid" db:"uuid"`
	Name string `json:"name" db:"name"`
	crud.Audit
}

type CategoryInput struct {
	UUID string `json:"uuid" db:"uuid" validate:"required,len=15|len=21"`
	Name string `json:"name" db:"name" validate:"required,max=255"`
	crud.AuditInput
}

type CategoryPatch struct {
	Name *string `json:"name" db:"name" validate:"omitempty,min=1,max=255"`
	crud.AuditPatch
}

type Policy struct {
	UUID      string `json:"uuid" db:"uuid"`
	Name      string `json:"name" db:"name"`
	IsDefault bool   `json:"is_default" db:"is_default"`
	crud.Audit
}

type PolicyInput struct {
	UUID      string `json:"uuid" db:"uuid" validate:"required,len=15|len=21"`
	Name      string `json:"name" db:"name" validate:"required,max=255"`
	IsDefault *bool  `json:"is_default" db:"is_default"`
	crud.AuditInput
}

type PolicyPatch struct {
	Name      *string `json:"name" db:"name" validate:"omitempty,min=1,max=255"`
	IsDefault *bool   `json:"is_default" db:"is_default"`
	crud.AuditPatch
}

// Application is a leave request spanning from_date..to_date inclusive.
type Application struct {
	UUID              string      `json:"uuid" db:"uuid"`
	LeaveCategoryUUID string      `json:"leave_category_uuid" db:"leave_category_uuid"`
	LeaveCategoryName *string     `json:"leave_category_name" db:"leave_category_name"`
	EmployeeUUID      string      `json:"employee_uuid" db:"employee_uuid"`
	EmployeeName      *string     `json:"employee_name" db:"employee_name"`
	Year              int         `json:"year" db:"year"`
	Type              string      `json:"type" db:"type"`
	FromDate          pgtype.Date `json:"from_date" db:"from_date"`
	ToDate            pgtype.Date `json:"to_date" db:"to_date"`
	Reason            *string     `json:"reason" db:"reason"`
	Approval          string      `json:"approval" db:"approval"`
	crud.Audit
}

type ApplicationInput struct {
	UUID              string  `json:"uuid" db:"uuid" validate:"required,len=15|len=21"`
	LeaveCategoryUUID string  `json:"leave_category_uuid" db:"leave_category_uuid" validate:"required,len=15|len=21"`
	EmployeeUUID      string  `json:"employee_uuid" db:"employee_uuid" validate:"required,len=15|len=21"`
	Year              int     `json:"year" db:"year" validate:"required,min=1970,max=9999"`
	Type              *string `json:"type" db:"type" validate:"omitempty,oneof=full half"`
	FromDate          string  `json:"from_date" db:"from_date" validate:"required,datetime=2006-01-02"`
	ToDate            string  `json:"to_date" db:"to_date" validate:"required,datetime=2006-01-02"`
	Reason            *string `json:"reason" db:"reason"`
	Approval          *string `json:"approval" db:"approval" validate:"omitempty,oneof=pending approved rejected"`
	crud.AuditInput
}

type ApplicationPatch struct {
	LeaveCategoryUUID *string `json:"leave_category_uuid" db:"leave_category_uuid" validate:"omitempty,len=15|len=21"`
	Year              *int    `json:"year" db:"year" validate:"omitempty,min=1970,max=9999"`
	Type              *string `json:"type" db:"type" validate:"omitempty,oneof=full half"`
	FromDate          *string `json:"from_date" db:"from_date" validate:"omitempty,datetime=2006-01-02"`
	ToDate            *string `json:"to_date" db:"to_date" validate:"omitempty,datetime=2006-01-02"`
	Reason            *string `json:"reason" db:"reason"`
	Approval          *string `json:"approval" db:"approval" validate:"omitempty,oneof=pending approved rejected"`
	crud.AuditPatch
}

// LateApplication exempts one day of late arrival once approved.
type LateApplication struct {
	UUID         string      `json:"uuid" db:"uuid"`
	EmployeeUUID string      `json:"employee_uuid" db:"employee_uuid"`
	EmployeeName *string     `json:"employee_name" db:"employee_name"`
	Date         pgtype.Date `json:"date" db:"date"`
	Reason       *string     `json:"reason" db:"reason"`
	Approval     string      `json:"approval" db:"approval"`
	crud.Audit
}

type LateApplicationInput struct {
	UUID         string  `json:"uuid" db:"uuid" validate:"required,len=15|len=21"`
	EmployeeUUID string  `json:"employee_uuid" db:"employee_uuid" validate:"required,len=15|len=21"`
	Date         string  `json:"date" db:"date" validate:"required,datetime=2006-01-02"`
	Reason       *string `json:"reason" db:"reason"`
	Approval     *string `json:"approval" db:"approval" validate:"omitempty,oneof=pending approved rejected"`
	crud.AuditInput
}

type LateApplicationPatch struct {
	Date     *string `json:"date" db:"date" validate:"omitempty,datetime=2006-01-02"`
	Reason   *string `json:"reason" db:"reason"`
	Approval *string `json:"approval" db:"approval" validate:"omitempty,oneof=pending approved rejected"`
	crud.AuditPatch
}
