package org

import (
	"hradmin/internal/domain/crud"
)

type Department struct {
	UUID       string `json:"uuid" db:"uuid"`
	Department string `json:"department" db:"department"`
	crud.Audit
}

type DepartmentInput struct {
	UUID       string `json:"uuid" db:"uuid" validate:"required,len=15|len=21"`
	Department string `json:"department" db:"department" validate:"required,max=255"`
	crud.AuditInput
}

type DepartmentPatch struct {
	Department *string `json:"department" db:"department" validate:"omitempty,min=1,max=255"`
	crud.AuditPatch
}

type Designation struct {
	UUID        string `json:"uuid" db:"uuid"`
	Designation string `json:"designation" db:"designation"`
	crud.Audit
}

type DesignationInput struct {
	UUID        string `json:"uuid" db:"uuid" validate:"required,len=15|len=21"`
	Designation string `json:"designation" db:"designation" validate:"required,max=255"`
	crud.AuditInput
}

type DesignationPatch struct {
	Designation *string `json:"designation" db:"designation" validate:"omitempty,min=1,max=255"`
	crud.AuditPatch
}
