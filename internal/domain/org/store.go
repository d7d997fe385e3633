// Package org holds the department and designation lookups every employee and user points at.
package org

import (
	"hradmin/internal/domain/crud"
	"hradmin/internal/platform/db"
)

var departments = db.Table[Department]{
	Name:   "hr.department",
	Entity: "department",
	Key:    "uuid",
	KeyRef: "t.uuid",
	Select: `SELECT t.uuid, t.department, ` + crud.AuditColumns + `
    FROM hr.department t ` + crud.AuditJoin,
	OrderBy: "t.created_at DESC",
	Touch:   true,
}

var designations = db.Table[Designation]{
	Name:   "hr.designation",
	Entity: "designation",
	Key:    "uuid",
	KeyRef: "t.uuid",
	Select: `SELECT t.uuid, t.designation, ` + crud.AuditColumns + `
    FROM hr.designation t ` + crud.AuditJoin,
	OrderBy: "t.created_at DESC",
	Touch:   true,
}

func NewDepartments(pool db.DB) *crud.Repo[Department, DepartmentInput, DepartmentPatch] {
	return &crud.Repo[Department, DepartmentInput, DepartmentPatch]{DB: pool, Table: departments}
}

func NewDesignations(pool db.DB) *crud.Repo[Designation, DesignationInput, DesignationPatch] {
	return &crud.Repo[Designation, DesignationInput, DesignationPatch]{DB: pool, Table: designations}
}
