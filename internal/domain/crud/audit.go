package crud

import "time"

// Audit holds the bookkeeping columns read back on every entity.
type Audit struct {
	CreatedBy     *string    `json:"created_by" db:"created_by"`
	CreatedByName *string    `json:"created_by_name" db:"created_by_name"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt     *time.Time `json:"updated_at" db:"updated_at"`
	Remarks       *string    `json:"remarks" db:"remarks"`
}

type AuditInput struct {
	CreatedBy *string `json:"created_by" form:"created_by" db:"created_by" validate:"omitempty,len=15|len=21"`
	CreatedAt *string `json:"created_at" form:"created_at" db:"created_at" validate:"omitempty,datetime=2006-01-02 15:04:05"`
	Remarks   *string `json:"remarks" form:"remarks" db:"remarks"`
}

type AuditPatch struct {
	UpdatedAt *string `json:"updated_at" form:"updated_at" db:"updated_at" validate:"omitempty,datetime=2006-01-02 15:04:05"`
	Remarks   *string `json:"remarks" form:"remarks" db:"remarks"`
}

// AuditColumns is the projection matching Audit for a table aliased t joined to hr.users as cb.
const AuditColumns = `t.created_by, cb.name AS created_by_name, t.created_at, t.updated_at, t.remarks`

// AuditJoin joins the creator for AuditColumns.
const AuditJoin = `LEFT JOIN hr.users cb ON cb.uuid = t.created_by`

// DefaultCreatedBy fills created_by when the payload left it empty.
func (a *AuditInput) DefaultCreatedBy(userUUID string) {
	if a.CreatedBy == nil && userUUID != "" {
		a.CreatedBy = &userUUID
	}
}
