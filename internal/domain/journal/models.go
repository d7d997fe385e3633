package journal

import (
	"time"

	"hradmin/internal/domain/crud"
)

const (
	StatusDraft     = "draft"
	StatusPublished = "published"
)

type Journal struct {
	UUID        string  `json:"uuid" db:"uuid"`
	Name        string  `json:"name" db:"name"`
	Description *string `json:"description" db:"description"`
	crud.Audit
}

type JournalInput struct {
	UUID        string  `json:"uuid" db:"uuid" validate:"required,len=15|len=21"`
	Name        string  `json:"name" db:"name" validate:"required,max=255"`
	Description *string `json:"description" db:"description"`
	crud.AuditInput
}

type JournalPatch struct {
	Name        *string `json:"name" db:"name" validate:"omitempty,min=1,max=255"`
	Description *string `json:"description" db:"description"`
	crud.AuditPatch
}

type Article struct {
	UUID          string     `json:"uuid" db:"uuid"`
	JournalUUID   string     `json:"journal_uuid" db:"journal_uuid"`
	JournalName   *string    `json:"journal_name" db:"journal_name"`
	Title         string     `json:"title" db:"title"`
	Abstract      *string    `json:"abstract" db:"abstract"`
	Cover         *string    `json:"cover" db:"cover"`
	Status        string     `json:"status" db:"status"`
	PublishedDate *time.Time `json:"published_date" db:"published_date"`
	crud.Audit
}

// ArticleInput arrives as multipart form fields; Cover is set from the stored file.
type ArticleInput struct {
	UUID        string  `json:"uuid" form:"uuid" db:"uuid" validate:"required,len=15|len=21"`
	JournalUUID string  `json:"journal_uuid" form:"journal_uuid" db:"journal_uuid" validate:"required,len=15|len=21"`
	Title       string  `json:"title" form:"title" db:"title" validate:"required,max=500"`
	Abstract    *string `json:"abstract" form:"abstract" db:"abstract"`
	Cover       *string `json:"-" form:"-" db:"cover"`
	crud.AuditInput
}

type ArticlePatch struct {
	JournalUUID *string `json:"journal_uuid" form:"journal_uuid" db:"journal_uuid" validate:"omitempty,len=15|len=21"`
	Title       *string `json:"title" form:"title" db:"title" validate:"omitempty,min=1,max=500"`
	Abstract    *string `json:"abstract" form:"abstract" db:"abstract"`
	Cover       *string `json:"-" form:"-" db:"cover"`
	crud.AuditPatch
}
