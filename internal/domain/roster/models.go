package roster

import (
	"github.com/jackc/pgx/v5/pgtype"

	"hradmin/internal/domain/crud"
)

type ShiftGroup struct {
	UUID         string `json:"uuid" db:"uuid"`
	Name         string `json:"name" db:"name"`
	DefaultShift bool   `json:"default_shift" db:"default_shift"`
	Status       bool   `json:"status" db:"status"`
	crud.Audit
}

type ShiftGroupInput struct {
	UUID         string `json:"uuid" db:"uuid" validate:"required,len=15|len=21"`
	Name         string `json:"name" db:"name" validate:"required,max=255"`
	DefaultShift *bool  `json:"default_shift" db:"default_shift"`
	Status       *bool  `json:"status" db:"status"`
	crud.AuditInput
}

type ShiftGroupPatch struct {
	Name         *string `json:"name" db:"name" validate:"omitempty,min=1,max=255"`
	DefaultShift *bool   `json:"default_shift" db:"default_shift"`
	Status       *bool   `json:"status" db:"status"`
	crud.AuditPatch
}

// Shift times are wall-clock times of day formatted HH:MM:SS.
type Shift struct {
	UUID            string  `json:"uuid" db:"uuid"`
	Name            string  `json:"name" db:"name"`
	StartTime       string  `json:"start_time" db:"start_time"`
	EndTime         string  `json:"end_time" db:"end_time"`
	LateTime        string  `json:"late_time" db:"late_time"`
	EarlyExitBefore string  `json:"early_exit_before" db:"early_exit_before"`
	Color           *string `json:"color" db:"color"`
	DefaultShift    bool    `json:"default_shift" db:"default_shift"`
	crud.Audit
}

type ShiftInput struct {
	UUID            string  `json:"uuid" db:"uuid" validate:"required,len=15|len=21"`
	Name            string  `json:"name" db:"name" validate:"required,max=255"`
	StartTime       string  `json:"start_time" db:"start_time" validate:"required,clock"`
	EndTime         string  `json:"end_time" db:"end_time" validate:"required,clock"`
	LateTime        string  `json:"late_time" db:"late_time" validate:"required,clock"`
	EarlyExitBefore string  `json:"early_exit_before" db:"early_exit_before" validate:"required,clock"`
	Color           *string `json:"color" db:"color" validate:"omitempty,max=32"`
	DefaultShift    *bool   `json:"default_shift" db:"default_shift"`
	crud.AuditInput
}

type ShiftPatch struct {
	Name            *string `json:"name" db:"name" validate:"omitempty,min=1,max=255"`
	StartTime       *string `json:"start_time" db:"start_time" validate:"omitempty,clock"`
	EndTime         *string `json:"end_time" db:"end_time" validate:"omitempty,clock"`
	LateTime        *string `json:"late_time" db:"late_time" validate:"omitempty,clock"`
	EarlyExitBefore *string `json:"early_exit_before" db:"early_exit_before" validate:"omitempty,clock"`
	Color           *string `json:"color" db:"color" validate:"omitempty,max=32"`
	DefaultShift    *bool   `json:"default_shift" db:"default_shift"`
	crud.AuditPatch
}

// Roster is the shift and weekly off-days a shift group follows from its effective date on.
type Roster struct {
	UUID           string      `json:"uuid" db:"uuid"`
	ShiftGroupUUID string      `json:"shift_group_uuid" db:"shift_group_uuid"`
	ShiftGroupName *string     `json:"shift_group_name" db:"shift_group_name"`
	ShiftsUUID     string      `json:"shifts_uuid" db:"shifts_uuid"`
	ShiftName      *string     `json:"shift_name" db:"shift_name"`
	EffectiveDate  pgtype.Date `json:"effective_date" db:"effective_date"`
	OffDays        []string    `json:"off_days" db:"off_days"`
	crud.Audit
}

type RosterInput struct {
	UUID           string   `json:"uuid" db:"uuid" validate:"required,len=15|len=21"`
	ShiftGroupUUID string   `json:"shift_group_uuid" db:"shift_group_uuid" validate:"required,len=15|len=21"`
	ShiftsUUID     string   `json:"shifts_uuid" db:"shifts_uuid" validate:"required,len=15|len=21"`
	EffectiveDate  string   `json:"effective_date" db:"effective_date" validate:"required,datetime=2006-01-02"`
	OffDays        []string `json:"off_days" db:"off_days" validate:"omitempty,unique,dive,weekday"`
	crud.AuditInput
}

type RosterPatch struct {
	ShiftGroupUUID *string   `json:"shift_group_uuid" db:"shift_group_uuid" validate:"omitempty,len=15|len=21"`
	ShiftsUUID     *string   `json:"shifts_uuid" db:"shifts_uuid" validate:"omitempty,len=15|len=21"`
	EffectiveDate  *string   `json:"effective_date" db:"effective_date" validate:"omitempty,datetime=2006-01-02"`
	OffDays        *[]string `json:"off_days" db:"off_days" validate:"omitempty,unique,dive,weekday"`
	crud.AuditPatch
}

type GeneralHoliday struct {
	UUID string      `json:"uuid" db:"uuid"`
	Name string      `json:"name" db:"name"`
	Date pgtype.Date `json:"date" db:"date"`
	crud.Audit
}

type GeneralHolidayInput struct {
	UUID string `json:"uuid" db:"uuid" validate:"required,len=15|len=21"`
	Name string `json:"name" db:"name" validate:"required,max=255"`
	Date string `json:"date" db:"date" validate:"required,datetime=2006-01-02"`
	crud.AuditInput
}

type GeneralHolidayPatch struct {
	Name *string `json:"name" db:"name" validate:"omitempty,min=1,max=255"`
	Date *string `json:"date" db:"date" validate:"omitempty,datetime=2006-01-02"`
	crud.AuditPatch
}

type SpecialHoliday struct {
	UUID     string      `json:"uuid" db:"uuid"`
	Name     string      `json:"name" db:"name"`
	FromDate pgtype.Date `json:"from_date" db:"from_date"`
	ToDate   pgtype.Date `json:"to_date" db:"to_date"`
	crud.Audit
}

type SpecialHolidayInput struct {
	UUID     string `json:"uuid" db:"uuid" validate:"required,len=15|len=21"`
	Name     string `json:"name" db:"name" validate:"required,max=255"`
	FromDate string `json:"from_date" db:"from_date" validate:"required,datetime=2006-01-02"`
	ToDate   string `json:"to_date" db:"to_date" validate:"required,datetime=2006-01-02"`
	crud.AuditInput
}

type SpecialHolidayPatch struct {
	Name     *string `json:"name" db:"name" validate:"omitempty,min=1,max=255"`
	FromDate *string `json:"from_date" db:"from_date" validate:"omitempty,datetime=2006-01-02"`
	ToDate   *string `json:"to_date" db:"to_date" validate:"omitempty,datetime=2006-01-02"`
	crud.AuditPatch
}
