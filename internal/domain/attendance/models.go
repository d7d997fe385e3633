package attendance

import (
	"time"

	"hradmin/internal/domain/crud"
)

const (
	PunchFace     = "face"
	PunchFinger   = "finger"
	PunchCard     = "card"
	PunchPassword = "password"
	PunchManual   = "manual"
)

type Device struct {
	UUID             string  `json:"uuid" db:"uuid"`
	Name             string  `json:"name" db:"name"`
	Identifier       string  `json:"identifier" db:"identifier"`
	Location         *string `json:"location" db:"location"`
	ConnectionStatus bool    `json:"connection_status" db:"connection_status"`
	PhoneNumber      *string `json:"phone_number" db:"phone_number"`
	Description      *string `json:"description" db:"description"`
	crud.Audit
}

type DeviceInput struct {
	UUID        string  `json:"uuid" db:"uuid" validate:"required,len=15|len=21"`
	Name        string  `json:"name" db:"name" validate:"required,max=255"`
	Identifier  string  `json:"identifier" db:"identifier" validate:"required,max=255"`
	Location    *string `json:"location" db:"location"`
	PhoneNumber *string `json:"phone_number" db:"phone_number" validate:"omitempty,max=32"`
	Description *string `json:"description" db:"description"`
	crud.AuditInput
}

type DevicePatch struct {
	Name        *string `json:"name" db:"name" validate:"omitempty,min=1,max=255"`
	Identifier  *string `json:"identifier" db:"identifier" validate:"omitempty,min=1,max=255"`
	Location    *string `json:"location" db:"location"`
	PhoneNumber *string `json:"phone_number" db:"phone_number" validate:"omitempty,max=32"`
	Description *string `json:"description" db:"description"`
	crud.AuditPatch
}

// Punch is one raw attendance event. Punches carry no audit columns besides created_at.
type Punch struct {
	UUID           string    `json:"uuid" db:"uuid"`
	DeviceListUUID *string   `json:"device_list_uuid" db:"device_list_uuid"`
	DeviceName     *string   `json:"device_name" db:"device_name"`
	EmployeeUUID   string    `json:"employee_uuid" db:"employee_uuid"`
	EmployeeName   *string   `json:"employee_name" db:"employee_name"`
	PunchTime      time.Time `json:"punch_time" db:"punch_time"`
	PunchType      string    `json:"punch_type" db:"punch_type"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}

type PunchInput struct {
	UUID           string  `json:"uuid" db:"uuid" validate:"required,len=15|len=21"`
	DeviceListUUID *string `json:"device_list_uuid" db:"device_list_uuid" validate:"omitempty,len=15|len=21"`
	EmployeeUUID   string  `json:"employee_uuid" db:"employee_uuid" validate:"required,len=15|len=21"`
	PunchTime      string  `json:"punch_time" db:"punch_time" validate:"required,datetime=2006-01-02 15:04:05"`
	PunchType      *string `json:"punch_type" db:"punch_type" validate:"omitempty,oneof=face finger card password manual"`
}

type PunchPatch struct {
	PunchTime *string `json:"punch_time" db:"punch_time" validate:"omitempty,datetime=2006-01-02 15:04:05"`
	PunchType *string `json:"punch_type" db:"punch_type" validate:"omitempty,oneof=face finger card password manual"`
}

// SyncResult reports one device pull.
type SyncResult struct {
	DeviceUUID string `json:"device_uuid"`
	Identifier string `json:"identifier"`
	Fetched    int    `json:"fetched"`
	Inserted   int    `json:"inserted"`
	Error      string `json:"error,omitempty"`
}
