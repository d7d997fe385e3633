// Package attendance stores devices and punches and pulls new punches from the device gateway.
package attendance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"hradmin/internal/domain/crud"
	"hradmin/internal/platform/apperr"
	"hradmin/internal/platform/db"
)

// punchTimeLayout is how punch times are written; punch_time is a zone-less TIMESTAMP.
const punchTimeLayout = "2006-01-02 15:04:05"

var devices = db.Table[Device]{
	Name:   "hr.device_list",
	Entity: "device",
	Key:    "uuid",
	KeyRef: "t.uuid",
	Select: `SELECT t.uuid, t.name, t.identifier, t.location, t.connection_status, t.phone_number,
      t.description, ` + crud.AuditColumns + `
    FROM hr.device_list t ` + crud.AuditJoin,
	OrderBy: "t.name ASC",
	Touch:   true,
}

var punches = db.Table[Punch]{
	Name:   "hr.punch_log",
	Entity: "punch",
	Key:    "uuid",
	KeyRef: "t.uuid",
	Select: `SELECT t.uuid, t.device_list_uuid, d.name AS device_name, t.employee_uuid, e.name AS employee_name,
      t.punch_time, t.punch_type, t.created_at
    FROM hr.punch_log t
    JOIN hr.employee e ON e.uuid = t.employee_uuid
    LEFT JOIN hr.device_list d ON d.uuid = t.device_list_uuid`,
	OrderBy: "t.punch_time DESC",
	// a replayed punch for the same device, employee and time is dropped
	OnConflict: "ON CONFLICT (device_list_uuid, employee_uuid, punch_time) DO NOTHING",
}

func NewDevices(pool db.DB) *crud.Repo[Device, DeviceInput, DevicePatch] {
	return &crud.Repo[Device, DeviceInput, DevicePatch]{
		DB:      pool,
		Table:   devices,
		Filters: map[string]string{"connection_status": "t.connection_status::text"},
	}
}

func NewPunches(pool db.DB) *crud.Repo[Punch, PunchInput, PunchPatch] {
	return &crud.Repo[Punch, PunchInput, PunchPatch]{
		DB:    pool,
		Table: punches,
		Filters: map[string]string{
			"employee_uuid":    "t.employee_uuid",
			"device_list_uuid": "t.device_list_uuid",
			"punch_type":       "t.punch_type",
			"date":             "t.punch_time::date::text",
		},
	}
}

// SyncStore is the persistence the syncer needs.
type SyncStore interface {
	Devices(ctx context.Context) ([]Device, error)
	Device(ctx context.Context, uuid string) (Device, error)
	LastPunch(ctx context.Context, deviceUUID string) (time.Time, error)
	InsertPunches(ctx context.Context, inputs []PunchInput) (int, error)
	SetConnection(ctx context.Context, deviceUUID string, online bool) error
}

type Store struct {
	DB db.DB
}

func (s *Store) Devices(ctx context.Context) ([]Device, error) {
	rows, _, err := devices.List(ctx, s.DB, db.Filter{}, db.Page{})
	return rows, err
}

func (s *Store) Device(ctx context.Context, uuid string) (Device, error) {
	return devices.Get(ctx, s.DB, uuid)
}

// LastPunch returns the latest punch recorded from a device, or the zero time when none exists.
func (s *Store) LastPunch(ctx context.Context, deviceUUID string) (time.Time, error) {
	var last *time.Time
	err := s.DB.QueryRow(ctx, `SELECT MAX(punch_time) FROM hr.punch_log WHERE device_list_uuid = $1`, deviceUUID).Scan(&last)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return time.Time{}, fmt.Errorf("last punch: %w", err)
	}
	if last == nil {
		return time.Time{}, nil
	}
	return *last, nil
}

// InsertPunches writes a batch in one transaction and returns how many rows were new.
// Punches for unknown employees are skipped.
func (s *Store) InsertPunches(ctx context.Context, inputs []PunchInput) (int, error) {
	inserted := 0
	err := db.InTx(ctx, s.DB, func(tx pgx.Tx) error {
		for _, in := range inputs {
			tag, err := tx.Exec(ctx, `
        INSERT INTO hr.punch_log (uuid, device_list_uuid, employee_uuid, punch_time, punch_type)
        SELECT $1, $2, e.uuid, $4, COALESCE($5, 'finger')
        FROM hr.employee e WHERE e.uuid = $3
        ON CONFLICT (device_list_uuid, employee_uuid, punch_time) DO NOTHING`,
				in.UUID, in.DeviceListUUID, in.EmployeeUUID, in.PunchTime, in.PunchType)
			if err != nil {
				return fmt.Errorf("insert punch: %w", apperr.FromDB(err))
			}
			inserted += int(tag.RowsAffected())
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return inserted, nil
}

func (s *Store) SetConnection(ctx context.Context, deviceUUID string, online bool) error {
	_, err := s.DB.Exec(ctx, `UPDATE hr.device_list SET connection_status = $1 WHERE uuid = $2`, online, deviceUUID)
	return err
}
