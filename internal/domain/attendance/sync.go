package attendance

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"hradmin/internal/domain/crud"
	"hradmin/internal/platform/device"
)

const (
	SyncOK     = "ok"
	SyncFailed = "failed"
)

// Gateway is the slice of the device client the syncer calls.
type Gateway interface {
	Punches(ctx context.Context, identifier string, since time.Time) ([]device.Punch, error)
}

type SyncRecorder interface {
	RecordSync(result string, inserted int)
}

// Syncer pulls punches recorded since the last stored punch of each device.
type Syncer struct {
	Store    SyncStore
	Gateway  Gateway
	Metrics  SyncRecorder
	Location *time.Location
}

func NewSyncer(store SyncStore, gateway Gateway, metrics SyncRecorder, loc *time.Location) *Syncer {
	if loc == nil {
		loc = time.UTC
	}
	return &Syncer{Store: store, Gateway: gateway, Metrics: metrics, Location: loc}
}

// SyncDevice pulls one device. A gateway failure marks the device offline and is returned.
func (s *Syncer) SyncDevice(ctx context.Context, deviceUUID string) (SyncResult, error) {
	dev, err := s.Store.Device(ctx, deviceUUID)
	if err != nil {
		return SyncResult{DeviceUUID: deviceUUID}, err
	}
	return s.sync(ctx, dev)
}

// SyncAll pulls every device in turn. One device failing does not stop the others.
func (s *Syncer) SyncAll(ctx context.Context) ([]SyncResult, error) {
	list, err := s.Store.Devices(ctx)
	if err != nil {
		return nil, err
	}
	results := make([]SyncResult, 0, len(list))
	for _, dev := range list {
		if ctx.Err() != nil {
			return results, ctx.Err()
		}
		result, err := s.sync(ctx, dev)
		if err != nil {
			slog.Warn("device sync failed", "device", dev.Identifier, "err", err)
		}
		results = append(results, result)
	}
	return results, nil
}

func (s *Syncer) sync(ctx context.Context, dev Device) (SyncResult, error) {
	result := SyncResult{DeviceUUID: dev.UUID, Identifier: dev.Identifier}

	last, err := s.Store.LastPunch(ctx, dev.UUID)
	if err != nil {
		return s.fail(result, err)
	}
	var since time.Time
	if !last.IsZero() {
		since = wallClock(last, s.Location)
	}

	pulled, err := s.Gateway.Punches(ctx, dev.Identifier, since)
	if err != nil {
		s.setConnection(ctx, dev, false)
		return s.fail(result, err)
	}
	s.setConnection(ctx, dev, true)
	result.Fetched = len(pulled)

	inputs := make([]PunchInput, 0, len(pulled))
	for _, p := range pulled {
		in, ok := s.toInput(dev, p)
		if !ok {
			continue
		}
		inputs = append(inputs, in)
	}
	if len(inputs) > 0 {
		result.Inserted, err = s.Store.InsertPunches(ctx, inputs)
		if err != nil {
			return s.fail(result, err)
		}
	}
	if s.Metrics != nil {
		s.Metrics.RecordSync(SyncOK, result.Inserted)
	}
	slog.Info("device synced", "device", dev.Identifier, "fetched", result.Fetched, "inserted", result.Inserted)
	return result, nil
}

func (s *Syncer) toInput(dev Device, p device.Punch) (PunchInput, bool) {
	if p.EmployeeUUID == "" || p.PunchTime.IsZero() {
		return PunchInput{}, false
	}
	deviceUUID := dev.UUID
	in := PunchInput{
		UUID:           crud.NewID(),
		DeviceListUUID: &deviceUUID,
		EmployeeUUID:   p.EmployeeUUID,
		PunchTime:      p.PunchTime.In(s.Location).Format(punchTimeLayout),
	}
	if validPunchType(p.PunchType) {
		punchType := p.PunchType
		in.PunchType = &punchType
	}
	return in, true
}

func (s *Syncer) setConnection(ctx context.Context, dev Device, online bool) {
	if dev.ConnectionStatus == online {
		return
	}
	if err := s.Store.SetConnection(ctx, dev.UUID, online); err != nil {
		slog.Warn("device status update failed", "device", dev.Identifier, "err", err)
	}
}

func (s *Syncer) fail(result SyncResult, err error) (SyncResult, error) {
	if s.Metrics != nil {
		s.Metrics.RecordSync(SyncFailed, 0)
	}
	if !errors.Is(err, context.Canceled) {
		result.Error = err.Error()
	}
	return result, err
}

// wallClock reads a zone-less timestamp as a wall time in loc.
func wallClock(t time.Time, loc *time.Location) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), loc)
}

func validPunchType(kind string) bool {
	switch kind {
	case PunchFace, PunchFinger, PunchCard, PunchPassword, PunchManual:
		return true
	}
	return false
}
