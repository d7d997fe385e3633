package attendancehandler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hradmin/internal/domain/attendance"
	"hradmin/internal/platform/apperr"
	"hradmin/internal/platform/jobs"
)

type fakeSyncer struct {
	calls []string
}

func (f *fakeSyncer) SyncDevice(_ context.Context, deviceUUID string) (attendance.SyncResult, error) {
	f.calls = append(f.calls, deviceUUID)
	switch deviceUUID {
	case "offline00000001":
		return attendance.SyncResult{DeviceUUID: deviceUUID}, errors.Join(apperr.ErrUpstream, errors.New("connection refused"))
	case "missing00000001":
		return attendance.SyncResult{DeviceUUID: deviceUUID}, apperr.NotFound("device")
	}
	return attendance.SyncResult{DeviceUUID: deviceUUID, Identifier: "gate-1", Fetched: 3, Inserted: 2}, nil
}

type fakeQueue struct {
	full   bool
	queued []string
}

func (q *fakeQueue) Enqueue(jobType, key string, _ func(context.Context) (any, error)) bool {
	if q.full {
		return false
	}
	q.queued = append(q.queued, jobType+":"+key)
	return true
}

func (q *fakeQueue) RunNow(ctx context.Context, _, _ string, run func(context.Context) (any, error)) (any, error) {
	return run(ctx)
}

func newRouter(syncer *fakeSyncer, queue *fakeQueue) http.Handler {
	r := chi.NewRouter()
	NewHandler(nil, syncer, queue).RegisterRoutes(r)
	return r
}

func post(h http.Handler, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, target, nil))
	return rec
}

func TestSyncQueuesDevice(t *testing.T) {
	syncer := &fakeSyncer{}
	queue := &fakeQueue{}
	rec := post(newRouter(syncer, queue), "/hr/device-list/dev000000000001/sync")

	require.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, []string{jobs.JobDeviceSync + ":dev000000000001"}, queue.queued)
	assert.Empty(t, syncer.calls, "queued pulls run on the worker")
}

func TestSyncQueueFull(t *testing.T) {
	rec := post(newRouter(&fakeSyncer{}, &fakeQueue{full: true}), "/hr/device-list/dev000000000001/sync")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestSyncInline(t *testing.T) {
	h := newRouter(&fakeSyncer{}, &fakeQueue{})

	rec := post(h, "/hr/device-list/dev000000000001/sync?wait=true")
	require.Equal(t, http.StatusOK, rec.Code)
	var result attendance.SyncResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, 2, result.Inserted)

	assert.Equal(t, http.StatusPreconditionFailed, post(h, "/hr/device-list/offline00000001/sync?wait=true").Code)
	assert.Equal(t, http.StatusNotFound, post(h, "/hr/device-list/missing00000001/sync?wait=true").Code)
}
