package attendancehandler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"hradmin/internal/domain/attendance"
	"hradmin/internal/platform/db"
	"hradmin/internal/platform/jobs"
	"hradmin/internal/transport/http/api"
	crudhandler "hradmin/internal/transport/http/handlers/crud"
	"hradmin/internal/transport/http/middleware"
)

type DeviceSyncer interface {
	SyncDevice(ctx context.Context, deviceUUID string) (attendance.SyncResult, error)
}

// Queue runs sync work in the background or inline.
type Queue interface {
	Enqueue(jobType, key string, run func(context.Context) (any, error)) bool
	RunNow(ctx context.Context, jobType, key string, run func(context.Context) (any, error)) (any, error)
}

type Handler struct {
	Syncer  DeviceSyncer
	Queue   Queue
	devices *crudhandler.Handler[attendance.Device, attendance.DeviceInput, attendance.DevicePatch]
	punches *crudhandler.Handler[attendance.Punch, attendance.PunchInput, attendance.PunchPatch]
}

func NewHandler(pool db.DB, syncer DeviceSyncer, queue Queue) *Handler {
	return &Handler{
		Syncer:  syncer,
		Queue:   queue,
		devices: crudhandler.FromRepo(attendance.NewDevices(pool), "device"),
		punches: crudhandler.FromRepo(attendance.NewPunches(pool), "punch log",
			crudhandler.Parent{Segment: "employee", Param: "employee_uuid", Filter: "employee_uuid"}),
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	h.devices.RegisterRoutes(r, "/hr/device-list", func(r chi.Router) {
		r.Post("/{uuid}/sync", h.handleSync)
	})
	h.punches.RegisterRoutes(r, "/hr/punch-log")
}

// handleSync queues a pull of one device. With ?wait=true the pull runs inline and its
// result is returned.
func (h *Handler) handleSync(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	deviceUUID := chi.URLParam(r, "uuid")
	run := func(ctx context.Context) (any, error) {
		return h.Syncer.SyncDevice(ctx, deviceUUID)
	}

	if wait, _ := strconv.ParseBool(r.URL.Query().Get("wait")); wait {
		result, err := h.Queue.RunNow(r.Context(), jobs.JobDeviceSync, deviceUUID, run)
		if err != nil {
			api.FailError(w, err, requestID)
			return
		}
		api.Success(w, result)
		return
	}

	if !h.Queue.Enqueue(jobs.JobDeviceSync, deviceUUID, run) {
		api.Fail(w, http.StatusServiceUnavailable, "queue_full", "sync queue is full, try again later", requestID)
		return
	}
	api.WriteJSON(w, http.StatusAccepted, api.Toast{ToastType: api.ToastUpdate, Message: "device sync queued"})
}
