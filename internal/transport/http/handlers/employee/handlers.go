package employeehandler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"hradmin/internal/domain/effective"
	"hradmin/internal/domain/employee"
	"hradmin/internal/platform/db"
	"hradmin/internal/transport/http/api"
	crudhandler "hradmin/internal/transport/http/handlers/crud"
	"hradmin/internal/transport/http/middleware"
	"hradmin/internal/transport/http/shared"
)

type Handler struct {
	employees *crudhandler.Handler[employee.Employee, employee.Input, employee.Patch]
	logs      *crudhandler.Handler[employee.Log, employee.LogInput, employee.LogPatch]
	current   func(ctx context.Context, employeeUUID string, day time.Time) (employee.Assignments, error)
	location  *time.Location
}

func NewHandler(pool db.DB, loc *time.Location) *Handler {
	if loc == nil {
		loc = time.UTC
	}
	return &Handler{
		employees: crudhandler.FromRepo(employee.NewEmployees(pool), "employee",
			crudhandler.Parent{Segment: "department", Param: "department_uuid", Filter: "department_uuid"},
			crudhandler.Parent{Segment: "designation", Param: "designation_uuid", Filter: "designation_uuid"}),
		logs: crudhandler.FromRepo(employee.NewLogs(pool), "employee log",
			crudhandler.Parent{Segment: "employee", Param: "employee_uuid", Filter: "employee_uuid"}),
		current: func(ctx context.Context, employeeUUID string, day time.Time) (employee.Assignments, error) {
			return employee.CurrentAssignments(ctx, pool, employeeUUID, day)
		},
		location: loc,
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	h.employees.RegisterRoutes(r, "/hr/employee")
	h.logs.RegisterRoutes(r, "/hr/employee-log", func(r chi.Router) {
		r.Get("/current/{employee_uuid}", h.handleCurrent)
	})
}

// handleCurrent answers which shift group and leave policy apply on ?date (default today).
func (h *Handler) handleCurrent(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	v := shared.NewValidator()
	day := effective.Day(time.Now().In(h.location))
	if raw := r.URL.Query().Get("date"); raw != "" {
		if parsed, ok := v.Date("date", raw); ok {
			day = parsed
		}
	}
	if v.Reject(w, requestID) {
		return
	}

	out, err := h.current(r.Context(), chi.URLParam(r, "employee_uuid"), day)
	if err != nil {
		api.FailError(w, err, requestID)
		return
	}
	api.Success(w, out)
}
