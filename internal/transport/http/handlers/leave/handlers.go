package leavehandler

import (
	"github.com/go-chi/chi/v5"

	"hradmin/internal/domain/leave"
	"hradmin/internal/platform/db"
	crudhandler "hradmin/internal/transport/http/handlers/crud"
)

var byEmployee = crudhandler.Parent{Segment: "employee", Param: "employee_uuid", Filter: "employee_uuid"}

type Handler struct {
	categories   *crudhandler.Handler[leave.Category, leave.CategoryInput, leave.CategoryPatch]
	policies     *crudhandler.Handler[leave.Policy, leave.PolicyInput, leave.PolicyPatch]
	applications *crudhandler.Handler[leave.Application, leave.ApplicationInput, leave.ApplicationPatch]
	lates        *crudhandler.Handler[leave.LateApplication, leave.LateApplicationInput, leave.LateApplicationPatch]
}

func NewHandler(pool db.DB) *Handler {
	return &Handler{
		categories:   crudhandler.FromRepo(leave.NewCategories(pool), "leave category"),
		policies:     crudhandler.FromRepo(leave.NewPolicies(pool), "leave policy"),
		applications: crudhandler.FromRepo(leave.NewApplications(pool), "leave application", byEmployee),
		lates:        crudhandler.FromRepo(leave.NewLateApplications(pool), "late application", byEmployee),
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	h.categories.RegisterRoutes(r, "/hr/leave-category")
	h.policies.RegisterRoutes(r, "/hr/leave-policy")
	h.applications.RegisterRoutes(r, "/hr/apply-leave")
	h.lates.RegisterRoutes(r, "/hr/apply-late")
}
