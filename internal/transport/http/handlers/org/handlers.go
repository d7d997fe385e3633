package orghandler

import (
	"github.com/go-chi/chi/v5"

	"hradmin/internal/domain/org"
	"hradmin/internal/platform/db"
	crudhandler "hradmin/internal/transport/http/handlers/crud"
)

type Handler struct {
	departments  *crudhandler.Handler[org.Department, org.DepartmentInput, org.DepartmentPatch]
	designations *crudhandler.Handler[org.Designation, org.DesignationInput, org.DesignationPatch]
}

func NewHandler(pool db.DB) *Handler {
	return &Handler{
		departments:  crudhandler.FromRepo(org.NewDepartments(pool), "department"),
		designations: crudhandler.FromRepo(org.NewDesignations(pool), "designation"),
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	h.departments.RegisterRoutes(r, "/hr/department")
	h.designations.RegisterRoutes(r, "/hr/designation")
}
