package payrollhandler

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"hradmin/internal/domain/payroll"
	"hradmin/internal/platform/db"
	"hradmin/internal/transport/http/api"
	crudhandler "hradmin/internal/transport/http/handlers/crud"
	"hradmin/internal/transport/http/middleware"
	"hradmin/internal/transport/http/shared"
)

type Summaries interface {
	SalarySummary(ctx context.Context, q payroll.SummaryQuery) ([]payroll.Summary, error)
	EmployeeSummary(ctx context.Context, employeeUUID string, year int, month time.Month) (payroll.Summary, error)
}

type Handler struct {
	Service     Summaries
	increments  *crudhandler.Handler[payroll.Increment, payroll.IncrementInput, payroll.IncrementPatch]
	loans       *crudhandler.Handler[payroll.Loan, payroll.LoanInput, payroll.LoanPatch]
	loanEntries *crudhandler.Handler[payroll.LoanEntry, payroll.LoanEntryInput, payroll.LoanEntryPatch]
}

func NewHandler(pool db.DB, service Summaries) *Handler {
	byEmployee := crudhandler.Parent{Segment: "employee", Param: "employee_uuid", Filter: "employee_uuid"}
	return &Handler{
		Service:     service,
		increments:  crudhandler.FromRepo(payroll.NewIncrements(pool), "salary increment", byEmployee),
		loans:       crudhandler.FromRepo(payroll.NewLoans(pool), "loan", byEmployee),
		loanEntries: crudhandler.FromRepo(payroll.NewLoanEntries(pool), "loan entry", crudhandler.Parent{Segment: "loan", Param: "loan_uuid", Filter: "loan_uuid"}),
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	h.increments.RegisterRoutes(r, "/hr/salary-increment")
	h.loans.RegisterRoutes(r, "/hr/loan")
	h.loanEntries.RegisterRoutes(r, "/hr/loan-entry")
	r.Route("/hr/salary-entry/summary", func(r chi.Router) {
		r.Get("/", h.handleSummary)
		r.Get("/{employee_uuid}/payslip.pdf", h.handlePayslip)
	})
}

func (h *Handler) handleSummary(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	year, month, err := shared.YearMonth(r, true)
	if err != nil {
		api.FailError(w, err, requestID)
		return
	}
	summaries, err := h.Service.SalarySummary(r.Context(), payroll.SummaryQuery{
		Year:         year,
		Month:        month,
		EmployeeUUID: r.URL.Query().Get("employee_uuid"),
	})
	if err != nil {
		api.FailError(w, err, requestID)
		return
	}
	api.Success(w, summaries)
}

func (h *Handler) handlePayslip(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	year, month, err := shared.YearMonth(r, true)
	if err != nil {
		api.FailError(w, err, requestID)
		return
	}
	summary, err := h.Service.EmployeeSummary(r.Context(), chi.URLParam(r, "employee_uuid"), year, month)
	if err != nil {
		api.FailError(w, err, requestID)
		return
	}
	pdf, err := payroll.RenderPayslip(summary)
	if err != nil {
		api.FailError(w, fmt.Errorf("render payslip: %w", err), requestID)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", payroll.PayslipFilename(summary)))
	w.Header().Set("Content-Length", strconv.Itoa(len(pdf)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdf)
}
