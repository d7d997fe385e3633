package rosterhandler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"hradmin/internal/domain/crud"
	"hradmin/internal/domain/roster"
	"hradmin/internal/platform/db"
	"hradmin/internal/transport/http/api"
	crudhandler "hradmin/internal/transport/http/handlers/crud"
	"hradmin/internal/transport/http/middleware"
	"hradmin/internal/transport/http/shared"
)

// Calendars is the read side served by roster.Service.
type Calendars interface {
	Calendar(ctx context.Context, employeeUUID string, year int, month time.Month) (roster.Calendar, error)
	Holidays(ctx context.Context, w roster.Window) ([]roster.HolidayEntry, error)
	InvalidateHolidays(ctx context.Context)
}

type Handler struct {
	Service         Calendars
	shiftGroups     *crudhandler.Handler[roster.ShiftGroup, roster.ShiftGroupInput, roster.ShiftGroupPatch]
	shifts          *crudhandler.Handler[roster.Shift, roster.ShiftInput, roster.ShiftPatch]
	rosters         *crudhandler.Handler[roster.Roster, roster.RosterInput, roster.RosterPatch]
	generalHolidays *crudhandler.Handler[roster.GeneralHoliday, roster.GeneralHolidayInput, roster.GeneralHolidayPatch]
	specialHolidays *crudhandler.Handler[roster.SpecialHoliday, roster.SpecialHolidayInput, roster.SpecialHolidayPatch]
}

// NewHandler wires the roster collections. Holiday writes drop the cached holiday lists.
func NewHandler(pool db.DB, service Calendars) *Handler {
	general := crud.Observed[roster.GeneralHoliday, roster.GeneralHolidayInput, roster.GeneralHolidayPatch]{
		Resource: roster.NewGeneralHolidays(pool),
		OnWrite:  service.InvalidateHolidays,
	}
	special := crud.Observed[roster.SpecialHoliday, roster.SpecialHolidayInput, roster.SpecialHolidayPatch]{
		Resource: roster.NewSpecialHolidays(pool),
		OnWrite:  service.InvalidateHolidays,
	}
	return &Handler{
		Service:         service,
		shiftGroups:     crudhandler.FromRepo(roster.NewShiftGroups(pool), "shift group"),
		shifts:          crudhandler.FromRepo(roster.NewShifts(pool), "shift"),
		rosters:         crudhandler.FromRepo(roster.NewRosters(pool), "roster", crudhandler.Parent{Segment: "shift-group", Param: "shift_group_uuid", Filter: "shift_group_uuid"}),
		generalHolidays: crudhandler.New[roster.GeneralHoliday, roster.GeneralHolidayInput, roster.GeneralHolidayPatch](general, "general holiday"),
		specialHolidays: crudhandler.New[roster.SpecialHoliday, roster.SpecialHolidayInput, roster.SpecialHolidayPatch](special, "special holiday"),
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	h.shiftGroups.RegisterRoutes(r, "/hr/shift-group")
	h.shifts.RegisterRoutes(r, "/hr/shifts")
	h.rosters.RegisterRoutes(r, "/hr/roster", func(r chi.Router) {
		r.Get("/calendar/{employee_uuid}", h.handleCalendar)
	})
	h.generalHolidays.RegisterRoutes(r, "/hr/general-holiday")
	h.specialHolidays.RegisterRoutes(r, "/hr/special-holiday")
	r.Get("/hr/holidays", h.handleHolidays)
}

func (h *Handler) handleCalendar(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	year, month, err := shared.YearMonth(r, true)
	if err != nil {
		api.FailError(w, err, requestID)
		return
	}
	calendar, err := h.Service.Calendar(r.Context(), chi.URLParam(r, "employee_uuid"), year, month)
	if err != nil {
		api.FailError(w, err, requestID)
		return
	}
	api.Success(w, calendar)
}

func (h *Handler) handleHolidays(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	year, month, err := shared.YearMonth(r, false)
	if err != nil {
		api.FailError(w, err, requestID)
		return
	}
	window := roster.YearWindow(year)
	if month != 0 {
		window = roster.MonthWindow(year, month)
	}
	holidays, err := h.Service.Holidays(r.Context(), window)
	if err != nil {
		api.FailError(w, err, requestID)
		return
	}
	api.Success(w, holidays)
}
