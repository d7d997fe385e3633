package rosterhandler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hradmin/internal/domain/roster"
	"hradmin/internal/platform/apperr"
)

type fakeCalendars struct {
	window      roster.Window
	invalidated int
}

func (f *fakeCalendars) Calendar(_ context.Context, employeeUUID string, year int, month time.Month) (roster.Calendar, error) {
	if employeeUUID != "emp000000000001" {
		return roster.Calendar{}, apperr.NotFound("employee")
	}
	return roster.Calendar{Roster: []roster.CalendarDay{{Date: "2024-06-01", Weekday: "Saturday"}}}, nil
}

func (f *fakeCalendars) Holidays(_ context.Context, w roster.Window) ([]roster.HolidayEntry, error) {
	f.window = w
	return []roster.HolidayEntry{{UUID: "hol000000000001", Name: "Eid", Type: "special", FromDate: "2024-06-16", ToDate: "2024-06-18", Days: 3}}, nil
}

func (f *fakeCalendars) InvalidateHolidays(context.Context) { f.invalidated++ }

func newRouter(svc *fakeCalendars) http.Handler {
	r := chi.NewRouter()
	NewHandler(nil, svc).RegisterRoutes(r)
	return r
}

func get(h http.Handler, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestCalendarRoute(t *testing.T) {
	h := newRouter(&fakeCalendars{})

	rec := get(h, "/hr/roster/calendar/emp000000000001?year=2024&month=6")
	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body, "roster")
	assert.Contains(t, body, "special_holidays")
	assert.Contains(t, body, "general_holidays")

	assert.Equal(t, http.StatusNotFound, get(h, "/hr/roster/calendar/missing00000001?year=2024&month=6").Code)
	assert.Equal(t, http.StatusUnprocessableEntity, get(h, "/hr/roster/calendar/emp000000000001?year=2024").Code)
}

func TestHolidaysRouteWindow(t *testing.T) {
	svc := &fakeCalendars{}
	h := newRouter(svc)

	rec := get(h, "/hr/holidays?year=2024&month=6")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, roster.MonthWindow(2024, time.June), svc.window)
	assert.Contains(t, rec.Body.String(), `"type":"special"`)

	get(h, "/hr/holidays?year=2024")
	assert.Equal(t, roster.YearWindow(2024), svc.window)

	assert.Equal(t, http.StatusUnprocessableEntity, get(h, "/hr/holidays").Code)
}

func TestSpecialHolidayPatchRejectsReversedSpan(t *testing.T) {
	svc := &fakeCalendars{}
	h := newRouter(svc)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, "/hr/special-holiday/hol000000000001",
		strings.NewReader(`{"from_date":"2026-05-10","to_date":"2026-05-01"}`)))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), `"to_date"`)
	assert.Zero(t, svc.invalidated, "a rejected patch leaves the cache alone")
}
