package employeehandler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	"hradmin/internal/domain/employee"
	"hradmin/internal/platform/apperr"
)

func send(method, target, body string) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	NewHandler(nil, nil).RegisterRoutes(r)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(method, target, strings.NewReader(body)))
	return rec
}

func TestEmployeeValidation(t *testing.T) {
	rec := send(http.MethodPost, "/hr/employee", `{"uuid":"emp000000000001","name":"Ann","start_date":"01/06/2024"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "start_date")
}

func TestEmployeeLogTypeMustBeKnown(t *testing.T) {
	rec := send(http.MethodPost, "/hr/employee-log", `{
		"uuid":"log000000000001","employee_uuid":"emp000000000001",
		"type":"badge","type_uuid":"grp000000000001","effective_date":"2024-06-01"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), `"type"`)
}

func TestBulkIssuesAreIndexed(t *testing.T) {
	rec := send(http.MethodPost, "/hr/employee", `[{"uuid":"emp000000000001","name":"Ann"},{"uuid":"bad","name":"Bo"}]`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "[1].uuid")
}

func TestCurrentAssignmentsRoute(t *testing.T) {
	var asked time.Time
	h := NewHandler(nil, time.UTC)
	h.current = func(_ context.Context, employeeUUID string, day time.Time) (employee.Assignments, error) {
		if employeeUUID != "emp000000000001" {
			return employee.Assignments{}, apperr.NotFound("employee")
		}
		asked = day
		return employee.Assignments{EmployeeUUID: employeeUUID, Date: day.Format(time.DateOnly)}, nil
	}
	r := chi.NewRouter()
	h.RegisterRoutes(r)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/hr/employee-log/current/emp000000000001?date=2024-06-15", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC), asked)
	assert.Contains(t, rec.Body.String(), `"shift_group":null`)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/hr/employee-log/current/emp000000000001?date=15/06/2024", nil))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/hr/employee-log/current/emp000000000009", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
