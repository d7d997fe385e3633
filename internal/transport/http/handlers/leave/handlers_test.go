package leavehandler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
)

func send(method, target, body string) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	NewHandler(nil).RegisterRoutes(r)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(method, target, strings.NewReader(body)))
	return rec
}

func TestApplyLeaveRejectsReversedSpan(t *testing.T) {
	rec := send(http.MethodPost, "/hr/apply-leave", `{
		"uuid":"lv0000000000001","leave_category_uuid":"cat000000000001","employee_uuid":"emp000000000001",
		"year":2024,"from_date":"2024-06-10","to_date":"2024-06-03"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "to_date")
}

func TestApplyLateApprovalValues(t *testing.T) {
	rec := send(http.MethodPost, "/hr/apply-late", `{
		"uuid":"lt0000000000001","employee_uuid":"emp000000000001","date":"2024-06-03","approval":"maybe"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "approval")
}

func TestApplyLeavePatchRejectsReversedSpan(t *testing.T) {
	rec := send(http.MethodPatch, "/hr/apply-leave/lv0000000000001", `{"from_date":"2024-06-10","to_date":"2024-06-03"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), `"to_date"`)
}
