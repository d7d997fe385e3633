package crudhandler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hradmin/internal/domain/crud"
	"hradmin/internal/domain/users"
	"hradmin/internal/platform/apperr"
	"hradmin/internal/transport/http/middleware"
)

type row struct {
	UUID           string `json:"uuid"`
	Name           string `json:"name"`
	DepartmentUUID string `json:"department_uuid"`
}

type input struct {
	UUID string `json:"uuid" validate:"required,len=15|len=21"`
	Name string `json:"name" validate:"required"`
	crud.AuditInput
}

type patch struct {
	Name *string `json:"name" validate:"omitempty,min=1"`
}

type memoryResource struct {
	rows      []row
	created   []input
	lastQuery crud.ListQuery
}

func (m *memoryResource) List(_ context.Context, q crud.ListQuery) ([]row, int, error) {
	m.lastQuery = q
	out := []row{}
	for _, r := range m.rows {
		if dep := q.Filters["department_uuid"]; dep != "" && r.DepartmentUUID != dep {
			continue
		}
		out = append(out, r)
	}
	total := len(out)
	if q.Page.Limit > 0 {
		end := min(q.Page.Offset+q.Page.Limit, len(out))
		out = out[min(q.Page.Offset, len(out)):end]
	}
	return out, total, nil
}

func (m *memoryResource) Get(_ context.Context, id string) (row, error) {
	for _, r := range m.rows {
		if r.UUID == id {
			return r, nil
		}
	}
	return row{}, apperr.NotFound("employee")
}

func (m *memoryResource) Create(_ context.Context, inputs []input) error {
	m.created = append(m.created, inputs...)
	return nil
}

func (m *memoryResource) Patch(_ context.Context, id string, p patch) error {
	if p.Name == nil {
		return apperr.ErrEmptyPatch
	}
	_, err := m.Get(context.Background(), id)
	return err
}

func (m *memoryResource) Remove(_ context.Context, id string) error {
	_, err := m.Get(context.Background(), id)
	return err
}

func newRouter(res *memoryResource) http.Handler {
	r := chi.NewRouter()
	New[row, input, patch](res, "employee", Parent{Segment: "department", Param: "department_uuid", Filter: "department_uuid"}).
		RegisterRoutes(r, "/hr/employee")
	return r
}

func serve(t *testing.T, h http.Handler, method, target, body string, ctx ...context.Context) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if len(ctx) > 0 {
		req = req.WithContext(ctx[0])
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func seeded() *memoryResource {
	return &memoryResource{rows: []row{
		{UUID: "emp000000000001", Name: "Ann", DepartmentUUID: "dep000000000001"},
		{UUID: "emp000000000002", Name: "Bob", DepartmentUUID: "dep000000000002"},
		{UUID: "emp000000000003", Name: "Cid", DepartmentUUID: "dep000000000001"},
	}}
}

func TestListReturnsRawRowsWithoutPage(t *testing.T) {
	rec := serve(t, newRouter(seeded()), http.MethodGet, "/hr/employee", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var rows []row
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rows))
	assert.Len(t, rows, 3)
}

func TestListEmptyIsArray(t *testing.T) {
	rec := serve(t, newRouter(&memoryResource{}), http.MethodGet, "/hr/employee", "")
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestListPaginated(t *testing.T) {
	res := seeded()
	rec := serve(t, newRouter(res), http.MethodGet, "/hr/employee?page=2&limit=2&status=true", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{
		"data": [{"uuid":"emp000000000003","name":"Cid","department_uuid":"dep000000000001"}],
		"pagination": {"total_record":3,"current_page":2,"total_page":2,"next_page":null,"prev_page":1}
	}`, rec.Body.String())
	assert.Equal(t, "true", res.lastQuery.Filters["status"])
	assert.NotContains(t, res.lastQuery.Filters, "page")
}

func TestListByParent(t *testing.T) {
	rec := serve(t, newRouter(seeded()), http.MethodGet, "/hr/employee/by/department/dep000000000001", "")
	var rows []row
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rows))
	assert.Len(t, rows, 2)
}

func TestGetMissingIs404(t *testing.T) {
	rec := serve(t, newRouter(seeded()), http.MethodGet, "/hr/employee/missing00000001", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateSingleAndBulk(t *testing.T) {
	res := &memoryResource{}
	h := newRouter(res)
	ctx := middleware.WithUser(context.Background(), users.Principal{UserUUID: "usr000000000001"})

	rec := serve(t, h, http.MethodPost, "/hr/employee", `{"uuid":"emp000000000001","name":"Ann"}`, ctx)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"toastType":"create","message":"employee created"}`, rec.Body.String())
	require.NotNil(t, res.created[0].CreatedBy)
	assert.Equal(t, "usr000000000001", *res.created[0].CreatedBy)

	rec = serve(t, h, http.MethodPost, "/hr/employee", `[{"uuid":"emp000000000002","name":"Bob"},{"uuid":"emp000000000003","name":"Cid"}]`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), "2 employee records created")
	assert.Len(t, res.created, 3)
	assert.Nil(t, res.created[1].CreatedBy)
}

func TestCreateValidation(t *testing.T) {
	res := &memoryResource{}
	rec := serve(t, newRouter(res), http.MethodPost, "/hr/employee", `[{"uuid":"emp000000000002","name":"Bob"},{"uuid":"short"}]`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), `"[1].uuid"`)
	assert.Contains(t, rec.Body.String(), `"[1].name"`)
	assert.Empty(t, res.created, "a failing item rejects the whole batch")
}

func TestPatchAndDelete(t *testing.T) {
	h := newRouter(seeded())

	rec := serve(t, h, http.MethodPatch, "/hr/employee/emp000000000001", `{"name":"Anne"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"toastType":"update","message":"employee updated"}`, rec.Body.String())

	rec = serve(t, h, http.MethodPatch, "/hr/employee/emp000000000001", `{"unknown":1}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = serve(t, h, http.MethodPatch, "/hr/employee/missing00000001", `{"name":"X"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = serve(t, h, http.MethodDelete, "/hr/employee/emp000000000002", "")
	assert.JSONEq(t, `{"toastType":"delete","message":"employee deleted"}`, rec.Body.String())

	rec = serve(t, h, http.MethodDelete, "/hr/employee/missing00000001", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
