package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countingHandler(calls *int) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*calls++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"toastType":"create","message":"loan created"}`))
	})
}

func idemRequest(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/hr/loan", strings.NewReader(body))
	req.Header.Set(IdempotencyHeader, "k-1")
	return req
}

func marker(t *testing.T, resp StoredResponse) string {
	t.Helper()
	raw, err := json.Marshal(resp)
	require.NoError(t, err)
	return string(raw)
}

func TestIdempotencyStoresFirstResponse(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	store := NewIdempotencyStore(rdb, time.Hour)
	key := IdempotencyKey("anonymous", "/api/v1/hr/loan", "k-1")
	body := `{"uuid":"ln0000000000001"}`
	hash := RequestHash([]byte(body))

	mock.ExpectSetNX(key, marker(t, StoredResponse{Hash: hash}), 5*time.Minute).SetVal(true)
	mock.ExpectSet(key, marker(t, StoredResponse{
		Hash:   hash,
		Status: http.StatusCreated,
		Body:   []byte(`{"toastType":"create","message":"loan created"}`),
	}), time.Hour).SetVal("OK")

	calls := 0
	rec := httptest.NewRecorder()
	Idempotency(store)(countingHandler(&calls)).ServeHTTP(rec, idemRequest(body))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, 1, calls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIdempotencyReplaysAndDetectsConflict(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	store := NewIdempotencyStore(rdb, time.Hour)
	key := IdempotencyKey("anonymous", "/api/v1/hr/loan", "k-1")
	body := `{"uuid":"ln0000000000001"}`
	other := `{"uuid":"ln0000000000002"}`
	stored := marker(t, StoredResponse{Hash: RequestHash([]byte(body)), Status: http.StatusCreated, Body: []byte(`{"message":"first"}`)})

	mock.ExpectSetNX(key, marker(t, StoredResponse{Hash: RequestHash([]byte(body))}), 5*time.Minute).SetVal(false)
	mock.ExpectGet(key).SetVal(stored)
	mock.ExpectSetNX(key, marker(t, StoredResponse{Hash: RequestHash([]byte(other))}), 5*time.Minute).SetVal(false)
	mock.ExpectGet(key).SetVal(stored)

	calls := 0
	h := Idempotency(store)(countingHandler(&calls))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, idemRequest(body))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, `{"message":"first"}`, rec.Body.String())
	assert.Equal(t, "true", rec.Header().Get("Idempotent-Replayed"))

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, idemRequest(other))
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "idempotency_conflict")

	assert.Zero(t, calls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIdempotencyRejectsDuplicateWhileFirstRuns(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	store := NewIdempotencyStore(rdb, time.Hour)
	key := IdempotencyKey("anonymous", "/api/v1/hr/loan", "k-1")
	body := `{"uuid":"ln0000000000001"}`
	hash := RequestHash([]byte(body))
	pending := marker(t, StoredResponse{Hash: hash})

	mock.ExpectSetNX(key, pending, 5*time.Minute).SetVal(true)
	mock.ExpectSetNX(key, pending, 5*time.Minute).SetVal(false)
	mock.ExpectGet(key).SetVal(pending)
	mock.ExpectSet(key, marker(t, StoredResponse{
		Hash:   hash,
		Status: http.StatusCreated,
		Body:   []byte(`{"toastType":"create","message":"loan created"}`),
	}), time.Hour).SetVal("OK")

	calls := 0
	var duplicate *httptest.ResponseRecorder
	var h http.Handler
	h = Idempotency(store)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		duplicate = httptest.NewRecorder()
		h.ServeHTTP(duplicate, idemRequest(body))
		countingHandler(&calls).ServeHTTP(w, r)
	}))

	first := httptest.NewRecorder()
	h.ServeHTTP(first, idemRequest(body))

	assert.Equal(t, http.StatusCreated, first.Code)
	assert.Equal(t, 1, calls, "the duplicate never reaches the handler")
	require.NotNil(t, duplicate)
	assert.Equal(t, http.StatusConflict, duplicate.Code)
	assert.Contains(t, duplicate.Body.String(), "idempotency_in_progress")
	assert.Equal(t, "1", duplicate.Header().Get("Retry-After"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIdempotencyReleasesKeyOnServerError(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	store := NewIdempotencyStore(rdb, time.Hour)
	key := IdempotencyKey("anonymous", "/api/v1/hr/loan", "k-1")
	body := `{"uuid":"ln0000000000001"}`

	mock.ExpectSetNX(key, marker(t, StoredResponse{Hash: RequestHash([]byte(body))}), 5*time.Minute).SetVal(true)
	mock.ExpectDel(key).SetVal(1)

	rec := httptest.NewRecorder()
	Idempotency(store)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})).ServeHTTP(rec, idemRequest(body))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIdempotencyPassThrough(t *testing.T) {
	calls := 0
	h := Idempotency(nil)(countingHandler(&calls))
	h.ServeHTTP(httptest.NewRecorder(), idemRequest(`{}`))

	rdb, mock := redismock.NewClientMock()
	h = Idempotency(NewIdempotencyStore(rdb, 0))(countingHandler(&calls))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/v1/hr/loan", strings.NewReader(`{}`)))

	assert.Equal(t, 2, calls)
	assert.NoError(t, mock.ExpectationsWereMet(), "requests without a key never touch redis")
}
