package device

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hradmin/internal/platform/apperr"
)

func TestPunches(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/gw/devices/ZK-01/punches", r.URL.Path)
		assert.Equal(t, "2024-06-01T00:00:00Z", r.URL.Query().Get("since"))
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"employee_uuid":"emp000000000001","punch_time":"2024-06-03T08:55:00Z","punch_type":"finger"}]`))
	}))
	defer srv.Close()

	client, err := New(srv.URL+"/gw/", time.Second)
	require.NoError(t, err)

	punches, err := client.Punches(context.Background(), "ZK-01", time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, punches, 1)
	assert.Equal(t, "finger", punches[0].PunchType)
	assert.Equal(t, 8, punches[0].PunchTime.Hour())
}

func TestUpstreamFailuresWrapErrUpstream(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/devices/broken/status":
			w.WriteHeader(http.StatusBadGateway)
		case "/devices/garbled/status":
			_, _ = w.Write([]byte("not json"))
		case "/devices/slow/status":
			time.Sleep(200 * time.Millisecond)
			_, _ = w.Write([]byte(`{"online":true}`))
		default:
			_, _ = w.Write([]byte(`{"online":true}`))
		}
	}))
	defer srv.Close()

	client, err := New(srv.URL, 50*time.Millisecond)
	require.NoError(t, err)

	status, err := client.Status(context.Background(), "ok")
	require.NoError(t, err)
	assert.True(t, status.Online)

	for _, id := range []string{"broken", "garbled", "slow"} {
		_, err := client.Status(context.Background(), id)
		assert.ErrorIs(t, err, apperr.ErrUpstream, id)
	}
}

func TestNewRejectsBadURL(t *testing.T) {
	_, err := New("not a url", time.Second)
	assert.Error(t, err)
	_, err = New("", time.Second)
	assert.Error(t, err)
}

func TestUnconfiguredFailsUpstream(t *testing.T) {
	_, err := Unconfigured{}.Punches(context.Background(), "gate-1", time.Time{})
	assert.ErrorIs(t, err, apperr.ErrUpstream)
	_, err = Unconfigured{}.Status(context.Background(), "gate-1")
	assert.ErrorIs(t, err, apperr.ErrUpstream)
}
