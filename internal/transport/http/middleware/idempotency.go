package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"hradmin/internal/transport/http/api"
)

const IdempotencyHeader = "Idempotency-Key"

// idempotencyPendingTTL bounds how long a reservation blocks retries when its request dies
// before answering.
const idempotencyPendingTTL = 5 * time.Minute

var (
	ErrIdempotencyConflict = errors.New("idempotency key was used with a different request")
	ErrIdempotencyPending  = errors.New("a request with this idempotency key is still running")
)

// StoredResponse is the first answer given for an idempotency key. A zero Status marks a
// reservation whose request has not answered yet.
type StoredResponse struct {
	Hash   string `json:"hash"`
	Status int    `json:"status"`
	Body   []byte `json:"body"`
}

func (s StoredResponse) pending() bool {
	return s.Status == 0
}

// IdempotencyStore keeps write responses in Redis so a retried POST with the same key gets the
// original answer instead of a second insert.
type IdempotencyStore struct {
	rdb redis.Cmdable
	ttl time.Duration
}

func NewIdempotencyStore(rdb redis.Cmdable, ttl time.Duration) *IdempotencyStore {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &IdempotencyStore{rdb: rdb, ttl: ttl}
}

func RequestHash(payload []byte) string {
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:])
}

func IdempotencyKey(actor, path, key string) string {
	return fmt.Sprintf("hr:idem:%s:%s:%s", actor, path, key)
}

func (s *IdempotencyStore) pendingTTL() time.Duration {
	return min(s.ttl, idempotencyPendingTTL)
}

// Reserve claims key for a new request. When the key is already taken it returns the stored
// response, ErrIdempotencyPending while the first request runs, or ErrIdempotencyConflict
// for a different payload.
func (s *IdempotencyStore) Reserve(ctx context.Context, key, requestHash string) (StoredResponse, bool, error) {
	marker, err := json.Marshal(StoredResponse{Hash: requestHash})
	if err != nil {
		return StoredResponse{}, false, err
	}
	reserved, err := s.rdb.SetNX(ctx, key, string(marker), s.pendingTTL()).Result()
	if err != nil {
		return StoredResponse{}, false, err
	}
	if reserved {
		return StoredResponse{}, true, nil
	}
	stored, found, err := s.Check(ctx, key, requestHash)
	switch {
	case err != nil:
		return StoredResponse{}, false, err
	case !found || stored.pending():
		return StoredResponse{}, false, ErrIdempotencyPending
	}
	return stored, false, nil
}

// Check returns the stored response for key. A stored response for a different payload is
// ErrIdempotencyConflict.
func (s *IdempotencyStore) Check(ctx context.Context, key, requestHash string) (StoredResponse, bool, error) {
	raw, err := s.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return StoredResponse{}, false, nil
	}
	if err != nil {
		return StoredResponse{}, false, err
	}
	var stored StoredResponse
	if err := json.Unmarshal(raw, &stored); err != nil {
		return StoredResponse{}, false, fmt.Errorf("decode idempotent response: %w", err)
	}
	if stored.Hash != requestHash {
		return StoredResponse{}, false, ErrIdempotencyConflict
	}
	return stored, true, nil
}

// Save replaces the reservation with the final response.
func (s *IdempotencyStore) Save(ctx context.Context, key string, resp StoredResponse) error {
	payload, err := json.Marshal(resp)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, key, string(payload), s.ttl).Err()
}

// Release drops a reservation so the client may retry.
func (s *IdempotencyStore) Release(ctx context.Context, key string) error {
	return s.rdb.Del(ctx, key).Err()
}

type teeRecorder struct {
	http.ResponseWriter
	status int
	body   bytes.Buffer
}

func (t *teeRecorder) WriteHeader(code int) {
	if t.status == 0 {
		t.status = code
	}
	t.ResponseWriter.WriteHeader(code)
}

func (t *teeRecorder) Write(b []byte) (int, error) {
	if t.status == 0 {
		t.status = http.StatusOK
	}
	t.body.Write(b)
	return t.ResponseWriter.Write(b)
}

// Idempotency replays the stored answer of a POST that carries an Idempotency-Key header.
// A nil store turns the middleware off.
func Idempotency(store *IdempotencyStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			idemKey := r.Header.Get(IdempotencyHeader)
			if store == nil || r.Method != http.MethodPost || idemKey == "" {
				next.ServeHTTP(w, r)
				return
			}
			requestID := GetRequestID(r.Context())
			if len(idemKey) > 128 {
				api.Fail(w, http.StatusBadRequest, "invalid_idempotency_key", "idempotency key is too long", requestID)
				return
			}

			payload, err := io.ReadAll(r.Body)
			if err != nil {
				api.FailError(w, api.IssueList{{Field: "body", Reason: "is too large"}}, requestID)
				return
			}
			r.Body = io.NopCloser(bytes.NewReader(payload))

			actor := "anonymous"
			if user, ok := GetUser(r.Context()); ok {
				actor = user.UserUUID
			}
			key := IdempotencyKey(actor, r.URL.Path, idemKey)
			hash := RequestHash(payload)

			stored, reserved, err := store.Reserve(r.Context(), key, hash)
			switch {
			case errors.Is(err, ErrIdempotencyConflict):
				api.Fail(w, http.StatusConflict, "idempotency_conflict", err.Error(), requestID)
				return
			case errors.Is(err, ErrIdempotencyPending):
				w.Header().Set("Retry-After", "1")
				api.Fail(w, http.StatusConflict, "idempotency_in_progress", err.Error(), requestID)
				return
			case err != nil:
				slog.Warn("idempotency reservation failed", "key", key, "err", err)
				next.ServeHTTP(w, r)
				return
			case !reserved:
				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("Idempotent-Replayed", "true")
				w.WriteHeader(stored.Status)
				_, _ = w.Write(stored.Body)
				return
			}

			rec := &teeRecorder{ResponseWriter: w}
			ctx := context.WithoutCancel(r.Context())
			defer func() {
				if rec.status == 0 || rec.status >= http.StatusInternalServerError {
					if err := store.Release(ctx, key); err != nil {
						slog.Warn("idempotency release failed", "key", key, "err", err)
					}
					return
				}
				if err := store.Save(ctx, key, StoredResponse{Hash: hash, Status: rec.status, Body: rec.body.Bytes()}); err != nil {
					slog.Warn("idempotency save failed", "key", key, "err", err)
				}
			}()
			next.ServeHTTP(rec, r)
		})
	}
}
