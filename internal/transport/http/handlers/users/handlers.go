package usershandler

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"hradmin/internal/domain/users"
	"hradmin/internal/transport/http/api"
	crudhandler "hradmin/internal/transport/http/handlers/crud"
	"hradmin/internal/transport/http/middleware"
	"hradmin/internal/transport/http/shared"
)

type Handler struct {
	Service *users.Service
	users   *crudhandler.Handler[users.User, users.Input, users.Patch]
}

func NewHandler(service *users.Service) *Handler {
	return &Handler{
		Service: service,
		users: crudhandler.New[users.User, users.Input, users.Patch](service.Store, "user",
			crudhandler.Parent{Segment: "department", Param: "department_uuid", Filter: "department_uuid"}),
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	h.users.RegisterRoutes(r, "/hr/user", func(r chi.Router) {
		r.Post("/mfa/setup", h.handleMFASetup)
		r.Post("/mfa/enable", h.handleMFAToggle(h.Service.EnableMFA, "two-factor login enabled"))
		r.Post("/mfa/disable", h.handleMFAToggle(h.Service.DisableMFA, "two-factor login disabled"))
	})
}

func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	var payload users.LoginRequest
	if err := shared.DecodeJSON(r, &payload); err != nil {
		api.FailError(w, err, requestID)
		return
	}
	if err := shared.Struct(payload); err != nil {
		api.FailError(w, err, requestID)
		return
	}

	resp, err := h.Service.Login(r.Context(), payload)
	if err != nil {
		failAuth(w, err, requestID)
		return
	}
	api.Success(w, resp)
}

func (h *Handler) handleMFASetup(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestID)
		return
	}
	setup, err := h.Service.SetupMFA(r.Context(), user.UserUUID, user.Email)
	if err != nil {
		failAuth(w, err, requestID)
		return
	}
	api.Success(w, setup)
}

func (h *Handler) handleMFAToggle(apply func(ctx context.Context, userUUID, code string) error, message string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requestID := middleware.GetRequestID(r.Context())
		user, ok := middleware.GetUser(r.Context())
		if !ok {
			api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestID)
			return
		}
		var payload users.MFACodeRequest
		if err := shared.DecodeJSON(r, &payload); err != nil {
			api.FailError(w, err, requestID)
			return
		}
		if err := shared.Struct(payload); err != nil {
			api.FailError(w, err, requestID)
			return
		}
		if err := apply(r.Context(), user.UserUUID, payload.Code); err != nil {
			failAuth(w, err, requestID)
			return
		}
		api.Updated(w, message)
	}
}

func failAuth(w http.ResponseWriter, err error, requestID string) {
	switch {
	case errors.Is(err, users.ErrInvalidCredentials):
		api.Fail(w, http.StatusUnauthorized, "invalid_credentials", "invalid credentials", requestID)
	case errors.Is(err, users.ErrInactive):
		api.Fail(w, http.StatusForbidden, "inactive_user", "user is inactive", requestID)
	case errors.Is(err, users.ErrMFARequired):
		api.Fail(w, http.StatusUnauthorized, "mfa_required", "two-factor code required", requestID)
	case errors.Is(err, users.ErrMFAInvalid):
		api.Fail(w, http.StatusUnauthorized, "mfa_invalid", "invalid two-factor code", requestID)
	case errors.Is(err, users.ErrMFAUnavailable):
		api.Fail(w, http.StatusBadRequest, "mfa_unavailable", "two-factor login requires DATA_ENCRYPTION_KEY", requestID)
	case errors.Is(err, users.ErrMFANotSetUp):
		api.Fail(w, http.StatusBadRequest, "mfa_missing", "two-factor setup required", requestID)
	default:
		api.FailError(w, err, requestID)
	}
}
