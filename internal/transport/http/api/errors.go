package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"hradmin/internal/platform/apperr"
)

// Issue is one itemised validation failure.
type Issue struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

type IssueList []Issue

func (l IssueList) Error() string {
	if len(l) == 0 {
		return "payload validation failed"
	}
	return l[0].Field + " " + l[0].Reason
}

// FailError maps a service error onto a status code and writes it.
func FailError(w http.ResponseWriter, err error, requestID string) {
	var issues IssueList
	var fieldErr *apperr.FieldError
	var validationErrs validator.ValidationErrors
	switch {
	case errors.As(err, &issues):
		FailWithDetails(w, http.StatusUnprocessableEntity, "validation_error", "payload validation failed", map[string]any{"issues": issues}, requestID)
	case errors.As(err, &fieldErr):
		FailWithDetails(w, http.StatusUnprocessableEntity, "validation_error", fieldErr.Error(), map[string]any{"issues": IssueList{{Field: fieldErr.Field, Reason: fieldErr.Reason}}}, requestID)
	case errors.As(err, &validationErrs):
		FailWithDetails(w, http.StatusUnprocessableEntity, "validation_error", "payload validation failed", map[string]any{"issues": FromValidator(validationErrs)}, requestID)
	case errors.Is(err, apperr.ErrEmptyPatch):
		Fail(w, http.StatusUnprocessableEntity, "empty_patch", err.Error(), requestID)
	case errors.Is(err, apperr.ErrNotFound):
		Fail(w, http.StatusNotFound, "not_found", err.Error(), requestID)
	case errors.Is(err, apperr.ErrConflict):
		Fail(w, http.StatusBadRequest, "conflict", err.Error(), requestID)
	case errors.Is(err, apperr.ErrInvalidReference):
		Fail(w, http.StatusBadRequest, "invalid_reference", err.Error(), requestID)
	case errors.Is(err, apperr.ErrUpstream):
		slog.Warn("upstream call failed", "err", err, "requestId", requestID)
		Fail(w, http.StatusPreconditionFailed, "upstream_failed", "device service request failed", requestID)
	default:
		slog.Error("request failed", "err", err, "requestId", requestID)
		Fail(w, http.StatusInternalServerError, "internal_error", "internal server error", requestID)
	}
}

// FromValidator converts validator errors, whose field names are already json names.
func FromValidator(errs validator.ValidationErrors) IssueList {
	out := make(IssueList, 0, len(errs))
	for _, fe := range errs {
		out = append(out, Issue{Field: fe.Field(), Reason: reason(fe)})
	}
	return out
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "len":
		return "must be " + fe.Param() + " characters"
	case "max":
		return "must be at most " + fe.Param()
	case "min":
		return "must be at least " + fe.Param()
	case "oneof":
		return "must be one of: " + fe.Param()
	case "datetime":
		return "must match " + fe.Param()
	case "email":
		return "must be a valid email"
	case "clock":
		return "must be a time of day (HH:MM or HH:MM:SS)"
	case "weekday":
		return "must be a weekday name"
	case "unique":
		return "must not repeat values"
	default:
		if fe.Param() != "" {
			return "failed " + fe.Tag() + "=" + fe.Param()
		}
		return "failed " + fe.Tag()
	}
}
