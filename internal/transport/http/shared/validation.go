package shared

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"hradmin/internal/domain/roster"
	"hradmin/internal/transport/http/api"
)

var validate = newValidate()

func newValidate() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("clock", func(fl validator.FieldLevel) bool {
		_, err := roster.ParseClock(fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("weekday", func(fl validator.FieldLevel) bool {
		_, ok := roster.ParseWeekday(fl.Field().String())
		return ok
	})
	return v
}

// Struct validates one decoded payload and returns an api.IssueList on failure.
func Struct(payload any) error {
	return issuesFrom(validate.Struct(payload), "")
}

// Each validates every payload of a bulk request; issue fields are prefixed with the index.
func Each[C any](payloads []C) error {
	var all api.IssueList
	for i := range payloads {
		err := issuesFrom(validate.Struct(payloads[i]), fmt.Sprintf("[%d].", i))
		var issues api.IssueList
		if errors.As(err, &issues) {
			all = append(all, issues...)
		} else if err != nil {
			return err
		}
	}
	if len(all) > 0 {
		return all
	}
	return nil
}

func issuesFrom(err error, prefix string) error {
	if err == nil {
		return nil
	}
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return err
	}
	issues := api.FromValidator(errs)
	for i := range issues {
		issues[i].Field = prefix + issues[i].Field
	}
	return issues
}

// Validator collects cross-field issues that struct tags cannot express.
type Validator struct {
	issues api.IssueList
}

func NewValidator() *Validator {
	return &Validator{issues: make(api.IssueList, 0, 4)}
}

func (v *Validator) Add(field, reason string) {
	if v == nil {
		return
	}
	field = strings.TrimSpace(field)
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return
	}
	v.issues = append(v.issues, api.Issue{Field: field, Reason: reason})
}

func (v *Validator) Required(field, value, reason string) {
	if strings.TrimSpace(value) == "" {
		v.Add(field, reason)
	}
}

func (v *Validator) Date(field, raw string) (time.Time, bool) {
	parsed, err := ParseDate(strings.TrimSpace(raw))
	if err != nil || parsed.IsZero() {
		v.Add(field, "must be a valid date in YYYY-MM-DD format")
		return time.Time{}, false
	}
	return parsed, true
}

func (v *Validator) DateOrder(startField string, start time.Time, endField string, end time.Time) {
	if start.IsZero() || end.IsZero() {
		return
	}
	if end.Before(start) {
		v.Add(startField, "must be on or before "+endField)
		v.Add(endField, "must be on or after "+startField)
	}
}

func (v *Validator) HasIssues() bool {
	return v != nil && len(v.issues) > 0
}

func (v *Validator) Issues() api.IssueList {
	if v == nil || len(v.issues) == 0 {
		return nil
	}
	out := make(api.IssueList, len(v.issues))
	copy(out, v.issues)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Field == out[j].Field {
			return out[i].Reason < out[j].Reason
		}
		return out[i].Field < out[j].Field
	})
	return out
}

// Err returns the collected issues as an error, or nil.
func (v *Validator) Err() error {
	if !v.HasIssues() {
		return nil
	}
	return v.Issues()
}

func (v *Validator) Reject(w http.ResponseWriter, requestID string) bool {
	if !v.HasIssues() {
		return false
	}
	api.FailError(w, v.Issues(), requestID)
	return true
}
