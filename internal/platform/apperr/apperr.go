package apperr

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrNotFound         = errors.New("record not found")
	ErrConflict         = errors.New("record already exists")
	ErrInvalidReference = errors.New("referenced record does not exist or is still in use")
	ErrEmptyPatch       = errors.New("nothing to update")
	ErrUpstream         = errors.New("upstream service failed")
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
)

// FromDB maps driver errors onto the sentinel set. Other errors pass through unchanged.
func FromDB(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return fmt.Errorf("%w: %s", ErrConflict, pgErr.ConstraintName)
		case pgForeignKeyViolation:
			return fmt.Errorf("%w: %s", ErrInvalidReference, pgErr.ConstraintName)
		case pgCheckViolation:
			return Invalid(checkedField(pgErr), "violates "+pgErr.ConstraintName)
		}
	}
	return err
}

// checkedField recovers the column from constraints named {table}_{column}_check.
func checkedField(pgErr *pgconn.PgError) string {
	if pgErr.ColumnName != "" {
		return pgErr.ColumnName
	}
	name := strings.TrimSuffix(pgErr.ConstraintName, "_check")
	name = strings.TrimPrefix(name, pgErr.TableName+"_")
	if name == "" || name == pgErr.TableName {
		return "payload"
	}
	return name
}

// NotFound wraps ErrNotFound with the entity name so messages stay readable.
func NotFound(entity string) error {
	return fmt.Errorf("%s: %w", entity, ErrNotFound)
}

// FieldError is a validation failure found after the request payload was decoded.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string { return e.Field + " " + e.Reason }

func Invalid(field, reason string) error {
	return &FieldError{Field: field, Reason: reason}
}
