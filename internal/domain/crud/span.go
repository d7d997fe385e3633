package crud

import (
	"time"

	"hradmin/internal/platform/apperr"
)

// Stored loads the from/to dates a row currently has.
type Stored func() (from, to time.Time, err error)

// CheckPatchedSpan validates the date span a patch leaves behind. stored is only called when
// the patch moves one end of the span.
func CheckPatchedSpan(from, to *string, stored Stored) error {
	if from == nil && to == nil {
		return nil
	}
	var start, end time.Time
	var err error
	if from == nil || to == nil {
		if start, end, err = stored(); err != nil {
			return err
		}
	}
	if from != nil {
		if start, err = time.Parse(time.DateOnly, *from); err != nil {
			return apperr.Invalid("from_date", "must be a valid date in YYYY-MM-DD format")
		}
	}
	if to != nil {
		if end, err = time.Parse(time.DateOnly, *to); err != nil {
			return apperr.Invalid("to_date", "must be a valid date in YYYY-MM-DD format")
		}
	}
	if end.Before(start) {
		if to == nil {
			return apperr.Invalid("from_date", "must be on or before to_date")
		}
		return apperr.Invalid("to_date", "must be on or after from_date")
	}
	return nil
}
