package leave

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"hradmin/internal/platform/apperr"
)

func TestCheckSpan(t *testing.T) {
	assert.NoError(t, CheckSpan("2024-03-01", "2024-03-01"))
	assert.NoError(t, CheckSpan("2024-03-01", "2024-03-05"))

	err := CheckSpan("2024-03-05", "2024-03-01")
	var fieldErr *apperr.FieldError
	if assert.True(t, errors.As(err, &fieldErr)) {
		assert.Equal(t, "to_date", fieldErr.Field)
	}

	err = CheckSpan("03/01/2024", "2024-03-01")
	if assert.True(t, errors.As(err, &fieldErr)) {
		assert.Equal(t, "from_date", fieldErr.Field)
	}
}
