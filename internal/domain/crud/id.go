package crud

import (
	"strings"

	"github.com/google/uuid"
)

// IDLength is the width of identifiers generated server-side. Clients may still send 15-char ids.
const IDLength = 21

// NewID returns a random 21-char lowercase hex identifier.
func NewID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:IDLength]
}
