package internal

import (
	"fmt"

	"github.com/google/uuid"
)

// NewID returns a prefixed random identifier, e.g. "ntf_4f1c…".
// The prefix makes IDs self-describing in logs and API payloads.
func NewID(prefix string) string {
	return fmt.Sprintf("%s_%s", prefix, uuid.NewString())
}
