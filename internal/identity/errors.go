package identity

import (
	"errors"
	"fmt"
)

var (
	// ErrChecksum is returned when an address decodes but its checksum does not match.
	ErrChecksum = errors.New("address checksum mismatch")
)

// FormatError describes an identifier that does not match the expected shape.
type FormatError struct {
	Input  string
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid identifier %q: %s", e.Input, e.Reason)
}
