package provider

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"
)

// ErrUnknownAPI is matched by every *LookupError.
var ErrUnknownAPI = errors.New("unknown API")

// ParseError is returned when a document cannot be turned into a Provider.
// Err is either a structural decoding failure or one or more
// *ValidationError values; errors.As reaches both.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse provider: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ValidationError reports a field that decoded but holds an unacceptable value.
type ValidationError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("%s %q: %s", e.Field, e.Value, e.Reason)
}

// LookupError is returned when an API name is not defined by the provider.
type LookupError struct {
	Name string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("unknown API %q", e.Name)
}

func (e *LookupError) Is(target error) bool {
	return target == ErrUnknownAPI
}

// listFormat renders a multierror on one line.
func listFormat(errs []error) string {
	parts := make([]string, len(errs))
	for i, err := range errs {
		parts[i] = err.Error()
	}
	return strings.Join(parts, "; ")
}

func newProblems() *multierror.Error {
	return &multierror.Error{ErrorFormat: listFormat}
}
