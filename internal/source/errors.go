package source

import "fmt"

// UnsupportedSchemeError indicates no reader is registered for a scheme.
type UnsupportedSchemeError struct {
	Scheme string
}

func (e *UnsupportedSchemeError) Error() string {
	return fmt.Sprintf("unsupported source scheme: %s", e.Scheme)
}

// InvalidReferenceError indicates a malformed reference.
type InvalidReferenceError struct {
	Reference string
	Reason    string
}

func (e *InvalidReferenceError) Error() string {
	return fmt.Sprintf("invalid source reference %q: %s", e.Reference, e.Reason)
}

// NotFoundError indicates the referenced document does not exist.
type NotFoundError struct {
	Reference string
	Backend   string
}

func (e *NotFoundError) Error() string {
	if e.Backend != "" {
		return fmt.Sprintf("document not found in %s: %s", e.Backend, e.Reference)
	}
	return fmt.Sprintf("document not found: %s", e.Reference)
}

// BackendError wraps a failure of the storage behind a reader.
type BackendError struct {
	Backend   string
	Reference string
	Reason    string
	Fix       string
	Err       error
}

func (e *BackendError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Backend, e.Reason)
	if e.Fix != "" {
		msg += "\n\n  " + e.Fix
	}
	return msg
}

func (e *BackendError) Unwrap() error {
	return e.Err
}
