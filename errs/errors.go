// Package errs defines the disjoint error kinds surfaced by the request
// layer: protocol errors (the server answered with a failure envelope),
// transport errors (the call never produced a usable envelope), and
// validation errors (a payload failed schema conformance).
package errs

import (
	"errors"
	"fmt"

	"github.com/bytedance/sonic"
)

// Kind labels for classifying errors, usable as metric label values.
const (
	KindProtocol   = "protocol"
	KindTransport  = "transport"
	KindValidation = "validation"
)

// ErrUnexpectedStatus is the sentinel wrapped by TransportError when the
// server answers with a non-2xx HTTP status before envelope inspection.
var ErrUnexpectedStatus = errors.New("unexpected status code")

// ProtocolError reports a failure the server signaled explicitly through
// the response envelope code. It is never produced for transport-level
// failures.
type ProtocolError struct {
	Code    int    `json:"code"`
	Message string `json:"message,omitempty"`
}

// Error implements the error interface.
func (e *ProtocolError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server returned code %d", e.Code)
	}
	return fmt.Sprintf("server returned code %d: %s", e.Code, e.Message)
}

// TransportError reports that the underlying call could not complete:
// a network failure, a request that could not be encoded, or an HTTP
// status outside 2xx. StatusCode is zero when no status was received.
type TransportError struct {
	StatusCode int
	Body       string
	Err        error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%v: %d, body: %s", e.Err, e.StatusCode, e.Body)
	}
	return e.Err.Error()
}

// Unwrap exposes the wrapped cause for errors.Is/errors.As chains.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// FieldError is a single validation issue for a specific payload field.
type FieldError struct {
	Field string `json:"field"`
	Err   string `json:"error"`
}

// FieldErrors is an ordered collection of validation issues.
type FieldErrors []FieldError

// NewFieldsError creates a single-issue FieldErrors value.
func NewFieldsError(field string, err error) error {
	return FieldErrors{
		{
			Field: field,
			Err:   err.Error(),
		},
	}
}

// Error implements the error interface.
func (fe FieldErrors) Error() string {
	d, err := sonic.Marshal(fe)
	if err != nil {
		return err.Error()
	}
	return string(d)
}

// Fields returns the issues keyed by field path.
func (fe FieldErrors) Fields() map[string]string {
	m := make(map[string]string)
	for _, fld := range fe {
		m[fld.Field] = fld.Err
	}
	return m
}

// IsFieldErrors reports whether err carries a FieldErrors value.
func IsFieldErrors(err error) bool {
	var fe FieldErrors
	return errors.As(err, &fe)
}

// GetFieldErrors extracts the FieldErrors value from err, or nil.
func GetFieldErrors(err error) FieldErrors {
	var fe FieldErrors
	if !errors.As(err, &fe) {
		return nil
	}
	return fe
}

// Kind classifies err into one of the taxonomy labels. Errors that are
// neither protocol nor validation failures count as transport failures;
// nil maps to the empty string.
func Kind(err error) string {
	if err == nil {
		return ""
	}

	var pe *ProtocolError
	if errors.As(err, &pe) {
		return KindProtocol
	}

	var fe FieldErrors
	if errors.As(err, &fe) {
		return KindValidation
	}

	return KindTransport
}
