package apierror

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Class tags an envelope with its place in the error taxonomy. The
// classifier assigns it once; consumers switch on the tag instead of
// sniffing for the presence of field errors.
type Class int

const (
	// ClassPlain is a server or transport failure with no per-field detail.
	ClassPlain Class = iota
	// ClassValidation is a rejected request carrying field-level messages.
	ClassValidation
)

// String returns a short name for the class.
func (c Class) String() string {
	switch c {
	case ClassValidation:
		return "validation"
	default:
		return "plain"
	}
}

// Sentinel reason codes for failures that never reached the server.
const (
	ReasonNetwork    = "NETWORK_ERROR"
	ReasonUnexpected = "UNEXPECTED_ERROR"
)

// Envelope is a classified API error. It mirrors the error body contract
// of both backend services: {code, error, message, timestamp} plus an
// optional fieldErrors mapping for validation failures.
type Envelope struct {
	Class       Class             `json:"-"`
	Code        int               `json:"code"`
	Reason      string            `json:"error"`
	Message     string            `json:"message"`
	FieldErrors map[string]string `json:"fieldErrors,omitempty"`
	Timestamp   time.Time         `json:"-"`
}

// Error implements the error interface so an envelope can travel back
// through ordinary error returns.
func (e *Envelope) Error() string {
	if e == nil {
		return "api error"
	}
	if e.Message != "" {
		return e.Message
	}
	if e.Reason != "" {
		return fmt.Sprintf("%s (code %d)", e.Reason, e.Code)
	}
	return fmt.Sprintf("api error (code %d)", e.Code)
}

// Fields returns the field errors in deterministic order for display.
func (e *Envelope) Fields() []FieldError {
	if e == nil || len(e.FieldErrors) == 0 {
		return nil
	}
	names := make([]string, 0, len(e.FieldErrors))
	for name := range e.FieldErrors {
		names = append(names, name)
	}
	sort.Strings(names)
	fields := make([]FieldError, 0, len(names))
	for _, name := range names {
		fields = append(fields, FieldError{Field: name, Message: e.FieldErrors[name]})
	}
	return fields
}

// FieldError is one field/message pair from a validation envelope.
type FieldError struct {
	Field   string
	Message string
}

// NetworkError builds the sentinel envelope for a request that was sent
// but received no response (includes timeouts).
func NetworkError() *Envelope {
	return &Envelope{
		Class:     ClassPlain,
		Code:      0,
		Reason:    ReasonNetwork,
		Message:   "Network error: Unable to connect to server",
		Timestamp: time.Now(),
	}
}

// UnexpectedError builds the sentinel envelope for a failure that
// happened before a request went out.
func UnexpectedError() *Envelope {
	return &Envelope{
		Class:     ClassPlain,
		Code:      -1,
		Reason:    ReasonUnexpected,
		Message:   "An unexpected error occurred",
		Timestamp: time.Now(),
	}
}

func trimMessage(s string) string {
	return strings.TrimSpace(s)
}
