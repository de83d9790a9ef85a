package apierror

import (
	"encoding/json"
	"net/http"
	"time"
)

// maintenanceReason is the reserved reason code the backends return with
// HTTP 503 while a maintenance window is active.
const maintenanceReason = "MAINTENANCE_MODE"

// Result is the outcome of classifying one failed transport attempt.
// Exactly one of the taxonomy's shapes is produced: the maintenance
// signal, a validation envelope, or a plain envelope.
type Result struct {
	// Maintenance reports the reserved 503 MAINTENANCE_MODE signal. It is
	// a mode switch, not a user-facing error; Envelope is nil when set.
	Maintenance bool
	Envelope    *Envelope
}

// wireError mirrors the JSON error body the backends emit.
type wireError struct {
	Code        int               `json:"code"`
	Reason      string            `json:"error"`
	Message     string            `json:"message"`
	FieldErrors map[string]string `json:"fieldErrors"`
	Timestamp   string            `json:"timestamp"`
}

// Classify maps a failed attempt onto the taxonomy. Rules apply in order:
//
//  1. 503 with reason MAINTENANCE_MODE is the maintenance signal.
//  2. A body with a non-empty fieldErrors mapping is a validation error.
//  3. Any other response body is a plain error using the body's own fields.
//  4. A request that was sent but got no response (status 0) is the
//     network sentinel.
//  5. A failure before the request went out is the unexpected sentinel.
//
// status is the HTTP status of the response, or 0 when none arrived.
// sent reports whether the request made it onto the wire.
func Classify(status int, body []byte, sent bool) Result {
	if !sent {
		return Result{Envelope: UnexpectedError()}
	}
	if status == 0 {
		return Result{Envelope: NetworkError()}
	}

	var wire wireError
	parsed := json.Unmarshal(body, &wire) == nil

	if status == http.StatusServiceUnavailable && parsed && wire.Reason == maintenanceReason {
		return Result{Maintenance: true}
	}

	if parsed && len(wire.FieldErrors) > 0 {
		return Result{Envelope: &Envelope{
			Class:       ClassValidation,
			Code:        wire.Code,
			Reason:      wire.Reason,
			Message:     trimMessage(wire.Message),
			FieldErrors: wire.FieldErrors,
			Timestamp:   parseTimestamp(wire.Timestamp),
		}}
	}

	env := &Envelope{
		Class:     ClassPlain,
		Code:      status,
		Reason:    http.StatusText(status),
		Timestamp: time.Now(),
	}
	if parsed && (wire.Code != 0 || wire.Reason != "" || wire.Message != "") {
		env.Code = wire.Code
		env.Reason = wire.Reason
		env.Message = trimMessage(wire.Message)
		env.Timestamp = parseTimestamp(wire.Timestamp)
	}
	return Result{Envelope: env}
}

func parseTimestamp(value string) time.Time {
	if value == "" {
		return time.Now()
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339} {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return time.Now()
}
