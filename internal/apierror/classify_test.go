package apierror

import (
	"testing"
	"time"
)

func TestClassify_MaintenanceSignalWinsOverValidation(t *testing.T) {
	body := []byte(`{"code":503,"error":"MAINTENANCE_MODE","message":"down for maintenance","fieldErrors":{"name":"bad"},"timestamp":"2024-05-01T10:00:00Z"}`)

	res := Classify(503, body, true)
	if !res.Maintenance {
		t.Fatalf("Maintenance = false, want true")
	}
	if res.Envelope != nil {
		t.Fatalf("Envelope = %#v, want nil for maintenance signal", res.Envelope)
	}
}

func TestClassify_MaintenanceRequires503(t *testing.T) {
	body := []byte(`{"code":500,"error":"MAINTENANCE_MODE","message":"odd"}`)

	res := Classify(500, body, true)
	if res.Maintenance {
		t.Fatalf("Maintenance = true, want false for non-503 status")
	}
	if res.Envelope == nil || res.Envelope.Reason != "MAINTENANCE_MODE" {
		t.Fatalf("Envelope = %#v, want plain envelope from body", res.Envelope)
	}
}

func TestClassify_ValidationError(t *testing.T) {
	body := []byte(`{"code":400,"error":"VALIDATION_FAILED","message":"invalid flag","fieldErrors":{"name":"already exists","description":"too long"},"timestamp":"2024-05-01T10:00:00Z"}`)

	res := Classify(400, body, true)
	if res.Maintenance {
		t.Fatalf("Maintenance = true, want false")
	}
	env := res.Envelope
	if env == nil {
		t.Fatal("Envelope = nil, want validation envelope")
	}
	if env.Class != ClassValidation {
		t.Fatalf("Class = %v, want validation", env.Class)
	}
	if env.Code != 400 || env.Reason != "VALIDATION_FAILED" {
		t.Fatalf("envelope = %#v, want code 400 VALIDATION_FAILED", env)
	}
	if env.FieldErrors["name"] != "already exists" {
		t.Fatalf("FieldErrors = %v, want name mapped", env.FieldErrors)
	}
	want := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	if !env.Timestamp.Equal(want) {
		t.Fatalf("Timestamp = %v, want %v", env.Timestamp, want)
	}

	fields := env.Fields()
	if len(fields) != 2 || fields[0].Field != "description" || fields[1].Field != "name" {
		t.Fatalf("Fields() = %#v, want sorted by field name", fields)
	}
}

func TestClassify_EmptyFieldErrorsIsPlain(t *testing.T) {
	body := []byte(`{"code":404,"error":"NOT_FOUND","message":"flag not found","fieldErrors":{}}`)

	res := Classify(404, body, true)
	if res.Envelope == nil || res.Envelope.Class != ClassPlain {
		t.Fatalf("Envelope = %#v, want plain for empty fieldErrors", res.Envelope)
	}
	if res.Envelope.Code != 404 || res.Envelope.Reason != "NOT_FOUND" {
		t.Fatalf("envelope = %#v, want body fields carried over", res.Envelope)
	}
}

func TestClassify_UnparseableBodyFallsBackToStatus(t *testing.T) {
	res := Classify(502, []byte("<html>bad gateway</html>"), true)
	env := res.Envelope
	if env == nil || env.Class != ClassPlain {
		t.Fatalf("Envelope = %#v, want plain envelope", env)
	}
	if env.Code != 502 || env.Reason != "Bad Gateway" {
		t.Fatalf("envelope = %#v, want status-derived fallback", env)
	}
}

func TestClassify_NetworkSentinel(t *testing.T) {
	res := Classify(0, nil, true)
	env := res.Envelope
	if env == nil || env.Code != 0 || env.Reason != ReasonNetwork {
		t.Fatalf("envelope = %#v, want code 0 NETWORK_ERROR", env)
	}
	if env.Class != ClassPlain {
		t.Fatalf("Class = %v, want plain", env.Class)
	}
}

func TestClassify_UnexpectedSentinel(t *testing.T) {
	res := Classify(0, nil, false)
	env := res.Envelope
	if env == nil || env.Code != -1 || env.Reason != ReasonUnexpected {
		t.Fatalf("envelope = %#v, want code -1 UNEXPECTED_ERROR", env)
	}
}

func TestEnvelope_ErrorString(t *testing.T) {
	env := &Envelope{Code: 404, Reason: "NOT_FOUND", Message: "flag not found"}
	if got := env.Error(); got != "flag not found" {
		t.Fatalf("Error() = %q, want message", got)
	}

	env = &Envelope{Code: 0, Reason: ReasonNetwork}
	if got := env.Error(); got != "NETWORK_ERROR (code 0)" {
		t.Fatalf("Error() = %q, want reason with code", got)
	}
}
