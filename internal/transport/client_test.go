package transport

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/rs/zerolog"

	"github.com/five82/marquee/internal/apierror"
)

type recordingInterceptor struct {
	envelopes   []*apierror.Envelope
	maintenance int
}

func (r *recordingInterceptor) OnEnvelope(env *apierror.Envelope) {
	r.envelopes = append(r.envelopes, env)
}

func (r *recordingInterceptor) OnMaintenance() { r.maintenance++ }

func newTestClient(t *testing.T, baseURL string, ic Interceptor) *Client {
	t.Helper()
	c, err := NewClient(Options{BaseURL: baseURL, Interceptor: ic, Log: zerolog.Nop()})
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	return c
}

func TestParseBaseURL_KeepsPathPrefix(t *testing.T) {
	u, err := parseBaseURL("localhost:8080/feature")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Scheme != "http" || u.Host != "localhost:8080" || u.Path != "/feature" {
		t.Fatalf("url = %q, want http://localhost:8080/feature", u.String())
	}

	u, err = parseBaseURL("http://example.com/movie/?x=1#frag")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Path != "/movie" || u.RawQuery != "" || u.Fragment != "" {
		t.Fatalf("url not normalized: %q", u.String())
	}

	if _, err := parseBaseURL("  "); err == nil {
		t.Fatal("parseBaseURL accepted empty input, want error")
	}
}

func TestClient_GetJoinsPrefixAndEscapesSegments(t *testing.T) {
	t.Parallel()

	var gotPath string
	var gotQuery url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]bool{"ok": true})
	}))
	t.Cleanup(server.Close)

	c := newTestClient(t, server.URL+"/feature", nil)

	var dest map[string]bool
	query := url.Values{}
	query.Set("page", "0")
	query.Set("size", "20")
	if err := c.Get(context.Background(), []string{"flags", "dark mode"}, query, &dest); err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if gotPath != "/feature/flags/dark%20mode" {
		t.Fatalf("path = %q, want prefix kept and segment escaped", gotPath)
	}
	if gotQuery.Get("page") != "0" || gotQuery.Get("size") != "20" {
		t.Fatalf("query = %v, want page/size encoded", gotQuery)
	}
	if !dest["ok"] {
		t.Fatalf("dest = %v, want decoded body", dest)
	}
}

func TestClient_ClassifiesErrorBodyAndPublishes(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"code":400,"error":"VALIDATION_FAILED","message":"invalid","fieldErrors":{"name":"duplicate key"}}`))
	}))
	t.Cleanup(server.Close)

	ic := &recordingInterceptor{}
	c := newTestClient(t, server.URL, ic)

	err := c.Do(context.Background(), http.MethodPost, []string{"flags"}, nil, map[string]string{"name": "x"}, nil)
	if err == nil {
		t.Fatal("Do returned nil error, want classified failure")
	}

	var env *apierror.Envelope
	if !errors.As(err, &env) {
		t.Fatalf("error = %v, want *apierror.Envelope", err)
	}
	if env.Class != apierror.ClassValidation || env.FieldErrors["name"] != "duplicate key" {
		t.Fatalf("envelope = %#v, want validation with name field", env)
	}
	if len(ic.envelopes) != 1 || ic.envelopes[0] != env {
		t.Fatalf("interceptor got %d envelopes, want the returned one", len(ic.envelopes))
	}
}

func TestClient_MaintenanceSignalSkipsEnvelope(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"code":503,"error":"MAINTENANCE_MODE","message":"scheduled window"}`))
	}))
	t.Cleanup(server.Close)

	ic := &recordingInterceptor{}
	c := newTestClient(t, server.URL, ic)

	err := c.Get(context.Background(), []string{"flags"}, nil, nil)
	if !errors.Is(err, ErrMaintenance) {
		t.Fatalf("error = %v, want ErrMaintenance", err)
	}
	if ic.maintenance != 1 {
		t.Fatalf("maintenance callbacks = %d, want 1", ic.maintenance)
	}
	if len(ic.envelopes) != 0 {
		t.Fatalf("envelopes = %d, want none for maintenance signal", len(ic.envelopes))
	}
}

func TestClient_NoResponseYieldsNetworkSentinel(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // guaranteed connection refused

	ic := &recordingInterceptor{}
	c := newTestClient(t, server.URL, ic)

	err := c.Get(context.Background(), []string{"flags"}, nil, nil)
	var env *apierror.Envelope
	if !errors.As(err, &env) {
		t.Fatalf("error = %v, want envelope", err)
	}
	if env.Code != 0 || env.Reason != apierror.ReasonNetwork {
		t.Fatalf("envelope = %#v, want network sentinel", env)
	}
	if len(ic.envelopes) != 1 {
		t.Fatalf("envelopes = %d, want 1", len(ic.envelopes))
	}
}

func TestClient_DecodeErrorIsNotClassified(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte("{not-json"))
	}))
	t.Cleanup(server.Close)

	ic := &recordingInterceptor{}
	c := newTestClient(t, server.URL, ic)

	var dest map[string]any
	err := c.Get(context.Background(), []string{"flags"}, nil, &dest)
	if err == nil {
		t.Fatal("Get returned nil error, want decode failure")
	}
	var env *apierror.Envelope
	if errors.As(err, &env) {
		t.Fatalf("decode failure classified as %#v, want plain error", env)
	}
	if len(ic.envelopes) != 0 {
		t.Fatalf("envelopes = %d, want none for a 2xx decode failure", len(ic.envelopes))
	}
}
