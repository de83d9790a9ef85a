// Package transport implements the HTTP client core shared by both
// service clients. Every failed attempt passes through the error
// classifier exactly once before being re-signaled to the caller.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/five82/marquee/internal/apierror"
)

// ErrMaintenance is returned for the reserved 503 MAINTENANCE_MODE
// response. It reaches the caller so the operation still settles as a
// failure, but it is never published as a user-facing error.
var ErrMaintenance = errors.New("service is in maintenance mode")

// Interceptor receives classified failures. The composition root wires
// it to the notification channel and the maintenance gate; everything
// else consumes only the typed envelope or the boolean gate.
type Interceptor interface {
	OnEnvelope(env *apierror.Envelope)
	OnMaintenance()
}

const (
	defaultTimeout   = 10 * time.Second
	defaultUserAgent = "marquee/0.1"

	// errorBodyLimit bounds how much of a failed response is read for
	// classification.
	errorBodyLimit = 1 << 20
)

// Client wraps an http.Client with JSON helpers and the classification
// pipeline. It is safe for concurrent use.
type Client struct {
	baseURL     *url.URL
	http        *http.Client
	userAgent   string
	interceptor Interceptor
	log         zerolog.Logger
}

// Options configure a Client.
type Options struct {
	// BaseURL is the service root, including any path prefix
	// (e.g. http://localhost:8080/feature). A bare host:port gets an
	// http scheme.
	BaseURL string
	// Timeout bounds each request; zero uses the default.
	Timeout time.Duration
	// UserAgent overrides the default User-Agent header.
	UserAgent string
	// Interceptor observes classified failures. Optional.
	Interceptor Interceptor
	// Log receives request diagnostics. Optional.
	Log zerolog.Logger
}

// NewClient builds a Client for the given service base URL.
func NewClient(opts Options) (*Client, error) {
	base, err := parseBaseURL(opts.BaseURL)
	if err != nil {
		return nil, err
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	log := opts.Log
	if opts.Interceptor == nil {
		opts.Interceptor = nopInterceptor{}
	}
	return &Client{
		baseURL:     base,
		http:        &http.Client{Timeout: timeout},
		userAgent:   userAgent,
		interceptor: opts.Interceptor,
		log:         log,
	}, nil
}

// Get issues a GET request for the given path elements and query.
func (c *Client) Get(ctx context.Context, elem []string, query url.Values, dest any) error {
	return c.Do(ctx, http.MethodGet, elem, query, nil, dest)
}

// Do issues a JSON request. Path elements are joined onto the base URL
// with per-segment escaping. A nil dest discards the response body.
//
// Failures are classified before the error returns: server error bodies
// become typed envelopes, the maintenance signal trips the interceptor
// and surfaces as ErrMaintenance, and transport-level failures map to
// the network/unexpected sentinels. The returned error is the envelope
// itself when one was produced, so callers can recover the taxonomy
// with errors.As.
func (c *Client) Do(ctx context.Context, method string, elem []string, query url.Values, body, dest any) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}

	reqURL := c.baseURL.JoinPath(elem...)
	if query != nil {
		reqURL.RawQuery = query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return c.failBeforeSend(fmt.Errorf("encode request: %w", err))
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reader)
	if err != nil {
		return c.failBeforeSend(fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		// Sent but no response: timeouts land here too.
		res := apierror.Classify(0, nil, true)
		c.interceptor.OnEnvelope(res.Envelope)
		c.log.Warn().Err(err).Str("url", reqURL.String()).Msg("request failed without response")
		return res.Envelope
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyLimit))
		res := apierror.Classify(resp.StatusCode, raw, true)
		if res.Maintenance {
			c.interceptor.OnMaintenance()
			c.log.Warn().Str("url", reqURL.String()).Msg("maintenance mode signal received")
			return ErrMaintenance
		}
		c.interceptor.OnEnvelope(res.Envelope)
		c.log.Warn().
			Int("status", resp.StatusCode).
			Str("url", reqURL.String()).
			Str("class", res.Envelope.Class.String()).
			Msg("request rejected")
		return res.Envelope
	}

	if dest == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) failBeforeSend(cause error) error {
	res := apierror.Classify(0, nil, false)
	c.interceptor.OnEnvelope(res.Envelope)
	c.log.Error().Err(cause).Msg("request failed before send")
	return res.Envelope
}

type nopInterceptor struct{}

func (nopInterceptor) OnEnvelope(*apierror.Envelope) {}
func (nopInterceptor) OnMaintenance()                {}

// parseBaseURL normalizes a base URL, keeping any path prefix but
// dropping query and fragment.
func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, fmt.Errorf("base url is empty")
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse base url %q: %w", raw, err)
	}
	u.Path = strings.TrimSuffix(u.Path, "/")
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
