// Package flagapi is the HTTP client for the feature-flag service.
package flagapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/five82/marquee/internal/transport"
)

// Service defines the flag operations the stores consume. Implemented
// by *Client and by test fakes.
type Service interface {
	ListFlags(ctx context.Context, page, size int) (FlagListResponse, error)
	GetFlag(ctx context.Context, name string) (Flag, error)
	CreateFlag(ctx context.Context, req CreateFlagRequest) (Flag, error)
	UpdateFlag(ctx context.Context, name string, req UpdateFlagRequest) (Flag, error)
	DeleteFlag(ctx context.Context, name string) error
}

// Ensure Client implements Service at compile time.
var _ Service = (*Client)(nil)

// Client talks to the feature-flag service HTTP API.
type Client struct {
	t *transport.Client
}

// NewClient wraps a transport client.
func NewClient(t *transport.Client) *Client {
	return &Client{t: t}
}

// ListFlags retrieves one page of flags.
func (c *Client) ListFlags(ctx context.Context, page, size int) (FlagListResponse, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("size", strconv.Itoa(size))
	var payload FlagListResponse
	if err := c.t.Get(ctx, []string{"flags"}, query, &payload); err != nil {
		return FlagListResponse{}, err
	}
	return payload, nil
}

// GetFlag retrieves a single flag by name.
func (c *Client) GetFlag(ctx context.Context, name string) (Flag, error) {
	if name == "" {
		return Flag{}, fmt.Errorf("flag name required")
	}
	var payload Flag
	if err := c.t.Get(ctx, []string{"flags", name}, nil, &payload); err != nil {
		return Flag{}, err
	}
	return payload, nil
}

// CreateFlag creates a new flag and returns the server's view of it.
func (c *Client) CreateFlag(ctx context.Context, req CreateFlagRequest) (Flag, error) {
	var payload Flag
	if err := c.t.Do(ctx, http.MethodPost, []string{"flags"}, nil, req, &payload); err != nil {
		return Flag{}, err
	}
	return payload, nil
}

// UpdateFlag patches an existing flag by name.
func (c *Client) UpdateFlag(ctx context.Context, name string, req UpdateFlagRequest) (Flag, error) {
	if name == "" {
		return Flag{}, fmt.Errorf("flag name required")
	}
	var payload Flag
	if err := c.t.Do(ctx, http.MethodPut, []string{"flags", name}, nil, req, &payload); err != nil {
		return Flag{}, err
	}
	return payload, nil
}

// DeleteFlag removes a flag by name. The service returns no body.
func (c *Client) DeleteFlag(ctx context.Context, name string) error {
	if name == "" {
		return fmt.Errorf("flag name required")
	}
	return c.t.Do(ctx, http.MethodDelete, []string{"flags", name}, nil, nil, nil)
}

// FetchFlagValue reports whether a named flag is enabled. This is the
// poller's view of the service.
func (c *Client) FetchFlagValue(ctx context.Context, name string) (bool, error) {
	flag, err := c.GetFlag(ctx, name)
	if err != nil {
		return false, err
	}
	return flag.Enabled, nil
}
