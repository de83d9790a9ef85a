// Package movieapi is the HTTP client for the movie-search service.
package movieapi

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/five82/marquee/internal/transport"
)

// Service defines the movie operations the stores consume.
type Service interface {
	SearchMovies(ctx context.Context, req SearchRequest) (SearchResponse, error)
	GetMovieDetails(ctx context.Context, imdbID string) (Movie, error)
}

// Ensure Client implements Service at compile time.
var _ Service = (*Client)(nil)

// Client talks to the movie service HTTP API.
type Client struct {
	t *transport.Client
}

// NewClient wraps a transport client.
func NewClient(t *transport.Client) *Client {
	return &Client{t: t}
}

// SearchMovies runs a paginated title search.
func (c *Client) SearchMovies(ctx context.Context, req SearchRequest) (SearchResponse, error) {
	query := url.Values{}
	query.Set("search", req.Search)
	query.Set("page", strconv.Itoa(req.Page))
	if req.Year > 0 {
		query.Set("year", strconv.Itoa(req.Year))
	}
	if req.Type != "" {
		query.Set("type", req.Type)
	}
	var payload SearchResponse
	if err := c.t.Get(ctx, []string{"movies", "search"}, query, &payload); err != nil {
		return SearchResponse{}, err
	}
	return payload, nil
}

// GetMovieDetails retrieves a single movie by its IMDb id.
func (c *Client) GetMovieDetails(ctx context.Context, imdbID string) (Movie, error) {
	if imdbID == "" {
		return Movie{}, fmt.Errorf("imdb id required")
	}
	var payload Movie
	if err := c.t.Get(ctx, []string{"movies", "details", imdbID}, nil, &payload); err != nil {
		return Movie{}, err
	}
	return payload, nil
}

// FetchFlagValue reads a named feature flag through the movie service's
// flag passthrough endpoint. This is the poller's view of the service.
func (c *Client) FetchFlagValue(ctx context.Context, name string) (bool, error) {
	if name == "" {
		return false, fmt.Errorf("flag name required")
	}
	var payload FlagValueResponse
	if err := c.t.Get(ctx, []string{"movies", "flags", name}, nil, &payload); err != nil {
		return false, err
	}
	return payload.Enabled, nil
}
