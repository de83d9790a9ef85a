package movieapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/rs/zerolog"

	"github.com/five82/marquee/internal/transport"
)

func newClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	tc, err := transport.NewClient(transport.Options{BaseURL: baseURL, Log: zerolog.Nop()})
	if err != nil {
		t.Fatalf("transport.NewClient returned error: %v", err)
	}
	return NewClient(tc)
}

func TestClient_SearchMoviesEncodesParams(t *testing.T) {
	t.Parallel()

	var gotQuery url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/movie/movies/search" {
			http.NotFound(w, r)
			return
		}
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(SearchResponse{
			Movies:       []Movie{{ImdbID: "tt0078748", Title: "Alien"}},
			TotalResults: 1,
			CurrentPage:  1,
			TotalPages:   1,
			SearchTerm:   "alien",
		})
	}))
	t.Cleanup(server.Close)

	c := newClient(t, server.URL+"/movie")
	resp, err := c.SearchMovies(context.Background(), SearchRequest{
		Search: "alien",
		Page:   1,
		Year:   1979,
		Type:   "movie",
	})
	if err != nil {
		t.Fatalf("SearchMovies returned error: %v", err)
	}
	if gotQuery.Get("search") != "alien" ||
		gotQuery.Get("page") != "1" ||
		gotQuery.Get("year") != "1979" ||
		gotQuery.Get("type") != "movie" {
		t.Fatalf("query = %v, want all params encoded", gotQuery)
	}
	if len(resp.Movies) != 1 || resp.Movies[0].ImdbID != "tt0078748" {
		t.Fatalf("movies = %#v, want one result", resp.Movies)
	}
}

func TestClient_SearchMoviesOmitsUnsetFilters(t *testing.T) {
	t.Parallel()

	var gotQuery url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(SearchResponse{})
	}))
	t.Cleanup(server.Close)

	c := newClient(t, server.URL)
	if _, err := c.SearchMovies(context.Background(), SearchRequest{Search: "dune", Page: 2}); err != nil {
		t.Fatalf("SearchMovies returned error: %v", err)
	}
	if gotQuery.Has("year") || gotQuery.Has("type") {
		t.Fatalf("query = %v, want year/type omitted when unset", gotQuery)
	}
}

func TestClient_GetMovieDetailsEscapesID(t *testing.T) {
	t.Parallel()

	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(Movie{ImdbID: "tt0078748", Title: "Alien"})
	}))
	t.Cleanup(server.Close)

	c := newClient(t, server.URL)
	movie, err := c.GetMovieDetails(context.Background(), "tt0078748")
	if err != nil {
		t.Fatalf("GetMovieDetails returned error: %v", err)
	}
	if gotPath != "/movies/details/tt0078748" {
		t.Fatalf("path = %q, want details path", gotPath)
	}
	if movie.Title != "Alien" {
		t.Fatalf("movie = %#v, want Alien", movie)
	}

	if _, err := c.GetMovieDetails(context.Background(), ""); err == nil {
		t.Fatal("GetMovieDetails accepted empty id, want error")
	}
}

func TestClient_FetchFlagValue(t *testing.T) {
	t.Parallel()

	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(FlagValueResponse{Name: "dark_mode", Enabled: true})
	}))
	t.Cleanup(server.Close)

	c := newClient(t, server.URL)
	enabled, err := c.FetchFlagValue(context.Background(), "dark_mode")
	if err != nil {
		t.Fatalf("FetchFlagValue returned error: %v", err)
	}
	if gotPath != "/movies/flags/dark_mode" {
		t.Fatalf("path = %q, want flag passthrough path", gotPath)
	}
	if !enabled {
		t.Fatal("enabled = false, want true")
	}
}
