package state

import (
	"context"
	"strings"
	"sync"

	"github.com/five82/marquee/internal/dedupe"
	"github.com/five82/marquee/internal/movieapi"
)

const searchHistoryLimit = 10

// SearchParams is the movie store's query state. Page is 1-indexed.
// Year 0 and an empty Type mean the filter is unset.
type SearchParams struct {
	Search string
	Page   int
	Year   int
	Type   string
}

// MovieStore holds search results, the current-movie slot, and a
// bounded search history for the movie console.
type MovieStore struct {
	mu  sync.RWMutex
	svc movieapi.Service

	results *movieapi.SearchResponse
	current *movieapi.Movie
	history []string
	loading bool
	err     string
	params  SearchParams

	// duplicates is the diagnostic for the most recent result page,
	// computed before deduplication.
	duplicates dedupe.Stats
}

// MovieSnapshot is an immutable view of the movie store.
type MovieSnapshot struct {
	Results    *movieapi.SearchResponse
	Current    *movieapi.Movie
	History    []string
	Loading    bool
	Err        string
	Params     SearchParams
	Duplicates dedupe.Stats
}

// NewMovieStore builds a store backed by the given service.
func NewMovieStore(svc movieapi.Service) *MovieStore {
	return &MovieStore{svc: svc, params: SearchParams{Page: 1}}
}

// Search runs the query described by the current params. On success the
// result page replaces the previous one with duplicates collapsed by
// IMDb id, and the trimmed search term joins the history. On failure
// the previous results stay visible.
func (s *MovieStore) Search(ctx context.Context) error {
	s.mu.Lock()
	s.loading = true
	s.err = ""
	req := movieapi.SearchRequest{
		Search: s.params.Search,
		Page:   s.params.Page,
		Year:   s.params.Year,
		Type:   s.params.Type,
	}
	s.mu.Unlock()

	resp, err := s.svc.SearchMovies(ctx, req)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.err = err.Error()
		return err
	}
	s.duplicates = dedupe.Info(resp.Movies,
		func(m movieapi.Movie) string { return m.ImdbID },
		func(m movieapi.Movie) string { return m.Title })
	resp.Movies = dedupe.ByKey(resp.Movies, func(m movieapi.Movie) string { return m.ImdbID })
	s.results = &resp
	s.params.Page = resp.CurrentPage
	s.recordSearchLocked(resp.SearchTerm)
	return nil
}

// Details fetches one movie into the current-movie slot.
func (s *MovieStore) Details(ctx context.Context, imdbID string) error {
	s.mu.Lock()
	s.loading = true
	s.err = ""
	s.mu.Unlock()

	movie, err := s.svc.GetMovieDetails(ctx, imdbID)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.err = err.Error()
		return err
	}
	s.current = &movie
	return nil
}

// SetQuery replaces the search term and filters and forces a fresh
// query from page 1.
func (s *MovieStore) SetQuery(search string, year int, movieType string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.params.Search = search
	s.params.Year = year
	s.params.Type = movieType
	s.params.Page = 1
}

// SetPage moves to the given 1-indexed page, bounded by the server's
// reported page count when one is known.
func (s *MovieStore) SetPage(page int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if page < 1 {
		page = 1
	}
	if s.results != nil && s.results.TotalPages > 0 && page > s.results.TotalPages {
		page = s.results.TotalPages
	}
	s.params.Page = page
}

// ClearResults drops the result page.
func (s *MovieStore) ClearResults() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results = nil
	s.duplicates = dedupe.Stats{}
}

// ClearCurrent empties the current-movie slot. Called on navigation
// away from the details view; an in-flight fetch is not cancelled and
// may still settle into the slot afterwards.
func (s *MovieStore) ClearCurrent() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = nil
}

// ClearError drops the local error message.
func (s *MovieStore) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = ""
}

// ClearHistory empties the search history.
func (s *MovieStore) ClearHistory() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = nil
}

// Snapshot returns a copy of the store state.
func (s *MovieStore) Snapshot() MovieSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := MovieSnapshot{
		Loading:    s.loading,
		Err:        s.err,
		Params:     s.params,
		Duplicates: s.duplicates,
	}
	if s.results != nil {
		results := *s.results
		if len(s.results.Movies) > 0 {
			results.Movies = make([]movieapi.Movie, len(s.results.Movies))
			copy(results.Movies, s.results.Movies)
		}
		snap.Results = &results
	}
	if s.current != nil {
		current := *s.current
		snap.Current = &current
	}
	if len(s.history) > 0 {
		snap.History = make([]string, len(s.history))
		copy(snap.History, s.history)
	}
	return snap
}

// recordSearchLocked prepends a trimmed, non-empty, unseen term and
// truncates the history to its bound.
func (s *MovieStore) recordSearchLocked(term string) {
	term = strings.TrimSpace(term)
	if term == "" {
		return
	}
	for _, existing := range s.history {
		if existing == term {
			return
		}
	}
	s.history = append([]string{term}, s.history...)
	if len(s.history) > searchHistoryLimit {
		s.history = s.history[:searchHistoryLimit]
	}
}
