package movieapi

// Movie mirrors the movie service's detail payload, which carries the
// full OMDb-shaped field set.
type Movie struct {
	ImdbID     string `json:"imdbId"`
	Title      string `json:"title"`
	Year       string `json:"year"`
	Rated      string `json:"rated"`
	Released   string `json:"released"`
	Runtime    string `json:"runtime"`
	Genre      string `json:"genre"`
	Director   string `json:"director"`
	Writer     string `json:"writer"`
	Actors     string `json:"actors"`
	Plot       string `json:"plot"`
	Language   string `json:"language"`
	Country    string `json:"country"`
	Awards     string `json:"awards"`
	Poster     string `json:"poster"`
	ImdbRating string `json:"imdbRating"`
	ImdbVotes  string `json:"imdbVotes"`
	Type       string `json:"type"`
	DVD        string `json:"dvd"`
	BoxOffice  string `json:"boxOffice"`
	Production string `json:"production"`
	Website    string `json:"website"`
	CachedAt   string `json:"cachedAt"`
}

// SearchRequest configures GET /movies/search. Page is 1-indexed; the
// search domain never uses page 0. Year 0 and an empty Type are omitted
// from the query.
type SearchRequest struct {
	Search string
	Page   int
	Year   int
	Type   string
}

// SearchResponse mirrors the search endpoint's page shape.
type SearchResponse struct {
	Movies          []Movie `json:"movies"`
	TotalResults    int     `json:"totalResults"`
	CurrentPage     int     `json:"currentPage"`
	TotalPages      int     `json:"totalPages"`
	HasNextPage     bool    `json:"hasNextPage"`
	HasPreviousPage bool    `json:"hasPreviousPage"`
	SearchTerm      string  `json:"searchTerm"`
	ResponseTimeMs  int64   `json:"responseTimeMs"`
}

// FlagValueResponse mirrors GET /movies/flags/{name}.
type FlagValueResponse struct {
	Name    string `json:"name"`
	Enabled bool   `json:"enabled"`
}
