package flagapi

// Flag is a feature flag as the flag service returns it.
type Flag struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Enabled     bool   `json:"enabled"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
	CreatedBy   string `json:"createdBy"`
	UpdatedBy   string `json:"updatedBy"`
}

// FlagListResponse mirrors GET /flags. totalPages is computed by the
// server; clients only use it to bound navigation.
type FlagListResponse struct {
	Flags      []Flag `json:"flags"`
	Total      int    `json:"total"`
	Page       int    `json:"page"`
	Size       int    `json:"size"`
	TotalPages int    `json:"totalPages"`
}

// CreateFlagRequest is the POST /flags body.
type CreateFlagRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Enabled     bool   `json:"enabled"`
}

// UpdateFlagRequest is the PUT /flags/{name} body. Nil fields are
// omitted so the server leaves them unchanged.
type UpdateFlagRequest struct {
	Description *string `json:"description,omitempty"`
	Enabled     *bool   `json:"enabled,omitempty"`
}
