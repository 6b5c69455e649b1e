package types

import "github.com/go-playground/validator/v10"

// MaxPageSize caps the number of listings on one page.
const MaxPageSize = 100

// SearchRequest is a job search as submitted by a caller. Page and PageSize
// are clamped during pagination, so out-of-range values are not rejected.
type SearchRequest struct {
	Title    string `json:"title" validate:"max=200"`
	Country  string `json:"country" validate:"max=100"`
	Page     int    `json:"page"`
	PageSize int    `json:"per_page"`
}

// Validate validates the SearchRequest using the validator.
func (r *SearchRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// HasTerms reports whether the request carries a title or country filter.
func (r *SearchRequest) HasTerms() bool {
	return r.Title != "" || r.Country != ""
}

// Pagination describes the page returned by a search.
type Pagination struct {
	Page       int    `json:"page"`
	TotalPages int    `json:"pages"`
	Total      int    `json:"total"`
	PageSize   int    `json:"per_page"`
	HasPrev    bool   `json:"has_prev"`
	HasNext    bool   `json:"has_next"`
	PrevURL    string `json:"prev_url,omitempty"`
	NextURL    string `json:"next_url,omitempty"`
}

// SearchResult is one page of matching listings plus the normalized query
// values used to produce it.
type SearchResult struct {
	Results    []Listing  `json:"results"`
	Count      int        `json:"count"`
	TitleQuery string     `json:"title_q"`
	Country    string     `json:"country_q"`
	SalaryMin  *int       `json:"salary_floor,omitempty"`
	SalaryMax  *int       `json:"salary_ceiling,omitempty"`
	Pagination Pagination `json:"pagination"`
}
