package types

// Placeholders for listings that lack a title or company.
const (
	UntitledListing = "(Untitled)"
	UnknownCompany  = "—"
)

// Listing is a job posting parsed from the listings dataset. The Ref* fields
// are set by salary reference enrichment and stay empty when no reference
// entry matched.
type Listing struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	Description string `json:"description"`
	DatePosted  string `json:"date_posted"`
	SalaryMin   *int   `json:"salary_min"`
	SalaryMax   *int   `json:"salary_max"`
	CountryCode string `json:"-"`
	City        string `json:"city,omitempty"`
	CountryRaw  string `json:"country,omitempty"`

	RefMedian     *int   `json:"ref_median,omitempty"`
	RefMin        *int   `json:"ref_min,omitempty"`
	RefCurrency   string `json:"ref_currency,omitempty"`
	RefMatchLabel string `json:"ref_match_label,omitempty"`
	RefSalaryMin  *int   `json:"ref_salary_min,omitempty"`
	RefSalaryMax  *int   `json:"ref_salary_max,omitempty"`
}

// HasReference reports whether enrichment attached a reference entry.
func (l *Listing) HasReference() bool {
	return l.RefMatchLabel != "" || l.RefCurrency != ""
}
