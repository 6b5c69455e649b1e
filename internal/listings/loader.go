// Package listings turns raw job dataset rows into Listing records.
package listings

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/jonathan/catalitium/internal/dataset"
	"github.com/jonathan/catalitium/internal/money"
	"github.com/jonathan/catalitium/internal/normalize"
	"github.com/jonathan/catalitium/internal/types"
)

// DefaultDelimiter is assumed for listing files whose delimiter cannot be sniffed.
const DefaultDelimiter = '\t'

// RemoteLocation is used when a row carries no location, city or country.
const RemoteLocation = "Remote"

// Load reads the listings file at path. A missing file yields no listings.
func Load(path string) ([]types.Listing, error) {
	rows, err := dataset.ReadFile(path, DefaultDelimiter)
	if err != nil {
		return nil, err
	}
	return FromRows(rows), nil
}

// FromRows converts dataset rows to listings, dropping rows that have neither
// a title nor a company. Row IDs default to the 1-based row number.
func FromRows(rows []dataset.Row) []types.Listing {
	out := make([]types.Listing, 0, len(rows))
	for i, row := range rows {
		l, ok := fromRow(row, i+1)
		if ok {
			out = append(out, l)
		}
	}
	return out
}

func fromRow(row dataset.Row, n int) (types.Listing, bool) {
	title := field(row, "JobTitle", "Title")
	company := field(row, "CompanyName", "Company")
	if title == "" && company == "" {
		return types.Listing{}, false
	}

	city := field(row, "City")
	countryRaw := field(row, "Country")
	location := field(row, "Location")
	if location == "" {
		location = joinNonEmpty(", ", city, countryRaw)
	}
	if location == "" {
		location = RemoteLocation
	}

	description := plainText(field(row, "Description", "Summary", "NormalizedJob"))
	if description == "" {
		description = title
	}

	datePosted := field(row, "CreatedAt", "DatePosted")
	if r := []rune(datePosted); len(r) > 10 {
		datePosted = string(r[:10])
	}

	salaryMin, salaryMax := money.ParseRange(field(row, "Salary"))

	code := normalize.CountryCodeFromLocation(location)
	if code == "" {
		code = normalize.Country(countryRaw)
	}

	id := field(row, "JobID", "Id")
	if id == "" {
		id = strconv.Itoa(n)
	}

	if title == "" {
		title = types.UntitledListing
	}
	if company == "" {
		company = types.UnknownCompany
	}

	return types.Listing{
		ID:          id,
		Title:       title,
		Company:     company,
		Location:    location,
		Description: description,
		DatePosted:  datePosted,
		SalaryMin:   salaryMin,
		SalaryMax:   salaryMax,
		CountryCode: code,
		City:        city,
		CountryRaw:  countryRaw,
	}, true
}

// field returns the first non-empty trimmed value among the given columns.
func field(row dataset.Row, names ...string) string {
	for _, name := range names {
		if v := strings.TrimSpace(row[name]); v != "" {
			return v
		}
	}
	return ""
}

func joinNonEmpty(sep string, parts ...string) string {
	var kept []string
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}

// plainText strips markup from descriptions scraped as HTML.
func plainText(s string) string {
	if !strings.Contains(s, "<") {
		return s
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return s
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}
