// Package salaryref builds and caches the salary reference lookup table.
package salaryref

import (
	"math"
	"strconv"
	"strings"
)

// DefaultCurrency is used for reference rows without a currency ticker.
const DefaultCurrency = "USD"

// Entry is a salary benchmark for a city or a whole country.
type Entry struct {
	Median   *int   `json:"median,omitempty"`
	Min      *int   `json:"min,omitempty"`
	Currency string `json:"currency"`
	Label    string `json:"label"`
}

type cityKey struct {
	city    string
	country string
}

// Index maps (city, country) pairs to reference entries, with a per-country
// fallback. The zero value is an empty index.
type Index struct {
	byCity    map[cityKey]Entry
	byCountry map[string]Entry
}

// Build creates an index from reference rows with the columns City, Country,
// CurrencyTicker, MedianSalary and MinSalary.
//
// Later rows replace earlier ones for the same city and country. The country
// fallback is taken from the first row seen for that country and never
// replaced, even by rows with an empty city.
func Build(rows []map[string]string) *Index {
	idx := &Index{
		byCity:    make(map[cityKey]Entry),
		byCountry: make(map[string]Entry),
	}

	for _, row := range rows {
		rawCity := strings.TrimSpace(row["City"])
		rawCountry := strings.TrimSpace(row["Country"])
		country := strings.ToLower(rawCountry)
		if country == "" {
			continue
		}

		currency := strings.ToUpper(strings.TrimSpace(row["CurrencyTicker"]))
		if currency == "" {
			currency = DefaultCurrency
		}
		median := parseAmount(row["MedianSalary"])
		minVal := parseAmount(row["MinSalary"])

		label := rawCity
		if label == "" {
			label = rawCountry
		}
		idx.byCity[cityKey{strings.ToLower(rawCity), country}] = Entry{
			Median:   median,
			Min:      minVal,
			Currency: currency,
			Label:    label,
		}

		if _, ok := idx.byCountry[country]; !ok {
			idx.byCountry[country] = Entry{
				Median:   median,
				Min:      minVal,
				Currency: currency,
				Label:    rawCountry,
			}
		}
	}
	return idx
}

// Lookup returns the entry for city and country, falling back to the
// country-wide entry. Inputs are compared case-insensitively.
func (idx *Index) Lookup(city, country string) (Entry, bool) {
	if idx == nil {
		return Entry{}, false
	}
	key := cityKey{
		city:    strings.ToLower(strings.TrimSpace(city)),
		country: strings.ToLower(strings.TrimSpace(country)),
	}
	if e, ok := idx.byCity[key]; ok {
		return e, true
	}
	if e, ok := idx.byCountry[key.country]; ok {
		return e, true
	}
	return Entry{}, false
}

// Len reports the number of (city, country) entries.
func (idx *Index) Len() int {
	if idx == nil {
		return 0
	}
	return len(idx.byCity)
}

// Empty reports whether the index holds no entries at all.
func (idx *Index) Empty() bool {
	return idx == nil || (len(idx.byCity) == 0 && len(idx.byCountry) == 0)
}

// parseAmount accepts integers and decimals ("5200.50"); anything else is nil.
func parseAmount(s string) *int {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	n := int(f)
	return &n
}
