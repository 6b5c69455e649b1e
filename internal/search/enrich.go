// Package search runs the listing pipeline: enrichment, filtering and pagination.
package search

import (
	"github.com/jonathan/catalitium/internal/salaryref"
	"github.com/jonathan/catalitium/internal/types"
)

// Enrich attaches reference salary data to every listing whose city and
// country (or country alone) appear in idx. Listings are updated in place and
// the same slice is returned. A nil or empty index leaves them untouched.
func Enrich(listings []types.Listing, idx *salaryref.Index) []types.Listing {
	if idx.Empty() {
		return listings
	}
	for i := range listings {
		l := &listings[i]
		ref, ok := idx.Lookup(l.City, l.CountryRaw)
		if !ok {
			continue
		}
		l.RefMedian = ref.Median
		l.RefMin = ref.Min
		l.RefCurrency = ref.Currency
		l.RefMatchLabel = ref.Label
		// reference data only carries min and median
		l.RefSalaryMin = ref.Min
		l.RefSalaryMax = ref.Median
	}
	return listings
}
