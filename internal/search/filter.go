package search

import (
	"regexp"
	"strings"

	"github.com/jonathan/catalitium/internal/normalize"
	"github.com/jonathan/catalitium/internal/types"
)

var tokenSplitRe = regexp.MustCompile(`[^\p{L}\p{N}_+]+`)

// Filter returns the listings that match every supplied constraint, in their
// input order. titleQuery and countryQuery are normalized here; empty
// queries and nil bounds are not applied.
func Filter(listings []types.Listing, titleQuery, countryQuery string, floor, ceiling *int) []types.Listing {
	tokens := Tokens(normalize.Title(titleQuery))
	country := strings.ToLower(normalize.Country(countryQuery))

	out := make([]types.Listing, 0, len(listings))
	for _, l := range listings {
		if !matchesTokens(tokens, l.Title+" "+l.Company+" "+l.Description) {
			continue
		}
		if country != "" && !strings.Contains(strings.ToLower(l.Location), country) {
			continue
		}
		if (floor != nil || ceiling != nil) && !salaryInRange(l, floor, ceiling) {
			continue
		}
		out = append(out, l)
	}
	return out
}

// Tokens lowercases s and splits it on anything other than letters, digits,
// underscores and plus signs.
func Tokens(s string) []string {
	var out []string
	for _, t := range tokenSplitRe.Split(strings.ToLower(s), -1) {
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}

// FuzzyMatch reports whether every token of needle occurs somewhere in hay.
// An empty needle matches everything.
func FuzzyMatch(needle, hay string) bool {
	return matchesTokens(Tokens(needle), hay)
}

func matchesTokens(tokens []string, hay string) bool {
	if len(tokens) == 0 {
		return true
	}
	hay = strings.ToLower(hay)
	for _, t := range tokens {
		if !strings.Contains(hay, t) {
			return false
		}
	}
	return true
}

// EffectiveSalaryRange returns the range a listing is filtered on: its own
// salary when either bound is set and non-zero, otherwise the reference range
// under the same rule, otherwise (nil, nil).
func EffectiveSalaryRange(l types.Listing) (low, high *int) {
	if truthy(l.SalaryMin) || truthy(l.SalaryMax) {
		return l.SalaryMin, l.SalaryMax
	}
	if truthy(l.RefSalaryMin) || truthy(l.RefSalaryMax) {
		return l.RefSalaryMin, l.RefSalaryMax
	}
	return nil, nil
}

func salaryInRange(l types.Listing, floor, ceiling *int) bool {
	lowPtr, highPtr := EffectiveSalaryRange(l)
	if lowPtr == nil && highPtr == nil {
		return false
	}
	low := 0
	if lowPtr != nil {
		low = *lowPtr
	}
	high := low
	if highPtr != nil {
		high = *highPtr
	}
	if floor != nil && high < *floor {
		return false
	}
	if ceiling != nil && low > *ceiling {
		return false
	}
	return true
}

func truthy(n *int) bool {
	return n != nil && *n != 0
}
