// Package money extracts salary figures from unstructured text.
package money

import (
	"math"
	"regexp"
	"slices"
	"strconv"
	"strings"
)

// numberPattern matches a digit run that may contain thousands separators and
// spaces, optionally ending in k.
const numberPattern = `\d[\d,.\s]*[kK]?`

var (
	numberRe  = regexp.MustCompile(numberPattern)
	rangeRe   = regexp.MustCompile(`(?i)(` + numberPattern + `)\s*[-–]\s*(` + numberPattern + `)`)
	floorRe   = regexp.MustCompile(`(?i)>\s*=?\s*(` + numberPattern + `)`)
	ceilingRe = regexp.MustCompile(`(?i)<\s*=?\s*(` + numberPattern + `)`)
	bareRe    = regexp.MustCompile(`(?i)(` + numberPattern + `)`)
)

// Query is a search string with its salary expression split out.
type Query struct {
	Text    string
	Floor   *int
	Ceiling *int
}

// ParseNumbers returns every amount found in text, in order. Periods and
// commas are thousands separators and a trailing k multiplies by 1000.
// Fragments that do not reduce to digits are skipped.
func ParseNumbers(text string) []int {
	var nums []int
	for _, raw := range numberRe.FindAllString(text, -1) {
		clean := strings.ToLower(raw)
		clean = strings.Map(func(r rune) rune {
			switch r {
			case ',', ' ':
				return -1
			}
			return r
		}, clean)

		mult := 1
		if strings.HasSuffix(clean, "k") {
			mult = 1000
			clean = strings.TrimRight(clean, "k")
		}
		clean = strings.ReplaceAll(clean, ".", "")

		if !isDigits(clean) {
			continue
		}
		n, err := strconv.Atoi(clean)
		if err != nil {
			continue
		}
		if mult > 1 && n > math.MaxInt/mult {
			continue
		}
		nums = append(nums, n*mult)
	}
	return nums
}

// ParseRange returns the smallest and largest amount in text. A single amount
// yields a nil max; no amount yields (nil, nil). Order in the text does not
// matter.
func ParseRange(text string) (minVal, maxVal *int) {
	nums := ParseNumbers(text)
	switch len(nums) {
	case 0:
		return nil, nil
	case 1:
		return ptr(nums[0]), nil
	}
	return ptr(slices.Min(nums)), ptr(slices.Max(nums))
}

// ParseQuery splits a salary expression out of a search string. Patterns are
// tried in order: "a-b" range, ">a", "<b", then any bare number as a floor.
// The matched span is removed from the returned text.
func ParseQuery(text string) Query {
	s := strings.TrimSpace(text)
	if s == "" {
		return Query{}
	}

	if m := rangeRe.FindStringSubmatchIndex(s); m != nil {
		low := ParseNumbers(s[m[2]:m[3]])
		high := ParseNumbers(s[m[4]:m[5]])
		q := Query{Text: excise(s, m[0], m[1])}
		if len(low) > 0 {
			q.Floor = ptr(low[0])
		}
		if len(high) > 0 {
			q.Ceiling = ptr(high[len(high)-1])
		}
		return q
	}

	if m := floorRe.FindStringSubmatchIndex(s); m != nil {
		return Query{Text: excise(s, m[0], m[1]), Floor: first(s[m[2]:m[3]])}
	}
	if m := ceilingRe.FindStringSubmatchIndex(s); m != nil {
		return Query{Text: excise(s, m[0], m[1]), Ceiling: first(s[m[2]:m[3]])}
	}
	if m := bareRe.FindStringSubmatchIndex(s); m != nil {
		return Query{Text: excise(s, m[0], m[1]), Floor: first(s[m[2]:m[3]])}
	}

	return Query{Text: s}
}

func excise(s string, start, end int) string {
	return strings.TrimSpace(s[:start] + s[end:])
}

func first(text string) *int {
	if nums := ParseNumbers(text); len(nums) > 0 {
		return ptr(nums[0])
	}
	return nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func ptr(n int) *int { return &n }
