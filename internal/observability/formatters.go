// Package observability provides formatted output for the CLI.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/catalitium/internal/db"
	"github.com/jonathan/catalitium/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 72
	// maxDescription is the number of description runes shown per listing
	maxDescription = 120
)

// Printer handles formatted output for the search and searches commands
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", pad(title, boxWidth-4))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %s │\n", pad(truncate(line, boxWidth-4), boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintSearchResult outputs one page of listings with their salary
// information and the page position.
func (p *Printer) PrintSearchResult(result *types.SearchResult) {
	if result == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Title:    %s\n", orAny(result.TitleQuery)))
	sb.WriteString(fmt.Sprintf("Country:  %s\n", orAny(result.Country)))
	if result.SalaryMin != nil || result.SalaryMax != nil {
		sb.WriteString(fmt.Sprintf("Salary:   %s\n", formatRange(result.SalaryMin, result.SalaryMax)))
	}
	pg := result.Pagination
	sb.WriteString(fmt.Sprintf("Matches:  %d (page %d of %d)\n", result.Count, pg.Page, max(pg.TotalPages, 1)))

	for i, l := range result.Results {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("#%d  %s\n", (pg.Page-1)*pg.PageSize+i+1, l.Title))
		sb.WriteString(fmt.Sprintf("    %s · %s", l.Company, l.Location))
		if l.DatePosted != "" {
			sb.WriteString(fmt.Sprintf(" · %s", l.DatePosted))
		}
		sb.WriteString("\n")
		if l.SalaryMin != nil || l.SalaryMax != nil {
			sb.WriteString(fmt.Sprintf("    Salary:    %s\n", formatRange(l.SalaryMin, l.SalaryMax)))
		}
		if l.HasReference() {
			sb.WriteString(fmt.Sprintf("    Reference: %s %s (%s)\n",
				formatRange(l.RefMin, l.RefMedian), l.RefCurrency, l.RefMatchLabel))
		}
		if l.Description != "" && l.Description != l.Title {
			sb.WriteString(fmt.Sprintf("    %s\n", truncate(l.Description, maxDescription)))
		}
	}

	if len(result.Results) == 0 {
		sb.WriteString("\nNo listings matched.\n")
	}

	p.printBox("SEARCH RESULTS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSearchLog outputs recorded searches, newest first.
func (p *Printer) PrintSearchLog(logs []db.SearchLog) {
	if len(logs) == 0 {
		p.printBox("RECENT SEARCHES", "No searches recorded.")
		return
	}

	var sb strings.Builder
	for _, l := range logs {
		sb.WriteString(fmt.Sprintf("%s  %-30s %s\n",
			l.CreatedAt.UTC().Format("2006-01-02 15:04"), truncate(orAny(l.Term), 30), orAny(l.Country)))
	}
	p.printBox(fmt.Sprintf("RECENT SEARCHES (%d)", len(logs)), strings.TrimSuffix(sb.String(), "\n"))
}

func formatRange(low, high *int) string {
	switch {
	case low != nil && high != nil && *low != *high:
		return fmt.Sprintf("%d-%d", *low, *high)
	case low != nil:
		return fmt.Sprintf("%d", *low)
	case high != nil:
		return fmt.Sprintf("up to %d", *high)
	default:
		return "n/a"
	}
}

func orAny(s string) string {
	if s == "" {
		return "(any)"
	}
	return s
}

func truncate(s string, width int) string {
	if utf8.RuneCountInString(s) <= width {
		return s
	}
	runes := []rune(s)
	return string(runes[:width-3]) + "..."
}

func pad(s string, width int) string {
	if n := utf8.RuneCountInString(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}
