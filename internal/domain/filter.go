package domain

import (
	"math"
	"strings"
)

// Filter selects entries from an already-loaded list. All clauses are
// AND-combined; zero values leave a clause wide open. Applying a filter is
// pure and deterministic, so the same list and criteria always yield the
// same result.
type Filter struct {
	ExpenseMin    float64 // Lower bound on TotalExpenses, default 0
	ExpenseMax    float64 // Upper bound, default +Inf (see NewFilter)
	TextQuery     string  // Case-insensitive substring over country/title/content
	MinPhotoCount int     // Minimum number of images, default 0
}

// NewFilter returns a filter that matches everything.
func NewFilter() Filter {
	return Filter{ExpenseMax: math.Inf(1)}
}

// Matches reports whether a single entry passes every clause.
func (f Filter) Matches(e *Entry) bool {
	total := TotalExpenses(e.Expenses)
	if total < f.ExpenseMin || total > f.ExpenseMax {
		return false
	}
	if q := strings.ToLower(strings.TrimSpace(f.TextQuery)); q != "" {
		if !strings.Contains(strings.ToLower(e.Country), q) &&
			!strings.Contains(strings.ToLower(e.Title), q) &&
			!strings.Contains(strings.ToLower(e.Content), q) {
			return false
		}
	}
	if len(e.Images) < f.MinPhotoCount {
		return false
	}
	return true
}

// Apply returns the sub-sequence of entries passing the filter, preserving
// the input order (newest-first as returned by the store).
func (f Filter) Apply(entries []Entry) []Entry {
	out := make([]Entry, 0, len(entries))
	for i := range entries {
		if f.Matches(&entries[i]) {
			out = append(out, entries[i])
		}
	}
	return out
}
