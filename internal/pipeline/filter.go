package pipeline

import (
	"strings"
	"time"
)

// Criteria is the set of active filter parameters for one pipeline pass.
// Each present criterion narrows the set via logical AND; a zero-value
// field ("" or nil) is a no-op. Predicates are commutative, so the order
// they are applied in only matters for speed.
type Criteria struct {
	// Category matches the record group exactly, case-insensitively.
	Category string
	// Search is a case-insensitive substring matched against each of the
	// record's text fields (OR across fields). Whitespace-only input is
	// treated as absent.
	Search string
	// MinValue is an inclusive lower bound on the record's numeric field.
	// nil disables the bound; a pointer is used so 0 stays a valid bound.
	MinValue *float64
	// Status matches the derived lifecycle status exactly.
	Status string
	// OwnerID scopes the result to a single seller/organizer.
	OwnerID string
}

// IsZero reports whether no criterion is active.
func (c Criteria) IsZero() bool {
	return c.Category == "" && strings.TrimSpace(c.Search) == "" &&
		c.MinValue == nil && c.Status == "" && c.OwnerID == ""
}

// Filter returns the records matching every active criterion, preserving
// input order. The input slice is never mutated. now is only consulted
// when a Status criterion is active, since lifecycle is time-derived.
//
// Cheapest predicates run first (owner and category are plain string
// comparisons, search is the most expensive); this is a linear scan, which
// is fine at the collection sizes the store holds.
func Filter[R Record](records []R, c Criteria, now time.Time) []R {
	out := make([]R, 0, len(records))
	search := strings.ToLower(strings.TrimSpace(c.Search))
	category := strings.ToLower(c.Category)
	for _, r := range records {
		if c.OwnerID != "" && r.OwnedBy() != c.OwnerID {
			continue
		}
		if category != "" && strings.ToLower(r.Group()) != category {
			continue
		}
		if c.MinValue != nil && r.Amount() < *c.MinValue {
			continue
		}
		if c.Status != "" && r.Lifecycle(now) != c.Status {
			continue
		}
		if search != "" && !matchesSearch(r, search) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func matchesSearch(r Record, needle string) bool {
	for _, f := range r.SearchText() {
		if strings.Contains(strings.ToLower(f), needle) {
			return true
		}
	}
	return false
}
