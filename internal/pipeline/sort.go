package pipeline

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortKey selects the comparator for ordering a filtered collection.
// Direction is implied by the key for price; the other keys are ascending.
type SortKey string

const (
	SortPriceAsc  SortKey = "price-asc"
	SortPriceDesc SortKey = "price-desc"
	SortName      SortKey = "name"
	SortDate      SortKey = "date"
	// SortRelevance preserves input order. This is stable identity by
	// contract, not a missing implementation: "relevance" means whatever
	// order the caller supplied the collection in.
	SortRelevance SortKey = "relevance"
)

// ValidSortKey reports whether key is one of the supported comparators.
// The empty key is accepted and treated as SortRelevance.
func ValidSortKey(key SortKey) bool {
	switch key {
	case "", SortPriceAsc, SortPriceDesc, SortName, SortDate, SortRelevance:
		return true
	}
	return false
}

// Sort returns a new slice ordered by key. Sorting is stable: records
// comparing equal keep their relative input order. The input is never
// mutated. An unknown key is a ConfigError.
func Sort[R Record](records []R, key SortKey) ([]R, error) {
	if !ValidSortKey(key) {
		return nil, &ConfigError{Field: "sort", Reason: "unknown sort key " + string(key)}
	}
	out := make([]R, len(records))
	copy(out, records)
	switch key {
	case SortPriceAsc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Amount() < out[j].Amount() })
	case SortPriceDesc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Amount() > out[j].Amount() })
	case SortName:
		// Collation, not codepoint order: accented names sort among
		// their base letters. A Collator carries mutable buffers, so
		// each sort builds its own.
		col := collate.New(language.Portuguese, collate.IgnoreCase)
		sort.SliceStable(out, func(i, j int) bool {
			return col.CompareString(out[i].Label(), out[j].Label()) < 0
		})
	case SortDate:
		sort.SliceStable(out, func(i, j int) bool { return out[i].OccurredAt().Before(out[j].OccurredAt()) })
	case "", SortRelevance:
		// identity
	}
	return out, nil
}
