package pipeline

import "strings"

// AllKey is the reserved aggregate key holding the total record count.
const AllKey = "all"

// CountBy groups items by keyFn and returns per-key counts plus the
// reserved "all" key with the total. String keys are normalized to lower
// case before grouping, so "Tecnologia" and "tecnologia" share a bucket.
//
// Counts are meant to run over the full collection (scoped only by
// ownership), never over a filtered view: their purpose is to show how
// many records exist per bucket regardless of the active filters. The map
// is rebuilt from scratch on every call. A record key that normalizes to
// "all" is shadowed by the reserved total.
func CountBy[T any](items []T, keyFn func(T) string) map[string]int {
	counts := make(map[string]int, 8)
	for _, it := range items {
		k := strings.ToLower(strings.TrimSpace(keyFn(it)))
		counts[k]++
	}
	counts[AllKey] = len(items)
	return counts
}
