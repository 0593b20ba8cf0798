// Package pipeline implements the in-memory collection pipeline shared by
// the catalog, coupon and event views: filtering by independent criteria,
// stable ordering, fixed-size pagination and aggregate counts.
//
// The pipeline is pure: it performs no I/O, never mutates its inputs and
// takes the current time as an explicit parameter so results are
// reproducible. Callers load a full collection, run a Query over it and
// hand the resulting page to whatever renders it.
package pipeline

import "time"

// Record is the contract a domain type must satisfy to flow through the
// pipeline. Each accessor maps to one filter or sort dimension; types with
// no sensible value for a dimension return the zero value ("" / 0).
type Record interface {
	// Key is the stable unique identifier.
	Key() string
	// Group is the category/type discriminator, "" when uncategorized.
	Group() string
	// OwnedBy identifies the creating user, "" when unowned.
	OwnedBy() string
	// Amount is the numeric field used by price sorting and MinValue.
	Amount() float64
	// Label is the display name used by lexicographic sorting.
	Label() string
	// OccurredAt is the creation or start instant used by date sorting.
	OccurredAt() time.Time
	// SearchText lists the fields free-text search matches against.
	SearchText() []string
	// Lifecycle is the derived status at the given instant. It must be a
	// pure function of the record and now; the pipeline never caches it
	// across passes.
	Lifecycle(now time.Time) string
}
