package pipeline

import "time"

// Query is one full pipeline configuration: filter criteria, sort key and
// page selection. It is an immutable value; handlers build a fresh Query
// per request instead of mutating shared state.
type Query struct {
	Criteria Criteria
	Sort     SortKey
	PageSize int
	Page     int
}

// Validate checks the configuration before any work happens, so a bad
// query fails fast with no partial result.
func (q Query) Validate() error {
	if !ValidSortKey(q.Sort) {
		return &ConfigError{Field: "sort", Reason: "unknown sort key " + string(q.Sort)}
	}
	if q.PageSize < 1 {
		return &ConfigError{Field: "pageSize", Reason: "must be >= 1"}
	}
	return nil
}

// Run executes filter -> sort -> paginate over a snapshot. The result is
// deterministic for fixed records, query and now; callers inject now so
// lifecycle-derived filters are reproducible in tests.
func Run[R Record](records []R, q Query, now time.Time) (Page[R], error) {
	if err := q.Validate(); err != nil {
		return Page[R]{}, err
	}
	filtered := Filter(records, q.Criteria, now)
	sorted, err := Sort(filtered, q.Sort)
	if err != nil {
		return Page[R]{}, err
	}
	return Paginate(sorted, q.PageSize, q.Page)
}
