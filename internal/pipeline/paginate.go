package pipeline

// Page is the pagination output: one slice of the ordered collection plus
// enough metadata for a caller to build pager controls. TotalPages == 0 is
// the canonical "empty result" signal and is never an error.
type Page[T any] struct {
	Items      []T `json:"items"`
	Page       int `json:"page"`
	TotalPages int `json:"total_pages"`
}

// Paginate slices items into fixed-size pages and returns the requested
// one. size must be >= 1 (ConfigError otherwise). requested is clamped
// into [1, totalPages]; clamping is a documented normalization, not an
// error. An empty collection yields {Items: [], Page: 0, TotalPages: 0}
// regardless of the requested page.
func Paginate[T any](items []T, size, requested int) (Page[T], error) {
	if size < 1 {
		return Page[T]{}, &ConfigError{Field: "pageSize", Reason: "must be >= 1"}
	}
	if len(items) == 0 {
		return Page[T]{Items: []T{}}, nil
	}
	total := (len(items) + size - 1) / size
	page := requested
	if page < 1 {
		page = 1
	}
	if page > total {
		page = total
	}
	start := (page - 1) * size
	end := start + size
	if end > len(items) {
		end = len(items)
	}
	return Page[T]{Items: items[start:end], Page: page, TotalPages: total}, nil
}
