// Package listing implements the in-memory search and filter applied to
// collections fetched in full from the remote API. There is no server-side
// filtering or pagination; every list page works over one fetched slice.
package listing

import "strings"

// Filters represents standard list page filters.
type Filters struct {
	Search string
	Status string
}

// FromQuery builds Filters from raw query values.
func FromQuery(search, status string) Filters {
	return Filters{
		Search: strings.TrimSpace(search),
		Status: strings.TrimSpace(status),
	}
}

// MatchesSearch reports whether any of the fields contains the search term,
// case-insensitively. An empty term matches everything.
func (f Filters) MatchesSearch(fields ...string) bool {
	if f.Search == "" {
		return true
	}
	needle := strings.ToLower(f.Search)
	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

// MatchesStatus reports whether status equals the filter, or the filter is
// unset.
func (f Filters) MatchesStatus(status string) bool {
	return f.Status == "" || strings.EqualFold(f.Status, status)
}

// Apply returns the elements of items that pass the predicate, preserving
// order. The input slice is never mutated.
func Apply[T any](items []T, keep func(T) bool) []T {
	if keep == nil {
		return items
	}
	out := make([]T, 0, len(items))
	for _, item := range items {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out
}
