package utils

import "strings"

// FilterAll is the sentinel filter value that matches every record.
const FilterAll = "all"

// MatchesSearch reports whether the lowercased term is a substring of any field.
// An empty term matches everything.
func MatchesSearch(term string, fields ...string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}

// MatchesFilter is an exact match against the selected value; "" and "all" match any value.
func MatchesFilter(selected, value string) bool {
	if IsFilterAll(selected) {
		return true
	}
	return selected == value
}

// IsFilterAll reports whether selected disables the filter.
func IsFilterAll(selected string) bool {
	s := strings.TrimSpace(selected)
	return s == "" || strings.EqualFold(s, FilterAll)
}

// Filter returns the items accepted by keep, preserving order.
func Filter[T any](items []T, keep func(T) bool) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if keep(it) {
			out = append(out, it)
		}
	}
	return out
}
