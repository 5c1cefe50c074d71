package utils

import "strings"

// AppendItem returns list with item added at the end.
func AppendItem[T any](list []T, item T) []T {
	out := make([]T, len(list), len(list)+1)
	copy(out, list)
	return append(out, item)
}

// RemoveAt returns list without the element at index i. Out-of-range indexes
// return an unchanged copy. The order of remaining entries is kept.
func RemoveAt[T any](list []T, i int) []T {
	out := make([]T, 0, len(list))
	for idx, it := range list {
		if idx == i {
			continue
		}
		out = append(out, it)
	}
	return out
}

// CompactStrings trims entries and drops blank ones.
func CompactStrings(list []string) []string {
	out := make([]string, 0, len(list))
	for _, s := range list {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
