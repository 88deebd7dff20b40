// Package listops holds the post-processing steps shared by list-returning
// operations: stable date sorting, case-insensitive equality filters,
// inclusive date-range filters, and limiting.
//
// Date keys are lexicographically comparable strings (YYYY-MM-DD), so
// ordering never parses time. Nil keys sort last in both directions and
// never match a filter.
package listops

import (
	"sort"
	"strings"
)

// SortByDate stable-sorts items by a date key. Records without a date go to
// the end regardless of direction.
func SortByDate[T any](items []T, key func(T) *string, descending bool) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := key(items[i]), key(items[j])
		switch {
		case a == nil && b == nil:
			return false
		case a == nil:
			return false
		case b == nil:
			return true
		}
		if descending {
			return *a > *b
		}
		return *a < *b
	})
}

// FilterEqualFold keeps items whose key equals want case-insensitively.
// A nil key never matches.
func FilterEqualFold[T any](items []T, key func(T) *string, want string) []T {
	out := items[:0:0]
	for _, item := range items {
		k := key(item)
		if k != nil && strings.EqualFold(*k, want) {
			out = append(out, item)
		}
	}
	return out
}

// FilterDateFrom keeps items whose date key is on or after from.
// Items without a date are excluded once a bound is applied.
func FilterDateFrom[T any](items []T, key func(T) *string, from string) []T {
	out := items[:0:0]
	for _, item := range items {
		k := key(item)
		if k != nil && *k >= from {
			out = append(out, item)
		}
	}
	return out
}

// FilterDateTo keeps items whose date key is on or before to.
func FilterDateTo[T any](items []T, key func(T) *string, to string) []T {
	out := items[:0:0]
	for _, item := range items {
		k := key(item)
		if k != nil && *k <= to {
			out = append(out, item)
		}
	}
	return out
}

// Limit truncates items to limit entries and reports the count before
// truncation. Limit 0 or negative means no limit.
func Limit[T any](items []T, limit int) ([]T, int) {
	total := len(items)
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items, total
}
