// Package dedupe collapses list results by natural key while preserving
// first-seen order.
package dedupe

// ByKey returns items with later duplicates removed. The first occurrence
// of each key is kept and relative order is preserved, so the function is
// stable under repeated application. The input is never mutated.
func ByKey[T any](items []T, key func(T) string) []T {
	if len(items) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(items))
	unique := make([]T, 0, len(items))
	for _, item := range items {
		k := key(item)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		unique = append(unique, item)
	}
	return unique
}

// HasDuplicates reports whether any key appears more than once.
func HasDuplicates[T any](items []T, key func(T) string) bool {
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		k := key(item)
		if _, ok := seen[k]; ok {
			return true
		}
		seen[k] = struct{}{}
	}
	return false
}

// Duplicate describes one key that appeared more than once.
type Duplicate struct {
	Key   string
	Label string
	Count int
}

// Stats summarizes duplication in a list. Used for diagnostics only.
type Stats struct {
	Total      int
	Unique     int
	Duplicates int
	Entries    []Duplicate
}

// Info analyzes items without mutating them. Entries lists each key with
// a count above one, labeled from its first occurrence, in first-seen
// order.
func Info[T any](items []T, key, label func(T) string) Stats {
	type bucket struct {
		label string
		count int
	}
	counts := make(map[string]*bucket, len(items))
	order := make([]string, 0, len(items))
	for _, item := range items {
		k := key(item)
		if b, ok := counts[k]; ok {
			b.count++
			continue
		}
		counts[k] = &bucket{label: label(item), count: 1}
		order = append(order, k)
	}

	stats := Stats{
		Total:      len(items),
		Unique:     len(counts),
		Duplicates: len(items) - len(counts),
	}
	for _, k := range order {
		if b := counts[k]; b.count > 1 {
			stats.Entries = append(stats.Entries, Duplicate{Key: k, Label: b.label, Count: b.count})
		}
	}
	return stats
}
