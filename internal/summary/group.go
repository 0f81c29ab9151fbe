// Package summary derives per-method normalized scores and per-drillhole and
// per-depth-interval aggregates from cleaned assay records.
package summary

import "math"

// Group is one key's members, in input order.
type Group[K comparable, T any] struct {
	Key   K
	Items []T
}

// GroupBy partitions items by key. Groups appear in order of first key
// occurrence and keep the input order of their members.
func GroupBy[K comparable, T any](items []T, key func(T) K) []Group[K, T] {
	idx := map[K]int{}
	var groups []Group[K, T]
	for _, it := range items {
		k := key(it)
		i, ok := idx[k]
		if !ok {
			i = len(groups)
			idx[k] = i
			groups = append(groups, Group[K, T]{Key: k})
		}
		groups[i].Items = append(groups[i].Items, it)
	}
	return groups
}

// ArgMax returns the item with the largest value; the first one wins ties.
// NaN values are skipped. ok is false when no item has a comparable value.
func ArgMax[T any](items []T, value func(T) float64) (best T, ok bool) {
	bestVal := math.Inf(-1)
	for _, it := range items {
		v := value(it)
		if math.IsNaN(v) {
			continue
		}
		if !ok || v > bestVal {
			best, bestVal, ok = it, v, true
		}
	}
	return best, ok
}
