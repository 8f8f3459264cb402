package util

import (
	"iter"
	"sort"
)

// TransformSlice applies the converter to each element in the input slice and returns a new slice.
func TransformSlice[T any, R any](in []T, converter func(T) R) []R {
	out := make([]R, len(in))
	for i, v := range in {
		out[i] = converter(v)
	}
	return out
}

// CanonicalMapIter returns an iterator that yields map entries in sorted key order.
// This ensures deterministic iteration over maps, which is useful for generating
// consistent output (e.g., DDL statements) regardless of Go's random map iteration order.
// K is constrained to ~string rather than fixed to string so that named
// string types (e.g. sqlgen.Name) can be iterated without a conversion.
func CanonicalMapIter[K ~string, T any](m map[K]T) iter.Seq2[K, T] {
	return func(yield func(K, T) bool) {
		keys := make([]K, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

		for _, k := range keys {
			if !yield(k, m[k]) {
				return
			}
		}
	}
}
