// Package sliceutil provides utility functions for working with slices.
package sliceutil

// Map applies function f to each element of slice s and
// returns the results as a new slice.
func Map[S ~[]E, E, V any](s S, f func(E) V) []V {
	values := make([]V, len(s))
	for i, e := range s {
		values[i] = f(e)
	}

	return values
}

// Filter returns a new slice containing only elements for which f returns true.
func Filter[S ~[]E, E any](s S, f func(E) bool) S {
	result := make(S, 0, len(s))
	for _, e := range s {
		if f(e) {
			result = append(result, e)
		}
	}

	return result
}

// Set returns the elements of s as a set.
func Set[S ~[]E, E comparable](s S) map[E]struct{} {
	m := make(map[E]struct{}, len(s))
	for _, e := range s {
		m[e] = struct{}{}
	}

	return m
}

// Difference returns the elements of s, in order, that are not in the set exclude.
func Difference[S ~[]E, E comparable, V any](s S, exclude map[E]V) S {
	return Filter(s, func(e E) bool {
		_, ok := exclude[e]
		return !ok
	})
}
