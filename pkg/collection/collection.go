// Package collection provides generic slice helpers used for query-time
// aggregation: order counts are always computed by scanning, never stored.
package collection

// Map transforms each element of s using fn.
func Map[T, R any](s []T, fn func(T) R) []R {
	out := make([]R, len(s))
	for i, v := range s {
		out[i] = fn(v)
	}
	return out
}

// Filter returns the elements of s for which fn returns true.
func Filter[T any](s []T, fn func(T) bool) []T {
	var out []T
	for _, v := range s {
		if fn(v) {
			out = append(out, v)
		}
	}
	return out
}

// CountBy returns how many elements of s share each key produced by fn.
func CountBy[T any, K comparable](s []T, fn func(T) K) map[K]int {
	out := make(map[K]int)
	for _, v := range s {
		out[fn(v)]++
	}
	return out
}

// Take returns at most n leading elements of s.
func Take[T any](s []T, n int) []T {
	if n >= len(s) {
		return s
	}
	return s[:n]
}
