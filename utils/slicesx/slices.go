package slicesx

// Map applies f to every element of s.
func Map[T, U any](s []T, f func(T) U) []U {
	mapped := make([]U, 0, len(s))
	for _, v := range s {
		mapped = append(mapped, f(v))
	}
	return mapped
}

// Filter keeps the elements for which keep is true. The result is never nil.
func Filter[T any](s []T, keep func(T) bool) []T {
	filtered := make([]T, 0, len(s))
	for _, v := range s {
		if keep(v) {
			filtered = append(filtered, v)
		}
	}
	return filtered
}
