package common

// IsEmpty returns true if the slice is empty.
func IsEmpty[S ~[]E, E any](s S) bool {
	return len(s) == 0
}

// Last returns the last element of the slice and true, or the zero value and false if empty.
func Last[S ~[]E, E any](s S) (E, bool) {
	if len(s) == 0 {
		var zero E
		return zero, false
	}

	return s[len(s)-1], true
}

// Truncate returns at most n leading elements of s.
func Truncate[S ~[]E, E any](s S, n int) S {
	if len(s) <= n {
		return s
	}

	return s[:n]
}
