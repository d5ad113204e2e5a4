// Package set provides a map-backed generic set, used by the test suites to check that
// values and indices come out distinct.
package set

// Set represents a generic set data structure
type Set[T comparable] map[T]struct{}

// New creates a new empty set
func New[T comparable]() Set[T] {
	return make(Set[T])
}

// Add adds a value to the set
func (s Set[T]) Add(value T) {
	s[value] = struct{}{}
}

// Contains checks if a value exists in the set
func (s Set[T]) Contains(value T) bool {
	_, exists := s[value]
	return exists
}

// DoesNotContain checks if a value does not exist in the set
func (s Set[T]) DoesNotContain(value T) bool {
	return !s.Contains(value)
}

// Size returns the number of elements in the set
func (s Set[T]) Size() int {
	return len(s)
}
