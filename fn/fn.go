// Package fn holds small function types shared by the other packages.
package fn

import "time"

// ComparisonResult represents the result of comparing two values.
type ComparisonResult int

const (
	Equal   ComparisonResult = 0
	Less    ComparisonResult = -1
	Greater ComparisonResult = 1
)

// Comparator represents a function that compares two values of type T.
type Comparator[T any] func(i1 T, i2 T) ComparisonResult

// CompareBy builds a comparator ordering values by the duration extracted from them.
func CompareBy[T any](key func(T) time.Duration) Comparator[T] {
	return func(i1 T, i2 T) ComparisonResult {
		k1, k2 := key(i1), key(i2)
		switch {
		case k1 < k2:
			return Less
		case k1 > k2:
			return Greater
		default:
			return Equal
		}
	}
}

// TriConsumer represents a function that accepts three input arguments and returns no result.
type TriConsumer[T1 any, T2 any, T3 any] func(t1 T1, t2 T2, t3 T3)

// AllTriConsumer creates a tri-consumer that will execute all the given tri-consumers.
func AllTriConsumer[A any, B any, C any](consumers ...TriConsumer[A, B, C]) TriConsumer[A, B, C] {
	return func(a A, b B, c C) {
		for _, consumer := range consumers {
			consumer(a, b, c)
		}
	}
}
