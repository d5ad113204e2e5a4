// Package convec provides two views over a concurrent, growable vector.
//
// AppendOnly hands out stable indices and never removes anything, so its elements can be
// read by any number of goroutines while others keep pushing. Stack pushes and pops at the
// tail and does not expose indexed reads.
//
// Both views share the same storage layout: a table of lazily allocated segments whose
// capacities double, so growing never moves an element that was already written.
package convec
