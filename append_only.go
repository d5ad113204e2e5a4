package convec

import (
	"fmt"
	"iter"

	"github.com/a-peyrard/convec/concurrent"
	"github.com/a-peyrard/convec/option"
)

// AppendOnly is a concurrent vector supporting push and indexed reads only.
type AppendOnly[T any] struct {
	inner *concurrent.Vec[T]
}

// NewAppendOnly creates an empty append only vector.
func NewAppendOnly[T any](opts ...option.Option[concurrent.Options]) *AppendOnly[T] {
	return &AppendOnly[T]{inner: concurrent.New[T](opts...)}
}

// Push appends value and returns its index. The index is never reused and can be
// handed to other goroutines.
func (v *AppendOnly[T]) Push(value T) int {
	return v.inner.Push(value)
}

// Get returns a pointer to the element at idx, or false if nothing was pushed there yet.
func (v *AppendOnly[T]) Get(idx int) (*T, bool) {
	return v.inner.Get(idx)
}

// GetUnchecked returns a pointer to the element at idx without checking bounds.
// idx must be lower than Len.
func (v *AppendOnly[T]) GetUnchecked(idx int) *T {
	return v.inner.GetUnchecked(idx)
}

// At returns the element at idx, panicking if idx is out of range.
func (v *AppendOnly[T]) At(idx int) T {
	return v.inner.At(idx)
}

// Len returns the number of elements pushed so far.
func (v *AppendOnly[T]) Len() int {
	return v.inner.Len()
}

// Iter returns an iterator starting at index 0.
func (v *AppendOnly[T]) Iter() *Iterator[T] {
	return newIterator[T](v.inner)
}

// All returns a sequence of index and value pairs, see Iterator.
func (v *AppendOnly[T]) All() iter.Seq2[int, T] {
	return all[T](v.inner)
}

func (v *AppendOnly[T]) String() string {
	return fmt.Sprintf("AppendOnly{len: %d}", v.inner.Len())
}
