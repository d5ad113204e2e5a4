package convec

import (
	"fmt"
	"iter"

	"github.com/a-peyrard/convec/concurrent"
	"github.com/a-peyrard/convec/option"
)

// Stack is a concurrent LIFO stack.
//
// Push and Pop can be called from any number of goroutines. Iterating while other
// goroutines pop is not supported.
type Stack[T any] struct {
	inner *concurrent.Vec[T]
}

// NewStack creates an empty stack.
func NewStack[T any](opts ...option.Option[concurrent.Options]) *Stack[T] {
	return &Stack[T]{inner: concurrent.New[T](opts...)}
}

// Push adds value on top of the stack.
func (s *Stack[T]) Push(value T) {
	s.inner.Push(value)
}

// Pop removes and returns the top of the stack, or false if the stack is empty.
func (s *Stack[T]) Pop() (T, bool) {
	return s.inner.Pop()
}

// Len returns the number of elements in the stack.
func (s *Stack[T]) Len() int {
	return s.inner.Len()
}

// Iter returns an iterator from the bottom of the stack to its top.
func (s *Stack[T]) Iter() *Iterator[T] {
	return newIterator[T](s.inner)
}

// All returns a sequence of position and value pairs, bottom first.
func (s *Stack[T]) All() iter.Seq2[int, T] {
	return all[T](s.inner)
}

func (s *Stack[T]) String() string {
	return fmt.Sprintf("Stack{len: %d}", s.inner.Len())
}

func (s *Stack[T]) heapSize() uintptr {
	return s.inner.HeapSize()
}
