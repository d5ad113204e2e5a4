package convec

import "iter"

type getter[T any] interface {
	Get(idx int) (*T, bool)
}

// Iterator walks a vector from index 0 for as long as the next index is valid.
// Once it has ended it stays ended; build a new one to start over.
type Iterator[T any] struct {
	source getter[T]
	pos    int
	done   bool
}

func newIterator[T any](source getter[T]) *Iterator[T] {
	return &Iterator[T]{source: source}
}

// Next returns the next element, or false at the end of the sequence.
func (it *Iterator[T]) Next() (T, bool) {
	if !it.done {
		if elem, ok := it.source.Get(it.pos); ok {
			it.pos++
			return *elem, true
		}
		it.done = true
	}
	var zero T
	return zero, false
}

func all[T any](source getter[T]) iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		it := newIterator(source)
		for {
			idx := it.pos
			value, ok := it.Next()
			if !ok || !yield(idx, value) {
				return
			}
		}
	}
}
