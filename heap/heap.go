// Package heap provides generic priority queues on top of container/heap.
package heap

import (
	"container/heap"

	"github.com/a-peyrard/convec/fn"
)

// innerPriorityQueue is the type that will be used by the heap package from the standard library
type innerPriorityQueue[T any] struct {
	inner      []T
	comparator fn.Comparator[T]
}

// PriorityQueue is a priority queue implementation that uses a heap.
// The smallest element according to the comparator is on top.
type PriorityQueue[T any] struct {
	*innerPriorityQueue[T]
	limit int
}

// New creates a new priority queue with the given comparator.
func New[T any](comparator fn.Comparator[T]) *PriorityQueue[T] {
	return &PriorityQueue[T]{
		innerPriorityQueue: &innerPriorityQueue[T]{
			inner:      make([]T, 0),
			comparator: comparator,
		},
	}
}

// NewBounded creates a priority queue keeping at most limit elements: once full, pushing
// drops the smallest element. It retains the limit greatest elements pushed.
func NewBounded[T any](comparator fn.Comparator[T], limit int) *PriorityQueue[T] {
	pq := New(comparator)
	pq.limit = limit
	return pq
}

func (pq *PriorityQueue[T]) Push(elem T) {
	if pq.limit > 0 && pq.Len() >= pq.limit {
		if pq.comparator(elem, pq.Peek()) != fn.Greater {
			return
		}
		pq.Pop()
	}
	heap.Push(pq.innerPriorityQueue, elem)
}

func (pq *PriorityQueue[T]) Pop() T {
	return heap.Pop(pq.innerPriorityQueue).(T)
}

func (pq *PriorityQueue[T]) Len() int {
	return pq.innerPriorityQueue.Len()
}

func (pq *PriorityQueue[T]) IsEmpty() bool {
	return pq.innerPriorityQueue.Len() == 0
}

func (pq *PriorityQueue[T]) Peek() T {
	return pq.innerPriorityQueue.inner[0]
}

// DrainDescending pops every element and returns them greatest first.
func (pq *PriorityQueue[T]) DrainDescending() []T {
	result := make([]T, pq.Len())
	for i := len(result) - 1; i >= 0; i-- {
		result[i] = pq.Pop()
	}
	return result
}

func (pq *innerPriorityQueue[T]) Len() int { return len(pq.inner) }

func (pq *innerPriorityQueue[T]) Less(i, j int) bool {
	return pq.comparator(pq.inner[i], pq.inner[j]) == fn.Less
}

func (pq *innerPriorityQueue[T]) Swap(i, j int) {
	pq.inner[i], pq.inner[j] = pq.inner[j], pq.inner[i]
}

func (pq *innerPriorityQueue[T]) Push(x any) {
	pq.inner = append(pq.inner, x.(T))
}

func (pq *innerPriorityQueue[T]) Pop() any {
	old := pq.inner
	n := len(old)
	item := old[n-1]
	var zero T
	old[n-1] = zero
	pq.inner = old[0 : n-1]
	return item
}
