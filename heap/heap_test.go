package heap

import (
	"testing"
	"time"

	"github.com/a-peyrard/convec/fn"
	"github.com/stretchr/testify/assert"
)

type workerTiming struct {
	Worker  int
	Elapsed time.Duration
}

var byElapsed = fn.CompareBy(func(w workerTiming) time.Duration { return w.Elapsed })

func TestPriorityQueue(t *testing.T) {
	t.Run("it should create new heap", func(t *testing.T) {
		// GIVEN / WHEN
		pq := New(byElapsed)

		// THEN
		assert.NotNil(t, pq)
		assert.True(t, pq.IsEmpty())
		assert.Equal(t, 0, pq.Len())
	})

	t.Run("it should push and pop elements in priority order", func(t *testing.T) {
		// GIVEN
		pq := New(byElapsed)

		// WHEN
		pq.Push(workerTiming{Worker: 1, Elapsed: time.Second})
		pq.Push(workerTiming{Worker: 2, Elapsed: 10 * time.Second})
		pq.Push(workerTiming{Worker: 3, Elapsed: 5 * time.Second})

		// THEN
		assert.Equal(t, 3, pq.Len())
		assert.Equal(t, 1, pq.Pop().Worker)
		assert.Equal(t, 3, pq.Pop().Worker)
		assert.Equal(t, 2, pq.Pop().Worker)
		assert.True(t, pq.IsEmpty())
	})

	t.Run("it should peek without removing element", func(t *testing.T) {
		// GIVEN
		pq := New(byElapsed)
		pq.Push(workerTiming{Worker: 2, Elapsed: 2 * time.Second})
		pq.Push(workerTiming{Worker: 1, Elapsed: time.Second})

		// WHEN
		peeked := pq.Peek()

		// THEN
		assert.Equal(t, 1, peeked.Worker)
		assert.Equal(t, 2, pq.Len())
	})
}

func TestBoundedPriorityQueue(t *testing.T) {
	t.Run("it should keep only the greatest elements", func(t *testing.T) {
		// GIVEN
		pq := NewBounded(byElapsed, 3)

		// WHEN
		for worker, ms := range []int{5, 1, 9, 3, 7, 2} {
			pq.Push(workerTiming{Worker: worker, Elapsed: time.Duration(ms) * time.Millisecond})
		}

		// THEN
		assert.Equal(t, 3, pq.Len())
		slowest := pq.DrainDescending()
		assert.Equal(t, []int{2, 4, 0}, []int{slowest[0].Worker, slowest[1].Worker, slowest[2].Worker})
		assert.True(t, pq.IsEmpty())
	})

	t.Run("it should ignore elements not greater than the current minimum", func(t *testing.T) {
		// GIVEN
		pq := NewBounded(byElapsed, 1)
		pq.Push(workerTiming{Worker: 1, Elapsed: time.Second})

		// WHEN
		pq.Push(workerTiming{Worker: 2, Elapsed: time.Second})

		// THEN
		assert.Equal(t, 1, pq.Peek().Worker)
	})
}
