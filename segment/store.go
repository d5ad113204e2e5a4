// Package segment holds the storage layer of the concurrent vector: a fixed table of
// lazily allocated segments whose capacities double from one segment to the next.
//
// Once a segment is allocated its backing array never moves, so a pointer to an element
// stays valid while other segments are being allocated. Store does no locking of its own;
// the owner serializes writers and decides which positions are valid to read.
package segment

import (
	"sync/atomic"
	"unsafe"
)

const (
	// Base is the capacity of the first segment.
	Base = 32
	// Count is the number of segments in a store.
	Count = 64
)

// Store is a table of Count segments, segment i holding Base << i elements.
type Store[T any] struct {
	segments [Count]atomic.Pointer[[]T]
}

// CapacityOf returns the fixed capacity of the given segment.
func CapacityOf(segment int) int {
	return Base << segment
}

// Locate maps a logical position to its segment and the offset inside that segment.
func Locate(idx int) (segment int, offset int) {
	capacity := Base
	for idx >= capacity {
		idx -= capacity
		capacity <<= 1
		segment++
	}
	return segment, idx
}

// EnsureAllocated reserves the storage of the segment if it is not allocated yet.
// It reports whether an allocation happened.
func (s *Store[T]) EnsureAllocated(segment int) bool {
	if s.segments[segment].Load() != nil {
		return false
	}
	slots := make([]T, CapacityOf(segment))
	s.segments[segment].Store(&slots)
	return true
}

// Write stores value in the slot. The segment must be allocated.
func (s *Store[T]) Write(segment, offset int, value T) {
	(*s.segments[segment].Load())[offset] = value
}

// RemoveLast takes the value out of the last filled slot of a segment, offset being the
// position of that slot. Removing offset 0 empties the segment and releases its storage.
func (s *Store[T]) RemoveLast(segment, offset int) T {
	slots := *s.segments[segment].Load()
	value := slots[offset]

	var zero T
	slots[offset] = zero

	if offset == 0 {
		s.segments[segment].Store(nil)
	}
	return value
}

// Read returns a pointer to the slot, without any bookkeeping.
func (s *Store[T]) Read(segment, offset int) *T {
	return &(*s.segments[segment].Load())[offset]
}

// IsAllocated reports whether the segment currently holds storage.
func (s *Store[T]) IsAllocated(segment int) bool {
	return s.segments[segment].Load() != nil
}

// Allocated returns the number of segments currently holding storage.
func (s *Store[T]) Allocated() int {
	count := 0
	for i := range s.segments {
		if s.segments[i].Load() != nil {
			count++
		}
	}
	return count
}

// HeapSize returns the number of bytes reserved by the allocated segments.
func (s *Store[T]) HeapSize() uintptr {
	var zero T
	elemSize := unsafe.Sizeof(zero)

	var size uintptr
	for i := range s.segments {
		if slots := s.segments[i].Load(); slots != nil {
			size += uintptr(cap(*slots)) * elemSize
		}
	}
	return size
}
