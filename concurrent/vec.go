package concurrent

import (
	"errors"
	"fmt"
	"sync"

	"github.com/a-peyrard/convec/option"
	"github.com/a-peyrard/convec/segment"
	"github.com/rs/zerolog"
)

// ErrIndexOutOfRange is the error carried by the panic of At.
var ErrIndexOutOfRange = errors.New("index out of range")

type (
	// Vec is a growable vector that can be pushed to, popped from and read by many
	// goroutines at once.
	//
	// Writers (Push, Pop) are serialized by an exclusive lock on the length. Readers only
	// hold the shared lock for the bounds check; the element itself is read with no lock
	// held. This is sound as long as nothing is popped: elements never move once written.
	Vec[T any] struct {
		mu     sync.RWMutex
		len    int
		store  segment.Store[T]
		logger *zerolog.Logger
	}

	// Options configures a Vec.
	Options struct {
		logger *zerolog.Logger
	}
)

// WithLogger sets the logger receiving segment allocation and release events.
func WithLogger(logger *zerolog.Logger) option.Option[Options] {
	return func(opts *Options) {
		opts.logger = logger
	}
}

// New creates an empty vector. No storage is reserved until the first push.
func New[T any](opts ...option.Option[Options]) *Vec[T] {
	nop := zerolog.Nop()
	options := option.Build(&Options{logger: &nop}, opts...)

	return &Vec[T]{
		logger: options.logger,
	}
}

// Push appends value and returns its index.
func (v *Vec[T]) Push(value T) int {
	v.mu.Lock()
	defer v.mu.Unlock()

	idx := v.len
	v.len++

	seg, offset := segment.Locate(idx)
	if v.store.EnsureAllocated(seg) {
		v.logger.Debug().
			Int("segment", seg).
			Int("capacity", segment.CapacityOf(seg)).
			Msg("segment allocated")
	}
	v.store.Write(seg, offset, value)

	return idx
}

// Pop removes and returns the last element, or false when the vector is empty.
//
// Pop must not run concurrently with Get, GetUnchecked, At or an Iterator on the same
// vector: a reader that passed its bounds check may still be reading the slot Pop clears.
// Upholding this is up to the caller.
func (v *Vec[T]) Pop() (T, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.len == 0 {
		var zero T
		return zero, false
	}
	v.len--

	seg, offset := segment.Locate(v.len)
	value := v.store.RemoveLast(seg, offset)
	if offset == 0 {
		v.logger.Debug().
			Int("segment", seg).
			Int("capacity", segment.CapacityOf(seg)).
			Msg("segment released")
	}

	return value, true
}

// Len returns the number of elements. The value may be stale as soon as it is returned.
func (v *Vec[T]) Len() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.len
}

// Get returns a pointer to the element at idx, or false if idx is not valid.
// The lock is released before the element is read.
func (v *Vec[T]) Get(idx int) (*T, bool) {
	if !v.valid(idx) {
		return nil, false
	}
	return v.GetUnchecked(idx), true
}

// GetUnchecked returns a pointer to the element at idx without checking bounds.
// idx must be lower than Len, anything else is undefined behavior.
func (v *Vec[T]) GetUnchecked(idx int) *T {
	return v.store.Read(segment.Locate(idx))
}

// At returns the element at idx.
// Panics with an error wrapping ErrIndexOutOfRange if idx is not valid.
func (v *Vec[T]) At(idx int) T {
	elem, ok := v.Get(idx)
	if !ok {
		panic(fmt.Errorf("%w: index %d, len %d", ErrIndexOutOfRange, idx, v.Len()))
	}
	return *elem
}

// HeapSize returns the number of bytes reserved for element storage.
func (v *Vec[T]) HeapSize() uintptr {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.store.HeapSize()
}

func (v *Vec[T]) String() string {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return fmt.Sprintf("Vec{len: %d, segments: %d}", v.len, v.store.Allocated())
}

func (v *Vec[T]) valid(idx int) bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return idx >= 0 && idx < v.len
}
