package alloc

import "github.com/pkg/errors"

func newRing[T any](capacity uint64) *ring[T] {
	return &ring[T]{
		items:    make([]T, capacity),
		capacity: capacity,
	}
}

// ring is the FIFO queue of free items.
type ring[T any] struct {
	items []T

	capacity, getPtr, length uint64
}

func (r *ring[T]) Get() (T, error) {
	if r.length == 0 {
		var t T
		return t, errors.New("no free item to get")
	}
	item := r.items[r.getPtr]
	r.getPtr++
	if r.getPtr == r.capacity {
		r.getPtr = 0
	}
	r.length--
	return item, nil
}

func (r *ring[T]) Put(item T) {
	if r.length == r.capacity {
		// This is really critical because it means that we deallocated more than allocated.
		panic("no space left in the ring")
	}

	r.items[(r.getPtr+r.length)%r.capacity] = item
	r.length++
}

// Grow extends capacity of the ring by n items, preserving order of the stored ones.
func (r *ring[T]) Grow(n uint64) {
	items := make([]T, r.capacity+n)
	for i := range r.length {
		items[i] = r.items[(r.getPtr+i)%r.capacity]
	}
	r.items = items
	r.capacity += n
	r.getPtr = 0
}

func (r *ring[T]) Len() uint64 {
	return r.length
}

func (r *ring[T]) Cap() uint64 {
	return r.capacity
}
