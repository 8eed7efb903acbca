// Copyright ©2025 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ring implements a simple ring buffer.
package ring

// Buffer is a fixed size FIFO. Pushing to a full buffer displaces
// the oldest element.
type Buffer[T any] struct {
	data    []T
	head, n int
}

func NewBuffer[T any](n int) *Buffer[T] {
	return &Buffer[T]{data: make([]T, n)}
}

func (r *Buffer[T]) Len() int { return r.n }

func (r *Buffer[T]) Size() int { return len(r.data) }

// Push adds v to the buffer. If the buffer was full, the displaced
// element is returned with evicted true.
func (r *Buffer[T]) Push(v T) (old T, evicted bool) {
	if len(r.data) == 0 {
		return v, true
	}
	if r.n == len(r.data) {
		old = r.data[r.head]
		r.data[r.head] = v
		r.head = r.wrap(r.head + 1)
		return old, true
	}
	r.data[r.wrap(r.head+r.n)] = v
	r.n++
	return old, false
}

// At returns the i'th oldest element.
func (r *Buffer[T]) At(i int) T {
	if i < 0 || i >= r.n {
		panic("ring: index out of range")
	}
	return r.data[r.wrap(r.head+i)]
}

// Index returns the index of the oldest element for which fn returns
// true, or -1 if there is none.
func (r *Buffer[T]) Index(fn func(T) bool) int {
	for i := range r.n {
		if fn(r.data[r.wrap(r.head+i)]) {
			return i
		}
	}
	return -1
}

// Remove removes and returns the i'th oldest element, closing the gap.
func (r *Buffer[T]) Remove(i int) T {
	v := r.At(i)
	for j := i; j < r.n-1; j++ {
		r.data[r.wrap(r.head+j)] = r.data[r.wrap(r.head+j+1)]
	}
	var zero T
	r.data[r.wrap(r.head+r.n-1)] = zero
	r.n--
	if r.n == 0 {
		r.head = 0
	}
	return v
}

// Drain removes and returns all the elements, oldest first.
func (r *Buffer[T]) Drain() []T {
	dst := make([]T, r.n)
	for i := range dst {
		dst[i] = r.At(i)
	}
	clear(r.data)
	r.head, r.n = 0, 0
	return dst
}

func (r *Buffer[T]) wrap(i int) int { return i % len(r.data) }
