// Package fifo provides a fixed-capacity synchronous FIFO queue.
//
// The queue models a hardware FIFO: capacity is fixed at construction, the
// stored entries live in a ring buffer, and pushing past capacity is a
// design bug that panics rather than reallocating.
package fifo

import "fmt"

// Queue is a fixed-capacity first-in-first-out queue.
type Queue[T any] struct {
	name  string
	items []T
	head  int
	count int
}

// New creates a queue holding at most capacity entries.
// The name is used in overflow panics to identify the offending queue.
func New[T any](name string, capacity int) *Queue[T] {
	if capacity <= 0 {
		panic(fmt.Sprintf("fifo %s: capacity must be positive, got %d", name, capacity))
	}
	return &Queue[T]{
		name:  name,
		items: make([]T, capacity),
	}
}

// CanPush reports whether the queue has a free slot.
func (q *Queue[T]) CanPush() bool {
	return q.count < len(q.items)
}

// Push appends an entry. Pushing into a full queue panics: the caller is
// responsible for checking CanPush, and a violation means the tracking
// logic around the queue is wrong.
func (q *Queue[T]) Push(item T) {
	if q.count == len(q.items) {
		panic(fmt.Sprintf("fifo %s: overflow", q.name))
	}
	q.items[(q.head+q.count)%len(q.items)] = item
	q.count++
}

// Pop removes and returns the oldest entry. The second return value is
// false if the queue is empty.
func (q *Queue[T]) Pop() (T, bool) {
	var zero T
	if q.count == 0 {
		return zero, false
	}
	item := q.items[q.head]
	q.items[q.head] = zero
	q.head = (q.head + 1) % len(q.items)
	q.count--
	return item, true
}

// Peek returns the oldest entry without removing it. The second return
// value is false if the queue is empty.
func (q *Queue[T]) Peek() (T, bool) {
	var zero T
	if q.count == 0 {
		return zero, false
	}
	return q.items[q.head], true
}

// Len returns the number of stored entries.
func (q *Queue[T]) Len() int {
	return q.count
}

// Cap returns the fixed capacity.
func (q *Queue[T]) Cap() int {
	return len(q.items)
}

// Empty reports whether the queue holds no entries.
func (q *Queue[T]) Empty() bool {
	return q.count == 0
}

// Clear removes all entries.
func (q *Queue[T]) Clear() {
	var zero T
	for i := range q.items {
		q.items[i] = zero
	}
	q.head = 0
	q.count = 0
}
