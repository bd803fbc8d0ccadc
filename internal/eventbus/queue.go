package eventbus

import (
	"context"
	"sync"
)

// Queue is a FIFO mailbox with a non-blocking Push and a blocking Pop.
// A Queue has a single consumer.
type Queue[T any] struct {
	mu    sync.Mutex
	items []T
	max   int
	ready chan struct{}
}

// NewQueue returns a queue holding at most max items; max <= 0 means unbounded.
func NewQueue[T any](max int) *Queue[T] {
	return &Queue[T]{max: max, ready: make(chan struct{}, 1)}
}

// Push appends v. It returns false when a bounded queue was full and its oldest
// item was evicted to make room.
func (q *Queue[T]) Push(v T) bool {
	q.mu.Lock()
	kept := true
	if q.max > 0 && len(q.items) >= q.max {
		var zero T
		q.items[0] = zero
		q.items = q.items[1:]
		kept = false
	}
	q.items = append(q.items, v)
	q.mu.Unlock()

	select {
	case q.ready <- struct{}{}:
	default:
	}
	return kept
}

// Pop removes the oldest item, waiting for one if the queue is empty.
// It returns false once ctx is done and nothing is queued.
func (q *Queue[T]) Pop(ctx context.Context) (T, bool) {
	for {
		q.mu.Lock()
		if len(q.items) > 0 {
			v := q.items[0]
			var zero T
			q.items[0] = zero
			q.items = q.items[1:]
			q.mu.Unlock()
			return v, true
		}
		q.mu.Unlock()

		select {
		case <-q.ready:
		case <-ctx.Done():
			var zero T
			return zero, false
		}
	}
}

// Len returns the number of queued items.
func (q *Queue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}
