// FILE: logrelay/src/internal/queue/queue.go
package queue

import (
	"context"
	"errors"
	"sync"
)

// ErrClosed is returned by Put after Close, and by Get once closed and empty
var ErrClosed = errors.New("queue closed")

// Queue is a bounded FIFO with completion tracking.
// Put blocks while full, Get blocks while empty. Every item obtained by Get
// is acknowledged with Done, and Join waits until all items put have been
// acknowledged.
type Queue[T any] struct {
	items chan T

	// Held shared by producers for the duration of a Put, exclusively by Close
	gate      sync.RWMutex
	closed    bool
	closeCh   chan struct{}
	closeOnce sync.Once

	mu         sync.Mutex
	unfinished int
	drained    chan struct{}
}

// New creates a queue holding at most capacity items, minimum 1
func New[T any](capacity int) *Queue[T] {
	if capacity < 1 {
		capacity = 1
	}
	drained := make(chan struct{})
	close(drained)
	return &Queue[T]{
		items:   make(chan T, capacity),
		closeCh: make(chan struct{}),
		drained: drained,
	}
}

// Put appends item, blocking while the queue is full
func (q *Queue[T]) Put(ctx context.Context, item T) error {
	q.gate.RLock()
	defer q.gate.RUnlock()

	if q.closed {
		return ErrClosed
	}

	q.addUnfinished(1)
	select {
	case q.items <- item:
		return nil
	case <-q.closeCh:
		q.addUnfinished(-1)
		return ErrClosed
	case <-ctx.Done():
		q.addUnfinished(-1)
		return ctx.Err()
	}
}

// Get removes the oldest item, blocking while the queue is empty
func (q *Queue[T]) Get(ctx context.Context) (T, error) {
	var zero T

	select {
	case item := <-q.items:
		return item, nil
	case <-ctx.Done():
		return zero, ctx.Err()
	case <-q.closeCh:
	}

	// Wait out producers that were mid-Put when Close began
	q.gate.Lock()
	q.gate.Unlock()

	select {
	case item := <-q.items:
		return item, nil
	default:
		return zero, ErrClosed
	}
}

// Done acknowledges one item obtained by Get as processed
func (q *Queue[T]) Done() {
	q.addUnfinished(-1)
}

// Join blocks until every item put has been acknowledged with Done
func (q *Queue[T]) Join(ctx context.Context) error {
	q.mu.Lock()
	drained := q.drained
	q.mu.Unlock()

	select {
	case <-drained:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close rejects further producers. Remaining items can still be consumed.
func (q *Queue[T]) Close() {
	q.closeOnce.Do(func() {
		close(q.closeCh)
		q.gate.Lock()
		q.closed = true
		q.gate.Unlock()
	})
}

// Len returns the number of items waiting to be consumed
func (q *Queue[T]) Len() int {
	return len(q.items)
}

// Pending returns the number of items put but not yet acknowledged
func (q *Queue[T]) Pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.unfinished
}

// Cap returns the queue capacity
func (q *Queue[T]) Cap() int {
	return cap(q.items)
}

func (q *Queue[T]) addUnfinished(delta int) {
	q.mu.Lock()
	defer q.mu.Unlock()

	prev := q.unfinished
	q.unfinished += delta
	switch {
	case q.unfinished < 0:
		panic("queue: Done called more times than items were put")
	case prev == 0 && q.unfinished > 0:
		q.drained = make(chan struct{})
	case prev > 0 && q.unfinished == 0:
		close(q.drained)
	}
}
