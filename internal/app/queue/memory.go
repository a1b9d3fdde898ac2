package queue

import (
	"context"
	"sync"

	"docpod/internal/app/errors"
)

// MemoryQueue is a bounded in-process queue
type MemoryQueue struct {
	items chan int64
	done  chan struct{}
	once  sync.Once
}

// NewMemoryQueue creates a queue holding at most capacity pending ids
func NewMemoryQueue(capacity int) *MemoryQueue {
	if capacity < 1 {
		capacity = 1
	}
	return &MemoryQueue{
		items: make(chan int64, capacity),
		done:  make(chan struct{}),
	}
}

// Enqueue blocks while the queue is full
func (q *MemoryQueue) Enqueue(ctx context.Context, id int64) error {
	select {
	case <-q.done:
		return errors.ErrQueueClosed
	default:
	}

	select {
	case q.items <- id:
		return nil
	case <-q.done:
		return errors.ErrQueueClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Dequeue returns the oldest id
func (q *MemoryQueue) Dequeue(ctx context.Context) (int64, error) {
	select {
	case id := <-q.items:
		return id, nil
	case <-q.done:
		return 0, errors.ErrQueueClosed
	case <-ctx.Done():
		return 0, ctx.Err()
	}
}

// Len returns the number of pending ids
func (q *MemoryQueue) Len(ctx context.Context) (int, error) {
	return len(q.items), nil
}

// Close wakes every blocked caller. Pending ids are dropped.
func (q *MemoryQueue) Close() error {
	q.once.Do(func() { close(q.done) })
	return nil
}
