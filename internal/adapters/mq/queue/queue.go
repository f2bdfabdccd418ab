// Package queue carries form events from request goroutines to the single
// session worker.
//
// The queue is bounded. When it is full, Enqueue fails immediately and the
// caller reports backpressure instead of blocking.
package queue

import (
	"context"
	"sync"
	"time"

	"github.com/okian/intake/internal/domain/model"
	"github.com/okian/intake/internal/domain/types"
	"github.com/okian/intake/pkg/metrics"
)

const defaultQueueCapacity = 1024

// Result is the reply for a handled task.
type Result struct {
	Outcome types.Outcome
	Err     error
}

// Task is one event waiting for the worker. Reply must be buffered (size 1)
// so the worker never blocks on an abandoned caller.
type Task struct {
	Event    model.Event
	Enqueued time.Time
	Reply    chan Result
}

// NewTask wraps ev with a fresh reply channel.
func NewTask(ev model.Event) Task {
	return Task{Event: ev, Enqueued: time.Now(), Reply: make(chan Result, 1)}
}

// Queue provides non-blocking enqueue and channel-based dequeue semantics.
type Queue interface {
	// Enqueue adds a task. It returns ErrFull or ErrClosed without blocking.
	Enqueue(ctx context.Context, t Task) error

	// Dequeue returns the channel tasks are delivered on. It is closed after
	// Close once the backlog is drained.
	Dequeue(ctx context.Context) <-chan Task

	// Len returns the current number of queued tasks.
	Len(ctx context.Context) int

	// Cap returns the configured capacity.
	Cap() int

	Close() error
	IsClosed() bool
}

// InMemoryQueue implements Queue using a buffered channel.
type InMemoryQueue struct {
	tasks    chan Task
	capacity int

	mu     sync.RWMutex
	closed bool
}

// NewInMemoryQueue creates a new in-memory queue with configuration options.
func NewInMemoryQueue(opts ...Option) *InMemoryQueue {
	q := &InMemoryQueue{capacity: defaultQueueCapacity}
	for _, opt := range opts {
		opt(q)
	}
	q.tasks = make(chan Task, q.capacity)

	metrics.UpdateQueueCapacity(q.capacity)
	q.observe()
	return q
}

// Enqueue implements Queue.
func (q *InMemoryQueue) Enqueue(ctx context.Context, t Task) error { //nolint:gocritic // hugeParam: tasks travel by value
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		metrics.RecordQueueEnqueueError()
		metrics.RecordErrorByComponent("queue", "closed")
		return ErrClosed
	}
	if err := ctx.Err(); err != nil {
		metrics.RecordQueueEnqueueError()
		metrics.RecordErrorByComponent("queue", "context_cancelled")
		return err
	}

	select {
	case q.tasks <- t:
		metrics.RecordQueueEnqueue()
		q.observe()
		return nil
	default:
		metrics.RecordQueueEnqueueError()
		metrics.RecordErrorByComponent("queue", "queue_full")
		return ErrFull
	}
}

// Dequeue implements Queue.
func (q *InMemoryQueue) Dequeue(ctx context.Context) <-chan Task {
	out := make(chan Task)
	go func() {
		defer close(out)
		for t := range q.tasks {
			select {
			case out <- t:
				metrics.RecordQueueDequeue()
				q.observe()
			case <-ctx.Done():
				t.Reply <- Result{Err: ctx.Err()}
				return
			}
		}
	}()
	return out
}

// Len implements Queue.
func (q *InMemoryQueue) Len(ctx context.Context) int {
	q.observe()
	return len(q.tasks)
}

// Cap implements Queue.
func (q *InMemoryQueue) Cap() int { return q.capacity }

// Close stops accepting tasks. Already queued tasks are still delivered.
func (q *InMemoryQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return nil
	}
	close(q.tasks)
	q.closed = true
	return nil
}

// IsClosed implements Queue.
func (q *InMemoryQueue) IsClosed() bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.closed
}

func (q *InMemoryQueue) observe() {
	size := len(q.tasks)
	metrics.UpdateQueueSize(size)
	metrics.UpdateQueueUtilization(float64(size) / float64(q.capacity))
}
