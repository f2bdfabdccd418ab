// Package worker runs the single consumer that applies form events in
// arrival order.
package worker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/okian/intake/internal/adapters/mq/queue"
	"github.com/okian/intake/internal/domain/model"
	"github.com/okian/intake/internal/domain/types"
	"github.com/okian/intake/pkg/logger"
	"github.com/okian/intake/pkg/metrics"
)

// Handler applies one event to the form session. It is only ever called from
// the worker goroutine.
type Handler interface {
	Handle(ctx context.Context, ev model.Event) (types.Outcome, error)
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(ctx context.Context, ev model.Event) (types.Outcome, error)

// Handle implements Handler.
func (f HandlerFunc) Handle(ctx context.Context, ev model.Event) (types.Outcome, error) { //nolint:gocritic // hugeParam
	return f(ctx, ev)
}

// Queue defines how the worker receives tasks.
type Queue interface {
	Dequeue(ctx context.Context) <-chan queue.Task
}

// InMemoryWorker consumes tasks one at a time and replies on each task's
// channel.
type InMemoryWorker struct {
	queue   Queue
	handler Handler
	name    string
	logger  logger.Logger

	stop     chan struct{}
	stopOnce sync.Once
	done     chan struct{}
}

// NewInMemoryWorker creates a worker for q that dispatches to h.
func NewInMemoryWorker(q Queue, h Handler, opts ...Option) *InMemoryWorker {
	w := &InMemoryWorker{
		queue:   q,
		handler: h,
		name:    "worker",
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.logger == nil {
		w.logger = logger.Get()
	}
	w.logger = w.logger.Named(w.name)
	return w
}

// Run processes tasks until the queue channel closes, ctx is cancelled or the
// worker is force-stopped.
func (w *InMemoryWorker) Run(ctx context.Context) {
	defer close(w.done)

	tasks := w.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stop:
			return
		case t, ok := <-tasks:
			if !ok {
				return
			}
			w.process(ctx, t)
		}
	}
}

// Shutdown waits for Run to return. The caller closes the queue first so the
// backlog drains; if ctx expires before that, the worker is stopped and any
// remaining tasks are abandoned.
func (w *InMemoryWorker) Shutdown(ctx context.Context) error {
	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		w.stopOnce.Do(func() { close(w.stop) })
		w.logger.Warn(ctx, "shutdown timed out")
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}

// Done is closed when Run returns.
func (w *InMemoryWorker) Done() <-chan struct{} { return w.done }

func (w *InMemoryWorker) process(ctx context.Context, t queue.Task) { //nolint:gocritic // hugeParam
	out, err := w.handle(ctx, t.Event)

	metrics.RecordFormEvent(string(t.Event.Kind))
	if !t.Enqueued.IsZero() {
		metrics.RecordEventLatency(float64(time.Since(t.Enqueued).Microseconds()) / 1000)
	}
	if err != nil {
		metrics.RecordErrorByComponent("worker", "handler_error")
		w.logger.Warn(ctx, "event failed",
			logger.String("eventID", t.Event.EventID),
			logger.String("kind", string(t.Event.Kind)),
			logger.Error(err),
		)
	}

	if t.Reply != nil {
		select {
		case t.Reply <- queue.Result{Outcome: out, Err: err}:
		default:
			w.logger.Warn(ctx, "reply dropped", logger.String("eventID", t.Event.EventID))
		}
	}
}

func (w *InMemoryWorker) handle(ctx context.Context, ev model.Event) (out types.Outcome, err error) { //nolint:gocritic // hugeParam
	defer func() {
		if r := recover(); r != nil {
			metrics.RecordErrorByType("handler_panic", "high")
			w.logger.Error(ctx, "handler panic",
				logger.String("eventID", ev.EventID),
				logger.Any("panic", r),
			)
			err = fmt.Errorf("%w: %v", ErrHandlerPanic, r)
		}
	}()
	return w.handler.Handle(ctx, ev)
}
