// Package service hosts the form session: the Controller that owns the form
// state and the Service that feeds it events one at a time.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	eventqueue "github.com/okian/intake/internal/adapters/mq/queue"
	"github.com/okian/intake/internal/adapters/mq/worker"
	"github.com/okian/intake/internal/adapters/repository"
	"github.com/okian/intake/internal/domain/model"
	"github.com/okian/intake/internal/domain/types"
	"github.com/okian/intake/pkg/logger"
	"github.com/okian/intake/pkg/metrics"
)

const (
	defaultQueueSize       = 1024
	defaultShutdownTimeout = 5 * time.Second
)

// Service serializes input events onto a single Controller.
type Service struct {
	mu sync.RWMutex

	controller *Controller
	store      repository.Store
	queue      *eventqueue.InMemoryQueue
	worker     *worker.InMemoryWorker
	cancel     context.CancelFunc

	queueSize       int
	shutdownTimeout time.Duration
	controllerOpts  []ControllerOption

	started bool
	logger  logger.Logger
}

// New constructs a Service with an empty form and history.
func New(opts ...Option) *Service {
	s := &Service{
		queueSize:       defaultQueueSize,
		shutdownTimeout: defaultShutdownTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}

	copts := append([]ControllerOption{WithControllerLogger(s.logger)}, s.controllerOpts...)
	s.controller = NewController(copts...)
	s.store = s.controller.store
	return s
}

// Start launches the event worker.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	s.logger.Info(ctx, "starting form service...")

	// The worker outlives the caller's deadline; Stop ends it.
	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	s.cancel = cancel
	s.queue = eventqueue.NewInMemoryQueue(eventqueue.WithCapacity(s.queueSize))
	s.worker = worker.NewInMemoryWorker(s.queue, s, worker.WithName("session"), worker.WithLogger(s.logger))
	go s.worker.Run(runCtx)

	s.started = true
	s.logger.Info(ctx, "form service started", logger.Int("queueSize", s.queueSize))
	return nil
}

// Stop drains queued events and stops the worker.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	ctx := context.Background()
	s.logger.Info(ctx, "stopping form service...")

	_ = s.queue.Close()
	shutdownCtx, cancel := context.WithTimeout(ctx, s.shutdownTimeout)
	if err := s.worker.Shutdown(shutdownCtx); err != nil {
		s.logger.Warn(ctx, "worker shutdown", logger.Error(err))
	}
	cancel()
	s.cancel()

	s.started = false
	s.logger.Info(ctx, "form service stopped")
}

// Dispatch queues ev and waits for the worker to apply it.
func (s *Service) Dispatch(ctx context.Context, ev model.Event) (types.Outcome, error) { //nolint:gocritic // hugeParam
	s.mu.RLock()
	q, started := s.queue, s.started
	s.mu.RUnlock()

	if !started {
		return types.Outcome{}, ErrNotStarted
	}
	if ev.EventID == "" {
		ev.EventID = uuid.NewString()
	}
	if ev.TS.IsZero() {
		ev.TS = time.Now().UTC()
	}

	task := eventqueue.NewTask(ev)
	if err := q.Enqueue(ctx, task); err != nil {
		switch {
		case errors.Is(err, eventqueue.ErrFull):
			return types.Outcome{}, fmt.Errorf("%w: %d pending", ErrBackpressure, q.Len(ctx))
		case errors.Is(err, eventqueue.ErrClosed):
			return types.Outcome{}, ErrNotStarted
		default:
			return types.Outcome{}, err
		}
	}

	select {
	case res := <-task.Reply:
		return res.Outcome, res.Err
	case <-ctx.Done():
		return types.Outcome{}, ctx.Err()
	}
}

// Handle applies one event to the controller. Only the worker calls it.
func (s *Service) Handle(ctx context.Context, ev model.Event) (types.Outcome, error) { //nolint:gocritic // hugeParam
	c := s.controller
	var out types.Outcome

	switch ev.Kind {
	case model.EventSetField:
		if err := c.SetField(ctx, ev.Field, ev.Value); err != nil {
			return out, err
		}
	case model.EventTouch:
		if err := c.SetTouched(ctx, ev.Field); err != nil {
			return out, err
		}
	case model.EventToggleExperience:
		c.ToggleExperience(ctx, ev.Flag)
	case model.EventSkillInput:
		c.SetSkillInput(ctx, ev.Value)
	case model.EventCommitSkill:
		c.CommitSkill(ctx, ev.Value)
	case model.EventRemoveSkill:
		c.RemoveSkill(ctx, ev.Value)
	case model.EventSelectFile:
		c.SelectFile(ctx, ev.Value)
	case model.EventSubmit:
		snap, ok, err := c.AttemptSubmit(ctx)
		if err != nil {
			return out, err
		}
		if ok {
			out.Accepted = true
			out.Submission = &snap
		}
	case model.EventView:
	default:
		return out, fmt.Errorf("%w: %q", ErrUnknownEvent, ev.Kind)
	}

	out.Form = c.View(ctx)
	return out, nil
}

// Submissions returns the accepted history in order.
func (s *Service) Submissions(ctx context.Context) []model.Snapshot {
	return s.store.List(ctx)
}

// Submission returns one accepted snapshot by id.
func (s *Service) Submission(ctx context.Context, id string) (model.Snapshot, error) {
	return s.store.Get(ctx, id)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	metrics.CollectSystem()

	stats := map[string]any{
		"started":     s.started,
		"queueSize":   s.queueSize,
		"submissions": s.store.Count(ctx),
	}
	if s.started {
		stats["queueLength"] = s.queue.Len(ctx)
	}
	return stats
}
