package service

import (
	"time"

	"github.com/okian/intake/internal/adapters/repository"
	"github.com/okian/intake/internal/domain/skills"
	"github.com/okian/intake/internal/domain/validation"
	"github.com/okian/intake/pkg/logger"
)

// ControllerOption applies a configuration option to the Controller.
type ControllerOption func(*Controller)

// WithEngine sets the validation engine.
func WithEngine(e *validation.Engine) ControllerOption {
	return func(c *Controller) {
		if e != nil {
			c.engine = e
		}
	}
}

// WithStore sets the submission store.
func WithStore(s repository.Store) ControllerOption {
	return func(c *Controller) {
		if s != nil {
			c.store = s
		}
	}
}

// WithSkillSet sets the tag collection implementation.
func WithSkillSet(s skills.Set) ControllerOption {
	return func(c *Controller) {
		if s != nil {
			c.skills = s
		}
	}
}

// WithControllerLogger sets the controller logger.
func WithControllerLogger(l logger.Logger) ControllerOption {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithTouchedGate controls whether a never-touched form can be submitted.
// Enabled by default.
func WithTouchedGate(enabled bool) ControllerOption {
	return func(c *Controller) {
		c.requireTouched = enabled
	}
}

// WithNoFileLabel sets the file label stored when no file was selected.
func WithNoFileLabel(label string) ControllerOption {
	return func(c *Controller) {
		if label != "" {
			c.noFileLabel = label
		}
	}
}

// WithClock sets the submission timestamp source.
func WithClock(clock func() time.Time) ControllerOption {
	return func(c *Controller) {
		if clock != nil {
			c.clock = clock
		}
	}
}

// WithIDGenerator sets the snapshot id source.
func WithIDGenerator(fn func() string) ControllerOption {
	return func(c *Controller) {
		if fn != nil {
			c.newID = fn
		}
	}
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithQueueSize sets the maximum number of pending events.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithShutdownTimeout bounds how long Stop waits for queued events.
func WithShutdownTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.shutdownTimeout = d
		}
	}
}

// WithController passes options through to the session controller.
func WithController(opts ...ControllerOption) Option {
	return func(s *Service) {
		s.controllerOpts = append(s.controllerOpts, opts...)
	}
}
