// Package practice is the scheduling engine's service layer: it assembles
// the set of units a student works through today, and consumes graded results
// to reschedule units and migrate them between pools.
package practice

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/glossa/internal/plan"
)

// Store is the plan persistence the engine depends on. GetPlan serves the
// read-only selector; WithTransaction is the single mutation path: fn
// receives a fresh snapshot re-read inside the transaction and returns the
// updated plan to persist, or nil for a no-op. fn may run more than once if
// the store retries a conflicting commit, so it must be re-runnable.
type Store interface {
	GetPlan(ctx context.Context, planID string) (*plan.Plan, error)
	WithTransaction(ctx context.Context, planID string, fn func(*plan.Plan) (*plan.Plan, error)) error
}

// Service exposes the two engine operations over a plan store.
type Service struct {
	store Store
	log   *zap.Logger
	now   func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithLogger attaches a logger; the default discards everything.
func WithLogger(log *zap.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// WithClock overrides the time source, for tests and replayed sessions.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService creates the engine service over a plan store.
func NewService(store Store, opts ...Option) *Service {
	s := &Service{
		store: store,
		log:   zap.NewNop(),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}
