package refresh

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/eonet-tracker/internal/domain"
	"github.com/couchcryptid/eonet-tracker/internal/observability"
)

// Store is the cache surface the scheduler drives.
type Store interface {
	RefreshEvents(ctx context.Context) error
	RefreshCategories(ctx context.Context) error
	Events() ([]domain.Event, bool)
}

// Exporter publishes newly observed events after a successful refresh.
type Exporter interface {
	PublishEvents(ctx context.Context, events []domain.Event) error
}

// Exponential backoff between failed refreshes: start at 5s, double each
// retry, cap at 2m. Successful refreshes wait the full interval.
const (
	initialBackoff = 5 * time.Second
	maxBackoff     = 2 * time.Minute
)

// Scheduler keeps the cache fresh: one blocking refresh at startup, then
// periodic refreshes until the context is cancelled. Failed refreshes leave
// the cache stale and retry with capped exponential spacing.
type Scheduler struct {
	store    Store
	exporter Exporter
	interval time.Duration
	clock    clockwork.Clock
	metrics  *observability.Metrics
	logger   *slog.Logger

	ready atomic.Bool
	prev  map[string]struct{}
}

// New creates a Scheduler refreshing store every interval. exporter may be
// nil to disable the feed fan-out.
func New(store Store, exporter Exporter, interval time.Duration, clock clockwork.Clock, metrics *observability.Metrics, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		store:    store,
		exporter: exporter,
		interval: interval,
		clock:    clock,
		metrics:  metrics,
		logger:   logger,
	}
}

// CheckReadiness returns nil once at least one events refresh has succeeded,
// or an error describing why the service is not yet ready.
func (s *Scheduler) CheckReadiness(_ context.Context) error {
	if !s.ready.Load() {
		return errors.New("event cache has not been populated yet")
	}
	return nil
}

// Run executes the refresh loop until the context is cancelled.
func (s *Scheduler) Run(ctx context.Context) error {
	s.logger.Info("refresh scheduler started", "interval", s.interval)
	s.metrics.SchedulerRunning.Set(1)
	defer s.metrics.SchedulerRunning.Set(0)

	backoff := initialBackoff
	for {
		select {
		case <-ctx.Done():
			s.logger.Info("refresh scheduler stopping", "reason", ctx.Err())
			return nil
		default:
		}

		if err := s.refresh(ctx); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			s.metrics.RefreshTotal.WithLabelValues("error").Inc()
			s.logger.Error("refresh failed", "error", err, "retry_in", backoff)
			if !s.sleep(ctx, backoff) {
				return nil
			}
			backoff = nextBackoff(backoff)
			continue
		}

		s.metrics.RefreshTotal.WithLabelValues("success").Inc()
		backoff = initialBackoff
		if !s.sleep(ctx, s.interval) {
			return nil
		}
	}
}

// refresh updates categories and events. Categories change rarely, so a
// failure there logs and never blocks the event refresh.
func (s *Scheduler) refresh(ctx context.Context) error {
	if err := s.store.RefreshCategories(ctx); err != nil {
		s.logger.Warn("categories refresh failed", "error", err)
	}

	if err := s.store.RefreshEvents(ctx); err != nil {
		return err
	}
	s.ready.Store(true)
	s.exportNew(ctx)
	return nil
}

// exportNew publishes events not present in the previous snapshot.
// Best-effort: a publish failure logs and is not retried.
func (s *Scheduler) exportNew(ctx context.Context) {
	if s.exporter == nil {
		return
	}
	events, ok := s.store.Events()
	if !ok {
		return
	}

	current := make(map[string]struct{}, len(events))
	fresh := make([]domain.Event, 0)
	for _, ev := range events {
		current[ev.ID] = struct{}{}
		if _, seen := s.prev[ev.ID]; !seen {
			fresh = append(fresh, ev)
		}
	}
	s.prev = current

	if len(fresh) == 0 {
		return
	}
	if err := s.exporter.PublishEvents(ctx, fresh); err != nil {
		s.metrics.ExportErrors.Inc()
		s.logger.Warn("event export failed", "error", err, "count", len(fresh))
		return
	}
	s.metrics.ExportPublished.Add(float64(len(fresh)))
	s.logger.Info("events exported", "count", len(fresh))
}

func (s *Scheduler) sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}

	timer := s.clock.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.Chan():
		return true
	}
}

func nextBackoff(current time.Duration) time.Duration {
	next := current * 2
	if next > maxBackoff {
		return maxBackoff
	}
	return next
}
