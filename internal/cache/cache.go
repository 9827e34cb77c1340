package cache

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/eonet-tracker/internal/domain"
	"github.com/couchcryptid/eonet-tracker/internal/observability"
)

// Feed is the slice of the EONET client the cache depends on.
type Feed interface {
	FetchEvents(ctx context.Context, windowDays int) ([]domain.Event, error)
	FetchCategories(ctx context.Context) ([]domain.Category, error)
}

// EventSnapshot is one immutable refresh result. Readers share the slice and
// must not mutate it.
type EventSnapshot struct {
	Events    []domain.Event
	FetchedAt time.Time
}

// CategorySnapshot is the category catalog from one refresh.
type CategorySnapshot struct {
	Categories []domain.Category
	FetchedAt  time.Time
}

// Cache holds the latest feed snapshots. Each refresh builds a complete
// snapshot and swaps it in atomically, so readers never observe a partial
// update and never block behind a refresh in flight.
type Cache struct {
	feed       Feed
	windowDays int
	clock      clockwork.Clock
	metrics    *observability.Metrics
	logger     *slog.Logger

	events     atomic.Pointer[EventSnapshot]
	categories atomic.Pointer[CategorySnapshot]
}

// New creates an empty cache around the given feed.
func New(feed Feed, windowDays int, clock clockwork.Clock, metrics *observability.Metrics, logger *slog.Logger) *Cache {
	return &Cache{
		feed:       feed,
		windowDays: windowDays,
		clock:      clock,
		metrics:    metrics,
		logger:     logger,
	}
}

// RefreshEvents fetches the event window and swaps in a new snapshot. On
// failure the previous snapshot stays in place.
func (c *Cache) RefreshEvents(ctx context.Context) error {
	events, err := c.feed.FetchEvents(ctx, c.windowDays)
	if err != nil {
		return fmt.Errorf("refresh events: %w", err)
	}

	snap := &EventSnapshot{Events: events, FetchedAt: c.clock.Now()}
	c.events.Store(snap)

	c.metrics.EventsCached.Set(float64(len(events)))
	c.metrics.LastRefreshUnix.Set(float64(snap.FetchedAt.Unix()))
	c.logger.Info("events refreshed", "count", len(events))
	return nil
}

// RefreshCategories fetches the category catalog and swaps in a new snapshot.
func (c *Cache) RefreshCategories(ctx context.Context) error {
	categories, err := c.feed.FetchCategories(ctx)
	if err != nil {
		return fmt.Errorf("refresh categories: %w", err)
	}

	c.categories.Store(&CategorySnapshot{Categories: categories, FetchedAt: c.clock.Now()})
	c.logger.Info("categories refreshed", "count", len(categories))
	return nil
}

// Snapshot returns the current event snapshot, or nil before the first
// successful refresh.
func (c *Cache) Snapshot() *EventSnapshot {
	return c.events.Load()
}

// Events returns the events of the current snapshot. ok is false until the
// first successful refresh.
func (c *Cache) Events() ([]domain.Event, bool) {
	snap := c.Snapshot()
	if snap == nil {
		return nil, false
	}
	return snap.Events, true
}

// Categories returns the current category catalog. ok is false until the
// first successful refresh.
func (c *Cache) Categories() ([]domain.Category, bool) {
	snap := c.categories.Load()
	if snap == nil {
		return nil, false
	}
	return snap.Categories, true
}

// LastRefresh returns the time of the last successful events refresh.
func (c *Cache) LastRefresh() (time.Time, bool) {
	snap := c.Snapshot()
	if snap == nil {
		return time.Time{}, false
	}
	return snap.FetchedAt, true
}
