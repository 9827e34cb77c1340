// Package analytics computes filtered views and derived statistics over the
// cached event snapshot: multi-field filtering, summary counts, period trend
// series, geographic region binning, and feature correlation.
package analytics

import (
	"log/slog"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/eonet-tracker/internal/domain"
	"github.com/couchcryptid/eonet-tracker/internal/observability"
)

const dayFormat = "2006-01-02"

// Source provides the event snapshot the engine computes over.
type Source interface {
	Events() ([]domain.Event, bool)
}

// Engine answers filter and analytics queries. Every call reads one complete
// snapshot from its source and computes synchronously; the engine itself
// holds no state between calls.
type Engine struct {
	source  Source
	clock   clockwork.Clock
	metrics *observability.Metrics
	logger  *slog.Logger
}

// New creates an Engine reading from source.
func New(source Source, clock clockwork.Clock, metrics *observability.Metrics, logger *slog.Logger) *Engine {
	return &Engine{
		source:  source,
		clock:   clock,
		metrics: metrics,
		logger:  logger,
	}
}

func (e *Engine) snapshot() []domain.Event {
	events, _ := e.source.Events()
	return events
}

// cutoff returns the calendar day windowDays before now.
func (e *Engine) cutoff(windowDays int) string {
	return e.clock.Now().UTC().AddDate(0, 0, -windowDays).Format(dayFormat)
}
