package analytics

import (
	"github.com/couchcryptid/eonet-tracker/internal/domain"
)

// Filter is the caller-supplied constraint set for FilterEvents. Zero values
// mean "no constraint"; magnitude bounds are pointers so 0 remains a usable
// bound.
type Filter struct {
	StartDate    string
	EndDate      string
	Category     string
	MinMagnitude *float64
	MaxMagnitude *float64
}

// FilterResult carries the matching events plus the count of events that
// could not be evaluated against a requested constraint.
type FilterResult struct {
	Events  []domain.Event `json:"events"`
	Skipped int            `json:"skipped,omitempty"`
}

type verdict int

const (
	keep verdict = iota
	drop
	skip
)

// FilterEvents projects the current snapshot onto the subset matching f,
// preserving feed order. An event missing a field a given constraint needs
// (a date filter with no geometry frames, a category filter with no
// categories) is skipped and counted, never an error; the call as a whole
// always succeeds.
func (e *Engine) FilterEvents(f Filter) FilterResult {
	events := e.snapshot()

	result := FilterResult{Events: make([]domain.Event, 0, len(events))}
	for _, ev := range events {
		switch evaluate(ev, f) {
		case keep:
			result.Events = append(result.Events, ev)
		case skip:
			result.Skipped++
			e.metrics.EventsSkipped.Inc()
			e.logger.Warn("event not evaluable against filter, skipping", "event_id", ev.ID)
		case drop:
		}
	}
	return result
}

// evaluate applies the filter steps in order: date window, category,
// magnitude range. Only fields a given constraint actually needs are
// resolved, so unconstrained calls pass every event untouched.
func evaluate(ev domain.Event, f Filter) verdict {
	if f.StartDate != "" || f.EndDate != "" {
		date, ok := ev.Date()
		if !ok {
			return skip
		}
		// Lexicographic compare is chronological for YYYY-MM-DD strings.
		if f.StartDate != "" && date < f.StartDate {
			return drop
		}
		if f.EndDate != "" && date > f.EndDate {
			return drop
		}
	}

	if f.Category != "" {
		primary, ok := ev.PrimaryCategory()
		if !ok {
			return skip
		}
		if primary.ID != f.Category {
			return drop
		}
	}

	if f.MinMagnitude != nil || f.MaxMagnitude != nil {
		// An unresolved magnitude never fails a magnitude filter.
		if mag, ok := ev.EffectiveMagnitude(); ok {
			if f.MinMagnitude != nil && mag < *f.MinMagnitude {
				return drop
			}
			if f.MaxMagnitude != nil && mag > *f.MaxMagnitude {
				return drop
			}
		}
	}

	return keep
}
