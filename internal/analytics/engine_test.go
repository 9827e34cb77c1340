package analytics_test

import (
	"io"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/paulmach/orb"

	"github.com/couchcryptid/eonet-tracker/internal/analytics"
	"github.com/couchcryptid/eonet-tracker/internal/domain"
	"github.com/couchcryptid/eonet-tracker/internal/observability"
)

// --- helpers ---

type stubSource struct {
	events []domain.Event
}

func (s *stubSource) Events() ([]domain.Event, bool) {
	return s.events, s.events != nil
}

var testNow = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

func newEngine(events ...domain.Event) *analytics.Engine {
	return analytics.New(
		&stubSource{events: events},
		clockwork.NewFakeClockAt(testNow),
		observability.NewMetricsForTesting(),
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
}

func pt(lon, lat float64) *orb.Point {
	p := orb.Point{lon, lat}
	return &p
}

func f64(v float64) *float64 {
	return &v
}

func wildfire(id, date string, mag float64) domain.Event {
	return domain.Event{
		ID:         id,
		Title:      "Fire " + id,
		Categories: []domain.Category{{ID: "wildfires", Title: "Wildfires"}},
		Geometry: []domain.Geometry{
			{Date: date + "T00:00:00Z", Magnitude: domain.Mag(mag), Coordinates: pt(-120.5, 38.2)},
		},
	}
}

func storm(id, date string, mag float64) domain.Event {
	return domain.Event{
		ID:         id,
		Title:      "Storm " + id,
		Categories: []domain.Category{{ID: "severeStorms", Title: "Severe Storms"}},
		Geometry: []domain.Geometry{
			{Date: date + "T00:00:00Z", Magnitude: domain.Mag(mag), Coordinates: pt(-88.5, 24.3)},
		},
	}
}

func volcanoNoMag(id, date string) domain.Event {
	return domain.Event{
		ID:         id,
		Title:      "Volcano " + id,
		Categories: []domain.Category{{ID: "volcanoes", Title: "Volcanoes"}},
		Geometry: []domain.Geometry{
			{Date: date + "T00:00:00Z", Coordinates: pt(-155.28, 19.42)},
		},
	}
}

func eventAtLat(id string, lat float64) domain.Event {
	return domain.Event{
		ID:         id,
		Title:      "Event " + id,
		Categories: []domain.Category{{ID: "wildfires", Title: "Wildfires"}},
		Geometry: []domain.Geometry{
			{Date: "2026-03-01T00:00:00Z", Coordinates: pt(0, lat)},
		},
	}
}

func eventFull(id, date string, lat, lon float64, catID, catTitle string) domain.Event {
	return domain.Event{
		ID:         id,
		Title:      "Event " + id,
		Categories: []domain.Category{{ID: catID, Title: catTitle}},
		Geometry: []domain.Geometry{
			{Date: date + "T00:00:00Z", Coordinates: pt(lon, lat)},
		},
	}
}

func eventIDs(events []domain.Event) []string {
	ids := make([]string, 0, len(events))
	for _, ev := range events {
		ids = append(ids, ev.ID)
	}
	return ids
}
