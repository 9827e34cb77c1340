package analytics

import (
	"github.com/couchcryptid/eonet-tracker/internal/domain"
)

// MagnitudeBuckets counts events per summary severity band.
type MagnitudeBuckets struct {
	Low    int `json:"low"`
	Medium int `json:"medium"`
	High   int `json:"high"`
}

// Summary is the whole-snapshot statistics bundle.
type Summary struct {
	EventCount  int              `json:"event_count"`
	Categories  map[string]int   `json:"categories"`
	Magnitudes  MagnitudeBuckets `json:"magnitudes"`
	DailyCounts map[string]int   `json:"daily_counts"`
}

// Summary computes the total count, per-category counts keyed by primary
// category title, severity bucket counts, and per-day counts in one pass
// over the current snapshot.
func (e *Engine) Summary() Summary {
	events := e.snapshot()

	s := Summary{
		EventCount:  len(events),
		Categories:  make(map[string]int),
		DailyCounts: make(map[string]int),
	}
	for _, ev := range events {
		if cat, ok := ev.PrimaryCategory(); ok {
			s.Categories[cat.Title]++
		}

		switch domain.SummaryBand(ev.EffectiveMagnitude()) {
		case domain.BandLow:
			s.Magnitudes.Low++
		case domain.BandMedium:
			s.Magnitudes.Medium++
		case domain.BandHigh:
			s.Magnitudes.High++
		}

		if date, ok := ev.Date(); ok {
			s.DailyCounts[date]++
		}
	}
	return s
}
