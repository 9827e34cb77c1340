package analytics

import (
	"sort"

	"github.com/couchcryptid/eonet-tracker/internal/domain"
)

// DailySeries is a per-day event count series, dates ascending.
type DailySeries struct {
	Labels []string `json:"labels"`
	Values []int    `json:"values"`
}

// CategorySeries pairs category titles with their event counts, in order of
// first appearance.
type CategorySeries struct {
	Labels []string `json:"labels"`
	Values []int    `json:"values"`
}

// SeveritySeries lists the dated magnitudes of events with a resolved
// magnitude, in snapshot order, with their category titles alongside.
type SeveritySeries struct {
	Labels     []string  `json:"labels"`
	Values     []float64 `json:"values"`
	Categories []string  `json:"categories"`
}

// AnalysisData bundles the dashboard series for one analysis window.
type AnalysisData struct {
	Daily      DailySeries    `json:"trends"`
	Categories CategorySeries `json:"categories"`
	Geographic map[string]int `json:"geographic"`
	Severity   SeveritySeries `json:"severity"`
}

// DailyCounts tallies events per representative date over the trailing
// window ending today.
func (e *Engine) DailyCounts(windowDays int) DailySeries {
	cutoff := e.cutoff(windowDays)

	byDay := make(map[string]int)
	for _, ev := range e.snapshot() {
		date, ok := ev.Date()
		if !ok || date < cutoff {
			continue
		}
		byDay[date]++
	}
	return toDailySeries(byDay)
}

// AnalysisData assembles the daily, category, geographic, and severity
// series over the trailing window. Events missing a field contribute only
// to the aggregates that field is not needed for; events without a
// representative date cannot be placed in the window and are excluded.
func (e *Engine) AnalysisData(windowDays int) AnalysisData {
	cutoff := e.cutoff(windowDays)

	data := AnalysisData{
		Categories: CategorySeries{Labels: make([]string, 0), Values: make([]int, 0)},
		Geographic: make(map[string]int, len(domain.Regions())),
		Severity: SeveritySeries{
			Labels:     make([]string, 0),
			Values:     make([]float64, 0),
			Categories: make([]string, 0),
		},
	}
	for _, r := range domain.Regions() {
		data.Geographic[string(r)] = 0
	}

	byDay := make(map[string]int)
	byCategory := make(map[string]int)
	categoryOrder := make([]string, 0)

	for _, ev := range e.snapshot() {
		date, ok := ev.Date()
		if !ok || date < cutoff {
			continue
		}
		byDay[date]++

		cat, hasCategory := ev.PrimaryCategory()
		if hasCategory {
			if _, seen := byCategory[cat.Title]; !seen {
				categoryOrder = append(categoryOrder, cat.Title)
			}
			byCategory[cat.Title]++
		}

		if p, ok := ev.Point(); ok {
			data.Geographic[string(domain.RegionFor(p.Lat()))]++
		}

		if mag, ok := ev.EffectiveMagnitude(); ok {
			data.Severity.Labels = append(data.Severity.Labels, date)
			data.Severity.Values = append(data.Severity.Values, mag)
			data.Severity.Categories = append(data.Severity.Categories, cat.Title)
		}
	}

	data.Daily = toDailySeries(byDay)
	for _, title := range categoryOrder {
		data.Categories.Labels = append(data.Categories.Labels, title)
		data.Categories.Values = append(data.Categories.Values, byCategory[title])
	}
	return data
}

func toDailySeries(byDay map[string]int) DailySeries {
	series := DailySeries{
		Labels: make([]string, 0, len(byDay)),
		Values: make([]int, 0, len(byDay)),
	}
	for date := range byDay {
		series.Labels = append(series.Labels, date)
	}
	sort.Strings(series.Labels)
	for _, date := range series.Labels {
		series.Values = append(series.Values, byDay[date])
	}
	return series
}
