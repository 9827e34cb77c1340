package analytics

import (
	"fmt"
	"time"
)

// Period selects the trend bucketing granularity.
type Period string

const (
	PeriodMonthly Period = "monthly"
	PeriodWeekly  Period = "weekly"
	PeriodDaily   Period = "daily"
)

// Trend is a bucketed event count series with its summary statistics. Trend
// is the two-point slope (last minus first count over bucket count), a
// coarse direction indicator rather than a regression fit.
type Trend struct {
	Periods []string `json:"periods"`
	Counts  []int    `json:"counts"`
	Trend   float64  `json:"trend"`
	Average float64  `json:"average"`
	Max     int      `json:"max"`
	Min     int      `json:"min"`
}

// Trends buckets events by the period key of their representative date,
// in first-seen bucket order. A non-empty category matches on the primary
// category ID. All statistics are 0 when no bucket exists; the slope needs
// at least two buckets.
func (e *Engine) Trends(category string, period Period) Trend {
	byBucket := make(map[string]int)
	order := make([]string, 0)

	for _, ev := range e.snapshot() {
		if category != "" {
			primary, ok := ev.PrimaryCategory()
			if !ok || primary.ID != category {
				continue
			}
		}

		date, ok := ev.Date()
		if !ok {
			continue
		}
		key, ok := periodKey(date, period)
		if !ok {
			continue
		}

		if _, seen := byBucket[key]; !seen {
			order = append(order, key)
		}
		byBucket[key]++
	}

	t := Trend{Periods: order, Counts: make([]int, 0, len(order))}
	for _, key := range order {
		t.Counts = append(t.Counts, byBucket[key])
	}
	if len(t.Counts) == 0 {
		return t
	}

	if len(t.Counts) >= 2 {
		first := t.Counts[0]
		last := t.Counts[len(t.Counts)-1]
		t.Trend = float64(last-first) / float64(len(t.Counts))
	}

	sum := 0
	t.Max = t.Counts[0]
	t.Min = t.Counts[0]
	for _, c := range t.Counts {
		sum += c
		if c > t.Max {
			t.Max = c
		}
		if c < t.Min {
			t.Min = c
		}
	}
	t.Average = float64(sum) / float64(len(t.Counts))
	return t
}

// periodKey derives the bucket key for a YYYY-MM-DD date: YYYY-MM monthly,
// ISO YYYY-W## weekly, the date itself daily. Unrecognized period values
// bucket daily; the empty value defaults to monthly.
func periodKey(date string, period Period) (string, bool) {
	switch period {
	case PeriodMonthly, "":
		if len(date) < len("2006-01") {
			return "", false
		}
		return date[:len("2006-01")], true
	case PeriodWeekly:
		t, err := time.Parse(dayFormat, date)
		if err != nil {
			return "", false
		}
		year, week := t.ISOWeek()
		return fmt.Sprintf("%d-W%02d", year, week), true
	default:
		return date, true
	}
}
