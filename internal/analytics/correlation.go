package analytics

import (
	"math"
	"time"

	"gonum.org/v1/gonum/stat"
)

// correlationLabels are the feature columns of the correlation matrix, in
// matrix order.
var correlationLabels = []string{
	"latitude",
	"longitude",
	"month",
	"day",
	"day_of_week",
	"is_weekend",
	"category_code",
}

// CorrelationMatrix is the pairwise Pearson correlation across event
// features, symmetric with a unit diagonal.
type CorrelationMatrix struct {
	Labels []string    `json:"labels"`
	Matrix [][]float64 `json:"matrix"`
}

// Correlation builds one numeric feature vector per event and computes the
// Pearson correlation across all feature columns. The category code is a
// dense integer assigned by order of first appearance; it distinguishes
// categories and nothing more. Weekdays run Monday=0 through Sunday=6.
// Events missing a coordinate, a parsable date, or a category are excluded.
// Zero-variance columns correlate 0 with everything off the diagonal.
func (e *Engine) Correlation() CorrelationMatrix {
	cols := make([][]float64, len(correlationLabels))
	codes := make(map[string]int)

	for _, ev := range e.snapshot() {
		p, ok := ev.Point()
		if !ok {
			continue
		}
		date, ok := ev.Date()
		if !ok {
			continue
		}
		day, err := time.Parse(dayFormat, date)
		if err != nil {
			continue
		}
		cat, ok := ev.PrimaryCategory()
		if !ok {
			continue
		}

		code, seen := codes[cat.Title]
		if !seen {
			code = len(codes)
			codes[cat.Title] = code
		}

		weekday := (int(day.Weekday()) + 6) % 7
		weekend := 0.0
		if weekday >= 5 {
			weekend = 1.0
		}

		features := []float64{
			p.Lat(),
			p.Lon(),
			float64(day.Month()),
			float64(day.Day()),
			float64(weekday),
			weekend,
			float64(code),
		}
		for i, v := range features {
			cols[i] = append(cols[i], v)
		}
	}

	n := len(correlationLabels)
	matrix := make([][]float64, n)
	for i := range matrix {
		matrix[i] = make([]float64, n)
		matrix[i][i] = 1
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			r := stat.Correlation(cols[i], cols[j], nil)
			if math.IsNaN(r) {
				r = 0
			}
			matrix[i][j] = r
			matrix[j][i] = r
		}
	}

	return CorrelationMatrix{Labels: correlationLabels, Matrix: matrix}
}
