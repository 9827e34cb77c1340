package domain

import (
	"strconv"
	"strings"
)

// Magnitude is an optional magnitude reading. Valid is false when the feed
// delivered no value or an unparsable one; that state is "no magnitude",
// distinct from a reading of zero.
type Magnitude struct {
	Value float64
	Valid bool
}

// Mag is a shorthand constructor for a present magnitude, used heavily in tests.
func Mag(v float64) Magnitude {
	return Magnitude{Value: v, Valid: true}
}

// UnmarshalJSON accepts a JSON number, a numeric string, or null. Anything
// unparsable decodes as "no magnitude" rather than failing the event; a bad
// reading must not discard an otherwise well-formed payload.
func (m *Magnitude) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "" || s == "null" {
		*m = Magnitude{}
		return nil
	}
	s = strings.Trim(s, `"`)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		*m = Magnitude{}
		return nil
	}
	*m = Magnitude{Value: v, Valid: true}
	return nil
}

// MarshalJSON emits the value as a number, or null when no magnitude resolved,
// mirroring the feed's own encoding.
func (m Magnitude) MarshalJSON() ([]byte, error) {
	if !m.Valid {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatFloat(m.Value, 'f', -1, 64)), nil
}

// MagnitudeBand is a coarse severity bucket used by summary statistics.
type MagnitudeBand string

const (
	BandLow    MagnitudeBand = "low"
	BandMedium MagnitudeBand = "medium"
	BandHigh   MagnitudeBand = "high"
)

// Summary bucket thresholds. These are not the map color cutoffs (yellow/
// orange/red at 3 and 6); the two scales stay separate.
const (
	summaryLowMax    = 1.5
	summaryMediumMax = 5.0
)

// SummaryBand classifies an effective magnitude into the low/medium/high
// summary buckets. Events with no resolvable magnitude (ok=false) are counted
// as low by convention.
func SummaryBand(mag float64, ok bool) MagnitudeBand {
	switch {
	case !ok || mag < summaryLowMax:
		return BandLow
	case mag < summaryMediumMax:
		return BandMedium
	default:
		return BandHigh
	}
}
