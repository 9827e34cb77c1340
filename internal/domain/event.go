package domain

import (
	"github.com/paulmach/orb"
)

// Category is one entry of the EONET category catalog. ID is the stable key
// used for filtering ("wildfires", "severeStorms"); Title is the display
// label used for grouping and statistics.
type Category struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// Geometry is a single geometry frame of an event: a dated observation with
// an optional coordinate pair and an optional magnitude reading.
type Geometry struct {
	Date          string     `json:"date"`
	Coordinates   *orb.Point `json:"coordinates,omitempty"` // [lon, lat]
	Magnitude     Magnitude  `json:"magnitudeValue"`
	MagnitudeUnit string     `json:"magnitudeUnit,omitempty"`
}

// Event is a natural event as delivered by the feed, with frames and
// categories in feed order.
type Event struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Description   string     `json:"description,omitempty"`
	Link          string     `json:"link,omitempty"`
	Closed        string     `json:"closed,omitempty"`
	Magnitude     Magnitude  `json:"magnitudeValue"`
	MagnitudeUnit string     `json:"magnitudeUnit,omitempty"`
	Categories    []Category `json:"categories"`
	Geometry      []Geometry `json:"geometry"`
}

// dateDayLen is the length of the calendar-day prefix of an RFC 3339 date.
const dateDayLen = len("2006-01-02")

// Date returns the event's representative date: the first geometry frame's
// date truncated to the calendar day. ok is false when the event has no
// geometry frames.
func (e Event) Date() (string, bool) {
	if len(e.Geometry) == 0 {
		return "", false
	}
	d := e.Geometry[0].Date
	if len(d) > dateDayLen {
		d = d[:dateDayLen]
	}
	return d, true
}

// Point returns the event's representative coordinate: the first geometry
// frame's pair in [lon, lat] order. ok is false when the event has no frames
// or the first frame carries no coordinates.
func (e Event) Point() (orb.Point, bool) {
	if len(e.Geometry) == 0 || e.Geometry[0].Coordinates == nil {
		return orb.Point{}, false
	}
	return *e.Geometry[0].Coordinates, true
}

// EffectiveMagnitude resolves the event's magnitude: the event-level value
// first, then the first geometry frame with a valid reading. ok is false when
// no magnitude resolves anywhere, a valid outcome rather than an error.
func (e Event) EffectiveMagnitude() (float64, bool) {
	if e.Magnitude.Valid {
		return e.Magnitude.Value, true
	}
	for _, g := range e.Geometry {
		if g.Magnitude.Valid {
			return g.Magnitude.Value, true
		}
	}
	return 0, false
}

// PrimaryCategory returns the event's first category, the only one consulted
// for filtering and grouping. ok is false when the event has no categories.
func (e Event) PrimaryCategory() (Category, bool) {
	if len(e.Categories) == 0 {
		return Category{}, false
	}
	return e.Categories[0], true
}
