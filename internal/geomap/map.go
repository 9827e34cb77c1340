// Package geomap projects event sets into a renderable map description:
// per-category overlay layers of colored markers plus map-level controls.
// It produces data for a client-side renderer, never HTML.
package geomap

import (
	"github.com/paulmach/orb"

	"github.com/couchcryptid/eonet-tracker/internal/domain"
)

// World-view frame.
const (
	centerLat = 20
	centerLon = 0
	zoomStart = 3
	tileSet   = "CartoDB positron"
)

// Marker fill colors per raw magnitude band. This scale belongs to the map
// alone and is independent of the summary statistics buckets; the two are
// never unified.
const (
	colorDefault = "#3388ff"
	colorYellow  = "#FFEB3B"
	colorOrange  = "#FF9800"
	colorRed     = "#F44336"
)

const (
	markerRadius      = 8
	markerBorder      = "black"
	markerBorderWidth = 1
	markerOpacity     = 0.7
)

const noDescription = "No description available"

// Description is a complete renderable map: frame, per-category overlay
// layers, controls, and the magnitude legend.
type Description struct {
	Center       [2]float64 `json:"center"` // [lat, lon]
	Zoom         int        `json:"zoom"`
	Tiles        string     `json:"tiles"`
	Layers       []Layer    `json:"layers"`
	LayerControl bool       `json:"layer_control"`
	Fullscreen   bool       `json:"fullscreen"`
	Legend       Legend     `json:"legend"`
}

// Layer groups the markers of one primary category, independently
// toggleable by the renderer.
type Layer struct {
	Category string   `json:"category"`
	Markers  []Marker `json:"markers"`
}

// Marker is one plotted event.
type Marker struct {
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
	Radius      int     `json:"radius"`
	Color       string  `json:"color"`
	Weight      int     `json:"weight"`
	FillColor   string  `json:"fill_color"`
	FillOpacity float64 `json:"fill_opacity"`
	Icon        string  `json:"icon"`
	Tooltip     string  `json:"tooltip"`
	Popup       Popup   `json:"popup"`
}

// Popup is the marker detail payload. Magnitude is omitted when the event
// resolves none or it is zero.
type Popup struct {
	Title       string   `json:"title"`
	Category    string   `json:"category"`
	Date        string   `json:"date"`
	Magnitude   *float64 `json:"magnitude,omitempty"`
	Description string   `json:"description"`
}

// Legend is the magnitude color ramp shown alongside the map.
type Legend struct {
	Colors  []string `json:"colors"`
	Min     float64  `json:"min"`
	Max     float64  `json:"max"`
	Caption string   `json:"caption"`
}

// Project maps every event with a representative coordinate onto a marker
// in its category's overlay layer. Layers are created lazily in first-seen
// order. Events without a coordinate or without a primary category cannot be
// placed or grouped and are silently excluded; they still count elsewhere.
func Project(events []domain.Event) Description {
	desc := Description{
		Center:       [2]float64{centerLat, centerLon},
		Zoom:         zoomStart,
		Tiles:        tileSet,
		Layers:       make([]Layer, 0),
		LayerControl: true,
		Fullscreen:   true,
		Legend: Legend{
			Colors:  []string{colorYellow, colorOrange, colorRed},
			Min:     0,
			Max:     10,
			Caption: "Event Magnitude",
		},
	}

	layerIndex := make(map[string]int)
	for _, ev := range events {
		p, ok := ev.Point()
		if !ok {
			continue
		}
		cat, ok := ev.PrimaryCategory()
		if !ok {
			continue
		}

		idx, ok := layerIndex[cat.Title]
		if !ok {
			idx = len(desc.Layers)
			layerIndex[cat.Title] = idx
			desc.Layers = append(desc.Layers, Layer{Category: cat.Title, Markers: make([]Marker, 0, 1)})
		}
		desc.Layers[idx].Markers = append(desc.Layers[idx].Markers, newMarker(ev, cat.Title, p))
	}
	return desc
}

func newMarker(ev domain.Event, category string, p orb.Point) Marker {
	mag, hasMag := ev.EffectiveMagnitude()
	date, _ := ev.Date()

	m := Marker{
		Lat:         p.Lat(),
		Lon:         p.Lon(),
		Radius:      markerRadius,
		Color:       markerBorder,
		Weight:      markerBorderWidth,
		FillColor:   MarkerColor(mag, hasMag),
		FillOpacity: markerOpacity,
		Icon:        CategoryIcon(category),
		Tooltip:     category + ": " + ev.Title,
		Popup: Popup{
			Title:       ev.Title,
			Category:    category,
			Date:        date,
			Description: ev.Description,
		},
	}
	if hasMag && mag != 0 {
		v := mag
		m.Popup.Magnitude = &v
	}
	if m.Popup.Description == "" {
		m.Popup.Description = noDescription
	}
	return m
}

// MarkerColor picks the marker fill for a raw magnitude: the default blue
// when the magnitude is absent or zero, then yellow, orange, red with
// rising severity.
func MarkerColor(mag float64, ok bool) string {
	switch {
	case !ok || mag == 0:
		return colorDefault
	case mag < 3:
		return colorYellow
	case mag < 6:
		return colorOrange
	default:
		return colorRed
	}
}

// categoryIcons maps category titles to renderer icon names.
var categoryIcons = map[string]string{
	"Wildfires":            "fire",
	"Volcanoes":            "mountain",
	"Severe Storms":        "bolt",
	"Floods":               "water",
	"Earthquakes":          "globe",
	"Drought":              "sun",
	"Landslides":           "mountain",
	"Sea and Lake Ice":     "snowflake",
	"Temperature Extremes": "thermometer",
}

// CategoryIcon returns the icon name for a category title, or the generic
// info icon for categories without one.
func CategoryIcon(title string) string {
	if icon, ok := categoryIcons[title]; ok {
		return icon
	}
	return "info-circle"
}
