// Package domain models natural-event data from NASA's Earth Observatory
// Natural Event Tracker (EONET).
//
// # Data Source
//
// Events originate from the EONET v3 API (https://eonet.gsfc.nasa.gov/api/v3),
// a curated catalog of natural events (wildfires, severe storms, volcanoes,
// sea and lake ice, and so on). The service fetches two read-only resources:
// the category list, and all events (open and closed) inside a sliding
// calendar-day window.
//
// # Payload Conventions
//
// Geometry:
//
//	Each event carries an ordered list of geometry frames. A frame has an
//	RFC 3339 date, a coordinate pair in GeoJSON [longitude, latitude] order,
//	and an optional magnitude reading. The first frame is authoritative: the
//	event's representative date is the first frame's date truncated to the
//	calendar day ("2024-01-15T06:00:00Z" → "2024-01-15"), and the
//	representative coordinate is the first frame's pair. Frames with Polygon
//	coordinates are reduced to the first vertex of the outer ring upstream.
//
// Categories:
//
//	Events may be tagged with several categories, but only the first is ever
//	consulted: filtering matches on the first category's ID, and all
//	grouping keys off the first category's title. Distinct IDs can share a
//	title, so title-keyed grouping is lossy display behavior.
//
// Magnitude:
//
//	Magnitude readings are sparse and unit-inconsistent across categories
//	(acres for wildfires, kts for storms). The effective magnitude of an
//	event is resolved in a fixed order: the event-level magnitudeValue
//	first, then the first geometry frame exposing a parsable value. The
//	result is either a float or "no magnitude"; absence is a valid terminal
//	state and must not be conflated with zero.
//	See [Event.EffectiveMagnitude].
//
// Severity scales:
//
//	Two independent scales coexist and are never unified:
//
//	  Summary buckets: low <1.5 | medium <5.0 | high ≥5.0   [SummaryBand]
//	  Map colors:      yellow <3 | orange <6  | red ≥6      (geomap.MarkerColor)
//
//	Events with no resolvable magnitude count as "low" in summary buckets by
//	convention, while the map renders them in the default marker color.
//
// # Region Bands
//
// Latitudes are classified into six fixed bands for geographic aggregation:
// Arctic (>66.5), Northern Hemisphere (>23.5), Tropics (North) (>0),
// Tropics (South) (>-23.5), Southern Hemisphere (>-66.5), Antarctic (rest).
// The cutoffs are the polar and tropic circles. See [RegionFor].
package domain
