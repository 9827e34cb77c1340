package domain

// Region is one of six fixed latitude bands used for geographic aggregation.
type Region string

const (
	RegionArctic       Region = "Arctic"
	RegionNorthern     Region = "Northern Hemisphere"
	RegionTropicsNorth Region = "Tropics (North)"
	RegionTropicsSouth Region = "Tropics (South)"
	RegionSouthern     Region = "Southern Hemisphere"
	RegionAntarctic    Region = "Antarctic"
)

// Band cutoffs: the polar circles at ±66.5° and the tropic circles at ±23.5°.
const (
	polarLat  = 66.5
	tropicLat = 23.5
)

// RegionFor classifies a latitude into its band. Bounds are exclusive on the
// high side of each band, so 66.5 itself is Northern Hemisphere and 0 is
// Tropics (South).
func RegionFor(lat float64) Region {
	switch {
	case lat > polarLat:
		return RegionArctic
	case lat > tropicLat:
		return RegionNorthern
	case lat > 0:
		return RegionTropicsNorth
	case lat > -tropicLat:
		return RegionTropicsSouth
	case lat > -polarLat:
		return RegionSouthern
	default:
		return RegionAntarctic
	}
}

// Regions lists all six bands in north-to-south order. Aggregations report
// every band, including zero counts.
func Regions() []Region {
	return []Region{
		RegionArctic,
		RegionNorthern,
		RegionTropicsNorth,
		RegionTropicsSouth,
		RegionSouthern,
		RegionAntarctic,
	}
}
