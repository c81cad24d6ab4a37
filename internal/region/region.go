// Package region classifies coordinates into the logbook's fixed set of
// assignment regions.
package region

import "github.com/travelnurselog/contractmap/internal/geo"

// Region name keys, matching the preference store.
const (
	Hawaii          = "hawaii"
	PuertoRico      = "puerto-rico"
	USVirginIslands = "us-virgin-islands"
	Guam            = "guam"
	NorthernMariana = "northern-mariana"
	AmericanSamoa   = "american-samoa"
	Alaska          = "alaska"
	CONUS           = "conus"
	Canada          = "canada"

	// Other is the catch-all for anything no table entry claims.
	Other = "other-international"
)

// Region is a named static bounding box. Boxes west of the antimeridian
// (Guam, Northern Mariana) keep their natural positive-east bounds; the
// classifier's dual check matches raw coordinates against them.
type Region struct {
	Name   string     `json:"name" yaml:"name"`
	Label  string     `json:"label" yaml:"label"`
	Bounds geo.Bounds `json:"bounds" yaml:"bounds"`
}

// Table lists every bounded region in classification priority order.
// Small island territories come before the broad continental boxes so
// their points are claimed first; overlap between boxes is resolved by
// this order alone, never by box size. The catch-all is not listed.
var Table = []Region{
	{
		Name:   Hawaii,
		Label:  "Hawaii",
		Bounds: geo.Bounds{North: 22.75, South: 18.5, East: -154.5, West: -160.6},
	},
	{
		Name:   PuertoRico,
		Label:  "Puerto Rico",
		Bounds: geo.Bounds{North: 18.6, South: 17.6, East: -65.15, West: -67.5},
	},
	{
		Name:   USVirginIslands,
		Label:  "U.S. Virgin Islands",
		Bounds: geo.Bounds{North: 18.5, South: 17.6, East: -64.5, West: -65.15},
	},
	{
		Name:   Guam,
		Label:  "Guam",
		Bounds: geo.Bounds{North: 13.7, South: 13.2, East: 145.0, West: 144.6},
	},
	{
		Name:   NorthernMariana,
		Label:  "Northern Mariana Islands",
		Bounds: geo.Bounds{North: 20.6, South: 14.0, East: 146.1, West: 144.85},
	},
	{
		Name:   AmericanSamoa,
		Label:  "American Samoa",
		Bounds: geo.Bounds{North: -10.9, South: -14.9, East: -168.1, West: -171.9},
	},
	{
		Name:   Alaska,
		Label:  "Alaska",
		Bounds: geo.Bounds{North: 71.5, South: 51.0, East: -129.0, West: -179.95},
	},
	{
		Name:   CONUS,
		Label:  "Continental U.S.",
		Bounds: geo.Bounds{North: 49.384358, South: 24.396308, East: -66.93457, West: -125.00165},
	},
	{
		Name:   Canada,
		Label:  "Canada",
		Bounds: geo.Bounds{North: 83.2, South: 41.6, East: -52.5, West: -141.0},
	},
}

// Classify returns the name of the first region containing the point,
// or the catch-all when none does. The longitude is taken in raw form
// and tested both as-is and normalized, so positive-east territories and
// negative-west continental boxes each match their natural
// representation of the same physical point. Total over all inputs; a
// NaN coordinate matches nothing and lands in the catch-all.
func Classify(lat, lng float64) string {
	norm := geo.NormalizeLng(lng)
	for i := range Table {
		r := &Table[i]
		if r.Bounds.Contains(lat, lng) || r.Bounds.Contains(lat, norm) {
			return r.Name
		}
	}
	return Other
}

// Names returns every known region name in priority order, catch-all
// last.
func Names() []string {
	names := make([]string, 0, len(Table)+1)
	for i := range Table {
		names = append(names, Table[i].Name)
	}
	return append(names, Other)
}

// Lookup finds a bounded region by name. The catch-all has no bounds
// and is not found here.
func Lookup(name string) (Region, bool) {
	for i := range Table {
		if Table[i].Name == name {
			return Table[i], true
		}
	}
	return Region{}, false
}
