// Package geo handles geographic data structures and Web-Mercator
// coordinate conversions.
package geo

// Point is a WGS84 position in degrees.
type Point struct {
	Lat float64 `json:"lat" yaml:"lat"`
	Lng float64 `json:"lng" yaml:"lng"`
}

// Size is a pixel canvas, width by height.
type Size struct {
	Width  int `json:"width" yaml:"width"`
	Height int `json:"height" yaml:"height"`
}

// Valid reports whether both dimensions are positive.
func (s Size) Valid() bool {
	return s.Width > 0 && s.Height > 0
}

// Bounds is a geographic bounding box in degrees. West may be less than
// -180 when the box spans coordinates normalized across the antimeridian.
type Bounds struct {
	North float64 `json:"north" yaml:"north"`
	South float64 `json:"south" yaml:"south"`
	East  float64 `json:"east" yaml:"east"`
	West  float64 `json:"west" yaml:"west"`
}

// Canonical returns the bounds with edges swapped where needed so that
// North >= South and East >= West.
func (b Bounds) Canonical() Bounds {
	if b.South > b.North {
		b.North, b.South = b.South, b.North
	}
	if b.West > b.East {
		b.East, b.West = b.West, b.East
	}
	return b
}

// Center returns the arithmetic midpoint of the box.
func (b Bounds) Center() Point {
	return Point{
		Lat: (b.North + b.South) / 2.0,
		Lng: (b.East + b.West) / 2.0,
	}
}

// SpanLat returns the latitude extent in degrees.
func (b Bounds) SpanLat() float64 {
	return b.North - b.South
}

// SpanLng returns the longitude extent in degrees.
func (b Bounds) SpanLng() float64 {
	return b.East - b.West
}

// Contains reports whether the position lies inside the box, edges
// included. A position with a NaN coordinate is never contained.
func (b Bounds) Contains(lat, lng float64) bool {
	return lat >= b.South && lat <= b.North && lng >= b.West && lng <= b.East
}

// Pad grows the box by the given margins, in degrees per side.
func (b Bounds) Pad(latDeg, lngDeg float64) Bounds {
	b.North += latDeg
	b.South -= latDeg
	b.East += lngDeg
	b.West -= lngDeg
	return b
}
