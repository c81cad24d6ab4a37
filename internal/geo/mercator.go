package geo

import "math"

// MaxLat is the Web-Mercator latitude limit. Latitudes beyond it do not
// project, so inputs are clamped to this range first.
const MaxLat = 85.05112878

// ClampLat limits a latitude to the projectable Mercator range.
func ClampLat(lat float64) float64 {
	if lat > MaxLat {
		return MaxLat
	}
	if lat < -MaxLat {
		return -MaxLat
	}
	return lat
}

// NormalizeLng shifts positive longitudes into the negative western
// hemisphere by subtracting a full revolution. Feed values stored in
// 0..360 form (or hemisphere-flipped by an upstream exporter) resolve to
// their -360..0 equivalent; values already at or below zero pass through,
// as does NaN.
func NormalizeLng(lng float64) float64 {
	if lng > 0 {
		return lng - 360.0
	}
	return lng
}

// Project converts a WGS84 position to fractional world coordinates,
// where (0,0) is the north-west corner of the world tile and (1,1) the
// south-east. Longitudes outside [-180, 180] extend the x axis linearly,
// so spans across normalized antimeridian points stay contiguous.
func Project(lng, lat float64) (x, y float64) {
	// lng: [-180..180] -> x: [0..1]
	x = (lng + 180.0) / 360.0

	latRad := ClampLat(lat) * (math.Pi / 180.0)
	y = 0.5 - math.Log(math.Tan(math.Pi/4.0+latRad/2.0))/(2.0*math.Pi)

	return x, y
}

// Unproject converts fractional world coordinates back to WGS84 degrees.
func Unproject(x, y float64) (lng, lat float64) {
	lng = x*360.0 - 180.0

	// y: [0..1] -> mercatorY: [PI..-PI]
	mercatorY := (0.5 - y) * (2.0 * math.Pi)
	latRad := (2.0 * math.Atan(math.Exp(mercatorY))) - (math.Pi * 0.5)
	lat = ClampLat(latRad * (180.0 / math.Pi))

	return lng, lat
}
