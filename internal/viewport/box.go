package viewport

import (
	"github.com/travelnurselog/contractmap/internal/contracts"
	"github.com/travelnurselog/contractmap/internal/geo"
)

// SmartBox is the derived extent around the visible contracts. Box is
// the padded rectangle handed to the fitter, Raw the tight min/max
// rectangle it grew from, and Center the arithmetic center of Raw.
// Center is carried here so downstream consumers reuse one centroid
// instead of re-deriving it from the padded box.
type SmartBox struct {
	Box    geo.Bounds `json:"box" yaml:"box"`
	Raw    geo.Bounds `json:"raw" yaml:"raw"`
	Center geo.Point  `json:"center" yaml:"center"`
	Count  int        `json:"count" yaml:"count"`
}

// ComputeBox derives the display box for a contract set on the given
// canvas. Rows without usable coordinates are skipped; longitudes are
// normalized first so a set spanning the antimeridian produces one
// contiguous box instead of a wrap-around.
//
// Zero usable rows return the fixed continental-US box, one row a
// synthetic city-scale box around the point. For two or more, padding
// per axis is the pixel buffer converted to degrees at the box's own
// scale and clamped to the configured range, keeping the margin visually
// steady across zoom levels.
func ComputeBox(list []contracts.Contract, canvas geo.Size, s Settings) SmartBox {
	s = s.withDefaults()
	if !canvas.Valid() {
		canvas = s.Fallback
	}

	var (
		count          int
		minLat, maxLat float64
		minLng, maxLng float64
	)

	for _, c := range list {
		if !c.HasCoordinates() {
			continue
		}
		lat := float64(c.Latitude)
		lng := geo.NormalizeLng(float64(c.Longitude))

		if count == 0 {
			minLat, maxLat = lat, lat
			minLng, maxLng = lng, lng
		} else {
			if lat < minLat {
				minLat = lat
			}
			if lat > maxLat {
				maxLat = lat
			}
			if lng < minLng {
				minLng = lng
			}
			if lng > maxLng {
				maxLng = lng
			}
		}
		count++
	}

	switch count {
	case 0:
		return SmartBox{Box: DefaultBox, Raw: DefaultBox, Center: DefaultBox.Center()}
	case 1:
		raw := geo.Bounds{
			North: minLat + s.SingleSpanDeg,
			South: minLat - s.SingleSpanDeg,
			East:  minLng + s.SingleSpanDeg,
			West:  minLng - s.SingleSpanDeg,
		}
		return SmartBox{Box: raw, Raw: raw, Center: geo.Point{Lat: minLat, Lng: minLng}, Count: 1}
	}

	raw := geo.Bounds{North: maxLat, South: minLat, East: maxLng, West: minLng}

	padLat := clamp(s.BufferPx*raw.SpanLat()/float64(canvas.Height), s.PadMinDeg, s.PadMaxDeg)
	padLng := clamp(s.BufferPx*raw.SpanLng()/float64(canvas.Width), s.PadMinDeg, s.PadMaxDeg)

	return SmartBox{
		Box:    raw.Pad(padLat, padLng),
		Raw:    raw,
		Center: raw.Center(),
		Count:  count,
	}
}
