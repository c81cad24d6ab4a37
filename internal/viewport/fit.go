package viewport

import (
	"math"

	"github.com/travelnurselog/contractmap/internal/geo"
)

// tileSize is the edge of a Web-Mercator tile in pixels.
const tileSize = 256.0

// Viewport is a map camera position, center plus fractional zoom.
type Viewport struct {
	Center geo.Point `json:"center" yaml:"center"`
	Zoom   float64   `json:"zoom" yaml:"zoom"`
}

// Fit returns the camera showing the whole padded box inside the
// canvas. The zoom is solved per axis from the Mercator projection of
// the box corners, fractional rather than stepped, and the smaller of
// the two axes wins so neither overflows. The center is always the
// smart box's cached raw centroid, not the padded box's middle. An
// inverted box is swapped rather than rejected.
func Fit(box SmartBox, canvas geo.Size, s Settings) Viewport {
	s = s.withDefaults()
	if !canvas.Valid() {
		canvas = s.Fallback
	}

	b := box.Box.Canonical()

	availW := float64(canvas.Width) - 2*s.OuterPadPx
	availH := float64(canvas.Height) - 2*s.OuterPadPx
	if availW < 1 {
		availW = 1
	}
	if availH < 1 {
		availH = 1
	}

	x1, y1 := geo.Project(b.West, b.North)
	x2, y2 := geo.Project(b.East, b.South)

	zoom := math.Min(
		axisZoom(x2-x1, availW, s.ZoomMax),
		axisZoom(y2-y1, availH, s.ZoomMax),
	)

	return Viewport{
		Center: box.Center,
		Zoom:   clamp(zoom, s.ZoomMin, s.ZoomMax),
	}
}

// axisZoom solves span * tileSize * 2^z = available for z. Degenerate
// spans hit the zoom ceiling instead of infinity.
func axisZoom(span, available, max float64) float64 {
	px := span * tileSize
	if px <= 0 || math.IsNaN(px) {
		return max
	}
	return math.Log2(available / px)
}
