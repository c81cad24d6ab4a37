package viewport

import (
	"math"
	"testing"

	"github.com/travelnurselog/contractmap/internal/contracts"
	"github.com/travelnurselog/contractmap/internal/geo"
)

// pixelSpans projects the box at the given zoom and returns its width
// and height in pixels.
func pixelSpans(b geo.Bounds, zoom float64) (w, h float64) {
	x1, y1 := geo.Project(b.West, b.North)
	x2, y2 := geo.Project(b.East, b.South)
	scale := tileSize * math.Pow(2, zoom)
	return (x2 - x1) * scale, (y2 - y1) * scale
}

func boxFor(b geo.Bounds) SmartBox {
	return SmartBox{Box: b, Raw: b, Center: b.Center(), Count: 2}
}

func TestFitConcreteBox(t *testing.T) {
	b := geo.Bounds{North: 40, South: 30, East: -90, West: -100}
	canvas := geo.Size{Width: 1000, Height: 800}

	got := Fit(boxFor(b), canvas, Settings{})

	availW := 1000.0 - 2*DefaultOuterPadPx
	availH := 800.0 - 2*DefaultOuterPadPx

	w, h := pixelSpans(b, got.Zoom)
	if w > availW+1e-6 || h > availH+1e-6 {
		t.Errorf("box at zoom %v projects to %vx%v px, exceeds %vx%v", got.Zoom, w, h, availW, availH)
	}

	// The fit is maximal: a slightly larger zoom must overflow an axis.
	w, h = pixelSpans(b, got.Zoom+0.02)
	if w <= availW && h <= availH {
		t.Errorf("zoom %v is not maximal, %v still fits", got.Zoom, got.Zoom+0.02)
	}

	if !b.Contains(got.Center.Lat, got.Center.Lng) {
		t.Errorf("center %+v outside box %+v", got.Center, b)
	}
}

func TestFitPicksLimitingAxis(t *testing.T) {
	// Tall thin box on a wide canvas: the vertical axis must govern.
	b := geo.Bounds{North: 45, South: 25, East: -95, West: -100}
	canvas := geo.Size{Width: 1600, Height: 400}

	got := Fit(boxFor(b), canvas, Settings{})

	_, h := pixelSpans(b, got.Zoom)
	availH := 400.0 - 2*DefaultOuterPadPx
	if !near(h, availH, 1e-6) {
		t.Errorf("limiting axis height = %v px, want %v", h, availH)
	}
}

func TestFitCenterIsCachedCentroid(t *testing.T) {
	// The smart box carries a centroid computed from the raw extent;
	// the fitter must hand it through untouched.
	box := SmartBox{
		Box:    geo.Bounds{North: 41, South: 29, East: -89, West: -101},
		Raw:    geo.Bounds{North: 40, South: 30, East: -90, West: -100},
		Center: geo.Point{Lat: 35, Lng: -95},
	}

	got := Fit(box, geo.Size{Width: 1000, Height: 800}, Settings{})
	if got.Center != box.Center {
		t.Errorf("center = %+v, want cached %+v", got.Center, box.Center)
	}
	if got.Center == box.Box.Center() {
		t.Errorf("center must come from the raw centroid, not the padded box")
	}
}

func TestFitInvertedBoxSwapped(t *testing.T) {
	proper := geo.Bounds{North: 40, South: 30, East: -90, West: -100}
	inverted := geo.Bounds{North: 30, South: 40, East: -100, West: -90}
	canvas := geo.Size{Width: 1000, Height: 800}

	a := Fit(boxFor(proper), canvas, Settings{})
	b := Fit(SmartBox{Box: inverted, Raw: inverted, Center: proper.Center()}, canvas, Settings{})

	if !near(a.Zoom, b.Zoom, 1e-9) {
		t.Errorf("inverted box zoom = %v, canonical = %v", b.Zoom, a.Zoom)
	}
}

func TestFitClampsToMaxZoom(t *testing.T) {
	b := geo.Bounds{North: 47.66, South: 47.66, East: -122.29, West: -122.29}
	got := Fit(boxFor(b), geo.Size{Width: 1200, Height: 700}, Settings{})

	if got.Zoom != DefaultZoomMax {
		t.Errorf("degenerate box zoom = %v, want max %v", got.Zoom, DefaultZoomMax)
	}
}

func TestFitClampsToMinZoom(t *testing.T) {
	world := geo.Bounds{North: geo.MaxLat, South: -geo.MaxLat, East: 180, West: -180}
	got := Fit(boxFor(world), geo.Size{Width: 100, Height: 100}, Settings{})

	if got.Zoom != DefaultZoomMin {
		t.Errorf("world box on tiny canvas zoom = %v, want min %v", got.Zoom, DefaultZoomMin)
	}
}

func TestFitSingleContractCityScale(t *testing.T) {
	box := ComputeBox([]contracts.Contract{seattle}, geo.Size{Width: 1200, Height: 700}, Settings{})
	got := Fit(box, geo.Size{Width: 1200, Height: 700}, Settings{})

	if got.Zoom < 9 || got.Zoom > 13 {
		t.Errorf("single-contract zoom = %v, want city scale", got.Zoom)
	}
	if !near(got.Center.Lat, 47.66, 1e-9) || !near(got.Center.Lng, -122.29, 1e-9) {
		t.Errorf("center = %+v", got.Center)
	}
}

func TestFitInvalidCanvasUsesFallback(t *testing.T) {
	b := geo.Bounds{North: 40, South: 30, East: -90, West: -100}

	bad := Fit(boxFor(b), geo.Size{}, Settings{})
	fallback := Fit(boxFor(b), DefaultCanvas, Settings{})

	if !near(bad.Zoom, fallback.Zoom, 1e-9) {
		t.Errorf("invalid canvas zoom = %v, want fallback %v", bad.Zoom, fallback.Zoom)
	}
}

func TestFitZoomRangeOverride(t *testing.T) {
	b := geo.Bounds{North: 47.67, South: 47.65, East: -122.28, West: -122.3}
	got := Fit(boxFor(b), geo.Size{Width: 1200, Height: 700}, Settings{ZoomMax: 10})

	if got.Zoom > 10 {
		t.Errorf("zoom = %v, want clamped to overridden max 10", got.Zoom)
	}
}

func TestFitNormalizedAntimeridianBox(t *testing.T) {
	// Guam through Honolulu in one normalized box: fitting must treat it
	// as a contiguous ~57 degree span, not a wrap around the globe.
	b := geo.Bounds{North: 21.31, South: 13.51, East: -157.86, West: -215.16}
	got := Fit(boxFor(b), geo.Size{Width: 1200, Height: 700}, Settings{})

	if got.Zoom < 3 || got.Zoom > 6 {
		t.Errorf("pacific box zoom = %v, want a regional fit", got.Zoom)
	}
}
