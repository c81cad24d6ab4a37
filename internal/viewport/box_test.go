package viewport

import (
	"math"
	"testing"

	"github.com/travelnurselog/contractmap/internal/contracts"
	"github.com/travelnurselog/contractmap/internal/geo"
)

var (
	seattle  = contracts.Contract{ID: 1, Facility: "Harborview", Latitude: 47.66, Longitude: -122.29}
	phoenix  = contracts.Contract{ID: 2, Facility: "Banner Desert", Latitude: 33.62, Longitude: -111.96}
	honolulu = contracts.Contract{ID: 3, Facility: "Queens", Latitude: 21.31, Longitude: -157.86}
	guam     = contracts.Contract{ID: 4, Facility: "Guam Memorial", Latitude: 13.51, Longitude: 144.84}
	noFix    = contracts.Contract{ID: 5, Facility: "No Fix", Latitude: contracts.Coord(math.NaN()), Longitude: contracts.Coord(math.NaN())}
)

func near(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestComputeBoxEmpty(t *testing.T) {
	canvases := []geo.Size{
		{Width: 1200, Height: 700},
		{Width: 320, Height: 240},
		{},
	}

	for _, canvas := range canvases {
		got := ComputeBox(nil, canvas, Settings{})
		if got.Box != DefaultBox || got.Raw != DefaultBox {
			t.Errorf("canvas %+v: empty set box = %+v, want default", canvas, got.Box)
		}
		if got.Center != DefaultBox.Center() {
			t.Errorf("canvas %+v: center = %+v", canvas, got.Center)
		}
		if got.Count != 0 {
			t.Errorf("canvas %+v: count = %d", canvas, got.Count)
		}
	}
}

func TestComputeBoxOnlyInvalidRows(t *testing.T) {
	got := ComputeBox([]contracts.Contract{noFix}, geo.Size{Width: 800, Height: 600}, Settings{})
	if got.Box != DefaultBox {
		t.Errorf("all-invalid set box = %+v, want default", got.Box)
	}
}

func TestComputeBoxSingle(t *testing.T) {
	got := ComputeBox([]contracts.Contract{seattle}, geo.Size{Width: 1200, Height: 700}, Settings{})

	if got.Count != 1 {
		t.Fatalf("count = %d", got.Count)
	}
	if !near(got.Center.Lat, 47.66, 1e-9) || !near(got.Center.Lng, -122.29, 1e-9) {
		t.Errorf("center = %+v", got.Center)
	}
	if got.Box.SpanLat() <= 0 || got.Box.SpanLng() <= 0 {
		t.Errorf("single-row box has no area: %+v", got.Box)
	}
	if !near(got.Box.North, 47.66+DefaultSingleSpanDeg, 1e-9) ||
		!near(got.Box.West, -122.29-DefaultSingleSpanDeg, 1e-9) {
		t.Errorf("box = %+v", got.Box)
	}
	if got.Box != got.Raw {
		t.Errorf("synthetic box should not be padded: box %+v raw %+v", got.Box, got.Raw)
	}
}

func TestComputeBoxPair(t *testing.T) {
	canvas := geo.Size{Width: 1200, Height: 700}
	got := ComputeBox([]contracts.Contract{seattle, phoenix}, canvas, Settings{})

	wantRaw := geo.Bounds{North: 47.66, South: 33.62, East: -111.96, West: -122.29}
	if got.Raw != wantRaw {
		t.Fatalf("raw = %+v, want %+v", got.Raw, wantRaw)
	}

	padLat := DefaultBufferPx * wantRaw.SpanLat() / 700.0
	padLng := DefaultBufferPx * wantRaw.SpanLng() / 1200.0
	if !near(got.Box.North, wantRaw.North+padLat, 1e-9) ||
		!near(got.Box.South, wantRaw.South-padLat, 1e-9) ||
		!near(got.Box.East, wantRaw.East+padLng, 1e-9) ||
		!near(got.Box.West, wantRaw.West-padLng, 1e-9) {
		t.Errorf("box = %+v, want raw %+v padded by (%v, %v)", got.Box, wantRaw, padLat, padLng)
	}

	if got.Center != wantRaw.Center() {
		t.Errorf("center = %+v, want raw centroid %+v", got.Center, wantRaw.Center())
	}
}

func TestComputeBoxContainsAllRows(t *testing.T) {
	rows := []contracts.Contract{seattle, phoenix, honolulu, guam}
	got := ComputeBox(rows, geo.Size{Width: 1000, Height: 800}, Settings{})

	for _, c := range rows {
		lat := float64(c.Latitude)
		lng := geo.NormalizeLng(float64(c.Longitude))
		if !got.Raw.Contains(lat, lng) {
			t.Errorf("row %d (%v, %v) outside raw box %+v", c.ID, lat, lng, got.Raw)
		}
		if !got.Box.Contains(lat, lng) {
			t.Errorf("row %d (%v, %v) outside padded box %+v", c.ID, lat, lng, got.Box)
		}
	}
}

func TestComputeBoxNormalizesAcrossAntimeridian(t *testing.T) {
	got := ComputeBox([]contracts.Contract{guam, honolulu}, geo.Size{Width: 1200, Height: 700}, Settings{})

	if !near(got.Raw.West, -215.16, 1e-9) {
		t.Errorf("west = %v, want normalized guam longitude", got.Raw.West)
	}
	if !near(got.Raw.East, -157.86, 1e-9) {
		t.Errorf("east = %v", got.Raw.East)
	}
	if got.Raw.East > 0 || got.Raw.West > 0 {
		t.Errorf("box mixes conventions: %+v", got.Raw)
	}
	if span := got.Raw.SpanLng(); span > 90 {
		t.Errorf("box wrapped the long way around: span %v", span)
	}
}

func TestComputeBoxPaddingClampsLow(t *testing.T) {
	// Two rows a block apart: proportional padding would be microscopic.
	a := contracts.Contract{ID: 10, Latitude: 47.6600, Longitude: -122.2900}
	b := contracts.Contract{ID: 11, Latitude: 47.6610, Longitude: -122.2910}

	got := ComputeBox([]contracts.Contract{a, b}, geo.Size{Width: 1200, Height: 700}, Settings{})

	if !near(got.Box.North-got.Raw.North, DefaultPadMinDeg, 1e-9) {
		t.Errorf("lat padding = %v, want clamp to %v", got.Box.North-got.Raw.North, DefaultPadMinDeg)
	}
	if !near(got.Raw.West-got.Box.West, DefaultPadMinDeg, 1e-9) {
		t.Errorf("lng padding = %v, want clamp to %v", got.Raw.West-got.Box.West, DefaultPadMinDeg)
	}
}

func TestComputeBoxPaddingClampsHigh(t *testing.T) {
	// Continental spread on a small panel: proportional padding would be
	// many degrees.
	got := ComputeBox([]contracts.Contract{seattle, phoenix, honolulu}, geo.Size{Width: 320, Height: 240}, Settings{})

	if !near(got.Box.North-got.Raw.North, DefaultPadMaxDeg, 1e-9) {
		t.Errorf("lat padding = %v, want clamp to %v", got.Box.North-got.Raw.North, DefaultPadMaxDeg)
	}
	if !near(got.Box.East-got.Raw.East, DefaultPadMaxDeg, 1e-9) {
		t.Errorf("lng padding = %v, want clamp to %v", got.Box.East-got.Raw.East, DefaultPadMaxDeg)
	}
}

func TestComputeBoxSkipsInvalidRows(t *testing.T) {
	with := ComputeBox([]contracts.Contract{seattle, noFix, phoenix}, geo.Size{Width: 1200, Height: 700}, Settings{})
	without := ComputeBox([]contracts.Contract{seattle, phoenix}, geo.Size{Width: 1200, Height: 700}, Settings{})

	if with.Box != without.Box || with.Count != without.Count {
		t.Errorf("invalid row changed the box: %+v vs %+v", with, without)
	}
}

func TestComputeBoxDuplicatePoints(t *testing.T) {
	rows := []contracts.Contract{seattle, seattle}
	got := ComputeBox(rows, geo.Size{Width: 1200, Height: 700}, Settings{})

	if got.Raw.SpanLat() != 0 || got.Raw.SpanLng() != 0 {
		t.Fatalf("raw box of identical points should be degenerate: %+v", got.Raw)
	}
	if got.Box.SpanLat() <= 0 || got.Box.SpanLng() <= 0 {
		t.Errorf("padding did not give the degenerate box area: %+v", got.Box)
	}
}

func TestComputeBoxInvalidCanvasUsesFallback(t *testing.T) {
	bad := ComputeBox([]contracts.Contract{seattle, phoenix}, geo.Size{}, Settings{})
	fallback := ComputeBox([]contracts.Contract{seattle, phoenix}, DefaultCanvas, Settings{})

	if bad.Box != fallback.Box {
		t.Errorf("invalid canvas box = %+v, want fallback result %+v", bad.Box, fallback.Box)
	}
}

func TestComputeBoxSettingsOverride(t *testing.T) {
	s := Settings{SingleSpanDeg: 1.5}
	got := ComputeBox([]contracts.Contract{phoenix}, geo.Size{Width: 800, Height: 600}, s)

	if !near(got.Box.SpanLat(), 3.0, 1e-9) {
		t.Errorf("overridden single span = %v, want 3.0", got.Box.SpanLat())
	}
}
