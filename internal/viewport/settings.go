// Package viewport derives the map bounding box and zoom shown for the
// currently visible contracts.
package viewport

import "github.com/travelnurselog/contractmap/internal/geo"

// Tunable defaults. Every value can be overridden through Settings.
const (
	// DefaultBufferPx is the breathing room around the outermost
	// markers, converted into degrees at the current scale.
	DefaultBufferPx = 50.0

	// DefaultPadMinDeg and DefaultPadMaxDeg clamp the computed padding
	// so it neither vanishes at street scale nor explodes at world
	// scale.
	DefaultPadMinDeg = 0.1
	DefaultPadMaxDeg = 2.0

	// DefaultOuterPadPx is the UI chrome margin per canvas side kept
	// clear when fitting.
	DefaultOuterPadPx = 20.0

	DefaultZoomMin = 2.0
	DefaultZoomMax = 18.0

	// DefaultSingleSpanDeg is the half-span of the synthetic box drawn
	// around a lone contract, landing the fitter at city scale.
	DefaultSingleSpanDeg = 0.25
)

// DefaultCanvas stands in for the panel size before the first resize
// signal arrives.
var DefaultCanvas = geo.Size{Width: 1024, Height: 768}

// DefaultBox is the continental-US reference extent shown when no
// contract is visible.
var DefaultBox = geo.Bounds{
	North: 49.384358,
	South: 24.396308,
	East:  -66.93457,
	West:  -125.00165,
}

// Settings carries the tuning constants for box padding and zoom
// fitting. The zero value means "use the defaults"; zero fields are
// filled in before use so partial overrides stay convenient.
type Settings struct {
	BufferPx      float64  `json:"buffer_px" yaml:"buffer_px"`
	PadMinDeg     float64  `json:"pad_min_deg" yaml:"pad_min_deg"`
	PadMaxDeg     float64  `json:"pad_max_deg" yaml:"pad_max_deg"`
	OuterPadPx    float64  `json:"outer_pad_px" yaml:"outer_pad_px"`
	ZoomMin       float64  `json:"zoom_min" yaml:"zoom_min"`
	ZoomMax       float64  `json:"zoom_max" yaml:"zoom_max"`
	SingleSpanDeg float64  `json:"single_span_deg" yaml:"single_span_deg"`
	Fallback      geo.Size `json:"fallback_canvas" yaml:"fallback_canvas"`
}

func (s Settings) withDefaults() Settings {
	if s.BufferPx <= 0 {
		s.BufferPx = DefaultBufferPx
	}
	if s.PadMinDeg <= 0 {
		s.PadMinDeg = DefaultPadMinDeg
	}
	if s.PadMaxDeg <= 0 {
		s.PadMaxDeg = DefaultPadMaxDeg
	}
	if s.OuterPadPx < 0 {
		s.OuterPadPx = 0
	} else if s.OuterPadPx == 0 {
		s.OuterPadPx = DefaultOuterPadPx
	}
	if s.ZoomMin <= 0 {
		s.ZoomMin = DefaultZoomMin
	}
	if s.ZoomMax <= 0 {
		s.ZoomMax = DefaultZoomMax
	}
	if s.ZoomMax < s.ZoomMin {
		s.ZoomMin, s.ZoomMax = s.ZoomMax, s.ZoomMin
	}
	if s.SingleSpanDeg <= 0 {
		s.SingleSpanDeg = DefaultSingleSpanDeg
	}
	if !s.Fallback.Valid() {
		s.Fallback = DefaultCanvas
	}
	return s
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
