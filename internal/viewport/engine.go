package viewport

import (
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/travelnurselog/contractmap/internal/contracts"
	"github.com/travelnurselog/contractmap/internal/geo"
	"github.com/travelnurselog/contractmap/internal/metrics"
	"github.com/travelnurselog/contractmap/internal/region"
)

// Trigger names the event that caused a recomputation.
type Trigger string

const (
	TriggerContracts   Trigger = "contract-change"
	TriggerPreferences Trigger = "preference-change"
	TriggerResize      Trigger = "resize"
)

// Placement pairs a visible contract with its classified region.
type Placement struct {
	Contract contracts.Contract `json:"contract" yaml:"contract"`
	Region   string             `json:"region" yaml:"region"`
}

// Result is the product of one recomputation.
type Result struct {
	Viewport Viewport    `json:"viewport" yaml:"viewport"`
	Box      SmartBox    `json:"box" yaml:"box"`
	Visible  []Placement `json:"visible" yaml:"visible"`
	Trigger  Trigger     `json:"trigger" yaml:"trigger"`
}

// Engine caches the latest contracts, preferences and canvas size and
// rebuilds the whole viewport from them on every trigger. Each input
// setter swaps in a fresh snapshot and recomputes; nothing is updated
// incrementally, so a newer result always fully supersedes an older
// one.
type Engine struct {
	mu       sync.Mutex
	settings Settings
	rows     []contracts.Contract
	prefs    region.Preferences
	canvas   geo.Size
	last     Result
	ran      bool
}

// NewEngine returns an engine with no contracts, nothing enabled and
// the fallback canvas.
func NewEngine(s Settings) *Engine {
	s = s.withDefaults()
	return &Engine{settings: s, canvas: s.Fallback}
}

// SetContracts replaces the cached contract list and recomputes.
func (e *Engine) SetContracts(list []contracts.Contract) Result {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.rows = make([]contracts.Contract, len(list))
	copy(e.rows, list)
	return e.recompute(TriggerContracts)
}

// SetPreferences replaces the cached preference snapshot and
// recomputes.
func (e *Engine) SetPreferences(p region.Preferences) Result {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.prefs = p.Clone()
	return e.recompute(TriggerPreferences)
}

// Resize replaces the cached canvas size and recomputes. Invalid sizes
// fall back to the configured default canvas.
func (e *Engine) Resize(size geo.Size) Result {
	e.mu.Lock()
	defer e.mu.Unlock()

	if size.Valid() {
		e.canvas = size
	} else {
		e.canvas = e.settings.Fallback
	}
	return e.recompute(TriggerResize)
}

// Recompute rebuilds the result from the current cached inputs without
// changing them.
func (e *Engine) Recompute(why Trigger) Result {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.recompute(why)
}

// Last returns the most recent result, if any recomputation ran.
func (e *Engine) Last() (Result, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.last, e.ran
}

// recompute runs the filter, box and fit pipeline. Callers hold e.mu.
func (e *Engine) recompute(why Trigger) Result {
	start := time.Now()

	visible := region.FilterContracts(e.rows, e.prefs)
	box := ComputeBox(visible, e.canvas, e.settings)
	vp := Fit(box, e.canvas, e.settings)

	placements := make([]Placement, len(visible))
	for i, c := range visible {
		placements[i] = Placement{
			Contract: c,
			Region:   region.Classify(float64(c.Latitude), float64(c.Longitude)),
		}
	}

	res := Result{Viewport: vp, Box: box, Visible: placements, Trigger: why}
	e.last = res
	e.ran = true

	metrics.Recomputes.WithLabelValues(string(why)).Inc()
	metrics.RecomputeDuration.Observe(time.Since(start).Seconds())
	metrics.VisibleContracts.Set(float64(len(visible)))

	log.Debug().
		Str("trigger", string(why)).
		Int("visible", len(visible)).
		Float64("zoom", vp.Zoom).
		Msg("Viewport recomputed")

	return res
}
