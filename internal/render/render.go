// Package render composites static map snapshots of the current
// viewport: base tiles, the smart-box outline and one region-colored
// marker per visible contract.
package render

import (
	"context"
	"image"
	"image/color"
	"image/draw"
	"math"
	"net/http"
	"time"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/time/rate"

	"github.com/travelnurselog/contractmap/internal/config"
	"github.com/travelnurselog/contractmap/internal/geo"
	"github.com/travelnurselog/contractmap/internal/metrics"
	"github.com/travelnurselog/contractmap/internal/viewport"
)

const (
	// tilePx is the edge of a source tile in pixels.
	tilePx = 256

	defaultWorkers = 4
	defaultRate    = 4.0
	maxTileZoom    = 19

	markerRadius = 6
	boxStrokePx  = 2
)

var (
	background = color.RGBA{0xE8, 0xE4, 0xDC, 0xFF}
	boxStroke  = color.RGBA{0x34, 0x49, 0x5E, 0xB4}
)

// Renderer downloads base tiles politely and composites snapshots.
type Renderer struct {
	client  *http.Client
	limiter *rate.Limiter
	tileURL string
	format  string
	workers int
	quality float32
}

// New builds a renderer from the render configuration. A zero worker
// count, rate limit or quality falls back to package defaults; an empty
// tile URL renders markers on a plain background.
func New(client *http.Client, cfg config.Render) *Renderer {
	workers := cfg.Workers
	if workers <= 0 {
		workers = defaultWorkers
	}

	perSec := cfg.RateLimit
	if perSec <= 0 {
		perSec = defaultRate
	}

	quality := cfg.Quality
	if quality <= 0 {
		quality = 85
	}

	return &Renderer{
		client:  client,
		limiter: rate.NewLimiter(rate.Limit(perSec), workers),
		tileURL: cfg.TileURL,
		format:  cfg.Format,
		workers: workers,
		quality: quality,
	}
}

// Snapshot renders the recomputation result onto a canvas-sized image.
// The camera comes straight from the result: the canvas center sits on
// the viewport center and the scale follows the fractional zoom, with
// integer-zoom tiles resampled to match.
func (r *Renderer) Snapshot(ctx context.Context, res viewport.Result, canvas geo.Size) (*image.RGBA, error) {
	if !canvas.Valid() {
		canvas = viewport.DefaultCanvas
	}

	img := image.NewRGBA(image.Rect(0, 0, canvas.Width, canvas.Height))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: background}, image.Point{}, draw.Src)

	// World units to pixels at the fractional zoom.
	scale := tilePx * math.Pow(2, res.Viewport.Zoom)
	cx, cy := geo.Project(res.Viewport.Center.Lng, res.Viewport.Center.Lat)
	ox := cx - float64(canvas.Width)/2/scale
	oy := cy - float64(canvas.Height)/2/scale

	if r.tileURL != "" {
		if err := r.drawTiles(ctx, img, ox, oy, scale, res.Viewport.Zoom); err != nil {
			return nil, err
		}
	}

	r.strokeBox(img, res.Box.Box, ox, oy, scale)

	today := time.Now()
	for _, p := range res.Visible {
		lng := geo.NormalizeLng(float64(p.Contract.Longitude))
		x, y := geo.Project(lng, float64(p.Contract.Latitude))
		px := int(math.Round((x - ox) * scale))
		py := int(math.Round((y - oy) * scale))
		drawMarker(img, px, py, paletteColor(p.Region), !p.Contract.Ended(today))
	}

	metrics.SnapshotsRendered.Inc()
	return img, nil
}

// drawTiles covers the canvas with the nearest integer-zoom tile level
// and scales each tile into its fractional-zoom position.
func (r *Renderer) drawTiles(ctx context.Context, dst *image.RGBA, ox, oy, scale, zoom float64) error {
	zt := int(math.Ceil(zoom))
	if zt < 0 {
		zt = 0
	}
	if zt > maxTileZoom {
		zt = maxTileZoom
	}
	n := 1 << zt

	w := float64(dst.Bounds().Dx())
	h := float64(dst.Bounds().Dy())

	tx0 := int(math.Floor(ox * float64(n)))
	tx1 := int(math.Floor((ox + w/scale) * float64(n)))
	ty0 := int(math.Floor(oy * float64(n)))
	ty1 := int(math.Floor((oy + h/scale) * float64(n)))
	if ty0 < 0 {
		ty0 = 0
	}
	if ty1 > n-1 {
		ty1 = n - 1
	}

	jobs := make([]tileJob, 0, (tx1-tx0+1)*(ty1-ty0+1))
	for ty := ty0; ty <= ty1; ty++ {
		for tx := tx0; tx <= tx1; tx++ {
			jobs = append(jobs, tileJob{Z: zt, X: tx, Y: ty})
		}
	}
	if len(jobs) == 0 {
		return nil
	}

	tiles := r.fetchTiles(ctx, jobs)
	if err := ctx.Err(); err != nil {
		return err
	}

	for j, tile := range tiles {
		// Rounding the shared edges keeps adjacent tiles seamless.
		x0 := int(math.Round((float64(j.X)/float64(n) - ox) * scale))
		x1 := int(math.Round((float64(j.X+1)/float64(n) - ox) * scale))
		y0 := int(math.Round((float64(j.Y)/float64(n) - oy) * scale))
		y1 := int(math.Round((float64(j.Y+1)/float64(n) - oy) * scale))

		rect := image.Rect(x0, y0, x1, y1)
		xdraw.CatmullRom.Scale(dst, rect, tile, tile.Bounds(), draw.Over, nil)
	}

	return nil
}

// strokeBox outlines the padded smart box.
func (r *Renderer) strokeBox(img *image.RGBA, b geo.Bounds, ox, oy, scale float64) {
	b = b.Canonical()
	wx0, wy0 := geo.Project(b.West, b.North)
	wx1, wy1 := geo.Project(b.East, b.South)

	x0 := int(math.Round((wx0 - ox) * scale))
	y0 := int(math.Round((wy0 - oy) * scale))
	x1 := int(math.Round((wx1 - ox) * scale))
	y1 := int(math.Round((wy1 - oy) * scale))

	stroke := &image.Uniform{C: boxStroke}
	draw.Draw(img, image.Rect(x0, y0, x1, y0+boxStrokePx), stroke, image.Point{}, draw.Over)
	draw.Draw(img, image.Rect(x0, y1-boxStrokePx, x1, y1), stroke, image.Point{}, draw.Over)
	draw.Draw(img, image.Rect(x0, y0, x0+boxStrokePx, y1), stroke, image.Point{}, draw.Over)
	draw.Draw(img, image.Rect(x1-boxStrokePx, y0, x1, y1), stroke, image.Point{}, draw.Over)
}

// drawMarker paints a disc with a darker rim, filled for active
// contracts and hollow for ended ones. Out-of-canvas pixels are dropped
// by the bounds-checked Set.
func drawMarker(img *image.RGBA, cx, cy int, fill color.RGBA, active bool) {
	rim := darken(fill)
	outer := (markerRadius + 1) * (markerRadius + 1)
	inner := markerRadius * markerRadius

	for dy := -markerRadius - 1; dy <= markerRadius+1; dy++ {
		for dx := -markerRadius - 1; dx <= markerRadius+1; dx++ {
			d2 := dx*dx + dy*dy
			switch {
			case d2 <= inner:
				if active {
					img.Set(cx+dx, cy+dy, fill)
				}
			case d2 <= outer:
				img.Set(cx+dx, cy+dy, rim)
			}
		}
	}
}
