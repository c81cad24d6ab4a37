package render

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	_ "golang.org/x/image/webp"

	"github.com/travelnurselog/contractmap/internal/metrics"
)

// tileJob identifies one tile of the base layer. X may run outside
// [0, 2^Z) when the viewport spans normalized antimeridian longitudes;
// it is wrapped when the URL is built but kept raw for placement.
type tileJob struct {
	Z, X, Y int
}

type tileResult struct {
	job tileJob
	img image.Image
}

// fetchTiles downloads a batch through the worker pool. Failed tiles
// are simply absent from the returned map; the background shows
// through.
func (r *Renderer) fetchTiles(ctx context.Context, tiles []tileJob) map[tileJob]image.Image {
	jobs := make(chan tileJob, len(tiles))
	results := make(chan tileResult, len(tiles))

	go func() {
		for _, t := range tiles {
			jobs <- t
		}
		close(jobs)
	}()

	var wg sync.WaitGroup
	for i := 0; i < r.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				img, err := r.fetchTile(ctx, j)
				if err != nil {
					log.Trace().
						Err(err).
						Str("url", buildTileURL(r.tileURL, j)).
						Msg("Failed to fetch tile")
					metrics.TilesFetched.WithLabelValues("error").Inc()
					results <- tileResult{job: j}
					continue
				}
				metrics.TilesFetched.WithLabelValues("ok").Inc()
				results <- tileResult{job: j, img: img}
			}
		}()
	}
	wg.Wait()
	close(results)

	out := make(map[tileJob]image.Image, len(tiles))
	for res := range results {
		if res.img != nil {
			out[res.job] = res.img
		}
	}

	return out
}

func (r *Renderer) fetchTile(ctx context.Context, j tileJob) (image.Image, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, buildTileURL(r.tileURL, j), nil)
	if err != nil {
		return nil, err
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	img, _, err := image.Decode(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	// Filter out empty/1px tiles often returned by map servers for OOB areas
	if img.Bounds().Dx() <= 1 {
		return nil, fmt.Errorf("empty tile")
	}

	metrics.TileFetchDuration.Observe(time.Since(start).Seconds())
	return img, nil
}

// buildTileURL expands a {z}/{x}/{y} template, wrapping the x index
// into the tile grid and supporting {tms_y} for flipped-y servers.
func buildTileURL(tpl string, c tileJob) string {
	n := 1 << c.Z
	x := ((c.X % n) + n) % n

	s := strings.ReplaceAll(tpl, "{z}", strconv.Itoa(c.Z))
	s = strings.ReplaceAll(s, "{x}", strconv.Itoa(x))
	s = strings.ReplaceAll(s, "{y}", strconv.Itoa(c.Y))

	if strings.Contains(s, "{tms_y}") {
		s = strings.ReplaceAll(s, "{tms_y}", strconv.Itoa(n-1-c.Y))
	}

	return s
}
