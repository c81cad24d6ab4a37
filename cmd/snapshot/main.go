package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/travelnurselog/contractmap/internal/config"
	"github.com/travelnurselog/contractmap/internal/contracts"
	"github.com/travelnurselog/contractmap/internal/export"
	"github.com/travelnurselog/contractmap/internal/geo"
	"github.com/travelnurselog/contractmap/internal/logger"
	"github.com/travelnurselog/contractmap/internal/region"
	"github.com/travelnurselog/contractmap/internal/render"
	"github.com/travelnurselog/contractmap/internal/viewport"

	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	ConfigFile string `short:"c" long:"config"  env:"CONFIG_FILE" description:"Path to configuration file" default:"config.yaml"`
	RowsURL    string `short:"u" long:"url"     env:"ROWS_URL"    description:"Contract rows endpoint, overrides the config source"`
	File       string `short:"f" long:"file"    env:"ROWS_FILE"   description:"Local contract JSON file, overrides the config source"`

	Width  int `short:"W" long:"width"  env:"CANVAS_WIDTH"  description:"Canvas width in pixels, overrides the config canvas"`
	Height int `short:"H" long:"height" env:"CANVAS_HEIGHT" description:"Canvas height in pixels, overrides the config canvas"`

	GeoJSON string `short:"g" long:"geojson" env:"OUT_GEOJSON" description:"Write the visible contracts as GeoJSON to this path (- for stdout)"`
	Image   string `short:"i" long:"image"   env:"OUT_IMAGE"   description:"Render the map snapshot to this path (webp or png)"`
	Minify  bool   `short:"m" long:"minify"  description:"Minify GeoJSON output"`

	AllRegions bool `short:"a" long:"all-regions" description:"Ignore stored preferences and show every region"`
}

func main() {
	// Local .env feeds the env-tagged options below.
	_ = godotenv.Load()

	var opts Options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	opts.Logger.Setup()

	cfg, err := config.Load(opts.ConfigFile)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	client := &http.Client{
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 100,
		},
		Timeout: 15 * time.Second,
	}

	rows, source, err := loadContracts(client, cfg, opts)
	if err != nil {
		log.Fatal().Err(err).Str("source", source).Msg("Failed to load contracts")
	}

	prefs := cfg.Preferences
	if opts.AllRegions || len(prefs) == 0 {
		prefs = region.AllEnabled()
	}

	canvas := cfg.Render.Canvas
	if opts.Width > 0 && opts.Height > 0 {
		canvas = geo.Size{Width: opts.Width, Height: opts.Height}
	}

	engine := viewport.NewEngine(cfg.Viewport)
	engine.SetPreferences(prefs)
	engine.Resize(canvas)
	res := engine.SetContracts(rows)

	log.Info().
		Str("source", source).
		Int("contracts", len(rows)).
		Int("visible", len(res.Visible)).
		Float64("lat", res.Viewport.Center.Lat).
		Float64("lng", res.Viewport.Center.Lng).
		Float64("zoom", res.Viewport.Zoom).
		Msg("Viewport computed")

	if opts.GeoJSON != "" {
		fc := export.FeatureCollection(res)
		if err := export.WriteFile(opts.GeoJSON, fc, opts.Minify); err != nil {
			log.Fatal().Err(err).Str("path", opts.GeoJSON).Msg("Failed to write GeoJSON")
		}
		log.Info().Str("path", opts.GeoJSON).Msg("GeoJSON written")
	}

	if opts.Image != "" {
		r := render.New(client, cfg.Render)
		img, err := r.Snapshot(context.Background(), res, canvas)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to render snapshot")
		}
		if err := r.WriteImage(opts.Image, img); err != nil {
			log.Fatal().Err(err).Str("path", opts.Image).Msg("Failed to write snapshot")
		}
		log.Info().Str("path", opts.Image).Msg("Snapshot written")
	}

	log.Info().Msg("Snapshot finished successfully")
}

// loadContracts resolves the contract source in priority order: CLI
// overrides first, then inline config rows, then the remote endpoints,
// then a local file.
func loadContracts(client *http.Client, cfg *config.Config, opts Options) ([]contracts.Contract, string, error) {
	switch {
	case opts.RowsURL != "":
		rows, err := contracts.FetchRows(client, opts.RowsURL, cfg.Source.Headers)
		return rows, "rows", err
	case opts.File != "":
		rows, err := contracts.LoadFile(opts.File)
		return rows, "file", err
	case len(cfg.Source.ContractsInline) > 0:
		return cfg.Source.ContractsInline, "inline", nil
	case cfg.Source.RowsURL != "":
		rows, err := contracts.FetchRows(client, cfg.Source.RowsURL, cfg.Source.Headers)
		return rows, "rows", err
	case cfg.Source.ExportURL != "":
		rows, err := contracts.FetchExport(client, cfg.Source.ExportURL, cfg.Source.Headers)
		return rows, "export", err
	case cfg.Source.File != "":
		rows, err := contracts.LoadFile(cfg.Source.File)
		return rows, "file", err
	}

	log.Warn().Msg("No contract source configured, rendering the default extent")
	return nil, "none", nil
}
