// Package config handles configuration loading and shared data
// structures.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/travelnurselog/contractmap/internal/contracts"
	"github.com/travelnurselog/contractmap/internal/geo"
	"github.com/travelnurselog/contractmap/internal/region"
	"github.com/travelnurselog/contractmap/internal/viewport"
)

// Config represents the root configuration file structure.
type Config struct {
	Source      Source             `yaml:"source,omitempty" json:"source,omitempty"`
	Viewport    viewport.Settings  `yaml:"viewport,omitempty" json:"viewport,omitempty"`
	Render      Render             `yaml:"render,omitempty" json:"render,omitempty"`
	Preferences region.Preferences `yaml:"preferences,omitempty" json:"preferences,omitempty"`
}

// Source tells the loader where contract rows come from. Inline rows
// take priority, then the remote endpoints, then a local file.
type Source struct {
	// defining contract rows directly in config.yaml
	ContractsInline []contracts.Contract `yaml:"contracts_inline,omitempty" json:"-"`

	RowsURL   string `yaml:"rows_url,omitempty" json:"rows_url,omitempty"`
	ExportURL string `yaml:"export_url,omitempty" json:"export_url,omitempty"`
	File      string `yaml:"file,omitempty" json:"file,omitempty"`

	// static request headers for the remote endpoints (apikey,
	// Authorization)
	Headers map[string]string `yaml:"headers,omitempty" json:"headers,omitempty"`
}

// Render configures the map snapshot output.
type Render struct {
	TileURL   string   `yaml:"tile_url,omitempty" json:"tile_url,omitempty"` // {z}/{x}/{y} template
	Canvas    geo.Size `yaml:"canvas,omitempty" json:"canvas,omitempty"`
	Format    string   `yaml:"format,omitempty" json:"format,omitempty"` // webp or png
	Workers   int      `yaml:"workers,omitempty" json:"workers,omitempty"`
	RateLimit float64  `yaml:"rate_limit,omitempty" json:"rate_limit,omitempty"` // tiles per second
	Quality   float32  `yaml:"quality,omitempty" json:"quality,omitempty"`
}

// Load reads and parses the YAML configuration file from the specified
// path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate rejects values the pipeline cannot work with. Zero values
// are fine everywhere; downstream packages substitute their defaults.
func (c *Config) Validate() error {
	switch c.Render.Format {
	case "", "webp", "png":
	default:
		return fmt.Errorf("render format %q not supported", c.Render.Format)
	}

	if c.Render.Quality < 0 || c.Render.Quality > 100 {
		return fmt.Errorf("render quality %v outside 0..100", c.Render.Quality)
	}
	if c.Render.Workers < 0 {
		return fmt.Errorf("render workers %d is negative", c.Render.Workers)
	}
	if c.Render.RateLimit < 0 {
		return fmt.Errorf("render rate limit %v is negative", c.Render.RateLimit)
	}

	for name := range c.Preferences {
		if _, ok := region.Lookup(name); !ok && name != region.Other {
			return fmt.Errorf("preference for unknown region %q", name)
		}
	}

	return nil
}

// Save writes the configuration back to disk, preserving explicit
// preference changes across sessions.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// SavePreferences swaps in a new preference snapshot and writes the
// configuration back. This is the only path that persists preference
// changes; everything else works on in-memory copies.
func (c *Config) SavePreferences(path string, prefs region.Preferences) error {
	c.Preferences = prefs.Clone()
	return c.Save(path)
}
