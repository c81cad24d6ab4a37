package main

import (
	"fmt"
	"os"

	"github.com/travelnurselog/contractmap/internal/export"
	"github.com/travelnurselog/contractmap/internal/region"

	"github.com/jessevdk/go-flags"
)

type Options struct {
	Output string `short:"o" long:"out" description:"Output file path. Writes to stdout if empty"`
	Minify bool   `short:"m" long:"minify" description:"Minify the GeoJSON output"`
}

// Dumps the compiled-in region table as a FeatureCollection of boxes so
// the bounds can be eyeballed on any GeoJSON viewer.
func main() {
	var opts Options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	path := opts.Output
	if path == "" {
		path = "-"
	}

	fc := export.RegionCollection()
	if err := export.WriteFile(path, fc, opts.Minify); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
		os.Exit(1)
	}

	if opts.Output != "" {
		fmt.Fprintf(os.Stderr, "Wrote %d regions to %s\n", len(region.Table), opts.Output)
	}
}
