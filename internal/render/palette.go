package render

import (
	"image/color"

	"github.com/travelnurselog/contractmap/internal/region"
)

// Marker fill colors per region. The catch-all doubles as the fallback
// for any name the palette does not know.
var palette = map[string]color.RGBA{
	region.CONUS:           {0x2E, 0x86, 0xC1, 0xFF},
	region.Alaska:          {0x8E, 0x44, 0xAD, 0xFF},
	region.Hawaii:          {0x16, 0xA0, 0x85, 0xFF},
	region.PuertoRico:      {0xD4, 0xAC, 0x0B, 0xFF},
	region.USVirginIslands: {0xCA, 0x6F, 0x1E, 0xFF},
	region.Guam:            {0xC0, 0x39, 0x2B, 0xFF},
	region.NorthernMariana: {0xA9, 0x32, 0x66, 0xFF},
	region.AmericanSamoa:   {0x1E, 0x84, 0x49, 0xFF},
	region.Canada:          {0x5D, 0x6D, 0x7E, 0xFF},
	region.Other:           {0x7F, 0x8C, 0x8D, 0xFF},
}

func paletteColor(name string) color.RGBA {
	if c, ok := palette[name]; ok {
		return c
	}
	return palette[region.Other]
}

func darken(c color.RGBA) color.RGBA {
	return color.RGBA{c.R / 2, c.G / 2, c.B / 2, c.A}
}
