package render

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/chai2010/webp"
)

// WriteImage encodes the snapshot to path. The configured render format
// wins; with none set the file extension decides, defaulting to WebP.
func (r *Renderer) WriteImage(path string, img image.Image) error {
	format := r.format
	if format == "" {
		if strings.EqualFold(filepath.Ext(path), ".png") {
			format = "png"
		} else {
			format = "webp"
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	switch format {
	case "png":
		return png.Encode(f, img)
	case "webp":
		return webp.Encode(f, img, &webp.Options{Lossless: false, Quality: r.quality})
	default:
		return fmt.Errorf("format %q not supported", format)
	}
}
