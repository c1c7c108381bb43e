package export

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/nfnt/resize"

	"github.com/Turtyo/rayTracing3D/pkg/renderer"
)

// ThumbnailSink forwards the image to Next, then writes a preview no larger
// than MaxSize on either side to Path
type ThumbnailSink struct {
	MaxSize uint
	Path    string
	Next    renderer.Sink // optional
}

// WriteImage implements renderer.Sink
func (s *ThumbnailSink) WriteImage(pix []uint8, width, height int) error {
	if s.Next != nil {
		if err := s.Next.WriteImage(pix, width, height); err != nil {
			return err
		}
	}
	img, err := ToImage(pix, width, height)
	if err != nil {
		return err
	}
	thumb := resize.Thumbnail(s.MaxSize, s.MaxSize, img, resize.Lanczos3)
	if err := writeFile(s.Path, thumb); err != nil {
		return fmt.Errorf("thumbnail: %w", err)
	}
	return nil
}

// ThumbnailPath derives the preview path for an output, e.g.
// out/render.png -> out/render_thumb.png
func ThumbnailPath(output string) string {
	ext := filepath.Ext(output)
	base := strings.TrimSuffix(output, ext)
	if ext == "" {
		ext = ".png"
	}
	return base + "_thumb" + ext
}
