package export

import (
	"fmt"
	"image"

	"golang.org/x/image/draw"

	"github.com/Turtyo/rayTracing3D/pkg/renderer"
)

// ResizeSink rescales the image to Width pixels, keeping the aspect ratio,
// before handing it to Next
type ResizeSink struct {
	Width int
	Next  renderer.Sink
}

// WriteImage implements renderer.Sink
func (s *ResizeSink) WriteImage(pix []uint8, width, height int) error {
	if s.Width <= 0 {
		return fmt.Errorf("resize width must be positive, got %d", s.Width)
	}
	if s.Next == nil {
		return fmt.Errorf("resize sink has no destination")
	}
	src, err := ToImage(pix, width, height)
	if err != nil {
		return err
	}

	h := height * s.Width / width
	if h < 1 {
		h = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, s.Width, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)

	out, w, h := toRGB(dst)
	return s.Next.WriteImage(out, w, h)
}
