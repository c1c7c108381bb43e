package export

import (
	"fmt"
	"image"
	"image/color"
)

// ToImage wraps a packed RGB raster into an opaque RGBA image
func ToImage(pix []uint8, width, height int) (*image.RGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid image size %dx%d", width, height)
	}
	if len(pix) != width*height*3 {
		return nil, fmt.Errorf("expected %d bytes for a %dx%d RGB image, got %d", width*height*3, width, height, len(pix))
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			i := (y*width + x) * 3
			img.SetRGBA(x, y, color.RGBA{R: pix[i], G: pix[i+1], B: pix[i+2], A: 255})
		}
	}
	return img, nil
}

// toRGB packs img back into RGB rows, dropping alpha
func toRGB(img image.Image) ([]uint8, int, int) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	pix := make([]uint8, 0, w*h*3)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
			pix = append(pix, c.R, c.G, c.B)
		}
	}
	return pix, w, h
}
