package export

import "image"

// MemorySink keeps a copy of the last image written to it
type MemorySink struct {
	Pix    []uint8
	Width  int
	Height int
	Writes int
}

// WriteImage implements renderer.Sink
func (s *MemorySink) WriteImage(pix []uint8, width, height int) error {
	if _, err := ToImage(pix, width, height); err != nil {
		return err
	}
	s.Pix = append(s.Pix[:0], pix...)
	s.Width = width
	s.Height = height
	s.Writes++
	return nil
}

// Image returns the stored raster, or nil when nothing was written
func (s *MemorySink) Image() *image.RGBA {
	if s.Writes == 0 {
		return nil
	}
	img, _ := ToImage(s.Pix, s.Width, s.Height)
	return img
}
