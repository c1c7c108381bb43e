package export

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
)

// FileSink writes the image to Path, picking the encoder from its extension
type FileSink struct {
	Path string
}

// NewFileSink checks the extension up front so a bad path fails before rendering
func NewFileSink(path string) (*FileSink, error) {
	if _, err := FormatFromPath(path); err != nil {
		return nil, err
	}
	return &FileSink{Path: path}, nil
}

// WriteImage implements renderer.Sink
func (s *FileSink) WriteImage(pix []uint8, width, height int) error {
	img, err := ToImage(pix, width, height)
	if err != nil {
		return err
	}
	return writeFile(s.Path, img)
}

func writeFile(path string, img image.Image) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("error creating output directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating file: %w", err)
	}

	if err := Encode(file, img, format); err != nil {
		file.Close()
		return fmt.Errorf("error encoding %v: %w", format, err)
	}
	return file.Close()
}
