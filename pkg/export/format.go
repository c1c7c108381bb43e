package export

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"github.com/disintegration/imaging"
	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// Format identifies an output image encoding
type Format int

const (
	PNG Format = iota
	WebP
	TGA
	TIFF
	BMP
	JPEG
	GIF
)

var formatNames = map[Format]string{
	PNG:  "png",
	WebP: "webp",
	TGA:  "tga",
	TIFF: "tiff",
	BMP:  "bmp",
	JPEG: "jpeg",
	GIF:  "gif",
}

var extensions = map[string]Format{
	".png":  PNG,
	".webp": WebP,
	".tga":  TGA,
	".tif":  TIFF,
	".tiff": TIFF,
	".bmp":  BMP,
	".jpg":  JPEG,
	".jpeg": JPEG,
	".gif":  GIF,
}

func (f Format) String() string {
	if name, ok := formatNames[f]; ok {
		return name
	}
	return fmt.Sprintf("format(%d)", int(f))
}

// ContentType returns the MIME type used when uploading the encoded image
func (f Format) ContentType() string {
	switch f {
	case WebP:
		return "image/webp"
	case TGA:
		return "image/x-tga"
	case TIFF:
		return "image/tiff"
	case BMP:
		return "image/bmp"
	case JPEG:
		return "image/jpeg"
	case GIF:
		return "image/gif"
	default:
		return "image/png"
	}
}

// FormatFromPath picks the encoding from the file extension (case-insensitive)
func FormatFromPath(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	f, ok := extensions[ext]
	if !ok {
		return 0, fmt.Errorf("unsupported image extension %q in %s", ext, path)
	}
	return f, nil
}

// Encode writes img to w in the given format
func Encode(w io.Writer, img image.Image, f Format) error {
	switch f {
	case PNG:
		return png.Encode(w, img)
	case WebP:
		return nativewebp.Encode(w, img, nil)
	case TGA:
		return tga.Encode(w, img)
	case TIFF:
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	case BMP:
		return bmp.Encode(w, img)
	case JPEG:
		return imaging.Encode(w, img, imaging.JPEG, imaging.JPEGQuality(95))
	case GIF:
		return imaging.Encode(w, img, imaging.GIF)
	default:
		return fmt.Errorf("unknown image format %v", f)
	}
}
