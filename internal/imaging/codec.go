package imaging

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Format names as reported by image.Decode
const (
	FormatJPEG = "jpeg"
	FormatPNG  = "png"
	FormatGIF  = "gif"
	FormatBMP  = "bmp"
	FormatTIFF = "tiff"
	FormatWebP = "webp"
)

// JPEGQuality is used for every JPEG written
const JPEGQuality = 95

// Decode reads any supported image and returns it with its format name
func Decode(r io.Reader) (image.Image, string, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode image: %w", err)
	}
	return img, format, nil
}

// OutputFormat picks the encoder for name by its extension. Formats without
// an encoder fall back to PNG, and the returned name carries the matching
// extension.
func OutputFormat(name string) (string, string) {
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)

	switch strings.ToLower(ext) {
	case ".jpg", ".jpeg", ".jfif":
		return FormatJPEG, name
	case ".png":
		return FormatPNG, name
	case ".gif":
		return FormatGIF, name
	case ".bmp":
		return FormatBMP, name
	case ".tif", ".tiff":
		return FormatTIFF, name
	default:
		return FormatPNG, stem + ".png"
	}
}

// Encode writes img in the given format
func Encode(w io.Writer, img image.Image, format string) error {
	var err error
	switch format {
	case FormatJPEG:
		err = jpeg.Encode(w, flatten(img), &jpeg.Options{Quality: JPEGQuality})
	case FormatPNG:
		err = png.Encode(w, img)
	case FormatGIF:
		err = gif.Encode(w, img, nil)
	case FormatBMP:
		err = bmp.Encode(w, img)
	case FormatTIFF:
		err = tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", format, err)
	}
	return nil
}

// flatten composites img over white so transparent pixels do not turn black in JPEG
func flatten(img image.Image) image.Image {
	if opaque, ok := img.(interface{ Opaque() bool }); ok && opaque.Opaque() {
		return img
	}
	bounds := img.Bounds()
	flat := image.NewRGBA(bounds)
	draw.Draw(flat, bounds, image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(flat, bounds, img, bounds.Min, draw.Over)
	return flat
}
