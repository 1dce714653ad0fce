package imaging

import (
	"fmt"
	"image"
	"os"
	"path/filepath"

	xdraw "golang.org/x/image/draw"

	"github.com/ytget/upscaler/internal/platform"
)

// Result describes a processed image on disk
type Result struct {
	Filename string
	Width    int
	Height   int
}

// Upscale resamples src with Catmull-Rom so that its longer side is TargetLongSide
func Upscale(src image.Image) (image.Image, error) {
	bounds := src.Bounds()
	w, h, err := TargetDimensions(bounds.Dx(), bounds.Dy())
	if err != nil {
		return nil, err
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, xdraw.Src, nil)
	return dst, nil
}

// ProcessFile upscales the image at srcPath and writes it into dstDir as
// dstName, adjusting the extension when the source format cannot be written
// and adding a numbered suffix when the resulting name is taken
func ProcessFile(srcPath, dstDir, dstName string) (*Result, error) {
	in, err := os.Open(srcPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open upload: %w", err)
	}
	defer in.Close()

	src, _, err := Decode(in)
	if err != nil {
		return nil, err
	}

	upscaled, err := Upscale(src)
	if err != nil {
		return nil, err
	}

	format, name := OutputFormat(dstName)
	out, err := platform.CreateUnique(dstDir, name)
	if err != nil {
		return nil, fmt.Errorf("failed to create output: %w", err)
	}
	dstPath := out.Name()

	if err := Encode(out, upscaled, format); err != nil {
		out.Close()
		os.Remove(dstPath)
		return nil, err
	}
	if err := out.Close(); err != nil {
		os.Remove(dstPath)
		return nil, fmt.Errorf("failed to write output: %w", err)
	}

	b := upscaled.Bounds()
	return &Result{Filename: filepath.Base(dstPath), Width: b.Dx(), Height: b.Dy()}, nil
}
