package imaging

import (
	"errors"
	"fmt"
)

// TargetLongSide is the length of the longer side of every upscaled image
const TargetLongSide = 3840

// ErrInvalidSize is returned for images with a zero or negative side
var ErrInvalidSize = errors.New("invalid image size")

// TargetDimensions returns the output size for a width x height source: the
// longer side becomes exactly TargetLongSide and the shorter side keeps the
// aspect ratio, truncated toward zero. Squares go to TargetLongSide on both
// sides. The shorter side never drops below one pixel.
func TargetDimensions(width, height int) (int, int, error) {
	if width <= 0 || height <= 0 {
		return 0, 0, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}

	if width >= height {
		h := int(float64(TargetLongSide) * float64(height) / float64(width))
		return TargetLongSide, max(h, 1), nil
	}

	w := int(float64(TargetLongSide) * float64(width) / float64(height))
	return max(w, 1), TargetLongSide, nil
}
