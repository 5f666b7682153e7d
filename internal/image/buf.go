package image

import (
	"errors"
	"fmt"
)

// Common errors for image operations.
var (
	// ErrInvalidDimensions is returned when width or height is non-positive
	// or the pixel slice does not match them.
	ErrInvalidDimensions = errors.New("image: invalid dimensions")

	// ErrOutOfBounds is returned when pixel coordinates are outside image bounds.
	ErrOutOfBounds = errors.New("image: coordinates out of bounds")
)

// FloatImage is an RGBA image with float32 channels, nominally in [0, 1].
//
// Pix is row-major with no padding: the pixel at column x, row y starts at
// Pix[(y*Width+x)*4]. Rows run bottom-up, as in texture space: row 0 is the
// bottom of the picture. This is the layout normalmap.Generate consumes and
// produces, so a bright region reads as raised on both axes.
type FloatImage struct {
	Width  int
	Height int
	Pix    []float32
}

// NewFloatImage allocates a transparent black width x height image.
func NewFloatImage(width, height int) (*FloatImage, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	return &FloatImage{
		Width:  width,
		Height: height,
		Pix:    make([]float32, width*height*4),
	}, nil
}

// WrapFloatImage wraps an existing pixel slice without copying.
func WrapFloatImage(pix []float32, width, height int) (*FloatImage, error) {
	if width <= 0 || height <= 0 || len(pix) != width*height*4 {
		return nil, fmt.Errorf("%w: %dx%d with %d values", ErrInvalidDimensions, width, height, len(pix))
	}
	return &FloatImage{Width: width, Height: height, Pix: pix}, nil
}

// offset returns the index of pixel (x, y) in Pix.
func (m *FloatImage) offset(x, y int) (int, error) {
	if x < 0 || y < 0 || x >= m.Width || y >= m.Height {
		return 0, ErrOutOfBounds
	}
	return (y*m.Width + x) * 4, nil
}

// At returns the channels of pixel (x, y).
func (m *FloatImage) At(x, y int) ([4]float32, error) {
	i, err := m.offset(x, y)
	if err != nil {
		return [4]float32{}, err
	}
	return [4]float32{m.Pix[i], m.Pix[i+1], m.Pix[i+2], m.Pix[i+3]}, nil
}

// Set stores the channels of pixel (x, y).
func (m *FloatImage) Set(x, y int, c [4]float32) error {
	i, err := m.offset(x, y)
	if err != nil {
		return err
	}
	copy(m.Pix[i:i+4], c[:])
	return nil
}

// Clone returns a deep copy of m.
func (m *FloatImage) Clone() *FloatImage {
	pix := make([]float32, len(m.Pix))
	copy(pix, m.Pix)
	return &FloatImage{Width: m.Width, Height: m.Height, Pix: pix}
}
