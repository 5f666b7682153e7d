package normalmap

import (
	"fmt"
	"math"
)

// Field is a row-major grid of scalar samples, used for heights and
// gradients. The sample at column x, row y is Data[y*Width+x].
type Field struct {
	Width  int
	Height int
	Data   []float64
}

// NewField allocates a zeroed width x height field.
func NewField(width, height int) Field {
	return Field{
		Width:  width,
		Height: height,
		Data:   make([]float64, width*height),
	}
}

// At returns the sample at column x, row y.
func (f Field) At(x, y int) float64 {
	return f.Data[y*f.Width+x]
}

// Set stores v at column x, row y.
func (f Field) Set(x, y int, v float64) {
	f.Data[y*f.Width+x] = v
}

// validate checks that the field is non-empty and its data matches its shape.
func (f Field) validate() error {
	if f.Width <= 0 || f.Height <= 0 || len(f.Data) != f.Width*f.Height {
		return fmt.Errorf("%w: field %dx%d with %d samples",
			ErrInvalidDimensions, f.Width, f.Height, len(f.Data))
	}
	return nil
}

// ExtractHeight derives the height field of an RGBA pixel buffer: each
// sample is (R+G+B)/3. Alpha is never read.
//
// Non-finite channel values propagate into the height field unchanged.
func ExtractHeight(src []float32, width, height int) (Field, error) {
	if err := validatePixels(len(src), width, height); err != nil {
		return Field{}, err
	}
	f := NewField(width, height)
	extractHeightRows(src, f, 0, height)
	return f, nil
}

// extractHeightRows fills rows [y0, y1) of f from src.
func extractHeightRows(src []float32, f Field, y0, y1 int) {
	for i := y0 * f.Width; i < y1*f.Width; i++ {
		px := src[i*4 : i*4+3]
		f.Data[i] = (float64(px[0]) + float64(px[1]) + float64(px[2])) / 3
	}
}

// validatePixels checks the dimensions against a pixel buffer length.
func validatePixels(n, width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	if height > math.MaxInt/4/width || n != width*height*4 {
		return fmt.Errorf("%w: buffer has %d values, want %dx%dx4",
			ErrInvalidDimensions, n, width, height)
	}
	return nil
}
