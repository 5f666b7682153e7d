package normalmap

import (
	"fmt"
	"time"

	"github.com/gogpu/normalmap/internal/parallel"
)

// Generator converts pixel buffers into encoded normal maps using a fixed
// configuration.
//
// A Generator is safe for concurrent use; images processed at the same time
// share its worker pool but no other state.
type Generator struct {
	strength   float64
	sign       float64
	flip       bool
	convention Convention

	// pool splits rows across goroutines; nil means the calling goroutine.
	pool *parallel.WorkerPool
}

// NewGenerator creates a Generator. It fails with ErrInvalidParameter when
// the strength is not positive or the convention is unknown.
func NewGenerator(opts ...Option) (*Generator, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if err := validateStrength(o.strength); err != nil {
		return nil, err
	}
	if !o.convention.IsValid() {
		return nil, fmt.Errorf("%w: unknown convention %v", ErrInvalidParameter, o.convention)
	}

	g := &Generator{
		strength:   o.strength,
		sign:       flipSign(o.flip),
		flip:       o.flip,
		convention: o.convention,
	}
	if o.workers != 1 {
		g.pool = parallel.NewWorkerPool(o.workers)
	}
	return g, nil
}

// Strength returns the configured gradient amplification.
func (g *Generator) Strength() float64 { return g.strength }

// Flip reports whether gradients are inverted.
func (g *Generator) Flip() bool { return g.flip }

// Convention returns the channel encoding.
func (g *Generator) Convention() Convention { return g.convention }

// Workers returns the number of goroutines used per image.
func (g *Generator) Workers() int { return g.pool.Workers() }

// Close releases the worker pool. Generate keeps working after Close, on
// the calling goroutine.
func (g *Generator) Close() {
	g.pool.Close()
}

// Generate converts an RGBA pixel buffer of width*height*4 values into an
// encoded normal map of the same length.
//
// It fails with ErrInvalidDimensions when width or height is not positive
// or the buffer length does not match. src is never modified.
func (g *Generator) Generate(src []float32, width, height int) ([]float32, error) {
	if err := validatePixels(len(src), width, height); err != nil {
		return nil, err
	}

	start := time.Now()
	hf := NewField(width, height)
	parallel.ForRows(g.pool, height, func(y0, y1 int) {
		extractHeightRows(src, hf, y0, y1)
	})

	out := g.encodeField(hf)
	Logger().Debug("normal map generated",
		"width", width,
		"height", height,
		"strength", g.strength,
		"flip", g.flip,
		"convention", g.convention.String(),
		"elapsed", time.Since(start))
	return out, nil
}

// GenerateFromHeight converts a height field directly, skipping the color
// to height step.
func (g *Generator) GenerateFromHeight(hf Field) ([]float32, error) {
	if err := hf.validate(); err != nil {
		return nil, err
	}
	return g.encodeField(hf), nil
}

// encodeField runs gradients, normal construction and encoding on a valid
// height field.
func (g *Generator) encodeField(hf Field) []float32 {
	gx, gy := gradients(g.pool, hf)

	out := make([]float32, len(hf.Data)*4)
	parallel.ForRows(g.pool, hf.Height, func(y0, y1 int) {
		for i := y0 * hf.Width; i < y1*hf.Width; i++ {
			n := surfaceNormal(gx.Data[i], gy.Data[i], g.strength, g.sign)
			px := g.convention.Encode(n)
			copy(out[i*4:i*4+4], px[:])
		}
	})
	return out
}

// GenerateNormalMap converts an RGBA pixel buffer into a DirectX-encoded
// normal map using a single goroutine.
//
// Errors:
//   - ErrInvalidDimensions: width or height <= 0, or len(src) != width*height*4
//   - ErrInvalidParameter: strength <= 0 (or NaN/Inf)
func GenerateNormalMap(src []float32, width, height int, strength float64, flip bool) ([]float32, error) {
	g, err := NewGenerator(WithStrength(strength), WithFlip(flip))
	if err != nil {
		return nil, err
	}
	return g.Generate(src, width, height)
}
