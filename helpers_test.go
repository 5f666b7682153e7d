package normalmap

import "math"

// Test helper functions shared across root package tests.

// grayPixels builds an opaque RGBA buffer where R=G=B=f(x, y).
func grayPixels(width, height int, f func(x, y int) float32) []float32 {
	px := make([]float32, width*height*4)
	for y := range height {
		for x := range width {
			v := f(x, y)
			i := (y*width + x) * 4
			px[i], px[i+1], px[i+2], px[i+3] = v, v, v, 1
		}
	}
	return px
}

// noisePixels builds a deterministic, non-flat RGBA buffer.
func noisePixels(width, height int) []float32 {
	px := make([]float32, width*height*4)
	seed := uint32(2463534242)
	for i := range px {
		// xorshift32
		seed ^= seed << 13
		seed ^= seed >> 17
		seed ^= seed << 5
		px[i] = float32(seed%1000) / 999
	}
	return px
}

// pixelAt returns the RGBA channels of pixel (x, y).
func pixelAt(px []float32, width, x, y int) [4]float32 {
	i := (y*width + x) * 4
	return [4]float32{px[i], px[i+1], px[i+2], px[i+3]}
}

// approxEqual compares two floats with tolerance.
func approxEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}
