package filter

import "math"

// Test helper functions shared across filter tests.

// constGrid returns a width x height grid filled with v.
func constGrid(width, height int, v float64) []float64 {
	g := make([]float64, width*height)
	for i := range g {
		g[i] = v
	}
	return g
}

// rampGrid returns a grid where each sample is f(x, y).
func rampGrid(width, height int, f func(x, y int) float64) []float64 {
	g := make([]float64, width*height)
	for y := range height {
		for x := range width {
			g[y*width+x] = f(x, y)
		}
	}
	return g
}

// padEdge returns src padded by one sample on every side using edge
// replication. The result is (width+2) x (height+2).
func padEdge(src []float64, width, height int) []float64 {
	pw := width + 2
	padded := make([]float64, pw*(height+2))
	for py := range height + 2 {
		sy := min(max(py-1, 0), height-1)
		for px := range pw {
			sx := min(max(px-1, 0), width-1)
			padded[py*pw+px] = src[sy*width+sx]
		}
	}
	return padded
}

// referenceConvolve computes the convolution with an explicit padded grid
// and a direct double sum per output sample.
func referenceConvolve(src []float64, width, height int, k Kernel3) []float64 {
	padded := padEdge(src, width, height)
	pw := width + 2
	dst := make([]float64, width*height)
	for y := range height {
		for x := range width {
			var sum float64
			for i := range 3 {
				for j := range 3 {
					sum += padded[(y+i)*pw+x+j] * k[i][j]
				}
			}
			dst[y*width+x] = sum
		}
	}
	return dst
}

// almostEqual reports whether a and b differ by less than tol.
func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) < tol
}
