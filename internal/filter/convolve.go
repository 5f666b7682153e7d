package filter

// Convolve3 convolves a width x height grid with k and returns a new grid of
// the same shape. Out-of-range neighbors replicate the nearest edge sample.
//
// src must hold at least width*height samples; Convolve3 panics otherwise.
func Convolve3(src []float64, width, height int, k Kernel3) []float64 {
	dst := make([]float64, width*height)
	Convolve3Rows(src, width, height, k, dst, 0, height)
	return dst
}

// Convolve3Rows writes the rows [y0, y1) of the convolution of src with k
// into dst. Rows outside the range are left untouched.
func Convolve3Rows(src []float64, width, height int, k Kernel3, dst []float64, y0, y1 int) {
	y0, y1 = clampRows(y0, y1, height)
	for y := y0; y < y1; y++ {
		rows := neighborRows(src, width, height, y)
		out := dst[y*width : (y+1)*width]
		for x := range width {
			cols := neighborCols(x, width)
			out[x] = apply(&rows, &cols, &k)
		}
	}
}

// ConvolvePair3Rows computes two convolutions over the same neighborhoods in
// one sweep, writing rows [y0, y1) of each result. Each output value equals
// what Convolve3Rows would produce for the same kernel.
func ConvolvePair3Rows(src []float64, width, height int, ka, kb Kernel3, dstA, dstB []float64, y0, y1 int) {
	y0, y1 = clampRows(y0, y1, height)
	for y := y0; y < y1; y++ {
		rows := neighborRows(src, width, height, y)
		outA := dstA[y*width : (y+1)*width]
		outB := dstB[y*width : (y+1)*width]
		for x := range width {
			cols := neighborCols(x, width)
			outA[x] = apply(&rows, &cols, &ka)
			outB[x] = apply(&rows, &cols, &kb)
		}
	}
}

// apply sums the element-wise product of the 3x3 neighborhood and the kernel.
// Each kernel row is accumulated separately before the rows are added, so
// kernels whose rows cancel (Sobel) yield exactly zero on constant input.
func apply(rows *[3][]float64, cols *[3]int, k *Kernel3) float64 {
	var sum float64
	for i := range 3 {
		row := rows[i]
		var partial float64
		for j := range 3 {
			partial += row[cols[j]] * k[i][j]
		}
		sum += partial
	}
	return sum
}

// neighborRows returns the source rows y-1, y and y+1, replicating
// the first and last row at the top and bottom edges.
func neighborRows(src []float64, width, height, y int) [3][]float64 {
	var rows [3][]float64
	for i := range 3 {
		ry := clampIndex(y+i-1, height)
		rows[i] = src[ry*width : (ry+1)*width]
	}
	return rows
}

// neighborCols returns the column indices left of, at and right of x with
// edge replication.
func neighborCols(x, width int) [3]int {
	return [3]int{
		clampIndex(x-1, width),
		x,
		clampIndex(x+1, width),
	}
}

// clampIndex clamps i to [0, n).
func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

// clampRows restricts a row range to [0, height).
func clampRows(y0, y1, height int) (int, int) {
	if y0 < 0 {
		y0 = 0
	}
	if y1 > height {
		y1 = height
	}
	return y0, y1
}
