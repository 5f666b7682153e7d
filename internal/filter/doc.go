// Package filter provides the fixed-size convolution kernels used to turn a
// height field into per-axis gradients.
//
// Grids are row-major []float64 slices of width*height samples. All
// convolutions pad the source by one sample on every edge using edge
// replication, so border outputs use the same formula as interior ones and
// the output grid has the same shape as the input.
//
// Row-range entry points (the *Rows functions) only write rows in [y0, y1),
// which lets callers split one image into disjoint bands and run them in
// parallel without synchronization.
package filter
