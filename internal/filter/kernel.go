package filter

// Kernel3 is a 3x3 convolution kernel indexed as [row][column].
// Row 0 multiplies the sample of the previous row (index y-1), column 0
// the sample to its left.
type Kernel3 [3][3]float64

// Sobel kernels.
var (
	// SobelX estimates the horizontal derivative. It responds positively when
	// the left neighbors are higher than the right ones.
	SobelX = Kernel3{
		{1, 0, -1},
		{2, 0, -2},
		{1, 0, -1},
	}

	// SobelY estimates the vertical derivative. It responds positively when
	// row y-1 is higher than row y+1.
	SobelY = Kernel3{
		{1, 2, 1},
		{0, 0, 0},
		{-1, -2, -1},
	}
)
