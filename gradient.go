package normalmap

import (
	"github.com/gogpu/normalmap/internal/filter"
	"github.com/gogpu/normalmap/internal/parallel"
)

// Gradients estimates the horizontal (gx) and vertical (gy) derivatives of a
// height field with 3x3 Sobel kernels:
//
//	gx: [[1,0,-1],[2,0,-2],[1,0,-1]]
//	gy: [[1,2,1],[0,0,0],[-1,-2,-1]]
//
// The field is padded by one sample on every edge with edge replication, so
// both results have the field's shape and border pixels use the interior
// formula.
func Gradients(f Field) (gx, gy Field, err error) {
	if err := f.validate(); err != nil {
		return Field{}, Field{}, err
	}
	gx, gy = gradients(nil, f)
	return gx, gy, nil
}

// gradients computes both gradient fields, splitting rows across pool.
func gradients(pool *parallel.WorkerPool, f Field) (gx, gy Field) {
	gx = NewField(f.Width, f.Height)
	gy = NewField(f.Width, f.Height)
	parallel.ForRows(pool, f.Height, func(y0, y1 int) {
		filter.ConvolvePair3Rows(f.Data, f.Width, f.Height,
			filter.SobelX, filter.SobelY, gx.Data, gy.Data, y0, y1)
	})
	return gx, gy
}
