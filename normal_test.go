package normalmap

import (
	"errors"
	"math"
	"testing"
)

func TestVec3Normalize(t *testing.T) {
	v := Vec3{X: 3, Y: 0, Z: 4}.Normalize()
	if v != (Vec3{X: 0.6, Y: 0, Z: 0.8}) {
		t.Errorf("Normalize() = %+v, want {0.6 0 0.8}", v)
	}

	zero := Vec3{}.Normalize()
	if zero != (Vec3{}) {
		t.Errorf("zero Normalize() = %+v, want zero vector", zero)
	}
}

func TestBuildNormalsUnitLength(t *testing.T) {
	gx := NewField(4, 3)
	gy := NewField(4, 3)
	for i := range gx.Data {
		gx.Data[i] = float64(i) - 5
		gy.Data[i] = math.Sin(float64(i)) * 3
	}

	normals, err := BuildNormals(gx, gy, 2.5, false)
	if err != nil {
		t.Fatalf("BuildNormals() error = %v", err)
	}
	if len(normals) != 12 {
		t.Fatalf("len = %d, want 12", len(normals))
	}
	for i, n := range normals {
		if !approxEqual(n.Len(), 1, 1e-12) {
			t.Errorf("|normals[%d]| = %v, want 1", i, n.Len())
		}
		if n.Z <= 0 {
			t.Errorf("normals[%d].Z = %v, want > 0", i, n.Z)
		}
	}
}

func TestBuildNormalsZeroGradientPointsUp(t *testing.T) {
	gx := NewField(2, 2)
	gy := NewField(2, 2)

	normals, err := BuildNormals(gx, gy, 7, true)
	if err != nil {
		t.Fatalf("BuildNormals() error = %v", err)
	}
	for i, n := range normals {
		if n.X != 0 || n.Y != 0 || n.Z != 1 {
			t.Errorf("normals[%d] = %+v, want (0, 0, 1)", i, n)
		}
	}
}

func TestBuildNormalsFlipNegatesXY(t *testing.T) {
	gx := NewField(3, 3)
	gy := NewField(3, 3)
	for i := range gx.Data {
		gx.Data[i] = float64(i%4) - 1.5
		gy.Data[i] = float64(i%3) * 0.7
	}

	plain, _ := BuildNormals(gx, gy, 1.3, false)
	flipped, _ := BuildNormals(gx, gy, 1.3, true)

	for i := range plain {
		if flipped[i].X != -plain[i].X || flipped[i].Y != -plain[i].Y || flipped[i].Z != plain[i].Z {
			t.Errorf("flipped[%d] = %+v, want X/Y negated of %+v", i, flipped[i], plain[i])
		}
	}
}

func TestBuildNormalsSignConvention(t *testing.T) {
	gx := Field{Width: 1, Height: 1, Data: []float64{2}}
	gy := Field{Width: 1, Height: 1, Data: []float64{-1}}

	normals, _ := BuildNormals(gx, gy, 1, false)
	n := normals[0]
	// (-2, 1, 1) / sqrt(6)
	s := math.Sqrt(6)
	if !approxEqual(n.X, -2/s, 1e-15) || !approxEqual(n.Y, 1/s, 1e-15) || !approxEqual(n.Z, 1/s, 1e-15) {
		t.Errorf("normal = %+v, want (-2, 1, 1)/sqrt(6)", n)
	}
}

func TestBuildNormalsErrors(t *testing.T) {
	ok := NewField(2, 2)

	if _, err := BuildNormals(ok, ok, 0, false); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("strength 0: error = %v, want ErrInvalidParameter", err)
	}
	if _, err := BuildNormals(ok, NewField(2, 3), 1, false); !errors.Is(err, ErrInvalidDimensions) {
		t.Errorf("shape mismatch: error = %v, want ErrInvalidDimensions", err)
	}
	if _, err := BuildNormals(Field{}, Field{}, 1, false); !errors.Is(err, ErrInvalidDimensions) {
		t.Errorf("empty fields: error = %v, want ErrInvalidDimensions", err)
	}
}
