package normalmap

import (
	"fmt"
	"math"
)

// Vec3 is a tangent-space vector: X points right, Y up and Z out of the
// surface.
type Vec3 struct {
	X, Y, Z float64
}

// Len returns the Euclidean length of v.
func (v Vec3) Len() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Normalize returns v scaled to unit length. The zero vector is returned
// unchanged.
func (v Vec3) Normalize() Vec3 {
	n := v.Len()
	if n == 0 {
		return v
	}
	return Vec3{X: v.X / n, Y: v.Y / n, Z: v.Z / n}
}

// surfaceNormal builds the unit normal for one gradient pair. sign is -1
// when flipped, 1 otherwise.
func surfaceNormal(gx, gy, strength, sign float64) Vec3 {
	return Vec3{
		X: -gx * strength * sign,
		Y: -gy * strength * sign,
		Z: 1,
	}.Normalize()
}

// flipSign returns the gradient sign factor for the flip flag.
func flipSign(flip bool) float64 {
	if flip {
		return -1
	}
	return 1
}

// BuildNormals turns gradient fields into unit normals, one per pixel:
//
//	n = normalize(-gx*strength*sign, -gy*strength*sign, 1)
//
// where sign is -1 when flip is set. The result is row-major with the
// gradients' shape.
func BuildNormals(gx, gy Field, strength float64, flip bool) ([]Vec3, error) {
	if err := validateStrength(strength); err != nil {
		return nil, err
	}
	if err := gx.validate(); err != nil {
		return nil, err
	}
	if gy.Width != gx.Width || gy.Height != gx.Height || len(gy.Data) != len(gx.Data) {
		return nil, fmt.Errorf("%w: gradient shapes %dx%d and %dx%d differ",
			ErrInvalidDimensions, gx.Width, gx.Height, gy.Width, gy.Height)
	}

	sign := flipSign(flip)
	normals := make([]Vec3, len(gx.Data))
	for i := range normals {
		normals[i] = surfaceNormal(gx.Data[i], gy.Data[i], strength, sign)
	}
	return normals, nil
}

// validateStrength rejects non-positive and NaN strengths.
func validateStrength(strength float64) error {
	if !(strength > 0) || math.IsInf(strength, 1) {
		return fmt.Errorf("%w: strength %v must be a positive finite number",
			ErrInvalidParameter, strength)
	}
	return nil
}
