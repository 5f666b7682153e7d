package normalmap

import (
	"fmt"
	"strings"
)

// Convention selects how a normal's Y component is stored in the green
// channel.
type Convention uint8

const (
	// DirectX stores -Y in green (G = 0.5 - 0.5*y). Used by Direct3D,
	// Unreal Engine and most VRM/MToon pipelines.
	DirectX Convention = iota

	// OpenGL stores +Y in green (G = 0.5 + 0.5*y). Used by Blender, Unity
	// and glTF.
	OpenGL

	conventionCount
)

// String returns the lowercase convention name.
func (c Convention) String() string {
	switch c {
	case DirectX:
		return "directx"
	case OpenGL:
		return "opengl"
	default:
		return fmt.Sprintf("Convention(%d)", uint8(c))
	}
}

// IsValid reports whether c is a known convention.
func (c Convention) IsValid() bool {
	return c < conventionCount
}

// ParseConvention parses a convention name. Matching is case-insensitive
// and accepts the short forms "dx" and "gl".
func ParseConvention(s string) (Convention, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "directx", "dx", "d3d":
		return DirectX, nil
	case "opengl", "gl":
		return OpenGL, nil
	default:
		return 0, fmt.Errorf("%w: unknown convention %q", ErrInvalidParameter, s)
	}
}

// Encode maps a normal to RGBA channels:
//
//	R = 0.5 + 0.5*x
//	G = 0.5 - 0.5*y  (DirectX) or 0.5 + 0.5*y (OpenGL)
//	B = 0.5 + 0.5*z
//	A = 1
//
// RGB are clamped to [0, 1]; NaN components stay NaN.
func (c Convention) Encode(n Vec3) [4]float32 {
	g := 0.5 - 0.5*n.Y
	if c == OpenGL {
		g = 0.5 + 0.5*n.Y
	}
	return [4]float32{
		float32(clamp01(0.5 + 0.5*n.X)),
		float32(clamp01(g)),
		float32(clamp01(0.5 + 0.5*n.Z)),
		1,
	}
}

// Decode maps encoded RGB channels back to a normal. It is the inverse of
// Encode for unclamped values and is intended for inspection and tests.
func (c Convention) Decode(px [4]float32) Vec3 {
	y := 1 - 2*float64(px[1])
	if c == OpenGL {
		y = -y
	}
	return Vec3{
		X: 2*float64(px[0]) - 1,
		Y: y,
		Z: 2*float64(px[2]) - 1,
	}
}

// clamp01 clamps v to [0, 1].
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
