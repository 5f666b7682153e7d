package normalmap

import (
	"errors"
	"math"
	"testing"
)

func TestConventionEncodeUp(t *testing.T) {
	for _, c := range []Convention{DirectX, OpenGL} {
		got := c.Encode(Vec3{Z: 1})
		if got != flatPixel {
			t.Errorf("%v.Encode(up) = %v, want %v", c, got, flatPixel)
		}
	}
}

func TestConventionEncodeAxes(t *testing.T) {
	tests := []struct {
		c    Convention
		n    Vec3
		want [4]float32
	}{
		{DirectX, Vec3{X: 1}, [4]float32{1, 0.5, 0.5, 1}},
		{DirectX, Vec3{X: -1}, [4]float32{0, 0.5, 0.5, 1}},
		{DirectX, Vec3{Y: 1}, [4]float32{0.5, 0, 0.5, 1}},
		{DirectX, Vec3{Y: -1}, [4]float32{0.5, 1, 0.5, 1}},
		{OpenGL, Vec3{Y: 1}, [4]float32{0.5, 1, 0.5, 1}},
		{OpenGL, Vec3{Y: -1}, [4]float32{0.5, 0, 0.5, 1}},
	}

	for _, tt := range tests {
		if got := tt.c.Encode(tt.n); got != tt.want {
			t.Errorf("%v.Encode(%+v) = %v, want %v", tt.c, tt.n, got, tt.want)
		}
	}
}

func TestConventionEncodeClamps(t *testing.T) {
	got := DirectX.Encode(Vec3{X: 3, Y: 3, Z: -5})
	want := [4]float32{1, 0, 0, 1}
	if got != want {
		t.Errorf("Encode(out of range) = %v, want %v", got, want)
	}
}

func TestConventionEncodeNaNPropagates(t *testing.T) {
	got := DirectX.Encode(Vec3{X: math.NaN(), Z: 1})
	if !math.IsNaN(float64(got[0])) {
		t.Errorf("Encode(NaN).R = %v, want NaN", got[0])
	}
	if got[3] != 1 {
		t.Errorf("Encode(NaN).A = %v, want 1", got[3])
	}
}

func TestConventionDecodeRoundTrip(t *testing.T) {
	n := Vec3{X: 0.36, Y: -0.48, Z: 0.8}
	for _, c := range []Convention{DirectX, OpenGL} {
		got := c.Decode(c.Encode(n))
		if !approxEqual(got.X, n.X, 1e-6) || !approxEqual(got.Y, n.Y, 1e-6) || !approxEqual(got.Z, n.Z, 1e-6) {
			t.Errorf("%v round trip = %+v, want %+v", c, got, n)
		}
	}
}

func TestParseConvention(t *testing.T) {
	tests := []struct {
		in   string
		want Convention
	}{
		{"directx", DirectX},
		{"DirectX", DirectX},
		{" dx ", DirectX},
		{"opengl", OpenGL},
		{"GL", OpenGL},
	}

	for _, tt := range tests {
		got, err := ParseConvention(tt.in)
		if err != nil {
			t.Errorf("ParseConvention(%q) error = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseConvention(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	if _, err := ParseConvention("vulkan"); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("ParseConvention(vulkan) error = %v, want ErrInvalidParameter", err)
	}
}

func TestConventionString(t *testing.T) {
	if DirectX.String() != "directx" || OpenGL.String() != "opengl" {
		t.Errorf("String() = %q, %q", DirectX.String(), OpenGL.String())
	}
	if Convention(9).IsValid() {
		t.Error("Convention(9).IsValid() = true, want false")
	}
}
