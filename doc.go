// Package normalmap converts color textures into tangent-space normal maps.
//
// # Overview
//
// The conversion is a short, linear numerical pipeline:
//
//	pixels -> height field -> gradients (Gx, Gy) -> normals -> encoded pixels
//
// The height of a pixel is the unweighted mean of its red, green and blue
// channels. Gradients come from 3x3 Sobel kernels applied with
// edge-replicated padding, so the output has exactly the input's shape.
// Each gradient pair is scaled by a strength factor, combined with a
// constant up component of 1 and normalized. The unit normal is finally
// encoded into RGBA using the DirectX convention (green holds -Y) unless
// another Convention is selected.
//
// # Quick Start
//
//	out, err := normalmap.GenerateNormalMap(pixels, width, height, 1.0, false)
//	if errors.Is(err, normalmap.ErrInvalidDimensions) {
//	    // skip this image
//	}
//
// For repeated use, a Generator holds the configuration and an optional
// worker pool:
//
//	g, err := normalmap.NewGenerator(
//	    normalmap.WithStrength(2.5),
//	    normalmap.WithConvention(normalmap.OpenGL),
//	    normalmap.WithWorkers(0), // GOMAXPROCS
//	)
//	if err != nil {
//	    return err
//	}
//	defer g.Close()
//	out, err := g.Generate(pixels, width, height)
//
// # Pixel Layout
//
// Pixel buffers are flat []float32 slices of width*height*4 values in
// row-major RGBA order: the pixel at row r, column c starts at index
// (r*width+c)*4. Channel values are expected in [0, 1]; encoded output
// channels are clamped to [0, 1].
//
// Row 0 is the bottom of the texture, as in texture-space pixel buffers.
// Buffers decoded top-down must be flipped first, otherwise the green
// channel is mirrored.
//
// # Determinism
//
// Generation has no hidden state. Identical inputs and configuration give
// bit-identical output regardless of the number of workers, because every
// output pixel is computed by the same sequence of operations.
package normalmap

// Version is the current version of the library.
const Version = "0.3.0"
