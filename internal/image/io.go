package image

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg" // register JPEG decoder
	"image/png"
	"io"
	"math"
	"os"
	"path/filepath"

	"golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp" // register WebP decoder
)

// I/O errors.
var (
	// ErrUnsupportedFormat is returned when the image format is not supported.
	ErrUnsupportedFormat = errors.New("image: unsupported format")

	// ErrUnsupportedBitDepth is returned when a format cannot store the
	// requested bits per channel.
	ErrUnsupportedBitDepth = errors.New("image: unsupported bit depth")

	// ErrEmptyData is returned when image data is empty.
	ErrEmptyData = errors.New("image: empty data")
)

// EncodeOptions controls how a FloatImage is written.
type EncodeOptions struct {
	// Format selects the file format. FormatUnknown means PNG.
	Format Format

	// BitDepth is 8 or 16 bits per channel. Zero means 8.
	BitDepth int
}

// normalize fills in defaults and checks the combination is encodable.
func (o EncodeOptions) normalize() (EncodeOptions, error) {
	if o.Format == FormatUnknown {
		o.Format = FormatPNG
	}
	if o.BitDepth == 0 {
		o.BitDepth = 8
	}
	if !o.Format.CanEncode() {
		return o, fmt.Errorf("%w: cannot encode %s", ErrUnsupportedFormat, o.Format)
	}
	if !o.Format.SupportsBitDepth(o.BitDepth) {
		return o, fmt.Errorf("%w: %s with %d bits per channel", ErrUnsupportedBitDepth, o.Format, o.BitDepth)
	}
	return o, nil
}

// Load reads and decodes an image file, detecting the format from content.
func Load(path string) (*FloatImage, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("image: open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return Decode(f)
}

// LoadFromBytes decodes an image from a byte slice.
func LoadFromBytes(data []byte) (*FloatImage, error) {
	if len(data) == 0 {
		return nil, ErrEmptyData
	}
	return Decode(bytes.NewReader(data))
}

// Decode decodes an image from r, auto-detecting the format among PNG,
// JPEG, BMP, TIFF and WebP.
func Decode(r io.Reader) (*FloatImage, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return nil, fmt.Errorf("%w: %w", ErrUnsupportedFormat, err)
		}
		return nil, fmt.Errorf("image: decode: %w", err)
	}
	return FromStdImage(img), nil
}

// FromStdImage converts a standard library image to non-premultiplied
// float RGBA. Values are the stored channel values scaled to [0, 1].
// The top row of img becomes the last row of the result.
func FromStdImage(img image.Image) *FloatImage {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	// Fast path: already 16-bit non-premultiplied.
	src, ok := img.(*image.NRGBA64)
	if !ok {
		src = image.NewNRGBA64(image.Rect(0, 0, w, h))
		xdraw.Draw(src, src.Bounds(), img, b.Min, xdraw.Src)
	}

	out := &FloatImage{Width: w, Height: h, Pix: make([]float32, w*h*4)}
	const scale = 1.0 / 0xffff
	for y := range h {
		row := src.Pix[y*src.Stride : y*src.Stride+w*8]
		r := h - 1 - y
		dst := out.Pix[r*w*4 : (r+1)*w*4]
		for i := range dst {
			v := uint16(row[i*2])<<8 | uint16(row[i*2+1])
			dst[i] = float32(float64(v) * scale)
		}
	}
	return out
}

// ToNRGBA converts m to an 8-bit non-premultiplied image, clamping channels
// to [0, 1] and rounding to nearest. NaN becomes 0. The last row of m
// becomes the top row of the image.
func (m *FloatImage) ToNRGBA() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, m.Width, m.Height))
	for y := range m.Height {
		for x := range m.Width {
			i := (y*m.Width + x) * 4
			img.SetNRGBA(x, m.Height-1-y, color.NRGBA{
				R: uint8(quantize(m.Pix[i], 0xff)),
				G: uint8(quantize(m.Pix[i+1], 0xff)),
				B: uint8(quantize(m.Pix[i+2], 0xff)),
				A: uint8(quantize(m.Pix[i+3], 0xff)),
			})
		}
	}
	return img
}

// ToNRGBA64 converts m to a 16-bit non-premultiplied image, with the same
// row order as ToNRGBA.
func (m *FloatImage) ToNRGBA64() *image.NRGBA64 {
	img := image.NewNRGBA64(image.Rect(0, 0, m.Width, m.Height))
	for y := range m.Height {
		for x := range m.Width {
			i := (y*m.Width + x) * 4
			img.SetNRGBA64(x, m.Height-1-y, color.NRGBA64{
				R: uint16(quantize(m.Pix[i], 0xffff)),
				G: uint16(quantize(m.Pix[i+1], 0xffff)),
				B: uint16(quantize(m.Pix[i+2], 0xffff)),
				A: uint16(quantize(m.Pix[i+3], 0xffff)),
			})
		}
	}
	return img
}

// quantize maps v in [0, 1] to an integer in [0, maxVal].
func quantize(v float32, maxVal float64) uint32 {
	f := float64(v)
	if !(f > 0) { // also catches NaN
		return 0
	}
	if f >= 1 {
		return uint32(maxVal)
	}
	return uint32(math.Round(f * maxVal))
}

// Encode writes m to w.
func (m *FloatImage) Encode(w io.Writer, opts EncodeOptions) error {
	opts, err := opts.normalize()
	if err != nil {
		return err
	}

	var img image.Image
	if opts.BitDepth == 16 {
		img = m.ToNRGBA64()
	} else {
		img = m.ToNRGBA()
	}

	switch opts.Format {
	case FormatPNG:
		err = png.Encode(w, img)
	case FormatTIFF:
		err = tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate, Predictor: true})
	case FormatBMP:
		err = bmp.Encode(w, img)
	}
	if err != nil {
		return fmt.Errorf("image: encode %s: %w", opts.Format, err)
	}
	return nil
}

// Save writes m to path. A FormatUnknown in opts is replaced by the format
// implied by the path's extension, falling back to PNG.
func (m *FloatImage) Save(path string, opts EncodeOptions) error {
	if opts.Format == FormatUnknown {
		opts.Format = FormatFromPath(path)
	}
	if _, err := opts.normalize(); err != nil {
		return err
	}

	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("image: create file: %w", err)
	}

	if err := m.Encode(f, opts); err != nil {
		_ = f.Close()
		return err
	}

	return f.Close()
}

// EncodeToBytes encodes m and returns the bytes.
func (m *FloatImage) EncodeToBytes(opts EncodeOptions) ([]byte, error) {
	var buf bytes.Buffer
	if err := m.Encode(&buf, opts); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
