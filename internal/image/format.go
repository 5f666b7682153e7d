// Package image decodes textures into float RGBA buffers and encodes
// normal maps back to image files.
//
// Decoding supports PNG, JPEG, BMP, TIFF and WebP. Encoding supports PNG,
// TIFF (8 or 16 bits per channel) and BMP (8 bits). Channel values are
// taken as stored, without color space conversion: a normal map is linear
// data and the height proxy is defined on the stored values.
//
// FloatImage rows are stored bottom-up (texture space), so decoding flips
// the file's top-down rows and encoding flips them back.
package image

import (
	"path/filepath"
	"strings"
)

// Format identifies an image file format.
type Format uint8

const (
	// FormatUnknown is the zero value.
	FormatUnknown Format = iota

	// FormatPNG is Portable Network Graphics (8 or 16 bits per channel).
	FormatPNG

	// FormatJPEG is JPEG. Decode only: lossy compression corrupts normals.
	FormatJPEG

	// FormatBMP is Windows bitmap (8 bits per channel).
	FormatBMP

	// FormatTIFF is TIFF with deflate compression (8 or 16 bits per channel).
	FormatTIFF

	// FormatWebP is WebP. Decode only.
	FormatWebP
)

// String returns the lowercase format name.
func (f Format) String() string {
	switch f {
	case FormatPNG:
		return "png"
	case FormatJPEG:
		return "jpeg"
	case FormatBMP:
		return "bmp"
	case FormatTIFF:
		return "tiff"
	case FormatWebP:
		return "webp"
	default:
		return "unknown"
	}
}

// Ext returns the canonical file extension including the dot.
func (f Format) Ext() string {
	switch f {
	case FormatPNG:
		return ".png"
	case FormatJPEG:
		return ".jpg"
	case FormatBMP:
		return ".bmp"
	case FormatTIFF:
		return ".tif"
	case FormatWebP:
		return ".webp"
	default:
		return ""
	}
}

// CanEncode reports whether normal maps can be written in this format.
func (f Format) CanEncode() bool {
	return f == FormatPNG || f == FormatBMP || f == FormatTIFF
}

// SupportsBitDepth reports whether f can be encoded with bitDepth bits per
// channel.
func (f Format) SupportsBitDepth(bitDepth int) bool {
	switch f {
	case FormatPNG, FormatTIFF:
		return bitDepth == 8 || bitDepth == 16
	case FormatBMP:
		return bitDepth == 8
	default:
		return false
	}
}

// ParseFormat parses a format name such as "png" or "tif".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), ".")) {
	case "png":
		return FormatPNG, nil
	case "jpg", "jpeg":
		return FormatJPEG, nil
	case "bmp":
		return FormatBMP, nil
	case "tif", "tiff":
		return FormatTIFF, nil
	case "webp":
		return FormatWebP, nil
	default:
		return FormatUnknown, ErrUnsupportedFormat
	}
}

// FormatFromPath returns the format implied by a file extension.
func FormatFromPath(path string) Format {
	f, err := ParseFormat(filepath.Ext(path))
	if err != nil {
		return FormatUnknown
	}
	return f
}
