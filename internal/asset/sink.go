package asset

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gogpu/normalmap/internal/image"
)

// Sink writes generated normal maps next to a manifest's textures.
type Sink struct {
	manifest *Manifest
	dir      string
	suffix   string
	opts     image.EncodeOptions
}

// NewSink returns a Sink writing into dir. An empty dir means the
// manifest's directory; a relative dir resolves against it.
func NewSink(m *Manifest, dir, suffix string, opts image.EncodeOptions) *Sink {
	if dir == "" {
		dir = m.Dir
	} else {
		dir = m.Resolve(dir)
	}
	if opts.Format == image.FormatUnknown {
		opts.Format = image.FormatPNG
	}
	return &Sink{manifest: m, dir: dir, suffix: suffix, opts: opts}
}

// Path returns the file a material's normal map is written to.
func (s *Sink) Path(mat Material) string {
	return filepath.Join(s.dir, fileName(mat.Name)+s.suffix+s.opts.Format.Ext())
}

// Store encodes img for mat and points mat's normal slot at the written
// file with scale 1. Other keys of the slot are kept. It returns the
// written path.
//
// Concurrent calls are safe when they refer to different materials.
func (s *Sink) Store(mat *Material, img *image.FloatImage) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("asset: create output dir: %w", err)
	}

	path := s.Path(*mat)
	if err := img.Save(path, s.opts); err != nil {
		return "", fmt.Errorf("asset: store normal map of %s: %w", mat.Name, err)
	}

	var slot NormalSlot
	if mat.Normal != nil {
		slot = *mat.Normal
	}
	slot.Texture = s.manifest.Rel(path)
	slot.Scale = 1.0
	mat.Normal = &slot
	return path, nil
}

// fileName replaces characters that cannot appear in a file name.
func fileName(name string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '_'
		}
		if r < 0x20 {
			return '_'
		}
		return r
	}, name)
}
