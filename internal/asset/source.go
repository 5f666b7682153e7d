package asset

import (
	"fmt"

	"github.com/gogpu/normalmap/internal/cache"
	"github.com/gogpu/normalmap/internal/image"
)

// DefaultCacheSize is the number of decoded textures a Source keeps.
const DefaultCacheSize = 32

// Source decodes material base color textures.
//
// Decoded textures are cached by absolute path, so materials sharing a
// texture decode it once. Returned images are shared and must not be
// modified. Source is safe for concurrent use.
type Source struct {
	manifest *Manifest
	textures *cache.Cache[string, *image.FloatImage]
}

// NewSource returns a Source for the materials of m. cacheSize <= 0 uses
// DefaultCacheSize.
func NewSource(m *Manifest, cacheSize int) *Source {
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	return &Source{
		manifest: m,
		textures: cache.New[string, *image.FloatImage](cacheSize),
	}
}

// BaseColor returns the decoded base color texture of mat.
func (s *Source) BaseColor(mat Material) (*image.FloatImage, error) {
	if mat.BaseColor == "" {
		return nil, fmt.Errorf("%w: %s", ErrMissingBaseColor, mat.Name)
	}

	path := s.manifest.Resolve(mat.BaseColor)
	img, err := s.textures.GetOrLoad(path, func() (*image.FloatImage, error) {
		return image.Load(path)
	})
	if err != nil {
		return nil, fmt.Errorf("asset: base color of %s: %w", mat.Name, err)
	}
	return img, nil
}

// Stats returns texture cache statistics.
func (s *Source) Stats() cache.Stats {
	return s.textures.Stats()
}
