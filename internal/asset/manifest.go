package asset

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	// ErrInvalidManifest is returned for manifests that cannot be used.
	ErrInvalidManifest = errors.New("asset: invalid manifest")

	// ErrMissingBaseColor is returned when a material has no base color texture.
	ErrMissingBaseColor = errors.New("asset: missing base color texture")
)

// Manifest is the list of materials of one model.
//
// Keys this package does not use are kept in Extra, and duplicate material
// entries stay in Materials, so SaveManifest writes back everything that
// was loaded.
type Manifest struct {
	Materials []Material     `yaml:"materials"`
	Extra     map[string]any `yaml:",inline"`

	// Dir is the directory relative texture paths resolve against.
	Dir string `yaml:"-"`
}

// Material is one material of a model.
type Material struct {
	Name      string         `yaml:"name"`
	BaseColor string         `yaml:"base_color,omitempty"`
	Normal    *NormalSlot    `yaml:"normal,omitempty"`
	Extra     map[string]any `yaml:",inline"`
}

// NormalSlot references the normal map a material samples.
type NormalSlot struct {
	Texture string         `yaml:"texture"`
	Scale   float64        `yaml:"scale"`
	Extra   map[string]any `yaml:",inline"`
}

// LoadManifest reads a manifest file.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("asset: read manifest: %w", err)
	}

	dir, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("asset: resolve manifest dir: %w", err)
	}
	return ParseManifest(data, dir)
}

// ParseManifest decodes manifest YAML. dir is used to resolve relative
// texture paths. Every material must have a name.
func ParseManifest(data []byte, dir string) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidManifest, err)
	}
	m.Dir = dir

	for i := range m.Materials {
		if strings.TrimSpace(m.Materials[i].Name) == "" {
			return nil, fmt.Errorf("%w: material %d has no name", ErrInvalidManifest, i)
		}
	}
	return &m, nil
}

// Unique returns the indexes of the materials to process: the first entry
// of each name, in manifest order. Later entries with a repeated name are
// left as they are.
func (m *Manifest) Unique() []int {
	seen := make(map[string]bool, len(m.Materials))
	idx := make([]int, 0, len(m.Materials))
	for i, mat := range m.Materials {
		name := strings.TrimSpace(mat.Name)
		if seen[name] {
			continue
		}
		seen[name] = true
		idx = append(idx, i)
	}
	return idx
}

// SaveManifest writes m to path. The file is replaced atomically.
func SaveManifest(path string, m *Manifest) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("asset: encode manifest: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".manifest-*.yaml")
	if err != nil {
		return fmt.Errorf("asset: save manifest: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("asset: save manifest: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("asset: save manifest: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("asset: save manifest: %w", err)
	}
	return nil
}

// Resolve returns p as an absolute path. Relative paths are taken relative
// to m.Dir. Forward slashes are accepted on every platform.
func (m *Manifest) Resolve(p string) string {
	p = filepath.FromSlash(p)
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(m.Dir, p)
}

// Rel returns p relative to m.Dir with forward slashes, or p unchanged if
// no relative path exists.
func (m *Manifest) Rel(p string) string {
	rel, err := filepath.Rel(m.Dir, p)
	if err != nil {
		return p
	}
	return filepath.ToSlash(rel)
}

// Textures returns the resolved base color paths of the Unique materials,
// without duplicates, in material order.
func (m *Manifest) Textures() []string {
	seen := make(map[string]bool)
	var out []string
	for _, i := range m.Unique() {
		mat := m.Materials[i]
		if mat.BaseColor == "" {
			continue
		}
		p := m.Resolve(mat.BaseColor)
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	return out
}
