package asset

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/gogpu/normalmap/internal/image"
)

const manifestYAML = `materials:
  - name: Body_SKIN
    base_color: textures/body.png
  - name: Shirt_CLOTH
    base_color: textures/body.png
  - name: Eye_GLASS
    base_color: textures/eye.png
  - name: Body_SKIN
    base_color: textures/other.png
  - name: Hair_HAIR
`

// writeTexture saves a w x h gray PNG at path.
func writeTexture(t *testing.T, path string, w, h int, gray float32) {
	t.Helper()
	img, err := image.NewFloatImage(w, h)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i+0] = gray
		img.Pix[i+1] = gray
		img.Pix[i+2] = gray
		img.Pix[i+3] = 1
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := img.Save(path, image.EncodeOptions{}); err != nil {
		t.Fatal(err)
	}
}

func writeManifest(t *testing.T) (string, *Manifest) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "model.yaml")
	if err := os.WriteFile(path, []byte(manifestYAML), 0o600); err != nil {
		t.Fatal(err)
	}
	writeTexture(t, filepath.Join(dir, "textures", "body.png"), 4, 3, 0.5)

	m, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("LoadManifest() error = %v", err)
	}
	return path, m
}

func TestLoadManifest(t *testing.T) {
	path, m := writeManifest(t)

	if len(m.Materials) != 5 {
		t.Fatalf("len(Materials) = %d, want 5", len(m.Materials))
	}
	unique := m.Unique()
	if want := []int{0, 1, 2, 4}; !slices.Equal(unique, want) {
		t.Errorf("Unique() = %v, want %v (second Body_SKIN skipped)", unique, want)
	}
	if m.Dir != filepath.Dir(path) {
		t.Errorf("Dir = %q, want %q", m.Dir, filepath.Dir(path))
	}

	want := filepath.Join(m.Dir, "textures", "body.png")
	if got := m.Resolve("textures/body.png"); got != want {
		t.Errorf("Resolve() = %q, want %q", got, want)
	}
	abs := filepath.Join(t.TempDir(), "x.png")
	if got := m.Resolve(abs); got != abs {
		t.Errorf("Resolve(abs) = %q, want %q", got, abs)
	}

	tex := m.Textures()
	if len(tex) != 2 {
		t.Errorf("Textures() = %v, want 2 unique paths", tex)
	}
}

func TestParseManifestErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"malformed", "materials: [\n"},
		{"unnamed", "materials:\n  - base_color: a.png\n"},
		{"wrong type", "materials: 3\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseManifest([]byte(tt.data), "/tmp"); !errors.Is(err, ErrInvalidManifest) {
				t.Errorf("ParseManifest() error = %v, want ErrInvalidManifest", err)
			}
		})
	}
}

func TestLoadManifestMissing(t *testing.T) {
	if _, err := LoadManifest(filepath.Join(t.TempDir(), "none.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("LoadManifest() error = %v, want ErrNotExist", err)
	}
}

func TestSourceBaseColor(t *testing.T) {
	_, m := writeManifest(t)
	src := NewSource(m, 0)

	img, err := src.BaseColor(m.Materials[0])
	if err != nil {
		t.Fatalf("BaseColor() error = %v", err)
	}
	if img.Width != 4 || img.Height != 3 || len(img.Pix) != 4*3*4 {
		t.Errorf("BaseColor() = %dx%d (%d values), want 4x3 (48 values)", img.Width, img.Height, len(img.Pix))
	}

	// Shirt_CLOTH shares the texture.
	img2, err := src.BaseColor(m.Materials[1])
	if err != nil {
		t.Fatalf("BaseColor() error = %v", err)
	}
	if img2 != img {
		t.Error("shared texture decoded twice")
	}
	if s := src.Stats(); s.Hits != 1 || s.Misses != 1 {
		t.Errorf("Stats() hits=%d misses=%d, want 1 and 1", s.Hits, s.Misses)
	}
}

func TestSourceBaseColorErrors(t *testing.T) {
	_, m := writeManifest(t)
	src := NewSource(m, 4)

	// Hair_HAIR has no base color.
	if _, err := src.BaseColor(m.Materials[4]); !errors.Is(err, ErrMissingBaseColor) {
		t.Errorf("BaseColor(no texture) error = %v, want ErrMissingBaseColor", err)
	}

	// Eye_GLASS points at a file that does not exist.
	if _, err := src.BaseColor(m.Materials[2]); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("BaseColor(missing file) error = %v, want ErrNotExist", err)
	}

	bad := filepath.Join(m.Dir, "textures", "bad.png")
	if err := os.WriteFile(bad, []byte("not an image"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := src.BaseColor(Material{Name: "Bad", BaseColor: bad}); !errors.Is(err, image.ErrUnsupportedFormat) {
		t.Errorf("BaseColor(garbage) error = %v, want ErrUnsupportedFormat", err)
	}
}

func TestSinkStore(t *testing.T) {
	path, m := writeManifest(t)
	sink := NewSink(m, "out", "_normal", image.EncodeOptions{Format: image.FormatTIFF, BitDepth: 16})

	img, err := image.NewFloatImage(2, 2)
	if err != nil {
		t.Fatal(err)
	}
	mat := &m.Materials[0]

	written, err := sink.Store(mat, img)
	if err != nil {
		t.Fatalf("Store() error = %v", err)
	}
	want := filepath.Join(m.Dir, "out", "Body_SKIN_normal.tif")
	if written != want {
		t.Errorf("Store() path = %q, want %q", written, want)
	}
	if _, err := os.Stat(written); err != nil {
		t.Errorf("output not written: %v", err)
	}
	if mat.Normal == nil || mat.Normal.Texture != "out/Body_SKIN_normal.tif" || mat.Normal.Scale != 1 {
		t.Errorf("Normal = %+v, want {out/Body_SKIN_normal.tif 1}", mat.Normal)
	}

	if err := SaveManifest(path, m); err != nil {
		t.Fatalf("SaveManifest() error = %v", err)
	}
	reloaded, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("LoadManifest() error = %v", err)
	}
	got := reloaded.Materials[0].Normal
	if got == nil || got.Texture != "out/Body_SKIN_normal.tif" || got.Scale != 1 {
		t.Errorf("reloaded Normal = %+v", got)
	}
	if reloaded.Materials[1].Normal != nil {
		t.Errorf("untouched material gained a normal slot: %+v", reloaded.Materials[1].Normal)
	}
}

func TestSinkDefaults(t *testing.T) {
	_, m := writeManifest(t)
	sink := NewSink(m, "", "_n", image.EncodeOptions{})

	if got, want := sink.Path(Material{Name: "a/b:c"}), filepath.Join(m.Dir, "a_b_c_n.png"); got != want {
		t.Errorf("Path() = %q, want %q", got, want)
	}
}

func TestSaveManifestKeepsUnknownKeys(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "model.yaml")
	const body = `model: avatar.vrm
version: 3
materials:
  - name: Body_SKIN
    base_color: a.png
    shade_color: b.png
    normal:
      texture: old.png
      scale: 0.5
      uv_set: 1
  - name: Body_SKIN
    base_color: c.png
`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}

	m, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("LoadManifest() error = %v", err)
	}
	writeTexture(t, filepath.Join(dir, "a.png"), 2, 2, 0.5)
	img, err := image.NewFloatImage(2, 2)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := NewSink(m, "", "_normal", image.EncodeOptions{}).Store(&m.Materials[0], img); err != nil {
		t.Fatalf("Store() error = %v", err)
	}
	if err := SaveManifest(path, m); err != nil {
		t.Fatalf("SaveManifest() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	saved := string(data)
	for _, want := range []string{"model: avatar.vrm", "version: 3", "shade_color: b.png", "uv_set: 1", "base_color: c.png", "texture: Body_SKIN_normal.png"} {
		if !strings.Contains(saved, want) {
			t.Errorf("saved manifest missing %q:\n%s", want, saved)
		}
	}

	reloaded, err := LoadManifest(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(reloaded.Materials) != 2 {
		t.Errorf("len(Materials) = %d, want 2 (duplicate kept)", len(reloaded.Materials))
	}
	if reloaded.Materials[1].Normal != nil {
		t.Errorf("duplicate entry gained a normal slot: %+v", reloaded.Materials[1].Normal)
	}
}
