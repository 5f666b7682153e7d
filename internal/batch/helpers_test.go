package batch

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gogpu/normalmap"
	"github.com/gogpu/normalmap/internal/asset"
	"github.com/gogpu/normalmap/internal/image"
)

const testManifest = `materials:
  - name: Body_SKIN
    base_color: textures/flat.png
  - name: Shirt_cloth
    base_color: textures/flat.png
  - name: Eye_GLASS
    base_color: textures/flat.png
  - name: Hair_HAIR
  - name: Broken_SKIN
    base_color: textures/missing.png
`

// writeFlat saves a w x h mid-gray PNG.
func writeFlat(t *testing.T, path string, w, h int) {
	t.Helper()
	img, err := image.NewFloatImage(w, h)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i+0], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = 0.5, 0.5, 0.5, 1
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := img.Save(path, image.EncodeOptions{}); err != nil {
		t.Fatal(err)
	}
}

// setupModel writes testManifest and its texture into a temp dir.
func setupModel(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "model.yaml")
	if err := os.WriteFile(path, []byte(testManifest), 0o600); err != nil {
		t.Fatal(err)
	}
	writeFlat(t, filepath.Join(dir, "textures", "flat.png"), 8, 6)
	return path
}

func loadModel(t *testing.T, path string) *asset.Manifest {
	t.Helper()
	m, err := asset.LoadManifest(path)
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func newTestDriver(t *testing.T, opts Options) *Driver {
	t.Helper()
	gen, err := normalmap.NewGenerator(normalmap.WithWorkers(2))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(gen.Close)

	sel, err := NewSelector([]string{"SKIN", "CLOTH", "HAIR"})
	if err != nil {
		t.Fatal(err)
	}
	return NewDriver(gen, sel, opts)
}
