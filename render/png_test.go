package render_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/soypat/svo/render"
	"gonum.org/v1/plot/cmpimg"
)

func TestWritePNG(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping rasterization in short mode")
	}
	root := testTree(t, 3)
	model := render.LeafTriangles(root)
	view := render.DefaultView
	view.Width, view.Height = 96, 64
	dir := t.TempDir()
	png1 := filepath.Join(dir, "a.png")
	png2 := filepath.Join(dir, "b.png")
	for _, name := range []string{png1, png2} {
		if err := render.WritePNG(name, model, view); err != nil {
			t.Fatal(err)
		}
	}
	b1, err := os.ReadFile(png1)
	if err != nil {
		t.Fatal(err)
	}
	b2, err := os.ReadFile(png2)
	if err != nil {
		t.Fatal(err)
	}
	equal, err := cmpimg.EqualApprox("png", b1, b2, 0.01)
	if err != nil {
		t.Fatal(err)
	}
	if !equal {
		t.Fatal("rendering the same model twice produced different images")
	}
}

func TestRenderImageInvalid(t *testing.T) {
	if _, err := render.RenderImage(nil, render.DefaultView); err == nil {
		t.Fatal("expected error rendering empty model")
	}
	view := render.DefaultView
	view.Width = 0
	model := render.LeafTriangles(testTree(t, 1))
	if _, err := render.RenderImage(model, view); err == nil {
		t.Fatal("expected error rendering zero width image")
	}
}
