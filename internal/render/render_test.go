package render

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/neurodata/pwaicons/internal/config"
	"github.com/neurodata/pwaicons/internal/icon"
	"github.com/neurodata/pwaicons/internal/pngenc"
)

func decodeFile(t *testing.T, path string) (w, h int) {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("png.Decode(%s): %v", path, err)
	}
	b := img.Bounds()
	return b.Dx(), b.Dy()
}

func TestRenderMatchesGenerator(t *testing.T) {
	pal := icon.DefaultPalette()
	data, err := Render(config.Target{Width: 24, Height: 16, Name: "x.png"}, pal)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	buf, err := icon.Generate(24, 16, pal)
	if err != nil {
		t.Fatal(err)
	}

	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("png.Decode: %v", err)
	}
	nrgba, ok := img.(*image.NRGBA)
	if !ok {
		t.Fatalf("decoded %T, want *image.NRGBA", img)
	}
	want := buf.Image()
	if nrgba.Bounds() != want.Bounds() {
		t.Errorf("bounds = %v, want %v", nrgba.Bounds(), want.Bounds())
	}
	if !bytes.Equal(nrgba.Pix, want.Pix) {
		t.Error("decoded pixels differ from the generated buffer")
	}
}

func TestRenderSinglePixel(t *testing.T) {
	data, err := Render(config.Target{Width: 1, Height: 1, Name: "one.png"}, icon.DefaultPalette())
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if _, err := png.Decode(bytes.NewReader(data)); err != nil {
		t.Errorf("png.Decode: %v", err)
	}
}

func TestRenderInvalidDimensions(t *testing.T) {
	_, err := Render(config.Target{Width: 0, Height: 10, Name: "bad.png"}, icon.DefaultPalette())
	if !errors.Is(err, icon.ErrInvalidDimensions) {
		t.Errorf("error = %v, want ErrInvalidDimensions", err)
	}
}

func TestWriteAllDefault(t *testing.T) {
	dir := t.TempDir()
	results, err := WriteAll(dir, config.Default())
	if err != nil {
		t.Fatalf("WriteAll: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}

	for _, tt := range []struct {
		name string
		size int
	}{
		{"icon-192.png", 192},
		{"icon-512.png", 512},
	} {
		path := filepath.Join(dir, tt.name)
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("reading %s: %v", tt.name, err)
		}
		if len(data) == 0 {
			t.Errorf("%s is empty", tt.name)
		}
		h, err := pngenc.ReadHeader(data)
		if err != nil {
			t.Fatalf("ReadHeader(%s): %v", tt.name, err)
		}
		if int(h.Width) != tt.size || int(h.Height) != tt.size || h.BitDepth != 8 || h.ColorType != 6 {
			t.Errorf("%s header = %+v", tt.name, h)
		}
		if w, hgt := decodeFile(t, path); w != tt.size || hgt != tt.size {
			t.Errorf("%s decodes to %dx%d", tt.name, w, hgt)
		}
	}

	if results[0].Path != filepath.Join(dir, "icon-192.png") || results[0].Width != 192 {
		t.Errorf("results[0] = %+v", results[0])
	}
	if info, err := os.Stat(results[1].Path); err != nil || int(info.Size()) != results[1].Size {
		t.Errorf("results[1].Size = %d, stat = %v, %v", results[1].Size, info, err)
	}
}

func TestWriteAllIsReproducible(t *testing.T) {
	dir := t.TempDir()
	if _, err := WriteAll(dir, config.Default()); err != nil {
		t.Fatal(err)
	}
	first, err := os.ReadFile(filepath.Join(dir, "icon-192.png"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := WriteAll(dir, config.Default()); err != nil {
		t.Fatal(err)
	}
	second, err := os.ReadFile(filepath.Join(dir, "icon-192.png"))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(first, second) {
		t.Error("re-running produced a different file")
	}
}

func TestWriteAllRejectsInvalidTarget(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Targets = append(cfg.Targets, config.Target{Width: 0, Height: 10, Name: "icon-0.png"})

	_, err := WriteAll(dir, cfg)
	if !errors.Is(err, icon.ErrInvalidDimensions) {
		t.Fatalf("error = %v, want ErrInvalidDimensions", err)
	}
	// Validation runs before anything is written.
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("dir has %d entries, want none", len(entries))
	}
}

func TestWriteUnwritableDir(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	if err := os.WriteFile(blocker, nil, 0644); err != nil {
		t.Fatal(err)
	}
	_, err := Write(blocker, config.Target{Width: 4, Height: 4, Name: "icon-4.png"}, icon.DefaultPalette())
	if !errors.Is(err, pngenc.ErrIO) {
		t.Errorf("error = %v, want ErrIO", err)
	}
}
