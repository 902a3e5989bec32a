package portraits

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func writePNG(t *testing.T, path string, c color.RGBA) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

func TestPathStaysInsideDir(t *testing.T) {
	s := New("/data")
	cases := []struct {
		ref, want string
	}{
		{"heroes/pyra.png", "/data/heroes/pyra.png"},
		{"/heroes/pyra.png", "/data/heroes/pyra.png"},
		{"../../etc/passwd", "/data/etc/passwd"},
	}
	for _, tt := range cases {
		got, err := s.Path(tt.ref)
		if err != nil || got != filepath.FromSlash(tt.want) {
			t.Errorf("Path(%q) = %q, %v", tt.ref, got, err)
		}
	}
	if _, err := s.Path("  "); err == nil {
		t.Fatalf("expected error for empty ref")
	}
}

func TestDecodeAndRememberMissing(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "heroes", "pyra.png"), color.RGBA{200, 10, 10, 255})
	s := New(dir)

	img, err := s.Decode("/heroes/pyra.png")
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got := img.RGBAAt(1, 1); got != (color.RGBA{200, 10, 10, 255}) {
		t.Fatalf("pixel %#v", got)
	}
	again, _ := s.Decode("/heroes/pyra.png")
	if again != img {
		t.Fatalf("decoded portrait not cached")
	}

	if _, err := s.Decode("heroes/ghost.png"); err == nil {
		t.Fatalf("expected error for missing portrait")
	}
	writePNG(t, filepath.Join(dir, "heroes", "ghost.png"), color.RGBA{0, 0, 0, 255})
	if _, err := s.Decode("heroes/ghost.png"); err == nil {
		t.Fatalf("missing portrait should stay missing until the cache is cleared")
	}
}

func TestClearCacheRereads(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pyra.png")
	writePNG(t, path, color.RGBA{200, 10, 10, 255})
	s := New(dir)
	first, err := s.Decode("pyra.png")
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if _, err := s.Decode("ghost.png"); err == nil {
		t.Fatalf("expected error for missing portrait")
	}

	writePNG(t, path, color.RGBA{10, 200, 10, 255})
	writePNG(t, filepath.Join(dir, "ghost.png"), color.RGBA{0, 0, 0, 255})
	s.ClearCache()

	second, err := s.Decode("pyra.png")
	if err != nil {
		t.Fatalf("Decode after clear: %v", err)
	}
	if second == first {
		t.Fatalf("portrait served from the old cache")
	}
	if got := second.RGBAAt(1, 1); got != (color.RGBA{10, 200, 10, 255}) {
		t.Fatalf("pixel %#v after clear", got)
	}
	if _, err := s.Decode("ghost.png"); err != nil {
		t.Fatalf("missing mark survived ClearCache: %v", err)
	}
}

func TestDecodeFillsBox(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "wide.png"), color.RGBA{9, 9, 9, 255})
	s := New(dir)
	s.Size = image.Pt(2, 3)
	img, err := s.Decode("wide.png")
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 2 || b.Dy() != 3 {
		t.Fatalf("got bounds %v", b)
	}
}

func TestPreload(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "a.png"), color.RGBA{1, 2, 3, 255})
	writePNG(t, filepath.Join(dir, "b.png"), color.RGBA{4, 5, 6, 255})
	s := New(dir)
	n := s.Preload([]string{"a.png", "b.png", "a.png", "", "nope.png"}, 2)
	if n != 2 {
		t.Fatalf("preloaded %d portraits, want 2", n)
	}
}

func TestSmoothSpeckles(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 3, 3))
	for i := range img.Pix {
		img.Pix[i] = 100
	}
	img.SetRGBA(1, 1, color.RGBA{255, 255, 255, 100})
	smoothSpeckles(img)
	if got := img.RGBAAt(1, 1); got.R == 255 {
		t.Fatalf("speckle not smoothed: %#v", got)
	}
	if got := img.RGBAAt(0, 0); got.R != 100 {
		t.Fatalf("border pixel changed: %#v", got)
	}
}

func TestInitials(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"pyra", "P"},
		{"storm caller", "SC"},
		{"the iron golem", "TI"},
		{"", ""},
	}
	for _, tt := range cases {
		if got := Initials(tt.in); got != tt.want {
			t.Errorf("Initials(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
	if TileColor("pyra") != TileColor("pyra") {
		t.Fatalf("tile color not stable")
	}
}
