package portraits

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"log"
	"path/filepath"
	"strings"
	"sync"

	"github.com/disintegration/imaging"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/remeh/sizedwaitgroup"
)

// Store loads hero and summon portraits from a data directory and keeps the
// decoded images. Refs are the imagePath values found in battle logs, such
// as "heroes/pyra.png" or "/summons/imp.png".
type Store struct {
	dir     string
	mu      sync.Mutex
	decoded map[string]*image.RGBA
	cache   map[string]*ebiten.Image
	missing map[string]bool

	// Size, when set, crops and scales every portrait to fill that box.
	Size image.Point
	// Smooth removes isolated speckles from upscaled portraits.
	Smooth bool
}

func New(dir string) *Store {
	return &Store{
		dir:     dir,
		decoded: make(map[string]*image.RGBA),
		cache:   make(map[string]*ebiten.Image),
		missing: make(map[string]bool),
	}
}

// Path resolves ref inside the data directory. Leading slashes and ".."
// elements never climb above it.
func (s *Store) Path(ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", fmt.Errorf("empty portrait reference")
	}
	clean := filepath.Clean("/" + filepath.FromSlash(ref))
	return filepath.Join(s.dir, clean), nil
}

// Decode reads and decodes the portrait named by ref without touching the
// GPU. Results, including failures, are remembered.
func (s *Store) Decode(ref string) (*image.RGBA, error) {
	s.mu.Lock()
	if img, ok := s.decoded[ref]; ok {
		s.mu.Unlock()
		return img, nil
	}
	if s.missing[ref] {
		s.mu.Unlock()
		return nil, fmt.Errorf("portrait %q unavailable", ref)
	}
	size, smooth := s.Size, s.Smooth
	s.mu.Unlock()

	img, err := s.load(ref, size, smooth)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		if !s.missing[ref] {
			log.Printf("portraits: %v", err)
		}
		s.missing[ref] = true
		return nil, err
	}
	s.decoded[ref] = img
	return img, nil
}

func (s *Store) load(ref string, size image.Point, smooth bool) (*image.RGBA, error) {
	p, err := s.Path(ref)
	if err != nil {
		return nil, err
	}
	src, err := imaging.Open(p)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", ref, err)
	}
	if size.X > 0 && size.Y > 0 {
		src = imaging.Fill(src, size.X, size.Y, imaging.Center, imaging.Lanczos)
	}
	b := src.Bounds()
	img := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(img, img.Bounds(), src, b.Min, draw.Src)
	if smooth {
		smoothSpeckles(img)
	}
	return img, nil
}

// Get returns the portrait for ref, or nil when it cannot be loaded. The
// caller draws a fallback tile in that case.
func (s *Store) Get(ref string) *ebiten.Image {
	if ref == "" {
		return nil
	}
	s.mu.Lock()
	if img, ok := s.cache[ref]; ok {
		s.mu.Unlock()
		return img
	}
	s.mu.Unlock()

	rgba, err := s.Decode(ref)
	if err != nil {
		return nil
	}
	eimg := ebiten.NewImageFromImage(rgba)
	s.mu.Lock()
	s.cache[ref] = eimg
	s.mu.Unlock()
	return eimg
}

// Preload decodes refs with at most workers files in flight. It returns the
// number of portraits that loaded.
func (s *Store) Preload(refs []string, workers int) int {
	if workers < 1 {
		workers = 1
	}
	swg := sizedwaitgroup.New(workers)
	var mu sync.Mutex
	n := 0
	seen := make(map[string]bool)
	for _, ref := range refs {
		if ref == "" || seen[ref] {
			continue
		}
		seen[ref] = true
		swg.Add()
		go func(ref string) {
			defer swg.Done()
			if _, err := s.Decode(ref); err == nil {
				mu.Lock()
				n++
				mu.Unlock()
			}
		}(ref)
	}
	swg.Wait()
	return n
}

// ClearCache drops every loaded portrait so they are read again on demand.
func (s *Store) ClearCache() {
	s.mu.Lock()
	for _, img := range s.cache {
		img.Deallocate()
	}
	s.cache = make(map[string]*ebiten.Image)
	s.decoded = make(map[string]*image.RGBA)
	s.missing = make(map[string]bool)
	s.mu.Unlock()
}

// Initials returns up to two letters used on the fallback tile.
func Initials(name string) string {
	var out []rune
	for _, w := range strings.Fields(name) {
		for _, r := range w {
			out = append(out, r)
			break
		}
		if len(out) == 2 {
			break
		}
	}
	return strings.ToUpper(string(out))
}

// TileColor picks a stable background for a hero's fallback tile.
func TileColor(name string) color.RGBA {
	var h uint32 = 2166136261
	for i := 0; i < len(name); i++ {
		h ^= uint32(name[i])
		h *= 16777619
	}
	return color.RGBA{R: 40 + uint8(h%80), G: 40 + uint8((h>>8)%80), B: 60 + uint8((h>>16)%100), A: 0xff}
}
