package inkcut

import (
	"errors"
	"image"
	"testing"
)

// blockMask returns a w x h mask with value v on [x0,x1) x [y0,y1).
func blockMask(w, h, x0, y0, x1, y1 int, v uint8) *Mask {
	m := newMask(w, h)
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			m.set(x, y, v)
		}
	}
	return m
}

func TestPackageCrop(t *testing.T) {
	m := blockMask(400, 200, 100, 40, 180, 120, 255)

	img, err := Package(m, ExportOptions{Width: 100, Height: 50, Color: Color{R: 10, G: 20, B: 30}})
	if err != nil {
		t.Fatal(err)
	}
	if got, want := img.Bounds(), image.Rect(0, 0, 20, 20); got != want {
		t.Errorf("bounds = %v, want %v", got, want)
	}
	c := img.NRGBAAt(10, 10)
	if c.R != 10 || c.G != 20 || c.B != 30 || c.A != 255 {
		t.Errorf("center = %v, want opaque #0a141e", c)
	}
}

func TestPackageFullFrame(t *testing.T) {
	m := blockMask(400, 200, 100, 40, 180, 120, 255)

	img, err := Package(m, ExportOptions{Width: 100, Height: 50, FullFrame: true})
	if err != nil {
		t.Fatal(err)
	}
	if got, want := img.Bounds(), image.Rect(0, 0, 100, 50); got != want {
		t.Errorf("bounds = %v, want %v", got, want)
	}
	if a := img.NRGBAAt(0, 0).A; a != 0 {
		t.Errorf("corner alpha = %d, want 0", a)
	}
	if a := img.NRGBAAt(35, 20).A; a != 255 {
		t.Errorf("inside alpha = %d, want 255", a)
	}
}

func TestPackageSameSizeCopies(t *testing.T) {
	m := blockMask(10, 10, 2, 3, 5, 7, 200)

	img, err := Package(m, ExportOptions{Width: 10, Height: 10, FullFrame: true})
	if err != nil {
		t.Fatal(err)
	}
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			if got, want := img.NRGBAAt(x, y).A, m.at(x, y); got != want {
				t.Fatalf("alpha(%d,%d) = %d, want %d", x, y, got, want)
			}
		}
	}
}

func TestPackageEmptyMask(t *testing.T) {
	m := newMask(32, 32)

	if _, err := Package(m, ExportOptions{Width: 8, Height: 8}); !errors.Is(err, ErrEmptyMask) {
		t.Errorf("cropped: err = %v, want ErrEmptyMask", err)
	}
	img, err := Package(m, ExportOptions{Width: 8, Height: 8, FullFrame: true})
	if err != nil {
		t.Fatalf("full frame: %v", err)
	}
	for _, v := range img.Pix {
		if v != 0 {
			t.Fatal("full-frame export of an empty mask is not transparent")
		}
	}
}

func TestPackageInvalid(t *testing.T) {
	if _, err := Package(nil, ExportOptions{Width: 1, Height: 1}); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("nil mask: err = %v, want ErrInvalidInput", err)
	}
	if _, err := Package(newMask(4, 4), ExportOptions{}); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("zero size: err = %v, want ErrInvalidInput", err)
	}
}

// Changing the color only changes RGB where alpha is nonzero.
func TestPackageColorIndependent(t *testing.T) {
	s, _ := newBuiltSession(t, BuildInput{Pixels: squareImage(t, 200, 200, 40)})
	m, err := s.Export(1)
	if err != nil {
		t.Fatal(err)
	}

	opts := ExportOptions{Width: 50, Height: 50}
	opts.Color = Color{R: 255}
	red, err := Package(m, opts)
	if err != nil {
		t.Fatal(err)
	}
	opts.Color = Color{B: 255}
	blue, err := Package(m, opts)
	if err != nil {
		t.Fatal(err)
	}

	if red.Bounds() != blue.Bounds() {
		t.Fatalf("bounds differ: %v vs %v", red.Bounds(), blue.Bounds())
	}
	for i := 0; i < len(red.Pix); i += 4 {
		r, b := red.Pix[i:i+4], blue.Pix[i:i+4]
		if r[3] != b[3] {
			t.Fatalf("alpha differs at %d: %d vs %d", i/4, r[3], b[3])
		}
		if r[3] == 0 {
			if r[0]|r[1]|r[2]|b[0]|b[1]|b[2] != 0 {
				t.Fatalf("transparent pixel %d carries color", i/4)
			}
			continue
		}
		if r[0] != 255 || r[2] != 0 || b[0] != 0 || b[2] != 255 {
			t.Fatalf("pixel %d: red %v blue %v", i/4, r, b)
		}
	}
}

func TestColorize(t *testing.T) {
	m := blockMask(6, 4, 1, 1, 3, 3, 128)

	img := Colorize(m, Color{G: 99})
	if img.Bounds() != m.Bounds() {
		t.Fatalf("bounds = %v, want %v", img.Bounds(), m.Bounds())
	}
	if c := img.NRGBAAt(2, 2); c.G != 99 || c.A != 128 {
		t.Errorf("inside = %v, want G 99 A 128", c)
	}
	if c := img.NRGBAAt(5, 3); c.G != 0 || c.A != 0 {
		t.Errorf("outside = %v, want transparent", c)
	}
}
