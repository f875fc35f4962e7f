package inkcut

import "testing"

// paper returns a white working-resolution buffer.
func paper(t *testing.T, w, h int) *PixelBuffer {
	t.Helper()
	pix := make([]uint8, w*h*4)
	for i := range pix {
		pix[i] = 255
	}
	pb, err := NewPixelBuffer(w, h, pix)
	if err != nil {
		t.Fatalf("NewPixelBuffer: %v", err)
	}
	return pb
}

// ink paints an opaque black rectangle [x0,x1) x [y0,y1).
func ink(pb *PixelBuffer, x0, y0, x1, y1 int) {
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			i := (y*pb.width + x) * 4
			pb.data[i+0] = 0
			pb.data[i+1] = 0
			pb.data[i+2] = 0
		}
	}
}

// squareImage is a w x h white image with a black square of the given
// side centered in it.
func squareImage(t *testing.T, w, h, side int) *PixelBuffer {
	t.Helper()
	pb := paper(t, w, h)
	x0, y0 := (w-side)/2, (h-side)/2
	ink(pb, x0, y0, x0+side, y0+side)
	return pb
}

// rowSpan counts pixels >= 128 on row y.
func rowSpan(m *Mask, y int) int {
	n := 0
	for x := 0; x < m.Width(); x++ {
		if m.at(x, y) >= 128 {
			n++
		}
	}
	return n
}

func intPtr(v int) *int { return &v }

func newMask(w, h int) *Mask { return wrapMask(w, h, make([]uint8, w*h)) }

// at returns the value at (x, y), or 0 outside the mask.
func (m *Mask) at(x, y int) uint8 {
	if x < 0 || x >= m.width || y < 0 || y >= m.height {
		return 0
	}
	return m.data[y*m.width+x]
}

// set writes v at (x, y), ignoring coordinates outside the mask.
func (m *Mask) set(x, y int, v uint8) {
	if x < 0 || x >= m.width || y < 0 || y >= m.height {
		return
	}
	m.data[y*m.width+x] = v
}
