package softmask

import "testing"

func TestRemoveSmallComponents(t *testing.T) {
	w, h := 40, 40
	bin := make([]uint8, w*h)
	fillRect(bin, w, 2, 2, 12, 12)   // 100 px, kept
	fillRect(bin, w, 20, 20, 22, 22) // 4 px, removed
	bin[35*w+35] = 1                 // 1 px, removed
	// Diagonal neighbors are separate components under 4-connectivity.
	bin[30*w+5] = 1
	bin[31*w+6] = 1

	removed := RemoveSmallComponents(bin, w, h, 8)

	if removed != 4 {
		t.Errorf("removed = %d, want 4", removed)
	}
	if n := count(bin); n != 100 {
		t.Errorf("foreground = %d, want 100", n)
	}
	if bin[5*w+5] != 1 {
		t.Error("large component lost a pixel")
	}
}

func TestRemoveSmallComponentsAllOrNothing(t *testing.T) {
	w, h := 30, 6
	bin := make([]uint8, w*h)
	// An L shape of 9 pixels: one component.
	fillRect(bin, w, 1, 1, 8, 2)
	fillRect(bin, w, 1, 2, 2, 4)

	size := count(bin)
	removed := RemoveSmallComponents(bin, w, h, size+1)
	if removed != 1 || count(bin) != 0 {
		t.Errorf("removed = %d, left = %d; want 1 and 0", removed, count(bin))
	}
}

func TestRemoveSmallComponentsSinglePixelDot(t *testing.T) {
	w, h := 200, 200
	bin := make([]uint8, w*h)
	bin[100*w+100] = 1

	RemoveSmallComponents(bin, w, h, MinComponentArea(w, h, 0))
	if n := count(bin); n != 0 {
		t.Errorf("foreground = %d, want 0", n)
	}
}

func TestRemoveSmallComponentsCutoffOne(t *testing.T) {
	bin := []uint8{1, 0, 1}
	if removed := RemoveSmallComponents(bin, 3, 1, 1); removed != 0 {
		t.Errorf("removed = %d, want 0", removed)
	}
}
