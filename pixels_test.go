package inkcut

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

func TestNewPixelBuffer(t *testing.T) {
	pix := make([]uint8, 3*2*4)
	pb, err := NewPixelBuffer(3, 2, pix)
	if err != nil {
		t.Fatal(err)
	}
	if pb.Width() != 3 || pb.Height() != 2 || &pb.Data()[0] != &pix[0] {
		t.Error("NewPixelBuffer did not wrap pix")
	}

	for _, tc := range []struct{ w, h, n int }{{0, 2, 0}, {3, -1, 0}, {3, 2, 23}} {
		if _, err := NewPixelBuffer(tc.w, tc.h, make([]uint8, tc.n)); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("NewPixelBuffer(%d, %d, %d bytes) err = %v, want ErrInvalidInput", tc.w, tc.h, tc.n, err)
		}
	}
}

func TestPixelBufferFromImage(t *testing.T) {
	nrgba := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	pb, err := PixelBufferFromImage(nrgba)
	if err != nil {
		t.Fatal(err)
	}
	if &pb.Data()[0] != &nrgba.Pix[0] {
		t.Error("packed NRGBA was copied")
	}

	gray := image.NewGray(image.Rect(10, 10, 13, 12))
	gray.SetGray(11, 11, color.Gray{Y: 90})
	pb, err = PixelBufferFromImage(gray)
	if err != nil {
		t.Fatal(err)
	}
	if pb.Width() != 3 || pb.Height() != 2 {
		t.Fatalf("size = %dx%d, want 3x2", pb.Width(), pb.Height())
	}
	i := (1*3 + 1) * 4
	if got := pb.Data()[i : i+4]; got[0] != 90 || got[1] != 90 || got[2] != 90 || got[3] != 255 {
		t.Errorf("pixel (1,1) = %v, want [90 90 90 255]", got)
	}

	// A sub-image shares its parent's stride and must be repacked.
	sub := image.NewNRGBA(image.Rect(0, 0, 8, 8)).SubImage(image.Rect(2, 2, 5, 5))
	pb, err = PixelBufferFromImage(sub)
	if err != nil {
		t.Fatal(err)
	}
	if len(pb.Data()) != 3*3*4 {
		t.Errorf("len = %d, want %d", len(pb.Data()), 3*3*4)
	}
}
