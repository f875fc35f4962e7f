package edt

import (
	"errors"
	"math"
)

// ErrSize is returned for non-positive dimensions or a mask whose length
// does not match them.
var ErrSize = errors.New("edt: mask size does not match dimensions")

// boundaryShift moves the zero level from pixel centers to pixel edges.
const boundaryShift = 0.5

// Field is a signed distance field: positive on foreground pixels, negative
// on background pixels, in pixels of its own resolution.
type Field struct {
	Width  int
	Height int
	Dist   []float32
}

// Signed computes the signed distance field of a binary mask (nonzero is
// foreground).
//
// Foreground pixels get their distance to the nearest background pixel,
// background pixels the negated distance to the nearest foreground pixel,
// both reduced by half a pixel so the zero level sits on the shared pixel
// edge. An all-foreground mask yields a field of large positive values, an
// all-background mask one of large negative values.
func Signed(mask []uint8, width, height int) (*Field, error) {
	if width <= 0 || height <= 0 || len(mask) != width*height {
		return nil, ErrSize
	}

	bin := make([]uint8, len(mask))
	for i, m := range mask {
		if m != 0 {
			bin[i] = 1
		}
	}

	toForeground := SquaredDistance(bin, width, height, 1)
	toBackground := SquaredDistance(bin, width, height, 0)

	dist := make([]float32, len(bin))
	for i, b := range bin {
		if b != 0 {
			dist[i] = float32(math.Sqrt(toBackground[i]) - boundaryShift)
		} else {
			dist[i] = float32(boundaryShift - math.Sqrt(toForeground[i]))
		}
	}

	return &Field{Width: width, Height: height, Dist: dist}, nil
}

// Threshold returns a mask with 255 where dist >= -offset and 0 elsewhere.
// Positive offsets grow the foreground by offset pixels, negative offsets
// shrink it.
func (f *Field) Threshold(offset float64) []uint8 {
	out := make([]uint8, len(f.Dist))
	limit := float32(-offset)
	for i, d := range f.Dist {
		if d >= limit {
			out[i] = 255
		}
	}
	return out
}

// DownsampleNearest resamples a mask to dw x dh by nearest neighbor.
// Sample (i, j) reads source pixel (floor(i*sw/dw), floor(j*sh/dh)).
func DownsampleNearest(src []uint8, sw, sh, dw, dh int) []uint8 {
	dst := make([]uint8, dw*dh)
	xRatio := float64(sw) / float64(dw)
	yRatio := float64(sh) / float64(dh)

	for j := 0; j < dh; j++ {
		sy := min(sh-1, int(float64(j)*yRatio))
		for i := 0; i < dw; i++ {
			sx := min(sw-1, int(float64(i)*xRatio))
			dst[j*dw+i] = src[sy*sw+sx]
		}
	}
	return dst
}
