package inkcut

import (
	"fmt"
	"image"
	"image/draw"
)

// PixelBuffer holds the RGBA samples of one image at working resolution.
// Samples are straight (non-premultiplied) alpha, 4 bytes per pixel.
//
// A PixelBuffer is treated as immutable once built. Posting it to a worker
// hands over ownership: the caller must not modify it afterwards.
type PixelBuffer struct {
	width  int
	height int
	data   []uint8
}

// NewPixelBuffer wraps pix as a width x height buffer without copying.
func NewPixelBuffer(width, height int, pix []uint8) (*PixelBuffer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: pixel buffer size %dx%d", ErrInvalidInput, width, height)
	}
	if len(pix) != width*height*4 {
		return nil, fmt.Errorf("%w: pixel buffer has %d bytes, want %d", ErrInvalidInput, len(pix), width*height*4)
	}
	return &PixelBuffer{width: width, height: height, data: pix}, nil
}

// PixelBufferFromImage converts any image to a PixelBuffer.
// A tightly packed *image.NRGBA at the origin is adopted without copying.
func PixelBufferFromImage(img image.Image) (*PixelBuffer, error) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	if n, ok := img.(*image.NRGBA); ok && b.Min == (image.Point{}) && n.Stride == w*4 {
		return NewPixelBuffer(w, h, n.Pix)
	}

	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return NewPixelBuffer(w, h, dst.Pix)
}

// Width returns the width of the buffer.
func (p *PixelBuffer) Width() int {
	return p.width
}

// Height returns the height of the buffer.
func (p *PixelBuffer) Height() int {
	return p.height
}

// Data returns the raw pixel data (RGBA format).
func (p *PixelBuffer) Data() []uint8 {
	return p.data
}
