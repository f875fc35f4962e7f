package inkcut

import (
	"fmt"
	"image"

	xdraw "golang.org/x/image/draw"
)

// ExportOptions configures packaging of an export mask.
type ExportOptions struct {
	// Width and Height are the output size for the full mask frame,
	// normally the display size of the image.
	Width  int
	Height int

	// Color is the solid fill.
	Color Color

	// FullFrame keeps the whole frame. By default the mask is cropped to
	// the bounding box of its nonzero pixels and the output shrinks by the
	// same ratio, trimming the surrounding paper.
	FullFrame bool
}

// Package turns an export mask into a color cutout.
//
// The mask is optionally cropped to its foreground bounding box, resampled
// to the output size with bilinear filtering (area-aware when shrinking),
// and used as the alpha channel of a solid Color fill. Pixels with zero
// alpha are fully transparent black, so only the coverage carries color.
//
// A cropped export of a mask with no foreground returns ErrEmptyMask.
func Package(m *Mask, opts ExportOptions) (*image.NRGBA, error) {
	if m == nil || m.width <= 0 || m.height <= 0 {
		return nil, fmt.Errorf("%w: empty mask", ErrInvalidInput)
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("%w: export size %dx%d", ErrInvalidInput, opts.Width, opts.Height)
	}

	src := m.Bounds()
	outW, outH := opts.Width, opts.Height

	if !opts.FullFrame {
		src = m.BoundingBox()
		if src.Empty() {
			return nil, ErrEmptyMask
		}
		sx := float64(opts.Width) / float64(m.width)
		sy := float64(opts.Height) / float64(m.height)
		outW = max(1, int(float64(src.Dx())*sx+0.5))
		outH = max(1, int(float64(src.Dy())*sy+0.5))
	}

	alpha := image.NewAlpha(image.Rect(0, 0, outW, outH))
	if outW == src.Dx() && outH == src.Dy() {
		xdraw.Copy(alpha, image.Point{}, m.Alpha(), src, xdraw.Src, nil)
	} else {
		xdraw.BiLinear.Scale(alpha, alpha.Bounds(), m.Alpha(), src, xdraw.Src, nil)
	}

	return composite(alpha.Pix, outW, outH, opts.Color), nil
}

// Colorize renders a mask at its own size as a color cutout, for preview
// display.
func Colorize(m *Mask, c Color) *image.NRGBA {
	return composite(m.data, m.width, m.height, c)
}

// composite fills color where alpha is nonzero and leaves the rest fully
// transparent.
func composite(alpha []uint8, width, height int, c Color) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	pix := img.Pix
	for i, a := range alpha[:width*height] {
		if a == 0 {
			continue
		}
		j := i * 4
		pix[j+0] = c.R
		pix[j+1] = c.G
		pix[j+2] = c.B
		pix[j+3] = a
	}
	return img
}
