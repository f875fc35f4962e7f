package inkcut

import "image"

// Mask is an 8-bit alpha mask. Values range from 0 (background) to 255
// (foreground).
type Mask struct {
	width  int
	height int
	data   []uint8
}

// wrapMask takes ownership of data as a width x height mask.
func wrapMask(width, height int, data []uint8) *Mask {
	return &Mask{width: width, height: height, data: data}
}

// Bounds returns the mask dimensions as an image.Rectangle.
func (m *Mask) Bounds() image.Rectangle {
	return image.Rect(0, 0, m.width, m.height)
}

// Width returns the mask width.
func (m *Mask) Width() int { return m.width }

// Height returns the mask height.
func (m *Mask) Height() int { return m.height }

// Data returns the underlying mask data slice, row-major, one byte per pixel.
func (m *Mask) Data() []uint8 {
	return m.data
}

// Alpha returns an *image.Alpha view sharing the mask data.
func (m *Mask) Alpha() *image.Alpha {
	return &image.Alpha{
		Pix:    m.data,
		Stride: m.width,
		Rect:   m.Bounds(),
	}
}

// Count returns the number of pixels with a value >= level.
func (m *Mask) Count(level uint8) int {
	n := 0
	for _, v := range m.data {
		if v >= level {
			n++
		}
	}
	return n
}

// BoundingBox returns the tight bounding box of nonzero pixels, or an empty
// rectangle when the mask has none.
func (m *Mask) BoundingBox() image.Rectangle {
	minX, minY := m.width, m.height
	maxX, maxY := -1, -1

	for y := 0; y < m.height; y++ {
		row := m.data[y*m.width : (y+1)*m.width]
		for x, v := range row {
			if v == 0 {
				continue
			}
			minX = min(minX, x)
			maxX = max(maxX, x)
			minY = min(minY, y)
			maxY = max(maxY, y)
		}
	}

	if maxX < minX || maxY < minY {
		return image.Rectangle{}
	}
	return image.Rect(minX, minY, maxX+1, maxY+1)
}
