package luma

// Histogram is a 256-bin count of luma values.
type Histogram [256]uint32

// Build counts every luma value in gray.
func Build(gray []uint8) *Histogram {
	var h Histogram
	for _, v := range gray {
		h[v]++
	}
	return &h
}

// Total returns the number of samples in the histogram.
func (h *Histogram) Total() uint64 {
	var n uint64
	for _, c := range h {
		n += uint64(c)
	}
	return n
}

// CountAtOrBelow returns the number of samples with luma <= v.
func (h *Histogram) CountAtOrBelow(v int) uint64 {
	if v > 255 {
		v = 255
	}
	var n uint64
	for i := 0; i <= v; i++ {
		n += uint64(h[i])
	}
	return n
}

// argmax returns the first bin in [lo, hi] with the strictly largest
// count, or def when every bin in the range is empty.
func (h *Histogram) argmax(lo, hi, def int) int {
	best, bestCount := def, uint32(0)
	for i := lo; i <= hi; i++ {
		if h[i] > bestCount {
			best, bestCount = i, h[i]
		}
	}
	return best
}
