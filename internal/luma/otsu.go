package luma

// Otsu returns the threshold maximizing the between-class variance of h.
// Pixels <= threshold form the dark class. An empty or single-valued
// histogram returns 127.
func Otsu(h *Histogram) int {
	total := float64(h.Total())
	if total == 0 {
		return 127
	}

	var sum float64
	for i, c := range h {
		sum += float64(i) * float64(c)
	}

	var (
		sumB, wB, varMax float64
		threshold        = 127
	)
	for t, c := range h {
		wB += float64(c)
		if wB == 0 {
			continue
		}
		wF := total - wB
		if wF == 0 {
			break
		}

		sumB += float64(t) * float64(c)
		mB := sumB / wB
		mF := (sum - sumB) / wF
		between := wB * wF * (mB - mF) * (mB - mF)
		if between > varMax {
			varMax = between
			threshold = t
		}
	}

	return threshold
}
