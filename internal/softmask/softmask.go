package softmask

import "math"

// Feather sizing: sqrt(area)/featherDivisor clamped to [featherMin, featherMax].
const (
	featherDivisor = 200
	featherMin     = 4
	featherMax     = 12
)

// Blur sizing: max(1, floor(sqrt(area)/blurDivisor)).
const blurDivisor = 1000

// DefaultCut is the alpha level above which a pixel is foreground.
const DefaultCut = 128

// DefaultComponentDivisor sets the minimum component area to area/5000.
const DefaultComponentDivisor = 5000

// Feather returns the half-width of the smoothstep transition for an image
// of the given size.
func Feather(width, height int) float64 {
	f := math.Sqrt(float64(width)*float64(height)) / featherDivisor
	return math.Max(featherMin, math.Min(featherMax, f))
}

// BlurRadius returns the box blur radius applied to the soft mask.
func BlurRadius(width, height int) int {
	r := int(math.Sqrt(float64(width)*float64(height)) / blurDivisor)
	return max(1, r)
}

// MinComponentArea returns the smallest connected component that survives
// cleanup. divisor <= 0 selects DefaultComponentDivisor.
func MinComponentArea(width, height, divisor int) int {
	if divisor <= 0 {
		divisor = DefaultComponentDivisor
	}
	return max(1, width*height/divisor)
}

// Smoothstep maps luma to coverage around threshold.
//
// Luma <= threshold-feather is fully opaque (255), luma >= threshold+feather
// fully transparent (0), and values in between follow 1 - smoothstep of the
// normalized position. A non-positive feather degenerates to a hard cut at
// threshold.
func Smoothstep(gray []uint8, threshold int, feather float64) []uint8 {
	alpha := make([]uint8, len(gray))

	if feather <= 0 {
		for i, g := range gray {
			if int(g) <= threshold {
				alpha[i] = 255
			}
		}
		return alpha
	}

	lo := float64(threshold) - feather
	hi := float64(threshold) + feather

	// 256-entry lookup: the curve depends only on the luma value.
	var lut [256]uint8
	for g := range lut {
		v := float64(g)
		switch {
		case v <= lo:
			lut[g] = 255
		case v >= hi:
			lut[g] = 0
		default:
			t := (v - lo) / (hi - lo)
			// #nosec G115 -- value is in [0, 255]
			lut[g] = uint8(math.Round(255 * (1 - t*t*(3-2*t))))
		}
	}

	for i, g := range gray {
		alpha[i] = lut[g]
	}
	return alpha
}

// Binarize returns 1 where alpha > cut and 0 elsewhere.
func Binarize(alpha []uint8, cut uint8) []uint8 {
	bin := make([]uint8, len(alpha))
	for i, a := range alpha {
		if a > cut {
			bin[i] = 1
		}
	}
	return bin
}
