package luma

// Rec. 709 luma weights.
const (
	weightR = 0.2126
	weightG = 0.7152
	weightB = 0.0722
)

// Gray converts tightly packed RGBA samples (4 bytes per pixel, straight
// alpha) into one luma byte per pixel.
//
// Partially transparent pixels are composited over white paper first, so a
// transparent background reads as background rather than as black ink.
// Trailing bytes that do not form a whole pixel are ignored.
func Gray(pix []uint8) []uint8 {
	n := len(pix) / 4
	gray := make([]uint8, n)

	for i, j := 0, 0; j < n; i, j = i+4, j+1 {
		y := weightR*float64(pix[i]) + weightG*float64(pix[i+1]) + weightB*float64(pix[i+2])
		if a := pix[i+3]; a != 255 {
			fa := float64(a) / 255
			y = y*fa + 255*(1-fa)
		}
		// #nosec G115 -- weighted mean of bytes is in [0, 255]
		gray[j] = uint8(y)
	}

	return gray
}
