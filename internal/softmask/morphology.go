package softmask

// Open performs a 3x3 morphological opening (erosion then dilation) on a
// binary mask and returns the result.
//
// Neighbors outside the image are ignored, so a stroke touching the frame
// edge is not eroded by the border.
func Open(bin []uint8, width, height int) []uint8 {
	return dilate(erode(bin, width, height), width, height)
}

// erode keeps a foreground pixel only if every in-bounds pixel of its 3x3
// neighborhood is foreground.
func erode(bin []uint8, width, height int) []uint8 {
	out := make([]uint8, len(bin))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if bin[y*width+x] == 0 {
				continue
			}
			out[y*width+x] = 1
		scan:
			for yy := max(0, y-1); yy <= min(height-1, y+1); yy++ {
				for xx := max(0, x-1); xx <= min(width-1, x+1); xx++ {
					if bin[yy*width+xx] == 0 {
						out[y*width+x] = 0
						break scan
					}
				}
			}
		}
	}
	return out
}

// dilate sets a pixel to foreground if any pixel of its 3x3 neighborhood
// is foreground.
func dilate(bin []uint8, width, height int) []uint8 {
	out := make([]uint8, len(bin))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if bin[y*width+x] == 0 {
				continue
			}
			for yy := max(0, y-1); yy <= min(height-1, y+1); yy++ {
				for xx := max(0, x-1); xx <= min(width-1, x+1); xx++ {
					out[yy*width+xx] = 1
				}
			}
		}
	}
	return out
}
