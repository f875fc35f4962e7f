package softmask

// RemoveSmallComponents clears, in place, every 4-connected foreground
// component of bin whose pixel count is below minArea. It returns the
// number of components removed.
//
// Labeling uses an explicit stack, so stroke length never touches the
// goroutine stack depth.
func RemoveSmallComponents(bin []uint8, width, height, minArea int) int {
	if minArea <= 1 {
		return 0
	}

	visited := make([]bool, len(bin))
	var stack, members []int
	removed := 0

	for start := range bin {
		if bin[start] == 0 || visited[start] {
			continue
		}

		members = members[:0]
		stack = append(stack[:0], start)
		visited[start] = true

		for len(stack) > 0 {
			i := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			members = append(members, i)

			x, y := i%width, i/width
			if x > 0 {
				stack = push(stack, visited, bin, i-1)
			}
			if x < width-1 {
				stack = push(stack, visited, bin, i+1)
			}
			if y > 0 {
				stack = push(stack, visited, bin, i-width)
			}
			if y < height-1 {
				stack = push(stack, visited, bin, i+width)
			}
		}

		if len(members) < minArea {
			for _, i := range members {
				bin[i] = 0
			}
			removed++
		}
	}

	return removed
}

func push(stack []int, visited []bool, bin []uint8, i int) []int {
	if bin[i] == 0 || visited[i] {
		return stack
	}
	visited[i] = true
	return append(stack, i)
}
