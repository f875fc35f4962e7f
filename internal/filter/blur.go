package filter

import "sync"

// BoxBlur applies a separable box blur of radius r to a single-channel
// 8-bit buffer and returns a new buffer of the same size.
//
// The window is truncated at the image edges: each output is the rounded
// mean of the in-bounds samples only. Both passes run a sliding sum, so the
// cost per pixel does not depend on r.
//
// For r <= 0 a copy of src is returned.
func BoxBlur(src []uint8, width, height, r int) []uint8 {
	dst := make([]uint8, len(src))
	if r <= 0 || width <= 0 || height <= 0 {
		copy(dst, src)
		return dst
	}

	temp := getTempBuffer(width * height)
	defer putTempBuffer(temp)

	// Pass 1: rows (src -> temp)
	for y := 0; y < height; y++ {
		row := y * width
		boxLine(src[row:row+width], temp[row:row+width], 1, width, r)
	}

	// Pass 2: columns (temp -> dst)
	for x := 0; x < width; x++ {
		boxColumn(temp, dst, x, width, height, r)
	}

	return dst
}

// boxLine blurs n samples spaced by stride from in into out.
func boxLine(in, out []uint8, stride, n, r int) {
	var acc, count int

	hi := r
	if hi > n-1 {
		hi = n - 1
	}
	for k := 0; k <= hi; k++ {
		acc += int(in[k*stride])
		count++
	}
	out[0] = roundDiv(acc, count)

	for i := 1; i < n; i++ {
		if drop := i - r - 1; drop >= 0 {
			acc -= int(in[drop*stride])
			count--
		}
		if add := i + r; add < n {
			acc += int(in[add*stride])
			count++
		}
		out[i*stride] = roundDiv(acc, count)
	}
}

// boxColumn blurs column x of a width-strided buffer.
func boxColumn(in, out []uint8, x, width, height, r int) {
	boxLine(in[x:], out[x:], width, height, r)
}

// roundDiv returns acc/count rounded half up.
func roundDiv(acc, count int) uint8 {
	// #nosec G115 -- mean of uint8 samples is always in [0, 255]
	return uint8((2*acc + count) / (2 * count))
}

// byteBuffer wraps a slice for sync.Pool to avoid allocation warnings.
type byteBuffer struct {
	data []uint8
}

// Temporary buffer pool for the row pass.
var tempBufferPool = sync.Pool{
	New: func() interface{} {
		return &byteBuffer{data: make([]uint8, 1024*1024)}
	},
}

// getTempBuffer retrieves a temporary buffer with at least size elements.
// The contents are not cleared: every element is written by the row pass.
func getTempBuffer(size int) []uint8 {
	wrapper := tempBufferPool.Get().(*byteBuffer)

	if len(wrapper.data) < size {
		// Need larger buffer - return old one and allocate new
		tempBufferPool.Put(wrapper)
		return make([]uint8, size)
	}

	return wrapper.data[:size]
}

// putTempBuffer returns a temporary buffer to the pool.
func putTempBuffer(buf []uint8) {
	// Only pool reasonably-sized buffers
	if cap(buf) <= 64*1024*1024 {
		tempBufferPool.Put(&byteBuffer{data: buf[:cap(buf)]})
	}
}
