package edt

import "math"

// Inf is the cost assigned to non-site samples. It is far above any squared
// distance reachable inside an image, yet small enough that the envelope
// intersections stay exact in float64.
const Inf = 1e12

// envelopeInf bounds the envelope breakpoints.
const envelopeInf = math.MaxFloat64

// scratch holds the per-line buffers of the 1-D transform so a 2-D pass
// allocates them once.
type scratch struct {
	f []float64 // input line
	d []float64 // output line
	v []int     // parabola vertices of the envelope
	z []float64 // breakpoints between envelope parabolas
}

func newScratch(n int) *scratch {
	return &scratch{
		f: make([]float64, n),
		d: make([]float64, n),
		v: make([]int, n),
		z: make([]float64, n+1),
	}
}

// transform1D computes d[q] = min_p (q-p)^2 + f[p] for q in [0, n).
//
// The lower envelope of the parabolas rooted at each p is kept on a stack
// (v holds the roots, z the breakpoints); each parabola is pushed once and
// popped at most once, so the cost is linear in n.
func transform1D(f, d []float64, v []int, z []float64, n int) {
	if n == 0 {
		return
	}

	k := 0
	v[0] = 0
	z[0] = -envelopeInf
	z[1] = envelopeInf

	for q := 1; q < n; q++ {
		s := intersect(f, q, v[k])
		for s <= z[k] {
			k--
			s = intersect(f, q, v[k])
		}
		k++
		v[k] = q
		z[k] = s
		z[k+1] = envelopeInf
	}

	k = 0
	for q := 0; q < n; q++ {
		for z[k+1] < float64(q) {
			k++
		}
		dq := float64(q - v[k])
		d[q] = dq*dq + f[v[k]]
	}
}

// intersect returns the abscissa where the parabolas rooted at q and p meet.
func intersect(f []float64, q, p int) float64 {
	fq, fp := float64(q), float64(p)
	return ((f[q] + fq*fq) - (f[p] + fp*fp)) / (2*fq - 2*fp)
}

// SquaredDistance returns, for every pixel of a width x height mask, the
// squared Euclidean distance to the nearest pixel whose value equals site.
// Pixels with no site anywhere in the mask get a value >= Inf.
func SquaredDistance(mask []uint8, width, height int, site uint8) []float64 {
	grid := make([]float64, width*height)
	for i, m := range mask {
		if m == site {
			grid[i] = 0
		} else {
			grid[i] = Inf
		}
	}

	s := newScratch(max(width, height))

	// Columns
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			s.f[y] = grid[y*width+x]
		}
		transform1D(s.f, s.d, s.v, s.z, height)
		for y := 0; y < height; y++ {
			grid[y*width+x] = s.d[y]
		}
	}

	// Rows
	for y := 0; y < height; y++ {
		row := grid[y*width : (y+1)*width]
		copy(s.f, row)
		transform1D(s.f, s.d, s.v, s.z, width)
		copy(row, s.d[:width])
	}

	return grid
}
