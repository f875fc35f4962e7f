package inkcut

import (
	"fmt"
	"time"

	"github.com/gogpu/inkcut/internal/edt"
	"github.com/gogpu/inkcut/internal/filter"
	"github.com/gogpu/inkcut/internal/luma"
	"github.com/gogpu/inkcut/internal/softmask"
)

// reconstructBlurRadius is the radius of the box average applied to
// re-thresholded masks (a 3x3 window).
const reconstructBlurRadius = 1

// BuildInput is the input of a base build.
type BuildInput struct {
	// Pixels is the image at working resolution. Ownership passes to the
	// session.
	Pixels *PixelBuffer

	// PreviewWidth and PreviewHeight size the preview field. Zero derives
	// them from the working size and Params.Scale.
	PreviewWidth  int
	PreviewHeight int

	// Threshold overrides the estimated threshold when non-nil. The
	// estimator still runs and its result is reported in BaseInfo.
	Threshold *int
}

// BaseInfo describes a built base.
type BaseInfo struct {
	// Threshold is the threshold actually used.
	Threshold int

	// Estimated is the estimator's result, used or not.
	Estimated int

	// Overridden is true when Threshold came from BuildInput.Threshold.
	Overridden bool

	Method     luma.Method
	DarkRatio  float64
	Feather    float64
	BlurRadius int

	MinComponentArea  int
	RemovedComponents int

	// Foreground is the number of foreground pixels of the binary mask.
	Foreground int

	Width         int
	Height        int
	PreviewWidth  int
	PreviewHeight int
}

// base is the per-image state shared by every stroke offset request.
// It is built in full before it replaces the previous one.
type base struct {
	info BaseInfo

	alpha  []uint8 // working resolution, feathered coverage
	binary []uint8 // working resolution, cleaned 0/1 mask

	preview *edt.Field
	export  *edt.Field // computed on first export
}

// Session holds the base of the current image and serves stroke offset
// requests against it. Building replaces the base; offsets never mutate it.
//
// A Session is not safe for concurrent use. The Worker owns one inside its
// message loop.
type Session struct {
	params Params
	base   *base
}

// NewSession creates an empty session. Preview and Export fail with
// ErrNotReady until Build succeeds.
func NewSession(p Params) *Session {
	return &Session{params: p}
}

// Ready reports whether a base is available.
func (s *Session) Ready() bool {
	return s.base != nil
}

// Info returns the description of the current base.
func (s *Session) Info() (BaseInfo, bool) {
	if s.base == nil {
		return BaseInfo{}, false
	}
	return s.base.info, true
}

// Dispose drops the current base.
func (s *Session) Dispose() {
	s.base = nil
}

// Build runs grayscale reduction, threshold estimation, soft masking,
// cleanup and the preview distance transform, then replaces the current
// base. On error the previous base is kept.
func (s *Session) Build(in BuildInput) (BaseInfo, error) {
	b, err := s.prepare(in)
	if err != nil {
		return BaseInfo{}, err
	}
	s.install(b)
	return b.info, nil
}

// install makes b the current base.
func (s *Session) install(b *base) {
	s.base = b
}

// prepare builds a base without installing it.
func (s *Session) prepare(in BuildInput) (*base, error) {
	if in.Pixels == nil {
		return nil, fmt.Errorf("%w: nil pixel buffer", ErrInvalidInput)
	}
	if in.Threshold != nil && (*in.Threshold < 0 || *in.Threshold > 255) {
		return nil, fmt.Errorf("%w: threshold %d outside [0, 255]", ErrInvalidInput, *in.Threshold)
	}

	start := time.Now()
	w, h := in.Pixels.Width(), in.Pixels.Height()

	pw, ph := in.PreviewWidth, in.PreviewHeight
	if pw <= 0 || ph <= 0 {
		scale := max(1, s.params.Scale)
		pw = max(1, (w+scale/2)/scale)
		ph = max(1, (h+scale/2)/scale)
	}

	gray := luma.Gray(in.Pixels.Data())
	est := luma.EstimateThreshold(luma.Build(gray), s.params.method(), s.params.band())

	info := BaseInfo{
		Threshold:     est.Threshold,
		Estimated:     est.Threshold,
		Method:        est.Method,
		DarkRatio:     est.DarkRatio,
		Width:         w,
		Height:        h,
		PreviewWidth:  pw,
		PreviewHeight: ph,
	}
	if in.Threshold != nil {
		info.Threshold = *in.Threshold
		info.Overridden = true
	}

	info.Feather = softmask.Feather(w, h)
	info.BlurRadius = softmask.BlurRadius(w, h)
	alpha := softmask.Smoothstep(gray, info.Threshold, info.Feather)
	alpha = filter.BoxBlur(alpha, w, h, info.BlurRadius)

	binary := softmask.Open(softmask.Binarize(alpha, s.params.BinarizeCut), w, h)
	info.MinComponentArea = softmask.MinComponentArea(w, h, s.params.ComponentDivisor)
	info.RemovedComponents = softmask.RemoveSmallComponents(binary, w, h, info.MinComponentArea)
	for _, v := range binary {
		info.Foreground += int(v)
	}

	preview, err := edt.Signed(edt.DownsampleNearest(binary, w, h, pw, ph), pw, ph)
	if err != nil {
		return nil, fmt.Errorf("inkcut: preview field: %w", err)
	}

	Logger().Debug("inkcut: base built",
		"size", fmt.Sprintf("%dx%d", w, h),
		"preview", fmt.Sprintf("%dx%d", pw, ph),
		"threshold", info.Threshold,
		"estimated", info.Estimated,
		"removed", info.RemovedComponents,
		"elapsed", time.Since(start))

	return &base{
		info:    info,
		alpha:   alpha,
		binary:  binary,
		preview: preview,
	}, nil
}

// Preview re-thresholds the preview field at offset preview pixels.
func (s *Session) Preview(offset float64) (*Mask, error) {
	if s.base == nil {
		return nil, ErrNotReady
	}
	return reconstruct(s.base.preview, offset), nil
}

// Export re-thresholds the full-resolution field at offset working pixels.
// The field is computed from the binary mask on first use and cached in
// the base.
func (s *Session) Export(offset float64) (*Mask, error) {
	if s.base == nil {
		return nil, ErrNotReady
	}
	field, err := s.exportField()
	if err != nil {
		return nil, err
	}
	return reconstruct(field, offset), nil
}

func (s *Session) exportField() (*edt.Field, error) {
	b := s.base
	if b.export != nil {
		return b.export, nil
	}

	start := time.Now()
	field, err := edt.Signed(b.binary, b.info.Width, b.info.Height)
	if err != nil {
		return nil, fmt.Errorf("inkcut: export field: %w", err)
	}
	b.export = field

	Logger().Debug("inkcut: export field computed",
		"size", fmt.Sprintf("%dx%d", field.Width, field.Height),
		"elapsed", time.Since(start))
	return field, nil
}

// reconstruct thresholds f at offset and softens the staircase with a 3x3
// box average.
func reconstruct(f *edt.Field, offset float64) *Mask {
	hard := f.Threshold(offset)
	return wrapMask(f.Width, f.Height, filter.BoxBlur(hard, f.Width, f.Height, reconstructBlurRadius))
}
