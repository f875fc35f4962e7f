package inkcut

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/gogpu/inkcut/internal/luma"
	"github.com/gogpu/inkcut/internal/softmask"
)

// Params holds the tunables of the extraction pipeline and the worker.
// The zero value is not useful; start from DefaultParams.
//
// Params can be loaded from YAML with LoadParams:
//
//	scale: 4
//	threshold:
//	  method: otsu
//	  min: 40
//	  max: 200
//	timeouts:
//	  build: 30s
//	  preview: 15s
//	  export: 30s
type Params struct {
	// Scale is the supersampling factor between display and working
	// resolution.
	Scale int `yaml:"scale"`

	// MaxDisplayDim caps the long edge of the display image in pixels.
	MaxDisplayDim int `yaml:"max_display_dim"`

	Threshold ThresholdParams `yaml:"threshold"`

	// BinarizeCut is the alpha level above which a pixel is foreground.
	BinarizeCut uint8 `yaml:"binarize_cut"`

	// ComponentDivisor sets the minimum kept component area to
	// working area / ComponentDivisor.
	ComponentDivisor int `yaml:"component_divisor"`

	// FullFrame disables cropping to the foreground bounding box on export.
	FullFrame bool `yaml:"full_frame"`

	Timeouts Timeouts `yaml:"timeouts"`

	// PreviewDebounce coalesces stroke offset changes before a preview.
	PreviewDebounce time.Duration `yaml:"preview_debounce"`

	// QueueSize is the capacity of the worker request channel.
	QueueSize int `yaml:"queue_size"`
}

// ThresholdParams configures threshold estimation.
type ThresholdParams struct {
	// Method is "valley" or "otsu".
	Method string `yaml:"method"`

	// Min and Max bound the estimated threshold.
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

// Timeouts bounds each request kind.
type Timeouts struct {
	Build   time.Duration `yaml:"build"`
	Preview time.Duration `yaml:"preview"`
	Export  time.Duration `yaml:"export"`
}

// DefaultParams returns the default pipeline parameters.
func DefaultParams() Params {
	return Params{
		Scale:         4,
		MaxDisplayDim: 2000,
		Threshold: ThresholdParams{
			Method: luma.MethodValley.String(),
			Min:    luma.DefaultBand.Min,
			Max:    luma.DefaultBand.Max,
		},
		BinarizeCut:      softmask.DefaultCut,
		ComponentDivisor: softmask.DefaultComponentDivisor,
		Timeouts: Timeouts{
			Build:   30 * time.Second,
			Preview: 15 * time.Second,
			Export:  30 * time.Second,
		},
		PreviewDebounce: 80 * time.Millisecond,
		QueueSize:       16,
	}
}

// LoadParams reads YAML parameters from path on top of DefaultParams and
// validates the result.
func LoadParams(path string) (Params, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return Params{}, fmt.Errorf("inkcut: read params: %w", err)
	}
	return ParseParams(data)
}

// ParseParams decodes YAML parameters on top of DefaultParams and validates
// the result.
func ParseParams(data []byte) (Params, error) {
	p := DefaultParams()
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Params{}, fmt.Errorf("inkcut: decode params: %w", err)
	}
	if err := p.Validate(); err != nil {
		return Params{}, err
	}
	return p, nil
}

// Validate reports the first invalid field.
func (p Params) Validate() error {
	switch {
	case p.Scale < 1:
		return fmt.Errorf("%w: scale %d < 1", ErrInvalidInput, p.Scale)
	case p.MaxDisplayDim < 1:
		return fmt.Errorf("%w: max_display_dim %d < 1", ErrInvalidInput, p.MaxDisplayDim)
	case p.Threshold.Min < 0 || p.Threshold.Max > 255 || p.Threshold.Min > p.Threshold.Max:
		return fmt.Errorf("%w: threshold band [%d, %d]", ErrInvalidInput, p.Threshold.Min, p.Threshold.Max)
	case p.ComponentDivisor < 1:
		return fmt.Errorf("%w: component_divisor %d < 1", ErrInvalidInput, p.ComponentDivisor)
	case p.Timeouts.Build <= 0 || p.Timeouts.Preview <= 0 || p.Timeouts.Export <= 0:
		return fmt.Errorf("%w: timeouts must be positive", ErrInvalidInput)
	case p.PreviewDebounce < 0:
		return fmt.Errorf("%w: preview_debounce %v < 0", ErrInvalidInput, p.PreviewDebounce)
	case p.QueueSize < 1:
		return fmt.Errorf("%w: queue_size %d < 1", ErrInvalidInput, p.QueueSize)
	}
	if _, err := luma.ParseMethod(p.Threshold.Method); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return nil
}

// method returns the parsed threshold method, falling back to the valley
// heuristic for values Validate would reject.
func (p Params) method() luma.Method {
	m, err := luma.ParseMethod(p.Threshold.Method)
	if err != nil {
		return luma.MethodValley
	}
	return m
}

func (p Params) band() luma.Band {
	return luma.Band{Min: p.Threshold.Min, Max: p.Threshold.Max}
}

// WorkingStroke converts a stroke offset in display pixels to working
// pixels, rounded to whole pixels.
func (p Params) WorkingStroke(displayPx float64) float64 {
	return math.Round(displayPx * float64(p.Scale))
}

// DisplaySize returns the display size for an image of w x h pixels, with
// the long edge capped at MaxDisplayDim. Images are never enlarged.
func (p Params) DisplaySize(w, h int) (int, int) {
	long := max(w, h)
	if long <= p.MaxDisplayDim || long == 0 {
		return w, h
	}
	ratio := float64(p.MaxDisplayDim) / float64(long)
	return max(1, int(float64(w)*ratio+0.5)), max(1, int(float64(h)*ratio+0.5))
}
