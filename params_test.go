package inkcut

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultParamsValid(t *testing.T) {
	p := DefaultParams()
	if err := p.Validate(); err != nil {
		t.Fatalf("DefaultParams().Validate() = %v", err)
	}
	if p.Scale != 4 || p.MaxDisplayDim != 2000 || p.PreviewDebounce != 80*time.Millisecond {
		t.Errorf("unexpected defaults: %+v", p)
	}
}

func TestParseParams(t *testing.T) {
	data := []byte(`
scale: 2
threshold:
  method: otsu
  max: 180
timeouts:
  preview: 2s
preview_debounce: 120ms
full_frame: true
`)
	p, err := ParseParams(data)
	if err != nil {
		t.Fatalf("ParseParams: %v", err)
	}

	if p.Scale != 2 || !p.FullFrame {
		t.Errorf("scale=%d full_frame=%v", p.Scale, p.FullFrame)
	}
	if p.Threshold.Method != "otsu" || p.Threshold.Min != 40 || p.Threshold.Max != 180 {
		t.Errorf("threshold = %+v", p.Threshold)
	}
	if p.Timeouts.Preview != 2*time.Second || p.Timeouts.Build != 30*time.Second {
		t.Errorf("timeouts = %+v", p.Timeouts)
	}
	if p.PreviewDebounce != 120*time.Millisecond {
		t.Errorf("preview_debounce = %v", p.PreviewDebounce)
	}
}

func TestParseParamsInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"scale", "scale: 0"},
		{"band", "threshold: {min: 150, max: 100}"},
		{"band range", "threshold: {max: 300}"},
		{"method", "threshold: {method: triangle}"},
		{"divisor", "component_divisor: 0"},
		{"timeout", "timeouts: {export: 0s}"},
		{"queue", "queue_size: 0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseParams([]byte(tt.yaml)); !errors.Is(err, ErrInvalidInput) {
				t.Errorf("err = %v, want ErrInvalidInput", err)
			}
		})
	}

	if _, err := ParseParams([]byte("scale: [")); err == nil {
		t.Error("malformed YAML accepted")
	}
}

func TestLoadParams(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inkcut.yaml")
	if err := os.WriteFile(path, []byte("max_display_dim: 1000\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	p, err := LoadParams(path)
	if err != nil {
		t.Fatalf("LoadParams: %v", err)
	}
	if p.MaxDisplayDim != 1000 || p.Scale != 4 {
		t.Errorf("got max_display_dim=%d scale=%d", p.MaxDisplayDim, p.Scale)
	}

	if _, err := LoadParams(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("LoadParams of a missing file succeeded")
	}
}

func TestWorkingStroke(t *testing.T) {
	p := DefaultParams()
	tests := []struct {
		display float64
		want    float64
	}{
		{0, 0},
		{1, 4},
		{0.3, 1},
		{0.6, 2},
		{-1.4, -6},
		{-0.1, 0},
	}
	for _, tt := range tests {
		if got := p.WorkingStroke(tt.display); got != tt.want {
			t.Errorf("WorkingStroke(%v) = %v, want %v", tt.display, got, tt.want)
		}
	}
}

func TestDisplaySize(t *testing.T) {
	p := DefaultParams()
	tests := []struct {
		w, h         int
		wantW, wantH int
	}{
		{800, 600, 800, 600},
		{2000, 1000, 2000, 1000},
		{4000, 3000, 2000, 1500},
		{3000, 6000, 1000, 2000},
		{10000, 1, 2000, 1},
	}
	for _, tt := range tests {
		w, h := p.DisplaySize(tt.w, tt.h)
		if w != tt.wantW || h != tt.wantH {
			t.Errorf("DisplaySize(%d, %d) = %dx%d, want %dx%d", tt.w, tt.h, w, h, tt.wantW, tt.wantH)
		}
	}
}
