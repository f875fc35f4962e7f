package luma

import (
	"fmt"
	"strings"
)

// Method selects the threshold estimation strategy.
type Method uint8

const (
	// MethodValley uses the peak/valley heuristic with dark-ratio correction.
	MethodValley Method = iota

	// MethodOtsu maximizes the between-class variance.
	MethodOtsu
)

// String returns the configuration name of the method.
func (m Method) String() string {
	switch m {
	case MethodValley:
		return "valley"
	case MethodOtsu:
		return "otsu"
	default:
		return "unknown"
	}
}

// ParseMethod parses a method name as produced by [Method.String].
// The empty string selects MethodValley.
func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "valley":
		return MethodValley, nil
	case "otsu":
		return MethodOtsu, nil
	default:
		return 0, fmt.Errorf("luma: unknown threshold method %q", s)
	}
}

// Band is an inclusive clamp range for estimated thresholds.
type Band struct {
	Min, Max int
}

// DefaultBand keeps estimates away from the extremes of the luma range.
var DefaultBand = Band{Min: 40, Max: 200}

// Clamp returns v limited to the band.
func (b Band) Clamp(v int) int {
	if v < b.Min {
		return b.Min
	}
	if v > b.Max {
		return b.Max
	}
	return v
}

// Peak search ranges and defaults used when a range is empty.
const (
	backgroundLo      = 180
	backgroundHi      = 255
	backgroundDefault = 240

	foregroundLo      = 20
	foregroundHi      = 119
	foregroundDefault = 50
)

// Dark-ratio correction.
const (
	darkRatioHigh = 0.25
	darkRatioLow  = 0.02
	nudgeStep     = 15
	nudgeMargin   = 20
)

// Analysis describes the histogram features found by the valley heuristic.
type Analysis struct {
	BackgroundPeak int
	ForegroundPeak int
	Valley         int
}

// Analyze locates the background peak, the foreground peak and the valley
// between them.
//
// The valley is the bin of minimum count strictly between the peaks. When
// several bins share the minimum, the midpoint of the first and last of
// them is used, so an empty gap between two clean peaks lands in its middle.
func Analyze(h *Histogram) Analysis {
	a := Analysis{
		BackgroundPeak: h.argmax(backgroundLo, backgroundHi, backgroundDefault),
		ForegroundPeak: h.argmax(foregroundLo, foregroundHi, foregroundDefault),
	}

	lo, hi := a.ForegroundPeak, a.BackgroundPeak
	if lo > hi {
		lo, hi = hi, lo
	}
	a.Valley = (lo + hi) / 2
	if hi-lo < 2 {
		return a
	}

	minCount := h[lo+1]
	first, last := lo+1, lo+1
	for i := lo + 2; i < hi; i++ {
		switch {
		case h[i] < minCount:
			minCount, first, last = h[i], i, i
		case h[i] == minCount:
			last = i
		}
	}
	a.Valley = (first + last) / 2

	return a
}

// Estimate is the result of a threshold estimation.
type Estimate struct {
	// Threshold is the clamped estimate.
	Threshold int

	// Method is the strategy that produced Threshold.
	Method Method

	// Analysis holds the valley features (also filled for Otsu, for
	// diagnostics).
	Analysis Analysis

	// DarkRatio is the fraction of samples at or below the unclamped
	// candidate before correction. Zero for an empty histogram.
	DarkRatio float64
}

// EstimateThreshold derives a threshold from h with the given method and
// clamps it to band. It never fails: empty, flat and single-peak histograms
// all produce a value inside the band.
func EstimateThreshold(h *Histogram, m Method, band Band) Estimate {
	a := Analyze(h)
	e := Estimate{Method: m, Analysis: a}

	var t int
	switch m {
	case MethodOtsu:
		t = Otsu(h)
	default:
		e.Method = MethodValley
		t = a.Valley
	}

	if total := h.Total(); total > 0 {
		e.DarkRatio = float64(h.CountAtOrBelow(t)) / float64(total)
	}

	if e.Method == MethodValley {
		switch {
		case e.DarkRatio > darkRatioHigh:
			t = min(t+nudgeStep, a.BackgroundPeak-nudgeMargin)
		case e.DarkRatio < darkRatioLow:
			t = max(t-nudgeStep, a.ForegroundPeak+nudgeMargin)
		}
	}

	e.Threshold = band.Clamp(t)
	return e
}
