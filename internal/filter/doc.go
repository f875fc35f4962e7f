// Package filter provides blur filters over single-channel 8-bit buffers.
//
// The box blur is separable and uses a sliding window, so the cost is
// O(w*h) regardless of radius. It softens soft masks before binarization
// and smooths the staircase of re-thresholded stroke masks.
package filter
