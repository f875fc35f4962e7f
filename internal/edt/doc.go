// Package edt computes exact Euclidean distance transforms and signed
// distance fields over binary masks.
//
// The 1-D transform is the lower envelope of parabolas of Felzenszwalb and
// Huttenlocher and runs in linear time. The 2-D transform applies it down
// every column and then across every row of the column result.
//
// A signed field is positive on foreground and negative on background with
// its zero level on pixel edges. Re-thresholding it at -offset dilates
// (offset > 0) or erodes (offset < 0) the mask by offset pixels in O(1) per
// pixel.
//
// The engine is resolution agnostic: callers run it separately at every
// resolution they need instead of resampling a field.
package edt
