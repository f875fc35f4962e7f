// Package luma reduces RGBA pixels to 8-bit luma and estimates a
// foreground/background threshold from the luma histogram.
//
// Two estimators are available:
//   - Valley: background peak in the bright range, foreground peak in the
//     dark range, threshold at the histogram valley between them, corrected
//     by the fraction of dark pixels.
//   - Otsu: global threshold maximizing between-class variance.
//
// Every estimate is clamped to a [Band] so that degenerate histograms never
// produce an all-foreground or all-background split.
package luma
