// Package softmask turns a luma buffer and a threshold into a feathered
// alpha mask and then into a cleaned binary stroke mask.
//
// The pipeline is:
//
//	Smoothstep -> filter.BoxBlur -> Binarize -> Open -> RemoveSmallComponents
//
// Binary masks hold 1 for foreground and 0 for background. Feather width,
// blur radius and the minimum component area scale with the image size so
// the same parameters behave alike at any working resolution.
package softmask
