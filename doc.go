// Package inkcut extracts a foreground stroke mask, such as a signature,
// from a photographed or scanned image and re-renders it at any stroke
// thickness as a solid-color cutout.
//
// # Overview
//
// A base is built once per image at working resolution (display size
// times [Params.Scale]):
//
//	pixels -> luma -> threshold -> soft mask -> binary mask -> preview SDF
//
// The signed distance field (SDF) is positive on the stroke and negative on
// the paper. Thickening or thinning the stroke by k pixels is a single
// comparison per pixel against the field, so a slider can move freely
// without rebuilding the base. The full-resolution field used for export is
// computed on the first export, from the full-resolution mask rather than
// by upsampling the preview field.
//
// # Quick Start
//
//	c, err := inkcut.NewClient(inkcut.DefaultParams())
//	if err != nil {
//	    return err
//	}
//	defer c.Close()
//
//	pix, _ := inkcut.PixelBufferFromImage(img)
//	info, err := c.BuildBase(ctx, inkcut.BuildInput{Pixels: pix})
//	preview, err := c.PreviewMorph(ctx, 1.5)
//	out, err := c.ExportMask(ctx, 6, &inkcut.ExportOptions{
//	    Width: displayW, Height: displayH, Color: inkcut.Black,
//	})
//
// # Concurrency
//
// All pixel work runs on one [Worker] goroutine that owns the [Session].
// [Client] correlates responses by request id: a newer request of the same
// kind supersedes the older one, which then fails with [ErrSuperseded].
//
// # Export policy
//
// [Package] crops to the bounding box of the stroke by default and scales
// the crop by the display/working ratio. Set [ExportOptions.FullFrame] to
// keep the full frame aligned with the source image.
package inkcut
