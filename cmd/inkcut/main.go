// Command inkcut extracts signature strokes from images into transparent
// PNG cutouts.
//
// Usage:
//
//	inkcut [flags] image...
//
// Each image is fitted to the display size, supersampled to working
// resolution, segmented, re-stroked and written as <name>.inkcut.png.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"golang.org/x/sync/errgroup"

	"github.com/gogpu/inkcut"
)

type options struct {
	params    inkcut.Params
	outDir    string
	threshold int
	stroke    float64
	color     inkcut.Color
	preview   bool
}

func main() {
	var (
		configPath = flag.String("config", "", "YAML parameter file")
		outDir     = flag.String("out", "", "output directory (default: next to the input)")
		threshold  = flag.Int("threshold", -1, "luma threshold 0-255, -1 to estimate")
		method     = flag.String("estimator", "", "threshold estimator: valley or otsu")
		stroke     = flag.Float64("stroke", 0, "stroke offset in display pixels, positive thickens")
		colorHex   = flag.String("color", "#000000", "fill color")
		fullFrame  = flag.Bool("full-frame", false, "keep the full frame instead of cropping to the stroke")
		preview    = flag.Bool("preview", false, "also write the preview-resolution cutout")
		jobs       = flag.Int("j", 2, "images processed concurrently")
		verbose    = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	inkcut.SetLogger(logger)

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: inkcut [flags] image...")
		flag.PrintDefaults()
		os.Exit(2)
	}

	opts, err := buildOptions(*configPath, *method, *fullFrame)
	if err != nil {
		logger.Error("inkcut: invalid configuration", "error", err)
		os.Exit(2)
	}
	opts.outDir = *outDir
	opts.threshold = *threshold
	opts.stroke = *stroke
	opts.preview = *preview
	if opts.color, err = inkcut.ParseColor(*colorHex); err != nil {
		logger.Error("inkcut: invalid color", "error", err)
		os.Exit(2)
	}

	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(max(1, *jobs))
	for _, path := range flag.Args() {
		g.Go(func() error {
			if err := process(ctx, path, opts); err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		logger.Error("inkcut: failed", "error", err)
		os.Exit(1)
	}
}

func buildOptions(configPath, method string, fullFrame bool) (options, error) {
	p := inkcut.DefaultParams()
	if configPath != "" {
		var err error
		if p, err = inkcut.LoadParams(configPath); err != nil {
			return options{}, err
		}
	}
	if method != "" {
		p.Threshold.Method = method
	}
	if fullFrame {
		p.FullFrame = true
	}
	if err := p.Validate(); err != nil {
		return options{}, err
	}
	return options{params: p}, nil
}

// process runs one image through its own client and worker.
func process(ctx context.Context, path string, opts options) error {
	src, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return err
	}

	p := opts.params
	dw, dh := p.DisplaySize(src.Bounds().Dx(), src.Bounds().Dy())
	display := imaging.Resize(src, dw, dh, imaging.Lanczos)
	working := imaging.Resize(display, dw*p.Scale, dh*p.Scale, imaging.CatmullRom)

	pix, err := inkcut.PixelBufferFromImage(working)
	if err != nil {
		return err
	}

	c, err := inkcut.NewClient(p)
	if err != nil {
		return err
	}
	defer func() { _ = c.Close() }()

	in := inkcut.BuildInput{Pixels: pix, PreviewWidth: dw, PreviewHeight: dh}
	if opts.threshold >= 0 {
		t := opts.threshold
		in.Threshold = &t
	}
	info, err := c.BuildBase(ctx, in)
	if err != nil {
		return err
	}
	inkcut.Logger().Info("inkcut: base ready",
		"file", path,
		"threshold", info.Threshold,
		"estimated", info.Estimated,
		"foreground", info.Foreground)

	if opts.preview {
		m, err := c.PreviewMorph(ctx, opts.stroke)
		if err != nil {
			return err
		}
		if err := save(inkcut.Colorize(m, opts.color), outputPath(path, opts.outDir, ".preview.png")); err != nil {
			return err
		}
	}

	done, err := c.ExportMask(ctx, p.WorkingStroke(opts.stroke), &inkcut.ExportOptions{
		Width:     dw,
		Height:    dh,
		Color:     opts.color,
		FullFrame: p.FullFrame,
	})
	if errors.Is(err, inkcut.ErrEmptyMask) {
		return errors.New("no signature detected")
	}
	if err != nil {
		return err
	}

	out := outputPath(path, opts.outDir, ".inkcut.png")
	if err := save(done.Image, out); err != nil {
		return err
	}
	inkcut.Logger().Info("inkcut: wrote cutout", "file", out,
		"size", fmt.Sprintf("%dx%d", done.Image.Bounds().Dx(), done.Image.Bounds().Dy()))
	return nil
}

func outputPath(in, dir, suffix string) string {
	base := strings.TrimSuffix(filepath.Base(in), filepath.Ext(in))
	if dir == "" {
		dir = filepath.Dir(in)
	}
	return filepath.Join(dir, base+suffix)
}

func save(img image.Image, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return err
	}
	return imaging.Save(img, path)
}
