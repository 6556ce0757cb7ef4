// Command collage builds a grid collage PNG from the images in a directory.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"

	"github.com/youruser/collageapp/internal/collage"
	"github.com/youruser/collageapp/internal/config"
	"github.com/youruser/collageapp/internal/gallery"
	imagepkg "github.com/youruser/collageapp/internal/image"
	"github.com/youruser/collageapp/internal/logging"
	"github.com/youruser/collageapp/internal/params"
	"github.com/youruser/collageapp/internal/util"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "collage:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("collage", flag.ContinueOnError)
	fs.String("config", "", "path to a YAML config file providing defaults")
	dir := fs.String("dir", ".", "directory with input images")
	out := fs.String("o", "collage.png", "output PNG file")
	workers := fs.Int("workers", 0, "cells fitted in parallel (0 uses the config value)")
	verbose := fs.Bool("v", false, "debug logging")

	// config (file, .env, environment) supplies flag defaults, so it is read before the full parse
	cfg, err := config.Load(findConfigArg(args))
	if err != nil {
		return err
	}
	p := cfg.Defaults
	bindParams(fs, &p)

	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := p.Validate(); err != nil {
		return err
	}
	if *workers <= 0 {
		*workers = cfg.Workers
	}

	logger := logging.New(logging.Options{Development: *verbose || cfg.Development, File: cfg.LogFile})
	defer logger.Sync()

	sources, skipped, err := gallery.LoadDir(*dir, cfg.DecodeLimits())
	if err != nil {
		return err
	}
	for _, name := range skipped {
		logger.Warn("skipping undecodable image", zap.String("name", name))
	}
	if len(sources) == 0 {
		return fmt.Errorf("no decodable images in %s", *dir)
	}
	sources = gallery.Sort(sources, p.SortOrder())

	style, err := p.Style()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	canvas, err := collage.Compose(ctx, sources, p.Grid(), style,
		collage.WithWorkers(*workers),
		collage.WithLogger(logger),
		collage.WithProgress(func(done, total int) {
			logger.Debug("progress", zap.Int("done", done), zap.Int("total", total),
				zap.String("percent", fmt.Sprintf("%d%%", done*100/total)))
		}),
	)
	if err != nil {
		return err
	}

	if err := util.EnsureParentDir(*out); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	f, err := os.Create(*out)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	if err := imagepkg.EncodePNG(f, canvas); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close output: %w", err)
	}

	info, err := os.Stat(*out)
	if err == nil {
		logger.Info("collage written",
			zap.String("path", *out),
			zap.Int("images", min(len(sources), p.Rows*p.Cols)),
			zap.Int("width", canvas.Bounds().Dx()),
			zap.Int("height", canvas.Bounds().Dy()),
			zap.String("size", humanize.Bytes(uint64(info.Size()))),
		)
	}
	return nil
}

func bindParams(fs *flag.FlagSet, p *params.Params) {
	fs.IntVar(&p.Rows, "rows", p.Rows, "grid rows")
	fs.IntVar(&p.Cols, "cols", p.Cols, "grid columns")
	fs.IntVar(&p.CellWidth, "cell-width", p.CellWidth, "cell width in px")
	fs.IntVar(&p.CellHeight, "cell-height", p.CellHeight, "cell height in px")
	fs.IntVar(&p.Gutter, "gutter", p.Gutter, "space between cells in px")
	fs.IntVar(&p.Padding, "padding", p.Padding, "outer margin in px")
	fs.IntVar(&p.Radius, "radius", p.Radius, "corner radius in px")
	fs.StringVar(&p.Background, "background", p.Background, "background color (#rrggbb)")
	fs.BoolVar(&p.Frame, "frame", p.Frame, "draw a 1px white frame around each cell")
	fs.StringVar(&p.Fit, "fit", p.Fit, "cover or contain")
	fs.StringVar(&p.Order, "order", p.Order, "upload, name_asc or name_desc")
}

// findConfigArg looks for -config/--config before the full parse.
func findConfigArg(args []string) string {
	for i, a := range args {
		for _, prefix := range []string{"-config=", "--config="} {
			if len(a) > len(prefix) && a[:len(prefix)] == prefix {
				return a[len(prefix):]
			}
		}
		if (a == "-config" || a == "--config") && i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}
