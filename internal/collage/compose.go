// Package collage lays images out on a fixed grid and flattens them into one canvas.
package collage

import (
	"context"
	"fmt"
	"image"
	"runtime"
	"time"

	"go.uber.org/zap"
	"golang.org/x/image/draw"
	"golang.org/x/sync/errgroup"
)

// Source is a decoded image with its display name. Compose only reads it.
type Source struct {
	Name  string
	Image image.Image
}

// ProgressFunc is called after each slot is composited.
type ProgressFunc func(done, total int)

type options struct {
	workers  int
	progress ProgressFunc
	log      *zap.Logger
}

// Option configures a Compose call.
type Option func(*options)

// WithWorkers fits and masks up to n cells concurrently. The composite pass
// itself always runs in row-major order on a single goroutine.
func WithWorkers(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.workers = n
		}
	}
}

// WithProgress registers an observer that does not influence the output.
func WithProgress(fn ProgressFunc) Option {
	return func(o *options) {
		o.progress = fn
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

func newOptions(opts []Option) options {
	o := options{
		workers:  1,
		progress: func(int, int) {},
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.progress == nil {
		o.progress = func(int, int) {}
	}
	o.workers = min(o.workers, runtime.GOMAXPROCS(0)*2)
	return o
}

// Compose lays images out on the grid in row-major order and returns the
// flattened canvas. Images beyond the grid capacity are dropped, empty slots
// show the background. The canvas is fully opaque.
//
// On error no canvas is returned.
func Compose(ctx context.Context, images []Source, grid GridSpec, style StyleSpec, opts ...Option) (*image.RGBA, error) {
	layout, err := PlanLayout(grid)
	if err != nil {
		return nil, err
	}
	if err := style.Validate(); err != nil {
		return nil, err
	}

	o := newOptions(opts)
	start := time.Now()

	slots := layout.Slots()
	if len(images) > len(slots) {
		images = images[:len(slots)]
	}

	cells := make([]*image.RGBA, len(images))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.workers)
	for i, src := range images {
		i, src := i, src
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			cells[i] = renderCell(src.Image, grid, style)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("render cells: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	canvas := image.NewRGBA(layout.Bounds())
	bg := style.Background
	bg.A = 0xff
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)

	for i, cell := range cells {
		s := slots[i]
		draw.Draw(canvas, layout.Cell(s.Row, s.Col), cell, image.Point{}, draw.Over)
		o.progress(i+1, len(cells))
	}

	o.log.Debug("collage composed",
		zap.Int("width", layout.Width),
		zap.Int("height", layout.Height),
		zap.Int("placed", len(cells)),
		zap.Int("slots", len(slots)),
		zap.Duration("took", time.Since(start)),
	)

	return canvas, nil
}

// renderCell runs fit, corner mask and frame for a single slot.
func renderCell(src image.Image, grid GridSpec, style StyleSpec) *image.RGBA {
	fitted := Fit(src, grid.CellWidth, grid.CellHeight, style.Fit)
	cell := ApplyCornerMask(fitted, grid.CornerRadius)
	if style.DrawFrame {
		DrawFrame(cell, grid.CornerRadius)
	}
	return cell
}
