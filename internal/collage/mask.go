package collage

import (
	"image"
	"math"

	"github.com/fogleman/gg"
	"golang.org/x/image/draw"
)

// ApplyCornerMask returns a premultiplied copy of cell whose alpha is the
// intersection of the cell's own alpha and a rounded-rectangle mask.
// With radius 0 the alpha channel is copied unchanged.
func ApplyCornerMask(cell *image.NRGBA, radius int) *image.RGBA {
	b := cell.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))

	if radius <= 0 {
		draw.Draw(out, out.Bounds(), cell, b.Min, draw.Src)
		return out
	}

	mask := roundedRect(b.Dx(), b.Dy(), radius)
	draw.DrawMask(out, out.Bounds(), cell, b.Min, mask, image.Point{}, draw.Src)
	return out
}

// DrawFrame strokes a 1px white outline along the border of cell, using a
// corner radius one pixel smaller than the mask so the stroke stays inside it.
func DrawFrame(cell *image.RGBA, radius int) {
	b := cell.Bounds()
	w, h := float64(b.Dx()), float64(b.Dy())
	r := clampRadius(b.Dx()-1, b.Dy()-1, max(0, radius-1))

	dc := gg.NewContextForRGBA(cell)
	dc.SetRGB(1, 1, 1)
	dc.SetLineWidth(1)
	if r == 0 {
		dc.DrawRectangle(0.5, 0.5, w-1, h-1)
	} else {
		dc.DrawRoundedRectangle(0.5, 0.5, w-1, h-1, r)
	}
	dc.Stroke()
}

// roundedRect rasterizes an anti-aliased rounded rectangle covering w x h.
func roundedRect(w, h, radius int) image.Image {
	dc := gg.NewContext(w, h)
	dc.DrawRoundedRectangle(0, 0, float64(w), float64(h), clampRadius(w, h, radius))
	dc.SetRGB(1, 1, 1)
	dc.Fill()
	return dc.Image()
}

// clampRadius keeps the corner arcs from overlapping; at the limit the
// shape degenerates to a pill or a circle.
func clampRadius(w, h, radius int) float64 {
	limit := math.Min(float64(w), float64(h)) / 2
	return math.Max(0, math.Min(float64(radius), limit))
}
