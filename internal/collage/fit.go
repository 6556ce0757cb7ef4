package collage

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// Fit returns a w x h copy of src fitted according to mode.
// The source image is never modified.
func Fit(src image.Image, w, h int, mode FitMode) *image.NRGBA {
	if src == nil || src.Bounds().Empty() {
		return imaging.New(w, h, color.NRGBA{})
	}

	if mode == Contain {
		return contain(src, w, h)
	}
	return cover(src, w, h)
}

// cover scales src to cover the cell and center-crops the excess.
// A source that already has the cell size is cloned untouched.
func cover(src image.Image, w, h int) *image.NRGBA {
	return imaging.Fill(src, w, h, imaging.Center, imaging.Lanczos)
}

// contain shrinks src to fit (never enlarging it) and centers it on a
// transparent cell. Odd remainders leave the extra pixel on the right/bottom.
func contain(src image.Image, w, h int) *image.NRGBA {
	fitted := imaging.Fit(src, w, h, imaging.Lanczos)
	fb := fitted.Bounds()

	cell := imaging.New(w, h, color.NRGBA{})
	return imaging.Paste(cell, fitted, image.Pt((w-fb.Dx())/2, (h-fb.Dy())/2))
}
