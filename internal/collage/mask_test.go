package collage

import (
	"image"
	"image/color"
	"testing"

	"github.com/matryer/is"
)

func TestApplyCornerMaskZeroRadiusKeepsAlpha(t *testing.T) {
	is := is.New(t)

	cell := gradient(30, 20)
	for x := 0; x < 30; x++ {
		cell.SetNRGBA(x, 5, color.NRGBA{R: 10, G: 20, B: 30, A: uint8(x * 8)})
	}

	out := ApplyCornerMask(cell, 0)
	is.Equal(out.Bounds(), cell.Bounds())
	for y := 0; y < 20; y++ {
		for x := 0; x < 30; x++ {
			if got, want := out.RGBAAt(x, y).A, cell.NRGBAAt(x, y).A; got != want {
				t.Fatalf("alpha at (%d,%d) = %d, want %d", x, y, got, want)
			}
		}
	}
}

func TestApplyCornerMaskRoundsCorners(t *testing.T) {
	tests := []struct {
		name   string
		radius int
	}{
		{"small radius", 6},
		{"radius at half the short side", 20},
		{"radius beyond the cell", 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			is := is.New(t)
			out := ApplyCornerMask(solid(40, 40, red), tt.radius)

			for _, p := range []image.Point{{0, 0}, {39, 0}, {0, 39}, {39, 39}} {
				is.Equal(out.RGBAAt(p.X, p.Y).A, uint8(0)) // corner is cut away
			}
			is.Equal(out.RGBAAt(20, 20), color.RGBA{R: 0xff, A: 0xff})
			is.Equal(out.Bounds(), image.Rect(0, 0, 40, 40))
		})
	}
}

func TestApplyCornerMaskIntersectsExistingAlpha(t *testing.T) {
	is := is.New(t)

	// letterboxed cell: transparent bands at top and bottom
	cell := Fit(solid(200, 100, green), 50, 50, Contain)
	cell.SetNRGBA(25, 25, color.NRGBA{G: 0xff, A: 0x80})

	out := ApplyCornerMask(cell, 8)

	for y := 0; y < 50; y++ {
		for x := 0; x < 50; x++ {
			in := cell.NRGBAAt(x, y).A
			got := out.RGBAAt(x, y).A
			if got > in {
				t.Fatalf("alpha at (%d,%d) grew from %d to %d", x, y, in, got)
			}
		}
	}
	is.Equal(out.RGBAAt(25, 5).A, uint8(0))
	is.Equal(out.RGBAAt(25, 25).A, uint8(0x80))
}

func TestDrawFrame(t *testing.T) {
	is := is.New(t)

	cell := ApplyCornerMask(solid(40, 30, blue), 0)
	DrawFrame(cell, 0)

	top := cell.RGBAAt(20, 0)
	is.True(top.R > 0xf0 && top.G > 0xf0 && top.B > 0xf0) // border is white
	is.Equal(top.A, uint8(0xff))

	left := cell.RGBAAt(0, 15)
	is.True(left.R > 0xf0 && left.G > 0xf0)

	is.Equal(cell.RGBAAt(20, 15), color.RGBA{B: 0xff, A: 0xff}) // interior untouched
}

func TestDrawFrameRounded(t *testing.T) {
	is := is.New(t)

	cell := ApplyCornerMask(solid(40, 40, blue), 10)
	DrawFrame(cell, 10)

	is.Equal(cell.RGBAAt(0, 0).A, uint8(0)) // frame follows the rounded corner
	mid := cell.RGBAAt(20, 0)
	is.True(mid.R > 0xf0 && mid.G > 0xf0)
	is.Equal(cell.RGBAAt(20, 20), color.RGBA{B: 0xff, A: 0xff})
}
