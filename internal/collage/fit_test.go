package collage

import (
	"bytes"
	"image"
	"testing"

	"github.com/matryer/is"
)

func TestFitCoverSameSizeIsIdentity(t *testing.T) {
	is := is.New(t)

	src := gradient(40, 30)
	out := Fit(src, 40, 30, Cover)

	is.Equal(out.Bounds(), src.Bounds())
	is.True(bytes.Equal(out.Pix, src.Pix))
}

func TestFitCoverFillsCell(t *testing.T) {
	tests := []struct {
		name string
		w, h int
	}{
		{"landscape", 800, 600},
		{"portrait", 60, 200},
		{"small square upscaled", 20, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Fit(solid(tt.w, tt.h, blue), 50, 50, Cover)

			if got := out.Bounds(); got != image.Rect(0, 0, 50, 50) {
				t.Fatalf("Fit() bounds = %v, want 50x50", got)
			}
			for i := 3; i < len(out.Pix); i += 4 {
				if out.Pix[i] != 0xff {
					t.Fatalf("Fit() left a transparent pixel at offset %d", i/4)
				}
			}
		})
	}
}

func TestFitCoverCropOffset(t *testing.T) {
	tests := []struct {
		name   string
		w, h   int
		offset image.Point
	}{
		{"one extra column", 11, 10, image.Pt(0, 0)},
		{"odd horizontal remainder", 13, 10, image.Pt(1, 0)},
		{"even horizontal remainder", 14, 10, image.Pt(2, 0)},
		{"odd horizontal remainder rounds left", 15, 10, image.Pt(2, 0)},
		{"odd vertical remainder", 10, 13, image.Pt(0, 1)},
		{"odd vertical remainder rounds up", 10, 15, image.Pt(0, 2)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := gradient(tt.w, tt.h)
			out := Fit(src, 10, 10, Cover)

			if got := out.Bounds(); got != image.Rect(0, 0, 10, 10) {
				t.Fatalf("Fit() bounds = %v, want 10x10", got)
			}
			for y := 0; y < 10; y++ {
				for x := 0; x < 10; x++ {
					want := src.NRGBAAt(x+tt.offset.X, y+tt.offset.Y)
					if got := out.NRGBAAt(x, y); got != want {
						t.Fatalf("out(%d,%d) = %v, want src(%d,%d) = %v",
							x, y, got, x+tt.offset.X, y+tt.offset.Y, want)
					}
				}
			}
		})
	}
}

func TestFitContainCentersContent(t *testing.T) {
	tests := []struct {
		name string
		w, h int
		want image.Rectangle
	}{
		{"wide source", 200, 100, image.Rect(0, 12, 50, 37)},
		{"tall source", 100, 400, image.Rect(19, 0, 31, 50)},
		{"smaller than cell is not enlarged", 10, 10, image.Rect(20, 20, 30, 30)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Fit(solid(tt.w, tt.h, red), 50, 50, Contain)

			if got := out.Bounds(); got != image.Rect(0, 0, 50, 50) {
				t.Fatalf("Fit() bounds = %v, want 50x50", got)
			}

			got := opaqueBounds(out)
			if got != tt.want {
				t.Errorf("content bounds = %v, want %v", got, tt.want)
			}

			left, right := got.Min.X, 50-got.Max.X
			top, bottom := got.Min.Y, 50-got.Max.Y
			if d := right - left; d < 0 || d > 1 {
				t.Errorf("horizontal margins %d/%d are not centered", left, right)
			}
			if d := bottom - top; d < 0 || d > 1 {
				t.Errorf("vertical margins %d/%d are not centered", top, bottom)
			}
		})
	}
}

func TestFitDoesNotMutateSource(t *testing.T) {
	is := is.New(t)

	src := gradient(64, 48)
	before := append([]byte(nil), src.Pix...)

	Fit(src, 20, 20, Cover)
	Fit(src, 20, 20, Contain)

	is.True(bytes.Equal(before, src.Pix))
}

func TestFitEmptySource(t *testing.T) {
	is := is.New(t)

	out := Fit(image.NewNRGBA(image.Rectangle{}), 8, 6, Cover)
	is.Equal(out.Bounds(), image.Rect(0, 0, 8, 6))
	is.Equal(opaqueBounds(out), image.Rectangle{})
}
