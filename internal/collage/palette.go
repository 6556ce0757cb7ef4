package collage

import (
	"cmp"
	"image"
	"image/color"
	"slices"

	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"
)

// paletteSampleSize bounds the sampled image so counting stays cheap.
const paletteSampleSize = 64

// Swatch is one palette entry.
type Swatch struct {
	Color colorful.Color
	RGB   color.RGBA
	Count int
}

func (s Swatch) Hex() string {
	return s.Color.Hex()
}

// ExtractTopColors returns up to k of the most frequent colors in img after
// shrinking it to fit 64x64. Colors are grouped by exact RGB value and fully
// transparent pixels are ignored. Ties are ordered by RGB value.
func ExtractTopColors(img image.Image, k int) []Swatch {
	if img == nil || k <= 0 || img.Bounds().Empty() {
		return []Swatch{}
	}

	small := imaging.Fit(img, paletteSampleSize, paletteSampleSize, imaging.Box)

	counts := make(map[color.RGBA]int)
	for i := 0; i+3 < len(small.Pix); i += 4 {
		if small.Pix[i+3] == 0 {
			continue
		}
		counts[color.RGBA{R: small.Pix[i], G: small.Pix[i+1], B: small.Pix[i+2], A: 0xff}]++
	}

	swatches := make([]Swatch, 0, len(counts))
	for c, n := range counts {
		col, _ := colorful.MakeColor(c)
		swatches = append(swatches, Swatch{Color: col, RGB: c, Count: n})
	}

	slices.SortFunc(swatches, func(a, b Swatch) int {
		if a.Count != b.Count {
			return cmp.Compare(b.Count, a.Count)
		}
		return cmp.Compare(packRGB(a.RGB), packRGB(b.RGB))
	})

	return swatches[:min(k, len(swatches))]
}

func packRGB(c color.RGBA) uint32 {
	return uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}
