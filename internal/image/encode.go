package imagepkg

import (
	"fmt"
	"image"
	"io"

	"github.com/disintegration/imaging"
)

// Flatten returns an opaque copy of img with the alpha channel dropped.
// Images that are already opaque are returned as is.
func Flatten(img image.Image) image.Image {
	if o, ok := img.(interface{ Opaque() bool }); ok && o.Opaque() {
		return img
	}

	out := imaging.Clone(img)
	for i := 3; i < len(out.Pix); i += 4 {
		out.Pix[i] = 0xff
	}
	return out
}

// EncodePNG writes img as an opaque PNG (8-bit RGB).
func EncodePNG(w io.Writer, img image.Image) error {
	if err := imaging.Encode(w, Flatten(img), imaging.PNG); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}
