package imagepkg

import (
	"fmt"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/youruser/collageapp/internal/collage"
)

// QRTile renders text as a square QR code so it can be placed in a cell
// like any other source.
func QRTile(text string, size int) (collage.Source, error) {
	q, err := qrcode.New(text, qrcode.Medium)
	if err != nil {
		return collage.Source{}, fmt.Errorf("qr code: %w", err)
	}
	return collage.Source{Name: "qr", Image: q.Image(size)}, nil
}
