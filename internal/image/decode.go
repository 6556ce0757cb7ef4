package imagepkg

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"io"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"github.com/youruser/collageapp/internal/collage"
)

var (
	ErrDecode      = errors.New("decode image")
	ErrUnsupported = errors.New("unsupported image type")
)

var extensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".webp": true,
	".bmp":  true,
	".gif":  true,
}

// Supported reports whether name has an accepted image extension.
func Supported(name string) bool {
	return extensions[strings.ToLower(filepath.Ext(name))]
}

// File is a named image that has not been decoded yet.
type File struct {
	Name string
	Open func() (io.ReadCloser, error)
}

// Limits bound what a single input may cost. Zero fields mean no limit.
type Limits struct {
	// MaxPixels caps width*height as declared in the image header.
	MaxPixels int
	// MaxBytes caps the size of a downloaded body.
	MaxBytes int64
}

// DecodeNamed decodes r, applying EXIF orientation for JPEGs. Images whose
// header declares more than lim.MaxPixels pixels are rejected before any
// pixel buffer is allocated.
func DecodeNamed(name string, r io.Reader, lim Limits) (collage.Source, error) {
	if lim.MaxPixels > 0 {
		var head bytes.Buffer
		cfg, _, err := image.DecodeConfig(io.TeeReader(r, &head))
		if err != nil {
			return collage.Source{}, fmt.Errorf("%w %s: %v", ErrDecode, name, err)
		}
		if cfg.Width <= 0 || cfg.Height <= 0 || cfg.Width > lim.MaxPixels/cfg.Height {
			return collage.Source{}, fmt.Errorf("%w %s: %dx%d exceeds %d pixels", ErrDecode, name, cfg.Width, cfg.Height, lim.MaxPixels)
		}
		r = io.MultiReader(&head, r)
	}

	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return collage.Source{}, fmt.Errorf("%w %s: %v", ErrDecode, name, err)
	}
	return collage.Source{Name: name, Image: img}, nil
}

// DecodeFile opens and decodes f.
func DecodeFile(f File, lim Limits) (collage.Source, error) {
	if !Supported(f.Name) {
		return collage.Source{}, fmt.Errorf("%w: %s", ErrUnsupported, f.Name)
	}

	rc, err := f.Open()
	if err != nil {
		return collage.Source{}, fmt.Errorf("open %s: %w", f.Name, err)
	}
	defer rc.Close()

	return DecodeNamed(f.Name, rc, lim)
}

// DecodeAll decodes files in order. Files that cannot be opened or decoded
// are left out and their names returned in skipped.
func DecodeAll(files []File, lim Limits) (sources []collage.Source, skipped []string) {
	for _, f := range files {
		src, err := DecodeFile(f, lim)
		if err != nil {
			skipped = append(skipped, f.Name)
			continue
		}
		sources = append(sources, src)
	}
	return sources, skipped
}
