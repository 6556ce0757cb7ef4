package gallery

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/youruser/collageapp/internal/collage"
	imagepkg "github.com/youruser/collageapp/internal/image"
)

// ListDir returns the image files directly inside dir, sorted by file name.
// Subdirectories and files with other extensions are ignored.
func ListDir(dir string) ([]imagepkg.File, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir %s: %w", dir, err)
	}

	var files []imagepkg.File
	for _, e := range entries {
		if e.IsDir() || !imagepkg.Supported(e.Name()) {
			continue
		}
		path := filepath.Join(dir, e.Name())
		files = append(files, imagepkg.File{
			Name: e.Name(),
			Open: func() (io.ReadCloser, error) { return os.Open(path) },
		})
	}
	return files, nil
}

// LoadDir decodes every image in dir. Files that fail to decode or exceed
// lim are skipped and reported by name.
func LoadDir(dir string, lim imagepkg.Limits) (sources []collage.Source, skipped []string, err error) {
	files, err := ListDir(dir)
	if err != nil {
		return nil, nil, err
	}
	if len(files) == 0 {
		return nil, nil, fmt.Errorf("no images found in %s", dir)
	}

	sources, skipped = imagepkg.DecodeAll(files, lim)
	return sources, skipped, nil
}
