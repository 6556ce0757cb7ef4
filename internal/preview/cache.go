// Package preview memoizes rendered collages so re-requesting the same
// parameters over the same images skips composition.
package preview

import (
	"context"
	"encoding/binary"
	"image"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/youruser/collageapp/internal/collage"
	"github.com/youruser/collageapp/internal/params"
)

// Cache holds recently rendered collages. It is safe for concurrent use.
// Cached canvases are shared; callers must not modify them.
type Cache struct {
	lru *lru.Cache[string, *image.RGBA]
}

// New returns a cache holding up to size collages. size <= 0 disables caching.
func New(size int) (*Cache, error) {
	if size <= 0 {
		return &Cache{}, nil
	}
	c, err := lru.New[string, *image.RGBA](size)
	if err != nil {
		return nil, err
	}
	return &Cache{lru: c}, nil
}

// Key identifies a render of sources under p. Only the images that can fit in
// the grid contribute, so extra images do not change the key.
func Key(p params.Params, sources []collage.Source) string {
	placed := sources
	if n := max(0, p.Rows*p.Cols); len(placed) > n {
		placed = placed[:n]
	}

	var b strings.Builder
	b.WriteString(p.Key())
	for _, s := range placed {
		b.WriteByte('|')
		b.WriteString(strconv.FormatUint(Digest(s.Image), 16))
	}
	return b.String()
}

// Digest hashes the dimensions and pixels of img.
func Digest(img image.Image) uint64 {
	h := xxhash.New()
	b := img.Bounds()

	var buf [8]byte
	binary.LittleEndian.PutUint32(buf[:4], uint32(b.Dx()))
	binary.LittleEndian.PutUint32(buf[4:], uint32(b.Dy()))
	h.Write(buf[:])

	switch m := img.(type) {
	case *image.NRGBA:
		writeRows(h, m.Pix, m.Stride, b.Dx()*4, b.Dy())
	case *image.RGBA:
		writeRows(h, m.Pix, m.Stride, b.Dx()*4, b.Dy())
	default:
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				r, g, bl, a := img.At(x, y).RGBA()
				binary.LittleEndian.PutUint16(buf[0:], uint16(r))
				binary.LittleEndian.PutUint16(buf[2:], uint16(g))
				binary.LittleEndian.PutUint16(buf[4:], uint16(bl))
				binary.LittleEndian.PutUint16(buf[6:], uint16(a))
				h.Write(buf[:])
			}
		}
	}
	return h.Sum64()
}

func writeRows(h *xxhash.Digest, pix []byte, stride, rowLen, rows int) {
	for y := 0; y < rows; y++ {
		h.Write(pix[y*stride : y*stride+rowLen])
	}
}

func (c *Cache) Get(key string) (*image.RGBA, bool) {
	if c.lru == nil {
		return nil, false
	}
	return c.lru.Get(key)
}

func (c *Cache) Add(key string, canvas *image.RGBA) {
	if c.lru == nil {
		return
	}
	c.lru.Add(key, canvas)
}

func (c *Cache) Len() int {
	if c.lru == nil {
		return 0
	}
	return c.lru.Len()
}

// RenderFunc produces a collage for sources.
type RenderFunc func(ctx context.Context, sources []collage.Source) (*image.RGBA, error)

// Render returns the cached collage for (p, sources) or renders and stores it.
// hit reports whether the result came from the cache.
func (c *Cache) Render(ctx context.Context, p params.Params, sources []collage.Source, render RenderFunc) (canvas *image.RGBA, hit bool, err error) {
	key := Key(p, sources)
	if canvas, ok := c.Get(key); ok {
		return canvas, true, nil
	}

	canvas, err = render(ctx, sources)
	if err != nil {
		return nil, false, err
	}
	c.Add(key, canvas)
	return canvas, false, nil
}
