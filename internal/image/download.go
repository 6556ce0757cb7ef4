package imagepkg

import (
	"bytes"
	"context"
	"net/url"
	"path"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/youruser/collageapp/internal/collage"
	"github.com/youruser/collageapp/internal/util"
)

// DownloadImage fetches and decodes the image at rawURL. The source is named
// after the last path element of the URL.
func DownloadImage(ctx context.Context, rawURL string, timeout time.Duration, lim Limits) (collage.Source, error) {
	body, err := util.GetBytes(ctx, rawURL, timeout, lim.MaxBytes)
	if err != nil {
		return collage.Source{}, err
	}
	return DecodeNamed(nameFromURL(rawURL), bytes.NewReader(body), lim)
}

// DownloadAll fetches urls with at most workers requests in flight and keeps
// the input order. Failed downloads are skipped.
func DownloadAll(ctx context.Context, urls []string, timeout time.Duration, workers int, lim Limits) (sources []collage.Source, skipped []string) {
	results := make([]*collage.Source, len(urls))

	var g errgroup.Group
	g.SetLimit(max(1, workers))
	for i, u := range urls {
		i, u := i, u
		g.Go(func() error {
			src, err := DownloadImage(ctx, u, timeout, lim)
			if err == nil {
				results[i] = &src
			}
			return nil
		})
	}
	_ = g.Wait()

	for i, r := range results {
		if r == nil {
			skipped = append(skipped, urls[i])
			continue
		}
		sources = append(sources, *r)
	}
	return sources, skipped
}

func nameFromURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Path == "" || u.Path == "/" {
		return rawURL
	}
	return path.Base(u.Path)
}
