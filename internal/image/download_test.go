package imagepkg

import (
	"context"
	"image"
	"image/color"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/matryer/is"
)

func TestDownloadAll(t *testing.T) {
	is := is.New(t)

	red := pngBytes(t, 5, 5, color.NRGBA{R: 0xff, A: 0xff})
	wide := pngBytes(t, 8, 2, color.NRGBA{G: 0xff, A: 0xff})

	mux := http.NewServeMux()
	mux.HandleFunc("/img/red.png", func(w http.ResponseWriter, r *http.Request) { w.Write(red) })
	mux.HandleFunc("/img/wide.png", func(w http.ResponseWriter, r *http.Request) { w.Write(wide) })
	mux.HandleFunc("/img/garbage.png", func(w http.ResponseWriter, r *http.Request) { w.Write([]byte("nope")) })
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	urls := []string{
		srv.URL + "/img/wide.png",
		srv.URL + "/img/missing.png",
		srv.URL + "/img/garbage.png",
		srv.URL + "/img/red.png",
	}

	sources, skipped := DownloadAll(context.Background(), urls, 5*time.Second, 3, Limits{})

	is.Equal(len(sources), 2)
	is.Equal(sources[0].Name, "wide.png")
	is.Equal(sources[0].Image.Bounds(), image.Rect(0, 0, 8, 2))
	is.Equal(sources[1].Name, "red.png")
	is.Equal(skipped, []string{urls[1], urls[2]})
}

func TestDownloadAllAppliesLimits(t *testing.T) {
	is := is.New(t)

	small := pngBytes(t, 4, 4, color.NRGBA{B: 0xff, A: 0xff})
	big := pngBytes(t, 64, 64, color.NRGBA{R: 0xff, A: 0xff})

	mux := http.NewServeMux()
	mux.HandleFunc("/small.png", func(w http.ResponseWriter, r *http.Request) { w.Write(small) })
	mux.HandleFunc("/big.png", func(w http.ResponseWriter, r *http.Request) { w.Write(big) })
	mux.HandleFunc("/padded.png", func(w http.ResponseWriter, r *http.Request) {
		w.Write(small)
		w.Write(make([]byte, 4096))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	urls := []string{srv.URL + "/big.png", srv.URL + "/padded.png", srv.URL + "/small.png"}
	lim := Limits{MaxPixels: 100, MaxBytes: int64(len(small)) + 1024}

	sources, skipped := DownloadAll(context.Background(), urls, 5*time.Second, 2, lim)

	is.Equal(len(sources), 1)
	is.Equal(sources[0].Name, "small.png")
	is.Equal(skipped, urls[:2])
}
