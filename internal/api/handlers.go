package api

import (
	"bytes"
	"context"
	"errors"
	"image"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/youruser/collageapp/internal/collage"
	"github.com/youruser/collageapp/internal/config"
	"github.com/youruser/collageapp/internal/gallery"
	imagepkg "github.com/youruser/collageapp/internal/image"
	"github.com/youruser/collageapp/internal/logging"
	"github.com/youruser/collageapp/internal/params"
	"github.com/youruser/collageapp/internal/preview"
)

const (
	defaultPaletteSize = 5
	maxPaletteSize     = 32
)

// Handler serves the collage endpoints.
type Handler struct {
	cfg   config.Config
	log   *zap.Logger
	cache *preview.Cache
}

func NewHandler(cfg config.Config, log *zap.Logger, cache *preview.Cache) *Handler {
	return &Handler{cfg: cfg, log: log, cache: cache}
}

// NewRouter returns a gin engine with logging, recovery and all routes.
func NewRouter(h *Handler) *gin.Engine {
	r := gin.New()
	r.Use(logging.GinLogger(h.log), logging.GinRecovery(h.log))
	r.MaxMultipartMemory = h.cfg.MaxUploadMB << 20
	RegisterRoutes(r, h)
	return r
}

// health reports liveness for load balancers and uptime checks.
func health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type collageForm struct {
	params.Params
	QRText string `form:"qr_text"`
}

// collageHandler composes the uploaded "files" into a PNG.
func (h *Handler) collageHandler(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.cfg.MaxUploadMB<<20)

	form := collageForm{Params: h.cfg.Defaults}
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := form.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	mf, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	headers := mf.File["files"]
	if len(headers) > h.cfg.MaxImages {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "too many files, limit is " + strconv.Itoa(h.cfg.MaxImages)})
		return
	}

	files := make([]imagepkg.File, len(headers))
	for i, fh := range headers {
		fh := fh
		files[i] = imagepkg.File{
			Name: fh.Filename,
			Open: func() (io.ReadCloser, error) { return fh.Open() },
		}
	}
	sources, skipped := imagepkg.DecodeAll(files, h.cfg.DecodeLimits())

	h.respondCollage(c, form.Params, sources, skipped, form.QRText)
}

type urlsRequest struct {
	URLs   []string      `json:"urls" binding:"required"`
	Params params.Params `json:"params"`
	QRText string        `json:"qr_text"`
}

// collageURLsHandler downloads images (best-effort) and composes them.
func (h *Handler) collageURLsHandler(c *gin.Context) {
	req := urlsRequest{Params: h.cfg.Defaults}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := req.Params.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(req.URLs) > h.cfg.MaxImages {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "too many urls, limit is " + strconv.Itoa(h.cfg.MaxImages)})
		return
	}

	sources, skipped := imagepkg.DownloadAll(c.Request.Context(), req.URLs, h.cfg.DownloadTimeout, h.cfg.Workers, h.cfg.DecodeLimits())
	h.respondCollage(c, req.Params, sources, skipped, req.QRText)
}

func (h *Handler) respondCollage(c *gin.Context, p params.Params, sources []collage.Source, skipped []string, qrText string) {
	log := logging.FromContext(c, h.log)
	if len(skipped) > 0 {
		log.Info("skipped undecodable images", zap.Strings("names", skipped))
	}

	sources = gallery.Sort(sources, p.SortOrder())
	if qrText != "" {
		tile, err := imagepkg.QRTile(qrText, min(p.CellWidth, p.CellHeight))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		sources = append(sources, tile)
	}
	if len(sources) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no decodable images", "skipped": skipped})
		return
	}

	canvas, hit, err := h.cache.Render(c.Request.Context(), p, sources, h.renderFunc(p, log))
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, collage.ErrInvalidArgument) {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	buf := new(bytes.Buffer)
	if err := imagepkg.EncodePNG(buf, canvas); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	cacheState := "miss"
	if hit {
		cacheState = "hit"
	}
	c.Header("X-Collage-Cache", cacheState)
	c.Header("X-Collage-Skipped", strconv.Itoa(len(skipped)))
	c.Header("Content-Disposition", `attachment; filename="collage.png"`)
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

func (h *Handler) renderFunc(p params.Params, log *zap.Logger) preview.RenderFunc {
	return func(ctx context.Context, sources []collage.Source) (*image.RGBA, error) {
		style, err := p.Style()
		if err != nil {
			return nil, err
		}
		return collage.Compose(ctx, sources, p.Grid(), style,
			collage.WithWorkers(h.cfg.Workers),
			collage.WithLogger(log),
		)
	}
}

type swatchJSON struct {
	Hex   string `json:"hex"`
	Count int    `json:"count"`
}

// paletteHandler suggests background colors from an uploaded reference image.
func (h *Handler) paletteHandler(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.cfg.MaxUploadMB<<20)

	k := defaultPaletteSize
	if s := c.Query("k"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 1 || v > maxPaletteSize {
			c.JSON(http.StatusBadRequest, gin.H{"error": "k must be between 1 and " + strconv.Itoa(maxPaletteSize)})
			return
		}
		k = v
	}

	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	src, err := imagepkg.DecodeFile(imagepkg.File{
		Name: fh.Filename,
		Open: func() (io.ReadCloser, error) { return fh.Open() },
	}, h.cfg.DecodeLimits())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	swatches := collage.ExtractTopColors(src.Image, k)
	out := make([]swatchJSON, len(swatches))
	for i, s := range swatches {
		out[i] = swatchJSON{Hex: s.Hex(), Count: s.Count}
	}
	c.JSON(http.StatusOK, gin.H{"colors": out})
}
