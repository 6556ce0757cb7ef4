package params

import (
	"fmt"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/youruser/collageapp/internal/collage"
	"github.com/youruser/collageapp/internal/gallery"
)

// Params is everything a user picks for one collage.
type Params struct {
	Rows       int    `json:"rows" yaml:"rows" form:"rows"`
	Cols       int    `json:"cols" yaml:"cols" form:"cols"`
	CellWidth  int    `json:"cell_width" yaml:"cell_width" form:"cell_width"`
	CellHeight int    `json:"cell_height" yaml:"cell_height" form:"cell_height"`
	Gutter     int    `json:"gutter" yaml:"gutter" form:"gutter"`
	Padding    int    `json:"padding" yaml:"padding" form:"padding"`
	Radius     int    `json:"radius" yaml:"radius" form:"radius"`
	Background string `json:"background" yaml:"background" form:"background"`
	Frame      bool   `json:"frame" yaml:"frame" form:"frame"`
	Fit        string `json:"fit" yaml:"fit" form:"fit"`
	Order      string `json:"order" yaml:"order" form:"order"`
}

// Default mirrors the initial state of the collage maker UI.
func Default() Params {
	return Params{
		Rows:       4,
		Cols:       5,
		CellWidth:  512,
		CellHeight: 512,
		Gutter:     24,
		Padding:    48,
		Radius:     12,
		Background: "#FFFFFF",
		Frame:      false,
		Fit:        collage.Cover.String(),
		Order:      string(gallery.OrderUpload),
	}
}

// Limits are the bounds the UI enforces on each field.
var Limits = struct {
	MaxRows, MaxCols      int
	MinCell, MaxCell      int
	MaxGutter, MaxPadding int
	MaxRadius             int
}{
	MaxRows: 20, MaxCols: 20,
	MinCell: 64, MaxCell: 2000,
	MaxGutter: 200, MaxPadding: 400,
	MaxRadius: 200,
}

func checkRange(name string, v, lo, hi int) error {
	if v < lo || v > hi {
		return fmt.Errorf("%w: %s must be between %d and %d, got %d", collage.ErrInvalidArgument, name, lo, hi, v)
	}
	return nil
}

// Validate checks p against Limits and parses the enumerated fields.
func (p Params) Validate() error {
	checks := []error{
		checkRange("rows", p.Rows, 1, Limits.MaxRows),
		checkRange("cols", p.Cols, 1, Limits.MaxCols),
		checkRange("cell_width", p.CellWidth, Limits.MinCell, Limits.MaxCell),
		checkRange("cell_height", p.CellHeight, Limits.MinCell, Limits.MaxCell),
		checkRange("gutter", p.Gutter, 0, Limits.MaxGutter),
		checkRange("padding", p.Padding, 0, Limits.MaxPadding),
		checkRange("radius", p.Radius, 0, Limits.MaxRadius),
	}
	for _, err := range checks {
		if err != nil {
			return err
		}
	}

	if _, err := p.Style(); err != nil {
		return err
	}
	if _, err := gallery.ParseOrder(p.Order); err != nil {
		return fmt.Errorf("%w: %v", collage.ErrInvalidArgument, err)
	}
	return nil
}

func (p Params) Grid() collage.GridSpec {
	return collage.GridSpec{
		Rows:         p.Rows,
		Cols:         p.Cols,
		CellWidth:    p.CellWidth,
		CellHeight:   p.CellHeight,
		Gutter:       p.Gutter,
		Padding:      p.Padding,
		CornerRadius: p.Radius,
	}
}

func (p Params) Style() (collage.StyleSpec, error) {
	bg, err := ParseColor(p.Background)
	if err != nil {
		return collage.StyleSpec{}, err
	}

	fit := collage.Cover
	if p.Fit != "" {
		if fit, err = collage.ParseFitMode(p.Fit); err != nil {
			return collage.StyleSpec{}, err
		}
	}

	return collage.StyleSpec{Background: bg, DrawFrame: p.Frame, Fit: fit}, nil
}

// SortOrder returns the parsed order, falling back to upload order.
func (p Params) SortOrder() gallery.Order {
	o, err := gallery.ParseOrder(p.Order)
	if err != nil {
		return gallery.OrderUpload
	}
	return o
}

// ParseColor parses "#rrggbb" or "#rgb" into an opaque color.
func ParseColor(s string) (c color.NRGBA, err error) {
	if s == "" {
		return color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}, nil
	}

	col, err := colorful.Hex(s)
	if err != nil {
		return c, fmt.Errorf("%w: background %q: %v", collage.ErrInvalidArgument, s, err)
	}
	r, g, b := col.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 0xff}, nil
}
