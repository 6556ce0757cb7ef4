package params

import (
	"strconv"
	"strings"
)

// Key returns a canonical text form of p. Two parameter sets render the same
// collage from the same images exactly when their keys are equal.
func (p Params) Key() string {
	style, err := p.Style()
	bg, fit := p.Background, p.Fit
	if err == nil {
		c := style.Background
		bg = "#" + hex2(c.R) + hex2(c.G) + hex2(c.B)
		fit = style.Fit.String()
	}

	fields := []string{
		"r" + strconv.Itoa(p.Rows),
		"c" + strconv.Itoa(p.Cols),
		"w" + strconv.Itoa(p.CellWidth),
		"h" + strconv.Itoa(p.CellHeight),
		"g" + strconv.Itoa(p.Gutter),
		"p" + strconv.Itoa(p.Padding),
		"rad" + strconv.Itoa(p.Radius),
		"bg" + bg,
		"frame" + strconv.FormatBool(p.Frame),
		"fit" + fit,
		"order" + string(p.SortOrder()),
	}
	return strings.Join(fields, ";")
}

func hex2(v uint8) string {
	s := strconv.FormatUint(uint64(v), 16)
	if len(s) == 1 {
		return "0" + s
	}
	return s
}
