package collage

import (
	"fmt"
	"image"
)

// GridSpec describes the fixed geometry of a collage grid.
type GridSpec struct {
	Rows         int `json:"rows" yaml:"rows"`
	Cols         int `json:"cols" yaml:"cols"`
	CellWidth    int `json:"cell_width" yaml:"cell_width"`
	CellHeight   int `json:"cell_height" yaml:"cell_height"`
	Gutter       int `json:"gutter" yaml:"gutter"`
	Padding      int `json:"padding" yaml:"padding"`
	CornerRadius int `json:"corner_radius" yaml:"corner_radius"`
}

// Validate reports an ErrInvalidArgument if the grid cannot be laid out.
func (g GridSpec) Validate() error {
	switch {
	case g.Rows < 1:
		return fmt.Errorf("%w: rows must be >= 1, got %d", ErrInvalidArgument, g.Rows)
	case g.Cols < 1:
		return fmt.Errorf("%w: cols must be >= 1, got %d", ErrInvalidArgument, g.Cols)
	case g.CellWidth < 1:
		return fmt.Errorf("%w: cell width must be >= 1, got %d", ErrInvalidArgument, g.CellWidth)
	case g.CellHeight < 1:
		return fmt.Errorf("%w: cell height must be >= 1, got %d", ErrInvalidArgument, g.CellHeight)
	case g.Gutter < 0:
		return fmt.Errorf("%w: gutter must be >= 0, got %d", ErrInvalidArgument, g.Gutter)
	case g.Padding < 0:
		return fmt.Errorf("%w: padding must be >= 0, got %d", ErrInvalidArgument, g.Padding)
	case g.CornerRadius < 0:
		return fmt.Errorf("%w: corner radius must be >= 0, got %d", ErrInvalidArgument, g.CornerRadius)
	}
	return nil
}

// Slot is the (row, col) address of a cell.
type Slot struct {
	Row int
	Col int
}

// Layout is the planned geometry of a grid.
type Layout struct {
	Width  int
	Height int
	grid   GridSpec
}

// PlanLayout computes the canvas size for g.
func PlanLayout(g GridSpec) (Layout, error) {
	if err := g.Validate(); err != nil {
		return Layout{}, err
	}

	return Layout{
		Width:  g.Cols*g.CellWidth + (g.Cols-1)*g.Gutter + 2*g.Padding,
		Height: g.Rows*g.CellHeight + (g.Rows-1)*g.Gutter + 2*g.Padding,
		grid:   g,
	}, nil
}

// Capacity is the number of cells in the grid.
func (l Layout) Capacity() int {
	return l.grid.Rows * l.grid.Cols
}

// Bounds returns the canvas rectangle.
func (l Layout) Bounds() image.Rectangle {
	return image.Rect(0, 0, l.Width, l.Height)
}

// Origin returns the top-left pixel of the cell at (row, col).
func (l Layout) Origin(row, col int) image.Point {
	g := l.grid
	return image.Pt(
		g.Padding+col*(g.CellWidth+g.Gutter),
		g.Padding+row*(g.CellHeight+g.Gutter),
	)
}

// Cell returns the canvas rectangle covered by the cell at (row, col).
func (l Layout) Cell(row, col int) image.Rectangle {
	o := l.Origin(row, col)
	return image.Rect(o.X, o.Y, o.X+l.grid.CellWidth, o.Y+l.grid.CellHeight)
}

// Slots lists every slot in row-major order.
func (l Layout) Slots() []Slot {
	slots := make([]Slot, 0, l.Capacity())
	for r := 0; r < l.grid.Rows; r++ {
		for c := 0; c < l.grid.Cols; c++ {
			slots = append(slots, Slot{Row: r, Col: c})
		}
	}
	return slots
}
