package collage

import (
	"fmt"
	"image/color"
	"strings"
)

// FitMode selects how a source image is fitted into its cell.
type FitMode int

const (
	// Cover scales the source to fill the cell and crops the overflow.
	Cover FitMode = iota
	// Contain shrinks the source to fit inside the cell, padding with transparency.
	Contain
)

func (m FitMode) String() string {
	switch m {
	case Cover:
		return "cover"
	case Contain:
		return "contain"
	}
	return fmt.Sprintf("FitMode(%d)", int(m))
}

// ParseFitMode accepts "cover" or "contain" in any case.
func ParseFitMode(s string) (FitMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "cover":
		return Cover, nil
	case "contain":
		return Contain, nil
	}
	return Cover, fmt.Errorf("%w: unknown fit mode %q", ErrInvalidArgument, s)
}

func (m FitMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *FitMode) UnmarshalText(b []byte) error {
	v, err := ParseFitMode(string(b))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// StyleSpec holds the per-collage decoration settings.
type StyleSpec struct {
	Background color.NRGBA
	DrawFrame  bool
	Fit        FitMode
}

func (s StyleSpec) Validate() error {
	if s.Fit != Cover && s.Fit != Contain {
		return fmt.Errorf("%w: unknown fit mode %d", ErrInvalidArgument, int(s.Fit))
	}
	return nil
}
