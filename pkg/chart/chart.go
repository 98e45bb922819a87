// Package chart turns parsed traces into an abstract chart description.
// A Chart is pure data: styled point series, axis labels and ranges.
// Renderers decide how to draw it.
package chart

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dkoosis/ddoplot/pkg/trace"
)

// ErrUnknownMode is returned by ParseMode for unrecognised names.
var ErrUnknownMode = errors.New("unknown chart mode")

// Mode selects which metrics a chart plots.
type Mode int

const (
	ModeBounds   Mode = iota // lower and upper bound per trace
	ModeFrontier             // frontier size per trace
)

func (m Mode) String() string {
	if m == ModeFrontier {
		return "frontier"
	}
	return "bounds"
}

// ParseMode accepts "bounds" or "frontier" (also "fringe"), case-insensitive.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "bounds":
		return ModeBounds, nil
	case "frontier", "fringe":
		return ModeFrontier, nil
	default:
		return ModeBounds, fmt.Errorf("%w %q (expected bounds or frontier)", ErrUnknownMode, s)
	}
}

// Marker is the point shape of a series. Each series kind has a fixed marker.
type Marker int

const (
	MarkerCircle Marker = iota
	MarkerCross
	MarkerSquare
)

func (m Marker) String() string {
	switch m {
	case MarkerCross:
		return "cross"
	case MarkerSquare:
		return "square"
	default:
		return "circle"
	}
}

// Axis labels.
const (
	XLabel         = "Explored Nodes"
	YLabelBounds   = "Bound Value"
	YLabelFrontier = "Frontier Size"
)

// Range is an inclusive [Low, High] interval.
type Range struct {
	Low  float64
	High float64
}

// Span returns High - Low.
func (r Range) Span() float64 { return r.High - r.Low }

// Series is one styled point sequence.
type Series struct {
	Legend string
	Kind   trace.Metric
	Marker Marker
	Color  string // "#RRGGBB"
	Trace  int    // index of the source trace
	Points []trace.Point
}

// Chart is everything a renderer needs.
type Chart struct {
	Mode   Mode
	XLabel string
	YLabel string
	XRange Range
	YRange Range
	Series []Series
}
