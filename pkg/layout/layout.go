// Package layout decides the character dimensions of a terminal chart.
package layout

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strconv"

	"golang.org/x/term"
)

// ErrBadDimension is returned for strings not of the form "width,height".
var ErrBadDimension = errors.New("input does not conform to format 'width,height'")

// TerminalMargin is removed from each probed dimension to leave room for
// borders and labels.
const TerminalMargin = 10

// Fallback is used when neither an explicit size nor a terminal is available.
var Fallback = Dimension{Width: 45, Height: 15}

var dimensionRe = regexp.MustCompile(`^\s*(\d+),\s*(\d+)\s*$`)

// Dimension is a width and height in character cells.
type Dimension struct {
	Width  int
	Height int
}

func (d Dimension) String() string { return fmt.Sprintf("%d,%d", d.Width, d.Height) }

// ParseDimension parses "<width>,<height>", allowing spaces after the comma.
func ParseDimension(s string) (Dimension, error) {
	m := dimensionRe.FindStringSubmatch(s)
	if m == nil {
		return Dimension{}, fmt.Errorf("%w: %q", ErrBadDimension, s)
	}
	w, err := strconv.Atoi(m[1])
	if err != nil {
		return Dimension{}, fmt.Errorf("%w: width %q: %v", ErrBadDimension, m[1], err)
	}
	h, err := strconv.Atoi(m[2])
	if err != nil {
		return Dimension{}, fmt.Errorf("%w: height %q: %v", ErrBadDimension, m[2], err)
	}
	return Dimension{Width: w, Height: h}, nil
}

// Probe reports the size of the controlling terminal, if any.
type Probe func() (Dimension, bool)

// Source names the rule Resolve applied.
type Source string

const (
	SourceExplicit Source = "explicit"
	SourceTerminal Source = "terminal"
	SourceFallback Source = "fallback"
)

// Resolve picks the chart size: an explicit dimension verbatim, else the
// probed terminal size minus TerminalMargin, else Fallback. A nil probe
// counts as no terminal.
func Resolve(explicit *Dimension, probe Probe) Dimension {
	d, _ := ResolveWithSource(explicit, probe)
	return d
}

// ResolveWithSource is Resolve that also reports which rule won.
func ResolveWithSource(explicit *Dimension, probe Probe) (Dimension, Source) {
	if explicit != nil {
		return *explicit, SourceExplicit
	}
	if probe != nil {
		if d, ok := probe(); ok {
			return Dimension{
				Width:  max(d.Width-TerminalMargin, 0),
				Height: max(d.Height-TerminalMargin, 0),
			}, SourceTerminal
		}
	}
	return Fallback, SourceFallback
}

// TerminalProbe queries the terminal attached to f.
func TerminalProbe(f *os.File) Probe {
	return func() (Dimension, bool) {
		if f == nil || !term.IsTerminal(int(f.Fd())) {
			return Dimension{}, false
		}
		w, h, err := term.GetSize(int(f.Fd()))
		if err != nil || w <= 0 || h <= 0 {
			return Dimension{}, false
		}
		return Dimension{Width: w, Height: h}, true
	}
}
