package render

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/dkoosis/ddoplot/pkg/chart"
)

// Theme defines styles and glyphs for text rendering.
type Theme struct {
	Name    string
	Colored bool // paint series in their palette color
	Title   lipgloss.Style
	Axis    lipgloss.Style
	Muted   lipgloss.Style
	Bold    lipgloss.Style
	Glyphs  ThemeGlyphs
}

// ThemeGlyphs defines the characters used to draw a chart.
type ThemeGlyphs struct {
	Circle     string
	Cross      string
	Square     string
	Vertical   string
	Horizontal string
	Corner     string
	Tick       string
}

// DefaultTheme returns a colored Unicode theme.
func DefaultTheme() Theme {
	return Theme{
		Name:    "default",
		Colored: true,
		Title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")), // blue
		Axis:    lipgloss.NewStyle().Foreground(lipgloss.Color("242")),           // gray
		Muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Bold:    lipgloss.NewStyle().Bold(true),
		Glyphs: ThemeGlyphs{
			Circle:     "●",
			Cross:      "✕",
			Square:     "■",
			Vertical:   "│",
			Horizontal: "─",
			Corner:     "└",
			Tick:       "┤",
		},
	}
}

// MonoTheme returns a plain ASCII theme (no colors).
func MonoTheme() Theme {
	return Theme{
		Name:  "mono",
		Title: lipgloss.NewStyle(),
		Axis:  lipgloss.NewStyle(),
		Muted: lipgloss.NewStyle(),
		Bold:  lipgloss.NewStyle(),
		Glyphs: ThemeGlyphs{
			Circle:     "o",
			Cross:      "x",
			Square:     "#",
			Vertical:   "|",
			Horizontal: "-",
			Corner:     "+",
			Tick:       "+",
		},
	}
}

// ThemeByName returns a theme by name, defaulting to DefaultTheme.
func ThemeByName(name string) Theme {
	switch name {
	case "mono":
		return MonoTheme()
	default:
		return DefaultTheme()
	}
}

// Marker returns the glyph for m.
func (t Theme) Marker(m chart.Marker) string {
	switch m {
	case chart.MarkerCross:
		return t.Glyphs.Cross
	case chart.MarkerSquare:
		return t.Glyphs.Square
	default:
		return t.Glyphs.Circle
	}
}

// SeriesStyle returns the style painting a series of the given hex color.
func (t Theme) SeriesStyle(hex string) lipgloss.Style {
	if !t.Colored {
		return lipgloss.NewStyle()
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hex))
}
