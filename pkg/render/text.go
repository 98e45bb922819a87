package render

import (
	"io"
	"math"
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/dkoosis/ddoplot/pkg/chart"
	"github.com/dkoosis/ddoplot/pkg/layout"
	"github.com/dkoosis/ddoplot/pkg/trace"
)

// Summary is one footer line under a text chart.
type Summary struct {
	Name  string
	Stats trace.Stats
}

// Text renders a chart as a character grid of the given plot dimension.
// Axis labels and the legend are drawn around the grid.
type Text struct {
	theme     Theme
	dim       layout.Dimension
	summaries []Summary
	printer   *message.Printer
}

// NewText creates a text renderer. Non-positive dimensions are raised to one
// cell so that a degenerate layout still produces output.
func NewText(theme Theme, dim layout.Dimension) *Text {
	dim.Width = max(dim.Width, 1)
	dim.Height = max(dim.Height, 1)
	return &Text{theme: theme, dim: dim, printer: message.NewPrinter(language.English)}
}

// WithSummaries appends per-trace summary lines after the legend.
func (t *Text) WithSummaries(s []Summary) *Text {
	t.summaries = s
	return t
}

type cell struct {
	glyph  string
	series int
}

// Render draws c to w.
func (t *Text) Render(w io.Writer, c *chart.Chart) error {
	_, err := io.WriteString(w, t.String(c))
	return err
}

// String returns the rendered chart.
func (t *Text) String(c *chart.Chart) string {
	grid := t.plot(c)

	top, mid, bottom := t.number(c.YRange.High), t.number((c.YRange.High+c.YRange.Low)/2), t.number(c.YRange.Low)
	labelW := max(runewidth.StringWidth(top), runewidth.StringWidth(mid), runewidth.StringWidth(bottom))
	midRow := t.dim.Height / 2

	var sb strings.Builder
	sb.WriteString(t.theme.Title.Render(c.YLabel))
	sb.WriteString("\n")

	for row := range grid {
		label := ""
		switch {
		case row == 0:
			label = top
		case row == t.dim.Height-1:
			label = bottom
		case row == midRow:
			label = mid
		}
		axis := t.theme.Glyphs.Vertical
		if label != "" {
			axis = t.theme.Glyphs.Tick
		}
		sb.WriteString(t.theme.Muted.Render(runewidth.FillLeft(label, labelW)))
		sb.WriteString(" ")
		sb.WriteString(t.theme.Axis.Render(axis))
		for _, cl := range grid[row] {
			if cl.series < 0 {
				sb.WriteString(" ")
				continue
			}
			sb.WriteString(t.theme.SeriesStyle(c.Series[cl.series].Color).Render(cl.glyph))
		}
		sb.WriteString("\n")
	}

	// x axis
	pad := strings.Repeat(" ", labelW+1)
	sb.WriteString(pad)
	sb.WriteString(t.theme.Axis.Render(t.theme.Glyphs.Corner + strings.Repeat(t.theme.Glyphs.Horizontal, t.dim.Width)))
	sb.WriteString("\n")
	sb.WriteString(pad + " ")
	sb.WriteString(t.theme.Muted.Render(t.xTicks(c.XRange)))
	sb.WriteString("\n")
	sb.WriteString(pad + " ")
	sb.WriteString(t.theme.Title.Render(center(c.XLabel, t.dim.Width)))
	sb.WriteString("\n")

	t.writeLegend(&sb, c, labelW+2)
	t.writeSummaries(&sb, labelW+2)
	return sb.String()
}

// plot places every point on the grid. Row 0 is the top. Later series draw
// over earlier ones where they share a cell.
func (t *Text) plot(c *chart.Chart) [][]cell {
	grid := make([][]cell, t.dim.Height)
	for r := range grid {
		grid[r] = make([]cell, t.dim.Width)
		for col := range grid[r] {
			grid[r][col].series = -1
		}
	}

	for si, s := range c.Series {
		glyph := t.theme.Marker(s.Marker)
		for _, p := range s.Points {
			col := scale(p.X, c.XRange, t.dim.Width)
			row := t.dim.Height - 1 - scale(p.Y, c.YRange, t.dim.Height)
			grid[row][col] = cell{glyph: glyph, series: si}
		}
	}
	return grid
}

// scale maps v in r onto a cell index in [0, cells). A zero-width range puts
// every value in the middle cell.
func scale(v float64, r chart.Range, cells int) int {
	span := r.Span()
	if span <= 0 || math.IsNaN(span) {
		return cells / 2
	}
	idx := int(math.Round((v - r.Low) / span * float64(cells-1)))
	return min(max(idx, 0), cells-1)
}

func (t *Text) xTicks(r chart.Range) string {
	low, high := t.number(r.Low), t.number(r.High)
	gap := t.dim.Width - runewidth.StringWidth(low) - runewidth.StringWidth(high)
	if gap < 1 {
		return runewidth.Truncate(low, t.dim.Width, "…")
	}
	return low + strings.Repeat(" ", gap) + high
}

func (t *Text) writeLegend(sb *strings.Builder, c *chart.Chart, indent int) {
	width := indent + t.dim.Width
	for _, s := range c.Series {
		sb.WriteString(strings.Repeat(" ", indent))
		sb.WriteString(t.theme.SeriesStyle(s.Color).Render(t.theme.Marker(s.Marker)))
		sb.WriteString(" ")
		sb.WriteString(runewidth.Truncate(s.Legend, max(width-indent-2, 1), "…"))
		sb.WriteString("\n")
	}
}

func (t *Text) writeSummaries(sb *strings.Builder, indent int) {
	if len(t.summaries) == 0 {
		return
	}
	sb.WriteString("\n")
	for _, s := range t.summaries {
		name := s.Name
		if name == "" {
			name = "trace"
		}
		sb.WriteString(strings.Repeat(" ", indent))
		sb.WriteString(t.theme.Bold.Render(name + ": "))
		sb.WriteString(t.theme.Muted.Render(t.describe(s.Stats)))
		sb.WriteString("\n")
	}
}

func (t *Text) describe(s trace.Stats) string {
	switch {
	case s.Records == 0:
		return "no metric lines"
	case s.Solved:
		return t.printer.Sprintf("optimum %d after %d explored nodes", s.Optimum, s.Explored)
	default:
		return t.printer.Sprintf("LB %d, UB %d, gap %d after %d explored nodes", s.BestLB, s.BestUB, s.Gap(), s.Explored)
	}
}

// number formats an axis value with thousands separators. Integral values
// drop the fraction.
func (t *Text) number(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return t.printer.Sprintf("%d", int64(v))
	}
	return t.printer.Sprintf("%.1f", v)
}

func center(s string, width int) string {
	w := runewidth.StringWidth(s)
	if w >= width {
		return runewidth.Truncate(s, width, "…")
	}
	return runewidth.FillRight(strings.Repeat(" ", (width-w)/2)+s, width)
}

var _ Renderer = (*Text)(nil)

