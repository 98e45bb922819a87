package render

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/dkoosis/ddoplot/pkg/chart"
)

// SVG renders a chart as an SVG document with go-chart. A zero Width or
// Height keeps go-chart's default canvas.
type SVG struct {
	Width  int
	Height int
}

// NewSVG creates an SVG renderer with the default canvas size.
func NewSVG() *SVG {
	return &SVG{}
}

// Render draws c into memory first so a failed render writes nothing to w.
func (s *SVG) Render(w io.Writer, c *chart.Chart) error {
	graph := s.build(c)

	var buf bytes.Buffer
	if err := graph.Render(gochart.SVG, &buf); err != nil {
		return fmt.Errorf("rendering svg: %w", err)
	}
	if _, err := buf.WriteTo(w); err != nil {
		return fmt.Errorf("writing svg: %w", err)
	}
	return nil
}

func (s *SVG) build(c *chart.Chart) gochart.Chart {
	series := make([]gochart.Series, 0, len(c.Series)+1)
	for _, cs := range c.Series {
		// go-chart rejects series without values.
		if len(cs.Points) == 0 {
			continue
		}
		xs, ys := split(cs)
		series = append(series, gochart.ContinuousSeries{
			Name:    cs.Legend,
			XValues: xs,
			YValues: ys,
			Style:   markerStyle(cs.Marker, hexColor(cs.Color)),
		})
	}
	if len(series) == 0 {
		series = append(series, placeholder(c))
	}

	xr := c.XRange
	if xr.Span() <= 0 {
		xr.High = xr.Low + 1
	}

	graph := gochart.Chart{
		Width:  s.Width,
		Height: s.Height,
		Background: gochart.Style{
			Padding: gochart.Box{Top: 20, Left: 20, Right: 20, Bottom: 20},
		},
		XAxis: gochart.XAxis{
			Name:  c.XLabel,
			Range: &gochart.ContinuousRange{Min: xr.Low, Max: xr.High},
		},
		YAxis: gochart.YAxis{
			Name:  c.YLabel,
			Range: &gochart.ContinuousRange{Min: c.YRange.Low, Max: c.YRange.High},
		},
		Series: series,
	}
	graph.Elements = []gochart.Renderable{gochart.Legend(&graph)}
	return graph
}

// markerStyle approximates the fixed marker shapes with go-chart's line and
// dot styles: circle is a solid line with dots, cross a dashed line with small
// dots, square a thin line with large dots.
func markerStyle(m chart.Marker, col drawing.Color) gochart.Style {
	st := gochart.Style{
		StrokeColor: col,
		StrokeWidth: 1.5,
		DotColor:    col,
		DotWidth:    3,
	}
	switch m {
	case chart.MarkerCross:
		st.StrokeDashArray = []float64{5.0, 3.0}
		st.DotWidth = 2
	case chart.MarkerSquare:
		st.StrokeWidth = 1
		st.DotWidth = 5
	}
	return st
}

// placeholder keeps an empty chart renderable: an invisible segment across
// the axis ranges.
func placeholder(c *chart.Chart) gochart.ContinuousSeries {
	return gochart.ContinuousSeries{
		XValues: []float64{c.XRange.Low, c.XRange.High},
		YValues: []float64{c.YRange.Low, c.YRange.Low},
		Style: gochart.Style{
			StrokeColor: drawing.ColorTransparent,
			StrokeWidth: 1,
		},
	}
}

func split(s chart.Series) (xs, ys []float64) {
	xs = make([]float64, len(s.Points))
	ys = make([]float64, len(s.Points))
	for i, p := range s.Points {
		xs[i], ys[i] = p.X, p.Y
	}
	return xs, ys
}

func hexColor(s string) drawing.Color {
	return drawing.ColorFromHex(strings.TrimPrefix(s, "#"))
}

var _ Renderer = (*SVG)(nil)
