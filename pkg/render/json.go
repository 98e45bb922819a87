package render

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/dkoosis/ddoplot/pkg/chart"
)

// JSON renders the chart description itself, for plotting tools outside
// ddoplot.
type JSON struct{}

// NewJSON creates a JSON renderer.
func NewJSON() *JSON {
	return &JSON{}
}

// jsonOutput is the top-level JSON structure.
type jsonOutput struct {
	Version string       `json:"version"`
	Mode    string       `json:"mode"`
	XLabel  string       `json:"x_label"`
	YLabel  string       `json:"y_label"`
	XRange  [2]float64   `json:"x_range"`
	YRange  [2]float64   `json:"y_range"`
	Series  []jsonSeries `json:"series"`
}

type jsonSeries struct {
	Legend string       `json:"legend"`
	Kind   string       `json:"kind"`
	Marker string       `json:"marker"`
	Color  string       `json:"color"`
	Trace  int          `json:"trace"`
	Points [][2]float64 `json:"points"`
}

// Render writes c as indented JSON.
func (j *JSON) Render(w io.Writer, c *chart.Chart) error {
	out := jsonOutput{
		Version: "1.0",
		Mode:    c.Mode.String(),
		XLabel:  c.XLabel,
		YLabel:  c.YLabel,
		XRange:  [2]float64{c.XRange.Low, c.XRange.High},
		YRange:  [2]float64{c.YRange.Low, c.YRange.High},
		Series:  make([]jsonSeries, 0, len(c.Series)),
	}
	for _, s := range c.Series {
		js := jsonSeries{
			Legend: s.Legend,
			Kind:   s.Kind.String(),
			Marker: s.Marker.String(),
			Color:  s.Color,
			Trace:  s.Trace,
			Points: make([][2]float64, 0, len(s.Points)),
		}
		for _, p := range s.Points {
			js.Points = append(js.Points, [2]float64{p.X, p.Y})
		}
		out.Series = append(out.Series, js)
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding chart: %w", err)
	}
	_, err = w.Write(append(data, '\n'))
	return err
}

var _ Renderer = (*JSON)(nil)
