// Package render draws chart descriptions: SVG documents via go-chart, text
// charts for the terminal, and JSON for other tools.
package render

import (
	"io"

	"github.com/dkoosis/ddoplot/pkg/chart"
)

// Renderer writes a chart to w.
type Renderer interface {
	Render(w io.Writer, c *chart.Chart) error
}
