package chart

import "github.com/dkoosis/ddoplot/pkg/trace"

// Palette holds the trace colors. Trace i uses Palette[i%len(Palette)].
var Palette = [5]string{"#C1EBE1", "#90B9A9", "#FF0000", "#00FF00", "#0000FF"}

// ColorFor returns the palette color of the i-th trace.
func ColorFor(i int) string {
	return Palette[i%len(Palette)]
}

// MarkerFor returns the fixed marker of a series kind.
func MarkerFor(m trace.Metric) Marker {
	switch m {
	case trace.MetricUpperBound:
		return MarkerCross
	case trace.MetricFrontier:
		return MarkerSquare
	default:
		return MarkerCircle
	}
}

// Legend labels a series: "<name> - <metric>", or the bare metric label for
// an unnamed trace.
func Legend(name string, m trace.Metric) string {
	if name == "" {
		return m.String()
	}
	return name + " - " + m.String()
}

// Compose builds the chart description for traces in mode. Bounds charts get a
// lower-bound then an upper-bound series per trace; frontier charts get one
// frontier series per trace. Both series of a trace share its color.
func Compose(traces []*trace.Trace, mode Mode) *Chart {
	c := &Chart{
		Mode:   mode,
		XLabel: XLabel,
		YLabel: YLabelBounds,
		XRange: XRange(traces),
		YRange: YRange(traces, mode),
	}
	metrics := []trace.Metric{trace.MetricLowerBound, trace.MetricUpperBound}
	if mode == ModeFrontier {
		c.YLabel = YLabelFrontier
		metrics = []trace.Metric{trace.MetricFrontier}
	}

	c.Series = make([]Series, 0, len(traces)*len(metrics))
	for i, t := range traces {
		color := ColorFor(i)
		for _, m := range metrics {
			c.Series = append(c.Series, Series{
				Legend: Legend(t.Name, m),
				Kind:   m,
				Marker: MarkerFor(m),
				Color:  color,
				Trace:  i,
				Points: t.Project(m),
			})
		}
	}
	return c
}
