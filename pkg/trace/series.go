package trace

// Metric selects which record value a series plots against explored nodes.
type Metric int

const (
	MetricLowerBound Metric = iota
	MetricUpperBound
	MetricFrontier
)

// String returns the human label used in legends.
func (m Metric) String() string {
	switch m {
	case MetricLowerBound:
		return "Lower Bound"
	case MetricUpperBound:
		return "Upper Bound"
	case MetricFrontier:
		return "Frontier Size"
	default:
		return "Unknown"
	}
}

// Point is one (explored, value) coordinate.
type Point struct {
	X float64
	Y float64
}

// Project returns one point per record, in record order. Nothing is merged or
// sorted, so repeated explored counts yield repeated X values.
func (t *Trace) Project(m Metric) []Point {
	pts := make([]Point, 0, len(t.Records))
	for _, r := range t.Records {
		pts = append(pts, Point{X: float64(r.ExploredNodes()), Y: value(r, m)})
	}
	return pts
}

// LowerBounds projects the lower bound of every record.
func (t *Trace) LowerBounds() []Point { return t.Project(MetricLowerBound) }

// UpperBounds projects the upper bound of every record.
func (t *Trace) UpperBounds() []Point { return t.Project(MetricUpperBound) }

// FrontierSizes projects the frontier size of every record.
func (t *Trace) FrontierSizes() []Point { return t.Project(MetricFrontier) }

func value(r Record, m Metric) float64 {
	switch m {
	case MetricLowerBound:
		return float64(r.Lower())
	case MetricUpperBound:
		return float64(r.Upper())
	default:
		return float64(r.Frontier())
	}
}
