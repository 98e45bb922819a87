package chart

import "github.com/dkoosis/ddoplot/pkg/trace"

// RangeMargin keeps the extreme points off the plot border.
const RangeMargin = 1

// YRange returns the value range over every trace for the given mode, widened
// by RangeMargin on both sides. With no records at all both extremes start
// at zero, giving [-1, 1].
func YRange(traces []*trace.Trace, mode Mode) Range {
	// float64 holds both int64 bounds and uint64 frontier sizes without wrapping.
	var low, high float64
	first := true
	visit := func(v float64) {
		if first {
			low, high = v, v
			first = false
			return
		}
		low = min(low, v)
		high = max(high, v)
	}

	for _, t := range traces {
		for _, r := range t.Records {
			if mode == ModeFrontier {
				visit(float64(r.Frontier()))
				continue
			}
			visit(float64(r.Lower()))
			visit(float64(r.Upper()))
		}
	}
	return Range{Low: low - RangeMargin, High: high + RangeMargin}
}

// XRange returns the explored-node extent without margin. An empty chart
// gets [0, 1] so scaling never divides by zero.
func XRange(traces []*trace.Trace) Range {
	var r Range
	first := true
	for _, t := range traces {
		for _, rec := range t.Records {
			x := float64(rec.ExploredNodes())
			if first {
				r = Range{Low: x, High: x}
				first = false
				continue
			}
			r.Low = min(r.Low, x)
			r.High = max(r.High, x)
		}
	}
	if first {
		return Range{Low: 0, High: 1}
	}
	return r
}
