// Package trace parses ddo solver progress logs into metric records.
//
// A solver log mixes progress lines with unrelated output (banners, solution
// dumps). Only two line shapes carry metrics:
//
//	Explored 6700, LB 11, UB 12, Fringe sz 90
//	Final 11, Explored 6790
//
// Everything else is dropped without error.
package trace

// FinalFrontier is the frontier size reported for a Final record. A Final line
// carries no frontier data; zero is a convention, not a measurement.
const FinalFrontier uint64 = 0

// Record is one parsed metric line. The concrete type is either Ongoing or
// Final; the accessors give every consumer the same view of both.
type Record interface {
	ExploredNodes() uint64
	Lower() int64
	Upper() int64
	Frontier() uint64

	isRecord()
}

// Ongoing is a progress line emitted while the search is running.
type Ongoing struct {
	Explored     uint64
	LowerBound   int64
	UpperBound   int64
	FrontierSize uint64
}

func (o Ongoing) ExploredNodes() uint64 { return o.Explored }
func (o Ongoing) Lower() int64          { return o.LowerBound }
func (o Ongoing) Upper() int64          { return o.UpperBound }
func (o Ongoing) Frontier() uint64      { return o.FrontierSize }
func (Ongoing) isRecord()               {}

// Final is the closing line carrying the optimal value. Both bounds collapse
// onto the optimum.
type Final struct {
	Explored uint64
	Optimum  int64
}

func (f Final) ExploredNodes() uint64 { return f.Explored }
func (f Final) Lower() int64          { return f.Optimum }
func (f Final) Upper() int64          { return f.Optimum }
func (Final) Frontier() uint64        { return FinalFrontier }
func (Final) isRecord()               {}
