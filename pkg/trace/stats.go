package trace

// Stats summarises one trace for the footer under a chart.
type Stats struct {
	Records  int
	Ongoing  int
	Finals   int
	Explored uint64 // explored count of the last record
	BestLB   int64  // highest lower bound seen
	BestUB   int64  // lowest upper bound seen
	Optimum  int64  // valid when Solved
	Solved   bool   // a Final line was present
}

// Gap returns BestUB - BestLB, or zero when the trace is empty.
func (s Stats) Gap() int64 {
	if s.Records == 0 {
		return 0
	}
	return s.BestUB - s.BestLB
}

// ComputeStats walks the records once.
func ComputeStats(t *Trace) Stats {
	var s Stats
	s.Records = len(t.Records)
	for i, r := range t.Records {
		if i == 0 || r.Lower() > s.BestLB {
			s.BestLB = r.Lower()
		}
		if i == 0 || r.Upper() < s.BestUB {
			s.BestUB = r.Upper()
		}
		s.Explored = r.ExploredNodes()
		switch v := r.(type) {
		case Ongoing:
			s.Ongoing++
		case Final:
			s.Finals++
			s.Solved = true
			s.Optimum = v.Optimum
		}
	}
	return s
}
