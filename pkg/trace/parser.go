package trace

import (
	"fmt"
	"regexp"
	"strconv"
)

var (
	ongoingRe = regexp.MustCompile(`Explored (\d+), LB (-?\d+), UB (-?\d+), Fringe sz (\d+)`)
	finalRe   = regexp.MustCompile(`Final (-?\d+), Explored (\d+)`)
)

// ParseLine converts one log line into a Record. The Ongoing grammar is tried
// before the Final one. Lines matching neither return false; callers skip them.
func ParseLine(line string) (Record, bool) {
	if m := ongoingRe.FindStringSubmatch(line); m != nil {
		return Ongoing{
			Explored:     mustUint(m[1]),
			LowerBound:   mustInt(m[2]),
			UpperBound:   mustInt(m[3]),
			FrontierSize: mustUint(m[4]),
		}, true
	}
	if m := finalRe.FindStringSubmatch(line); m != nil {
		return Final{
			Explored: mustUint(m[2]),
			Optimum:  mustInt(m[1]),
		}, true
	}
	return nil, false
}

// mustUint and mustInt only see digit runs accepted by the grammar, so a
// failure here means a value overflowed 64 bits.
func mustUint(s string) uint64 {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		panic(fmt.Sprintf("trace: capture %q accepted by grammar but not parseable: %v", s, err))
	}
	return v
}

func mustInt(s string) int64 {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		panic(fmt.Sprintf("trace: capture %q accepted by grammar but not parseable: %v", s, err))
	}
	return v
}
