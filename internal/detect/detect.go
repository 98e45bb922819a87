// Package detect sniffs an input to tell a solver log from a trace export.
package detect

import (
	"bytes"
	"encoding/json"
)

// Format represents a recognized input format.
type Format int

const (
	SolverLog   Format = iota // raw ddo progress output
	TraceExport               // JSON written by trace.Export
)

func (f Format) String() string {
	if f == TraceExport {
		return "trace-export"
	}
	return "solver-log"
}

// Sniff examines the input to determine its format. Anything that is not a
// trace export is treated as a solver log, whose parser skips what it does
// not recognise.
func Sniff(data []byte) Format {
	data = bytes.TrimLeft(data, " \t\r\n")
	if len(data) == 0 {
		return SolverLog
	}
	switch data[0] {
	case '[':
		if isExportArray(data) {
			return TraceExport
		}
	case '{':
		if isExportObject(data) {
			return TraceExport
		}
	}
	return SolverLog
}

type exportProbe struct {
	Name  *string           `json:"name"`
	Lines []json.RawMessage `json:"lines"`
}

func isExportObject(data []byte) bool {
	var probe exportProbe
	if err := json.Unmarshal(data, &probe); err != nil {
		return false
	}
	return probe.Lines != nil
}

func isExportArray(data []byte) bool {
	var probes []exportProbe
	if err := json.Unmarshal(data, &probes); err != nil {
		return false
	}
	for _, p := range probes {
		if p.Lines == nil {
			return false
		}
	}
	return true
}
