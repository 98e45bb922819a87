package trace

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// ErrUnknownRecord is returned when an exported record carries no known tag.
var ErrUnknownRecord = errors.New("unknown record variant")

// Exported records are externally tagged, one key naming the variant:
//
//	{"Ongoing":{"explored":6700,"lb":11,"ub":12,"fringe":90}}
//	{"Final":{"explored":6790,"opt_value":11}}
type ongoingJSON struct {
	Explored uint64 `json:"explored"`
	LB       int64  `json:"lb"`
	UB       int64  `json:"ub"`
	Fringe   uint64 `json:"fringe"`
}

type finalJSON struct {
	Explored uint64 `json:"explored"`
	OptValue int64  `json:"opt_value"`
}

type recordJSON struct {
	Ongoing *ongoingJSON `json:"Ongoing,omitempty"`
	Final   *finalJSON   `json:"Final,omitempty"`
}

type traceJSON struct {
	Name  *string      `json:"name"`
	Lines []recordJSON `json:"lines"`
}

// MarshalJSON writes the tagged Ongoing form.
func (o Ongoing) MarshalJSON() ([]byte, error) {
	return json.Marshal(toJSON(o))
}

// MarshalJSON writes the tagged Final form.
func (f Final) MarshalJSON() ([]byte, error) {
	return json.Marshal(toJSON(f))
}

// MarshalJSON writes the trace with a null name when unnamed.
func (t *Trace) MarshalJSON() ([]byte, error) {
	out := traceJSON{Lines: make([]recordJSON, 0, len(t.Records))}
	if t.Name != "" {
		name := t.Name
		out.Name = &name
	}
	for _, r := range t.Records {
		out.Lines = append(out.Lines, toJSON(r))
	}
	return json.Marshal(out)
}

// UnmarshalJSON reads the form produced by MarshalJSON.
func (t *Trace) UnmarshalJSON(data []byte) error {
	var in traceJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	t.Name = ""
	if in.Name != nil {
		t.Name = *in.Name
	}
	t.Records = make([]Record, 0, len(in.Lines))
	for i, rj := range in.Lines {
		r, err := fromJSON(rj)
		if err != nil {
			return fmt.Errorf("line %d: %w", i, err)
		}
		t.Records = append(t.Records, r)
	}
	return nil
}

// Export writes traces as an indented JSON array.
func Export(w io.Writer, traces []*Trace) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(traces); err != nil {
		return fmt.Errorf("encoding traces: %w", err)
	}
	return nil
}

// Import reads traces written by Export. A single trace object is accepted
// as well as an array.
func Import(data []byte) ([]*Trace, error) {
	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '[' {
		var many []*Trace
		if err := json.Unmarshal(trimmed, &many); err != nil {
			return nil, fmt.Errorf("decoding traces: %w", err)
		}
		return many, nil
	}
	var one Trace
	if err := json.Unmarshal(data, &one); err != nil {
		return nil, fmt.Errorf("decoding traces: %w", err)
	}
	return []*Trace{&one}, nil
}

func toJSON(r Record) recordJSON {
	switch v := r.(type) {
	case Ongoing:
		return recordJSON{Ongoing: &ongoingJSON{Explored: v.Explored, LB: v.LowerBound, UB: v.UpperBound, Fringe: v.FrontierSize}}
	case Final:
		return recordJSON{Final: &finalJSON{Explored: v.Explored, OptValue: v.Optimum}}
	default:
		return recordJSON{}
	}
}

func fromJSON(rj recordJSON) (Record, error) {
	switch {
	case rj.Ongoing != nil && rj.Final == nil:
		o := rj.Ongoing
		return Ongoing{Explored: o.Explored, LowerBound: o.LB, UpperBound: o.UB, FrontierSize: o.Fringe}, nil
	case rj.Final != nil && rj.Ongoing == nil:
		return Final{Explored: rj.Final.Explored, Optimum: rj.Final.OptValue}, nil
	default:
		return nil, ErrUnknownRecord
	}
}
