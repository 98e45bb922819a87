package trace

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Trace is the ordered list of records parsed from one source. Records keep
// line order; duplicate or decreasing explored counts are left as they are.
// A Trace is not modified after it is built.
type Trace struct {
	Name    string // legend prefix; empty means unnamed
	Records []Record
}

// Build reads r line by line and keeps every line ParseLine accepts.
// Lines have no length limit. Only read errors are returned; unrecognised
// lines are skipped.
func Build(r io.Reader, name string) (*Trace, error) {
	t := &Trace{Name: name, Records: make([]Record, 0)}
	br := bufio.NewReaderSize(r, 64*1024)

	var skipped int
	for {
		line, err := br.ReadString('\n')
		if line != "" {
			if rec, ok := ParseLine(strings.TrimRight(line, "\r\n")); ok {
				t.Records = append(t.Records, rec)
			} else {
				skipped++
			}
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading trace: %w", err)
		}
	}
	logrus.Debugf("trace %q: %d records, %d lines skipped", t.Name, len(t.Records), skipped)
	return t, nil
}

// Parse builds an unnamed Trace from in-memory text.
func Parse(text string) *Trace {
	// A strings.Reader never returns an error other than io.EOF.
	t, _ := Build(strings.NewReader(text), "")
	return t
}

// Load reads the log at path. The trace is named after the file's base name
// without its extension.
func Load(path string) (*Trace, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	t, err := Build(f, stem(path))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return t, nil
}

// LoadAll loads every path concurrently. The result follows the order of
// paths; the first failure cancels the rest.
func LoadAll(ctx context.Context, paths []string) ([]*Trace, error) {
	traces := make([]*Trace, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	for i, p := range paths {
		i, p := i, p
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			t, err := Load(p)
			if err != nil {
				return err
			}
			traces[i] = t
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return traces, nil
}

// Len returns the number of records.
func (t *Trace) Len() int { return len(t.Records) }

func stem(path string) string {
	base := filepath.Base(path)
	if s := strings.TrimSuffix(base, filepath.Ext(base)); s != "" {
		return s
	}
	return base // dotfile such as ".log"
}
