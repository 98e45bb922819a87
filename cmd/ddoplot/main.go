// ddoplot plots the progress of ddo solver runs.
//
// Usage:
//
//	solver knapsack.txt | ddoplot
//	ddoplot run1.log run2.log -o bounds.svg
//	ddoplot -i run.log --fringe -d 120,30
//	ddoplot view run1.log run2.log
//
// Each input is a solver log containing progress lines such as
//
//	Explored 5900, LB 11, UB 14, Fringe sz 890
//	Final 11, Explored 6790
//
// Other lines are ignored. Without inputs, stdin is read as one unnamed
// trace; stdin may also hold traces written earlier with --export.
//
// Output modes:
//
//	svg    written to the -o path with go-chart
//	text   character chart on stdout (default)
//	json   the chart description on stdout (--format json)
package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/dkoosis/ddoplot/internal/config"
	"github.com/dkoosis/ddoplot/internal/detect"
	"github.com/dkoosis/ddoplot/internal/version"
	"github.com/dkoosis/ddoplot/pkg/chart"
	"github.com/dkoosis/ddoplot/pkg/layout"
	"github.com/dkoosis/ddoplot/pkg/render"
	"github.com/dkoosis/ddoplot/pkg/trace"
	"github.com/dkoosis/ddoplot/pkg/view"
)

// Exit codes.
const (
	exitOK    = 0
	exitIO    = 1
	exitUsage = 2
)

// exitError carries the process exit code for a failure.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func ioFailure(err error) error    { return &exitError{code: exitIO, err: err} }
func usageFailure(err error) error { return &exitError{code: exitUsage, err: err} }

// probe resolves the terminal size; replaced in tests.
var probe = func() layout.Probe { return layout.TerminalProbe(os.Stdout) }

// runViewer starts the interactive viewer; replaced in tests.
var runViewer = view.Run

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

type options struct {
	inputs    []string
	output    string
	fringe    bool
	dimension string
	export    string
	format    string
	theme     string
	noColor   bool
	summary   bool
	logLevel  string
	config    string
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	root := newRootCmd(stdin, stdout, stderr)
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return exitOK
	}
	fmt.Fprintf(stderr, "ddoplot: %v\n", err)
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	// Flag and argument errors reported by cobra itself.
	return exitUsage
}

func newRootCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:   "ddoplot [flags] [file...]",
		Short: "Plot bounds and frontier size of ddo solver runs",
		Long: `ddoplot reads ddo solver progress logs and plots the lower and upper
bounds, or the frontier size, against the number of explored nodes.

The chart is drawn in the terminal unless --output names an SVG file.`,
		Version:       version.String(),
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return plot(cmd, opts, args, stdin, stdout, stderr)
		},
	}

	pf := root.PersistentFlags()
	pf.StringArrayVarP(&opts.inputs, "input", "i", nil, "solver log to plot (repeatable)")
	pf.BoolVarP(&opts.fringe, "fringe", "f", false, "plot frontier size instead of bounds")
	pf.StringVarP(&opts.dimension, "dimension", "d", "", "terminal plot size as width,height")
	pf.StringVar(&opts.theme, "theme", "", "terminal theme: default, mono")
	pf.BoolVar(&opts.noColor, "no-color", false, "disable colors")
	pf.BoolVar(&opts.summary, "summary", false, "print a summary line per trace")
	pf.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error")
	pf.StringVar(&opts.config, "config", "", "config file (default .ddoplot.yaml)")

	f := root.Flags()
	f.StringVarP(&opts.output, "output", "o", "", "write an SVG chart to this path")
	f.StringVar(&opts.export, "export", "", "write the parsed traces as JSON to this path")
	f.StringVar(&opts.format, "format", "text", "terminal output format: text, json")

	root.AddCommand(&cobra.Command{
		Use:   "view [file...]",
		Short: "Browse the chart interactively",
		RunE: func(cmd *cobra.Command, args []string) error {
			return interactive(cmd, opts, args, stdin, stdout, stderr)
		},
	})
	return root
}

// setup resolves configuration and configures logging.
func setup(cmd *cobra.Command, opts *options, stderr io.Writer) (*config.ResolvedConfig, error) {
	logrus.SetOutput(stderr)
	logrus.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	if lvl, err := logrus.ParseLevel(opts.logLevel); err == nil {
		logrus.SetLevel(lvl)
	}

	flags := cmd.Flags()
	cfg, err := config.ResolveConfig(config.CliFlags{
		ConfigPath: opts.config,
		Theme:      opts.theme,
		NoColor:    opts.noColor,
		NoColorSet: flags.Changed("no-color"),
		Dimension:  opts.dimension,
		Fringe:     opts.fringe,
		FringeSet:  flags.Changed("fringe"),
		Summary:    opts.summary,
		SummarySet: flags.Changed("summary"),
		LogLevel:   opts.logLevel,
	})
	if err != nil {
		return nil, usageFailure(err)
	}
	logrus.SetLevel(cfg.LogLevel)
	logrus.WithFields(logrus.Fields{
		"theme":     cfg.Theme + " (" + cfg.ThemeSource + ")",
		"dimension": cfg.DimensionSource,
		"mode":      cfg.Mode.String() + " (" + cfg.ModeSource + ")",
	}).Debug("resolved configuration")
	return cfg, nil
}

func plot(cmd *cobra.Command, opts *options, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	cfg, err := setup(cmd, opts, stderr)
	if err != nil {
		return err
	}
	if opts.format != "text" && opts.format != "json" {
		return usageFailure(fmt.Errorf("unknown format %q (expected text, json)", opts.format))
	}

	traces, err := loadTraces(cmd.Context(), append(opts.inputs, args...), stdin)
	if err != nil {
		return err
	}

	// Render everything into memory so a failure leaves no partial output.
	var out bytes.Buffer
	if err := renderChart(&out, opts, cfg, traces); err != nil {
		return err
	}
	var exported bytes.Buffer
	if opts.export != "" {
		if err := trace.Export(&exported, traces); err != nil {
			return ioFailure(err)
		}
		if err := writeExport(opts.export, exported.Bytes()); err != nil {
			return err
		}
	}

	if opts.output != "" {
		if werr := os.WriteFile(opts.output, out.Bytes(), 0o644); werr != nil {
			err = ioFailure(fmt.Errorf("writing %s: %w", opts.output, werr))
		}
	} else if _, werr := out.WriteTo(stdout); werr != nil {
		err = ioFailure(fmt.Errorf("writing output: %w", werr))
	}
	if err != nil {
		if opts.export != "" {
			_ = os.Remove(opts.export)
		}
		return err
	}
	if opts.output != "" {
		logrus.WithField("path", opts.output).Info("wrote svg chart")
	}
	return nil
}

// renderChart draws the chart SVG for -o, otherwise JSON or text for stdout.
func renderChart(w io.Writer, opts *options, cfg *config.ResolvedConfig, traces []*trace.Trace) error {
	c := chart.Compose(traces, cfg.Mode)

	var r render.Renderer
	switch {
	case opts.output != "":
		r = render.NewSVG()
	case opts.format == "json":
		r = render.NewJSON()
	default:
		if cfg.DimensionErr != nil {
			return usageFailure(cfg.DimensionErr)
		}
		dim, src := layout.ResolveWithSource(cfg.Dimension, probe())
		logrus.WithFields(logrus.Fields{"dimension": dim.String(), "source": src}).Debug("resolved layout")
		text := render.NewText(render.ThemeByName(cfg.Theme), dim)
		if cfg.Summary {
			text = text.WithSummaries(summaries(traces))
		}
		r = text
	}
	if err := r.Render(w, c); err != nil {
		return ioFailure(err)
	}
	return nil
}

func interactive(cmd *cobra.Command, opts *options, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	cfg, err := setup(cmd, opts, stderr)
	if err != nil {
		return err
	}
	paths := append(opts.inputs, args...)
	if len(paths) == 0 {
		// stdin carries the keyboard in the viewer.
		return usageFailure(errors.New("view needs at least one input file"))
	}
	if cfg.DimensionErr != nil {
		return usageFailure(cfg.DimensionErr)
	}
	traces, err := loadTraces(cmd.Context(), paths, stdin)
	if err != nil {
		return err
	}
	return runViewer(cmd.Context(), traces, view.Options{
		Theme:     render.ThemeByName(cfg.Theme),
		Mode:      cfg.Mode,
		Dimension: cfg.Dimension,
		Summaries: cfg.Summary,
		Input:     stdin,
		Output:    stdout,
	})
}

// loadTraces reads every path, or stdin when there are none.
func loadTraces(ctx context.Context, paths []string, stdin io.Reader) ([]*trace.Trace, error) {
	if len(paths) > 0 {
		traces, err := trace.LoadAll(ctx, paths)
		if err != nil {
			return nil, ioFailure(err)
		}
		return traces, nil
	}

	data, err := io.ReadAll(stdin)
	if err != nil {
		return nil, ioFailure(fmt.Errorf("reading stdin: %w", err))
	}
	if detect.Sniff(data) == detect.TraceExport {
		traces, err := trace.Import(data)
		if err != nil {
			return nil, usageFailure(fmt.Errorf("stdin: %w", err))
		}
		logrus.Debugf("imported %d exported traces from stdin", len(traces))
		return traces, nil
	}
	t, err := trace.Build(bytes.NewReader(data), "")
	if err != nil {
		return nil, ioFailure(fmt.Errorf("reading stdin: %w", err))
	}
	return []*trace.Trace{t}, nil
}

// writeExport creates missing parent directories of path.
func writeExport(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return ioFailure(fmt.Errorf("creating %s: %w", dir, err))
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return ioFailure(fmt.Errorf("writing %s: %w", path, err))
	}
	return nil
}

func summaries(traces []*trace.Trace) []render.Summary {
	out := make([]render.Summary, 0, len(traces))
	for _, t := range traces {
		out = append(out, render.Summary{Name: t.Name, Stats: trace.ComputeStats(t)})
	}
	return out
}
