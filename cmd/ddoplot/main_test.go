package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkoosis/ddoplot/pkg/layout"
	"github.com/dkoosis/ddoplot/pkg/trace"
	"github.com/dkoosis/ddoplot/pkg/view"
)

const knapsackLog = `Instance knapsack.txt
Explored 5900, LB 11, UB 14, Fringe sz 890
Explored 6000, LB 11, UB 14, Fringe sz 790
Explored 6300, LB 11, UB 14, Fringe sz 490
Explored 6700, LB 11, UB 12, Fringe sz 90
Final 11, Explored 6790
Optimum 11 computed in 5.042205s with 1 threads
`

// isolate keeps the host's config files, environment and terminal out of a test.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))
	t.Setenv("HOME", filepath.Join(dir, "home"))
	for _, k := range []string{"DDOPLOT_THEME", "DDOPLOT_DIMENSION", "DDOPLOT_NO_COLOR", "NO_COLOR"} {
		t.Setenv(k, "")
	}

	old := probe
	probe = func() layout.Probe { return func() (layout.Dimension, bool) { return layout.Dimension{}, false } }
	t.Cleanup(func() { probe = old })
	return dir
}

func writeLog(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// --- JTBD E2E Tests ---
// These exercise the full pipeline: input → parse → compose → render → output

func TestJTBD_PlotBoundsFromStdinInTerminal(t *testing.T) {
	isolate(t)

	var stdout, stderr bytes.Buffer
	code := run([]string{"--theme", "mono"}, strings.NewReader(knapsackLog), &stdout, &stderr)

	require.Equal(t, 0, code, stderr.String())
	out := stdout.String()
	assert.Contains(t, out, "Bound Value")
	assert.Contains(t, out, "Explored Nodes")
	assert.Contains(t, out, "o Lower Bound")
	assert.Contains(t, out, "x Upper Bound")
	assert.NotContains(t, out, "\033[", "mono output contains ANSI escape codes")

	// Fallback layout: 15 grid rows between the title and the x axis.
	lines := strings.Split(out, "\n")
	assert.Equal(t, "Bound Value", lines[0])
	assert.Contains(t, lines[16], "+---")
}

func TestJTBD_PlotFrontierFromFilesAsSVG(t *testing.T) {
	dir := isolate(t)
	a := writeLog(t, dir, "knap_a.log", knapsackLog)
	b := writeLog(t, dir, "knap_b.log", "Explored 100, LB 1, UB 9, Fringe sz 40\n")
	svg := filepath.Join(dir, "frontier.svg")

	var stdout, stderr bytes.Buffer
	code := run([]string{"-i", a, "--input", b, "-f", "-o", svg}, strings.NewReader(""), &stdout, &stderr)

	require.Equal(t, 0, code, stderr.String())
	assert.Empty(t, stdout.String())
	data, err := os.ReadFile(svg)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<svg")
	assert.Contains(t, string(data), "knap_a - Frontier Size")
	assert.Contains(t, string(data), "knap_b - Frontier Size")
}

func TestJTBD_PositionalFilesAndExplicitDimension(t *testing.T) {
	dir := isolate(t)
	path := writeLog(t, dir, "run.log", knapsackLog)

	var stdout, stderr bytes.Buffer
	code := run([]string{path, "--no-color", "-d", "20,5"}, strings.NewReader(""), &stdout, &stderr)

	require.Equal(t, 0, code, stderr.String())
	lines := strings.Split(stdout.String(), "\n")
	// title, 5 grid rows, then the x axis
	assert.Contains(t, lines[6], "+"+strings.Repeat("-", 20))
	assert.Contains(t, stdout.String(), "run - Lower Bound")
}

func TestJTBD_SummaryLines(t *testing.T) {
	isolate(t)

	var stdout, stderr bytes.Buffer
	code := run([]string{"--theme", "mono", "--summary"}, strings.NewReader(knapsackLog), &stdout, &stderr)

	require.Equal(t, 0, code, stderr.String())
	assert.Contains(t, stdout.String(), "trace: optimum 11 after 6,790 explored nodes")
}

func TestJTBD_ExportThenReplotFromStdin(t *testing.T) {
	dir := isolate(t)
	path := writeLog(t, dir, "knap.log", knapsackLog)
	exported := filepath.Join(dir, "out", "traces.json")

	var stdout, stderr bytes.Buffer
	code := run([]string{path, "--export", exported, "--format", "json"}, strings.NewReader(""), &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())

	data, err := os.ReadFile(exported)
	require.NoError(t, err)
	traces, err := trace.Import(data)
	require.NoError(t, err)
	require.Len(t, traces, 1)
	assert.Equal(t, "knap", traces[0].Name)
	assert.Equal(t, 5, traces[0].Len())

	var again bytes.Buffer
	stderr.Reset()
	code = run([]string{"--format", "json"}, bytes.NewReader(data), &again, &stderr)
	require.Equal(t, 0, code, stderr.String())
	assert.JSONEq(t, stdout.String(), again.String(), "re-plotting an export gives the same chart")
}

func TestJTBD_ChartJSONOutput(t *testing.T) {
	isolate(t)

	var stdout, stderr bytes.Buffer
	code := run([]string{"--format", "json"}, strings.NewReader(knapsackLog), &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())

	var got struct {
		Mode   string     `json:"mode"`
		YRange [2]float64 `json:"y_range"`
		Series []struct {
			Legend string `json:"legend"`
		} `json:"series"`
	}
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &got))
	assert.Equal(t, "bounds", got.Mode)
	assert.Equal(t, [2]float64{10, 15}, got.YRange)
	require.Len(t, got.Series, 2)
	assert.Equal(t, "Lower Bound", got.Series[0].Legend)
}

func TestJTBD_ConfigFileSetsDefaults(t *testing.T) {
	dir := isolate(t)
	writeLog(t, dir, ".ddoplot.yaml", "theme: mono\nmode: frontier\ndimension: \"25,6\"\n")

	var stdout, stderr bytes.Buffer
	code := run(nil, strings.NewReader(knapsackLog), &stdout, &stderr)

	require.Equal(t, 0, code, stderr.String())
	out := stdout.String()
	assert.True(t, strings.HasPrefix(out, "Frontier Size\n"), out)
	assert.Contains(t, out, "# Frontier Size")
}

// --- Failure modes ---

func TestRun_MissingInputExitsOneWithPath(t *testing.T) {
	dir := isolate(t)
	missing := filepath.Join(dir, "nope.log")

	var stdout, stderr bytes.Buffer
	code := run([]string{"-i", missing}, strings.NewReader(""), &stdout, &stderr)

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "ddoplot: opening "+missing)
	assert.Empty(t, stdout.String())
}

func TestRun_UnwritableOutputExitsOneWithPath(t *testing.T) {
	dir := isolate(t)
	out := filepath.Join(dir, "missing-dir", "chart.svg")

	var stdout, stderr bytes.Buffer
	code := run([]string{"-o", out}, strings.NewReader(knapsackLog), &stdout, &stderr)

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), out)
	_, err := os.Stat(out)
	assert.True(t, os.IsNotExist(err))
}

func TestRun_FailedChartWriteLeavesNoExport(t *testing.T) {
	dir := isolate(t)
	exported := filepath.Join(dir, "traces.json")
	out := filepath.Join(dir, "missing-dir", "chart.svg")

	var stdout, stderr bytes.Buffer
	code := run([]string{"--export", exported, "-o", out}, strings.NewReader(knapsackLog), &stdout, &stderr)

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), out)
	_, err := os.Stat(exported)
	assert.True(t, os.IsNotExist(err), "export left behind after the chart failed")
}

func TestRun_BadEnvDimensionOnlyFailsTerminalLayout(t *testing.T) {
	dir := isolate(t)
	t.Setenv("DDOPLOT_DIMENSION", "80x24")

	var stdout, stderr bytes.Buffer
	svg := filepath.Join(dir, "chart.svg")
	code := run([]string{"-o", svg}, strings.NewReader(knapsackLog), &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())
	assert.FileExists(t, svg)

	stdout.Reset()
	stderr.Reset()
	code = run([]string{"--format", "json"}, strings.NewReader(knapsackLog), &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())

	stdout.Reset()
	stderr.Reset()
	code = run(nil, strings.NewReader(knapsackLog), &stdout, &stderr)
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr.String(), "width,height")
	assert.Empty(t, stdout.String())
}

func TestRun_BadFileDimensionStillWritesSVG(t *testing.T) {
	dir := isolate(t)
	writeLog(t, dir, ".ddoplot.yaml", "dimension: wide\n")
	svg := filepath.Join(dir, "chart.svg")

	var stdout, stderr bytes.Buffer
	code := run([]string{"-o", svg}, strings.NewReader(knapsackLog), &stdout, &stderr)

	require.Equal(t, 0, code, stderr.String())
	assert.FileExists(t, svg)
}

func TestRun_NoColorPresenceSelectsMono(t *testing.T) {
	isolate(t)
	t.Setenv("NO_COLOR", "yes")

	var stdout, stderr bytes.Buffer
	code := run(nil, strings.NewReader(knapsackLog), &stdout, &stderr)

	require.Equal(t, 0, code, stderr.String())
	assert.Contains(t, stdout.String(), "o Lower Bound")
	assert.NotContains(t, stdout.String(), "\033[")
}

func TestRun_UsageErrorsExitTwo(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"malformed dimension", []string{"-d", "80x24"}, "width,height"},
		{"unknown format", []string{"--format", "png"}, "unknown format"},
		{"unknown theme", []string{"--theme", "neon"}, "invalid theme"},
		{"unknown flag", []string{"--bogus"}, "unknown flag"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			var stdout, stderr bytes.Buffer
			code := run(tt.args, strings.NewReader(knapsackLog), &stdout, &stderr)
			assert.Equal(t, 2, code)
			assert.Contains(t, stderr.String(), tt.want)
			assert.Empty(t, stdout.String())
		})
	}
}

func TestRun_EmptyStdinPlotsEmptyChart(t *testing.T) {
	isolate(t)

	var stdout, stderr bytes.Buffer
	code := run([]string{"--theme", "mono", "-d", "10,3"}, strings.NewReader("no metrics here\n"), &stdout, &stderr)

	require.Equal(t, 0, code, stderr.String())
	assert.Contains(t, stdout.String(), "-1")
	assert.Contains(t, stdout.String(), "Lower Bound")
}

func TestRun_Version(t *testing.T) {
	isolate(t)

	var stdout, stderr bytes.Buffer
	code := run([]string{"--version"}, strings.NewReader(""), &stdout, &stderr)

	assert.Equal(t, 0, code)
	assert.Contains(t, stdout.String(), "dev (commit unknown")
}

func TestRun_ViewPassesResolvedOptions(t *testing.T) {
	dir := isolate(t)
	path := writeLog(t, dir, "knap.log", knapsackLog)

	var gotTraces []*trace.Trace
	var gotOpts view.Options
	old := runViewer
	runViewer = func(_ context.Context, traces []*trace.Trace, opts view.Options) error {
		gotTraces, gotOpts = traces, opts
		return nil
	}
	t.Cleanup(func() { runViewer = old })

	var stdout, stderr bytes.Buffer
	code := run([]string{"view", path, "-f", "-d", "50,12"}, strings.NewReader(""), &stdout, &stderr)

	require.Equal(t, 0, code, stderr.String())
	require.Len(t, gotTraces, 1)
	assert.Equal(t, "knap", gotTraces[0].Name)
	assert.Equal(t, "frontier", gotOpts.Mode.String())
	require.NotNil(t, gotOpts.Dimension)
	assert.Equal(t, layout.Dimension{Width: 50, Height: 12}, *gotOpts.Dimension)
}

func TestRun_ViewWithoutFilesIsUsageError(t *testing.T) {
	isolate(t)

	var stdout, stderr bytes.Buffer
	code := run([]string{"view"}, strings.NewReader(knapsackLog), &stdout, &stderr)

	assert.Equal(t, 2, code)
	assert.Contains(t, stderr.String(), "view needs at least one input file")
}
