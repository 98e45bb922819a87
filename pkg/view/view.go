// Package view is an interactive terminal viewer for loaded traces. The chart
// follows the window size and can be switched between bounds and frontier.
package view

import (
	"context"
	"io"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dkoosis/ddoplot/pkg/chart"
	"github.com/dkoosis/ddoplot/pkg/layout"
	"github.com/dkoosis/ddoplot/pkg/render"
	"github.com/dkoosis/ddoplot/pkg/trace"
)

// Options configures the viewer.
type Options struct {
	Theme render.Theme
	Mode  chart.Mode
	// Dimension pins the plot size; nil follows the window.
	Dimension *layout.Dimension
	Summaries bool
	Input     io.Reader
	Output    io.Writer
}

type keyMap struct {
	Mode    key.Binding
	Summary key.Binding
	Quit    key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Mode, k.Summary, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

var keys = keyMap{
	Mode: key.NewBinding(
		key.WithKeys("m"),
		key.WithHelp("m", "bounds/frontier"),
	),
	Summary: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "summary"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// Run starts the viewer and blocks until the user quits or ctx is done.
func Run(ctx context.Context, traces []*trace.Trace, opts Options) error {
	progOpts := []tea.ProgramOption{tea.WithContext(ctx), tea.WithAltScreen()}
	if opts.Input != nil {
		progOpts = append(progOpts, tea.WithInput(opts.Input))
	}
	if opts.Output != nil {
		progOpts = append(progOpts, tea.WithOutput(opts.Output))
	}
	_, err := tea.NewProgram(New(traces, opts), progOpts...).Run()
	return err
}

// Model is the bubbletea model behind Run.
type Model struct {
	charts    map[chart.Mode]*chart.Chart
	summaries []render.Summary
	theme     render.Theme
	pinned    *layout.Dimension

	mode        chart.Mode
	showSummary bool
	dim         layout.Dimension
	ready       bool
	help        help.Model
}

// New builds the model. Charts for both modes are composed up front.
func New(traces []*trace.Trace, opts Options) Model {
	m := Model{
		charts:      make(map[chart.Mode]*chart.Chart, 2),
		theme:       opts.Theme,
		pinned:      opts.Dimension,
		mode:        opts.Mode,
		showSummary: opts.Summaries,
		help:        help.New(),
	}
	for _, mode := range []chart.Mode{chart.ModeBounds, chart.ModeFrontier} {
		m.charts[mode] = chart.Compose(traces, mode)
	}
	for _, t := range traces {
		m.summaries = append(m.summaries, render.Summary{Name: t.Name, Stats: trace.ComputeStats(t)})
	}
	if m.pinned != nil {
		m.dim, m.ready = *m.pinned, true
	}
	return m
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, keys.Mode):
			if m.mode == chart.ModeBounds {
				m.mode = chart.ModeFrontier
			} else {
				m.mode = chart.ModeBounds
			}
		case key.Matches(msg, keys.Summary):
			m.showSummary = !m.showSummary
		}
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		window := layout.Dimension{Width: msg.Width, Height: msg.Height}
		m.dim = layout.Resolve(m.pinned, func() (layout.Dimension, bool) { return window, true })
		m.ready = true
	}
	return m, nil
}

func (m Model) View() string {
	if !m.ready {
		return "Loading traces..."
	}
	text := render.NewText(m.theme, m.dim)
	if m.showSummary {
		text = text.WithSummaries(m.summaries)
	}
	return lipgloss.JoinVertical(lipgloss.Left, text.String(m.charts[m.mode]), m.help.View(keys))
}

// Mode reports the chart mode currently shown.
func (m Model) Mode() chart.Mode { return m.mode }

// Dimension reports the plot size currently used.
func (m Model) Dimension() layout.Dimension { return m.dim }
