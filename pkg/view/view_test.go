package view

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkoosis/ddoplot/pkg/chart"
	"github.com/dkoosis/ddoplot/pkg/layout"
	"github.com/dkoosis/ddoplot/pkg/render"
	"github.com/dkoosis/ddoplot/pkg/trace"
)

const sampleLog = `Explored 5900, LB 11, UB 14, Fringe sz 890
Explored 6700, LB 11, UB 12, Fringe sz 90
Final 11, Explored 6790
`

func newModel(pinned *layout.Dimension) Model {
	t := trace.Parse(sampleLog)
	t.Name = "knap"
	return New([]*trace.Trace{t}, Options{Theme: render.MonoTheme(), Mode: chart.ModeBounds, Dimension: pinned})
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	require.True(t, ok)
	return nm, cmd
}

func TestView_WaitsForWindowSize(t *testing.T) {
	assert.Equal(t, "Loading traces...", newModel(nil).View())
}

func TestView_WindowSizeResolvesLayoutWithMargin(t *testing.T) {
	m, _ := update(t, newModel(nil), tea.WindowSizeMsg{Width: 100, Height: 40})
	assert.Equal(t, layout.Dimension{Width: 90, Height: 30}, m.Dimension())
	assert.Contains(t, m.View(), "knap - Lower Bound")
}

func TestView_PinnedDimensionIgnoresWindow(t *testing.T) {
	pinned := &layout.Dimension{Width: 20, Height: 6}
	m, _ := update(t, newModel(pinned), tea.WindowSizeMsg{Width: 100, Height: 40})
	assert.Equal(t, *pinned, m.Dimension())
}

func TestView_ModeKeyToggles(t *testing.T) {
	m, _ := update(t, newModel(&layout.Dimension{Width: 30, Height: 8}), tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("m")})
	assert.Equal(t, chart.ModeFrontier, m.Mode())
	assert.Contains(t, m.View(), "knap - Frontier Size")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("m")})
	assert.Equal(t, chart.ModeBounds, m.Mode())
}

func TestView_SummaryKeyToggles(t *testing.T) {
	m := newModel(&layout.Dimension{Width: 30, Height: 8})
	assert.NotContains(t, m.View(), "optimum 11")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("s")})
	assert.Contains(t, m.View(), "knap: optimum 11 after 6,790 explored nodes")
}

func TestView_QuitKeys(t *testing.T) {
	for _, msg := range []tea.KeyMsg{
		{Type: tea.KeyRunes, Runes: []rune("q")},
		{Type: tea.KeyCtrlC},
	} {
		_, cmd := update(t, newModel(nil), msg)
		require.NotNil(t, cmd)
		_, ok := cmd().(tea.QuitMsg)
		assert.True(t, ok, "%v should quit", msg)
	}
}

func TestView_HelpFooter(t *testing.T) {
	out := newModel(&layout.Dimension{Width: 30, Height: 8}).View()
	assert.True(t, strings.Contains(out, "bounds/frontier"), out)
	assert.Contains(t, out, "quit")
}
