package main

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/eqstream/eqstream/pkg/dsp/analysis"
	"github.com/eqstream/eqstream/pkg/dsp/filter"
	"github.com/eqstream/eqstream/pkg/eq"
	"github.com/eqstream/eqstream/pkg/framework/param"
)

// framePeriod is the display refresh cadence.
const framePeriod = time.Second / 60

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00AAAA"))
	plotStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#444444"))
	leftStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#00AAFF"))
	rightStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#0055AA"))
	responseStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFAA00"))
	selectedStyle = lipgloss.NewStyle().Reverse(true)
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
)

type tickMsg time.Time

type playbackDoneMsg struct{}

func tick() tea.Cmd {
	return tea.Tick(framePeriod, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// uiModel is the Bubbletea model: a live spectrum plot with the response
// overlay, and keyboard control over the peak bands.
type uiModel struct {
	viz  *eq.Visualizer
	reg  *param.Registry
	done <-chan struct{}

	width    int
	height   int
	selected int
	quitting bool
}

func newUIModel(viz *eq.Visualizer, reg *param.Registry, done <-chan struct{}) uiModel {
	return uiModel{viz: viz, reg: reg, done: done}
}

// runUI blocks in the TUI until playback ends or the user quits.
func runUI(viz *eq.Visualizer, reg *param.Registry, done <-chan struct{}) error {
	p := tea.NewProgram(newUIModel(viz, reg, done), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m uiModel) Init() tea.Cmd {
	return tea.Batch(tick(), m.waitDone())
}

func (m uiModel) waitDone() tea.Cmd {
	return func() tea.Msg {
		<-m.done
		return playbackDoneMsg{}
	}
}

func (m uiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case playbackDoneMsg:
		m.quitting = true
		return m, tea.Quit

	case tickMsg:
		if w, h := m.plotSize(); w > 0 && h > 0 {
			m.viz.Poll(analysis.Bounds{W: float32(w), H: float32(h)})
		}
		return m, tick()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m uiModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		m.quitting = true
		return m, tea.Quit

	case "left", "h":
		if m.selected > 0 {
			m.selected--
		}
	case "right", "l":
		if m.selected < filter.NumPeakBands-1 {
			m.selected++
		}

	case "up", "k":
		m.nudge(eq.PeakGainID(m.selected), 0.5)
	case "down", "j":
		m.nudge(eq.PeakGainID(m.selected), -0.5)

	case "[":
		m.scale(eq.PeakFreqID(m.selected), 1/1.05)
	case "]":
		m.scale(eq.PeakFreqID(m.selected), 1.05)

	case "-":
		m.scale(eq.PeakQID(m.selected), 1/1.1)
	case "=", "+":
		m.scale(eq.PeakQID(m.selected), 1.1)

	case "b":
		p := m.reg.Get(eq.PeakBypassID(m.selected))
		if p.GetValue() > 0.5 {
			p.SetValue(0)
		} else {
			p.SetValue(1)
		}
	}
	return m, nil
}

func (m uiModel) nudge(id uint32, delta float64) {
	p := m.reg.Get(id)
	p.SetPlainValue(p.GetPlainValue() + delta)
}

func (m uiModel) scale(id uint32, factor float64) {
	p := m.reg.Get(id)
	p.SetPlainValue(p.GetPlainValue() * factor)
}

// plotSize returns the inner plot dimensions, leaving room for the title,
// border, band readouts, and help line.
func (m uiModel) plotSize() (int, int) {
	w := m.width - 2
	h := m.height - 6
	return w, h
}

func (m uiModel) View() string {
	if m.quitting {
		return ""
	}
	w, h := m.plotSize()
	if w <= 0 || h <= 0 {
		return "terminal too small"
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("eqstream"))
	b.WriteString("\n")
	b.WriteString(plotStyle.Render(m.renderPlot(w, h)))
	b.WriteString("\n")
	b.WriteString(m.renderBands())
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("←/→ band  ↑/↓ gain  [/] freq  -/+ Q  b bypass  q quit"))
	return b.String()
}

// renderPlot rasterizes the polylines into a character grid. The spectrum
// lands first so the response overlay always stays visible on top.
func (m uiModel) renderPlot(w, h int) string {
	grid := make([][]rune, h)
	owner := make([][]int, h)
	for y := range grid {
		grid[y] = make([]rune, w)
		owner[y] = make([]int, w)
		for x := range grid[y] {
			grid[y][x] = ' '
		}
	}

	plot := func(path analysis.Polyline, ch rune, layer int) {
		for _, pt := range path {
			x := int(pt.X)
			y := int(pt.Y)
			if x < 0 || x >= w || y < 0 || y >= h {
				continue
			}
			if layer >= owner[y][x] {
				grid[y][x] = ch
				owner[y][x] = layer
			}
		}
	}

	plot(m.viz.SpectrumPath(0), '▪', 1)
	plot(m.viz.SpectrumPath(1), '·', 2)
	plot(m.viz.ResponsePath(), '━', 3)

	styles := []lipgloss.Style{{}, leftStyle, rightStyle, responseStyle}
	rows := make([]string, h)
	for y := range grid {
		var row strings.Builder
		for x := range grid[y] {
			if owner[y][x] == 0 {
				row.WriteRune(' ')
				continue
			}
			row.WriteString(styles[owner[y][x]].Render(string(grid[y][x])))
		}
		rows[y] = row.String()
	}
	return strings.Join(rows, "\n")
}

// renderBands prints one cell per peak band with the live plain values.
func (m uiModel) renderBands() string {
	cells := make([]string, 0, filter.NumPeakBands)
	for band := 0; band < filter.NumPeakBands; band++ {
		freq := m.reg.Get(eq.PeakFreqID(band))
		gain := m.reg.Get(eq.PeakGainID(band))
		q := m.reg.Get(eq.PeakQID(band))
		bypass := m.reg.Get(eq.PeakBypassID(band))

		cell := fmt.Sprintf("P%d %s %s %s", band+1,
			freq.FormatValue(freq.GetValue()),
			gain.FormatValue(gain.GetValue()),
			q.FormatValue(q.GetValue()))
		if bypass.GetValue() > 0.5 {
			cell += " (byp)"
		}
		if band == m.selected {
			cell = selectedStyle.Render(cell)
		}
		cells = append(cells, cell)
	}
	return strings.Join(cells, "  ")
}
