package explorer

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"memviz/internal/graph"
	"memviz/internal/layout"
	"memviz/internal/viewport"
)

// fitMargin pads the initial auto-fit window on every side.
const fitMargin = 0.05

// Chrome rows around the canvas: one title row above, one status row below.
const (
	canvasTop    = 1
	chromeHeight = 2
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#87CEEB")).
			PaddingLeft(1)

	nodeStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ADD8E6"))

	nodeLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF"))

	edgeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))

	edgeLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#AAAA55"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			PaddingLeft(1)
)

type keyMap struct {
	Reset  key.Binding
	Labels key.Binding
	Quit   key.Binding
}

var keys = keyMap{
	Reset: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reset view"),
	),
	Labels: key.NewBinding(
		key.WithKeys("l"),
		key.WithHelp("l", "toggle labels"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Reset, k.Labels, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Reset, k.Labels, k.Quit}}
}

type model struct {
	graph      *graph.Graph
	scene      *layout.Result
	ctrl       *viewport.Controller
	keys       keyMap
	help       help.Model
	width      int
	height     int
	showLabels bool
}

func newModel(g *graph.Graph, scene *layout.Result, ctrl *viewport.Controller, showLabels bool) model {
	return model{
		graph:      g,
		scene:      scene,
		ctrl:       ctrl,
		keys:       keys,
		help:       help.New(),
		showLabels: showLabels,
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.ctrl.SetCanvasSize(m.canvasSize())

	case tea.MouseMsg:
		m.handleMouse(msg)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Reset):
			m.ctrl.Reset()
		case key.Matches(msg, m.keys.Labels):
			m.showLabels = !m.showLabels
		}
	}

	return m, nil
}

// handleMouse routes pointer and scroll events into the viewport controller.
// Every event carries the in-canvas test; out-of-canvas events are no-ops by
// the controller's gating, not dropped here.
func (m *model) handleMouse(msg tea.MouseMsg) {
	inCanvas := m.inCanvas(msg.X, msg.Y)

	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonWheelUp, tea.MouseButtonWheelDown,
			tea.MouseButtonWheelLeft, tea.MouseButtonWheelRight:
			if !inCanvas {
				return
			}
			dataX, dataY := m.cellToData(msg.X, msg.Y)
			m.ctrl.Zoom(dataX, dataY, zoomDirection(msg.Button))
		case tea.MouseButtonLeft:
			m.ctrl.BeginDrag(msg.X, msg.Y, inCanvas)
		}
	case tea.MouseActionMotion:
		m.ctrl.ContinueDrag(msg.X, msg.Y, inCanvas)
	case tea.MouseActionRelease:
		m.ctrl.EndDrag(inCanvas)
	}
}

// zoomDirection maps the two recognized wheel directions; anything else is
// a no-op zoom.
func zoomDirection(button tea.MouseButton) viewport.ZoomDirection {
	switch button {
	case tea.MouseButtonWheelUp:
		return viewport.ZoomIn
	case tea.MouseButtonWheelDown:
		return viewport.ZoomOut
	default:
		return viewport.ZoomNone
	}
}

func (m model) canvasSize() (w, h int) {
	return m.width, m.height - chromeHeight
}

func (m model) inCanvas(x, y int) bool {
	w, h := m.canvasSize()
	return w > 0 && h > 0 && x >= 0 && x < w && y >= canvasTop && y < canvasTop+h
}

// cellToData maps a screen cell to the data point at its center. The
// vertical axis flips: cell rows grow downward, data y grows upward.
func (m model) cellToData(x, y int) (float64, float64) {
	v := m.ctrl.View()
	w, h := m.canvasSize()
	dataX := v.XMin + (float64(x)+0.5)/float64(w)*v.Width()
	dataY := v.YMax - (float64(y-canvasTop)+0.5)/float64(h)*v.Height()
	return dataX, dataY
}

// dataToCell maps a data point to a screen cell, without clamping; callers
// bounds-check before writing.
func (m model) dataToCell(p layout.Point) (x, y int) {
	v := m.ctrl.View()
	w, h := m.canvasSize()
	x = int((p.X - v.XMin) / v.Width() * float64(w))
	y = canvasTop + int((v.YMax-p.Y)/v.Height()*float64(h))
	return x, y
}

func (m model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	title := titleStyle.Render("Memory Graph")
	canvas := m.renderCanvas()
	status := statusStyle.Render(m.statusLine()) + " " + m.help.ShortHelpView(m.keys.ShortHelp())

	return title + "\n" + canvas + status
}

func (m model) statusLine() string {
	return fmt.Sprintf("%d nodes · %d edges · zoom %.0f%%",
		m.graph.NodeCount(),
		m.graph.EdgeCount(),
		m.zoomPercent(),
	)
}

func (m model) zoomPercent() float64 {
	v := m.ctrl.View()
	if v.Width() == 0 {
		return 100
	}
	return m.ctrl.HomeWidth() / v.Width() * 100
}
