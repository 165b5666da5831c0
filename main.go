package main

import (
	"fmt"
	"log"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const tickInterval = 50 * time.Millisecond

func main() {
	if f := initLogging(); f != nil {
		defer f.Close()
	}
	p := tea.NewProgram(
		initialModel(),
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	)
	if _, err := p.Run(); err != nil {
		log.Fatal(err)
	}
}

// statusLine is the presentation collaborator fed by the notification hub.
type statusLine struct {
	msg string
}

// Buffer is one independent canvas: its own scene, viewport, session
// controller, notification hub, and animation scheduler.
type Buffer struct {
	name        string
	diagram     *Diagram
	viewport    *Viewport
	interaction *Interaction
	hub         *Hub
	tweens      *TweenScheduler
	status      *statusLine
}

func newBuffer(name string, cfg *Config) Buffer {
	hub := NewHub()
	tweens := NewTweenScheduler()
	diagram := NewDiagram(hub, tweens)
	diagram.ArrowByDefault = cfg.ArrowHeads
	interaction := NewInteraction(diagram, hub)
	viewport := NewViewport()
	viewport.Scale = cfg.StartZoom
	status := &statusLine{}

	// Disposing a node mid-session cancels the session instead of leaving
	// it attached to a dead anchor.
	hub.Subscribe("node.removed", func(ev Event) {
		interaction.NodeRemoved(ev.NodeID)
	})

	hub.Subscribe("session.started", func(ev Event) {
		status.msg = fmt.Sprintf("Connecting from node %d (%s) — click an anchor on another box", ev.NodeID, ev.Detail)
	})
	hub.Subscribe("session.cancelled", func(ev Event) {
		status.msg = "Connection cancelled"
	})
	hub.Subscribe("session.completed", func(ev Event) {
		status.msg = fmt.Sprintf("Created edge %d", ev.EdgeID)
	})
	hub.Subscribe("selection.cleared", func(ev Event) {
		status.msg = ""
	})

	return Buffer{
		name:        name,
		diagram:     diagram,
		viewport:    viewport,
		interaction: interaction,
		hub:         hub,
		tweens:      tweens,
		status:      status,
	}
}

type model struct {
	width  int
	height int

	buffers            []Buffer
	currentBufferIndex int

	mode         Mode
	help         bool
	selectedNode int
	hoverNode    int

	dragNode int
	dragOffX float64
	dragOffY float64

	pointerX float64
	pointerY float64

	editText     string
	errorMessage string

	config *Config
}

func initialModel() model {
	cfg := loadConfig()
	buf := newBuffer("diagram", cfg)
	return model{
		buffers:      []Buffer{buf},
		mode:         ModeNormal,
		selectedNode: -1,
		hoverNode:    -1,
		dragNode:     -1,
		config:       cfg,
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

type tickMsg time.Time

func (m *model) tickCmd(buf *Buffer) tea.Cmd {
	if !buf.tweens.Active() {
		return nil
	}
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		buf := m.currentBuffer()
		if buf == nil {
			return m, nil
		}
		buf.tweens.Step(tickInterval)
		return m, m.tickCmd(buf)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.mode == ModeEditing {
		return m.handleEditingKey(msg)
	}

	if m.help {
		switch msg.String() {
		case "esc", "?", "q":
			m.help = false
		}
		return m, nil
	}

	buf := m.currentBuffer()
	m.errorMessage = ""

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "?":
		m.help = true

	case "esc":
		m.handleEscape()

	case "n":
		if buf != nil {
			local := buf.viewport.ScreenToLocal(m.pointerX, m.pointerY)
			n := buf.diagram.AddNode(local.X, local.Y, fmt.Sprintf("box %d", buf.diagram.nextNodeID))
			m.selectNode(buf, n.ID)
		}

	case "e":
		if buf != nil && m.selectedNode >= 0 {
			if n := buf.diagram.Node(m.selectedNode); n != nil {
				m.editText = n.Label()
				m.mode = ModeEditing
			}
		}

	case "d":
		if buf != nil && m.selectedNode >= 0 {
			buf.diagram.RemoveNode(m.selectedNode)
			m.selectedNode = -1
			m.hoverNode = -1
			m.applySessionRadius(buf)
		}

	case "p":
		if buf != nil && m.selectedNode >= 0 {
			meta := buf.diagram.Meta(m.selectedNode)
			meta.Pinned = !meta.Pinned
			m.refreshAnchorVisibility(buf)
		}

	case "a":
		if buf != nil && m.selectedNode >= 0 {
			meta := buf.diagram.Meta(m.selectedNode)
			meta.Accent = (meta.Accent + 1) % len(accentPalette)
		}

	case "c":
		if buf != nil && m.selectedNode >= 0 {
			if err := copyLabelToClipboard(buf.diagram.Node(m.selectedNode)); err != nil {
				m.errorMessage = "clipboard unavailable"
			}
		}

	case "v":
		if buf != nil {
			text, err := readClipboardLabel()
			if err != nil || text == "" {
				m.errorMessage = "nothing to paste"
				break
			}
			local := buf.viewport.ScreenToLocal(m.pointerX, m.pointerY)
			n := buf.diagram.AddNode(local.X, local.Y, text)
			m.selectNode(buf, n.ID)
		}

	case "+", "=":
		if buf != nil {
			buf.viewport.ZoomAt(float64(m.width)/2, float64(m.height), 1.25)
		}
	case "-":
		if buf != nil {
			buf.viewport.ZoomAt(float64(m.width)/2, float64(m.height), 0.8)
		}
	case "0":
		if buf != nil {
			buf.viewport.Reset()
			buf.viewport.Scale = m.config.StartZoom
		}

	case "h", "left":
		m.pan(buf, -panStep, 0)
	case "l", "right":
		m.pan(buf, panStep, 0)
	case "k", "up":
		m.pan(buf, 0, -panStep)
	case "j", "down":
		m.pan(buf, 0, panStep)
	case "H", "shift+left":
		m.pan(buf, -panStep*3, 0)
	case "L", "shift+right":
		m.pan(buf, panStep*3, 0)
	case "K", "shift+up":
		m.pan(buf, 0, -panStep*3)
	case "J", "shift+down":
		m.pan(buf, 0, panStep*3)

	case "S":
		if buf != nil {
			name := m.config.ExportPath(fmt.Sprintf("boxwire-%s.png", time.Now().Format("20060102-150405")))
			if err := exportPNG(buf.diagram, name); err != nil {
				m.errorMessage = err.Error()
			} else {
				buf.status.msg = "Exported " + name
			}
		}
	case "T":
		if buf != nil {
			name := m.config.ExportPath(fmt.Sprintf("boxwire-%s.txt", time.Now().Format("20060102-150405")))
			if err := m.exportText(name); err != nil {
				m.errorMessage = err.Error()
			} else {
				buf.status.msg = "Exported " + name
			}
		}

	case "N":
		m.buffers = append(m.buffers, newBuffer(fmt.Sprintf("diagram %d", len(m.buffers)+1), m.config))
		m.currentBufferIndex = len(m.buffers) - 1
		m.resetInteractionState()
	case "}":
		if len(m.buffers) > 1 {
			m.currentBufferIndex = (m.currentBufferIndex + 1) % len(m.buffers)
			m.resetInteractionState()
		}
	case "{":
		if len(m.buffers) > 1 {
			m.currentBufferIndex = (m.currentBufferIndex - 1 + len(m.buffers)) % len(m.buffers)
			m.resetInteractionState()
		}
	case "x":
		if len(m.buffers) > 1 {
			m.buffers = append(m.buffers[:m.currentBufferIndex], m.buffers[m.currentBufferIndex+1:]...)
			if m.currentBufferIndex >= len(m.buffers) {
				m.currentBufferIndex = len(m.buffers) - 1
			}
			m.resetInteractionState()
		}
	}

	return m, nil
}

const panStep = 4.0

func (m *model) pan(buf *Buffer, dx, dy float64) {
	if buf != nil {
		buf.viewport.PanBy(dx, dy)
	}
}

// resetInteractionState clears per-canvas pointer state when the visible
// buffer changes. Sessions are per-buffer and keep running in background
// buffers untouched.
func (m *model) resetInteractionState() {
	m.selectedNode = -1
	m.hoverNode = -1
	m.dragNode = -1
}

func (m model) handleEditingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	buf := m.currentBuffer()
	switch msg.Type {
	case tea.KeyEscape:
		m.mode = ModeNormal
		m.editText = ""
	case tea.KeyEnter:
		if buf != nil && m.selectedNode >= 0 {
			if n := buf.diagram.Node(m.selectedNode); n != nil {
				n.SetLabel(m.editText)
			}
		}
		m.mode = ModeNormal
		m.editText = ""
	case tea.KeyBackspace:
		if len(m.editText) > 0 {
			m.editText = m.editText[:len(m.editText)-1]
		}
	case tea.KeyCtrlJ:
		m.editText += "\n"
	case tea.KeySpace:
		m.editText += " "
	case tea.KeyRunes:
		m.editText += string(msg.Runes)
	}
	return m, nil
}

var (
	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62"))
	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))
)

func (m model) View() string {
	if m.help {
		return m.helpView()
	}
	buf := m.currentBuffer()
	if buf == nil || m.width < 1 || m.height < 2 {
		return ""
	}

	lines := renderCanvas(buf, m.width, m.height-1, m.selectedNode)

	var result strings.Builder
	for _, line := range lines {
		result.WriteString(line)
		result.WriteString("\n")
	}
	result.WriteString(m.statusView(buf))
	return result.String()
}

func (m model) statusView(buf *Buffer) string {
	var status string
	switch m.mode {
	case ModeEditing:
		status = fmt.Sprintf(" EDIT | %s▌ | Enter=confirm, Ctrl+J=newline, Esc=cancel", strings.ReplaceAll(m.editText, "\n", "⏎"))
	default:
		status = fmt.Sprintf(" %s | zoom %d%%", buf.name, int(buf.viewport.Scale*100))
		if buf.interaction.Active() {
			status += " | CONNECT"
		}
		if m.selectedNode >= 0 {
			status += fmt.Sprintf(" | box %d", m.selectedNode)
		}
		if buf.status.msg != "" {
			status += " | " + buf.status.msg
		}
		if m.errorMessage != "" {
			status += " | " + errorStyle.Render(m.errorMessage)
		} else {
			status += " | ? for help"
		}
	}
	if w := lipgloss.Width(status); w < m.width {
		status += strings.Repeat(" ", m.width-w)
	}
	return statusStyle.Render(status)
}

func (m model) helpView() string {
	helpLines := []string{
		"boxwire",
		"=======",
		"",
		"Mouse:",
		"  click anchor          Start a connection from that box side",
		"  click another anchor  Finish the connection (same box cancels)",
		"  click box             Select it; drag to move",
		"  click background      Cancel connection / clear selection",
		"  wheel                 Zoom at the pointer",
		"",
		"Keys:",
		"  n        New box at pointer",
		"  e        Edit selected box label",
		"  d        Delete selected box (and its edges)",
		"  p        Pin selected box (anchors stay visible)",
		"  a        Cycle selected box border color",
		"  c / v    Copy label / paste clipboard as new box",
		"  + - 0    Zoom in / out / reset",
		"  hjkl     Pan (shift for faster)",
		"  S / T    Export PNG / text",
		"  N { } x  New / previous / next / close buffer",
		"  Esc      Cancel connection or clear selection",
		"  q        Quit",
	}
	return strings.Join(helpLines, "\n")
}
