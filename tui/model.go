// Package tui is a terminal host for the flow layout engine: the engine's
// window is drawn as boxes on a character grid and the keyboard drives
// scrolling, option changes and removals.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ByLCY/flowlayout/config"
	"github.com/ByLCY/flowlayout/layout"
	"github.com/ByLCY/flowlayout/scenario"
)

const (
	// chromeRows is the title, status and help lines around the grid.
	chromeRows   = 3
	targetStride = 20
	frameDelay   = 16 * time.Millisecond
	removeDelay  = 400 * time.Millisecond
)

var (
	primary = lipgloss.Color("#0F62FE")
	muted   = lipgloss.Color("#6B7280")
	warning = lipgloss.Color("#F59E0B")

	titleStyle   = lipgloss.NewStyle().Foreground(primary).Bold(true)
	gridStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#A6C8FF"))
	statusStyle  = lipgloss.NewStyle().Foreground(muted).PaddingLeft(1)
	pendingStyle = lipgloss.NewStyle().Foreground(warning)
	helpStyle    = lipgloss.NewStyle().Foreground(muted)
)

type smoothTickMsg struct{}

type removeMsg struct{}

// Model is the bubbletea model of the viewer.
type Model struct {
	player *scenario.Player
	cfg    config.TUIConfig
	keys   KeyMap
	title  string

	basePerLine int // scenario cap, restored when one-per-line is toggled off

	width, height int
	smooth        *layout.SmoothScroll
	removing      bool
	removeAt      int
	status        string
}

// New lays out the scenario's items once and returns the model.
func New(sc *scenario.Scenario, cfg config.TUIConfig) Model {
	p := scenario.NewPlayer(sc)
	p.Engine.Layout(false)
	base := sc.Options.ItemsPerLine
	if base == 1 {
		base = layout.ItemsPerLineNoLimit
	}
	return Model{
		player:      p,
		cfg:         cfg,
		keys:        DefaultKeyMap(),
		title:       sc.Title,
		basePerLine: base,
	}
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	e := m.player.Engine
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return m, nil

	case smoothTickMsg:
		if m.smooth == nil {
			return m, nil
		}
		m.smooth.Step()
		if m.smooth.Done() {
			m.status = fmt.Sprintf("arrived near %d", m.smooth.Target())
			m.smooth = nil
			return m, nil
		}
		return m, tickSmooth()

	case removeMsg:
		m.player.Host.ApplyRemovals()
		e.ItemsRemoved(m.removeAt, 1)
		e.Layout(false)
		m.removing = false
		m.status = fmt.Sprintf("removed %d", m.removeAt)
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		if m.removing {
			return m, nil
		}
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	e := m.player.Engine
	count := m.player.Host.ItemCount()
	page := m.player.Host.Viewport().VisibleRect().Height()
	m.smooth = nil

	switch {
	case key.Matches(msg, m.keys.ScrollUp):
		m.scroll(-m.cfg.ScrollStep)
	case key.Matches(msg, m.keys.ScrollDown):
		m.scroll(m.cfg.ScrollStep)
	case key.Matches(msg, m.keys.PageUp):
		m.scroll(-page)
	case key.Matches(msg, m.keys.PageDown):
		m.scroll(page)
	case key.Matches(msg, m.keys.Top):
		if count > 0 {
			e.ScrollToIndex(0)
			m.status = "jump 0"
		}
	case key.Matches(msg, m.keys.Bottom):
		if count > 0 {
			e.ScrollToIndex(count - 1)
			m.status = fmt.Sprintf("jump %d", count-1)
		}
	case key.Matches(msg, m.keys.ToggleAlign):
		_, pending := e.Options()
		next := layout.AlignEnd
		if pending.Alignment == layout.AlignEnd {
			next = layout.AlignStart
		}
		e.SetAlignment(next)
		m.status = "pending align " + next.String() + ", press c to commit"
	case key.Matches(msg, m.keys.TogglePer):
		_, pending := e.Options()
		next := 1
		if pending.ItemsPerLine == 1 {
			next = m.basePerLine
		}
		e.SetItemsPerLine(next)
		m.status = fmt.Sprintf("pending per-line %d, press c to commit", next)
	case key.Matches(msg, m.keys.Commit):
		e.ItemsChanged()
		e.Layout(false)
		m.status = "options committed"
	case key.Matches(msg, m.keys.Remove):
		if e.Len() == 0 {
			return m, nil
		}
		m.removeAt = e.FirstIndex()
		if err := m.player.Host.MarkRemoved(m.removeAt, 1); err != nil {
			m.status = err.Error()
			return m, nil
		}
		e.Layout(true)
		m.removing = true
		m.status = fmt.Sprintf("removing %d", m.removeAt)
		return m, tea.Tick(removeDelay, func(time.Time) tea.Msg { return removeMsg{} })
	case key.Matches(msg, m.keys.Target):
		if count == 0 || e.Len() == 0 {
			return m, nil
		}
		target := (e.FirstIndex() + targetStride) % count
		m.smooth = layout.NewSmoothScroll(e, target, m.cfg.SmoothFrames)
		m.status = fmt.Sprintf("smooth-to %d (%.0f)", target, m.smooth.Distance())
		return m, tickSmooth()
	}
	return m, nil
}

func (m *Model) scroll(dy float64) {
	got := m.player.Engine.ScrollBy(dy)
	m.status = fmt.Sprintf("scroll %.0f → %.0f", dy, got)
}

// resize maps the terminal size to a viewport in layout units and lays out
// again. The scenario padding is dropped when it no longer fits.
func (m *Model) resize() {
	cols := max(m.width, 1)
	rows := max(m.height-chromeRows, 1)
	vp := m.player.Host.Viewport()
	vp.Width = float64(cols) * m.cfg.CellWidth
	vp.Height = float64(rows) * m.cfg.CellHeight
	if vis := vp.VisibleRect(); vis.Width() <= 0 || vis.Height() <= 0 {
		vp.Padding = layout.Margin{}
	}
	m.player.Host.SetViewport(vp)
	m.player.Engine.Layout(false)
}

func (m Model) gridSize() (cols, rows int) {
	if m.width > 0 && m.height > 0 {
		return m.width, max(m.height-chromeRows, 1)
	}
	vp := m.player.Host.Viewport()
	return max(int(vp.Width/m.cfg.CellWidth), 1), max(int(vp.Height/m.cfg.CellHeight), 1)
}

func (m Model) View() string {
	cols, rows := m.gridSize()
	g := newGrid(cols, rows, m.cfg.CellWidth, m.cfg.CellHeight)
	for _, v := range m.player.Host.Attached() {
		g.drawView(v)
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n")
	b.WriteString(gridStyle.Render(g.String()))
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(helpLine(m.keys.ShortHelp())))
	return b.String()
}

func (m Model) statusLine() string {
	e := m.player.Engine
	current, pending := e.Options()
	s := fmt.Sprintf("first %d/%d  window %d  offset %.0f  align %s  per-line %d",
		e.FirstIndex(), m.player.Host.ItemCount(), e.Len(), e.Offset(), current.Alignment, current.ItemsPerLine)
	line := statusStyle.Render(s)
	if pending != current {
		line += pendingStyle.Render(fmt.Sprintf("  pending %s/%d", pending.Alignment, pending.ItemsPerLine))
	}
	if m.status != "" {
		line += statusStyle.Render("· " + m.status)
	}
	return line
}

func helpLine(bindings []key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, " · ")
}

func tickSmooth() tea.Cmd {
	return tea.Tick(frameDelay, func(time.Time) tea.Msg { return smoothTickMsg{} })
}
