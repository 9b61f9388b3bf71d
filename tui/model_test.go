package tui

import (
	"strconv"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ByLCY/flowlayout/config"
	"github.com/ByLCY/flowlayout/dsl"
	"github.com/ByLCY/flowlayout/layout"
	"github.com/ByLCY/flowlayout/scenario"
)

// 每个字符格 10x20，40x13 的终端得到 400x200 的视口，每行 4 个条目、5 行可见。
func newModel(t *testing.T, n int) Model {
	t.Helper()
	src := "flow T v1 {\n viewport 400 200\n items { repeat " + strconv.Itoa(n) + " { item 100 40 } }\n}\n"
	doc, err := dsl.ParseString(src)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	cfg := config.Default()
	sc, err := scenario.Build(doc, nil, cfg)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	m := New(sc, cfg.TUI)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 40, Height: 10 + chromeRows})
	return next.(Model)
}

func press(t *testing.T, m Model, k tea.KeyMsg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(k)
	return next.(Model), cmd
}

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func TestResizeMapsTerminalToViewport(t *testing.T) {
	m := newModel(t, 60)
	vp := m.player.Host.Viewport()
	if vp.Width != 400 || vp.Height != 200 {
		t.Fatalf("unexpected viewport %gx%g", vp.Width, vp.Height)
	}
	if got := m.player.Engine.Len(); got != 20 {
		t.Fatalf("expected 20 realized items, got %d", got)
	}
	view := m.View()
	if !strings.Contains(view, "┌") || !strings.Contains(view, "#0") {
		t.Fatalf("view should draw boxed items:\n%s", view)
	}
}

func TestScrollKeys(t *testing.T) {
	m := newModel(t, 60)
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	if got := m.player.Engine.Offset(); got != 40 {
		t.Fatalf("two steps of 20 should scroll 40, got %g", got)
	}
	if m.player.Engine.FirstIndex() != 4 {
		t.Fatalf("first line should have been recycled, first=%d", m.player.Engine.FirstIndex())
	}
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyPgUp})
	if got := m.player.Engine.Offset(); got != 0 || m.player.Engine.FirstIndex() != 0 {
		t.Fatalf("page up should clamp at the start, offset=%g", got)
	}
	m, _ = press(t, m, runes("G"))
	if m.player.Engine.FirstIndex() != 59 {
		t.Fatalf("G should jump to the last item, first=%d", m.player.Engine.FirstIndex())
	}
}

func TestPendingOptionsCommitOnC(t *testing.T) {
	m := newModel(t, 12)
	m, _ = press(t, m, runes("a"))
	m, _ = press(t, m, runes("1"))
	current, pending := m.player.Engine.Options()
	if current.Alignment != layout.AlignStart || pending != (layout.Options{Alignment: layout.AlignEnd, ItemsPerLine: 1}) {
		t.Fatalf("toggles should only touch pending options: %#v / %#v", current, pending)
	}
	if !strings.Contains(m.View(), "pending end/1") {
		t.Fatalf("status line should show pending options")
	}
	m, _ = press(t, m, runes("c"))
	current, _ = m.player.Engine.Options()
	if current.ItemsPerLine != 1 || m.player.Engine.Len() != 5 {
		t.Fatalf("commit should relayout one per line: %#v len=%d", current, m.player.Engine.Len())
	}
	m, _ = press(t, m, runes("1"))
	if _, pending = m.player.Engine.Options(); pending.ItemsPerLine != layout.ItemsPerLineNoLimit {
		t.Fatalf("second toggle should restore the scenario cap, got %d", pending.ItemsPerLine)
	}
}

func TestRemoveAnimatesThenApplies(t *testing.T) {
	m := newModel(t, 12)
	m, cmd := press(t, m, runes("x"))
	if cmd == nil || !m.removing {
		t.Fatalf("remove should schedule the removal")
	}
	if !strings.Contains(m.View(), "░") {
		t.Fatalf("the disappearing item should be shaded")
	}
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	if m.player.Engine.Offset() != 0 {
		t.Fatalf("keys other than quit are ignored while removing")
	}
	next, _ := m.Update(removeMsg{})
	m = next.(Model)
	if m.removing || m.player.Host.ItemCount() != 11 {
		t.Fatalf("removal not applied: removing=%v count=%d", m.removing, m.player.Host.ItemCount())
	}
	if strings.Contains(m.View(), "░") {
		t.Fatalf("no item should be disappearing after the normal pass")
	}
}

func TestSmoothScrollToTarget(t *testing.T) {
	m := newModel(t, 60)
	m, cmd := press(t, m, runes("t"))
	if cmd == nil || m.smooth == nil {
		t.Fatalf("t should start a smooth scroll")
	}
	if d := m.smooth.Distance(); d != 200 {
		t.Fatalf("distance to item 20 should be 200, got %g", d)
	}
	for i := 0; m.smooth != nil; i++ {
		if i > m.cfg.SmoothFrames {
			t.Fatalf("smooth scroll did not finish in %d frames", m.cfg.SmoothFrames)
		}
		next, _ := m.Update(smoothTickMsg{})
		m = next.(Model)
	}
	if m.player.Engine.FirstIndex() != 20 {
		t.Fatalf("target line should be at the top, first=%d", m.player.Engine.FirstIndex())
	}
}

func TestQuit(t *testing.T) {
	m := newModel(t, 1)
	_, cmd := press(t, m, runes("q"))
	if cmd == nil {
		t.Fatalf("q should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("q should return tea.Quit")
	}
}
