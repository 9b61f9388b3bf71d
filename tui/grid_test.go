package tui

import (
	"strings"
	"testing"

	"github.com/ByLCY/flowlayout/host"
	"github.com/ByLCY/flowlayout/layout"
)

func TestGridDrawsBoxWithLabel(t *testing.T) {
	g := newGrid(8, 3, 10, 20)
	g.drawView(&host.View{Label: "ab", Rect: layout.Rect{Right: 60, Bottom: 60}})
	want := strings.Join([]string{
		"┌────┐  ",
		"│ ab │  ",
		"└────┘  ",
	}, "\n")
	if got := g.String(); got != want {
		t.Fatalf("unexpected grid:\n%s\nwant:\n%s", got, want)
	}
}

func TestGridClipsAndShades(t *testing.T) {
	g := newGrid(4, 2, 10, 20)
	// 部分位于视口上方
	g.drawView(&host.View{Rect: layout.Rect{Left: 20, Top: -20, Right: 60, Bottom: 20}, Placement: layout.PlacedDisappearing})
	// 小于一个字符格的条目至少占一格
	g.drawView(&host.View{Rect: layout.Rect{Top: 20, Right: 2, Bottom: 22}})
	want := "  ░░\n█   "
	if got := g.String(); got != want {
		t.Fatalf("unexpected grid:\n%q\nwant:\n%q", got, want)
	}
}
