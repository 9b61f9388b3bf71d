package scenario

import (
	"math"
	"strings"
	"testing"

	"github.com/ByLCY/flowlayout/config"
	"github.com/ByLCY/flowlayout/dsl"
	"github.com/ByLCY/flowlayout/layout"
)

func build(t *testing.T, src string, data any) *Scenario {
	t.Helper()
	doc, err := dsl.ParseString(src)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	sc, err := Build(doc, data, config.Default())
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	return sc
}

func run(t *testing.T, src string) *layout.Result {
	t.Helper()
	res, err := build(t, src, nil).Run()
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	return res
}

func indexes(f layout.Frame) []int {
	out := make([]int, 0, len(f.Items))
	for _, it := range f.Items {
		out = append(out, it.Index)
	}
	return out
}

func labels(f layout.Frame) string {
	out := make([]string, 0, len(f.Items))
	for _, it := range f.Items {
		out = append(out, it.Label)
	}
	return strings.Join(out, ",")
}

func sameInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

const gridSrc = `
flow Grid v1 {
  meta { title: "Grid" }
  viewport 300 100
  items {
    repeat 10 { item 100 50 }
  }
  steps {
    layout
    scroll 60
    remove 0 1
    target 8
  }
}
`

func TestRunScrollRemoveTarget(t *testing.T) {
	res := run(t, gridSrc)
	if res.Meta.Title != "Grid" || res.Meta.ItemCount != 10 {
		t.Fatalf("unexpected meta: %#v", res.Meta)
	}
	if len(res.Frames) != 5 {
		t.Fatalf("expected 5 frames (remove records two), got %d", len(res.Frames))
	}

	initial := res.Frames[0]
	if initial.Label != "layout" || !sameInts(indexes(initial), []int{0, 1, 2, 3, 4, 5}) {
		t.Fatalf("unexpected initial frame %q: %v", initial.Label, indexes(initial))
	}
	if len(initial.Lines) != 2 || !sameInts(initial.Lines[0], []int{0, 1, 2}) || !sameInts(initial.Lines[1], []int{3, 4, 5}) {
		t.Fatalf("unexpected line grouping: %v", initial.Lines)
	}

	scrolled := res.Frames[1]
	if scrolled.Requested != 60 || scrolled.Consumed != 60 {
		t.Fatalf("scroll should consume 60, got requested=%g consumed=%g", scrolled.Requested, scrolled.Consumed)
	}
	if scrolled.FirstIndex != 3 || !sameInts(indexes(scrolled), []int{3, 4, 5, 6, 7, 8, 9}) {
		t.Fatalf("unexpected window after scroll: first=%d %v", scrolled.FirstIndex, indexes(scrolled))
	}

	structural := res.Frames[2]
	if !strings.HasSuffix(structural.Label, "(structural)") {
		t.Fatalf("first remove frame should be the structural pass, got %q", structural.Label)
	}

	// 删除窗口之前的条目后，首个可见条目仍是原来的 #3
	after := res.Frames[3]
	if after.FirstIndex != 2 || !strings.HasPrefix(labels(after), "#3,#4,#5") {
		t.Fatalf("anchor lost after removal: first=%d labels=%s", after.FirstIndex, labels(after))
	}

	target := res.Frames[4]
	if target.Distance == nil || *target.Distance != 100 {
		t.Fatalf("expected distance 100 to index 8, got %v", target.Distance)
	}
}

func TestRemoveVisibleItemKeepsOldPositions(t *testing.T) {
	res := run(t, `
flow R v1 {
  viewport 300 100
  items { repeat 10 { item 100 50 } }
  steps {
    layout
    remove 1
  }
}
`)
	structural := res.Frames[1]
	if !sameInts(indexes(structural), []int{0, 1, 2, 3, 4, 5, 6}) {
		t.Fatalf("structural window: %v", indexes(structural))
	}
	gone := structural.Items[1]
	if !gone.Disappearing || gone.Rect != (layout.Rect{Left: 100, Top: 0, Right: 200, Bottom: 50}) {
		t.Fatalf("removed item should stay at its old rect: %#v", gone)
	}
	moved := structural.Items[2]
	if moved.Disappearing || moved.Rect.Left != 200 {
		t.Fatalf("survivor should be drawn at its old rect: %#v", moved)
	}
	if moved.Target == nil || *moved.Target != (layout.Rect{Left: 100, Top: 0, Right: 200, Bottom: 50}) {
		t.Fatalf("survivor target should be the slot it moves into: %#v", moved.Target)
	}

	after := res.Frames[2]
	if got := labels(after); got != "#0,#2,#3,#4,#5,#6" {
		t.Fatalf("unexpected labels after removal: %s", got)
	}
	for _, it := range after.Items {
		if it.Disappearing || it.Target != nil {
			t.Fatalf("normal pass should not carry structural state: %#v", it)
		}
	}
}

func TestSmoothToClampsAtEnd(t *testing.T) {
	res := run(t, `
flow S v1 {
  viewport 300 100
  items { repeat 10 { item 100 50 } }
  steps {
    layout
    smooth-to 9 frames 4
  }
}
`)
	frames := res.Frames[1:]
	if len(frames) != 2 {
		t.Fatalf("smooth scroll should stop once clamped, got %d frames", len(frames))
	}
	last := frames[len(frames)-1]
	if last.Distance == nil || *last.Distance != 150 {
		t.Fatalf("distance should be resolved once as 150, got %v", last.Distance)
	}
	if math.Abs(last.Offset-100) > 1e-9 {
		t.Fatalf("content should end at the bottom (offset 100), got %g", last.Offset)
	}
}

func TestOptionsCommitOnStructuralPass(t *testing.T) {
	res := run(t, `
flow O v1 {
  viewport 300 100 { align: end }
  items { repeat 4 { item 100 50 } }
  steps {
    layout
    per-line 1
    layout
    structural
  }
}
`)
	first := res.Frames[0]
	if first.Options.Alignment != layout.AlignEnd || first.Items[0].Rect.Right != 300 {
		t.Fatalf("end alignment should place item 0 at the right edge: %#v", first.Items[0])
	}
	pending := res.Frames[2]
	if pending.Options.ItemsPerLine != 0 || pending.Pending.ItemsPerLine != 1 {
		t.Fatalf("normal pass must not commit pending options: %#v / %#v", pending.Options, pending.Pending)
	}
	if len(pending.Items) != 4 {
		t.Fatalf("normal pass should still use the committed options, got %d items", len(pending.Items))
	}
	committed := res.Frames[3]
	if committed.Options.ItemsPerLine != 1 {
		t.Fatalf("structural pass should commit pending options: %#v", committed.Options)
	}
}

func TestBuildItemsFromData(t *testing.T) {
	data := map[string]any{
		"name": "Shop",
		"items": []any{
			map[string]any{"w": float64(80), "h": float64(30), "name": "a"},
			map[string]any{"w": "40", "h": float64(30), "name": "b"},
		},
	}
	sc := build(t, `
flow D v1 {
  meta { title: "${data.name}" }
  viewport 200 100 { padding: [0, 10]; per-line: 2 }
  items {
    from data.items {
      width: item.w
      height: item.h
      label: "${item.name}-${index}"
      color: #FF0000
    }
    item 50% 10
    script "[10, i + 1]" count 2
  }
}
`, data)
	if sc.Title != "Shop" {
		t.Fatalf("title should interpolate data, got %q", sc.Title)
	}
	if sc.Options.ItemsPerLine != 2 || sc.Viewport.Padding.Left != 10 || sc.Viewport.Padding.Top != 0 {
		t.Fatalf("viewport block not applied: %#v %#v", sc.Options, sc.Viewport.Padding)
	}
	if len(sc.Items) != 5 {
		t.Fatalf("expected 5 items, got %d", len(sc.Items))
	}
	want := []struct {
		w, h  float64
		label string
	}{
		{80, 30, "a-0"},
		{40, 30, "b-1"},
		{90, 10, "#2"},
		{10, 1, "#3"},
		{10, 2, "#4"},
	}
	for i, w := range want {
		it := sc.Items[i]
		if it.Size.Width != w.w || it.Size.Height != w.h || it.Label != w.label {
			t.Fatalf("item %d: got %#v, want %+v", i, it, w)
		}
	}
	if sc.Items[0].Color != "#FF0000" {
		t.Fatalf("colour lost: %q", sc.Items[0].Color)
	}
	if len(sc.Steps) != 1 || sc.Steps[0].Kind != StepLayout {
		t.Fatalf("missing steps should default to a single layout, got %#v", sc.Steps)
	}
}

func TestInsertKeepsAnchor(t *testing.T) {
	res := run(t, `
flow I v1 {
  viewport 300 100
  items { repeat 12 { item 100 50 } }
  steps {
    jump 6
    insert 0 { item 100 50; item 100 50 }
  }
}
`)
	before, after := res.Frames[0], res.Frames[1]
	if before.FirstIndex != 6 || after.FirstIndex != 8 {
		t.Fatalf("insert before the window should shift firstIndex: %d -> %d", before.FirstIndex, after.FirstIndex)
	}
	if after.Items[0].Label != "#6" {
		t.Fatalf("first visible item should be unchanged, got %s", after.Items[0].Label)
	}
}

func TestBuildErrors(t *testing.T) {
	cases := map[string]string{
		"unknown step":   "flow E v1 {\n viewport 100 100\n steps { fly 3 }\n}\n",
		"viewport args":  "flow E v1 {\n viewport 100\n}\n",
		"bad align":      "flow E v1 {\n viewport 100 100 { align: middle }\n}\n",
		"not an array":   "flow E v1 {\n items { from data.none { width: 1; height: 1 } }\n}\n",
		"bad item":       "flow E v1 {\n items { item wide 10 }\n}\n",
		"script usage":   "flow E v1 {\n items { script \"1\" 4 }\n}\n",
		"smooth usage":   "flow E v1 {\n steps { smooth-to 3 over 4 }\n}\n",
		"padding is big": "flow E v1 {\n viewport 100 100 { padding: 50 }\n}\n",
		"two items":      "flow E v1 {\n items { item 1 1 }\n items { item 1 1 }\n}\n",
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			doc, err := dsl.ParseString(src)
			if err != nil {
				t.Fatalf("parse failed: %v", err)
			}
			if _, err := Build(doc, map[string]any{}, config.Default()); err == nil {
				t.Fatalf("expected build error")
			}
		})
	}
}

func TestRunRejectsOutOfRangeIndex(t *testing.T) {
	sc := build(t, "flow E v1 {\n items { item 10 10 }\n steps { jump 5 }\n}\n", nil)
	if _, err := sc.Run(); err == nil {
		t.Fatalf("jump past the end should fail")
	}
}

func TestInsertBindsData(t *testing.T) {
	data := map[string]any{
		"extra": []any{
			map[string]any{"w": float64(100), "h": float64(50), "name": "late"},
		},
	}
	sc := build(t, `
flow I v1 {
  viewport 300 100
  items { repeat 3 { item 100 50 } }
  steps {
    insert 1 {
      from data.extra { width: item.w; height: item.h; label: "${item.name}" }
    }
  }
}
`, data)
	res, err := sc.Run()
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if got := labels(res.Frames[0]); got != "#0,late,#1,#2" {
		t.Fatalf("inserted item should come from data, got %s", got)
	}
}
