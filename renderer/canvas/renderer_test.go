package canvasrenderer

import (
	"bytes"
	"testing"

	"github.com/ByLCY/flowlayout/layout"
	"github.com/ByLCY/flowlayout/renderer"
)

func sampleResult() *layout.Result {
	vp := layout.Viewport{Width: 200, Height: 100, Padding: layout.Margin{Top: 10, Bottom: 10}}
	target := layout.Rect{Left: 0, Top: 10, Right: 50, Bottom: 40}
	return &layout.Result{
		Meta: layout.Meta{Title: "sample", ItemCount: 3},
		Frames: []layout.Frame{
			{
				Label:    "layout",
				Viewport: vp,
				Visible:  vp.VisibleRect(),
				Items: []layout.ItemBox{
					{Index: 0, Rect: layout.Rect{Left: 0, Top: 10, Right: 50, Bottom: 40}},
					{Index: 1, Rect: layout.Rect{Left: 50, Top: 10, Right: 150, Bottom: 40}, Color: "#FF0000"},
				},
			},
			{
				Label:    "remove 0 1 (structural)",
				Viewport: vp,
				Visible:  vp.VisibleRect(),
				Items: []layout.ItemBox{
					{Index: 0, Rect: layout.Rect{Left: 0, Top: 10, Right: 50, Bottom: 40}, Disappearing: true},
					{Index: 1, Rect: layout.Rect{Left: 50, Top: 10, Right: 150, Bottom: 40}, Target: &target},
				},
			},
		},
	}
}

func TestRenderProducesPDF(t *testing.T) {
	r := NewRenderer(renderer.DefaultStyle())
	data, err := r.Render(sampleResult())
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Fatalf("output is not a PDF: %q", data[:min(len(data), 16)])
	}
}

func TestRenderRejectsEmptyResult(t *testing.T) {
	r := NewRenderer(renderer.DefaultStyle())
	if _, err := r.Render(nil); err == nil {
		t.Fatalf("nil result should fail")
	}
	if _, err := r.Render(&layout.Result{}); err == nil {
		t.Fatalf("result without frames should fail")
	}
}
