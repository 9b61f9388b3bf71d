package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/ByLCY/flowlayout/config"
	"github.com/ByLCY/flowlayout/layout"
	"github.com/ByLCY/flowlayout/renderer"
	canvasrenderer "github.com/ByLCY/flowlayout/renderer/canvas"
	"github.com/ByLCY/flowlayout/renderer/raster"
	"github.com/ByLCY/flowlayout/scenario"
)

// TestRunGalleryExample 回放示例场景并输出 PDF、PNG 与调试 JSON。
func TestRunGalleryExample(t *testing.T) {
	data, err := scenario.ParseData("@examples/items.json")
	if err != nil {
		t.Fatalf("load data: %v", err)
	}
	dir := t.TempDir()
	style := renderer.DefaultStyle()
	outputs := []output{
		{path: filepath.Join(dir, "frames.pdf"), kind: "PDF", r: canvasrenderer.NewRenderer(style)},
		{path: filepath.Join(dir, "sheet", "frames.png"), kind: "PNG", r: raster.NewRenderer(style)},
	}
	debugPath := filepath.Join(dir, "debug", "frames.json")

	n, err := run("examples/gallery.flow", debugPath, data, config.Default(), outputs)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if n == 0 {
		t.Fatalf("expected frames")
	}
	for _, o := range outputs {
		if st, err := os.Stat(o.path); err != nil || st.Size() == 0 {
			t.Fatalf("%s output missing: %v", o.kind, err)
		}
	}

	raw, err := os.ReadFile(debugPath)
	if err != nil {
		t.Fatalf("read debug JSON: %v", err)
	}
	var res layout.Result
	if err := json.Unmarshal(raw, &res); err != nil {
		t.Fatalf("decode debug JSON: %v", err)
	}
	if len(res.Frames) != n || res.Meta.Title != "Gallery" {
		t.Fatalf("debug JSON mismatch: frames=%d/%d title=%q", len(res.Frames), n, res.Meta.Title)
	}
}

func TestRunReportsMissingInput(t *testing.T) {
	if _, err := run(filepath.Join(t.TempDir(), "none.flow"), "", nil, config.Default(), nil); err == nil {
		t.Fatalf("missing input should fail")
	}
}
