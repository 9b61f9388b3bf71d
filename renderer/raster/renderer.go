// Package raster draws all frames of a result onto one PNG contact sheet
// with github.com/fogleman/gg.
package raster

import (
	"bytes"
	"fmt"
	"image/color"
	"math"

	"github.com/fogleman/gg"

	"github.com/ByLCY/flowlayout/layout"
	"github.com/ByLCY/flowlayout/renderer"
)

// captionHeight is reserved above each cell for the frame label.
const captionHeight = 16

type Renderer struct {
	style renderer.Style
}

var _ renderer.Renderer = (*Renderer)(nil)

func NewRenderer(style renderer.Style) *Renderer {
	return &Renderer{style: style}
}

// Render lays the frames out in rows of style.Columns cells and encodes PNG.
func (r *Renderer) Render(result *layout.Result) ([]byte, error) {
	if result == nil {
		return nil, fmt.Errorf("渲染结果为空")
	}
	if len(result.Frames) == 0 {
		return nil, fmt.Errorf("缺少可渲染的帧")
	}
	cellW, cellH := r.cellSize(result.Frames)
	cols := min(r.style.Columns, len(result.Frames))
	rows := (len(result.Frames) + cols - 1) / cols
	dc := gg.NewContext(int(math.Ceil(cellW))*cols, int(math.Ceil(cellH))*rows)
	dc.SetColor(r.style.Background)
	dc.Clear()

	for i, f := range result.Frames {
		x := float64(i%cols) * math.Ceil(cellW)
		y := float64(i/cols) * math.Ceil(cellH)
		r.drawFrame(dc, f, x, y, cellW, cellH)
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("编码 PNG 失败: %w", err)
	}
	return buf.Bytes(), nil
}

// cellSize is the largest page of any frame plus the caption strip.
func (r *Renderer) cellSize(frames []layout.Frame) (w, h float64) {
	for _, f := range frames {
		pw, ph := r.style.PageSize(f)
		w = math.Max(w, pw)
		h = math.Max(h, ph)
	}
	return w, h + captionHeight
}

func (r *Renderer) drawFrame(dc *gg.Context, f layout.Frame, ox, oy, w, h float64) {
	s := r.style
	dc.Push()
	defer dc.Pop()

	dc.SetColor(s.Stroke)
	dc.DrawStringAnchored(caption(f), ox+4, oy+captionHeight/2, 0, 0.5)

	dc.DrawRectangle(ox, oy+captionHeight, w, h-captionHeight)
	dc.Clip()
	dc.Translate(ox, oy+captionHeight)

	r.strokeRect(dc, layout.Rect{Right: f.Viewport.Width, Bottom: f.Viewport.Height}, s.Stroke, 1)
	for _, box := range f.Items {
		x, y, bw, bh := s.Project(box.Rect)
		dc.DrawRectangle(x, y, bw, bh)
		dc.SetColor(s.ItemFill(box))
		dc.FillPreserve()
		dc.SetColor(s.Stroke)
		dc.SetLineWidth(1)
		dc.Stroke()
		if box.Label != "" && bw > 0 && bh > 0 {
			dc.DrawStringAnchored(box.Label, x+bw/2, y+bh/2, 0.5, 0.5)
		}
	}
	for _, box := range f.Items {
		if box.Target == nil || *box.Target == box.Rect {
			continue
		}
		dc.SetDash(4, 3)
		r.strokeRect(dc, *box.Target, s.Target, 1)
		x1, y1, w1, h1 := s.Project(box.Rect)
		x2, y2, w2, h2 := s.Project(*box.Target)
		dc.DrawLine(x1+w1/2, y1+h1/2, x2+w2/2, y2+h2/2)
		dc.Stroke()
		dc.SetDash()
	}
	r.strokeRect(dc, f.Visible, s.Viewport, 2)
	dc.ResetClip()
}

func (r *Renderer) strokeRect(dc *gg.Context, rect layout.Rect, c color.Color, width float64) {
	x, y, w, h := r.style.Project(rect)
	dc.DrawRectangle(x, y, w, h)
	dc.SetColor(c)
	dc.SetLineWidth(width)
	dc.Stroke()
}

func caption(f layout.Frame) string {
	s := fmt.Sprintf("%s  first=%d", f.Label, f.FirstIndex)
	if f.Distance != nil {
		s += fmt.Sprintf(" dist=%g", *f.Distance)
	}
	return s
}
