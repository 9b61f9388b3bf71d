package canvasrenderer

import (
	"bytes"
	"fmt"
	"image/color"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"

	"github.com/ByLCY/flowlayout/layout"
	"github.com/ByLCY/flowlayout/renderer"
)

const (
	itemStrokeWidth    = 0.3
	visibleStrokeWidth = 0.8
	targetStrokeWidth  = 0.4
)

// Renderer draws every frame of a result as one PDF page via
// github.com/tdewolff/canvas.
type Renderer struct {
	style renderer.Style
}

var _ renderer.Renderer = (*Renderer)(nil)

// NewRenderer creates a PDF renderer with the given style.
func NewRenderer(style renderer.Style) *Renderer {
	return &Renderer{style: style}
}

// Render renders the result into a PDF byte slice.
func (r *Renderer) Render(result *layout.Result) ([]byte, error) {
	if result == nil {
		return nil, fmt.Errorf("渲染结果为空")
	}
	if len(result.Frames) == 0 {
		return nil, fmt.Errorf("缺少可渲染的帧")
	}

	var buf bytes.Buffer
	w, h := r.style.PageSize(result.Frames[0])
	writer := pdf.New(&buf, w, h, nil)
	writer.SetInfo(result.Meta.Title, "flow layout frames", "", "", "flowlayout")
	for i, frame := range result.Frames {
		w, h := r.style.PageSize(frame)
		if i > 0 {
			writer.NewPage(w, h)
		}
		c := canvas.New(w, h)
		ctx := canvas.NewContext(c)
		ctx.SetCoordSystem(canvas.CartesianIV) // 使坐标与布局保持左上角为原点

		r.drawFrame(ctx, frame, w, h)
		c.RenderTo(writer)
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("写入 PDF 失败: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) drawFrame(ctx *canvas.Context, f layout.Frame, w, h float64) {
	s := r.style
	ctx.SetFillColor(s.Background)
	ctx.SetStrokeColor(transparent)
	ctx.DrawPath(0, 0, canvas.Rectangle(w, h))

	// 视口外框（含内边距）
	outer := layout.Rect{Right: f.Viewport.Width, Bottom: f.Viewport.Height}
	r.drawRect(ctx, outer, transparent, s.Stroke, itemStrokeWidth)

	for _, box := range f.Items {
		r.drawRect(ctx, box.Rect, s.ItemFill(box), s.Stroke, itemStrokeWidth)
	}
	for _, box := range f.Items {
		if box.Target == nil || *box.Target == box.Rect {
			continue
		}
		r.drawRect(ctx, *box.Target, transparent, s.Target, targetStrokeWidth)
		r.drawLink(ctx, box.Rect, *box.Target)
	}

	r.drawRect(ctx, f.Visible, transparent, s.Viewport, visibleStrokeWidth)
}

func (r *Renderer) drawRect(ctx *canvas.Context, rect layout.Rect, fill, stroke color.Color, width float64) {
	x, y, w, h := r.style.Project(rect)
	if w <= 0 || h <= 0 {
		return
	}
	ctx.SetFillColor(fill)
	ctx.SetStrokeColor(stroke)
	ctx.SetStrokeWidth(width)
	ctx.DrawPath(x, y, canvas.Rectangle(w, h))
}

// drawLink connects the centre of an item's current rect to its target.
func (r *Renderer) drawLink(ctx *canvas.Context, from, to layout.Rect) {
	x1, y1, w1, h1 := r.style.Project(from)
	x2, y2, w2, h2 := r.style.Project(to)
	p := &canvas.Path{}
	p.MoveTo(0, 0)
	p.LineTo(x2+w2/2-(x1+w1/2), y2+h2/2-(y1+h1/2))
	ctx.SetFillColor(transparent)
	ctx.SetStrokeColor(r.style.Target)
	ctx.SetStrokeWidth(targetStrokeWidth)
	ctx.DrawPath(x1+w1/2, y1+h1/2, p)
}

var transparent = color.RGBA{0, 0, 0, 0}
