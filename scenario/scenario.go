// Package scenario interprets a parsed .flow document: it builds the item
// list, resolves the viewport against the config defaults and replays the
// steps against a layout.Engine, recording one frame per step.
package scenario

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ByLCY/flowlayout/binding"
	"github.com/ByLCY/flowlayout/config"
	"github.com/ByLCY/flowlayout/dsl"
	"github.com/ByLCY/flowlayout/host"
	"github.com/ByLCY/flowlayout/layout"
)

// Scenario is a fully resolved document, ready to run.
type Scenario struct {
	Title    string
	Viewport layout.Viewport
	Options  layout.Options
	Items    []host.Item
	Steps    []Step
	// SmoothFrames is the default frame count of smooth-to.
	SmoothFrames int
}

// Build resolves doc against data (the JSON value bound as `data`) and cfg.
func Build(doc *dsl.Document, data any, cfg config.Config) (*Scenario, error) {
	if doc == nil {
		return nil, fmt.Errorf("scenario: 文档为空")
	}
	sc := &Scenario{
		Title:        doc.Name,
		Viewport:     cfg.LayoutViewport(),
		Options:      cfg.LayoutOptions(),
		SmoothFrames: cfg.TUI.SmoothFrames,
	}
	scope := map[string]any{"data": data}

	var items *dsl.ItemsSection
	var steps *dsl.StepsSection
	for _, sec := range doc.Sections {
		switch {
		case sec.Meta != nil:
			if v, ok := sec.Meta.Block.Assignments()["title"]; ok {
				if s, ok := v.Text(); ok {
					sc.Title = binding.Interpolate(s, scope)
				}
			}
		case sec.Viewport != nil:
			if err := sc.applyViewport(sec.Viewport); err != nil {
				return nil, err
			}
		case sec.Items != nil:
			if items != nil {
				return nil, fmt.Errorf("scenario: %s 段重复", sec.Kind())
			}
			items = sec.Items
		case sec.Steps != nil:
			if steps != nil {
				return nil, fmt.Errorf("scenario: %s 段重复", sec.Kind())
			}
			steps = sec.Steps
		}
	}

	if items != nil {
		b := itemBuilder{viewport: sc.Viewport, scope: scope}
		built, err := b.build(items.Block.Commands())
		if err != nil {
			return nil, err
		}
		sc.Items = built
	}
	for i := range sc.Items {
		if sc.Items[i].Label == "" {
			sc.Items[i].Label = "#" + strconv.Itoa(i)
		}
	}

	if steps != nil {
		for _, cmd := range steps.Block.Commands() {
			st, err := parseStep(cmd, sc, scope)
			if err != nil {
				return nil, err
			}
			sc.Steps = append(sc.Steps, st)
		}
	}
	if len(sc.Steps) == 0 {
		sc.Steps = []Step{{Kind: StepLayout}}
	}
	return sc, nil
}

func (sc *Scenario) applyViewport(v *dsl.ViewportSection) error {
	params := v.ParamValues()
	switch len(params) {
	case 0:
	case 2:
		w, err := parsePositive(params[0])
		if err != nil {
			return fmt.Errorf("%s: viewport 宽度: %w", v.Pos, err)
		}
		h, err := parsePositive(params[1])
		if err != nil {
			return fmt.Errorf("%s: viewport 高度: %w", v.Pos, err)
		}
		sc.Viewport.Width, sc.Viewport.Height = w, h
	default:
		return fmt.Errorf("%s: viewport 需要宽高两个参数，实际 %d 个", v.Pos, len(params))
	}

	for key, val := range v.Block.Assignments() {
		switch key {
		case "padding":
			m, err := parsePadding(val)
			if err != nil {
				return fmt.Errorf("%s: padding: %w", v.Pos, err)
			}
			sc.Viewport.Padding = m
		case "align":
			s, _ := val.Text()
			a, err := layout.ParseAlignment(s)
			if err != nil {
				return fmt.Errorf("%s: %w", v.Pos, err)
			}
			sc.Options.Alignment = a
		case "per-line":
			s, _ := val.Text()
			n, err := strconv.Atoi(s)
			if err != nil || n < 0 {
				return fmt.Errorf("%s: per-line 需要非负整数: %q", v.Pos, s)
			}
			sc.Options.ItemsPerLine = n
		default:
			return fmt.Errorf("%s: 未知的 viewport 属性 %q", v.Pos, key)
		}
	}
	vis := sc.Viewport.VisibleRect()
	if vis.Width() <= 0 || vis.Height() <= 0 {
		return fmt.Errorf("%s: padding 超出 viewport", v.Pos)
	}
	return nil
}

// parsePadding accepts CSS-style shorthands: one value, [vertical, horizontal]
// or [top, right, bottom, left].
func parsePadding(v *dsl.Value) (layout.Margin, error) {
	var raw []string
	if v.Array != nil {
		for _, el := range v.Array.Values {
			s, ok := el.Text()
			if !ok {
				return layout.Margin{}, fmt.Errorf("数组元素必须是数字")
			}
			raw = append(raw, s)
		}
	} else if s, ok := v.Text(); ok {
		raw = strings.Fields(s)
	}
	vals := make([]float64, 0, len(raw))
	for _, s := range raw {
		l, ok := layout.ParseRawLengthStr(s)
		if !ok || l.Unit == layout.UnitPercent {
			return layout.Margin{}, fmt.Errorf("无效的长度 %q", s)
		}
		vals = append(vals, l.Value)
	}
	switch len(vals) {
	case 1:
		return layout.Margin{Top: vals[0], Right: vals[0], Bottom: vals[0], Left: vals[0]}, nil
	case 2:
		return layout.Margin{Top: vals[0], Right: vals[1], Bottom: vals[0], Left: vals[1]}, nil
	case 4:
		return layout.Margin{Top: vals[0], Right: vals[1], Bottom: vals[2], Left: vals[3]}, nil
	default:
		return layout.Margin{}, fmt.Errorf("需要 1、2 或 4 个值，实际 %d 个", len(vals))
	}
}

func parsePositive(s string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSuffix(s, "px"), 64)
	if err != nil {
		return 0, fmt.Errorf("无效的数字 %q", s)
	}
	if f <= 0 {
		return 0, fmt.Errorf("必须为正数: %g", f)
	}
	return f, nil
}
