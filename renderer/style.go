package renderer

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/ByLCY/flowlayout/config"
	"github.com/ByLCY/flowlayout/layout"
)

// Style 是渲染器共用的绘制参数，颜色已解析。
type Style struct {
	Scale   float64
	Margin  float64
	Columns int

	Background   color.RGBA
	Viewport     color.RGBA
	Item         color.RGBA
	Disappearing color.RGBA
	Target       color.RGBA
	Stroke       color.RGBA
}

// StyleFromConfig 解析 [render] 配置。
func StyleFromConfig(c config.RenderConfig) (Style, error) {
	s := Style{Scale: c.Scale, Margin: c.Margin, Columns: c.Columns}
	for _, p := range []struct {
		name string
		src  string
		dst  *color.RGBA
	}{
		{"background", c.Palette.Background, &s.Background},
		{"viewport", c.Palette.Viewport, &s.Viewport},
		{"item", c.Palette.Item, &s.Item},
		{"disappearing", c.Palette.Disappearing, &s.Disappearing},
		{"target", c.Palette.Target, &s.Target},
		{"stroke", c.Palette.Stroke, &s.Stroke},
	} {
		col, err := ParseHexColor(p.src)
		if err != nil {
			return Style{}, fmt.Errorf("palette.%s: %w", p.name, err)
		}
		*p.dst = col
	}
	if s.Scale <= 0 {
		s.Scale = 1
	}
	if s.Columns <= 0 {
		s.Columns = 1
	}
	return s, nil
}

// DefaultStyle 对应 config.Default() 的 [render] 段。
func DefaultStyle() Style {
	s, err := StyleFromConfig(config.Default().Render)
	if err != nil {
		panic(err)
	}
	return s
}

// ItemFill 返回条目的填充色：消失中的条目用 Disappearing，条目自带颜色优先于 Item。
func (s Style) ItemFill(box layout.ItemBox) color.RGBA {
	if box.Disappearing {
		return s.Disappearing
	}
	if box.Color != "" {
		if c, err := ParseHexColor(box.Color); err == nil {
			return c
		}
	}
	return s.Item
}

// PageSize 是一帧在输出中的尺寸：视口加四周留白。
func (s Style) PageSize(f layout.Frame) (w, h float64) {
	return f.Viewport.Width*s.Scale + 2*s.Margin, f.Viewport.Height*s.Scale + 2*s.Margin
}

// Project 将视口坐标映射到输出坐标（左上角为原点）。
func (s Style) Project(r layout.Rect) (x, y, w, h float64) {
	return s.Margin + r.Left*s.Scale, s.Margin + r.Top*s.Scale, r.Width() * s.Scale, r.Height() * s.Scale
}

// ParseHexColor 解析 #RGB、#RRGGBB 与 #RRGGBBAA。
func ParseHexColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	if len(hex) != 8 {
		return color.RGBA{}, fmt.Errorf("无效的颜色 %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("无效的颜色 %q", s)
	}
	return color.RGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}
