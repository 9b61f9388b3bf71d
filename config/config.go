package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/ByLCY/flowlayout/layout"
)

// DefaultFile is looked up in the working directory when no -config flag is given.
const DefaultFile = "flowlayout.toml"

// Config represents flowlayout.toml.
type Config struct {
	Viewport ViewportConfig `toml:"viewport"`
	Layout   LayoutConfig   `toml:"layout"`
	Render   RenderConfig   `toml:"render"`
	TUI      TUIConfig      `toml:"tui"`
}

type ViewportConfig struct {
	Width   float64       `toml:"width"`
	Height  float64       `toml:"height"`
	Padding PaddingConfig `toml:"padding"`
}

type PaddingConfig struct {
	Top    float64 `toml:"top"`
	Right  float64 `toml:"right"`
	Bottom float64 `toml:"bottom"`
	Left   float64 `toml:"left"`
}

type LayoutConfig struct {
	Align   layout.Alignment `toml:"align"`
	PerLine int              `toml:"per_line"`
}

// RenderConfig 控制 PDF/PNG 输出。颜色均为 #RRGGBB 或 #RRGGBBAA。
type RenderConfig struct {
	// 每个逻辑单位对应的输出点数
	Scale float64 `toml:"scale"`
	// 帧四周留白
	Margin float64 `toml:"margin"`
	// PNG 联系表每行的帧数
	Columns int     `toml:"columns"`
	Palette Palette `toml:"palette"`
}

type Palette struct {
	Background   string `toml:"background"`
	Viewport     string `toml:"viewport"`
	Item         string `toml:"item"`
	Disappearing string `toml:"disappearing"`
	Target       string `toml:"target"`
	Stroke       string `toml:"stroke"`
}

type TUIConfig struct {
	// 一个终端字符格代表的逻辑宽高
	CellWidth  float64 `toml:"cell_width"`
	CellHeight float64 `toml:"cell_height"`
	// 方向键一次滚动的距离；翻页使用可见高度
	ScrollStep   float64 `toml:"scroll_step"`
	SmoothFrames int     `toml:"smooth_frames"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Viewport: ViewportConfig{Width: 320, Height: 240},
		Layout:   LayoutConfig{Align: layout.AlignStart, PerLine: layout.ItemsPerLineNoLimit},
		Render: RenderConfig{
			Scale:   1,
			Margin:  24,
			Columns: 4,
			Palette: Palette{
				Background:   "#FFFFFF",
				Viewport:     "#0F62FE",
				Item:         "#A6C8FF",
				Disappearing: "#FA4D56",
				Target:       "#24A148",
				Stroke:       "#161616",
			},
		},
		TUI: TUIConfig{CellWidth: 10, CellHeight: 20, ScrollStep: 20, SmoothFrames: 8},
	}
}

// Load reads path on top of the defaults. An empty path falls back to
// DefaultFile and silently returns the defaults when that file is absent;
// an explicit path must exist.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		if _, err := os.Stat(DefaultFile); os.IsNotExist(err) {
			return cfg, nil
		}
		path = DefaultFile
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("读取配置 %s 失败: %w", path, err)
	}
	return Parse(data, path)
}

// Parse decodes TOML content on top of the defaults. name is only used in errors.
func Parse(data []byte, name string) (Config, error) {
	cfg := Default()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("解析配置 %s 失败: %w", name, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("配置 %s 无效: %w", name, err)
	}
	return cfg, nil
}

// Save writes cfg as TOML.
func Save(cfg Config, path string) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("序列化配置失败: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("写入配置 %s 失败: %w", path, err)
	}
	return nil
}

func (c Config) Validate() error {
	switch {
	case c.Viewport.Width <= 0 || c.Viewport.Height <= 0:
		return fmt.Errorf("viewport 宽高必须为正数: %gx%g", c.Viewport.Width, c.Viewport.Height)
	case c.Layout.PerLine < 0:
		return fmt.Errorf("per_line 不能为负: %d", c.Layout.PerLine)
	case c.Render.Scale <= 0:
		return fmt.Errorf("render.scale 必须为正数: %g", c.Render.Scale)
	case c.Render.Columns <= 0:
		return fmt.Errorf("render.columns 必须为正数: %d", c.Render.Columns)
	case c.TUI.CellWidth <= 0 || c.TUI.CellHeight <= 0:
		return fmt.Errorf("tui 字符格尺寸必须为正数")
	case c.TUI.ScrollStep <= 0 || c.TUI.SmoothFrames <= 0:
		return fmt.Errorf("tui.scroll_step 与 tui.smooth_frames 必须为正数")
	}
	p := c.Viewport.Padding
	if p.Left+p.Right >= c.Viewport.Width || p.Top+p.Bottom >= c.Viewport.Height {
		return fmt.Errorf("padding 超出 viewport")
	}
	return nil
}

// LayoutViewport converts the [viewport] table.
func (c Config) LayoutViewport() layout.Viewport {
	p := c.Viewport.Padding
	return layout.Viewport{
		Width:   c.Viewport.Width,
		Height:  c.Viewport.Height,
		Padding: layout.Margin{Top: p.Top, Right: p.Right, Bottom: p.Bottom, Left: p.Left},
	}
}

// LayoutOptions converts the [layout] table.
func (c Config) LayoutOptions() layout.Options {
	return layout.Options{Alignment: c.Layout.Align, ItemsPerLine: c.Layout.PerLine}
}
