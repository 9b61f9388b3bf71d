package renderer

import (
	"image/color"
	"testing"

	"github.com/ByLCY/flowlayout/config"
	"github.com/ByLCY/flowlayout/layout"
)

func TestParseHexColor(t *testing.T) {
	cases := map[string]struct {
		in   string
		want color.RGBA
		ok   bool
	}{
		"short": {in: "#fa0", want: color.RGBA{0xff, 0xaa, 0x00, 0xff}, ok: true},
		"long":  {in: "#0F62FE", want: color.RGBA{0x0f, 0x62, 0xfe, 0xff}, ok: true},
		"alpha": {in: "#10203040", want: color.RGBA{0x10, 0x20, 0x30, 0x40}, ok: true},
		"bad":   {in: "#12345", ok: false},
		"hex":   {in: "#zzzzzz", ok: false},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			got, err := ParseHexColor(tc.in)
			if (err == nil) != tc.ok {
				t.Fatalf("ParseHexColor(%q) err=%v", tc.in, err)
			}
			if tc.ok && got != tc.want {
				t.Fatalf("ParseHexColor(%q)=%v want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestStyleItemFillAndProject(t *testing.T) {
	s := DefaultStyle()
	if got := s.ItemFill(layout.ItemBox{Disappearing: true, Color: "#000"}); got != s.Disappearing {
		t.Fatalf("disappearing items should use the disappearing colour")
	}
	if got := s.ItemFill(layout.ItemBox{Color: "#000000"}); got != (color.RGBA{A: 0xff}) {
		t.Fatalf("item colour should override the palette, got %v", got)
	}
	if got := s.ItemFill(layout.ItemBox{Color: "nope"}); got != s.Item {
		t.Fatalf("invalid item colour should fall back to the palette")
	}

	s.Scale, s.Margin = 2, 5
	x, y, w, h := s.Project(layout.Rect{Left: 10, Top: 20, Right: 30, Bottom: 25})
	if x != 25 || y != 45 || w != 40 || h != 10 {
		t.Fatalf("unexpected projection: %g %g %g %g", x, y, w, h)
	}
	pw, ph := s.PageSize(layout.Frame{Viewport: layout.Viewport{Width: 100, Height: 50}})
	if pw != 210 || ph != 110 {
		t.Fatalf("unexpected page size: %gx%g", pw, ph)
	}
}

func TestStyleFromConfigRejectsBadPalette(t *testing.T) {
	cfg := config.Default().Render
	cfg.Palette.Target = "green"
	if _, err := StyleFromConfig(cfg); err == nil {
		t.Fatalf("expected palette error")
	}
}
