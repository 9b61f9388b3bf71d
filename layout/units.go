package layout

import (
	"strconv"
	"strings"
)

// This file defines unit-aware lengths used when item sizes are written in
// scenario files: plain numbers and px are absolute, % is relative to the
// content width (or height) of the viewport.

// Unit is the unit a length was written with in a scenario file.
type Unit int

const (
	UnitNone    Unit = iota // bare numbers, treated as px
	UnitPX                  // pixels / cells
	UnitPercent             // percentage of the viewport content box
)

// Length preserves a numeric value with its unit.
type Length struct {
	Value float64 `json:"value"`
	Unit  Unit    `json:"unit"`
}

// Resolve converts the length to absolute units against the given extent.
func (l Length) Resolve(extent float64) float64 {
	if l.Unit == UnitPercent {
		return extent * l.Value / 100
	}
	return l.Value
}

// ParseRawLengthStr parses a DSL length string preserving its unit.
// The second result is false when the numeric part is malformed.
func ParseRawLengthStr(value string) (Length, bool) {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "" {
		return Length{}, false
	}
	unit := UnitNone
	for _, suf := range []struct {
		s string
		u Unit
	}{{"px", UnitPX}, {"%", UnitPercent}} {
		if strings.HasSuffix(v, suf.s) {
			unit = suf.u
			v = strings.TrimSpace(strings.TrimSuffix(v, suf.s))
			break
		}
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f < 0 {
		return Length{}, false
	}
	return Length{Value: f, Unit: unit}, true
}

// ResolveSize turns a width/height pair into an item Size for viewport vp.
func ResolveSize(w, h Length, vp Viewport) Size {
	content := vp.VisibleRect()
	return Size{Width: w.Resolve(content.Width()), Height: h.Resolve(content.Height())}
}
