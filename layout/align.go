package layout

import "math"

// This file holds the alignment policy: pure functions that decide where the
// next item goes and whether it opens a new line.

// geometry binds the content box of the current pass to one options snapshot.
type geometry struct {
	content Rect
	opts    Options
}

// cursor is the walk state between two placements. Count is the number of
// items already placed on the current line.
type cursor struct {
	X, Y       float64
	LineHeight float64
	Count      int
}

// startPoint is the origin of the first item of the first line.
func (g geometry) startPoint() Point {
	if g.opts.Alignment == AlignEnd {
		return Point{X: g.content.Right, Y: g.content.Top}
	}
	return Point{X: g.content.Left, Y: g.content.Top}
}

// startCursor returns a cursor sitting at the start of an empty line whose top is y.
func (g geometry) startCursor(y float64) cursor {
	return cursor{X: g.startPoint().X, Y: y}
}

// shouldStartNewline applies the width rule and the items-per-line cap.
// An item on an empty line stays there even if it is wider than the content box.
func (g geometry) shouldStartNewline(c cursor, width float64) bool {
	if c.Count == 0 {
		return false
	}
	if g.opts.capReached(c.Count) {
		return true
	}
	if g.opts.Alignment == AlignEnd {
		return c.X-width < g.content.Left
	}
	return c.X+width > g.content.Right
}

// placeItem returns the rectangle of an item of size sz placed at c.
func (g geometry) placeItem(c cursor, sz Size) (Rect, bool) {
	newline := g.shouldStartNewline(c, sz.Width)
	x, top := c.X, c.Y
	if newline {
		x = g.startPoint().X
		top = c.Y + c.LineHeight
	}
	if g.opts.Alignment == AlignEnd {
		return Rect{Left: x - sz.Width, Top: top, Right: x, Bottom: top + sz.Height}, newline
	}
	return Rect{Left: x, Top: top, Right: x + sz.Width, Bottom: top + sz.Height}, newline
}

// advance moves the cursor past r on the same line.
func (g geometry) advance(x float64, r Rect) float64 {
	if g.opts.Alignment == AlignEnd {
		return x - r.Width()
	}
	return x + r.Width()
}

// lineOrigin is the cursor position right after the first item r of a new line.
func (g geometry) lineOrigin(r Rect) Point {
	return Point{X: g.advance(g.startPoint().X, r), Y: r.Top}
}

// step places sz at c and returns the cursor for the next item.
func (g geometry) step(c cursor, sz Size) (cursor, Rect, bool) {
	r, newline := g.placeItem(c, sz)
	if newline {
		p := g.lineOrigin(r)
		return cursor{X: p.X, Y: p.Y, LineHeight: r.Height(), Count: 1}, r, true
	}
	return cursor{
		X:          g.advance(c.X, r),
		Y:          c.Y,
		LineHeight: math.Max(c.LineHeight, r.Height()),
		Count:      c.Count + 1,
	}, r, false
}

// nearEdge reports whether r touches the edge lines start from.
func (g geometry) nearEdge(r Rect) bool {
	if g.opts.Alignment == AlignEnd {
		return r.Right >= g.content.Right
	}
	return r.Left <= g.content.Left
}
