package layout

// OffsetToIndex returns the ScrollBy delta that brings the line holding
// target flush with the top of the visible rectangle. Targets outside the
// window are located with virtual walks; nothing is realized.
func (e *Engine) OffsetToIndex(target int) float64 {
	e.checkIndex(target)
	if len(e.slots) == 0 {
		return 0
	}
	e.beginPass()
	e.geo.opts = e.laidOut

	first := e.slots[0].index
	last := e.slots[len(e.slots)-1].index
	switch {
	case target == first:
		return e.slots[0].rect.Top - e.visible.Top
	case target > first && target <= last:
		return e.slots[target-first].rect.Top - e.visible.Top
	case target > last:
		return e.distanceBelow(e.host, target)
	default:
		return e.distanceAbove(e.host, target)
	}
}

// distanceBelow walks forward from the item after the window, starting at
// the bottom of the last realized line.
func (e *Engine) distanceBelow(m Measurer, target int) float64 {
	last := len(e.slots) - 1
	c := e.geo.startCursor(e.slots[e.tallestInLine(last)].rect.Bottom)
	var r Rect
	for i := e.slots[last].index + 1; i <= target; i++ {
		c, r, _ = e.geo.step(c, m.Measure(i))
	}
	return r.Top - e.visible.Top
}

// distanceAbove walks from index 0 up to the window. The window's first line
// is laid out directly below the walk's last line, the same way
// growLeadingLine stacks them, even when ScrollToIndex anchored the window
// in the middle of a line.
func (e *Engine) distanceAbove(m Measurer, target int) float64 {
	c := e.geo.startCursor(0)
	var targetTop float64
	for i := 0; i < e.slots[0].index; i++ {
		var r Rect
		c, r, _ = e.geo.step(c, m.Measure(i))
		if i == target {
			targetTop = r.Top
		}
	}
	windowTop := c.Y + c.LineHeight
	return (targetTop - windowTop) + (e.slots[0].rect.Top - e.visible.Top)
}
