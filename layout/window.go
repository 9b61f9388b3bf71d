package layout

import "math"

// layoutInitial clears the window and walks forward from firstIndex until
// the next item would start outside the visible rectangle.
func (e *Engine) layoutInitial() {
	e.recycleAll()
	e.offset = 0
	e.laidOut = e.current
	count := e.host.ItemCount()
	if count == 0 {
		e.firstIndex = 0
		return
	}
	if e.firstIndex >= count {
		e.firstIndex = count - 1
	}
	c := e.geo.startCursor(e.geo.startPoint().Y)
	for i := e.firstIndex; i < count; i++ {
		sz := e.host.Measure(i)
		next, r, _ := e.geo.step(c, sz)
		if !r.OverlapsRows(e.visible) && len(e.slots) > 0 {
			break
		}
		e.slots = append(e.slots, e.realize(i, sz, r, Placed))
		c = next
	}
}

// ScrollBy moves the content by dy (positive: content moves up, revealing
// later items) and returns the delta actually consumed. The result is
// smaller in magnitude than dy when an end of the data source is reached.
func (e *Engine) ScrollBy(dy float64) float64 {
	if dy == 0 || e.host.ItemCount() == 0 || len(e.slots) == 0 {
		return 0
	}
	e.beginPass()
	e.geo.opts = e.laidOut
	if dy > 0 {
		return e.contentMoveUp(dy)
	}
	return e.contentMoveDown(dy)
}

func (e *Engine) contentMoveUp(dy float64) float64 {
	last := len(e.slots) - 1
	slack := e.slots[e.tallestInLine(last)].rect.Bottom - e.visible.Bottom
	if slack < dy {
		count := e.host.ItemCount()
		for e.slots[len(e.slots)-1].index < count-1 {
			if !e.growTrailingLine() {
				break
			}
			slack += e.slots[e.tallestInLine(len(e.slots)-1)].size.Height
			if slack >= dy {
				break
			}
		}
	}
	consumed := math.Max(math.Min(dy, slack), 0)
	e.offsetAll(-consumed)
	for len(e.slots) > 1 && !e.lineVisible(0) {
		e.recycleLine(0)
	}
	e.firstIndex = e.slots[0].index
	return consumed
}

func (e *Engine) contentMoveDown(dy float64) float64 {
	want := -dy
	slack := e.visible.Top - e.slots[e.tallestInLine(0)].rect.Top
	if slack < want {
		for e.slots[0].index > 0 {
			e.growLeadingLine()
			slack += e.slots[e.tallestInLine(0)].size.Height
			if slack >= want {
				break
			}
		}
	}
	consumed := math.Max(math.Min(want, slack), 0)
	e.offsetAll(consumed)
	for len(e.slots) > 1 && !e.lineVisible(len(e.slots)-1) {
		e.recycleLine(len(e.slots) - 1)
	}
	e.firstIndex = e.slots[0].index
	return -consumed
}

// offsetAll shifts every realized item by dy and re-places it.
func (e *Engine) offsetAll(dy float64) {
	if dy == 0 {
		return
	}
	e.offset -= dy
	for i := range e.slots {
		s := &e.slots[i]
		s.rect = s.rect.Offset(dy)
		e.host.Place(s.handle, s.rect, s.placement)
	}
}

// growTrailingLine realizes the line after the last realized item. It
// reports false when the data source is exhausted.
func (e *Engine) growTrailingLine() bool {
	next := e.slots[len(e.slots)-1].index + 1
	count := e.host.ItemCount()
	if next >= count {
		return false
	}
	y := e.slots[e.tallestInLine(len(e.slots)-1)].rect.Bottom
	c := e.geo.startCursor(y)
	for i := next; i < count; i++ {
		sz := e.host.Measure(i)
		nc, r, newline := e.geo.step(c, sz)
		if newline {
			break
		}
		e.slots = append(e.slots, e.realize(i, sz, r, Placed))
		c = nc
	}
	return true
}

// growLeadingLine realizes the line before the first realized item. Line
// membership is only known walking forward, so the walk restarts at index 0
// and keeps the last line it sees.
func (e *Engine) growLeadingLine() {
	end := e.slots[0].index
	if end == 0 {
		return
	}
	type pending struct {
		index int
		size  Size
		rect  Rect
	}
	var line []pending
	c := e.geo.startCursor(0)
	for i := 0; i < end; i++ {
		sz := e.host.Measure(i)
		nc, r, newline := e.geo.step(c, sz)
		if newline {
			line = line[:0]
		}
		line = append(line, pending{index: i, size: sz, rect: r})
		c = nc
	}
	bottom := e.slots[e.tallestInLine(0)].rect.Top
	top := bottom - c.LineHeight
	added := make([]slot, 0, len(line))
	for _, p := range line {
		r := p.rect.Offset(top - p.rect.Top)
		added = append(added, e.realize(p.index, p.size, r, Placed))
	}
	e.slots = append(added, e.slots...)
}

// recycleLine returns every item on i's line to the host.
func (e *Engine) recycleLine(i int) {
	start, end := e.lineBounds(i)
	for j := start; j <= end; j++ {
		e.host.Recycle(e.slots[j].handle)
	}
	e.slots = append(e.slots[:start], e.slots[end+1:]...)
}
