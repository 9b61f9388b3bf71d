package layout

import "iter"

// Line membership is never stored. It is derived from slot rectangles on
// every query; a scan never leaves the line it starts in.

// isLineStart reports whether window position i begins a line.
func (e *Engine) isLineStart(i int) bool {
	if i == 0 || e.laidOut.singleItemPerLine() {
		return true
	}
	return geometry{content: e.visible, opts: e.laidOut}.nearEdge(e.slots[i].rect)
}

// isLineEnd reports whether window position i ends a line.
func (e *Engine) isLineEnd(i int) bool {
	if e.laidOut.singleItemPerLine() || i == len(e.slots)-1 {
		return true
	}
	return e.isLineStart(i + 1)
}

// lineBounds returns the first and last window positions of i's line.
func (e *Engine) lineBounds(i int) (start, end int) {
	start, end = i, i
	for !e.isLineStart(start) {
		start--
	}
	for !e.isLineEnd(end) {
		end++
	}
	return start, end
}

// tallestInLine returns the window position of the tallest item on i's line.
// The scan runs leftwards from i first; on ties the first item found wins.
func (e *Engine) tallestInLine(i int) int {
	start, end := e.lineBounds(i)
	best := i
	for j := i - 1; j >= start; j-- {
		if e.slots[j].size.Height > e.slots[best].size.Height {
			best = j
		}
	}
	for j := i + 1; j <= end; j++ {
		if e.slots[j].size.Height > e.slots[best].size.Height {
			best = j
		}
	}
	return best
}

// itemsOfLine yields the window positions on i's line in data order.
func (e *Engine) itemsOfLine(i int) iter.Seq[int] {
	return func(yield func(int) bool) {
		start, end := e.lineBounds(i)
		for j := start; j <= end; j++ {
			if !yield(j) {
				return
			}
		}
	}
}

// lineRect is the vertical band of i's line, governed by its tallest item.
func (e *Engine) lineRect(i int) Rect {
	r := e.slots[e.tallestInLine(i)].rect
	return Rect{Left: e.visible.Left, Top: r.Top, Right: e.visible.Right, Bottom: r.Bottom}
}

func (e *Engine) lineVisible(i int) bool {
	return e.lineRect(i).OverlapsRows(e.visible)
}

// Lines returns the data indices of the realized window grouped by line.
func (e *Engine) Lines() [][]int {
	var lines [][]int
	for i := 0; i < len(e.slots); {
		var line []int
		last := i
		for j := range e.itemsOfLine(i) {
			line = append(line, e.slots[j].index)
			last = j
		}
		lines = append(lines, line)
		i = last + 1
	}
	return lines
}
