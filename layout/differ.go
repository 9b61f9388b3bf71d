package layout

// diffStep is one item of a structural walk: its old rectangle and, for a
// surviving item, the rectangle it moves to once the change is applied.
type diffStep struct {
	index   int
	size    Size
	removed bool
	old     Rect
	target  Rect
}

// diffWalk runs the two projections side by side from index start:
//
//   - old: every item, removed ones included, under the current options;
//   - new: surviving items only, current alignment with the pending cap.
//
// visit is called for each item until one falls outside the visible
// rectangle; that item is not visited.
func (e *Engine) diffWalk(m Measurer, start int, removed func(int) bool, visit func(diffStep)) {
	oldGeo := geometry{content: e.visible, opts: e.current}
	newGeo := geometry{content: e.visible, opts: Options{
		Alignment:    e.current.Alignment,
		ItemsPerLine: e.pending.ItemsPerLine,
	}}
	origin := oldGeo.startPoint().Y
	oldCur := oldGeo.startCursor(origin)
	newCur := newGeo.startCursor(origin)

	for i := start; i < m.ItemCount(); i++ {
		st := diffStep{index: i, size: m.Measure(i), removed: removed(i)}
		oldCur, st.old, _ = oldGeo.step(oldCur, st.size)
		if st.removed {
			if !st.old.OverlapsRows(e.visible) {
				return
			}
			visit(st)
			continue
		}
		newCur, st.target, _ = newGeo.step(newCur, st.size)
		if !st.target.OverlapsRows(e.visible) {
			return
		}
		visit(st)
	}
}

// layoutStructural handles the pass that precedes an insert/remove
// animation. Items keep their old position on screen; the new projection
// only decides where to stop, so the trailing edge never gains an item the
// change would push out of view again.
func (e *Engine) layoutStructural() {
	start := e.firstIndex
	if len(e.slots) > 0 {
		start = e.slots[0].index
	}
	e.recycleAll()
	e.offset = 0
	e.laidOut = e.current

	e.diffWalk(e.host, start, e.host.IsRemoved, func(st diffStep) {
		p := Placed
		if st.removed {
			p = PlacedDisappearing
		}
		s := e.realize(st.index, st.size, st.old, p)
		if !st.removed {
			s.target, s.hasTarget = st.target, true
		}
		e.slots = append(e.slots, s)
	})

	if len(e.slots) > 0 {
		e.firstIndex = e.slots[0].index
	}
	e.current = e.pending
}
