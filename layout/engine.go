package layout

import "fmt"

// Measurer answers size queries. Virtual walks only ever see a Measurer, so
// they cannot realize or recycle anything.
type Measurer interface {
	ItemCount() int
	// Measure must return the same size for the same index within a pass.
	Measure(index int) Size
}

// Host is the collaborator that owns data, measurement and the view pool.
type Host interface {
	Measurer
	Viewport() Viewport
	// IsRemoved is only consulted during a structural-change pass.
	IsRemoved(index int) bool
	Realize(index int) Handle
	Recycle(h Handle)
	Place(h Handle, r Rect, p Placement)
}

// slot is one realized item of the window.
type slot struct {
	index     int
	handle    Handle
	size      Size
	rect      Rect
	placement Placement
	// target is set by a structural pass for surviving items: where the
	// item lands once the change is applied.
	target    Rect
	hasTarget bool
}

// Engine arranges items into flowing lines and keeps only the visible window
// realized. It is not safe for concurrent use.
type Engine struct {
	host Host

	current Options
	pending Options

	slots      []slot
	firstIndex int
	offset     float64
	// laidOut is the options snapshot the realized slots were placed with.
	laidOut Options

	// per-pass viewport state, refreshed by beginPass
	visible Rect
	geo     geometry
}

// New creates an engine with default options (start aligned, no per-line cap).
func New(host Host) *Engine {
	if host == nil {
		panic("layout: host is nil")
	}
	return &Engine{host: host}
}

// SetAlignment schedules an alignment change for the next structural-change pass.
func (e *Engine) SetAlignment(a Alignment) { e.pending.Alignment = a }

// SetItemsPerLine schedules a per-line cap; 0 removes the cap, 1 forces one item per line.
func (e *Engine) SetItemsPerLine(n int) {
	if n < 0 {
		panic(fmt.Sprintf("layout: negative items per line %d", n))
	}
	e.pending.ItemsPerLine = n
}

// Options returns the options used for on-screen geometry and the pending set.
func (e *Engine) Options() (current, pending Options) { return e.current, e.pending }

// FirstIndex is the data index of the first realized item.
func (e *Engine) FirstIndex() int { return e.firstIndex }

// Len is the number of realized items.
func (e *Engine) Len() int { return len(e.slots) }

// Offset is the sum of all consumed scroll deltas since the last full layout.
func (e *Engine) Offset() float64 { return e.offset }

// Layout runs a layout pass. A structural pass diffs old and new geometry for
// removal animations; a normal pass re-lays the window from firstIndex.
func (e *Engine) Layout(structural bool) {
	e.beginPass()
	if structural {
		e.layoutStructural()
		return
	}
	e.layoutInitial()
}

// ScrollToIndex re-anchors the window so index starts the first line.
func (e *Engine) ScrollToIndex(index int) {
	e.checkIndex(index)
	e.firstIndex = index
	e.Layout(false)
}

// ItemsChanged commits pending options, as a whole-data-set change has no
// animation to keep in step with.
func (e *Engine) ItemsChanged() { e.current = e.pending }

// ItemsRemoved keeps firstIndex on the same data item after count items at
// index were removed from the data source.
func (e *Engine) ItemsRemoved(index, count int) {
	if index < 0 || count <= 0 {
		panic(fmt.Sprintf("layout: bad removal range %d+%d", index, count))
	}
	switch {
	case index+count <= e.firstIndex:
		e.firstIndex -= count
	case index < e.firstIndex:
		e.firstIndex = index
	}
}

// ItemsInserted shifts firstIndex past count items inserted before it.
func (e *Engine) ItemsInserted(index, count int) {
	if index < 0 || count <= 0 {
		panic(fmt.Sprintf("layout: bad insertion range %d+%d", index, count))
	}
	if index < e.firstIndex {
		e.firstIndex += count
	}
}

// Snapshot describes the realized window.
func (e *Engine) Snapshot() Frame {
	vp := e.host.Viewport()
	f := Frame{
		Viewport:   vp,
		Visible:    vp.VisibleRect(),
		FirstIndex: e.firstIndex,
		Offset:     e.offset,
		Options:    e.current,
		Pending:    e.pending,
		Items:      make([]ItemBox, 0, len(e.slots)),
	}
	for _, s := range e.slots {
		box := ItemBox{
			Index:        s.index,
			Rect:         s.rect,
			Disappearing: s.placement == PlacedDisappearing,
		}
		if s.hasTarget {
			t := s.target
			box.Target = &t
		}
		f.Items = append(f.Items, box)
	}
	f.Lines = e.Lines()
	return f
}

func (e *Engine) beginPass() {
	e.visible = e.host.Viewport().VisibleRect()
	e.geo = geometry{content: e.visible, opts: e.current}
}

func (e *Engine) checkIndex(index int) {
	if index < 0 || index >= e.host.ItemCount() {
		panic(fmt.Sprintf("layout: index %d out of range [0,%d)", index, e.host.ItemCount()))
	}
}

// realize obtains a handle for index and places it.
func (e *Engine) realize(index int, sz Size, r Rect, p Placement) slot {
	h := e.host.Realize(index)
	e.host.Place(h, r, p)
	return slot{index: index, handle: h, size: sz, rect: r, placement: p}
}

// recycleAll returns every realized handle to the host pool.
func (e *Engine) recycleAll() {
	for i := range e.slots {
		e.host.Recycle(e.slots[i].handle)
		e.slots[i].handle = nil
	}
	e.slots = e.slots[:0]
}
