package host

import (
	"fmt"
	"sort"

	"github.com/ByLCY/flowlayout/layout"
)

// Item 是数据源中的一个条目。
type Item struct {
	Size  layout.Size `json:"size"`
	Label string      `json:"label,omitempty"`
	Color string      `json:"color,omitempty"`
}

// View 是对象池中可复用的条目实例，对应引擎中的 layout.Handle。
type View struct {
	Serial    int
	Index     int
	Label     string
	Rect      layout.Rect
	Placement layout.Placement
}

// Stats 统计对象池的使用情况。
type Stats struct {
	Created  int `json:"created"`
	Reused   int `json:"reused"`
	Recycled int `json:"recycled"`
}

var _ layout.Host = (*Memory)(nil)

// Memory 是一个内存宿主：持有条目列表与视口，并以空闲列表复用 View。
// 与引擎一样，它不是并发安全的。
type Memory struct {
	items    []Item
	removed  map[int]bool
	viewport layout.Viewport

	free     []*View
	attached map[*View]struct{}
	serial   int
	stats    Stats
}

// NewMemory 使用给定视口与条目创建宿主。
func NewMemory(vp layout.Viewport, items []Item) *Memory {
	return &Memory{
		items:    append([]Item(nil), items...),
		removed:  map[int]bool{},
		viewport: vp,
		attached: map[*View]struct{}{},
	}
}

func (m *Memory) ItemCount() int { return len(m.items) }

func (m *Memory) Measure(index int) layout.Size { return m.items[index].Size }

func (m *Memory) Viewport() layout.Viewport { return m.viewport }

func (m *Memory) IsRemoved(index int) bool { return m.removed[index] }

// SetViewport 更新视口尺寸，下一次布局时生效。
func (m *Memory) SetViewport(vp layout.Viewport) { m.viewport = vp }

// Stats 返回对象池统计。
func (m *Memory) Stats() Stats { return m.stats }

// Item 返回索引处的条目。
func (m *Memory) Item(index int) Item { return m.items[index] }

// Realize 从空闲列表取出或新建一个 View。
func (m *Memory) Realize(index int) layout.Handle {
	var v *View
	if n := len(m.free); n > 0 {
		v = m.free[n-1]
		m.free = m.free[:n-1]
		m.stats.Reused++
	} else {
		m.serial++
		v = &View{Serial: m.serial}
		m.stats.Created++
	}
	v.Index = index
	v.Label = m.items[index].Label
	m.attached[v] = struct{}{}
	return v
}

// Recycle 将 View 放回空闲列表。同一个 View 被回收两次属于调用方错误。
func (m *Memory) Recycle(h layout.Handle) {
	v := h.(*View)
	if _, ok := m.attached[v]; !ok {
		panic(fmt.Sprintf("host: view %d (index %d) recycled twice", v.Serial, v.Index))
	}
	delete(m.attached, v)
	v.Rect = layout.Rect{}
	m.free = append(m.free, v)
	m.stats.Recycled++
}

// Place 记录引擎给出的最终位置。
func (m *Memory) Place(h layout.Handle, r layout.Rect, p layout.Placement) {
	v := h.(*View)
	v.Rect = r
	v.Placement = p
}

// Attached 按数据索引顺序返回当前挂载的 View。
func (m *Memory) Attached() []*View {
	out := make([]*View, 0, len(m.attached))
	for v := range m.attached {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Index < out[j].Index })
	return out
}

// MarkRemoved 标记 [index, index+count) 为待移除；结构变化布局结束前它们仍在数据源中。
func (m *Memory) MarkRemoved(index, count int) error {
	if index < 0 || count <= 0 || index+count > len(m.items) {
		return fmt.Errorf("移除范围 %d+%d 超出条目数 %d", index, count, len(m.items))
	}
	for i := index; i < index+count; i++ {
		m.removed[i] = true
	}
	return nil
}

// ApplyRemovals 真正删除已标记的条目，返回删除的数量。
func (m *Memory) ApplyRemovals() int {
	if len(m.removed) == 0 {
		return 0
	}
	kept := make([]Item, 0, len(m.items)-len(m.removed))
	for i, it := range m.items {
		if !m.removed[i] {
			kept = append(kept, it)
		}
	}
	n := len(m.items) - len(kept)
	m.items = kept
	m.removed = map[int]bool{}
	return n
}

// Insert 在 index 处插入条目。
func (m *Memory) Insert(index int, items ...Item) error {
	if index < 0 || index > len(m.items) {
		return fmt.Errorf("插入位置 %d 超出条目数 %d", index, len(m.items))
	}
	m.items = append(m.items[:index], append(append([]Item(nil), items...), m.items[index:]...)...)
	return nil
}

