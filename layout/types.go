package layout

// 该文件定义几何值类型与快照结构，供引擎、渲染器与调试 JSON 共用。

// Point 表示视口坐标系中的一个点。
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Size 是宿主测量得到的条目尺寸，在一次布局过程中保持不变。
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Rect 以视口坐标记录左/上/右/下四条边。
type Rect struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
}

func (r Rect) Width() float64  { return r.Right - r.Left }
func (r Rect) Height() float64 { return r.Bottom - r.Top }

// OverlapsRows reports whether r's vertical extent overlaps o's. Items are
// always laid out across the content box, so this is the visibility test of
// a walk. A zero-height r counts when its edge lies inside o.
func (r Rect) OverlapsRows(o Rect) bool {
	if r.Top == r.Bottom {
		return r.Top >= o.Top && r.Top < o.Bottom
	}
	return r.Top < o.Bottom && o.Top < r.Bottom
}

// Offset returns r moved vertically by dy.
func (r Rect) Offset(dy float64) Rect {
	r.Top += dy
	r.Bottom += dy
	return r
}

// Margin 记录视口内边距。
type Margin struct {
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
}

// Viewport 描述可滚动视口的尺寸与内边距，每次布局开始时向宿主重新查询。
type Viewport struct {
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
	Padding Margin  `json:"padding"`
}

// VisibleRect 返回扣除内边距后的内容区域（可见矩形）。
func (v Viewport) VisibleRect() Rect {
	return Rect{
		Left:   v.Padding.Left,
		Top:    v.Padding.Top,
		Right:  v.Width - v.Padding.Right,
		Bottom: v.Height - v.Padding.Bottom,
	}
}

// Placement tags a placed item. Disappearing items are still drawn at their
// old position while the host animates them out.
type Placement int

const (
	Placed Placement = iota
	PlacedDisappearing
)

func (p Placement) String() string {
	if p == PlacedDisappearing {
		return "disappearing"
	}
	return "placed"
}

// Handle 是宿主对象池中的条目实例，引擎只持有引用，不关心其内容。
type Handle any

// Result 保存一次场景运行产生的全部帧。
type Result struct {
	Meta   Meta    `json:"meta"`
	Frames []Frame `json:"frames"`
}

// Meta 记录场景元信息。
type Meta struct {
	Title     string `json:"title"`
	ItemCount int    `json:"itemCount"`
}

// Frame 是某一时刻窗口状态的快照。
type Frame struct {
	Label      string    `json:"label"`
	Viewport   Viewport  `json:"viewport"`
	Visible    Rect      `json:"visible"`
	FirstIndex int       `json:"firstIndex"`
	Offset     float64   `json:"offset"`
	Options    Options   `json:"options"`
	Pending    Options   `json:"pending"`
	Items      []ItemBox `json:"items"`
	Lines      [][]int   `json:"lines,omitempty"`     // 按行分组的条目下标
	Requested  float64   `json:"requested,omitempty"` // 滚动类步骤请求的位移
	Consumed   float64   `json:"consumed,omitempty"`  // 实际消耗的位移
	Distance   *float64  `json:"distance,omitempty"`  // 到目标条目的距离
}

// ItemBox 表示窗口中一个已实例化条目的位置。
type ItemBox struct {
	Index        int    `json:"index"`
	Rect         Rect   `json:"rect"`
	Disappearing bool   `json:"disappearing,omitempty"`
	Target       *Rect  `json:"target,omitempty"` // 结构变化后将移动到的位置
	Label        string `json:"label,omitempty"`
	Color        string `json:"color,omitempty"`
}
