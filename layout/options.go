package layout

import (
	"fmt"
	"strings"
)

// Alignment 决定条目从内容区域的哪一侧开始排列。
type Alignment int

const (
	AlignStart Alignment = iota // 左对齐，从左向右
	AlignEnd                    // 右对齐，从右向左镜像排列
)

func (a Alignment) String() string {
	if a == AlignEnd {
		return "end"
	}
	return "start"
}

// MarshalText lets Options serialize alignment by name in debug JSON.
func (a Alignment) MarshalText() ([]byte, error) { return []byte(a.String()), nil }

// UnmarshalText accepts the same names as ParseAlignment.
func (a *Alignment) UnmarshalText(b []byte) error {
	v, err := ParseAlignment(string(b))
	if err != nil {
		return err
	}
	*a = v
	return nil
}

// ParseAlignment 解析 start/left 与 end/right。
func ParseAlignment(s string) (Alignment, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "start", "left":
		return AlignStart, nil
	case "end", "right":
		return AlignEnd, nil
	default:
		return AlignStart, fmt.Errorf("未知的对齐方式 %q", s)
	}
}

// ItemsPerLineNoLimit 表示每行条目数只受可用宽度限制。
const ItemsPerLineNoLimit = 0

// Options 是一组不可变的布局选项。引擎同时持有 current 与 pending 两份，
// pending 只在下一次结构变化布局时提交。
type Options struct {
	Alignment    Alignment `json:"alignment"`
	ItemsPerLine int       `json:"itemsPerLine"`
}

// singleItemPerLine reports whether every item is forced onto its own line.
func (o Options) singleItemPerLine() bool { return o.ItemsPerLine == 1 }

// capReached reports whether a line already holding count items is full.
func (o Options) capReached(count int) bool {
	return o.ItemsPerLine > ItemsPerLineNoLimit && count >= o.ItemsPerLine
}
