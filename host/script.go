package host

import (
	"fmt"

	"github.com/dop251/goja"

	"github.com/ByLCY/flowlayout/layout"
)

var _ layout.Measurer = (*ScriptMeasurer)(nil)

// ScriptMeasurer 用一段 JavaScript 表达式计算条目尺寸。表达式中可以使用
// 当前索引 i，需返回 {width, height} 对象或 [width, height] 数组，例如：
//
//	({width: 40 + (i % 4) * 30, height: 30})
//
// 结果按索引缓存，保证同一索引多次测量得到同一尺寸。
type ScriptMeasurer struct {
	vm    *goja.Runtime
	fn    goja.Callable
	count int
	cache map[int]layout.Size
}

// NewScriptMeasurer 编译表达式，count 为条目总数。
func NewScriptMeasurer(src string, count int) (*ScriptMeasurer, error) {
	if count < 0 {
		return nil, fmt.Errorf("条目数不能为负: %d", count)
	}
	vm := goja.New()
	v, err := vm.RunString("(function(i) { return (" + src + "); })")
	if err != nil {
		return nil, fmt.Errorf("编译测量脚本失败: %w", err)
	}
	fn, ok := goja.AssertFunction(v)
	if !ok {
		return nil, fmt.Errorf("测量脚本不是函数")
	}
	return &ScriptMeasurer{vm: vm, fn: fn, count: count, cache: map[int]layout.Size{}}, nil
}

func (s *ScriptMeasurer) ItemCount() int { return s.count }

// Measure 实现 layout.Measurer；脚本出错属于配置错误，直接 panic。
// 需要错误返回值时使用 Eval。
func (s *ScriptMeasurer) Measure(index int) layout.Size {
	sz, err := s.Eval(index)
	if err != nil {
		panic(err)
	}
	return sz
}

// Eval 计算索引处的尺寸。
func (s *ScriptMeasurer) Eval(index int) (layout.Size, error) {
	if sz, ok := s.cache[index]; ok {
		return sz, nil
	}
	res, err := s.fn(goja.Undefined(), s.vm.ToValue(index))
	if err != nil {
		return layout.Size{}, fmt.Errorf("测量脚本在索引 %d 出错: %w", index, err)
	}
	sz, err := sizeFromValue(s.vm, res)
	if err != nil {
		return layout.Size{}, fmt.Errorf("索引 %d: %w", index, err)
	}
	s.cache[index] = sz
	return sz, nil
}

// Items 预先计算全部条目，便于交给 Memory 宿主。
func (s *ScriptMeasurer) Items() ([]Item, error) {
	items := make([]Item, s.count)
	for i := range items {
		sz, err := s.Eval(i)
		if err != nil {
			return nil, err
		}
		items[i] = Item{Size: sz, Label: fmt.Sprintf("#%d", i)}
	}
	return items, nil
}

func sizeFromValue(vm *goja.Runtime, v goja.Value) (layout.Size, error) {
	if v == nil || goja.IsUndefined(v) || goja.IsNull(v) {
		return layout.Size{}, fmt.Errorf("测量脚本没有返回值")
	}
	switch exp := v.Export().(type) {
	case []any:
		if len(exp) != 2 {
			return layout.Size{}, fmt.Errorf("数组结果需要两个元素，实际 %d", len(exp))
		}
		return checkSize(toFloat(exp[0]), toFloat(exp[1]))
	case map[string]any:
		obj := v.ToObject(vm)
		return checkSize(obj.Get("width").ToFloat(), obj.Get("height").ToFloat())
	default:
		return layout.Size{}, fmt.Errorf("不支持的返回类型 %T", exp)
	}
}

func toFloat(v any) float64 {
	switch n := v.(type) {
	case int64:
		return float64(n)
	case float64:
		return n
	case int:
		return float64(n)
	default:
		return -1
	}
}

func checkSize(w, h float64) (layout.Size, error) {
	if w < 0 || h < 0 || w != w || h != h {
		return layout.Size{}, fmt.Errorf("尺寸必须为非负数: %gx%g", w, h)
	}
	return layout.Size{Width: w, Height: h}, nil
}
