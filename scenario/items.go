package scenario

import (
	"fmt"
	"strconv"

	"github.com/ByLCY/flowlayout/binding"
	"github.com/ByLCY/flowlayout/dsl"
	"github.com/ByLCY/flowlayout/host"
	"github.com/ByLCY/flowlayout/layout"
)

// maxItems bounds repeat/script expansion.
const maxItems = 1 << 20

// itemBuilder expands the item sources of an items block.
type itemBuilder struct {
	viewport layout.Viewport
	scope    map[string]any
	out      []host.Item
}

func (b *itemBuilder) build(cmds []*dsl.Command) ([]host.Item, error) {
	if err := b.expand(cmds, b.scope); err != nil {
		return nil, err
	}
	return b.out, nil
}

func (b *itemBuilder) expand(cmds []*dsl.Command, scope map[string]any) error {
	for _, cmd := range cmds {
		var err error
		switch cmd.Name {
		case "item":
			err = b.item(cmd, scope)
		case "repeat":
			err = b.repeat(cmd, scope)
		case "from":
			err = b.from(cmd, scope)
		case "script":
			err = b.script(cmd)
		default:
			err = fmt.Errorf("未知的条目来源 %q", cmd.Name)
		}
		if err != nil {
			return fmt.Errorf("%s: %s: %w", cmd.Pos, cmd.Name, err)
		}
		if len(b.out) > maxItems {
			return fmt.Errorf("%s: 条目数超过上限 %d", cmd.Pos, maxItems)
		}
	}
	return nil
}

// item W H { label: ...; color: ... }
func (b *itemBuilder) item(cmd *dsl.Command, scope map[string]any) error {
	args := cmd.Values()
	if len(args) != 2 {
		return fmt.Errorf("需要宽高两个参数，实际 %d 个", len(args))
	}
	w, ok := layout.ParseRawLengthStr(args[0])
	if !ok {
		return fmt.Errorf("无效的宽度 %q", args[0])
	}
	h, ok := layout.ParseRawLengthStr(args[1])
	if !ok {
		return fmt.Errorf("无效的高度 %q", args[1])
	}
	it := host.Item{Size: layout.ResolveSize(w, h, b.viewport)}
	if err := b.decorate(&it, cmd.Block, scope); err != nil {
		return err
	}
	b.out = append(b.out, it)
	return nil
}

// repeat N { ... } binds `index` to the iteration number.
func (b *itemBuilder) repeat(cmd *dsl.Command, scope map[string]any) error {
	args := cmd.Values()
	if len(args) != 1 {
		return fmt.Errorf("需要一个次数参数")
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 0 || n > maxItems {
		return fmt.Errorf("无效的次数 %q", args[0])
	}
	if cmd.Block == nil {
		return fmt.Errorf("缺少条目块")
	}
	body := cmd.Block.Commands()
	for i := 0; i < n; i++ {
		if err := b.expand(body, binding.With(scope, "index", float64(i))); err != nil {
			return err
		}
	}
	return nil
}

// from PATH { width: ...; height: ...; label: ...; color: ... } yields one
// item per element of the array at PATH, bound as `item`.
func (b *itemBuilder) from(cmd *dsl.Command, scope map[string]any) error {
	path := ""
	for _, a := range cmd.Args {
		path += a.Raw
	}
	arr, ok := binding.Slice(scope, path)
	if !ok {
		return fmt.Errorf("路径 %q 不是数组", path)
	}
	assigns := cmd.Block.Assignments()
	for i, el := range arr {
		local := binding.With(binding.With(scope, "item", el), "index", float64(i))
		w, err := b.length(assigns["width"], local, "width")
		if err != nil {
			return fmt.Errorf("第 %d 个元素: %w", i, err)
		}
		h, err := b.length(assigns["height"], local, "height")
		if err != nil {
			return fmt.Errorf("第 %d 个元素: %w", i, err)
		}
		it := host.Item{Size: layout.ResolveSize(w, h, b.viewport)}
		if err := b.decorate(&it, cmd.Block, local); err != nil {
			return err
		}
		b.out = append(b.out, it)
	}
	return nil
}

// script "expr" count N
func (b *itemBuilder) script(cmd *dsl.Command) error {
	if len(cmd.Args) != 3 || cmd.Args[0].Type != "String" || cmd.Args[1].Value != "count" {
		return fmt.Errorf(`用法: script "表达式" count N`)
	}
	n, err := strconv.Atoi(cmd.Args[2].Value)
	if err != nil || n > maxItems {
		return fmt.Errorf("无效的数量 %q", cmd.Args[2].Value)
	}
	m, err := host.NewScriptMeasurer(cmd.Args[0].Value, n)
	if err != nil {
		return err
	}
	items, err := m.Items()
	if err != nil {
		return err
	}
	base := len(b.out)
	for i := range items {
		items[i].Label = "#" + strconv.Itoa(base+i)
	}
	b.out = append(b.out, items...)
	return nil
}

// length resolves a width/height value: a literal length or a data path.
func (b *itemBuilder) length(v *dsl.Value, scope map[string]any, key string) (layout.Length, error) {
	if v == nil {
		return layout.Length{}, fmt.Errorf("缺少 %s", key)
	}
	if v.Expr != nil {
		f, ok := binding.Number(scope, v.Expr.String())
		if !ok || f < 0 {
			return layout.Length{}, fmt.Errorf("%s: 路径 %q 不是非负数值", key, v.Expr.String())
		}
		return layout.Length{Value: f, Unit: layout.UnitPX}, nil
	}
	s, _ := v.Text()
	l, ok := layout.ParseRawLengthStr(s)
	if !ok {
		return layout.Length{}, fmt.Errorf("无效的 %s %q", key, s)
	}
	return l, nil
}

// decorate applies label/color from an item block.
func (b *itemBuilder) decorate(it *host.Item, block *dsl.Block, scope map[string]any) error {
	for key, v := range block.Assignments() {
		switch key {
		case "width", "height":
		case "label":
			it.Label = scalar(v, scope)
		case "color":
			it.Color = scalar(v, scope)
		default:
			return fmt.Errorf("未知的条目属性 %q", key)
		}
	}
	return nil
}

// scalar evaluates strings with interpolation and expressions as data paths;
// an unresolved path is kept verbatim.
func scalar(v *dsl.Value, scope map[string]any) string {
	if v.Expr != nil {
		path := v.Expr.String()
		if val, ok := binding.Resolve(scope, path); ok {
			return fmt.Sprint(val)
		}
		return path
	}
	s, _ := v.Text()
	if v.String != nil {
		return binding.Interpolate(s, scope)
	}
	return s
}
