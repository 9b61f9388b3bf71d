package scenario

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ByLCY/flowlayout/dsl"
	"github.com/ByLCY/flowlayout/host"
	"github.com/ByLCY/flowlayout/layout"
)

// StepKind names a scenario step.
type StepKind string

const (
	StepLayout     StepKind = "layout"     // normal pass
	StepStructural StepKind = "structural" // structural pass, commits pending options
	StepScroll     StepKind = "scroll"
	StepAlign      StepKind = "align"
	StepPerLine    StepKind = "per-line"
	StepRemove     StepKind = "remove"
	StepInsert     StepKind = "insert"
	StepChanged    StepKind = "changed"
	StepJump       StepKind = "jump"
	StepSmoothTo   StepKind = "smooth-to"
	StepTarget     StepKind = "target"
	StepResize     StepKind = "resize"
)

// Step is one parsed entry of the steps block.
type Step struct {
	Kind   StepKind
	Pos    string
	Index  int
	Count  int
	Delta  float64
	Align  layout.Alignment
	Frames int
	Width  float64
	Height float64
	Items  []host.Item
}

// Label is the frame caption: the step as it would be written.
func (s Step) Label() string {
	switch s.Kind {
	case StepScroll:
		return fmt.Sprintf("scroll %g", s.Delta)
	case StepAlign:
		return "align " + s.Align.String()
	case StepPerLine:
		return fmt.Sprintf("per-line %d", s.Count)
	case StepRemove:
		return fmt.Sprintf("remove %d %d", s.Index, s.Count)
	case StepInsert:
		return fmt.Sprintf("insert %d (%d)", s.Index, len(s.Items))
	case StepJump, StepTarget:
		return fmt.Sprintf("%s %d", s.Kind, s.Index)
	case StepSmoothTo:
		return fmt.Sprintf("smooth-to %d frames %d", s.Index, s.Frames)
	case StepResize:
		return fmt.Sprintf("resize %g %g", s.Width, s.Height)
	default:
		return string(s.Kind)
	}
}

// parseStep turns one command of the steps block into a Step. scope is the
// data scope of the document, used by the item sources of insert.
func parseStep(cmd *dsl.Command, sc *Scenario, scope map[string]any) (Step, error) {
	st := Step{Kind: StepKind(cmd.Name), Pos: cmd.Pos.String()}
	args := cmd.Values()
	fail := func(format string, a ...any) (Step, error) {
		return Step{}, fmt.Errorf("%s: %s: %s", cmd.Pos, cmd.Name, fmt.Sprintf(format, a...))
	}
	var err error
	switch st.Kind {
	case StepLayout, StepStructural, StepChanged:
		if len(args) != 0 {
			return fail("不接受参数")
		}
	case StepScroll:
		if len(args) != 1 {
			return fail("需要一个位移参数")
		}
		if st.Delta, err = strconv.ParseFloat(strings.TrimSuffix(args[0], "px"), 64); err != nil {
			return fail("无效的位移 %q", args[0])
		}
	case StepAlign:
		if len(args) != 1 {
			return fail("需要 start 或 end")
		}
		if st.Align, err = layout.ParseAlignment(args[0]); err != nil {
			return fail("%v", err)
		}
	case StepPerLine:
		if len(args) != 1 {
			return fail("需要一个整数参数")
		}
		if st.Count, err = strconv.Atoi(args[0]); err != nil || st.Count < 0 {
			return fail("需要非负整数: %q", args[0])
		}
	case StepRemove:
		if len(args) < 1 || len(args) > 2 {
			return fail("用法: remove INDEX [COUNT]")
		}
		st.Count = 1
		if st.Index, err = strconv.Atoi(args[0]); err != nil || st.Index < 0 {
			return fail("无效的索引 %q", args[0])
		}
		if len(args) == 2 {
			if st.Count, err = strconv.Atoi(args[1]); err != nil || st.Count <= 0 {
				return fail("无效的数量 %q", args[1])
			}
		}
	case StepInsert:
		if len(args) != 1 || cmd.Block == nil {
			return fail("用法: insert INDEX { 条目 }")
		}
		if st.Index, err = strconv.Atoi(args[0]); err != nil || st.Index < 0 {
			return fail("无效的索引 %q", args[0])
		}
		b := itemBuilder{viewport: sc.Viewport, scope: scope}
		if st.Items, err = b.build(cmd.Block.Commands()); err != nil {
			return Step{}, err
		}
		if len(st.Items) == 0 {
			return fail("没有条目")
		}
	case StepJump, StepTarget:
		if len(args) != 1 {
			return fail("需要一个索引参数")
		}
		if st.Index, err = strconv.Atoi(args[0]); err != nil || st.Index < 0 {
			return fail("无效的索引 %q", args[0])
		}
	case StepSmoothTo:
		if len(args) != 1 && !(len(args) == 3 && args[1] == "frames") {
			return fail("用法: smooth-to INDEX [frames N]")
		}
		if st.Index, err = strconv.Atoi(args[0]); err != nil || st.Index < 0 {
			return fail("无效的索引 %q", args[0])
		}
		st.Frames = sc.SmoothFrames
		if len(args) == 3 {
			if st.Frames, err = strconv.Atoi(args[2]); err != nil || st.Frames < 1 {
				return fail("无效的帧数 %q", args[2])
			}
		}
		if st.Frames < 1 {
			st.Frames = 1
		}
	case StepResize:
		if len(args) != 2 {
			return fail("需要宽高两个参数")
		}
		if st.Width, err = parsePositive(args[0]); err != nil {
			return fail("%v", err)
		}
		if st.Height, err = parsePositive(args[1]); err != nil {
			return fail("%v", err)
		}
	default:
		return fail("未知的步骤")
	}
	return st, nil
}
