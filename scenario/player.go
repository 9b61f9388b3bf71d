package scenario

import (
	"fmt"

	"github.com/ByLCY/flowlayout/host"
	"github.com/ByLCY/flowlayout/layout"
)

// Player owns an engine and its in-memory host and applies steps to them.
type Player struct {
	Engine *layout.Engine
	Host   *host.Memory

	inserted int
}

// NewPlayer prepares a host with the scenario items and an engine whose
// current options are the scenario options. Nothing is laid out yet.
func NewPlayer(sc *Scenario) *Player {
	mem := host.NewMemory(sc.Viewport, sc.Items)
	e := layout.New(mem)
	e.SetAlignment(sc.Options.Alignment)
	e.SetItemsPerLine(sc.Options.ItemsPerLine)
	e.ItemsChanged()
	return &Player{Engine: e, Host: mem}
}

// Frame snapshots the engine and fills in item labels and colours.
func (p *Player) Frame(label string) layout.Frame {
	f := p.Engine.Snapshot()
	f.Label = label
	for i := range f.Items {
		it := p.Host.Item(f.Items[i].Index)
		f.Items[i].Label = it.Label
		f.Items[i].Color = it.Color
	}
	return f
}

// Apply runs one step and returns the frames it produced. Index arguments
// are checked here so a bad scenario reports an error instead of tripping
// the engine's contract checks.
func (p *Player) Apply(st Step) ([]layout.Frame, error) {
	e := p.Engine
	count := p.Host.ItemCount()
	label := st.Label()
	switch st.Kind {
	case StepLayout:
		e.Layout(false)
	case StepStructural:
		e.Layout(true)
	case StepScroll:
		f := p.scroll(st.Delta)
		f.Label = label
		return []layout.Frame{f}, nil
	case StepAlign:
		e.SetAlignment(st.Align)
	case StepPerLine:
		e.SetItemsPerLine(st.Count)
	case StepChanged:
		e.ItemsChanged()
		e.Layout(false)
	case StepRemove:
		return p.remove(st)
	case StepInsert:
		if st.Index > count {
			return nil, fmt.Errorf("%s: 插入位置 %d 超出条目数 %d", st.Pos, st.Index, count)
		}
		items := append([]host.Item(nil), st.Items...)
		for i := range items {
			if items[i].Label == "" {
				p.inserted++
				items[i].Label = fmt.Sprintf("+%d", p.inserted)
			}
		}
		if err := p.Host.Insert(st.Index, items...); err != nil {
			return nil, fmt.Errorf("%s: %w", st.Pos, err)
		}
		e.ItemsInserted(st.Index, len(items))
		e.Layout(false)
	case StepJump:
		if st.Index >= count {
			return nil, fmt.Errorf("%s: 索引 %d 超出条目数 %d", st.Pos, st.Index, count)
		}
		e.ScrollToIndex(st.Index)
	case StepTarget:
		if st.Index >= count {
			return nil, fmt.Errorf("%s: 索引 %d 超出条目数 %d", st.Pos, st.Index, count)
		}
		d := e.OffsetToIndex(st.Index)
		f := p.Frame(label)
		f.Distance = &d
		return []layout.Frame{f}, nil
	case StepSmoothTo:
		if st.Index >= count {
			return nil, fmt.Errorf("%s: 索引 %d 超出条目数 %d", st.Pos, st.Index, count)
		}
		return p.smooth(st), nil
	case StepResize:
		vp := p.Host.Viewport()
		vp.Width, vp.Height = st.Width, st.Height
		vis := vp.VisibleRect()
		if vis.Width() <= 0 || vis.Height() <= 0 {
			return nil, fmt.Errorf("%s: padding 超出 viewport", st.Pos)
		}
		p.Host.SetViewport(vp)
		e.Layout(false)
	default:
		return nil, fmt.Errorf("%s: 未知的步骤 %q", st.Pos, st.Kind)
	}
	return []layout.Frame{p.Frame(label)}, nil
}

func (p *Player) scroll(dy float64) layout.Frame {
	got := p.Engine.ScrollBy(dy)
	f := p.Frame("")
	f.Requested = dy
	f.Consumed = got
	return f
}

// remove records the structural pass with the doomed items still on screen,
// then drops them from the data and lays out again.
func (p *Player) remove(st Step) ([]layout.Frame, error) {
	if err := p.Host.MarkRemoved(st.Index, st.Count); err != nil {
		return nil, fmt.Errorf("%s: %w", st.Pos, err)
	}
	p.Engine.Layout(true)
	before := p.Frame(st.Label() + " (structural)")
	p.Host.ApplyRemovals()
	p.Engine.ItemsRemoved(st.Index, st.Count)
	p.Engine.Layout(false)
	return []layout.Frame{before, p.Frame(st.Label())}, nil
}

func (p *Player) smooth(st Step) []layout.Frame {
	s := layout.NewSmoothScroll(p.Engine, st.Index, st.Frames)
	d := s.Distance()
	var frames []layout.Frame
	for i := 1; !s.Done(); i++ {
		consumed := s.Step()
		f := p.Frame(fmt.Sprintf("%s [%d/%d]", st.Label(), i, st.Frames))
		f.Consumed = consumed
		f.Distance = &d
		frames = append(frames, f)
	}
	return frames
}

// Run replays every step from a fresh engine.
func (sc *Scenario) Run() (*layout.Result, error) {
	p := NewPlayer(sc)
	res := &layout.Result{Meta: layout.Meta{Title: sc.Title, ItemCount: len(sc.Items)}}
	for _, st := range sc.Steps {
		frames, err := p.Apply(st)
		if err != nil {
			return nil, err
		}
		res.Frames = append(res.Frames, frames...)
	}
	return res, nil
}
