package layout

import "math"

// SmoothScroll spreads the distance to a target index over a fixed number of
// frames with an ease-out-cubic curve. The distance is resolved once, when
// the scroll starts; a new SmoothScroll simply supersedes an old one.
type SmoothScroll struct {
	engine   *Engine
	target   int
	distance float64
	frames   int
	frame    int
	done     float64
	clamped  bool
}

// NewSmoothScroll prepares a scroll of e towards target over frames steps.
func NewSmoothScroll(e *Engine, target, frames int) *SmoothScroll {
	if frames < 1 {
		frames = 1
	}
	return &SmoothScroll{
		engine:   e,
		target:   target,
		distance: e.OffsetToIndex(target),
		frames:   frames,
	}
}

// Distance is the total delta resolved at start.
func (s *SmoothScroll) Distance() float64 { return s.distance }

// Target is the data index being scrolled to.
func (s *SmoothScroll) Target() int { return s.target }

// Done reports whether the scroll has finished or hit an end of the data.
func (s *SmoothScroll) Done() bool { return s.clamped || s.frame >= s.frames }

// Step advances one frame and returns the delta consumed by the engine.
func (s *SmoothScroll) Step() float64 {
	if s.Done() {
		return 0
	}
	s.frame++
	want := s.distance*easeOutCubic(float64(s.frame)/float64(s.frames)) - s.done
	got := s.engine.ScrollBy(want)
	s.done += got
	if math.Abs(got) < math.Abs(want) {
		s.clamped = true
	}
	return got
}

func easeOutCubic(t float64) float64 {
	t--
	return t*t*t + 1
}
