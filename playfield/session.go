// Package playfield answers, for a decoded chart and a point in time, which
// objects are on screen, how opaque they are and where slider balls sit.
package playfield

import (
	"osuplay/curve"
	"osuplay/dotosu"
)

type Config struct {
	Window       Window
	CircleRadius float64 // hit-test radius in playfield pixels
}

func DefaultConfig() Config {
	return Config{
		Window:       DefaultWindow(),
		CircleRadius: CircleRadius(dotosu.DEFAULT_CIRCLE_SIZE),
	}
}

// ConfigFor takes the radius from the chart's circle size. With
// preemptFromAR the window's preempt is replaced by the approach rate's.
func ConfigFor(d dotosu.Difficulty, w Window, preemptFromAR bool) Config {
	c := DifficultyConstants(d)
	if preemptFromAR {
		w.Preempt = c.Preempt
	}
	return Config{Window: w, CircleRadius: c.CircleRadius}
}

// FollowState tracks a player holding onto a slider ball.
type FollowState struct {
	UserProgress float64 // ms followed since the slider start
	Active       bool
}

type Stats struct {
	Score     int
	Hits      int
	Misses    int
	Remaining int
}

type VisibleObject struct {
	Object   dotosu.HitObject
	Alpha    float64
	Approach float64

	// sliders only
	Ball    curve.Vec
	HasBall bool
	Follow  FollowState
}

// Session is the playback state for one chart. Callers keep a single
// session per playback; it is not safe for concurrent use.
type Session struct {
	beatmap *dotosu.Beatmap
	cfg     Config

	curves  map[*dotosu.Slider]curve.Curve
	timings map[*dotosu.Slider]SliderTiming
	follow  map[*dotosu.Slider]*FollowState

	first int // objects before first are all resolved
	stats Stats
	end   float64
}

func NewSession(b *dotosu.Beatmap, cfg Config) *Session {
	return &Session{
		beatmap: b,
		cfg:     cfg,
		curves:  make(map[*dotosu.Slider]curve.Curve),
		timings: make(map[*dotosu.Slider]SliderTiming),
		follow:  make(map[*dotosu.Slider]*FollowState),
		stats:   Stats{Remaining: len(b.HitObjects)},
		end:     -1,
	}
}

func (s *Session) Beatmap() *dotosu.Beatmap { return s.beatmap }
func (s *Session) Config() Config           { return s.cfg }
func (s *Session) Stats() Stats             { return s.stats }

// Curve returns the slider's polyline, generating it on first use.
func (s *Session) Curve(sl *dotosu.Slider) curve.Curve {
	if c, ok := s.curves[sl]; ok {
		return c
	}
	c := GenerateCurve(sl)
	s.curves[sl] = c
	return c
}

// Timing samples the beat length once, at the slider's start time.
func (s *Session) Timing(sl *dotosu.Slider) SliderTiming {
	if st, ok := s.timings[sl]; ok {
		return st
	}
	bl := s.beatmap.BeatLengthAt(float64(sl.StartTime()))
	st := NewSliderTiming(sl, bl, s.beatmap.Difficulty.SliderMultiplier)
	s.timings[sl] = st
	return st
}

// ReferenceTime is where the fade starts: the hit time of a circle, the end
// of a slider's last pass or a spinner's end.
func (s *Session) ReferenceTime(ho dotosu.HitObject) float64 {
	switch o := ho.(type) {
	case *dotosu.Slider:
		return s.Timing(o).End()
	case *dotosu.Spinner:
		return float64(o.EndTime)
	}
	return float64(ho.StartTime())
}

// State is the object's state at t. An object that has faded out is
// Resolved even before Update has retired it.
func (s *Session) State(ho dotosu.HitObject, t float64) State {
	if ho.Resolved() {
		return Resolved
	}
	w := s.cfg.Window
	if t < w.ShowTime(float64(ho.StartTime())) {
		return Pending
	}
	if w.Alpha(s.ReferenceTime(ho), t) > 0 {
		return Visible
	}
	return Resolved
}

// FollowState reports the follow state of a visible slider.
func (s *Session) FollowState(sl *dotosu.Slider) (FollowState, bool) {
	fs, ok := s.follow[sl]
	if !ok {
		return FollowState{}, false
	}
	return *fs, true
}

// Update retires every object whose fade has ended by t and returns the
// visible ones in chart order.
func (s *Session) Update(t float64) []VisibleObject {
	objs := s.beatmap.HitObjects
	for s.first < len(objs) && objs[s.first].Resolved() {
		s.first++
	}

	w := s.cfg.Window
	var out []VisibleObject
	for _, ho := range objs[s.first:] {
		if ho.Resolved() {
			continue
		}
		hit := float64(ho.StartTime())
		if t < w.ShowTime(hit) {
			continue
		}
		ref := s.ReferenceTime(ho)
		if w.Expired(ref, t) {
			s.retire(ho, false)
			continue
		}
		alpha := w.Alpha(ref, t)
		if alpha <= 0 {
			continue
		}

		v := VisibleObject{Object: ho, Alpha: alpha, Approach: w.ApproachScale(hit, t)}
		if sl, ok := ho.(*dotosu.Slider); ok {
			fs, ok := s.follow[sl]
			if !ok {
				fs = &FollowState{}
				s.follow[sl] = fs
			}
			v.Ball, v.HasBall = BallPosition(s.Timing(sl), s.Curve(sl), t)
			v.Follow = *fs
		}
		out = append(out, v)
	}
	return out
}

// Click is a hit-test signal at t. The first visible circle under pos is
// hit, or the first slider whose ball is under pos starts being followed.
// It returns the object that took the click, if any.
func (s *Session) Click(t float64, pos curve.Vec) dotosu.HitObject {
	r := s.cfg.CircleRadius
	for _, ho := range s.beatmap.HitObjects[s.first:] {
		if s.State(ho, t) != Visible {
			continue
		}
		switch o := ho.(type) {
		case *dotosu.Circle:
			if toVec(o.Pos()).Dist(pos) <= r {
				s.retire(o, true)
				return o
			}
		case *dotosu.Slider:
			st := s.Timing(o)
			ball, ok := BallPosition(st, s.Curve(o), t)
			if !ok || ball.Dist(pos) > r {
				continue
			}
			fs, ok := s.follow[o]
			if !ok {
				fs = &FollowState{}
				s.follow[o] = fs
			}
			fs.Active = true
			fs.UserProgress = t - st.Start
			return o
		}
	}
	return nil
}

// Follow updates every active slider with the cursor at pos. Letting go or
// leaving the ball drops the follow; holding it through the last pass hits
// the slider.
func (s *Session) Follow(t float64, pos curve.Vec, held bool) {
	for sl, fs := range s.follow {
		if !fs.Active {
			continue
		}
		if !held {
			fs.Active = false
			continue
		}
		st := s.Timing(sl)
		if t >= st.End() {
			fs.UserProgress = st.Total
			s.retire(sl, true)
			continue
		}
		ball, ok := BallPosition(st, s.Curve(sl), t)
		if !ok || ball.Dist(pos) > s.cfg.CircleRadius {
			fs.Active = false
			continue
		}
		fs.UserProgress = t - st.Start
	}
}

// Done reports whether every object is resolved or past its fade.
func (s *Session) Done(t float64) bool {
	return s.stats.Remaining == 0 || t > s.EndTime()
}

// EndTime is the latest fade end over all objects.
func (s *Session) EndTime() float64 {
	if s.end >= 0 {
		return s.end
	}
	end := 0.0
	for _, ho := range s.beatmap.HitObjects {
		if e := s.ReferenceTime(ho) + s.cfg.Window.FadeOut; e > end {
			end = e
		}
	}
	s.end = end
	return end
}

func (s *Session) retire(ho dotosu.HitObject, hit bool) {
	if ho.Resolved() {
		return
	}
	ho.Resolve()
	if sl, ok := ho.(*dotosu.Slider); ok {
		delete(s.follow, sl)
	}
	s.stats.Remaining--
	if ho.Kind() == dotosu.KindSpinner {
		return
	}
	if hit {
		s.stats.Hits++
		s.stats.Score += HIT_SCORE
	} else {
		s.stats.Misses++
	}
}

func toVec(p dotosu.Vec2) curve.Vec {
	return curve.Vec{X: float64(p.X), Y: float64(p.Y)}
}
