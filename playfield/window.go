package playfield

import "math"

const (
	DEFAULT_PREEMPT  = 600.0
	DEFAULT_FADE_OUT = 100.0
)

// Window decides when an object appears and how it fades.
type Window struct {
	Preempt float64 // ms shown before the hit time
	FadeOut float64 // ms to fade after the reference time
}

func DefaultWindow() Window {
	return Window{Preempt: DEFAULT_PREEMPT, FadeOut: DEFAULT_FADE_OUT}
}

func (w Window) ShowTime(hit float64) float64 { return hit - w.Preempt }

// Alpha is fully opaque up to ref and falls linearly to zero over FadeOut.
func (w Window) Alpha(ref, t float64) float64 {
	if t <= ref {
		return 1
	}
	if w.FadeOut <= 0 {
		return 0
	}
	return math.Max(0, 1-(t-ref)/w.FadeOut)
}

func (w Window) Visible(hit, ref, t float64) bool {
	return t >= w.ShowTime(hit) && w.Alpha(ref, t) > 0
}

// Expired reports that t has passed the end of the fade.
func (w Window) Expired(ref, t float64) bool {
	return t > ref+w.FadeOut
}

// ApproachScale shrinks from 2 at show time to 1 at the hit time.
func (w Window) ApproachScale(hit, t float64) float64 {
	if w.Preempt <= 0 {
		return 1
	}
	p := (t - w.ShowTime(hit)) / w.Preempt
	return 2 - math.Max(0, math.Min(1, p))
}

type State uint8

const (
	Pending State = iota
	Visible
	Resolved
)

func (s State) String() string {
	switch s {
	case Visible:
		return "visible"
	case Resolved:
		return "resolved"
	default:
		return "pending"
	}
}
