package playfield

import (
	"math"

	"osuplay/curve"
	"osuplay/dotosu"
)

// SliderTiming is fixed once per slider from the beat length at its start.
type SliderTiming struct {
	Start      float64
	BeatLength float64
	OneSlide   float64 // duration of a single pass along the curve
	Total      float64 // OneSlide * Slides
	Slides     int
}

func (st SliderTiming) End() float64 { return st.Start + st.Total }

// SlideDuration is the time a slider takes for all of its passes.
func SlideDuration(s *dotosu.Slider, beatLength, sliderMultiplier float64) float64 {
	return oneSlide(s.Length, beatLength, sliderMultiplier) * float64(slides(s))
}

func NewSliderTiming(s *dotosu.Slider, beatLength, sliderMultiplier float64) SliderTiming {
	one := oneSlide(s.Length, beatLength, sliderMultiplier)
	n := slides(s)
	return SliderTiming{
		Start:      float64(s.StartTime()),
		BeatLength: beatLength,
		OneSlide:   one,
		Total:      one * float64(n),
		Slides:     n,
	}
}

func oneSlide(length, beatLength, sliderMultiplier float64) float64 {
	pixelsPerBeat := sliderMultiplier * 100
	if pixelsPerBeat <= 0 {
		return 0
	}
	return length / pixelsPerBeat * beatLength
}

func slides(s *dotosu.Slider) int {
	if s.Slides < 1 {
		return 1
	}
	return s.Slides
}

// BallPosition is the slider ball target at t. It reports false before the
// slider starts, after its last pass ends, and for empty curves. Odd passes
// run from the end of the curve back to its head.
func BallPosition(st SliderTiming, c curve.Curve, t float64) (curve.Vec, bool) {
	elapsed := t - st.Start
	if elapsed < 0 || elapsed > st.Total || len(c.Points) == 0 {
		return curve.Vec{}, false
	}
	if st.OneSlide <= 0 {
		return c.At(0)
	}
	pass := math.Floor(elapsed / st.OneSlide)
	progress := elapsed/st.OneSlide - pass
	if int(pass)%2 == 1 {
		progress = 1 - progress
	}
	return c.At(math.Max(0, math.Min(1, progress)))
}

// ControlPoints converts a parsed path to curve space.
func ControlPoints(s *dotosu.Slider) []curve.Vec {
	out := make([]curve.Vec, len(s.Path.Points))
	for i, p := range s.Path.Points {
		out[i] = curve.Vec{X: float64(p.X), Y: float64(p.Y)}
	}
	return out
}

func CurveKind(t dotosu.SliderPathType) curve.Kind {
	switch t {
	case dotosu.PathPerfect:
		return curve.PerfectCircle
	case dotosu.PathBezier:
		return curve.Bezier
	case dotosu.PathCatmull:
		return curve.CatmullRom
	default:
		return curve.Linear
	}
}

func GenerateCurve(s *dotosu.Slider) curve.Curve {
	return curve.Generate(ControlPoints(s), CurveKind(s.Path.Type), s.Length)
}
