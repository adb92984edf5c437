// Package curve turns slider control points into evenly spaced polylines.
//
// Every generator is a pure function of (points, kind, length): the same
// input always yields the same slice, so results can be cached per slider.
package curve

import "math"

type Kind uint8

const (
	Linear Kind = iota
	PerfectCircle
	Bezier
	CatmullRom
)

func (k Kind) String() string {
	switch k {
	case PerfectCircle:
		return "perfect"
	case Bezier:
		return "bezier"
	case CatmullRom:
		return "catmull"
	default:
		return "linear"
	}
}

const (
	// SyntheticOffset is added to x to invent a second point for single point paths.
	SyntheticOffset = 100

	sampleSpacing    = 3.0
	minSamples       = 20
	collinearEpsilon = 1e-6
	angleEpsilon     = 1e-9
)

// Curve is a generated polyline. Length is the requested target length; the
// measured length of Points stays within one sample step of it.
type Curve struct {
	Points []Vec
	Length float64
}

// Generate builds the polyline for a slider path. The input slice is not
// modified. Unknown kinds are treated as Linear.
func Generate(points []Vec, kind Kind, length float64) Curve {
	if len(points) == 0 {
		return Curve{Length: length}
	}
	pts := make([]Vec, len(points), len(points)+1)
	copy(pts, points)
	if len(pts) < 2 {
		pts = append(pts, Vec{pts[0].X + SyntheticOffset, pts[0].Y})
	}
	if !(length > 0) || math.IsInf(length, 0) {
		length = 0
	}

	var out []Vec
	switch kind {
	case PerfectCircle:
		out = perfectCircle(pts, length)
	case Bezier:
		out = bezier(pts, length)
	case CatmullRom:
		out = catmullRom(pts, length)
	default:
		out = linear(pts, length)
	}
	return Curve{Points: out, Length: length}
}

// Measured is the summed segment length of the generated points.
func (c Curve) Measured() float64 { return Measure(c.Points) }

// At returns the point at a fraction of the measured length. Progress is
// clamped to [0, 1]; 1 yields the last point exactly.
func (c Curve) At(progress float64) (Vec, bool) {
	if len(c.Points) == 0 {
		return Vec{}, false
	}
	switch {
	case progress <= 0 || math.IsNaN(progress):
		return c.Points[0], true
	case progress >= 1:
		return c.Points[len(c.Points)-1], true
	}
	return PointAt(c.Points, progress*Measure(c.Points)), true
}

// Measure sums the segment lengths of a polyline.
func Measure(points []Vec) float64 {
	total := 0.0
	for i := 1; i < len(points); i++ {
		total += points[i-1].Dist(points[i])
	}
	return total
}

// PointAt walks distance along points and stops at the last point.
func PointAt(points []Vec, distance float64) Vec {
	if len(points) == 0 {
		return Vec{}
	}
	if distance <= 0 {
		return points[0]
	}
	walked := 0.0
	for i := 1; i < len(points); i++ {
		seg := points[i-1].Dist(points[i])
		if walked+seg >= distance {
			if seg == 0 {
				return points[i]
			}
			return Lerp(points[i-1], points[i], (distance-walked)/seg)
		}
		walked += seg
	}
	return points[len(points)-1]
}

// SampleCount is the number of output points used for a target length.
func SampleCount(length float64) int {
	if math.IsNaN(length) || math.IsInf(length, 0) {
		return minSamples
	}
	n := int(math.Floor(length / sampleSpacing))
	if n < minSamples {
		return minSamples
	}
	return n
}

// Step is the spacing between resampled points for a target length.
func Step(length float64) float64 {
	return length / float64(SampleCount(length)-1)
}

// resample redistributes raw at uniform arc-length steps up to length.
// Raw paths shorter than length are continued along their final direction
// and longer ones are cut. When raw already ends within one step of length
// its last point replaces the final sample.
func resample(raw []Vec, length float64) []Vec {
	if len(raw) < 2 {
		return raw
	}
	total := Measure(raw)
	if total == 0 {
		return raw
	}
	n := SampleCount(length)
	step := length / float64(n-1)

	out := make([]Vec, 1, n)
	out[0] = raw[0]
	walked := 0.0
	for i := 1; i < len(raw) && len(out) < n; i++ {
		seg := raw[i-1].Dist(raw[i])
		if seg == 0 {
			continue
		}
		for len(out) < n {
			next := step * float64(len(out))
			if next > walked+seg {
				break
			}
			out = append(out, Lerp(raw[i-1], raw[i], (next-walked)/seg))
		}
		walked += seg
	}

	end := raw[len(raw)-1]
	dir := finalDirection(raw)
	for len(out) < n {
		next := step * float64(len(out))
		out = append(out, end.Add(dir.Scale(next-total)))
	}
	if math.Abs(total-length) <= step {
		out[len(out)-1] = end
	}
	return out
}

func finalDirection(points []Vec) Vec {
	for i := len(points) - 1; i > 0; i-- {
		if d := points[i].Sub(points[i-1]); d.Len() > 0 {
			return d.Norm()
		}
	}
	return Vec{}
}
