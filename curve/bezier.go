package curve

import "math"

const minBezierSamples = 50

// SplitSegments cuts a control point list into independent Bezier curves at
// every pair of consecutive equal points. The repeated point ends one curve
// and starts the next.
func SplitSegments(points []Vec) [][]Vec {
	var segs [][]Vec
	cur := []Vec{points[0]}
	for i := 1; i < len(points); i++ {
		cur = append(cur, points[i])
		if i < len(points)-1 && points[i] == points[i+1] {
			segs = append(segs, cur)
			cur = []Vec{points[i]}
			i++
		}
	}
	if len(cur) > 1 {
		segs = append(segs, cur)
	}
	if len(segs) == 0 {
		segs = [][]Vec{points}
	}
	return segs
}

func bezier(points []Vec, length float64) []Vec {
	segs := SplitSegments(points)
	per := length / float64(len(segs))

	var raw []Vec
	for i, seg := range segs {
		pts := bezierPoints(seg, per)
		if i > 0 {
			pts = pts[1:]
		}
		raw = append(raw, pts...)
	}
	return resample(raw, length)
}

func bezierPoints(cp []Vec, length float64) []Vec {
	n := int(math.Floor(length / 2))
	if n < minBezierSamples {
		n = minBezierSamples
	}
	out := make([]Vec, n)
	for i := range out {
		out[i] = deCasteljau(cp, float64(i)/float64(n-1))
	}
	return out
}

func deCasteljau(cp []Vec, t float64) Vec {
	if len(cp) == 1 {
		return cp[0]
	}
	next := make([]Vec, len(cp)-1)
	for i := range next {
		next[i] = Lerp(cp[i], cp[i+1], t)
	}
	return deCasteljau(next, t)
}
