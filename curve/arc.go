package curve

import "math"

// perfectCircle traces the circle through exactly three points. Other point
// counts and (near) collinear triples are drawn as lines.
func perfectCircle(points []Vec, length float64) []Vec {
	if len(points) != 3 {
		return linear(points, length)
	}
	a, b, c := points[0], points[1], points[2]
	center, ok := circumcenter(a, b, c)
	if !ok {
		return linear(points, length)
	}
	r := a.Dist(center)
	start := a.Angle(center)
	sweep := arcSweep(start, b.Angle(center), c.Angle(center))
	if math.Abs(sweep)*r > length {
		sweep = math.Copysign(length/r, sweep)
	}

	n := SampleCount(math.Abs(sweep) * r)
	raw := make([]Vec, n)
	for i := range raw {
		theta := start + sweep*float64(i)/float64(n-1)
		raw[i] = Vec{center.X + r*math.Cos(theta), center.Y + r*math.Sin(theta)}
	}
	return resample(raw, length)
}

// arcSweep returns the signed angle from start to end that passes mid.
// Going counter-clockwise from start, mid comes before end exactly when the
// two partial deltas add up to the direct one; otherwise the arc runs the
// other way round.
func arcSweep(start, mid, end float64) float64 {
	startToMid := wrapAngle(mid - start)
	midToEnd := wrapAngle(end - mid)
	startToEnd := wrapAngle(end - start)
	if math.Abs(startToMid+midToEnd-startToEnd) < angleEpsilon {
		return startToEnd
	}
	return startToEnd - 2*math.Pi
}
