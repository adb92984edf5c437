package curve

const minCatmullSamples = 10

// catmullRom runs a uniform Catmull-Rom spline over every window of four
// consecutive points. The final sample is pinned to the last control point.
func catmullRom(points []Vec, length float64) []Vec {
	if len(points) < 4 {
		return linear(points, length)
	}
	windows := len(points) - 3
	per := int(length / (float64(windows) * sampleSpacing))
	if per < minCatmullSamples {
		per = minCatmullSamples
	}

	raw := make([]Vec, 0, windows*per)
	for w := 0; w < windows; w++ {
		p0, p1, p2, p3 := points[w], points[w+1], points[w+2], points[w+3]
		for i := 0; i < per; i++ {
			if w > 0 && i == 0 {
				continue
			}
			raw = append(raw, catmullPoint(p0, p1, p2, p3, float64(i)/float64(per)))
		}
	}
	raw[len(raw)-1] = points[len(points)-1]
	return resample(raw, length)
}

func catmullPoint(p0, p1, p2, p3 Vec, t float64) Vec {
	t2 := t * t
	t3 := t2 * t
	return Vec{
		X: 0.5 * ((2 * p1.X) + (-p0.X+p2.X)*t + (2*p0.X-5*p1.X+4*p2.X-p3.X)*t2 + (-p0.X+3*p1.X-3*p2.X+p3.X)*t3),
		Y: 0.5 * ((2 * p1.Y) + (-p0.Y+p2.Y)*t + (2*p0.Y-5*p1.Y+4*p2.Y-p3.Y)*t2 + (-p0.Y+3*p1.Y-3*p2.Y+p3.Y)*t3),
	}
}
