package curve

// linear places SampleCount(length) points at equal distances along the
// control polygon, extending past its end along the last segment.
func linear(points []Vec, length float64) []Vec {
	total := Measure(points)
	if total == 0 {
		return points
	}
	n := SampleCount(length)
	step := length / float64(n-1)
	out := make([]Vec, n)
	for i := range out {
		out[i] = walkLinear(points, step*float64(i))
	}
	return out
}

func walkLinear(points []Vec, distance float64) Vec {
	remaining := distance
	for i := 1; i < len(points); i++ {
		seg := points[i-1].Dist(points[i])
		if remaining <= seg {
			ratio := 0.0
			if seg > 0 {
				ratio = remaining / seg
			}
			return Lerp(points[i-1], points[i], ratio)
		}
		remaining -= seg
	}
	last := points[len(points)-1]
	dir := last.Sub(points[len(points)-2]).Norm()
	return last.Add(dir.Scale(remaining))
}
