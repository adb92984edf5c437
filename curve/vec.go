package curve

import "math"

type Vec struct {
	X, Y float64
}

func (a Vec) Add(b Vec) Vec            { return Vec{a.X + b.X, a.Y + b.Y} }
func (a Vec) Sub(b Vec) Vec            { return Vec{a.X - b.X, a.Y - b.Y} }
func (a Vec) Scale(s float64) Vec      { return Vec{a.X * s, a.Y * s} }
func (a Vec) Len() float64             { return math.Hypot(a.X, a.Y) }
func (a Vec) Dist(b Vec) float64       { return math.Hypot(a.X-b.X, a.Y-b.Y) }
func (a Vec) Angle(center Vec) float64 { return math.Atan2(a.Y-center.Y, a.X-center.X) }

// Norm returns the unit vector of a, or the zero vector.
func (a Vec) Norm() Vec {
	l := a.Len()
	if l == 0 {
		return Vec{}
	}
	return Vec{a.X / l, a.Y / l}
}

// Lerp is exact at both ends: Lerp(a, b, 0) == a and Lerp(a, b, 1) == b.
func Lerp(a, b Vec, t float64) Vec {
	return Vec{a.X*(1-t) + b.X*t, a.Y*(1-t) + b.Y*t}
}

func circumcenter(a, b, c Vec) (Vec, bool) {
	d := 2 * (a.X*(b.Y-c.Y) + b.X*(c.Y-a.Y) + c.X*(a.Y-b.Y))
	if math.Abs(d) < collinearEpsilon {
		return Vec{}, false
	}
	a2 := a.X*a.X + a.Y*a.Y
	b2 := b.X*b.X + b.Y*b.Y
	c2 := c.X*c.X + c.Y*c.Y
	return Vec{
		X: (a2*(b.Y-c.Y) + b2*(c.Y-a.Y) + c2*(a.Y-b.Y)) / d,
		Y: (a2*(c.X-b.X) + b2*(a.X-c.X) + c2*(b.X-a.X)) / d,
	}, true
}

// wrapAngle maps a into [0, 2π).
func wrapAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}
