package curve

import (
	"math"
	"slices"
	"testing"
)

// shapes turn gently relative to the sample step. Sharp zig-zags lose length
// where uniform samples cut their corners and are not held to one step.
var shapes = map[Kind][]Vec{
	Linear:        {{0, 0}, {100, 0}, {100, 100}},
	PerfectCircle: {{0, 0}, {50, 50}, {100, 0}},
	Bezier:        {{0, 0}, {100, 200}, {200, 0}},
	CatmullRom:    {{0, 0}, {50, 50}, {100, 0}, {150, 50}, {200, 0}},
}

func TestGeneratedLength(t *testing.T) {
	lengths := []float64{10, 45, 100, 140, 250, 400}
	for kind, pts := range shapes {
		for _, l := range lengths {
			c := Generate(pts, kind, l)
			got := c.Measured()
			if math.Abs(got-l) > Step(l) {
				t.Errorf("%v length %v: measured %.3f, allowed step %.3f", kind, l, got, Step(l))
			}
			if c.Length != l {
				t.Errorf("%v curve length = %v, want %v", kind, c.Length, l)
			}
			if c.Points[0].Dist(pts[0]) > 1e-9 && kind != CatmullRom {
				t.Errorf("%v does not start at the head: %v", kind, c.Points[0])
			}
		}
	}
}

func TestMultiSegmentBezierLength(t *testing.T) {
	pts := []Vec{{0, 0}, {50, 100}, {100, 0}, {100, 0}, {150, -100}, {200, 0}}
	for _, l := range []float64{60, 150, 240, 500} {
		c := Generate(pts, Bezier, l)
		if got := c.Measured(); math.Abs(got-l) > Step(l) {
			t.Errorf("length %v: measured %.3f", l, got)
		}
	}
}

func TestSampleCount(t *testing.T) {
	tests := map[float64]int{
		0:    20,
		30:   20,
		60:   20,
		63:   21,
		300:  100,
		-10:  20,
		1000: 333,
	}
	for l, want := range tests {
		if got := SampleCount(l); got != want {
			t.Errorf("SampleCount(%v) = %d, want %d", l, got, want)
		}
	}
	if got := len(Generate(shapes[Linear], Linear, 300).Points); got != 100 {
		t.Errorf("linear produced %d points", got)
	}
}

func TestLinearExtrapolates(t *testing.T) {
	c := Generate([]Vec{{0, 0}, {10, 0}}, Linear, 95)
	last := c.Points[len(c.Points)-1]
	if math.Abs(last.X-95) > 1e-9 || last.Y != 0 {
		t.Errorf("last point = %v", last)
	}
}

func TestSinglePointGetsSyntheticPoint(t *testing.T) {
	c := Generate([]Vec{{10, 20}}, Linear, 100)
	last := c.Points[len(c.Points)-1]
	if math.Abs(last.X-110) > 1e-9 || last.Y != 20 {
		t.Errorf("last point = %v", last)
	}
}

func TestDegenerateInputs(t *testing.T) {
	same := []Vec{{5, 5}, {5, 5}, {5, 5}}
	for _, kind := range []Kind{Linear, PerfectCircle, Bezier, CatmullRom} {
		c := Generate(same, kind, 100)
		if len(c.Points) == 0 {
			t.Errorf("%v produced no points", kind)
		}
		if c.Points[0] != (Vec{5, 5}) {
			t.Errorf("%v first point = %v", kind, c.Points[0])
		}
	}
	if c := Generate(nil, Bezier, 100); len(c.Points) != 0 {
		t.Errorf("empty input produced %v", c.Points)
	}
	if c := Generate(shapes[Bezier], Bezier, math.NaN()); c.Length != 0 {
		t.Errorf("NaN length kept as %v", c.Length)
	}
}

func TestCollinearCircleIsLinear(t *testing.T) {
	pts := []Vec{{0, 0}, {50, 50}, {100, 100}}
	for _, l := range []float64{50, 141, 300} {
		circle := Generate(pts, PerfectCircle, l)
		line := Generate(pts, Linear, l)
		if !slices.Equal(circle.Points, line.Points) {
			t.Errorf("length %v: collinear circle differs from linear", l)
		}
	}
}

func TestCircleWithWrongPointCountIsLinear(t *testing.T) {
	pts := []Vec{{0, 0}, {50, 50}, {100, 0}, {150, 50}}
	circle := Generate(pts, PerfectCircle, 200)
	line := Generate(pts, Linear, 200)
	if !slices.Equal(circle.Points, line.Points) {
		t.Error("four point circle differs from linear")
	}
}

func TestCircleFollowsMiddlePoint(t *testing.T) {
	// half circle of radius 50 around (50, 0) bulging towards +y
	pts := []Vec{{0, 0}, {50, 50}, {100, 0}}
	c := Generate(pts, PerfectCircle, math.Pi*50)
	mid, _ := c.At(0.5)
	if mid.Dist(Vec{50, 50}) > 1 {
		t.Errorf("midpoint = %v", mid)
	}
	end := c.Points[len(c.Points)-1]
	if end.Dist(Vec{100, 0}) > 1e-6 {
		t.Errorf("end = %v", end)
	}

	// mirrored, bulging towards -y
	pts = []Vec{{0, 0}, {50, -50}, {100, 0}}
	c = Generate(pts, PerfectCircle, math.Pi*50)
	mid, _ = c.At(0.5)
	if mid.Dist(Vec{50, -50}) > 1 {
		t.Errorf("mirrored midpoint = %v", mid)
	}
}

func TestArcSweep(t *testing.T) {
	tests := []struct {
		start, mid, end, want float64
	}{
		{0, math.Pi / 2, math.Pi, math.Pi},
		{0, -math.Pi / 2, math.Pi, -math.Pi},
		{math.Pi, math.Pi / 2, 0, -math.Pi},
		{0, 0.1, 0.2, 0.2},
		{0.2, 0.1, 0, -0.2},
		{3, -3, -2.5, 2*math.Pi - 5.5},
	}
	for _, tt := range tests {
		if got := arcSweep(tt.start, tt.mid, tt.end); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("arcSweep(%v, %v, %v) = %v, want %v", tt.start, tt.mid, tt.end, got, tt.want)
		}
	}
}

func TestCircleShrinksToLength(t *testing.T) {
	pts := []Vec{{0, 0}, {50, 50}, {100, 0}}
	c := Generate(pts, PerfectCircle, 30)
	for _, p := range c.Points {
		// resampled points sit on chords of the arc
		if r := p.Dist(Vec{50, 0}); math.Abs(r-50) > 0.05 {
			t.Fatalf("point %v is off the circle (r=%v)", p, r)
		}
	}
}

func TestSplitSegments(t *testing.T) {
	pts := []Vec{{0, 0}, {50, 100}, {100, 0}, {100, 0}, {150, -100}, {200, 0}}
	segs := SplitSegments(pts)
	if len(segs) != 2 {
		t.Fatalf("got %d segments: %v", len(segs), segs)
	}
	if len(segs[0]) != 3 || len(segs[1]) != 3 {
		t.Errorf("segment sizes %d, %d", len(segs[0]), len(segs[1]))
	}
	joint := segs[0][len(segs[0])-1]
	if joint != segs[1][0] || joint != (Vec{100, 0}) {
		t.Errorf("joint mismatch: %v vs %v", joint, segs[1][0])
	}

	a := bezierPoints(segs[0], 100)
	b := bezierPoints(segs[1], 100)
	if a[len(a)-1] != b[0] {
		t.Errorf("sub-curves meet at %v and %v", a[len(a)-1], b[0])
	}
	if a[0] != pts[0] || b[len(b)-1] != pts[len(pts)-1] {
		t.Error("sub-curves do not hit their end points")
	}

	// a repeat at the very end does not open an empty curve
	segs = SplitSegments([]Vec{{0, 0}, {10, 10}, {20, 0}, {20, 0}})
	if len(segs) != 1 {
		t.Errorf("trailing repeat gave %d segments", len(segs))
	}
}

func TestCatmullNeedsFourPoints(t *testing.T) {
	pts := []Vec{{0, 0}, {50, 50}, {100, 0}}
	cat := Generate(pts, CatmullRom, 150)
	line := Generate(pts, Linear, 150)
	if !slices.Equal(cat.Points, line.Points) {
		t.Error("three point catmull differs from linear")
	}
}

func TestDeterministic(t *testing.T) {
	for kind, pts := range shapes {
		a := Generate(pts, kind, 180)
		b := Generate(pts, kind, 180)
		if !slices.Equal(a.Points, b.Points) {
			t.Errorf("%v is not deterministic", kind)
		}
	}
}

func TestInputNotModified(t *testing.T) {
	pts := []Vec{{0, 0}}
	Generate(pts, Bezier, 50)
	if len(pts) != 1 || cap(pts) != 1 {
		t.Error("input slice was touched")
	}
}

func TestAt(t *testing.T) {
	c := Generate([]Vec{{0, 0}, {100, 0}}, Linear, 100)
	tests := map[float64]Vec{
		-1:   {0, 0},
		0:    {0, 0},
		0.25: {25, 0},
		0.5:  {50, 0},
		1:    {100, 0},
		2:    {100, 0},
	}
	for p, want := range tests {
		got, ok := c.At(p)
		if !ok || got.Dist(want) > 1e-9 {
			t.Errorf("At(%v) = %v, want %v", p, got, want)
		}
	}
	if _, ok := (Curve{}).At(0.5); ok {
		t.Error("empty curve returned a point")
	}
}
