package main

import (
	"fmt"
	"image/color"
	"math"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"

	"osuplay/curve"
	"osuplay/dotosu"
	"osuplay/playfield"
)

const (
	fieldMargin   = 64.0 // playfield pixels around the 512x384 area
	spinnerRadius = 180.0
)

var defaultComboColours = []dotosu.RGB{
	{R: 255, G: 192, B: 0},
	{R: 0, G: 202, B: 0},
	{R: 18, G: 124, B: 255},
	{R: 242, G: 24, B: 57},
}

var (
	fontsOnce   sync.Once
	regularFont *truetype.Font
	boldFont    *truetype.Font
	fontsErr    error
)

func loadFonts() error {
	fontsOnce.Do(func() {
		if regularFont, fontsErr = truetype.Parse(goregular.TTF); fontsErr != nil {
			return
		}
		boldFont, fontsErr = truetype.Parse(gobold.TTF)
	})
	return fontsErr
}

// snapshot is everything a frame needs, copied out of the session so frames
// can be painted off the session's goroutine.
type snapshot struct {
	At      float64
	Objects []playfield.VisibleObject
	Curves  map[*dotosu.Slider]curve.Curve
	Stats   playfield.Stats
	Radius  float64
	Colours []dotosu.RGB
}

func takeSnapshot(s *playfield.Session, at float64) snapshot {
	snap := snapshot{
		At:      at,
		Objects: s.Update(at),
		Curves:  make(map[*dotosu.Slider]curve.Curve),
		Radius:  s.Config().CircleRadius,
		Colours: s.Beatmap().Colours.Combo,
	}
	for _, v := range snap.Objects {
		if sl, ok := v.Object.(*dotosu.Slider); ok {
			snap.Curves[sl] = s.Curve(sl)
		}
	}
	snap.Stats = s.Stats()
	if len(snap.Colours) == 0 {
		snap.Colours = defaultComboColours
	}
	return snap
}

// painter draws playfield frames onto one gg context. Font faces cache
// glyphs, so each painter keeps its own.
type painter struct {
	dc     *gg.Context
	scale  float64
	number font.Face
	label  font.Face
}

func newPainter(scale float64) (*painter, error) {
	if err := loadFonts(); err != nil {
		return nil, err
	}
	if scale <= 0 {
		scale = 1
	}
	w := int(math.Round((playfield.PLAYFIELD_WIDTH + 2*fieldMargin) * scale))
	h := int(math.Round((playfield.PLAYFIELD_HEIGHT + 2*fieldMargin) * scale))
	return &painter{
		dc:     gg.NewContext(w, h),
		scale:  scale,
		number: truetype.NewFace(boldFont, &truetype.Options{Size: 22 * scale}),
		label:  truetype.NewFace(regularFont, &truetype.Options{Size: 12 * scale}),
	}, nil
}

// screen maps a playfield position to image pixels.
func (p *painter) screen(v curve.Vec) (float64, float64) {
	return (v.X + fieldMargin) * p.scale, (v.Y + fieldMargin) * p.scale
}

func (p *painter) clear() {
	dc := p.dc
	dc.SetRGB(0.06, 0.06, 0.08)
	dc.Clear()

	x, y := p.screen(curve.Vec{})
	dc.DrawRectangle(x, y, playfield.PLAYFIELD_WIDTH*p.scale, playfield.PLAYFIELD_HEIGHT*p.scale)
	dc.SetRGBA(1, 1, 1, 0.15)
	dc.SetLineWidth(1)
	dc.Stroke()
}

func setColour(dc *gg.Context, c dotosu.RGB, alpha float64) {
	dc.SetColor(color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(math.Round(255 * clamp01(alpha)))})
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

func (p *painter) frame(snap snapshot) {
	p.clear()

	// earlier objects sit on top
	for i := len(snap.Objects) - 1; i >= 0; i-- {
		v := snap.Objects[i]
		idx, number := v.Object.Combo()
		c := snap.Colours[idx%len(snap.Colours)]

		switch o := v.Object.(type) {
		case *dotosu.Slider:
			p.sliderBody(snap.Curves[o], snap.Radius, c, v.Alpha)
			p.hitCircle(o.Pos(), snap.Radius, c, v.Alpha, number)
			if v.HasBall {
				p.ball(v.Ball, snap.Radius, v.Alpha, v.Follow.Active)
			}
		case *dotosu.Spinner:
			p.spinner(o, snap.At, v.Alpha)
			continue
		default:
			p.hitCircle(o.Pos(), snap.Radius, c, v.Alpha, number)
		}
		if v.Approach > 1 {
			p.approach(v.Object.Pos(), snap.Radius*v.Approach, c, v.Alpha)
		}
	}
	p.hud(snap)
}

func (p *painter) sliderBody(c curve.Curve, r float64, col dotosu.RGB, alpha float64) {
	if len(c.Points) < 2 {
		return
	}
	dc := p.dc
	p.polyline(c.Points)
	dc.SetLineCap(gg.LineCapRound)
	dc.SetLineJoin(gg.LineJoinRound)
	dc.SetLineWidth(2 * r * p.scale)
	dc.SetRGBA(1, 1, 1, 0.8*alpha)
	dc.StrokePreserve()
	dc.SetLineWidth(2 * r * 0.88 * p.scale)
	setColour(dc, col, 0.55*alpha)
	dc.Stroke()
}

func (p *painter) polyline(points []curve.Vec) {
	dc := p.dc
	dc.NewSubPath()
	for i, pt := range points {
		x, y := p.screen(pt)
		if i == 0 {
			dc.MoveTo(x, y)
		} else {
			dc.LineTo(x, y)
		}
	}
}

func (p *painter) hitCircle(pos dotosu.Vec2, r float64, col dotosu.RGB, alpha float64, number int) {
	dc := p.dc
	x, y := p.screen(curve.Vec{X: float64(pos.X), Y: float64(pos.Y)})
	dc.DrawCircle(x, y, r*p.scale)
	setColour(dc, col, alpha)
	dc.FillPreserve()
	dc.SetRGBA(1, 1, 1, alpha)
	dc.SetLineWidth(3 * p.scale)
	dc.Stroke()

	dc.SetFontFace(p.number)
	dc.SetRGBA(1, 1, 1, alpha)
	dc.DrawStringAnchored(fmt.Sprint(number), x, y, 0.5, 0.35)
}

func (p *painter) approach(pos dotosu.Vec2, r float64, col dotosu.RGB, alpha float64) {
	dc := p.dc
	x, y := p.screen(curve.Vec{X: float64(pos.X), Y: float64(pos.Y)})
	dc.DrawCircle(x, y, r*p.scale)
	setColour(dc, col, alpha)
	dc.SetLineWidth(2 * p.scale)
	dc.Stroke()
}

func (p *painter) ball(pos curve.Vec, r, alpha float64, following bool) {
	dc := p.dc
	x, y := p.screen(pos)
	dc.DrawCircle(x, y, 0.8*r*p.scale)
	dc.SetRGBA(1, 1, 1, 0.9*alpha)
	dc.Fill()
	if following {
		dc.DrawCircle(x, y, 2.2*r*p.scale)
		dc.SetRGBA(1, 0.75, 0.2, alpha)
		dc.SetLineWidth(2 * p.scale)
		dc.Stroke()
	}
}

func (p *painter) spinner(sp *dotosu.Spinner, at, alpha float64) {
	dc := p.dc
	x, y := p.screen(curve.Vec{X: playfield.PLAYFIELD_WIDTH / 2, Y: playfield.PLAYFIELD_HEIGHT / 2})
	r := spinnerRadius
	if span := float64(sp.EndTime - sp.StartTime()); span > 0 && at > float64(sp.StartTime()) {
		r *= clamp01(1 - (at-float64(sp.StartTime()))/span)
	}
	dc.DrawCircle(x, y, spinnerRadius*p.scale)
	dc.SetRGBA(1, 1, 1, 0.3*alpha)
	dc.SetLineWidth(2 * p.scale)
	dc.Stroke()
	if r > 0 {
		dc.DrawCircle(x, y, r*p.scale)
		dc.SetRGBA(0.4, 0.8, 1, alpha)
		dc.SetLineWidth(4 * p.scale)
		dc.Stroke()
	}
}

func (p *painter) hud(snap snapshot) {
	dc := p.dc
	dc.SetFontFace(p.label)
	dc.SetRGBA(1, 1, 1, 0.8)
	dc.DrawString(fmt.Sprintf("%s  score %d  hit %d  miss %d", clockString(math.Max(0, snap.At)), snap.Stats.Score, snap.Stats.Hits, snap.Stats.Misses), 8*p.scale, 16*p.scale)
}

// curves draws every slider of the chart with its control points and index.
func (p *painter) curves(s *playfield.Session) {
	p.clear()
	dc := p.dc
	dc.SetFontFace(p.label)
	for _, ho := range s.Beatmap().HitObjects {
		sl, ok := ho.(*dotosu.Slider)
		if !ok {
			continue
		}
		c := s.Curve(sl)
		if len(c.Points) < 2 {
			continue
		}

		p.polyline(c.Points)
		dc.SetLineWidth(1.5 * p.scale)
		dc.SetRGBA(0.4, 0.8, 1, 0.9)
		dc.Stroke()

		for _, cp := range playfield.ControlPoints(sl) {
			x, y := p.screen(cp)
			dc.DrawRectangle(x-2*p.scale, y-2*p.scale, 4*p.scale, 4*p.scale)
			dc.SetRGBA(1, 0.4, 0.4, 0.8)
			dc.Fill()
		}

		x, y := p.screen(c.Points[0])
		dc.SetRGBA(1, 1, 1, 0.9)
		dc.DrawString(fmt.Sprintf("%d %s", sl.ID(), sl.Path.Type), x+4*p.scale, y-4*p.scale)
	}
}

func renderFrame(s *playfield.Session, at, scale float64, out string) error {
	p, err := newPainter(scale)
	if err != nil {
		return err
	}
	p.frame(takeSnapshot(s, at))
	return p.dc.SavePNG(out)
}

func renderCurves(b *dotosu.Beatmap, scale float64, out string) error {
	p, err := newPainter(scale)
	if err != nil {
		return err
	}
	p.curves(newSession(b))
	return p.dc.SavePNG(out)
}
