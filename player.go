package main

import (
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/gdamore/tcell/v2"

	"osuplay/curve"
	"osuplay/dotosu"
	"osuplay/playfield"
)

const (
	frameInterval = 16 * time.Millisecond
	keyHoldWindow = 300 * time.Millisecond // terminals only report key repeats
)

// grid maps the playfield onto terminal cells below a one-row HUD.
type grid struct{ w, h int }

func (g grid) rows() int { return max(g.h-1, 1) }

func (g grid) toCell(v curve.Vec) (int, int) {
	x := int(math.Round(v.X / playfield.PLAYFIELD_WIDTH * float64(g.w-1)))
	y := 1 + int(math.Round(v.Y/playfield.PLAYFIELD_HEIGHT*float64(g.rows()-1)))
	return x, y
}

func (g grid) toField(x, y int) curve.Vec {
	return curve.Vec{
		X: float64(x) / float64(max(g.w-1, 1)) * playfield.PLAYFIELD_WIDTH,
		Y: float64(y-1) / float64(max(g.rows()-1, 1)) * playfield.PLAYFIELD_HEIGHT,
	}
}

// cellSize is the playfield size of one cell.
func (g grid) cellSize() (float64, float64) {
	return playfield.PLAYFIELD_WIDTH / float64(max(g.w-1, 1)), playfield.PLAYFIELD_HEIGHT / float64(max(g.rows()-1, 1))
}

type player struct {
	screen  tcell.Screen
	session *playfield.Session
	clock   Clock
	music   *music
	grid    grid
	colours []dotosu.RGB

	cursor    curve.Vec
	mouseDown bool
	keyAt     time.Time
}

func play(chart string) error {
	b, err := dotosu.DecodeFile(chart)
	if err != nil {
		return err
	}
	s := newSession(b)

	logFile, err := os.OpenFile(*playLog, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	defer logFile.Close()
	log.SetOutput(logFile)
	defer log.SetOutput(os.Stderr)

	lead := leadIn(b, s.Config().Window, *playDelay)
	p := &player{session: s, colours: b.Colours.Combo}
	if len(p.colours) == 0 {
		p.colours = defaultComboColours
	}

	if !*playMute {
		audioPath := *playAudio
		if audioPath == "" && b.General.AudioFilename != "" {
			audioPath = filepath.Join(filepath.Dir(chart), b.General.AudioFilename)
		}
		if audioPath != "" {
			if p.music, err = startMusic(audioPath, lead, *playOffset); err != nil {
				log.Printf("audio unavailable, playing without it: %v", err)
			}
		}
	}
	if p.music != nil {
		defer p.music.Close()
		p.clock = p.music.clock
	} else {
		p.clock = newWallClock(lead, *playOffset)
	}

	if p.screen, err = tcell.NewScreen(); err != nil {
		return err
	}
	if err = p.screen.Init(); err != nil {
		return err
	}
	OnPanic(p.screen.Fini)
	p.screen.EnableMouse()
	p.screen.HideCursor()
	p.grid.w, p.grid.h = p.screen.Size()

	log.Printf("playing %s [%s], lead-in %s", b.Metadata.Title, b.Metadata.Version, lead)
	quit := p.loop()
	p.screen.Fini()

	st := s.Stats()
	fmt.Printf("%s [%s]: score %d, %d hit, %d missed\n", b.Metadata.Title, b.Metadata.Version, st.Score, st.Hits, st.Misses)
	if quit {
		log.Printf("quit with %d objects left", st.Remaining)
		return nil
	}

	h, err := OpenHistory(*dbPath)
	if err != nil {
		return err
	}
	defer h.Close()
	return h.Save(newPlay(b, st, time.Now()))
}

// leadIn is how long to wait before chart time zero: at least delay, the
// chart's own lead-in, and enough for the earliest object's full preempt.
func leadIn(b *dotosu.Beatmap, w playfield.Window, delay time.Duration) time.Duration {
	lead := delay
	if d := time.Duration(b.General.AudioLeadIn) * time.Millisecond; d > lead {
		lead = d
	}
	if len(b.HitObjects) > 0 {
		first := b.HitObjects[0].StartTime()
		for _, ho := range b.HitObjects[1:] {
			first = min(first, ho.StartTime())
		}
		if need := time.Duration((w.Preempt - float64(first)) * float64(time.Millisecond)); need > lead {
			lead = need
		}
	}
	return lead
}

// loop runs until the chart ends or the player quits, reporting the latter.
func (p *player) loop() bool {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	Run(func() {
		for {
			ev := p.screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	})

	for {
		select {
		case ev := <-events:
			if !p.handle(ev) {
				return true
			}
		case <-ticker.C:
			t := p.clock.Now()
			if !p.clock.IsPaused() {
				p.session.Follow(t, p.cursor, p.held())
			}
			visible := p.session.Update(t)
			p.draw(t, visible)
			if p.session.Done(t) {
				return false
			}
		}
	}
}

func (p *player) held() bool {
	return p.mouseDown || time.Since(p.keyAt) < keyHoldWindow
}

func (p *player) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch {
		case ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC:
			return false
		case ev.Key() == tcell.KeyRune && (ev.Rune() == 'z' || ev.Rune() == 'x'):
			repeat := time.Since(p.keyAt) < keyHoldWindow
			p.keyAt = time.Now()
			if !repeat {
				p.click()
			}
		case ev.Key() == tcell.KeyRune && ev.Rune() == 'p':
			if p.clock.IsPaused() {
				p.clock.Resume()
			} else {
				p.clock.Pause()
			}
		}

	case *tcell.EventMouse:
		x, y := ev.Position()
		p.cursor = p.grid.toField(x, y)
		down := ev.Buttons()&tcell.Button1 != 0
		if down && !p.mouseDown {
			p.click()
		}
		p.mouseDown = down

	case *tcell.EventResize:
		p.grid.w, p.grid.h = p.screen.Size()
		p.screen.Sync()
	}
	return true
}

func (p *player) click() {
	if p.clock.IsPaused() {
		return
	}
	t := p.clock.Now()
	ho := p.session.Click(t, p.cursor)
	if ho == nil {
		return
	}
	log.Printf("%.0f: %s %d at %.0f,%.0f", t, ho.Kind(), ho.ID(), p.cursor.X, p.cursor.Y)
	if p.music != nil && ho.Kind() == dotosu.KindCircle {
		p.music.Hit()
	}
}

func (p *player) draw(t float64, visible []playfield.VisibleObject) {
	scr := p.screen
	scr.Clear()

	r := p.session.Config().CircleRadius
	for i := len(visible) - 1; i >= 0; i-- {
		v := visible[i]
		idx, number := v.Object.Combo()
		style := fade(p.colours[idx%len(p.colours)], v.Alpha)

		switch o := v.Object.(type) {
		case *dotosu.Spinner:
			p.ring(curve.Vec{X: playfield.PLAYFIELD_WIDTH / 2, Y: playfield.PLAYFIELD_HEIGHT / 2}, spinnerRadius, '·', style)
			continue
		case *dotosu.Slider:
			for _, pt := range p.session.Curve(o).Points {
				x, y := p.grid.toCell(pt)
				scr.SetContent(x, y, '░', nil, style)
			}
		}

		pos := v.Object.Pos()
		head := curve.Vec{X: float64(pos.X), Y: float64(pos.Y)}
		p.disc(head, r, style)
		x, y := p.grid.toCell(head)
		scr.SetContent(x, y, rune('0'+number%10), nil, style.Reverse(true))
		if v.Approach > 1 {
			p.ring(head, r*v.Approach, '·', style)
		}
		if v.HasBall {
			ball := style
			if v.Follow.Active {
				ball = tcell.StyleDefault.Foreground(tcell.ColorYellow)
			}
			x, y := p.grid.toCell(v.Ball)
			scr.SetContent(x, y, '@', nil, ball)
		}
	}

	cx, cy := p.grid.toCell(p.cursor)
	scr.SetContent(cx, cy, '+', nil, tcell.StyleDefault.Foreground(tcell.ColorWhite))

	st := p.session.Stats()
	status := fmt.Sprintf(" %s  score %d  hit %d  miss %d  left %d", clockString(math.Max(0, t)), st.Score, st.Hits, st.Misses, st.Remaining)
	if p.clock.IsPaused() {
		status += "  [paused]"
	}
	for i, ch := range status {
		if i >= p.grid.w {
			break
		}
		scr.SetContent(i, 0, ch, nil, tcell.StyleDefault.Reverse(true))
	}
	scr.Show()
}

// disc fills the cells within r of c.
func (p *player) disc(c curve.Vec, r float64, style tcell.Style) {
	cw, ch := p.grid.cellSize()
	x0, y0 := p.grid.toCell(curve.Vec{X: c.X - r, Y: c.Y - r})
	x1, y1 := p.grid.toCell(curve.Vec{X: c.X + r, Y: c.Y + r})
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			if p.grid.toField(x, y).Dist(c) <= r+math.Min(cw, ch)/2 {
				p.screen.SetContent(x, y, '█', nil, style)
			}
		}
	}
}

func (p *player) ring(c curve.Vec, r float64, ch rune, style tcell.Style) {
	n := max(16, int(r/4))
	for i := 0; i < n; i++ {
		a := 2 * math.Pi * float64(i) / float64(n)
		x, y := p.grid.toCell(curve.Vec{X: c.X + r*math.Cos(a), Y: c.Y + r*math.Sin(a)})
		p.screen.SetContent(x, y, ch, nil, style)
	}
}

func fade(c dotosu.RGB, alpha float64) tcell.Style {
	a := clamp01(alpha)
	return tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(float64(c.R)*a), int32(float64(c.G)*a), int32(float64(c.B)*a)))
}
