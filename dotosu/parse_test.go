package dotosu

import (
	"strings"
	"testing"
)

const sampleChart = `osu file format v14

[General]
AudioFilename: audio.mp3
AudioLeadIn: 1500

[Metadata]
Title:Sample
Artist:Someone
Version:Normal

[Difficulty]
CircleSize:4
ApproachRate:9

[Events]
0,0,"bg.jpg",0,0
2,20000,25000

[TimingPoints]
0,300,4,2,0,60,1,0
8000,-50,4,2,0,60,0,1

[Colours]
Combo1 : 255,0,0
Combo2 : 0,255,0

[HitObjects]
64,96,1000,1,0,0:0:0:0:
100,100,2000,6,0,B|200:100|200:100|300:200,2,250,2|0|0,0:0|0:0|0:0,0:0:0:0:
256,192,5000,12,0,6000,0:0:0:0:
300,300,7000,1,0
`

func TestDecode(t *testing.T) {
	b, err := Decode(strings.NewReader(sampleChart))
	if err != nil {
		t.Fatal(err)
	}
	if b.FormatVersion != 14 {
		t.Errorf("version = %d", b.FormatVersion)
	}
	if b.General.AudioFilename != "audio.mp3" || b.General.AudioLeadIn != 1500 {
		t.Errorf("general = %+v", b.General)
	}
	if b.Metadata.BackgroundFile != "bg.jpg" {
		t.Errorf("background = %q", b.Metadata.BackgroundFile)
	}
	if len(b.Breaks) != 1 || b.Breaks[0].End != 25000 {
		t.Errorf("breaks = %+v", b.Breaks)
	}
	if b.Difficulty.CircleSize != 4 || b.Difficulty.ApproachRate != 9 {
		t.Errorf("difficulty = %+v", b.Difficulty)
	}
	// not present in the chart
	if b.Difficulty.SliderMultiplier != DEFAULT_SLIDER_MULTIPLIER || b.Difficulty.OverallDifficulty != DEFAULT_DIFFICULTY {
		t.Errorf("difficulty defaults = %+v", b.Difficulty)
	}
	if len(b.TimingPoints) != 2 || b.TimingPoints[1].SliderVelocityMultiplier != 2 || !b.TimingPoints[1].Kiai {
		t.Errorf("timing points = %+v", b.TimingPoints)
	}
	if len(b.Colours.Combo) != 2 || b.Colours.Combo[1] != (RGB{0, 255, 0}) {
		t.Errorf("colours = %+v", b.Colours)
	}
	if len(b.HitObjects) != 4 {
		t.Fatalf("objects = %d", len(b.HitObjects))
	}

	kinds := []ObjectKind{KindCircle, KindSlider, KindSpinner, KindCircle}
	for i, ho := range b.HitObjects {
		if ho.Kind() != kinds[i] {
			t.Errorf("object %d kind = %v, want %v", i, ho.Kind(), kinds[i])
		}
		if ho.ID() != i {
			t.Errorf("object %d id = %d", i, ho.ID())
		}
	}

	s := b.HitObjects[1].(*Slider)
	if s.Slides != 2 || s.Length != 250 || s.Path.Type != PathBezier {
		t.Errorf("slider = %+v", s)
	}
	want := []Vec2{{100, 100}, {200, 100}, {200, 100}, {300, 200}}
	if len(s.Path.Points) != len(want) {
		t.Fatalf("slider points = %v", s.Path.Points)
	}
	for i := range want {
		if s.Path.Points[i] != want[i] {
			t.Errorf("point %d = %v, want %v", i, s.Path.Points[i], want[i])
		}
	}
	if len(s.EdgeSounds) != 3 || s.EdgeSounds[0] != HitSoundWhistle {
		t.Errorf("edge sounds = %v", s.EdgeSounds)
	}

	if sp := b.HitObjects[2].(*Spinner); sp.EndTime != 6000 {
		t.Errorf("spinner end = %d", sp.EndTime)
	}

	// circle, new combo slider, new combo spinner, object after spinner
	combos := []int{0, 1, 2, 3}
	for i, ho := range b.HitObjects {
		if idx, _ := ho.Combo(); idx != combos[i] {
			t.Errorf("object %d combo = %d, want %d", i, idx, combos[i])
		}
	}
}

func TestDecodeWithoutHeader(t *testing.T) {
	b, err := Decode(strings.NewReader("[HitObjects]\n64,96,1000,1,0,0:0:0:0:\n"))
	if err != nil {
		t.Fatal(err)
	}
	if b.FormatVersion != LATEST_VERSION || len(b.HitObjects) != 1 {
		t.Errorf("got version %d with %d objects", b.FormatVersion, len(b.HitObjects))
	}
	if b.Difficulty.CircleSize != DEFAULT_CIRCLE_SIZE {
		t.Errorf("circle size = %v", b.Difficulty.CircleSize)
	}
}

func TestDecodeEarlyVersionOffset(t *testing.T) {
	b, err := Decode(strings.NewReader("osu file format v3\n[TimingPoints]\n100,500\n[HitObjects]\n0,0,1000,1,0\n"))
	if err != nil {
		t.Fatal(err)
	}
	if b.TimingPoints[0].Time != 100+EARLY_VERSION_TIMING_OFFSET {
		t.Errorf("timing point time = %v", b.TimingPoints[0].Time)
	}
	if b.HitObjects[0].StartTime() != 1000+EARLY_VERSION_TIMING_OFFSET {
		t.Errorf("object time = %d", b.HitObjects[0].StartTime())
	}
}

func TestParseCircleLine(t *testing.T) {
	ho, ok := ParseHitObject("64,96,1000,1,0,0:0:0:0:")
	if !ok {
		t.Fatal("line rejected")
	}
	c, isCircle := ho.(*Circle)
	if !isCircle {
		t.Fatalf("got %T", ho)
	}
	if c.Pos() != (Vec2{64, 96}) || c.StartTime() != 1000 {
		t.Errorf("circle = %+v", c)
	}
	if c.Resolved() {
		t.Error("new object is already resolved")
	}
}

func TestParseHitObjectKinds(t *testing.T) {
	tests := map[string]ObjectKind{
		"0,0,0,1,0":                  KindCircle,
		"0,0,0,2,0,L|10:0,1,10":      KindSlider,
		"0,0,0,8,0,100":              KindSpinner,
		"0,0,0,10,0,L|10:0,1,10":     KindSlider, // slider bit wins
		"0,0,0,128,0,500:0:0:0:0:":   KindCircle,
		"0,0,0,4,0":                  KindCircle,
		"256,192,300,5,2,0:0:0:0:":   KindCircle,
		"256,192,300,6,0,P|1:1|2:0,": KindSlider,
	}
	for line, want := range tests {
		ho, ok := ParseHitObject(line)
		if !ok {
			t.Errorf("%q rejected", line)
			continue
		}
		if ho.Kind() != want {
			t.Errorf("%q kind = %v, want %v", line, ho.Kind(), want)
		}
	}
	if _, ok := ParseHitObject("1,2"); ok {
		t.Error("short line accepted")
	}
}

func TestParseSliderPath(t *testing.T) {
	tests := []struct {
		spec string
		typ  SliderPathType
		pts  []Vec2
	}{
		{"L|200:100", PathLinear, []Vec2{{100, 100}, {200, 100}}},
		{"P|150:150|200:100", PathPerfect, []Vec2{{100, 100}, {150, 150}, {200, 100}}},
		{"C|110:100|120:110|130:100", PathCatmull, []Vec2{{100, 100}, {110, 100}, {120, 110}, {130, 100}}},
		// unknown kind falls back to linear
		{"X|200:100", PathLinear, []Vec2{{100, 100}, {200, 100}}},
		// bad tokens are skipped
		{"B|oops|150:x|160:170|7", PathBezier, []Vec2{{100, 100}, {160, 170}}},
		// fractional coordinates truncate
		{"L|150.7:120.2", PathLinear, []Vec2{{100, 100}, {150, 120}}},
		// only the head remains
		{"B|junk", PathBezier, []Vec2{{100, 100}, {200, 100}}},
		{"", PathLinear, []Vec2{{100, 100}, {200, 100}}},
	}
	for _, tt := range tests {
		p := parseSliderPath(Vec2{100, 100}, tt.spec)
		if p.Type != tt.typ {
			t.Errorf("%q type = %v, want %v", tt.spec, p.Type, tt.typ)
		}
		if len(p.Points) != len(tt.pts) {
			t.Errorf("%q points = %v, want %v", tt.spec, p.Points, tt.pts)
			continue
		}
		for i := range tt.pts {
			if p.Points[i] != tt.pts[i] {
				t.Errorf("%q point %d = %v, want %v", tt.spec, i, p.Points[i], tt.pts[i])
			}
		}
	}
}

func TestSliderDefaults(t *testing.T) {
	ho, ok := ParseHitObject("0,0,500,2,0,L|100:0")
	if !ok {
		t.Fatal("line rejected")
	}
	s := ho.(*Slider)
	if s.Slides != 1 || s.Length != 0 {
		t.Errorf("slides = %d, length = %v", s.Slides, s.Length)
	}
	ho, _ = ParseHitObject("0,0,500,2,0,L|100:0,0,-20")
	s = ho.(*Slider)
	if s.Slides != 1 || s.Length != 0 {
		t.Errorf("clamped slides = %d, length = %v", s.Slides, s.Length)
	}
}

func TestResolveIsPermanent(t *testing.T) {
	ho, _ := ParseHitObject("0,0,0,1,0")
	ho.Resolve()
	ho.Resolve()
	if !ho.Resolved() {
		t.Error("object not resolved")
	}
}

func TestParseTimingPoint(t *testing.T) {
	tp, ok := ParseTimingPoint("1234.5,333.33,3,1,0,80,1,1")
	if !ok {
		t.Fatal("line rejected")
	}
	if tp.Time != 1234.5 || tp.BeatLength != 333.33 || tp.TimeSignature != 3 || !tp.Kiai || !tp.TimingChange {
		t.Errorf("timing point = %+v", tp)
	}
	if _, ok := ParseTimingPoint("100"); ok {
		t.Error("single field accepted")
	}
}
