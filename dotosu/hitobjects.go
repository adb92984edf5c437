package dotosu

import (
	"math"
	"strconv"
	"strings"
)

// Offset of the synthetic second control point appended to paths that
// carry only their head.
const SYNTHETIC_POINT_OFFSET = 100

// parseHitObject decodes "x,y,time,type,hitSound,params...,hitSample".
func parseHitObject(parts []string, index, offset int) (HitObject, bool) {
	if len(parts) < 4 {
		return nil, false
	}
	get := func(i int) string {
		if i < len(parts) {
			return parts[i]
		}
		return ""
	}

	base := BaseHO{
		Index: index,
		PosXY: Vec2{X: parseInt(parts[0], 0), Y: parseInt(parts[1], 0)},
		Time:  parseInt(parts[2], 0) + offset,
		Type:  HitObjectTypeFlags(parseInt(parts[3], 0)),
		Sound: HitSoundFlags(parseInt(get(4), 0)),
	}
	flags := base.Type

	switch {
	case flags&TypeSlider != 0:
		// path, slides, length, edgeSounds, edgeAdditions, hitSample
		slides := parseInt(get(6), 1)
		if slides < 1 {
			slides = 1
		}
		length := math.Max(0, parseFloat(get(7), 0))

		var edgeSounds []HitSoundFlags
		if s := strings.TrimSpace(get(8)); s != "" {
			for _, n := range strings.Split(s, "|") {
				edgeSounds = append(edgeSounds, HitSoundFlags(parseInt(n, 0)))
			}
		}
		var edgeAdds []EdgeAdd
		if s := strings.TrimSpace(get(9)); s != "" {
			for _, p := range strings.Split(s, "|") {
				ns, as := parseEdgeAddPair(p)
				edgeAdds = append(edgeAdds, EdgeAdd{NormalSet: ns, AdditionSet: as})
			}
		}
		if len(parts) >= 11 {
			base.SampleHS = parseHitSample(parts[10])
		}
		return &Slider{
			BaseHO:        base,
			Path:          parseSliderPath(base.PosXY, get(5)),
			Slides:        slides,
			Length:        length,
			EdgeSounds:    edgeSounds,
			EdgeAdditions: edgeAdds,
		}, true

	case flags&TypeSpinner != 0:
		end := base.Time
		if s := strings.TrimSpace(get(5)); s != "" {
			end = parseInt(s, base.Time-offset) + offset
		}
		if end < base.Time {
			end = base.Time
		}
		if len(parts) >= 7 {
			base.SampleHS = parseHitSample(parts[6])
		}
		return &Spinner{BaseHO: base, EndTime: end}, true

	default:
		if len(parts) >= 6 {
			base.SampleHS = parseHitSample(parts[5])
		}
		return &Circle{BaseHO: base}, true
	}
}

// parseSliderPath converts "B|x:y|x:y|..." into a SliderPath whose first
// point is the slider head. Tokens that are not "x:y" pairs are dropped, and
// a path left with fewer than two points gets a synthetic one to the right
// of the head.
func parseSliderPath(head Vec2, spec string) SliderPath {
	tokens := strings.Split(strings.TrimSpace(spec), "|")

	var pType SliderPathType
	switch strings.ToUpper(strings.TrimSpace(tokens[0])) {
	case "P":
		pType = PathPerfect
	case "B":
		pType = PathBezier
	case "C":
		pType = PathCatmull
	default:
		pType = PathLinear
	}

	pts := []Vec2{head}
	for _, t := range tokens[1:] {
		if p, ok := parsePoint(t); ok {
			pts = append(pts, p)
		}
	}
	if len(pts) < 2 {
		pts = append(pts, Vec2{X: head.X + SYNTHETIC_POINT_OFFSET, Y: head.Y})
	}
	return SliderPath{Type: pType, Points: pts}
}

func parsePoint(tok string) (Vec2, bool) {
	xs, ys, ok := strings.Cut(strings.TrimSpace(tok), ":")
	if !ok {
		return Vec2{}, false
	}
	x, errX := strconv.ParseFloat(strings.TrimSpace(xs), 64)
	y, errY := strconv.ParseFloat(strings.TrimSpace(ys), 64)
	if errX != nil || errY != nil || math.IsNaN(x) || math.IsNaN(y) || math.IsInf(x, 0) || math.IsInf(y, 0) {
		return Vec2{}, false
	}
	return Vec2{X: int(x), Y: int(y)}, true
}

func parseHitSample(s string) HitSampleSpec {
	// normalSet:additionSet:customIndex:volume:filename
	parts := strings.Split(s, ":")
	get := func(i int) string {
		if i < len(parts) {
			return parts[i]
		}
		return ""
	}
	return HitSampleSpec{
		NormalSet:   toSampleSet(parseInt(get(0), 0)),
		AdditionSet: toSampleSet(parseInt(get(1), 0)),
		Index:       parseInt(get(2), 0),
		Volume:      parseInt(get(3), 0),
		Filename:    strings.Trim(strings.TrimSpace(get(4)), "\""),
	}
}

func toSampleSet(id int) SampleSet {
	switch id {
	case 1:
		return SampleNormal
	case 2:
		return SampleSoft
	case 3:
		return SampleDrum
	default:
		return SampleNone
	}
}

func parseEdgeAddPair(s string) (SampleSet, SampleSet) {
	a, b, _ := strings.Cut(s, ":")
	return toSampleSet(parseInt(a, 0)), toSampleSet(parseInt(b, 0))
}

// EndTime is the time the object stops being playable, before any slide
// duration is known. Sliders report their start; see playfield for their end.
func EndTime(ho HitObject) int {
	if sp, ok := ho.(*Spinner); ok {
		return sp.EndTime
	}
	return ho.StartTime()
}
