package dotosu

import (
	"bufio"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

type section int

const (
	secNone section = iota
	secGeneral
	secEditor
	secMetadata
	secDifficulty
	secEvents
	secTimingPoints
	secColours
	secHitObjects
)

const headerPrefix = "osu file format v"

// ---------- Public API ----------

// DecodeFile decodes the chart at path and records its md5 checksum.
func DecodeFile(path string) (*Beatmap, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sum := md5.New()
	b, err := Decode(io.TeeReader(f, sum))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	b.Checksum = hex.EncodeToString(sum.Sum(nil))
	return b, nil
}

// Decode reads a chart. Only reader failures are returned; malformed fields
// keep their defaults and malformed object lines are skipped.
func Decode(r io.Reader) (*Beatmap, error) {
	sc := bufio.NewScanner(r)
	const maxLine = 1024 * 1024
	buf := make([]byte, 64*1024)
	sc.Buffer(buf, maxLine)

	b := &Beatmap{
		FormatVersion: LATEST_VERSION,
		General: General{
			SampleSet:    "normal",
			SampleVolume: 100,
		},
		Difficulty:  defaultDifficulty(),
		BeatDivisor: 4, GridSize: 4,
	}

	d := decoder{b: b}
	first := true
	for sc.Scan() {
		line := strings.TrimSpace(strings.TrimPrefix(sc.Text(), "\ufeff"))
		if line == "" {
			continue
		}
		if first {
			first = false
			if v, ok := parseHeader(line); ok {
				b.FormatVersion = v
				continue
			}
		}
		d.line(line)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	applyDifficultyRestrictions(&b.Difficulty, b.General.Mode)
	assignCombos(b.HitObjects)
	return b, nil
}

// ParseHitObject decodes a single [HitObjects] line outside of any chart.
func ParseHitObject(line string) (HitObject, bool) {
	return parseHitObject(splitCSVPreserveTail(strings.TrimSpace(line), 11), 0, 0)
}

// ParseTimingPoint decodes a single [TimingPoints] line.
func ParseTimingPoint(line string) (TimingPoint, bool) {
	return parseTimingPoint(splitCSV(strings.TrimSpace(line)), 0)
}

func parseHeader(line string) (int, bool) {
	if !strings.HasPrefix(strings.ToLower(line), headerPrefix) {
		return 0, false
	}
	v, err := strconv.Atoi(strings.TrimSpace(line[len(headerPrefix):]))
	if err != nil {
		return LATEST_VERSION, true
	}
	return v, true
}

// ---------- section decoding ----------

type decoder struct {
	b      *Beatmap
	sec    section
	seenAR bool
}

func (d *decoder) offset() int {
	if d.b.FormatVersion < 5 {
		return EARLY_VERSION_TIMING_OFFSET
	}
	return 0
}

func (d *decoder) line(line string) {
	if strings.HasPrefix(line, "//") {
		return
	}
	if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
		d.sec = sectionOf(line)
		return
	}

	b := d.b
	offset := d.offset()

	switch d.sec {
	case secGeneral:
		d.general(line, offset)
	case secEditor:
		d.editor(line)
	case secMetadata:
		d.metadata(line)
	case secDifficulty:
		d.difficulty(line)
	case secEvents:
		d.event(line, offset)
	case secTimingPoints:
		if tp, ok := parseTimingPoint(splitCSV(line), offset); ok {
			b.TimingPoints = append(b.TimingPoints, tp)
		}
	case secColours:
		d.colour(line)
	case secHitObjects:
		parts := splitCSVPreserveTail(line, 11)
		if ho, ok := parseHitObject(parts, len(b.HitObjects), offset); ok {
			b.HitObjects = append(b.HitObjects, ho)
		}
	}
}

func sectionOf(header string) section {
	switch strings.ToLower(header) {
	case "[general]":
		return secGeneral
	case "[editor]":
		return secEditor
	case "[metadata]":
		return secMetadata
	case "[difficulty]":
		return secDifficulty
	case "[events]":
		return secEvents
	case "[timingpoints]":
		return secTimingPoints
	case "[colours]", "[colors]":
		return secColours
	case "[hitobjects]":
		return secHitObjects
	default:
		return secNone
	}
}

func (d *decoder) general(line string, offset int) {
	g := &d.b.General
	k, v := splitKeyVal(line)
	switch strings.ToLower(k) {
	case "audiofilename":
		g.AudioFilename = standardisePath(v)
	case "audioleadin":
		g.AudioLeadIn = parseInt(v, 0)
	case "previewtime":
		t := parseInt(v, -1)
		if t != -1 {
			t += offset
		}
		g.PreviewTime = t
	case "sampleset":
		g.SampleSet = strings.ToLower(v)
	case "samplevolume":
		g.SampleVolume = parseInt(v, 100)
	case "stackleniency":
		g.StackLeniency = parseFloat(v, 0)
	case "mode":
		g.Mode = parseInt(v, 0)
	case "letterboxinbreaks":
		g.LetterboxInBreaks = parseBoolInt(v)
	case "specialstyle":
		g.SpecialStyle = parseBoolInt(v)
	case "widescreenstoryboard":
		g.WidescreenStoryboard = parseBoolInt(v)
	case "epilepsywarning":
		g.EpilepsyWarning = parseBoolInt(v)
	case "samplesmatchplaybackrate":
		g.SamplesMatchPlaybackRate = parseBoolInt(v)
	case "countdown":
		g.Countdown = parseInt(v, 0)
	case "countdownoffset":
		g.CountdownOffset = parseInt(v, 0)
	}
}

func (d *decoder) editor(line string) {
	b := d.b
	k, v := splitKeyVal(line)
	switch strings.ToLower(k) {
	case "bookmarks":
		for _, p := range strings.Split(v, ",") {
			if p = strings.TrimSpace(p); p != "" {
				b.Bookmarks = append(b.Bookmarks, parseInt(p, 0))
			}
		}
	case "distancespacing":
		b.Editor.DistanceSpacing = parseFloat(v, 0)
	case "beatdivisor":
		b.BeatDivisor = clampInt(parseInt(v, 4), 1, 16)
	case "gridsize":
		b.GridSize = parseInt(v, 4)
	case "timelinezoom":
		b.TimelineZoom = math.Max(0, parseFloat(v, 0))
	}
}

func (d *decoder) metadata(line string) {
	m := &d.b.Metadata
	k, v := splitKeyVal(line)
	switch strings.ToLower(k) {
	case "title":
		m.Title = v
	case "titleunicode":
		m.TitleUnicode = v
	case "artist":
		m.Artist = v
	case "artistunicode":
		m.ArtistUnicode = v
	case "creator":
		m.Creator = v
	case "version":
		m.Version = v
	case "source":
		m.Source = v
	case "tags":
		m.Tags = v
	case "beatmapid":
		m.BeatmapID = parseInt(v, 0)
	case "beatmapsetid":
		m.BeatmapSetID = parseInt(v, 0)
	}
}

func (d *decoder) difficulty(line string) {
	df := &d.b.Difficulty
	k, v := splitKeyVal(line)
	switch strings.ToLower(k) {
	case "hpdrainrate":
		df.HPDrainRate = parseFloat(v, DEFAULT_DIFFICULTY)
	case "circlesize":
		df.CircleSize = parseFloat(v, DEFAULT_CIRCLE_SIZE)
	case "overalldifficulty":
		df.OverallDifficulty = parseFloat(v, DEFAULT_DIFFICULTY)
		if !d.seenAR {
			df.ApproachRate = df.OverallDifficulty
		}
	case "approachrate":
		df.ApproachRate = parseFloat(v, DEFAULT_DIFFICULTY)
		d.seenAR = true
	case "slidermultiplier":
		df.SliderMultiplier = parseFloat(v, DEFAULT_SLIDER_MULTIPLIER)
	case "slidertickrate":
		df.SliderTickRate = parseFloat(v, 1)
	}
}

func (d *decoder) event(line string, offset int) {
	b := d.b
	parts := splitCSV(line)
	if len(parts) < 3 {
		b.UnhandledEvents = append(b.UnhandledEvents, line)
		return
	}
	switch strings.ToLower(parts[0]) {
	case "0", "background":
		b.Metadata.BackgroundFile = cleanFilename(parts[2])
	case "1", "video":
		fn := cleanFilename(parts[2])
		switch strings.ToLower(filepath.Ext(fn)) {
		case ".avi", ".flv", ".mp4", ".mkv", ".mov", ".wmv", ".mpg", ".mpeg", ".ogv", ".webm":
			b.Metadata.VideoFile = fn
		default:
			b.Metadata.BackgroundFile = fn
		}
	case "2", "break":
		start := parseFloat(parts[1], 0) + float64(offset)
		end := parseFloat(parts[2], start) + float64(offset)
		if end < start {
			end = start
		}
		b.Breaks = append(b.Breaks, BreakPeriod{Start: start, End: end})
	default:
		b.UnhandledEvents = append(b.UnhandledEvents, line)
	}
}

func (d *decoder) colour(line string) {
	c := &d.b.Colours
	k, v := splitKeyVal(line)
	rgb, err := parseRGB(v)
	if err != nil {
		return
	}
	key := strings.ToLower(k)
	switch {
	case strings.HasPrefix(key, "combo"):
		c.Combo = append(c.Combo, rgb)
	case key == "sliderborder":
		c.SliderBorder = &rgb
	case key == "slidertrackoverride":
		c.SliderTrackOverride = &rgb
	}
}

func parseTimingPoint(parts []string, offset int) (TimingPoint, bool) {
	if len(parts) < 2 {
		return TimingPoint{}, false
	}
	t := parseFloat(parts[0], 0) + float64(offset)
	beatLen := parseFloatAllowNaN(parts[1])
	meter := 4
	if len(parts) >= 3 {
		meter = parseInt(parts[2], 4)
		if meter == 0 {
			meter = 4
		}
	}
	sampleSet := "normal"
	if len(parts) >= 4 {
		sampleSet = normaliseSampleSet(parseInt(parts[3], 0))
	}
	custom := 0
	if len(parts) >= 5 {
		custom = parseInt(parts[4], 0)
	}
	sampleVol := 100
	if len(parts) >= 6 {
		sampleVol = parseInt(parts[5], 100)
	}
	timingChange := true
	if len(parts) >= 7 {
		timingChange = strings.TrimSpace(parts[6]) == "1"
	}
	kiai, omitFirstBar := false, false
	if len(parts) >= 8 {
		e := parseInt(parts[7], 0)
		kiai = e&1 != 0
		omitFirstBar = e&8 != 0
	}
	sv := 1.0
	if !math.IsNaN(beatLen) && beatLen < 0 {
		sv = 100.0 / -beatLen
	}
	if sampleSet == "none" {
		sampleSet = "normal"
	}
	return TimingPoint{
		Time: t, BeatLength: beatLen, TimeSignature: meter, SampleSet: sampleSet,
		CustomSampleBank: custom, SampleVolume: sampleVol, TimingChange: timingChange,
		Kiai: kiai, OmitFirstBarSignature: omitFirstBar, SliderVelocityMultiplier: sv, ScrollSpeed: sv,
	}, true
}

// assignCombos numbers objects the way the editor colours them.
func assignCombos(objects []HitObject) {
	combo, number := -1, 0
	for i, ho := range objects {
		base := baseOf(ho)
		if base == nil {
			continue
		}
		if i == 0 || ho.NewCombo() || objects[i-1].Kind() == KindSpinner {
			combo += 1 + ho.Flags().ComboSkip()
			number = 0
		}
		number++
		base.ComboIndex, base.ComboNumber = combo, number
	}
}

func baseOf(ho HitObject) *BaseHO {
	switch o := ho.(type) {
	case *Circle:
		return &o.BaseHO
	case *Slider:
		return &o.BaseHO
	case *Spinner:
		return &o.BaseHO
	}
	return nil
}

// ---------- parsing helpers ----------

func splitKeyVal(line string) (key, val string) {
	i := strings.Index(line, ":")
	if i < 0 {
		return strings.TrimSpace(line), ""
	}
	return strings.TrimSpace(line[:i]), strings.TrimSpace(line[i+1:])
}

func parseInt(s string, def int) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		// "123.0" shows up in old charts
		f, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return def
		}
		return int(f)
	}
	return v
}

func parseFloat(s string, def float64) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return def
	}
	return v
}

func parseFloatAllowNaN(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

func parseBoolInt(s string) bool { return strings.TrimSpace(s) == "1" }

func parseRGB(s string) (RGB, error) {
	p := strings.Split(s, ",")
	if len(p) < 3 {
		return RGB{}, errors.New("colour needs three components")
	}
	var c [3]uint8
	for i := range c {
		v, err := strconv.Atoi(strings.TrimSpace(p[i]))
		if err != nil {
			return RGB{}, fmt.Errorf("colour component %q: %w", p[i], err)
		}
		c[i] = uint8(clampInt(v, 0, 255))
	}
	return RGB{R: c[0], G: c[1], B: c[2]}, nil
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func standardisePath(p string) string {
	p = strings.Trim(p, "\"")
	return strings.ReplaceAll(p, "\\", "/")
}

func cleanFilename(s string) string {
	s = strings.Trim(s, "\"")
	return strings.ReplaceAll(s, "\\", "/")
}

func splitCSV(line string) []string {
	var out []string
	var cur strings.Builder
	inQ := false
	for i := 0; i < len(line); i++ {
		c := line[i]
		switch c {
		case '"':
			inQ = !inQ
		case ',':
			if inQ {
				cur.WriteByte(c)
			} else {
				out = append(out, strings.TrimSpace(cur.String()))
				cur.Reset()
			}
		default:
			cur.WriteByte(c)
		}
	}
	out = append(out, strings.TrimSpace(cur.String()))
	return out
}

func splitCSVPreserveTail(line string, n int) []string {
	parts := splitCSV(line)
	if len(parts) <= n {
		return parts
	}
	head := parts[:n-1]
	tail := strings.Join(parts[n-1:], ",")
	return append(head, tail)
}

func normaliseSampleSet(id int) string {
	switch id {
	case 1:
		return "normal"
	case 2:
		return "soft"
	case 3:
		return "drum"
	default:
		return "none"
	}
}

func applyDifficultyRestrictions(d *Difficulty, mode int) {
	d.HPDrainRate = clampFloat(d.HPDrainRate, 0, 10)
	d.OverallDifficulty = clampFloat(d.OverallDifficulty, 0, 10)
	d.ApproachRate = clampFloat(d.ApproachRate, 0, 10)
	if mode == 3 {
		d.CircleSize = clampFloat(d.CircleSize, 1, MAX_MANIA_KEY_COUNT)
	} else {
		d.CircleSize = clampFloat(d.CircleSize, 0, 10)
	}
	d.SliderMultiplier = clampFloat(d.SliderMultiplier, 0.4, 3.6)
	d.SliderTickRate = clampFloat(d.SliderTickRate, 0.5, 8.0)
}

// ---------- optional validation ----------

func (b *Beatmap) Validate() error {
	if b.Metadata.Title == "" && b.Metadata.TitleUnicode == "" {
		return errors.New("missing title")
	}
	if b.Metadata.Artist == "" && b.Metadata.ArtistUnicode == "" {
		return errors.New("missing artist")
	}
	if b.General.AudioFilename == "" {
		return errors.New("missing AudioFilename in [General]")
	}
	return nil
}
