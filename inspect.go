package main

import (
	"fmt"
	"io"
	"math"
	"path/filepath"

	"osuplay/dotosu"
	"osuplay/playfield"
)

func inspect(w io.Writer, path string) error {
	beatmaps, paths, err := openCharts(path)
	if err != nil {
		return err
	}
	for i, b := range beatmaps {
		if i > 0 {
			fmt.Fprintln(w)
		}
		describe(w, filepath.Base(paths[i]), b)
	}
	return nil
}

func describe(w io.Writer, name string, b *dotosu.Beatmap) {
	s := newSession(b)
	c := playfield.DifficultyConstants(b.Difficulty)

	var counts [3]int
	for _, ho := range b.HitObjects {
		counts[ho.Kind()]++
	}

	fmt.Fprintf(w, "%s\n", name)
	fmt.Fprintf(w, "  %s - %s [%s] by %s\n", b.Metadata.Artist, b.Metadata.Title, b.Metadata.Version, b.Metadata.Creator)
	fmt.Fprintf(w, "  format v%d, md5 %s\n", b.FormatVersion, b.Checksum)
	fmt.Fprintf(w, "  objects: %d circles, %d sliders, %d spinners\n",
		counts[dotosu.KindCircle], counts[dotosu.KindSlider], counts[dotosu.KindSpinner])

	if lo, hi := b.BPMRange(); lo == hi {
		fmt.Fprintf(w, "  bpm: %.0f\n", lo)
	} else {
		fmt.Fprintf(w, "  bpm: %.0f-%.0f\n", lo, hi)
	}

	fmt.Fprintf(w, "  CS %.1f (radius %.2f), AR %.1f (preempt %.0fms), OD %.1f, HP %.1f\n",
		b.Difficulty.CircleSize, c.CircleRadius, b.Difficulty.ApproachRate, c.Preempt,
		b.Difficulty.OverallDifficulty, b.Difficulty.HPDrainRate)
	fmt.Fprintf(w, "  slider multiplier %.2f, tick rate %.1f\n", b.Difficulty.SliderMultiplier, b.Difficulty.SliderTickRate)
	fmt.Fprintf(w, "  length: %s, drain: %s\n", clockString(s.EndTime()), clockString(drain(s)))
	if len(b.Colours.Combo) > 0 {
		fmt.Fprintf(w, "  combo colours: %d\n", len(b.Colours.Combo))
	}
	if b.General.AudioFilename != "" {
		fmt.Fprintf(w, "  audio: %s\n", b.General.AudioFilename)
	}
	if err := b.Validate(); err != nil {
		fmt.Fprintf(w, "  warning: %v\n", err)
	}
}

// drain is the time from the first object to the end of the last one, less
// break periods.
func drain(s *playfield.Session) float64 {
	b := s.Beatmap()
	if len(b.HitObjects) == 0 {
		return 0
	}
	first, last := math.Inf(1), math.Inf(-1)
	for _, ho := range b.HitObjects {
		end := float64(dotosu.EndTime(ho))
		if sl, ok := ho.(*dotosu.Slider); ok {
			end = s.Timing(sl).End()
		}
		first = math.Min(first, float64(ho.StartTime()))
		last = math.Max(last, end)
	}
	d := last - first
	for _, br := range b.Breaks {
		d -= br.End - br.Start
	}
	return math.Max(0, d)
}

func clockString(ms float64) string {
	total := int(ms / 1000)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}
