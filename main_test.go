package main

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"osuplay/dotosu"
	"osuplay/playfield"
)

const sampleChart = "testdata/sample.osu"

// parseDefaults runs the command line parser so flag defaults are in place.
func parseDefaults(t *testing.T) {
	t.Helper()
	if _, err := app.Parse([]string{"inspect", sampleChart}); err != nil {
		t.Fatal(err)
	}
}

func loadSample(t *testing.T) *dotosu.Beatmap {
	t.Helper()
	b, err := dotosu.DecodeFile(sampleChart)
	if err != nil {
		t.Fatal(err)
	}
	return b
}

func sampleSession(t *testing.T) *playfield.Session {
	t.Helper()
	b := loadSample(t)
	return playfield.NewSession(b, playfield.ConfigFor(b.Difficulty, playfield.DefaultWindow(), false))
}

func TestInspect(t *testing.T) {
	parseDefaults(t)

	var buf bytes.Buffer
	if err := inspect(&buf, sampleChart); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	t.Log(out)
	for _, want := range []string{
		"sample.osu",
		"Nobody - Sample [Normal] by osuplay",
		"3 circles, 3 sliders, 1 spinners",
		"bpm: 120-150",
		"radius 36.48",
		"preempt 900ms",
		"combo colours: 2",
		"audio: audio.mp3",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output is missing %q", want)
		}
	}
	if strings.Contains(out, "warning") {
		t.Error("sample chart reported as invalid")
	}
}

func TestOpenChartsSkipsBrokenFiles(t *testing.T) {
	dir := t.TempDir()
	data, err := os.ReadFile(sampleChart)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "b.osu"), data, 0o644); err != nil {
		t.Fatal(err)
	}
	// longer than the decoder's line limit
	huge := "osu file format v14\n" + strings.Repeat("x", 2<<20) + "\n"
	if err := os.WriteFile(filepath.Join(dir, "a.osu"), []byte(huge), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("not a chart"), 0o644); err != nil {
		t.Fatal(err)
	}

	beatmaps, paths, err := openCharts(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(beatmaps) != 1 || filepath.Base(paths[0]) != "b.osu" {
		t.Errorf("decoded %v", paths)
	}
	if beatmaps[0].Checksum == "" {
		t.Error("checksum not recorded")
	}
}

func TestOpenChartsAllBroken(t *testing.T) {
	dir := t.TempDir()
	huge := strings.Repeat("x", 2<<20)
	if err := os.WriteFile(filepath.Join(dir, "a.osu"), []byte(huge), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := openCharts(dir); err == nil {
		t.Error("expected an error when nothing decodes")
	}
}

func TestRunPreview(t *testing.T) {
	out := filepath.Join(t.TempDir(), "frame.png")
	if err := run([]string{"preview", sampleChart, "--at", "1s", "-o", out}); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	// default scale 2 over the playfield plus its margin
	if b := img.Bounds(); b.Dx() != 1280 || b.Dy() != 1024 {
		t.Errorf("image is %v", b)
	}
}

func TestClockString(t *testing.T) {
	tests := map[float64]string{
		0:      "0:00",
		999:    "0:00",
		61000:  "1:01",
		600000: "10:00",
	}
	for in, want := range tests {
		if got := clockString(in); got != want {
			t.Errorf("clockString(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestDrain(t *testing.T) {
	s := sampleSession(t)
	// first circle at 1000, last circle at 8500
	if got := drain(s); got != 7500 {
		t.Errorf("drain = %v", got)
	}
	s.Beatmap().Breaks = append(s.Beatmap().Breaks, dotosu.BreakPeriod{Start: 4000, End: 4500})
	if got := drain(s); got != 7000 {
		t.Errorf("drain with a break = %v", got)
	}
}
