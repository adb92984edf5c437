package main

import (
	"path/filepath"
	"testing"
	"time"

	"osuplay/playfield"
)

func TestHistory(t *testing.T) {
	h, err := OpenHistory(filepath.Join(t.TempDir(), "plays.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer h.Close()

	b := loadSample(t)
	first := time.UnixMilli(1700000000000)
	if err := h.Save(newPlay(b, playfield.Stats{Score: 600, Hits: 2, Misses: 4}, first)); err != nil {
		t.Fatal(err)
	}
	if err := h.Save(newPlay(b, playfield.Stats{Score: 1800, Hits: 6}, first.Add(time.Hour))); err != nil {
		t.Fatal(err)
	}
	if err := h.Save(Play{Checksum: "other", PlayedAt: first}); err != nil {
		t.Fatal(err)
	}

	plays, err := h.Load(b.Checksum)
	if err != nil {
		t.Fatal(err)
	}
	if len(plays) != 2 {
		t.Fatalf("loaded %d plays", len(plays))
	}
	if plays[0].Score != 1800 || plays[1].Score != 600 {
		t.Errorf("plays not newest first: %+v", plays)
	}
	if plays[1].Title != "Sample" || plays[1].Version != "Normal" || !plays[1].PlayedAt.Equal(first) {
		t.Errorf("play = %+v", plays[1])
	}
	if acc := plays[1].Accuracy(); acc != 2.0/6 {
		t.Errorf("accuracy = %v", acc)
	}

	if plays, err := h.Load("missing"); err != nil || len(plays) != 0 {
		t.Errorf("unknown chart: %v %v", plays, err)
	}
}

func TestHistoryReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plays.db")
	h, err := OpenHistory(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := h.Save(Play{Checksum: "abc", Score: 300, PlayedAt: time.Now()}); err != nil {
		t.Fatal(err)
	}
	h.Close()

	h, err = OpenHistory(path)
	if err != nil {
		t.Fatal(err)
	}
	defer h.Close()
	plays, err := h.Load("abc")
	if err != nil || len(plays) != 1 || plays[0].Score != 300 {
		t.Errorf("reopened history = %v %v", plays, err)
	}
}

func TestAccuracyWithoutJudgements(t *testing.T) {
	if acc := (Play{}).Accuracy(); acc != 0 {
		t.Errorf("accuracy = %v", acc)
	}
}
