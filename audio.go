package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/mp3"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/vorbis"
	"github.com/gopxl/beep/wav"
)

const (
	speakerBuffer = time.Second / 60
	hitToneFreq   = 880
	hitToneLength = 40 * time.Millisecond
)

func decodeAudio(path string) (beep.StreamSeekCloser, beep.Format, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, beep.Format{}, err
	}

	var streamer beep.StreamSeekCloser
	var format beep.Format
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ogg":
		streamer, format, err = vorbis.Decode(f)
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	case ".wav":
		streamer, format, err = wav.Decode(f)
	default:
		f.Close()
		return nil, beep.Format{}, fmt.Errorf("%s: unsupported audio format", path)
	}
	if err != nil {
		f.Close()
		return nil, beep.Format{}, fmt.Errorf("decode %s: %w", path, err)
	}
	return streamer, format, nil
}

// music owns the speaker while a chart plays.
type music struct {
	clock    *audioClock
	streamer beep.StreamSeekCloser
	rate     beep.SampleRate
}

func startMusic(path string, lead, offset time.Duration) (*music, error) {
	streamer, format, err := decodeAudio(path)
	if err != nil {
		return nil, err
	}
	if err := speaker.Init(format.SampleRate, format.SampleRate.N(speakerBuffer)); err != nil {
		streamer.Close()
		return nil, fmt.Errorf("speaker: %w", err)
	}

	m := &music{
		clock:    newAudioClock(format.SampleRate, speakerBuffer, streamer, lead, offset),
		streamer: streamer,
		rate:     format.SampleRate,
	}
	speaker.Play(m.clock.Streamer())
	return m, nil
}

// Hit plays a short tone over the music.
func (m *music) Hit() {
	sine, err := generators.SineTone(m.rate, hitToneFreq)
	if err != nil {
		return
	}
	speaker.Play(&effects.Volume{
		Streamer: beep.Take(m.rate.N(hitToneLength), sine),
		Base:     2,
		Volume:   -2,
	})
}

func (m *music) Close() {
	speaker.Clear()
	speaker.Close()
	m.streamer.Close()
}
