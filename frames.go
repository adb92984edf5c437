package main

import (
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"osuplay/playfield"
)

type frameRange struct {
	From, To float64 // ms, To <= From means the end of the chart
	FPS      int
	Scale    float64
	Dir      string
	Workers  int
}

// frameTimes lists the chart time of every frame in r.
func frameTimes(r frameRange, end float64) []float64 {
	to := r.To
	if to <= r.From {
		to = end
	}
	fps := r.FPS
	if fps <= 0 {
		fps = 30
	}
	step := 1000 / float64(fps)
	n := int(math.Floor((to-r.From)/step+1e-9)) + 1
	if n < 1 {
		return nil
	}
	times := make([]float64, n)
	for i := range times {
		times[i] = r.From + float64(i)*step
	}
	return times
}

// renderFrames steps the session through the range in order and paints the
// snapshots concurrently, one painter per worker.
func renderFrames(s *playfield.Session, r frameRange) error {
	if err := os.MkdirAll(r.Dir, 0o755); err != nil {
		return err
	}
	times := frameTimes(r, s.EndTime())
	if len(times) == 0 {
		return fmt.Errorf("empty frame range %.0f-%.0f", r.From, r.To)
	}

	maxWorkers := r.Workers
	if maxWorkers < 1 {
		maxWorkers = 1
	}
	sem := make(chan struct{}, maxWorkers)
	painters := make(chan *painter, maxWorkers)
	for i := 0; i < maxWorkers; i++ {
		p, err := newPainter(r.Scale)
		if err != nil {
			return err
		}
		painters <- p
	}

	every := uint64(len(times) / 10)
	if every == 0 {
		every = 1
	}

	var wg sync.WaitGroup
	var finished atomic.Uint64
	var failed atomic.Pointer[error]
	start := time.Now()

	for i, at := range times {
		if failed.Load() != nil {
			break
		}
		snap := takeSnapshot(s, at)

		wg.Add(1)
		sem <- struct{}{}
		p := <-painters
		go func(p *painter, i int, snap snapshot) {
			defer Recover()
			defer wg.Done()
			defer func() {
				<-sem
				painters <- p
			}()

			p.frame(snap)
			if err := p.dc.SavePNG(filepath.Join(r.Dir, fmt.Sprintf("fr%05d.png", i+1))); err != nil {
				failed.CompareAndSwap(nil, &err)
				return
			}
			if f := finished.Add(1); f%every == 0 {
				log.Printf("finished frames: %d/%d\tavg time per frame: %.4f", f, len(times), time.Since(start).Seconds()/float64(f))
			}
		}(p, i, snap)
	}

	wg.Wait()
	if err := failed.Load(); err != nil {
		return *err
	}
	log.Printf("wrote %d frames to %s", len(times), r.Dir)
	return nil
}
