package dotosu

// DEFAULT_BEAT_LENGTH is used before the first timing point applies.
const DEFAULT_BEAT_LENGTH = 500.0

// BeatLengthAt returns the beat length in effect at time. Points are scanned
// in source order and the scan stops at the first point later than time.
//
// Inherited points (non-positive beat length, i.e. slider velocity changes)
// and unparseable ones are skipped rather than applied as multipliers.
func BeatLengthAt(points []TimingPoint, time float64) float64 {
	bl := DEFAULT_BEAT_LENGTH
	for _, tp := range points {
		if tp.Time > time {
			break
		}
		if tp.BeatLength > 0 {
			bl = tp.BeatLength
		}
	}
	return bl
}

func (b *Beatmap) BeatLengthAt(time float64) float64 {
	return BeatLengthAt(b.TimingPoints, time)
}

// BPMRange reports the slowest and fastest tempo of uninherited points.
func (b *Beatmap) BPMRange() (lo, hi float64) {
	for _, tp := range b.TimingPoints {
		if !(tp.BeatLength > 0) {
			continue
		}
		bpm := 60000 / tp.BeatLength
		if lo == 0 || bpm < lo {
			lo = bpm
		}
		if bpm > hi {
			hi = bpm
		}
	}
	return lo, hi
}
