package playfield

import "osuplay/dotosu"

const (
	PLAYFIELD_WIDTH  = 512
	PLAYFIELD_HEIGHT = 384

	HIT_SCORE = 300
)

// Constants are the difficulty derived values a session plays with.
type Constants struct {
	CircleRadius float64
	ApproachRate float64
	Preempt      float64
}

func DifficultyConstants(d dotosu.Difficulty) Constants {
	return Constants{
		CircleRadius: CircleRadius(d.CircleSize),
		ApproachRate: d.ApproachRate,
		Preempt:      ApproachRateToPreempt(d.ApproachRate),
	}
}

func CircleRadius(cs float64) float64 {
	return 54.4 - 4.48*cs
}

func ApproachRateToPreempt(ar float64) float64 {
	if ar < 5 {
		return 1200 + 120*(5-ar)
	} else if ar == 5 {
		return 1200
	} else {
		return 1200 - 150*(ar-5)
	}
}

func PreemptToAR(preempt float64) float64 {
	if preempt > 1200 {
		return 5 - (preempt-1200)/120
	} else if preempt == 1200 {
		return 5
	} else {
		return 5 + (1200-preempt)/150
	}
}
