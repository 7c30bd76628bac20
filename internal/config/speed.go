package config

import "sort"

// Multiplier returns the world speed multiplier for a score: the multiplier
// of the highest step whose Score threshold has been reached, never below 1.
func (s SpeedConfig) Multiplier(score int) float64 {
	m := 1.0
	for _, step := range s.Steps {
		if score < step.Score {
			break
		}
		if step.Multiplier > m {
			m = step.Multiplier
		}
	}
	return m
}

// MaxMultiplier returns the largest multiplier the curve can reach.
func (s SpeedConfig) MaxMultiplier() float64 {
	m := 1.0
	for _, step := range s.Steps {
		if step.Multiplier > m {
			m = step.Multiplier
		}
	}
	return m
}

// ScrollSpeed returns the scroll speed for a score.
func (s SpeedConfig) ScrollSpeed(score int) float64 {
	return s.BaseScroll * s.Multiplier(score)
}

// stepsSorted reports whether steps are ordered by strictly increasing score.
func stepsSorted(steps []SpeedStep) bool {
	return sort.SliceIsSorted(steps, func(i, j int) bool {
		return steps[i].Score < steps[j].Score
	}) && !hasDuplicateScores(steps)
}

func hasDuplicateScores(steps []SpeedStep) bool {
	for i := 1; i < len(steps); i++ {
		if steps[i].Score == steps[i-1].Score {
			return true
		}
	}
	return false
}
