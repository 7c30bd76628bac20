package copter

import "github.com/vovakirdan/tui-copter/internal/config"

// Snapshot is everything a renderer needs for one frame. It holds copies
// only; mutating it has no effect on the simulation.
type Snapshot struct {
	Status          Status
	Score           int
	BestScore       int
	LastScore       int
	HasPlayedBefore bool
	Paused          bool
	SpeedMultiplier float64
	Distance        float64

	Body      BodyView
	Obstacles []ObstacleView
	World     config.WorldConfig
}

// BodyView is the drawable part of the body.
type BodyView struct {
	X, Y          float64
	Rotation      float64
	Width, Height float64
	Thrust        bool
}

// ObstacleView is the drawable part of an active obstacle.
type ObstacleView struct {
	X         float64
	TopHeight float64
	GapStart  float64
	GapHeight float64
	Width     float64
}
