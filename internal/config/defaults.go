package config

import (
	_ "embed"
)

//go:embed defaults/copter.yaml
var defaultYAML []byte

// DefaultConfig returns the built-in configuration. It mirrors
// defaults/copter.yaml and is used when the embedded file cannot be parsed.
func DefaultConfig() Config {
	return Config{
		World: WorldConfig{
			Width:        800,
			Height:       600,
			GroundHeight: 60,
		},
		Physics: PhysicsConfig{
			Gravity:           1400,
			Thrust:            -1600,
			TerminalVelocity:  480,
			AccelSmoothing:    0.85,
			DragDamping:       0.96,
			DragThreshold:     0.5,
			CeilingBounce:     0.4,
			RotationFactor:    0.06,
			RotationSmoothing: 0.8,
			MaxRotation:       30,
			ForwardSpeed:      120,
			PinFraction:       0.25,
		},
		Body: BodyConfig{
			SpawnX:        80,
			Width:         48,
			Height:        32,
			HitboxPadding: 5,
		},
		Obstacles: ObstacleConfig{
			Width:        60,
			GapMin:       150,
			GapMax:       210,
			MarginMin:    40,
			SpacingMin:   260,
			SpacingMax:   360,
			SpacingFloor: 200,
			PoolCapacity: 8,
			MinActive:    3,
		},
		Speed: SpeedConfig{
			BaseScroll: 180,
			Steps: []SpeedStep{
				{Score: 0, Multiplier: 1.0},
				{Score: 15, Multiplier: 1.15},
				{Score: 40, Multiplier: 1.3},
				{Score: 80, Multiplier: 1.5},
				{Score: 150, Multiplier: 1.75},
			},
		},
		Scoring: ScoringConfig{
			DistanceUnit:  120,
			ObstacleBonus: 3,
		},
		Timing: TimingConfig{
			NominalFrame: 0.0166667,
			MaxDelta:     0.05,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
