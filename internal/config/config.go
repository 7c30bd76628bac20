// Package config provides YAML/TOML game configuration loading, validation,
// difficulty presets and the score-driven world speed curve.
package config

// Config contains every tunable constant of the simulation.
// Units: distances in world units (the world is World.Width × World.Height),
// speeds in units per second, accelerations in units per second squared,
// angles in degrees, times in seconds.
type Config struct {
	World     WorldConfig    `yaml:"world" toml:"world"`
	Physics   PhysicsConfig  `yaml:"physics" toml:"physics"`
	Body      BodyConfig     `yaml:"body" toml:"body"`
	Obstacles ObstacleConfig `yaml:"obstacles" toml:"obstacles"`
	Speed     SpeedConfig    `yaml:"speed" toml:"speed"`
	Scoring   ScoringConfig  `yaml:"scoring" toml:"scoring"`
	Timing    TimingConfig   `yaml:"timing" toml:"timing"`
}

// WorldConfig defines the viewport geometry.
type WorldConfig struct {
	Width        float64 `yaml:"width" toml:"width"`
	Height       float64 `yaml:"height" toml:"height"`
	GroundHeight float64 `yaml:"ground_height" toml:"ground_height"`
}

// GroundLine returns the y coordinate of the top of the ground.
func (w WorldConfig) GroundLine() float64 {
	return w.Height - w.GroundHeight
}

// PhysicsConfig defines the body integrator constants.
type PhysicsConfig struct {
	Gravity           float64 `yaml:"gravity" toml:"gravity"`                       // > 0, pulls down
	Thrust            float64 `yaml:"thrust" toml:"thrust"`                         // < 0, pushes up
	TerminalVelocity  float64 `yaml:"terminal_velocity" toml:"terminal_velocity"`   // |velocity| cap
	AccelSmoothing    float64 `yaml:"accel_smoothing" toml:"accel_smoothing"`       // per nominal frame, [0, 1)
	DragDamping       float64 `yaml:"drag_damping" toml:"drag_damping"`             // per nominal frame, (0, 1]
	DragThreshold     float64 `yaml:"drag_threshold" toml:"drag_threshold"`         // fraction of |target| below which drag applies
	CeilingBounce     float64 `yaml:"ceiling_bounce" toml:"ceiling_bounce"`         // energy kept on ceiling contact
	RotationFactor    float64 `yaml:"rotation_factor" toml:"rotation_factor"`       // degrees per unit/s of velocity
	RotationSmoothing float64 `yaml:"rotation_smoothing" toml:"rotation_smoothing"` // per nominal frame, [0, 1)
	MaxRotation       float64 `yaml:"max_rotation" toml:"max_rotation"`
	ForwardSpeed      float64 `yaml:"forward_speed" toml:"forward_speed"` // intro glide before the pin
	PinFraction       float64 `yaml:"pin_fraction" toml:"pin_fraction"`   // x pin as a fraction of World.Width
}

// BodyConfig defines the controlled body's sprite and hitbox.
type BodyConfig struct {
	SpawnX        float64 `yaml:"spawn_x" toml:"spawn_x"`
	Width         float64 `yaml:"width" toml:"width"`
	Height        float64 `yaml:"height" toml:"height"`
	HitboxPadding float64 `yaml:"hitbox_padding" toml:"hitbox_padding"`
}

// ObstacleConfig defines obstacle geometry and the pool.
type ObstacleConfig struct {
	Width        float64 `yaml:"width" toml:"width"`
	GapMin       float64 `yaml:"gap_min" toml:"gap_min"`
	GapMax       float64 `yaml:"gap_max" toml:"gap_max"`
	MarginMin    float64 `yaml:"margin_min" toml:"margin_min"`
	SpacingMin   float64 `yaml:"spacing_min" toml:"spacing_min"`
	SpacingMax   float64 `yaml:"spacing_max" toml:"spacing_max"`
	SpacingFloor float64 `yaml:"spacing_floor" toml:"spacing_floor"` // lower bound after speed scaling
	PoolCapacity int     `yaml:"pool_capacity" toml:"pool_capacity"`
	MinActive    int     `yaml:"min_active" toml:"min_active"`
}

// SpeedConfig defines the scroll speed and its score-driven curve.
type SpeedConfig struct {
	BaseScroll float64     `yaml:"base_scroll" toml:"base_scroll"`
	Steps      []SpeedStep `yaml:"steps" toml:"steps"`
}

// SpeedStep raises the world speed multiplier once the score reaches Score.
type SpeedStep struct {
	Score      int     `yaml:"score" toml:"score"`
	Multiplier float64 `yaml:"multiplier" toml:"multiplier"`
}

// ScoringConfig defines how points are awarded.
type ScoringConfig struct {
	DistanceUnit  float64 `yaml:"distance_unit" toml:"distance_unit"`   // scroll distance worth one point
	ObstacleBonus int     `yaml:"obstacle_bonus" toml:"obstacle_bonus"` // points per cleared obstacle
}

// TimingConfig defines the reference frame and the delta clamp.
type TimingConfig struct {
	NominalFrame float64 `yaml:"nominal_frame" toml:"nominal_frame"`
	MaxDelta     float64 `yaml:"max_delta" toml:"max_delta"`
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset maps a CLI string to a preset. Empty and unknown strings
// return "" and false.
func ParsePreset(s string) (DifficultyPreset, bool) {
	switch p := DifficultyPreset(s); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, true
	default:
		return "", false
	}
}

// ApplyPreset modifies the config based on a difficulty preset.
// Normal leaves the loaded values untouched.
func ApplyPreset(cfg *Config, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Obstacles.GapMin *= 1.2
		cfg.Obstacles.GapMax *= 1.2
		cfg.Speed.BaseScroll *= 0.85
		clampGapsToBand(cfg)
	case DifficultyHard:
		cfg.Obstacles.GapMin *= 0.85
		cfg.Obstacles.GapMax *= 0.85
		cfg.Speed.BaseScroll *= 1.2
	case DifficultyFixed:
		cfg.Speed.Steps = nil
	}
}

// clampGapsToBand keeps widened gaps inside the playable band.
func clampGapsToBand(cfg *Config) {
	limit := cfg.World.GroundLine() - 2*cfg.Obstacles.MarginMin
	if cfg.Obstacles.GapMax > limit {
		cfg.Obstacles.GapMax = limit
	}
	if cfg.Obstacles.GapMin > cfg.Obstacles.GapMax {
		cfg.Obstacles.GapMin = cfg.Obstacles.GapMax
	}
}
