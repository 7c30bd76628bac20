package config

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalid is matched by every ValidationError via errors.Is.
var ErrInvalid = errors.New("config: invalid configuration")

// ValidationError describes one rejected configuration field.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Message)
}

// Is makes errors.Is(err, ErrInvalid) true for any ValidationError.
func (e ValidationError) Is(target error) bool {
	return target == ErrInvalid
}

// RequiredPoolCapacity returns the smallest obstacle pool that can never run
// dry: every obstacle whose leading edge lies in [-width, world width) at the
// tightest spacing, one spawned beyond the viewport, and one slot of slack for
// the generation ahead.
func (c Config) RequiredPoolCapacity() int {
	o := c.Obstacles
	if o.SpacingFloor <= 0 {
		return math.MaxInt
	}
	visible := int(math.Ceil((c.World.Width+o.Width)/o.SpacingFloor)) + 1
	if o.MinActive > visible {
		visible = o.MinActive
	}
	return visible + 1
}

// Validate checks the configuration for values the simulation cannot run
// with. All problems are reported, joined into one error.
func (c Config) Validate() error {
	var errs []error
	check := func(ok bool, field, format string, args ...any) {
		if !ok {
			errs = append(errs, ValidationError{Field: field, Message: fmt.Sprintf(format, args...)})
		}
	}

	w := c.World
	check(w.Width > 0, "world.width", "must be positive, got %v", w.Width)
	check(w.Height > 0, "world.height", "must be positive, got %v", w.Height)
	check(w.GroundHeight >= 0 && w.GroundHeight < w.Height, "world.ground_height",
		"must be in [0, height), got %v", w.GroundHeight)

	p := c.Physics
	check(p.Gravity > 0, "physics.gravity", "must be positive (downward), got %v", p.Gravity)
	check(p.Thrust < 0, "physics.thrust", "must be negative (upward), got %v", p.Thrust)
	check(p.TerminalVelocity > 0, "physics.terminal_velocity", "must be positive, got %v", p.TerminalVelocity)
	check(p.AccelSmoothing >= 0 && p.AccelSmoothing < 1, "physics.accel_smoothing",
		"must be in [0, 1), got %v", p.AccelSmoothing)
	check(p.DragDamping > 0 && p.DragDamping <= 1, "physics.drag_damping",
		"must be in (0, 1], got %v", p.DragDamping)
	check(p.DragThreshold >= 0 && p.DragThreshold <= 1, "physics.drag_threshold",
		"must be in [0, 1], got %v", p.DragThreshold)
	check(p.CeilingBounce >= 0 && p.CeilingBounce <= 1, "physics.ceiling_bounce",
		"must be in [0, 1], got %v", p.CeilingBounce)
	check(p.RotationSmoothing >= 0 && p.RotationSmoothing < 1, "physics.rotation_smoothing",
		"must be in [0, 1), got %v", p.RotationSmoothing)
	check(p.MaxRotation >= 0, "physics.max_rotation", "must not be negative, got %v", p.MaxRotation)
	check(p.ForwardSpeed >= 0, "physics.forward_speed", "must not be negative, got %v", p.ForwardSpeed)
	check(p.PinFraction > 0 && p.PinFraction <= 1, "physics.pin_fraction",
		"must be in (0, 1], got %v", p.PinFraction)

	b := c.Body
	check(b.Width > 0 && b.Height > 0, "body", "width and height must be positive, got %vx%v", b.Width, b.Height)
	check(b.HitboxPadding >= 0 && 2*b.HitboxPadding < b.Width && 2*b.HitboxPadding < b.Height,
		"body.hitbox_padding", "must leave a non-empty hitbox, got %v", b.HitboxPadding)
	check(b.SpawnX >= 0 && b.SpawnX <= p.PinFraction*w.Width, "body.spawn_x",
		"must be in [0, pin_fraction*world.width], got %v", b.SpawnX)
	check(b.Height < w.GroundLine(), "body.height", "must fit above the ground, got %v", b.Height)

	o := c.Obstacles
	hitboxH := b.Height - 2*b.HitboxPadding
	check(o.Width > 0, "obstacles.width", "must be positive, got %v", o.Width)
	check(o.GapMin > 0 && o.GapMin <= o.GapMax, "obstacles.gap_min",
		"must be positive and not exceed gap_max (%v), got %v", o.GapMax, o.GapMin)
	check(o.GapMin > hitboxH, "obstacles.gap_min",
		"must exceed the body hitbox height (%v), got %v", hitboxH, o.GapMin)
	check(o.MarginMin >= 0, "obstacles.margin_min", "must not be negative, got %v", o.MarginMin)
	check(o.GapMax+2*o.MarginMin <= w.GroundLine(), "obstacles.gap_max",
		"gap_max plus both margins (%v) must fit above the ground line (%v)",
		o.GapMax+2*o.MarginMin, w.GroundLine())
	check(o.SpacingMin > 0 && o.SpacingMin <= o.SpacingMax, "obstacles.spacing_min",
		"must be positive and not exceed spacing_max (%v), got %v", o.SpacingMax, o.SpacingMin)
	check(o.SpacingFloor > o.Width && o.SpacingFloor <= o.SpacingMin, "obstacles.spacing_floor",
		"must be in (width, spacing_min], got %v", o.SpacingFloor)
	check(o.MinActive >= 1, "obstacles.min_active", "must be at least 1, got %d", o.MinActive)
	if o.SpacingFloor > 0 {
		need := c.RequiredPoolCapacity()
		check(o.PoolCapacity >= need, "obstacles.pool_capacity",
			"must be at least %d for this world and spacing, got %d", need, o.PoolCapacity)
	}

	s := c.Speed
	check(s.BaseScroll > 0, "speed.base_scroll", "must be positive, got %v", s.BaseScroll)
	check(stepsSorted(s.Steps), "speed.steps", "scores must be strictly increasing")
	prev := 1.0
	for i, step := range s.Steps {
		check(step.Multiplier >= prev, fmt.Sprintf("speed.steps[%d].multiplier", i),
			"must be >= 1 and non-decreasing, got %v", step.Multiplier)
		if step.Multiplier > prev {
			prev = step.Multiplier
		}
	}

	check(c.Scoring.DistanceUnit > 0, "scoring.distance_unit", "must be positive, got %v", c.Scoring.DistanceUnit)
	check(c.Scoring.ObstacleBonus >= 0, "scoring.obstacle_bonus", "must not be negative, got %d", c.Scoring.ObstacleBonus)

	t := c.Timing
	check(t.NominalFrame > 0, "timing.nominal_frame", "must be positive, got %v", t.NominalFrame)
	check(t.MaxDelta > 0, "timing.max_delta", "must be positive, got %v", t.MaxDelta)

	return errors.Join(errs...)
}
