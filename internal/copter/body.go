package copter

import (
	"math"

	"github.com/vovakirdan/tui-copter/internal/config"
	"github.com/vovakirdan/tui-copter/internal/core"
)

// Body is the controlled entity. X and Y are the centre of its sprite in
// world units; Y grows downward.
type Body struct {
	X        float64
	Y        float64
	Velocity float64 // vertical, negative is up
	Accel    float64 // smoothed vertical acceleration
	Rotation float64 // display angle in degrees, positive is nose-down
	Thrust   bool
}

// Impact reports what the body touched during an integration step.
type Impact int

const (
	ImpactNone    Impact = iota
	ImpactCeiling        // bounced off the top edge, the run continues
	ImpactGround         // touched the ground, the run is over
)

func (i Impact) String() string {
	switch i {
	case ImpactNone:
		return "none"
	case ImpactCeiling:
		return "ceiling"
	case ImpactGround:
		return "ground"
	default:
		return "unknown"
	}
}

// BodyPhysics owns the Body and integrates it once per tick.
type BodyPhysics struct {
	phys   config.PhysicsConfig
	size   config.BodyConfig
	world  config.WorldConfig
	frame  float64
	body   Body
	frozen bool
}

// NewBodyPhysics creates the integrator with the body at its spawn pose.
func NewBodyPhysics(cfg config.Config) *BodyPhysics {
	p := &BodyPhysics{
		phys:  cfg.Physics,
		size:  cfg.Body,
		world: cfg.World,
		frame: cfg.Timing.NominalFrame,
	}
	p.Reset()
	return p
}

// Reset puts the body back at its spawn pose: spawn x, vertically centred in
// the playable band, at rest.
func (p *BodyPhysics) Reset() {
	p.body = Body{
		X: p.size.SpawnX,
		Y: p.world.GroundLine() / 2,
	}
	p.frozen = false
}

// Body returns a copy of the current body state.
func (p *BodyPhysics) Body() Body {
	return p.body
}

// Place moves the body to an arbitrary pose. Hosts use it for scripted
// scenarios; the simulation itself never calls it.
func (p *BodyPhysics) Place(b Body) {
	p.body = b
}

// Freeze stops integration; the body keeps its crash pose until Reset.
func (p *BodyPhysics) Freeze() {
	p.frozen = true
}

// Frozen reports whether the body is frozen.
func (p *BodyPhysics) Frozen() bool {
	return p.frozen
}

// MinY is the highest the body centre may go (the ceiling line).
func (p *BodyPhysics) MinY() float64 {
	return p.size.Height / 2
}

// MaxY is the lowest the body centre may go before touching the ground.
func (p *BodyPhysics) MaxY() float64 {
	return p.world.GroundLine() - p.size.Height/2
}

// PinX is where the body stops moving right while the world scrolls.
func (p *BodyPhysics) PinX() float64 {
	return p.phys.PinFraction * p.world.Width
}

// Integrate advances the body by delta seconds with thrust held or released.
//
// Ground contact is fatal: the out-of-band position is never committed and
// ImpactGround is returned. Ceiling contact is not: the body is clamped to the
// ceiling, loses its acceleration and bounces downward with reduced speed.
func (p *BodyPhysics) Integrate(delta float64, thrust bool) Impact {
	if p.frozen || delta <= 0 {
		return ImpactNone
	}
	b := &p.body
	b.Thrust = thrust

	// Already inside the ground band (placed there or left by an earlier
	// step): no velocity can save it.
	if b.Y > p.MaxY() {
		b.Y = p.MaxY()
		return ImpactGround
	}

	target := p.phys.Gravity
	if thrust {
		target = p.phys.Thrust
	}

	// Per-frame factors raised to the number of nominal frames elapsed, so
	// the response does not depend on the host's frame rate.
	frames := delta / p.frame
	s := math.Pow(p.phys.AccelSmoothing, frames)
	b.Accel = b.Accel*s + target*(1-s)

	b.Velocity += b.Accel * delta
	if math.Abs(b.Accel) < p.phys.DragThreshold*math.Abs(target) {
		b.Velocity *= math.Pow(p.phys.DragDamping, frames)
	}
	b.Velocity = core.ClampF(b.Velocity, -p.phys.TerminalVelocity, p.phys.TerminalVelocity)

	r := math.Pow(p.phys.RotationSmoothing, frames)
	want := core.ClampF(b.Velocity*p.phys.RotationFactor, -p.phys.MaxRotation, p.phys.MaxRotation)
	b.Rotation = b.Rotation*r + want*(1-r)

	b.X += p.phys.ForwardSpeed * delta
	if pin := p.PinX(); b.X > pin {
		b.X = pin
	}

	y := b.Y + b.Velocity*delta
	switch {
	case y > p.MaxY():
		b.Y = p.MaxY()
		return ImpactGround
	case y < p.MinY():
		b.Y = p.MinY()
		b.Accel = 0
		b.Velocity = math.Abs(b.Velocity) * p.phys.CeilingBounce
		return ImpactCeiling
	default:
		b.Y = y
		return ImpactNone
	}
}
