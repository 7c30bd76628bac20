package copter

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-copter/internal/config"
)

// Obstacle is a pair of barriers, one hanging from the top and one standing
// on the ground, with a gap between them.
type Obstacle struct {
	X         float64 // leading (left) edge
	TopHeight float64 // height of the top barrier
	GapHeight float64
	Width     float64
	Passed    bool // the body has cleared it; scored once
	Active    bool // slot is in play
}

// GapStart returns the y coordinate where the gap begins.
func (o Obstacle) GapStart() float64 {
	return o.TopHeight
}

// GapEnd returns the y coordinate where the gap ends.
func (o Obstacle) GapEnd() float64 {
	return o.TopHeight + o.GapHeight
}

// Right returns the trailing edge x coordinate.
func (o Obstacle) Right() float64 {
	return o.X + o.Width
}

// ObstacleField is a fixed pool of obstacle slots. Slots are allocated once
// and reused through the Active flag; nothing is allocated while playing.
type ObstacleField struct {
	slots  []Obstacle
	cfg    config.ObstacleConfig
	world  config.WorldConfig
	rng    Source
	logger *log.Logger
}

// NewObstacleField allocates the pool with every slot inactive.
func NewObstacleField(cfg config.Config, rng Source, logger *log.Logger) *ObstacleField {
	capacity := cfg.Obstacles.PoolCapacity
	if capacity < 0 {
		capacity = 0
	}
	return &ObstacleField{
		slots:  make([]Obstacle, capacity),
		cfg:    cfg.Obstacles,
		world:  cfg.World,
		rng:    rng,
		logger: orDiscard(logger),
	}
}

// Capacity returns the number of slots in the pool.
func (f *ObstacleField) Capacity() int {
	return len(f.slots)
}

// Reset returns every slot to the pool.
func (f *ObstacleField) Reset() {
	for i := range f.slots {
		f.slots[i].Active = false
	}
}

// ActiveCount returns the number of obstacles in play.
func (f *ObstacleField) ActiveCount() int {
	n := 0
	for i := range f.slots {
		if f.slots[i].Active {
			n++
		}
	}
	return n
}

// Active returns a copy of the obstacles in play, in slot order.
func (f *ObstacleField) Active() []Obstacle {
	out := make([]Obstacle, 0, len(f.slots))
	for _, o := range f.slots {
		if o.Active {
			out = append(out, o)
		}
	}
	return out
}

// Slots returns a copy of the whole pool, inactive slots included.
func (f *ObstacleField) Slots() []Obstacle {
	out := make([]Obstacle, len(f.slots))
	copy(out, f.slots)
	return out
}

// Advance scrolls every active obstacle left by scrollSpeed*delta.
// An obstacle whose trailing edge moves left of bodyEdgeX is marked passed
// (once); one whose trailing edge moves left of x=0 goes back to the pool.
// Returns the number of obstacles cleared this call.
func (f *ObstacleField) Advance(delta, scrollSpeed, bodyEdgeX float64) int {
	cleared := 0
	dx := scrollSpeed * delta

	for i := range f.slots {
		o := &f.slots[i]
		if !o.Active {
			continue
		}
		o.X -= dx

		if !o.Passed && o.Right() < bodyEdgeX {
			o.Passed = true
			cleared++
		}
		if o.Right() < 0 {
			o.Active = false
		}
	}
	return cleared
}

// EnsureSupply spawns obstacles until at least MinActive are in play and the
// rightmost one starts at or beyond worldWidth. Spacing between leading edges
// shrinks as speedMultiplier grows, down to SpacingFloor. Returns the number
// spawned. An exhausted pool stops spawning for this call and is logged.
func (f *ObstacleField) EnsureSupply(worldWidth, speedMultiplier float64) int {
	if speedMultiplier < 1 {
		speedMultiplier = 1
	}

	spawned := 0
	for {
		active, rightmost, found := f.scan()
		if active >= f.cfg.MinActive && found && rightmost >= worldWidth {
			return spawned
		}

		slot := f.freeSlot()
		if slot < 0 {
			f.logger.Warn("obstacle pool exhausted, skipping spawn",
				"capacity", len(f.slots),
				"active", active,
			)
			return spawned
		}

		x := worldWidth
		if found {
			x = rightmost + f.spacing(speedMultiplier)
		}
		f.spawn(slot, x)
		spawned++
	}
}

// scan returns the active count and the largest leading edge in play.
func (f *ObstacleField) scan() (active int, rightmost float64, found bool) {
	for i := range f.slots {
		o := &f.slots[i]
		if !o.Active {
			continue
		}
		if !found || o.X > rightmost {
			rightmost = o.X
		}
		found = true
		active++
	}
	return active, rightmost, found
}

// freeSlot returns the index of an inactive slot, or -1.
func (f *ObstacleField) freeSlot() int {
	for i := range f.slots {
		if !f.slots[i].Active {
			return i
		}
	}
	return -1
}

// spacing draws the distance to the next leading edge.
func (f *ObstacleField) spacing(speedMultiplier float64) float64 {
	s := uniform(f.rng, f.cfg.SpacingMin, f.cfg.SpacingMax) / speedMultiplier
	if s < f.cfg.SpacingFloor {
		s = f.cfg.SpacingFloor
	}
	return s
}

// spawn overwrites a free slot with fresh random geometry at x. The gap is
// kept at least MarginMin away from both the top edge and the ground line.
func (f *ObstacleField) spawn(slot int, x float64) {
	gap := uniform(f.rng, f.cfg.GapMin, f.cfg.GapMax)
	maxTop := f.world.GroundLine() - gap - f.cfg.MarginMin
	top := uniform(f.rng, f.cfg.MarginMin, maxTop)

	f.slots[slot] = Obstacle{
		X:         x,
		TopHeight: top,
		GapHeight: gap,
		Width:     f.cfg.Width,
		Active:    true,
	}
}

// place puts a fully specified obstacle into a free slot. Used by tests and
// scripted scenarios; returns false when the pool is full.
func (f *ObstacleField) place(o Obstacle) bool {
	slot := f.freeSlot()
	if slot < 0 {
		return false
	}
	o.Active = true
	f.slots[slot] = o
	return true
}
