// Package copter implements the simulation core of a side-scrolling
// obstacle-avoidance game: a thrust-controlled body, a pooled stream of
// paired obstacles, AABB collision, and the START/PLAYING/GAME_OVER state
// machine that gates them. It is host-agnostic: the caller supplies ticks
// and input and pulls Snapshots to draw.
package copter

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-copter/internal/config"
)

// TickResult describes what happened during one tick.
type TickResult struct {
	Status  Status
	Score   int
	Impact  Impact
	Cleared int  // obstacles cleared this tick
	Spawned int  // obstacles spawned this tick
	Crashed bool // this tick ended the run
}

// Simulator composes body physics, the obstacle field and the state machine
// and advances them together. It is not safe for concurrent use; the host
// drives it from a single goroutine.
type Simulator struct {
	cfg     config.Config
	pending *config.Config

	physics *BodyPhysics
	field   *ObstacleField
	state   *StateMachine
	clock   *Clock
	rng     Source
	logger  *log.Logger

	thrust     bool
	paused     bool
	multiplier float64
	distance   float64 // scroll travelled this run
	unscored   float64 // distance not yet converted into points
}

// Option configures a Simulator.
type Option func(*options)

type options struct {
	store  ScoreStore
	rng    Source
	logger *log.Logger
}

// WithStore persists best/last score and the played flag.
func WithStore(store ScoreStore) Option {
	return func(o *options) {
		o.store = store
	}
}

// WithSource replaces the time-seeded random source.
func WithSource(src Source) Option {
	return func(o *options) {
		o.rng = src
	}
}

// WithSeed seeds the random source; zero keeps it time-seeded.
func WithSeed(seed int64) Option {
	return func(o *options) {
		o.rng = NewRandSource(seed)
	}
}

// WithLogger sets the logger used by every component.
func WithLogger(logger *log.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// New validates cfg and builds a simulator in START.
func New(cfg config.Config, opts ...Option) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("copter: %w", err)
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.rng == nil {
		o.rng = NewRandSource(0)
	}

	s := &Simulator{
		cfg:        cfg,
		rng:        o.rng,
		logger:     orDiscard(o.logger),
		multiplier: 1,
	}
	s.state = NewStateMachine(o.store, s.logger)
	s.build()
	return s, nil
}

// build (re)creates the config-dependent components.
func (s *Simulator) build() {
	s.physics = NewBodyPhysics(s.cfg)
	s.field = NewObstacleField(s.cfg, s.rng, s.logger)
	s.clock = NewClock(fromSeconds(s.cfg.Timing.MaxDelta))
}

// Config returns the configuration in effect.
func (s *Simulator) Config() config.Config {
	return s.cfg
}

// SetConfig validates cfg and schedules it for the next START -> PLAYING
// transition. The running game is never reconfigured mid-run.
func (s *Simulator) SetConfig(cfg config.Config) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("copter: %w", err)
	}
	s.pending = &cfg
	s.logger.Info("configuration staged for next run")
	return nil
}

// State returns the state machine's current state.
func (s *Simulator) State() GameState {
	return s.state.State()
}

// Press turns thrust on.
func (s *Simulator) Press() {
	s.thrust = true
}

// Release turns thrust off.
func (s *Simulator) Release() {
	s.thrust = false
}

// Thrusting reports whether thrust is held.
func (s *Simulator) Thrusting() bool {
	return s.thrust
}

// Start begins a run: START -> PLAYING. The body respawns, the field is
// cleared and refilled, and the speed baseline and score restart.
func (s *Simulator) Start() error {
	if err := s.state.Start(); err != nil {
		return err
	}
	if s.pending != nil {
		s.cfg = *s.pending
		s.pending = nil
		s.build()
	}

	s.physics.Reset()
	s.field.Reset()
	s.multiplier = s.cfg.Speed.Multiplier(0)
	s.distance = 0
	s.unscored = 0
	s.paused = false
	s.clock.Reset()
	s.field.EnsureSupply(s.cfg.World.Width, s.multiplier)
	return nil
}

// Restart returns from GAME_OVER to START.
func (s *Simulator) Restart() error {
	if err := s.state.Restart(); err != nil {
		return err
	}
	s.thrust = false
	s.clock.Reset()
	return nil
}

// TogglePause pauses or resumes a run in progress and returns the new
// paused flag. Outside PLAYING it does nothing.
func (s *Simulator) TogglePause() bool {
	if s.state.Status() != StatusPlaying {
		return false
	}
	s.paused = !s.paused
	s.clock.Reset()
	return s.paused
}

// Paused reports whether the run is paused.
func (s *Simulator) Paused() bool {
	return s.paused
}

// Frame advances the simulation to the host timestamp now.
func (s *Simulator) Frame(now time.Time) TickResult {
	return s.Tick(s.clock.Delta(now))
}

// Tick advances the simulation by delta, clamped to Timing.MaxDelta.
// Outside PLAYING, or while paused, it changes nothing.
func (s *Simulator) Tick(delta time.Duration) TickResult {
	res := TickResult{Status: s.state.Status(), Score: s.state.State().Score}
	if res.Status != StatusPlaying || s.paused {
		return res
	}

	dt := delta.Seconds()
	if dt <= 0 {
		return res
	}
	if dt > s.cfg.Timing.MaxDelta {
		dt = s.cfg.Timing.MaxDelta
	}

	s.multiplier = s.cfg.Speed.Multiplier(s.state.State().Score)
	scroll := s.cfg.Speed.BaseScroll * s.multiplier

	res.Impact = s.physics.Integrate(dt, s.thrust)
	if res.Impact == ImpactGround {
		s.crash(&res, "ground")
		return res
	}

	hitbox := Hitbox(s.physics.Body(), s.cfg.Body)
	res.Cleared = s.field.Advance(dt, scroll, hitbox.X)
	res.Spawned = s.field.EnsureSupply(s.cfg.World.Width, s.multiplier)

	s.distance += scroll * dt
	s.unscored += scroll * dt
	points := int(s.unscored / s.cfg.Scoring.DistanceUnit)
	s.unscored -= float64(points) * s.cfg.Scoring.DistanceUnit
	points += res.Cleared * s.cfg.Scoring.ObstacleBonus
	s.state.AddScore(points)

	if CheckObstacles(hitbox, s.field.slots, s.cfg.World.Height) {
		s.crash(&res, "obstacle")
		return res
	}

	res.Status = s.state.Status()
	res.Score = s.state.State().Score
	return res
}

func (s *Simulator) crash(res *TickResult, cause string) {
	s.physics.Freeze()
	s.thrust = false
	if err := s.state.GameOver(); err != nil {
		s.logger.Error("crash outside a run", "error", err)
	}
	s.logger.Debug("crashed", "cause", cause, "distance", s.distance)

	res.Crashed = true
	res.Status = s.state.Status()
	res.Score = s.state.State().Score
}

// Snapshot returns the drawable state.
func (s *Simulator) Snapshot() Snapshot {
	st := s.state.State()
	b := s.physics.Body()

	obstacles := make([]ObstacleView, 0, s.field.Capacity())
	for _, o := range s.field.slots {
		if !o.Active {
			continue
		}
		obstacles = append(obstacles, ObstacleView{
			X:         o.X,
			TopHeight: o.TopHeight,
			GapStart:  o.GapStart(),
			GapHeight: o.GapHeight,
			Width:     o.Width,
		})
	}

	return Snapshot{
		Status:          st.Status,
		Score:           st.Score,
		BestScore:       st.BestScore,
		LastScore:       st.LastScore,
		HasPlayedBefore: st.HasPlayedBefore,
		Paused:          s.paused,
		SpeedMultiplier: s.multiplier,
		Distance:        s.distance,
		Body: BodyView{
			X:        b.X,
			Y:        b.Y,
			Rotation: b.Rotation,
			Width:    s.cfg.Body.Width,
			Height:   s.cfg.Body.Height,
			Thrust:   b.Thrust,
		},
		Obstacles: obstacles,
		World:     s.cfg.World,
	}
}
