package copter

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/vovakirdan/tui-copter/internal/config"
)

// tick is exactly representable in binary, so scroll arithmetic is exact.
const tick = time.Second / 64

// exactConfig scrolls 4 units per tick with no speed steps and awards one
// point per 16 ticks.
func exactConfig() config.Config {
	cfg := config.DefaultConfig()
	cfg.Speed.BaseScroll = 256
	cfg.Speed.Steps = nil
	cfg.Scoring.DistanceUnit = 64
	return cfg
}

// hover keeps the body near the middle of the band.
func hover(s *Simulator) {
	if s.physics.Body().Y > s.cfg.World.GroundLine()/2 {
		s.Press()
	} else {
		s.Release()
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Physics.Gravity = -1
	cfg.Obstacles.PoolCapacity = 1

	_, err := New(cfg)
	if !errors.Is(err, config.ErrInvalid) {
		t.Fatalf("New() error = %v, expected ErrInvalid", err)
	}
}

func TestTickOutsidePlayingIsNoop(t *testing.T) {
	s := newTestSim(t, config.DefaultConfig())
	before := s.Snapshot()

	res := s.Tick(tick)
	if res.Status != StatusStart || res.Crashed {
		t.Errorf("Tick() in START = %+v", res)
	}
	if s.Snapshot().Body != before.Body {
		t.Error("body moved in START")
	}
}

func TestStartSpawnsField(t *testing.T) {
	cfg := config.DefaultConfig()
	s := newTestSim(t, cfg)
	mustStart(t, s)

	snap := s.Snapshot()
	if snap.Status != StatusPlaying || snap.Score != 0 {
		t.Errorf("after Start: status %v score %d", snap.Status, snap.Score)
	}
	if len(snap.Obstacles) < cfg.Obstacles.MinActive {
		t.Errorf("only %d obstacles in play", len(snap.Obstacles))
	}
	if snap.Obstacles[0].X != cfg.World.Width {
		t.Errorf("first obstacle at %v, expected the viewport edge", snap.Obstacles[0].X)
	}
	if snap.Body.X != cfg.Body.SpawnX || snap.Body.Y != cfg.World.GroundLine()/2 {
		t.Errorf("body at (%v, %v), expected spawn pose", snap.Body.X, snap.Body.Y)
	}
	if snap.SpeedMultiplier != 1 {
		t.Errorf("speed multiplier = %v, expected the baseline 1", snap.SpeedMultiplier)
	}
}

func TestGroundCrashCommitsScores(t *testing.T) {
	store := &memStore{best: 5}
	cfg := config.DefaultConfig()
	s := newTestSim(t, cfg, WithStore(store))
	mustStart(t, s)
	s.state.AddScore(7)

	s.physics.Place(Body{X: cfg.Body.SpawnX, Y: cfg.World.GroundLine() - 1})
	res := s.Tick(tick)

	if !res.Crashed || res.Impact != ImpactGround {
		t.Fatalf("Tick() = %+v, expected a ground crash", res)
	}
	st := s.State()
	if st.Status != StatusGameOver || st.LastScore != 7 || st.BestScore != 7 {
		t.Errorf("after crash: %+v", st)
	}
	if store.best != 7 || store.last != 7 {
		t.Errorf("stored best/last = %d/%d", store.best, store.last)
	}

	frozen := s.Snapshot().Body
	s.Press()
	s.Tick(tick)
	if s.Snapshot().Body != frozen || s.State().Score != 7 {
		t.Error("nothing should move after GAME_OVER")
	}
}

func TestCeilingIsNotFatal(t *testing.T) {
	cfg := config.DefaultConfig()
	s := newTestSim(t, cfg)
	mustStart(t, s)
	s.field.Reset()

	s.physics.Place(Body{X: cfg.Body.SpawnX, Y: 0, Velocity: -200})
	res := s.Tick(tick)

	if res.Impact != ImpactCeiling || res.Crashed {
		t.Fatalf("Tick() = %+v, expected a ceiling bounce", res)
	}
	if s.State().Status != StatusPlaying {
		t.Errorf("status = %v, expected PLAYING", s.State().Status)
	}
	b := s.physics.Body()
	if b.Y != s.physics.MinY() || b.Velocity <= 0 {
		t.Errorf("body after bounce: %+v", b)
	}
}

func TestObstacleCrash(t *testing.T) {
	cfg := config.DefaultConfig()
	s := newTestSim(t, cfg)
	mustStart(t, s)
	s.field.Reset()
	s.field.place(Obstacle{X: 70, TopHeight: 300, GapHeight: 150, Width: 60})

	res := s.Tick(tick)
	if !res.Crashed || res.Status != StatusGameOver {
		t.Fatalf("Tick() = %+v, expected an obstacle crash", res)
	}
	if res.Impact != ImpactNone {
		t.Errorf("impact = %v, expected none for an obstacle hit", res.Impact)
	}
}

func TestDistanceScoring(t *testing.T) {
	s := newTestSim(t, exactConfig())
	mustStart(t, s)

	for i := 0; i < 64; i++ {
		hover(s)
		if res := s.Tick(tick); res.Crashed {
			t.Fatalf("crashed at tick %d", i)
		}
	}

	snap := s.Snapshot()
	if snap.Distance != 256 {
		t.Errorf("distance = %v, expected 256", snap.Distance)
	}
	if snap.Score != 4 {
		t.Errorf("score = %d, expected 4", snap.Score)
	}
}

func TestObstacleBonus(t *testing.T) {
	cfg := exactConfig()
	s := newTestSim(t, cfg)
	mustStart(t, s)
	s.field.Reset()
	// Trailing edge at 60; after one tick it is at 56, behind the hitbox.
	s.field.place(Obstacle{X: 0, TopHeight: 100, GapHeight: 150, Width: 60})

	res := s.Tick(tick)
	if res.Crashed {
		t.Fatal("unexpected crash")
	}
	if res.Cleared != 1 {
		t.Errorf("cleared = %d, expected 1", res.Cleared)
	}
	if res.Score != cfg.Scoring.ObstacleBonus {
		t.Errorf("score = %d, expected %d", res.Score, cfg.Scoring.ObstacleBonus)
	}

	if res := s.Tick(tick); res.Cleared != 0 {
		t.Error("an obstacle must only be cleared once")
	}
}

func TestScoreMonotonicAndResets(t *testing.T) {
	cfg := config.DefaultConfig()
	s := newTestSim(t, cfg)
	mustStart(t, s)

	prev := 0
	for i := 0; i < 5000 && s.State().Status == StatusPlaying; i++ {
		hover(s)
		s.Tick(tick)
		if sc := s.State().Score; sc < prev {
			t.Fatalf("score decreased from %d to %d", prev, sc)
		} else {
			prev = sc
		}
		if m := s.Snapshot().SpeedMultiplier; m < 1 || m > cfg.Speed.MaxMultiplier() {
			t.Fatalf("multiplier %v out of range", m)
		}
	}
	if s.State().Status == StatusPlaying {
		s.physics.Place(Body{X: cfg.Body.SpawnX, Y: cfg.World.GroundLine()})
		s.Tick(tick)
	}

	if err := s.Restart(); err != nil {
		t.Fatal(err)
	}
	mustStart(t, s)
	snap := s.Snapshot()
	if snap.Score != 0 || snap.Distance != 0 {
		t.Errorf("new run starts with score %d distance %v", snap.Score, snap.Distance)
	}
	if snap.Body.X != cfg.Body.SpawnX {
		t.Errorf("body x = %v, expected spawn", snap.Body.X)
	}
}

func TestSpeedFollowsScore(t *testing.T) {
	cfg := config.DefaultConfig()
	s := newTestSim(t, cfg)
	mustStart(t, s)
	s.state.AddScore(40)

	s.Tick(tick)
	want := cfg.Speed.Multiplier(40)
	if got := s.Snapshot().SpeedMultiplier; got != want {
		t.Errorf("multiplier = %v, expected %v", got, want)
	}
}

func TestPause(t *testing.T) {
	s := newTestSim(t, config.DefaultConfig())
	if s.TogglePause() {
		t.Error("pause should be ignored in START")
	}
	mustStart(t, s)

	if !s.TogglePause() || !s.Paused() {
		t.Fatal("TogglePause() should pause a run")
	}
	before := s.Snapshot()
	s.Tick(tick)
	after := s.Snapshot()
	if after.Body != before.Body || after.Distance != before.Distance {
		t.Error("paused run should not advance")
	}
	if !after.Paused {
		t.Error("snapshot should report the pause")
	}

	if s.TogglePause() {
		t.Fatal("second TogglePause() should resume")
	}
	s.Tick(tick)
	if s.Snapshot().Distance == before.Distance {
		t.Error("resumed run should advance")
	}
}

func TestFrameClampsDelta(t *testing.T) {
	cfg := config.DefaultConfig()
	s := newTestSim(t, cfg)
	mustStart(t, s)
	s.field.Reset()

	t0 := time.Unix(500, 0)
	s.Frame(t0)
	if x := s.physics.Body().X; x != cfg.Body.SpawnX {
		t.Errorf("first frame moved the body to %v", x)
	}

	s.Frame(t0.Add(10 * time.Second))
	want := cfg.Body.SpawnX + cfg.Physics.ForwardSpeed*cfg.Timing.MaxDelta
	if x := s.physics.Body().X; math.Abs(x-want) > 1e-9 {
		t.Errorf("x after a stall = %v, expected %v", x, want)
	}
}

func TestTransitionsRejected(t *testing.T) {
	s := newTestSim(t, config.DefaultConfig())
	if err := s.Restart(); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("Restart() in START = %v", err)
	}
	mustStart(t, s)
	if err := s.Start(); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("Start() while PLAYING = %v", err)
	}
}

func TestSetConfigAppliesOnNextRun(t *testing.T) {
	cfg := config.DefaultConfig()
	s := newTestSim(t, cfg)
	mustStart(t, s)

	next := config.DefaultConfig()
	next.Physics.Gravity = 2000
	if err := s.SetConfig(next); err != nil {
		t.Fatal(err)
	}
	if s.Config().Physics.Gravity != cfg.Physics.Gravity {
		t.Error("config must not change mid-run")
	}

	bad := config.DefaultConfig()
	bad.World.Width = 0
	if err := s.SetConfig(bad); !errors.Is(err, config.ErrInvalid) {
		t.Errorf("SetConfig(invalid) = %v", err)
	}

	s.physics.Place(Body{X: cfg.Body.SpawnX, Y: cfg.World.GroundLine()})
	s.Tick(tick)
	_ = s.Restart()
	mustStart(t, s)
	if s.Config().Physics.Gravity != 2000 {
		t.Errorf("staged config not applied, gravity = %v", s.Config().Physics.Gravity)
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	s := newTestSim(t, config.DefaultConfig())
	mustStart(t, s)

	snap := s.Snapshot()
	if len(snap.Obstacles) != s.field.ActiveCount() {
		t.Errorf("snapshot has %d obstacles, field has %d active", len(snap.Obstacles), s.field.ActiveCount())
	}
	snap.Obstacles[0].X = -999
	if s.Snapshot().Obstacles[0].X == -999 {
		t.Error("mutating the snapshot changed the simulation")
	}
	for _, o := range snap.Obstacles {
		if o.GapStart != o.TopHeight {
			t.Errorf("gap start %v differs from top height %v", o.GapStart, o.TopHeight)
		}
	}
}

func TestThrustInput(t *testing.T) {
	s := newTestSim(t, config.DefaultConfig())
	s.Press()
	if !s.Thrusting() {
		t.Error("Press() should hold thrust")
	}
	s.Release()
	if s.Thrusting() {
		t.Error("Release() should drop thrust")
	}
}

func TestBrokenStoreDoesNotStopPlay(t *testing.T) {
	cfg := config.DefaultConfig()
	s := newTestSim(t, cfg, WithStore(brokenStore{}))
	mustStart(t, s)
	s.state.AddScore(3)

	s.physics.Place(Body{X: cfg.Body.SpawnX, Y: cfg.World.GroundLine()})
	if res := s.Tick(tick); !res.Crashed {
		t.Fatal("expected crash")
	}
	if st := s.State(); st.BestScore != 3 || st.LastScore != 3 {
		t.Errorf("in-memory scores = %+v", st)
	}
}
