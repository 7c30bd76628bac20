package copter

import (
	"errors"
	"testing"

	"github.com/vovakirdan/tui-copter/internal/config"
)

// scriptedSource replays a fixed sequence of samples, cycling at the end.
type scriptedSource struct {
	vals []float64
	i    int
}

func (s *scriptedSource) Float64() float64 {
	v := s.vals[s.i%len(s.vals)]
	s.i++
	return v
}

// memStore is an in-memory ScoreStore that records saves.
type memStore struct {
	best, last int
	played     bool
	saves      int
}

func (m *memStore) LoadBestScore() (int, error)     { return m.best, nil }
func (m *memStore) SaveBestScore(score int) error   { m.best = score; m.saves++; return nil }
func (m *memStore) LoadLastScore() (int, error)     { return m.last, nil }
func (m *memStore) SaveLastScore(score int) error   { m.last = score; m.saves++; return nil }
func (m *memStore) LoadHasPlayed() (bool, error)    { return m.played, nil }
func (m *memStore) SaveHasPlayed(played bool) error { m.played = played; m.saves++; return nil }

// brokenStore fails every call.
type brokenStore struct{}

var errBroken = errors.New("storage unavailable")

func (brokenStore) LoadBestScore() (int, error)  { return 0, errBroken }
func (brokenStore) SaveBestScore(int) error      { return errBroken }
func (brokenStore) LoadLastScore() (int, error)  { return 0, errBroken }
func (brokenStore) SaveLastScore(int) error      { return errBroken }
func (brokenStore) LoadHasPlayed() (bool, error) { return false, errBroken }
func (brokenStore) SaveHasPlayed(bool) error     { return errBroken }

func newTestSim(t *testing.T, cfg config.Config, opts ...Option) *Simulator {
	t.Helper()
	opts = append([]Option{WithSeed(42)}, opts...)
	s, err := New(cfg, opts...)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	return s
}

func mustStart(t *testing.T, s *Simulator) {
	t.Helper()
	if err := s.Start(); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
}
