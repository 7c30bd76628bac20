package copter

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
)

// ErrInvalidTransition is returned when a command is not legal in the
// current status.
var ErrInvalidTransition = errors.New("invalid state transition")

// Status is the phase of the game.
type Status int

const (
	StatusStart Status = iota
	StatusPlaying
	StatusGameOver
)

func (s Status) String() string {
	switch s {
	case StatusStart:
		return "START"
	case StatusPlaying:
		return "PLAYING"
	case StatusGameOver:
		return "GAME_OVER"
	default:
		return "UNKNOWN"
	}
}

// ScoreStore persists the best and last score and whether the player has
// played before. Implementations may fail; the state machine logs failures
// and carries on with in-memory values.
type ScoreStore interface {
	LoadBestScore() (int, error)
	SaveBestScore(score int) error
	LoadLastScore() (int, error)
	SaveLastScore(score int) error
	LoadHasPlayed() (bool, error)
	SaveHasPlayed(played bool) error
}

// GameState is the state machine's view of the session.
type GameState struct {
	Status          Status
	Score           int
	BestScore       int
	LastScore       int
	HasPlayedBefore bool
}

// StateMachine sequences START -> PLAYING -> GAME_OVER -> START and owns
// the score. Transitions are the only way the status changes.
type StateMachine struct {
	state  GameState
	store  ScoreStore
	logger *log.Logger
}

// NewStateMachine creates a state machine in START, seeded from store.
// A nil store keeps everything in memory.
func NewStateMachine(store ScoreStore, logger *log.Logger) *StateMachine {
	m := &StateMachine{
		store:  store,
		logger: orDiscard(logger),
	}
	m.load()
	return m
}

func (m *StateMachine) load() {
	if m.store == nil {
		return
	}
	if best, err := m.store.LoadBestScore(); err != nil {
		m.logger.Warn("could not load best score", "error", err)
	} else if best > 0 {
		m.state.BestScore = best
	}
	if last, err := m.store.LoadLastScore(); err != nil {
		m.logger.Warn("could not load last score", "error", err)
	} else if last > 0 {
		m.state.LastScore = last
	}
	if played, err := m.store.LoadHasPlayed(); err != nil {
		m.logger.Warn("could not load played flag", "error", err)
	} else {
		m.state.HasPlayedBefore = played
	}
}

// State returns a copy of the current state.
func (m *StateMachine) State() GameState {
	return m.state
}

// Status returns the current phase.
func (m *StateMachine) Status() Status {
	return m.state.Status
}

// Start moves START -> PLAYING and zeroes the score.
func (m *StateMachine) Start() error {
	if err := m.expect(StatusStart, "start"); err != nil {
		return err
	}
	m.state.Status = StatusPlaying
	m.state.Score = 0

	if !m.state.HasPlayedBefore {
		m.state.HasPlayedBefore = true
		if m.store != nil {
			if err := m.store.SaveHasPlayed(true); err != nil {
				m.logger.Warn("could not save played flag", "error", err)
			}
		}
	}
	m.logger.Debug("run started", "best", m.state.BestScore)
	return nil
}

// GameOver moves PLAYING -> GAME_OVER and commits last and best score.
func (m *StateMachine) GameOver() error {
	if err := m.expect(StatusPlaying, "game over"); err != nil {
		return err
	}
	m.state.Status = StatusGameOver
	m.state.LastScore = m.state.Score
	newBest := m.state.Score > m.state.BestScore
	if newBest {
		m.state.BestScore = m.state.Score
	}

	if m.store != nil {
		if err := m.store.SaveLastScore(m.state.LastScore); err != nil {
			m.logger.Warn("could not save last score", "error", err)
		}
		if newBest {
			if err := m.store.SaveBestScore(m.state.BestScore); err != nil {
				m.logger.Warn("could not save best score", "error", err)
			}
		}
	}
	m.logger.Info("run over", "score", m.state.Score, "best", m.state.BestScore, "new_best", newBest)
	return nil
}

// Restart moves GAME_OVER -> START.
func (m *StateMachine) Restart() error {
	if err := m.expect(StatusGameOver, "restart"); err != nil {
		return err
	}
	m.state.Status = StatusStart
	return nil
}

// AddScore awards points while PLAYING. Non-positive amounts are ignored, so
// the score never decreases.
func (m *StateMachine) AddScore(points int) {
	if m.state.Status != StatusPlaying || points <= 0 {
		return
	}
	m.state.Score += points
}

func (m *StateMachine) expect(want Status, command string) error {
	if m.state.Status != want {
		return fmt.Errorf("%s from %s: %w", command, m.state.Status, ErrInvalidTransition)
	}
	return nil
}
