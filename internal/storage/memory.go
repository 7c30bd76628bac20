package storage

import (
	"sort"
	"sync"
	"time"
)

// Memory keeps the record and history in process memory. It backs a session
// when no database is configured or the database cannot be opened.
type Memory struct {
	mu      sync.Mutex
	best    int
	last    int
	played  bool
	history []ScoreEntry
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) LoadBestScore() (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.best, nil
}

func (m *Memory) SaveBestScore(score int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.best = score
	return nil
}

func (m *Memory) LoadLastScore() (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.last, nil
}

func (m *Memory) SaveLastScore(score int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.last = score
	return nil
}

func (m *Memory) LoadHasPlayed() (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.played, nil
}

func (m *Memory) SaveHasPlayed(played bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.played = played
	return nil
}

// SaveScore appends a run to the history.
func (m *Memory) SaveScore(mode string, score int, distance float64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := int64(len(m.history) + 1)
	m.history = append(m.history, ScoreEntry{
		ID:        id,
		Mode:      mode,
		Score:     score,
		Distance:  distance,
		CreatedAt: time.Now(),
	})
	return id, nil
}

// TopScores mirrors Store.TopScores.
func (m *Memory) TopScores(mode string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []ScoreEntry
	for _, e := range m.history {
		if mode == "" || e.Mode == mode {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
