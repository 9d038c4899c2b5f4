package memory

import (
	"context"
	"sync"
)

// ScoreKV keeps the serialized leaderboard in process memory. It backs the
// store when no Redis is configured; scores then last only for the process.
type ScoreKV struct {
	mu    sync.RWMutex
	data  []byte
	found bool
}

func NewScoreKV() *ScoreKV {
	return &ScoreKV{}
}

func (s *ScoreKV) Get(_ context.Context) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.found {
		return nil, false, nil
	}
	return append([]byte(nil), s.data...), true, nil
}

func (s *ScoreKV) Set(_ context.Context, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = append([]byte(nil), data...)
	s.found = true
	return nil
}

func (s *ScoreKV) Delete(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = nil
	s.found = false
	return nil
}
