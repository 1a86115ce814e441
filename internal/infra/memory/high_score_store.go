package memory

import (
	"context"
	"sync"

	"trivia-game-service/internal/domain"
)

type highScoreKey struct {
	mode       domain.Mode
	difficulty domain.Difficulty
}

// HighScoreStore keeps high scores in process memory.
type HighScoreStore struct {
	mu     sync.RWMutex
	scores map[highScoreKey]domain.HighScore
}

func NewHighScoreStore() *HighScoreStore {
	return &HighScoreStore{scores: make(map[highScoreKey]domain.HighScore)}
}

func (s *HighScoreStore) Get(_ context.Context, mode domain.Mode, difficulty domain.Difficulty) (domain.HighScore, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	hs, ok := s.scores[highScoreKey{mode, difficulty}]
	return hs, ok, nil
}

func (s *HighScoreStore) Record(_ context.Context, mode domain.Mode, difficulty domain.Difficulty, hs domain.HighScore) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := highScoreKey{mode, difficulty}
	if current, ok := s.scores[key]; ok && hs.Value <= current.Value {
		return false, nil
	}
	s.scores[key] = hs
	return true, nil
}
