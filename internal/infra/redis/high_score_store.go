package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"trivia-game-service/internal/domain"
)

// recordScript writes the hash only when ARGV[1] beats the stored value.
var recordScript = redis.NewScript(`
local current = redis.call('HGET', KEYS[1], 'value')
if current and tonumber(current) >= tonumber(ARGV[1]) then
  return 0
end
redis.call('HSET', KEYS[1], 'value', ARGV[1], 'date', ARGV[2])
return 1
`)

// HighScoreStore keeps one hash per (mode, difficulty):
// HSET trivia:highscore:{mode}:{difficulty} value {n} date {RFC3339}
type HighScoreStore struct {
	client *redis.Client
}

func NewHighScoreStore(client *redis.Client) *HighScoreStore {
	return &HighScoreStore{client: client}
}

func (s *HighScoreStore) Get(ctx context.Context, mode domain.Mode, difficulty domain.Difficulty) (domain.HighScore, bool, error) {
	fields, err := s.client.HGetAll(ctx, s.key(mode, difficulty)).Result()
	if err != nil {
		return domain.HighScore{}, false, fmt.Errorf("get high score: %w", err)
	}
	if len(fields) == 0 {
		return domain.HighScore{}, false, nil
	}

	value, err := strconv.Atoi(fields["value"])
	if err != nil {
		return domain.HighScore{}, false, fmt.Errorf("parse high score value: %w", err)
	}
	date, err := time.Parse(time.RFC3339Nano, fields["date"])
	if err != nil {
		return domain.HighScore{}, false, fmt.Errorf("parse high score date: %w", err)
	}
	return domain.HighScore{Value: value, Date: date}, true, nil
}

func (s *HighScoreStore) Record(ctx context.Context, mode domain.Mode, difficulty domain.Difficulty, hs domain.HighScore) (bool, error) {
	written, err := recordScript.Run(ctx, s.client,
		[]string{s.key(mode, difficulty)},
		hs.Value, hs.Date.UTC().Format(time.RFC3339Nano),
	).Int()
	if err != nil {
		return false, fmt.Errorf("record high score: %w", err)
	}
	return written == 1, nil
}

func (s *HighScoreStore) key(mode domain.Mode, difficulty domain.Difficulty) string {
	return "trivia:highscore:" + string(mode) + ":" + string(difficulty)
}
