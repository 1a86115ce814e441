package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"trivia-game-service/internal/domain"
)

// QuestionLoader fetches the question pool for a difficulty from a backing store.
type QuestionLoader interface {
	LoadQuestions(ctx context.Context, difficulty domain.Difficulty) ([]domain.Question, error)
}

// QuestionRepository caches question pools in Redis and falls back to a loader on cache miss.
// Pools are stored as JSON arrays: SET trivia:questions:{difficulty} [...]
type QuestionRepository struct {
	client *redis.Client
	loader QuestionLoader
	ttl    time.Duration
	sf     singleflight.Group

	mu  sync.Mutex
	rnd *rand.Rand
}

func NewQuestionRepository(client *redis.Client, loader QuestionLoader, ttl time.Duration) *QuestionRepository {
	return &QuestionRepository{
		client: client,
		loader: loader,
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Fetch draws minimumCount questions from the cached pool for difficulty.
func (r *QuestionRepository) Fetch(ctx context.Context, difficulty domain.Difficulty, minimumCount int) ([]domain.Question, error) {
	pool, err := r.pool(ctx, difficulty)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return domain.Sample(pool, difficulty, minimumCount, r.rnd)
}

func (r *QuestionRepository) pool(ctx context.Context, difficulty domain.Difficulty) ([]domain.Question, error) {
	key := r.poolKey(difficulty)

	if pool, ok := r.cached(ctx, key); ok {
		return pool, nil
	}

	result, err, _ := r.sf.Do(key, func() (interface{}, error) {
		// Re-check cache in case another goroutine filled it.
		if pool, ok := r.cached(ctx, key); ok {
			return pool, nil
		}

		pool, err := r.loader.LoadQuestions(ctx, difficulty)
		if err != nil {
			return nil, err
		}

		raw, err := json.Marshal(pool)
		if err != nil {
			return nil, fmt.Errorf("marshal question pool: %w", err)
		}
		// best-effort: a failed write only costs another load
		_ = r.client.Set(ctx, key, raw, r.ttlWithJitter()).Err()
		return pool, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.Question), nil
}

func (r *QuestionRepository) cached(ctx context.Context, key string) ([]domain.Question, bool) {
	raw, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	var pool []domain.Question
	if err := json.Unmarshal(raw, &pool); err != nil || len(pool) == 0 {
		return nil, false
	}
	return pool, true
}

func (r *QuestionRepository) poolKey(difficulty domain.Difficulty) string {
	return "trivia:questions:" + string(difficulty)
}

func (r *QuestionRepository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	jitterMax := int64(r.ttl) / 10
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}
