package memory

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"trivia-game-service/internal/domain"
)

// QuestionRepository caches question pools per difficulty with TTL to avoid repeated DB hits.
type QuestionRepository struct {
	loader QuestionLoader
	ttl    time.Duration
	clock  func() time.Time
	sf     singleflight.Group

	rndMu sync.Mutex
	rnd   *rand.Rand

	mu    sync.RWMutex
	cache map[domain.Difficulty]cachedPool
}

type cachedPool struct {
	questions []domain.Question
	expiresAt time.Time
}

func NewQuestionRepository(loader QuestionLoader, ttl time.Duration) *QuestionRepository {
	return &QuestionRepository{
		loader: loader,
		ttl:    ttl,
		clock:  time.Now,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
		cache:  make(map[domain.Difficulty]cachedPool),
	}
}

// Fetch draws minimumCount questions from the cached pool for difficulty.
func (r *QuestionRepository) Fetch(ctx context.Context, difficulty domain.Difficulty, minimumCount int) ([]domain.Question, error) {
	pool, err := r.pool(ctx, difficulty)
	if err != nil {
		return nil, err
	}
	r.rndMu.Lock()
	defer r.rndMu.Unlock()
	return domain.Sample(pool, difficulty, minimumCount, r.rnd)
}

func (r *QuestionRepository) pool(ctx context.Context, difficulty domain.Difficulty) ([]domain.Question, error) {
	now := r.clock()

	r.mu.RLock()
	if entry, ok := r.cache[difficulty]; ok && entry.expiresAt.After(now) {
		r.mu.RUnlock()
		return entry.questions, nil
	}
	r.mu.RUnlock()

	result, err, _ := r.sf.Do(string(difficulty), func() (interface{}, error) {
		now := r.clock()
		r.mu.RLock()
		if entry, ok := r.cache[difficulty]; ok && entry.expiresAt.After(now) {
			r.mu.RUnlock()
			return entry.questions, nil
		}
		r.mu.RUnlock()

		questions, err := r.loader.LoadQuestions(ctx, difficulty)
		if err != nil {
			return nil, err
		}

		r.mu.Lock()
		r.cache[difficulty] = cachedPool{
			questions: questions,
			expiresAt: now.Add(r.ttlWithJitter()),
		}
		r.mu.Unlock()
		return questions, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.Question), nil
}

func (r *QuestionRepository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	// add up to 10% jitter to spread expirations
	jitterMax := int64(r.ttl) / 10
	r.rndMu.Lock()
	defer r.rndMu.Unlock()
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}
