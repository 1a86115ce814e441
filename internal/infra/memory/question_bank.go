package memory

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"trivia-game-service/internal/domain"
)

// QuestionLoader fetches the question pool for a difficulty from a backing store.
type QuestionLoader interface {
	LoadQuestions(ctx context.Context, difficulty domain.Difficulty) ([]domain.Question, error)
}

// QuestionBank is a fixed in-memory pool (useful for tests/demos and the terminal game).
type QuestionBank struct {
	questions []domain.Question

	mu  sync.Mutex
	rnd *rand.Rand
}

func NewQuestionBank(questions []domain.Question) *QuestionBank {
	return NewQuestionBankWithRand(questions, rand.New(rand.NewSource(time.Now().UnixNano())))
}

// NewQuestionBankWithRand allows deterministic draws in tests.
func NewQuestionBankWithRand(questions []domain.Question, rnd *rand.Rand) *QuestionBank {
	return &QuestionBank{questions: questions, rnd: rnd}
}

func (b *QuestionBank) LoadQuestions(_ context.Context, difficulty domain.Difficulty) ([]domain.Question, error) {
	out := make([]domain.Question, 0, len(b.questions))
	for _, q := range b.questions {
		if difficulty.Matches(q.Difficulty) {
			out = append(out, q)
		}
	}
	return out, nil
}

// Fetch draws minimumCount random questions matching difficulty.
func (b *QuestionBank) Fetch(_ context.Context, difficulty domain.Difficulty, minimumCount int) ([]domain.Question, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return domain.Sample(b.questions, difficulty, minimumCount, b.rnd)
}
