package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"

	"trivia-game-service/internal/domain"
)

// QuestionLoader loads question pools from Postgres; options are stored as JSONB.
type QuestionLoader struct {
	pool *pgxpool.Pool
}

func NewQuestionLoader(pool *pgxpool.Pool) *QuestionLoader {
	return &QuestionLoader{pool: pool}
}

func (l *QuestionLoader) LoadQuestions(ctx context.Context, difficulty domain.Difficulty) ([]domain.Question, error) {
	rows, err := l.pool.Query(ctx, `
SELECT id, text, options, answer, difficulty, category
FROM questions
WHERE $1::text = 'any' OR difficulty = $1::text
ORDER BY id`, string(difficulty))
	if err != nil {
		return nil, fmt.Errorf("load questions: %w", err)
	}
	defer rows.Close()

	var questions []domain.Question
	for rows.Next() {
		var (
			q          domain.Question
			rawOptions []byte
			diff       string
		)
		if err := rows.Scan(&q.ID, &q.Text, &rawOptions, &q.Answer, &diff, &q.Category); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		if err := json.Unmarshal(rawOptions, &q.Options); err != nil {
			return nil, fmt.Errorf("unmarshal options of %s: %w", q.ID, err)
		}
		q.Difficulty = domain.Difficulty(diff)
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load questions: %w", err)
	}
	return questions, nil
}
