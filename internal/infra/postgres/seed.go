package postgres

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	"trivia-game-service/internal/domain"
)

type questionRow struct {
	bun.BaseModel `bun:"table:questions"`

	ID         string   `bun:"id,pk"`
	Text       string   `bun:"text,notnull"`
	Options    []string `bun:"options,type:jsonb,notnull"`
	Answer     string   `bun:"answer,notnull"`
	Difficulty string   `bun:"difficulty,notnull"`
	Category   string   `bun:"category,notnull"`
}

// SeedQuestions upserts questions into the questions table.
func SeedQuestions(ctx context.Context, db *bun.DB, questions []domain.Question) error {
	if len(questions) == 0 {
		return nil
	}
	rows := make([]questionRow, 0, len(questions))
	for _, q := range questions {
		if err := q.Validate(); err != nil {
			return err
		}
		rows = append(rows, questionRow{
			ID:         q.ID,
			Text:       q.Text,
			Options:    q.Options,
			Answer:     q.Answer,
			Difficulty: string(q.Difficulty),
			Category:   q.Category,
		})
	}

	_, err := db.NewInsert().
		Model(&rows).
		On("CONFLICT (id) DO UPDATE").
		Set("text = EXCLUDED.text").
		Set("options = EXCLUDED.options").
		Set("answer = EXCLUDED.answer").
		Set("difficulty = EXCLUDED.difficulty").
		Set("category = EXCLUDED.category").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("seed questions: %w", err)
	}
	return nil
}
