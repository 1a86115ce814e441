package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	"trivia-game-service/internal/domain"
)

type highScoreRow struct {
	bun.BaseModel `bun:"table:high_scores"`

	Mode       string    `bun:"mode,pk"`
	Difficulty string    `bun:"difficulty,pk"`
	Value      int       `bun:"value,notnull"`
	AchievedAt time.Time `bun:"achieved_at,notnull"`
}

// HighScoreStore persists high scores in the high_scores table.
type HighScoreStore struct {
	db *bun.DB
}

func NewHighScoreStore(db *bun.DB) *HighScoreStore {
	return &HighScoreStore{db: db}
}

func (s *HighScoreStore) Get(ctx context.Context, mode domain.Mode, difficulty domain.Difficulty) (domain.HighScore, bool, error) {
	var row highScoreRow
	err := s.db.NewSelect().
		Model(&row).
		Where("mode = ?", string(mode)).
		Where("difficulty = ?", string(difficulty)).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.HighScore{}, false, nil
	}
	if err != nil {
		return domain.HighScore{}, false, fmt.Errorf("get high score: %w", err)
	}
	return domain.HighScore{Value: row.Value, Date: row.AchievedAt}, true, nil
}

// Record upserts hs, leaving an equal or higher stored value untouched.
func (s *HighScoreStore) Record(ctx context.Context, mode domain.Mode, difficulty domain.Difficulty, hs domain.HighScore) (bool, error) {
	row := &highScoreRow{
		Mode:       string(mode),
		Difficulty: string(difficulty),
		Value:      hs.Value,
		AchievedAt: hs.Date.UTC(),
	}
	res, err := s.db.NewInsert().
		Model(row).
		On("CONFLICT (mode, difficulty) DO UPDATE").
		Set("value = EXCLUDED.value").
		Set("achieved_at = EXCLUDED.achieved_at").
		Where("?TableAlias.value < EXCLUDED.value").
		Exec(ctx)
	if err != nil {
		return false, fmt.Errorf("record high score: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("record high score: %w", err)
	}
	return n > 0, nil
}
