package domain

import (
	"errors"
	"math/rand"
	"testing"
)

func TestQuestionValidate(t *testing.T) {
	tests := map[string]struct {
		q       Question
		wantErr bool
	}{
		"two options":        {q: Question{ID: "a", Options: []string{"x", "y"}, Answer: "y"}},
		"four options":       {q: Question{ID: "b", Options: []string{"w", "x", "y", "z"}, Answer: "w"}},
		"one option":         {q: Question{ID: "c", Options: []string{"x"}, Answer: "x"}, wantErr: true},
		"five options":       {q: Question{ID: "d", Options: []string{"v", "w", "x", "y", "z"}, Answer: "v"}, wantErr: true},
		"answer not offered": {q: Question{ID: "e", Options: []string{"x", "y"}, Answer: "z"}, wantErr: true},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			err := tt.q.Validate()
			if tt.wantErr != errors.Is(err, ErrInvalidQuestion) {
				t.Fatalf("wantErr=%v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestNewGameViewHidesAnswerUntilAnswered(t *testing.T) {
	state := SessionState{
		Settings:  GameSettings{Mode: ModeClassic, Difficulty: DifficultyAny},
		Questions: []Question{{ID: "q1", Text: "2+2?", Options: []string{"3", "4"}, Answer: "4"}},
		Lives:     3,
	}

	v := NewGameView("s1", state)
	if v.Question == nil || v.Question.Text != "2+2?" {
		t.Fatalf("expected current question, got %+v", v.Question)
	}
	if v.CorrectAnswer != "" {
		t.Fatalf("answer leaked before answering")
	}

	state.HasAnswered = true
	if v := NewGameView("s1", state); v.CorrectAnswer != "4" {
		t.Fatalf("expected answer revealed, got %q", v.CorrectAnswer)
	}

	state.Index = 1
	state.IsGameOver = true
	v = NewGameView("s1", state)
	if v.Question != nil || v.Status != StatusGameOver {
		t.Fatalf("expected finished view, got %+v", v)
	}
}

func TestSample(t *testing.T) {
	pool := []Question{
		{ID: "e1", Options: []string{"a", "b", "c"}, Answer: "a", Difficulty: DifficultyEasy},
		{ID: "e2", Options: []string{"a", "b"}, Answer: "b", Difficulty: DifficultyEasy},
		{ID: "h1", Options: []string{"a", "b"}, Answer: "a", Difficulty: DifficultyHard},
	}
	rnd := rand.New(rand.NewSource(42))

	got, err := Sample(pool, DifficultyEasy, 2, rnd)
	if err != nil {
		t.Fatalf("sample: %v", err)
	}
	for _, q := range got {
		if q.Difficulty != DifficultyEasy {
			t.Fatalf("unexpected difficulty %s", q.Difficulty)
		}
		if err := q.Validate(); err != nil {
			t.Fatalf("shuffling broke question: %v", err)
		}
	}
	if pool[0].Options[0] != "a" || pool[0].Options[2] != "c" {
		t.Fatalf("sample must not reorder the pool's options: %v", pool[0].Options)
	}

	if _, err := Sample(pool, DifficultyHard, 2, rnd); !errors.Is(err, ErrInsufficientQuestions) {
		t.Fatalf("expected insufficient questions, got %v", err)
	}
	if got, err := Sample(pool, DifficultyAny, 3, rnd); err != nil || len(got) != 3 {
		t.Fatalf("expected all 3 questions for any, got %d %v", len(got), err)
	}
}
