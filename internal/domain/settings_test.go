package domain

import (
	"errors"
	"testing"
)

func TestGameSettingsQuestionCount(t *testing.T) {
	s := GameSettings{Mode: ModeTimeAttack, Difficulty: DifficultyAny}
	if got := s.QuestionCount(); got != 15 {
		t.Fatalf("expected time attack default 15, got %d", got)
	}

	n := 4
	s.NumberOfQuestions = &n
	if got := s.QuestionCount(); got != 4 {
		t.Fatalf("expected override 4, got %d", got)
	}
}

func TestGameSettingsValidate(t *testing.T) {
	zero, tooMany, ok := 0, MaxQuestionCount+1, 5
	tests := map[string]struct {
		settings GameSettings
		wantErr  bool
	}{
		"defaults":           {settings: GameSettings{Mode: ModeClassic, Difficulty: DifficultyAny}},
		"explicit count":     {settings: GameSettings{Mode: ModePractice, Difficulty: DifficultyHard, NumberOfQuestions: &ok}},
		"unknown mode":       {settings: GameSettings{Mode: "blitz", Difficulty: DifficultyAny}, wantErr: true},
		"unknown difficulty": {settings: GameSettings{Mode: ModeClassic, Difficulty: "extreme"}, wantErr: true},
		"zero questions":     {settings: GameSettings{Mode: ModeClassic, Difficulty: DifficultyAny, NumberOfQuestions: &zero}, wantErr: true},
		"too many questions": {settings: GameSettings{Mode: ModeClassic, Difficulty: DifficultyAny, NumberOfQuestions: &tooMany}, wantErr: true},
		"empty difficulty":   {settings: GameSettings{Mode: ModeClassic}, wantErr: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			err := tt.settings.Validate()
			if tt.wantErr && !errors.Is(err, ErrInvalidSettings) {
				t.Fatalf("expected ErrInvalidSettings, got %v", err)
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestParseModeAndDifficulty(t *testing.T) {
	if m, err := ParseMode(" Time_Attack "); err != nil || m != ModeTimeAttack {
		t.Fatalf("parse mode: %v %v", m, err)
	}
	if m, err := ParseMode(""); err != nil || m != ModeClassic {
		t.Fatalf("empty mode should default to classic: %v %v", m, err)
	}
	if _, err := ParseMode("blitz"); !errors.Is(err, ErrInvalidSettings) {
		t.Fatalf("expected invalid mode, got %v", err)
	}
	if d, err := ParseDifficulty("HARD"); err != nil || d != DifficultyHard {
		t.Fatalf("parse difficulty: %v %v", d, err)
	}
	if d, err := ParseDifficulty(""); err != nil || d != DifficultyAny {
		t.Fatalf("empty difficulty should default to any: %v %v", d, err)
	}
	if _, err := ParseDifficulty("extreme"); !errors.Is(err, ErrInvalidSettings) {
		t.Fatalf("expected invalid difficulty, got %v", err)
	}
}

func TestModeRules(t *testing.T) {
	if _, ok := ModeClassic.TimePerQuestion(); ok {
		t.Fatalf("classic must not have a time limit")
	}
	if limit, ok := ModeTimeAttack.TimePerQuestion(); !ok || limit != 10 {
		t.Fatalf("expected 10s time attack limit, got %d %v", limit, ok)
	}
	if r, _ := ModePractice.Rules(); r.TracksLives {
		t.Fatalf("practice must not track lives")
	}
	for _, m := range Modes {
		if m.Title() == "" {
			t.Fatalf("mode %s has no title", m)
		}
	}
}
