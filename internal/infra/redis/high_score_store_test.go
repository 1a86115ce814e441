package redis

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"

	"trivia-game-service/internal/domain"
)

func TestHighScoreStoreRoundTrip(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	ctx := context.Background()
	store := NewHighScoreStore(newClient(mr))

	if _, ok, err := store.Get(ctx, domain.ModeClassic, domain.DifficultyEasy); err != nil || ok {
		t.Fatalf("expected no record, got ok=%v err=%v", ok, err)
	}

	want := domain.HighScore{Value: 9, Date: time.Date(2025, 8, 13, 18, 30, 0, 0, time.UTC)}
	if written, err := store.Record(ctx, domain.ModeClassic, domain.DifficultyEasy, want); err != nil || !written {
		t.Fatalf("record: written=%v err=%v", written, err)
	}
	if got := mr.HGet("trivia:highscore:classic:easy", "value"); got != "9" {
		t.Fatalf("expected value field 9, got %q", got)
	}

	got, ok, err := store.Get(ctx, domain.ModeClassic, domain.DifficultyEasy)
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if got.Value != want.Value || !got.Date.Equal(want.Date) {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestHighScoreStoreRejectsCorruptRecord(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	mr.HSet("trivia:highscore:practice:any", "value", "lots", "date", "yesterday")
	store := NewHighScoreStore(newClient(mr))
	if _, _, err := store.Get(context.Background(), domain.ModePractice, domain.DifficultyAny); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestHighScoreStoreRecordsOnlyImprovements(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	ctx := context.Background()
	store := NewHighScoreStore(newClient(mr))
	date := time.Date(2025, 8, 13, 18, 30, 0, 0, time.UTC)

	steps := []struct {
		value   int
		written bool
		stored  string
	}{
		{value: 4, written: true, stored: "4"},
		{value: 4, written: false, stored: "4"},
		{value: 2, written: false, stored: "4"},
		{value: 7, written: true, stored: "7"},
	}
	for _, step := range steps {
		written, err := store.Record(ctx, domain.ModeTimeAttack, domain.DifficultyHard, domain.HighScore{Value: step.value, Date: date})
		if err != nil {
			t.Fatalf("record %d: %v", step.value, err)
		}
		if written != step.written {
			t.Fatalf("record %d: expected written=%v, got %v", step.value, step.written, written)
		}
		if got := mr.HGet("trivia:highscore:time_attack:hard", "value"); got != step.stored {
			t.Fatalf("after %d: expected stored %s, got %s", step.value, step.stored, got)
		}
	}
}
