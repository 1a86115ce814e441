package memory

import (
	"testing"

	"trivia-game-service/internal/app"
)

func TestSessionStoreLifecycle(t *testing.T) {
	store := NewSessionStore()

	store.Save(app.NewSession("s1", app.NewEngine(nil)))
	if _, ok := store.Get("s1"); !ok {
		t.Fatalf("expected session present")
	}
	if store.Len() != 1 {
		t.Fatalf("expected 1 session, got %d", store.Len())
	}

	store.Delete("s1")
	if _, ok := store.Get("s1"); ok {
		t.Fatalf("expected session removed")
	}
}
