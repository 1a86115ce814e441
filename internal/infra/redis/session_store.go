package redis

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"trivia-game-service/internal/app"
)

// SessionStore is a Redis-aware implementation of app.SessionRepository.
// Engines live in a local map because their state is driven in-process; Redis
// carries a liveness marker per session so operators can see what is running.
type SessionStore struct {
	client   *redis.Client
	ttl      time.Duration
	mu       sync.RWMutex
	sessions map[string]*app.Session
}

func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{
		client:   client,
		ttl:      ttl,
		sessions: make(map[string]*app.Session),
	}
}

func (s *SessionStore) Save(session *app.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID()] = session
	// best-effort liveness marker
	_ = s.client.Set(context.Background(), s.key(session.ID()), session.CreatedAt().Unix(), s.ttl).Err()
}

// Get also extends the liveness marker; every game operation looks its session up here.
func (s *SessionStore) Get(id string) (*app.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[id]
	if ok {
		_ = s.client.Expire(context.Background(), s.key(id), s.ttl).Err()
	}
	return session, ok
}

func (s *SessionStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; !ok {
		return
	}
	delete(s.sessions, id)
	_ = s.client.Del(context.Background(), s.key(id)).Err()
}

func (s *SessionStore) key(id string) string {
	return "trivia:session:" + id
}
