package memory

import (
	"sync"

	"trivia-game-service/internal/app"
)

// SessionStore is an in-memory implementation of app.SessionRepository.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*app.Session
}

func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*app.Session),
	}
}

func (s *SessionStore) Save(session *app.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID()] = session
}

func (s *SessionStore) Get(id string) (*app.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[id]
	return session, ok
}

func (s *SessionStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

// Len reports how many sessions are live.
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
