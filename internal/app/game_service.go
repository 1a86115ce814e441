package app

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"trivia-game-service/internal/domain"
)

// SessionRepository abstracts where live game sessions are kept (in-memory, Redis, etc).
type SessionRepository interface {
	Save(session *Session)
	Get(id string) (*Session, bool)
	Delete(id string)
}

// Observer receives game lifecycle signals, e.g. for metrics.
type Observer interface {
	GameStarted(settings domain.GameSettings)
	QuestionScored(settings domain.GameSettings, outcome Outcome)
	GameFinished(settings domain.GameSettings, reason domain.GameOverReason, newHighScore bool)
}

// Outcome classifies how a question was resolved.
type Outcome string

const (
	OutcomeCorrect Outcome = "correct"
	OutcomeWrong   Outcome = "wrong"
	OutcomeTimeout Outcome = "timeout"
)

// GameService hosts many independent sessions on behalf of presentation layers.
type GameService struct {
	sessions  SessionRepository
	questions QuestionSource
	scores    HighScoreStore
	observer  Observer
	engine    []EngineOption
}

type ServiceOption func(*GameService)

// WithObserver attaches lifecycle hooks.
func WithObserver(o Observer) ServiceOption {
	return func(s *GameService) { s.observer = o }
}

// WithEngineOptions configures every engine the service creates.
func WithEngineOptions(opts ...EngineOption) ServiceOption {
	return func(s *GameService) { s.engine = append(s.engine, opts...) }
}

func NewGameService(sessions SessionRepository, questions QuestionSource, scores HighScoreStore, opts ...ServiceOption) *GameService {
	s := &GameService{
		sessions:  sessions,
		questions: questions,
		scores:    scores,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewSession wraps an engine that has not been started yet. GameService creates
// its own sessions; session repositories use this to exercise storage on its own.
func NewSession(id string, engine *Engine) *Session {
	return newSession(id, engine)
}

// NewGame starts a new session with the given settings.
func (s *GameService) NewGame(ctx context.Context, settings domain.GameSettings) (domain.GameView, error) {
	session := newSession(uuid.NewString(), NewEngine(s.scores, s.engine...))
	view, err := session.start(ctx, settings, s.questions)
	if err != nil {
		return domain.GameView{}, err
	}
	s.sessions.Save(session)
	if s.observer != nil {
		s.observer.GameStarted(settings)
	}
	return view, nil
}

// Restart replays a session with its current settings and a freshly drawn question set.
func (s *GameService) Restart(ctx context.Context, id string) (domain.GameView, error) {
	session, ok := s.sessions.Get(id)
	if !ok {
		return domain.GameView{}, domain.ErrSessionNotFound
	}
	view, err := session.start(ctx, session.Settings(), s.questions)
	if err != nil {
		return domain.GameView{}, err
	}
	if s.observer != nil {
		s.observer.GameStarted(view.Settings)
	}
	return view, nil
}

// Answer submits an option for the session's current question.
func (s *GameService) Answer(ctx context.Context, id, option string) (domain.GameView, error) {
	return s.mutate(ctx, id, OutcomeWrong, func(e *Engine) error {
		return e.Answer(ctx, option)
	})
}

// Tick advances the session's countdown by one second.
func (s *GameService) Tick(ctx context.Context, id string) (domain.GameView, error) {
	return s.mutate(ctx, id, OutcomeTimeout, func(e *Engine) error {
		return e.TimerTick(ctx)
	})
}

// Next moves the session to its next question.
func (s *GameService) Next(ctx context.Context, id string) (domain.GameView, error) {
	return s.mutate(ctx, id, OutcomeWrong, func(e *Engine) error {
		return e.NextQuestion(ctx)
	})
}

// Get returns the current snapshot of a session.
func (s *GameService) Get(_ context.Context, id string) (domain.GameView, error) {
	session, ok := s.sessions.Get(id)
	if !ok {
		return domain.GameView{}, domain.ErrSessionNotFound
	}
	return session.View(), nil
}

// Subscribe returns a channel that receives a snapshot after every change to the session.
// The caller must invoke the returned cancel function to avoid leaks.
func (s *GameService) Subscribe(_ context.Context, id string) (<-chan domain.GameView, func(), error) {
	session, ok := s.sessions.Get(id)
	if !ok {
		return nil, nil, domain.ErrSessionNotFound
	}
	ch, cancel := session.subscribe()
	return ch, cancel, nil
}

// End discards a session.
func (s *GameService) End(_ context.Context, id string) {
	session, ok := s.sessions.Get(id)
	if !ok {
		return
	}
	session.close()
	s.sessions.Delete(id)
}

// HighScore returns the stored best score for a mode and difficulty.
func (s *GameService) HighScore(ctx context.Context, mode domain.Mode, difficulty domain.Difficulty) (domain.HighScore, bool, error) {
	return s.scores.Get(ctx, mode, difficulty)
}

// mutate applies op under the session lock. miss is the outcome reported when op
// resolves the question without scoring it.
func (s *GameService) mutate(ctx context.Context, id string, miss Outcome, op func(*Engine) error) (domain.GameView, error) {
	session, ok := s.sessions.Get(id)
	if !ok {
		return domain.GameView{}, domain.ErrSessionNotFound
	}
	before, after, view, err := session.apply(op)
	s.observe(before, after, miss)
	return view, err
}

func (s *GameService) observe(before, after domain.SessionState, miss Outcome) {
	if s.observer == nil {
		return
	}
	if !before.HasAnswered && after.HasAnswered {
		outcome := miss
		if after.Score > before.Score {
			outcome = OutcomeCorrect
		}
		s.observer.QuestionScored(after.Settings, outcome)
	}
	if !before.IsGameOver && after.IsGameOver {
		s.observer.GameFinished(after.Settings, after.Reason, after.NewHighScore)
	}
}

// Session pairs an engine with the lock that serializes every writer (player
// input and timer ticks) and the subscribers watching it.
type Session struct {
	id        string
	createdAt time.Time
	mu        sync.Mutex
	engine    *Engine
	closed    bool

	subscribers map[chan domain.GameView]struct{}
}

func newSession(id string, engine *Engine) *Session {
	return &Session{
		id:          id,
		createdAt:   time.Now(),
		engine:      engine,
		subscribers: make(map[chan domain.GameView]struct{}),
	}
}

func (s *Session) ID() string {
	return s.id
}

func (s *Session) CreatedAt() time.Time {
	return s.createdAt
}

// Settings returns the settings of the most recent start.
func (s *Session) Settings() domain.GameSettings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.state.Settings
}

// View returns the current snapshot.
func (s *Session) View() domain.GameView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.NewGameView(s.id, s.engine.State())
}

func (s *Session) start(ctx context.Context, settings domain.GameSettings, source QuestionSource) (domain.GameView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.engine.StartGame(ctx, settings, source); err != nil {
		return domain.GameView{}, err
	}
	return s.broadcastLocked(), nil
}

func (s *Session) apply(op func(*Engine) error) (before, after domain.SessionState, view domain.GameView, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	before = s.engine.State()
	err = op(s.engine)
	after = s.engine.State()
	if stateChanged(before, after) {
		view = s.broadcastLocked()
	} else {
		view = domain.NewGameView(s.id, after)
	}
	return before, after, view, err
}

func (s *Session) subscribe() (<-chan domain.GameView, func()) {
	ch := make(chan domain.GameView, 8)

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		close(ch)
		return ch, func() {}
	}
	s.subscribers[ch] = struct{}{}
	ch <- domain.NewGameView(s.id, s.engine.State())
	s.mu.Unlock()

	cancel := func() {
		s.mu.Lock()
		if _, ok := s.subscribers[ch]; ok {
			delete(s.subscribers, ch)
			close(ch)
		}
		s.mu.Unlock()
	}
	return ch, cancel
}

func (s *Session) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	for ch := range s.subscribers {
		delete(s.subscribers, ch)
		close(ch)
	}
}

func (s *Session) broadcastLocked() domain.GameView {
	view := domain.NewGameView(s.id, s.engine.State())
	for ch := range s.subscribers {
		select {
		case ch <- view:
		default:
			// Drop the oldest snapshot so a slow reader never blocks a writer.
			select {
			case <-ch:
			default:
			}
			ch <- view
		}
	}
	return view
}

func stateChanged(a, b domain.SessionState) bool {
	return a.Index != b.Index ||
		a.Score != b.Score ||
		a.Lives != b.Lives ||
		a.HasAnswered != b.HasAnswered ||
		a.IsGameOver != b.IsGameOver ||
		a.NewHighScore != b.NewHighScore ||
		!intPtrEqual(a.TimeRemaining, b.TimeRemaining)
}

func intPtrEqual(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
