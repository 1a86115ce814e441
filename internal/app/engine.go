package app

import (
	"context"
	"fmt"
	"slices"
	"time"

	"trivia-game-service/internal/domain"
)

// QuestionSource supplies the ordered questions for a session.
type QuestionSource interface {
	// Fetch returns at least minimumCount questions matching difficulty, or an
	// error wrapping domain.ErrInsufficientQuestions.
	Fetch(ctx context.Context, difficulty domain.Difficulty, minimumCount int) ([]domain.Question, error)
}

// HighScoreStore persists the best score per (mode, difficulty).
type HighScoreStore interface {
	Get(ctx context.Context, mode domain.Mode, difficulty domain.Difficulty) (domain.HighScore, bool, error)
	// Record stores hs only when it is strictly greater than the current record
	// for the key, atomically with respect to other writers, and reports whether
	// it was written.
	Record(ctx context.Context, mode domain.Mode, difficulty domain.Difficulty, hs domain.HighScore) (bool, error)
}

// Engine runs a single playthrough. It is not safe for concurrent use: callers
// must funnel StartGame, Answer, TimerTick and NextQuestion through one writer.
type Engine struct {
	scores       HighScoreStore
	now          func() time.Time
	initialLives int

	state    domain.SessionState
	recorded bool
}

type EngineOption func(*Engine)

// WithClock overrides the time source used to date high scores.
func WithClock(now func() time.Time) EngineOption {
	return func(e *Engine) { e.now = now }
}

// WithInitialLives overrides domain.DefaultLives for modes that track lives.
func WithInitialLives(n int) EngineOption {
	return func(e *Engine) {
		if n > 0 {
			e.initialLives = n
		}
	}
}

func NewEngine(scores HighScoreStore, opts ...EngineOption) *Engine {
	e := &Engine{
		scores:       scores,
		now:          time.Now,
		initialLives: domain.DefaultLives,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// StartGame draws a fresh question set and resets the session. On failure the
// previous state is left as it was.
func (e *Engine) StartGame(ctx context.Context, settings domain.GameSettings, source QuestionSource) error {
	if err := settings.Validate(); err != nil {
		return err
	}
	count := settings.QuestionCount()

	questions, err := source.Fetch(ctx, settings.Difficulty, count)
	if err != nil {
		return fmt.Errorf("fetch questions: %w", err)
	}
	if len(questions) < count {
		return fmt.Errorf("%w: want %d, got %d", domain.ErrInsufficientQuestions, count, len(questions))
	}
	questions = slices.Clone(questions[:count])
	for _, q := range questions {
		if err := q.Validate(); err != nil {
			return err
		}
	}

	var best *domain.HighScore
	if e.scores != nil {
		hs, ok, err := e.scores.Get(ctx, settings.Mode, settings.Difficulty)
		if err != nil {
			return fmt.Errorf("read high score: %w", err)
		}
		if ok {
			best = &hs
		}
	}

	rules, _ := settings.Mode.Rules()
	lives := 0
	if rules.TracksLives {
		lives = e.initialLives
	}

	e.state = domain.SessionState{
		Settings:  settings,
		Questions: questions,
		Lives:     lives,
		Best:      best,
	}
	e.recorded = false
	e.resetTimer()
	return nil
}

// Answer submits option for the current question. Repeated answers, answers
// after game over and answers before a game has started are ignored.
func (e *Engine) Answer(ctx context.Context, option string) error {
	if e.state.HasAnswered || e.state.IsGameOver {
		return nil
	}
	q, ok := e.state.CurrentQuestion()
	if !ok {
		return nil
	}
	if !q.HasOption(option) {
		return fmt.Errorf("%w: %q for question %q", domain.ErrInvalidOption, option, q.ID)
	}

	e.state.SelectedOption = &option
	e.state.HasAnswered = true
	if option == q.Answer {
		e.state.Score++
		return nil
	}
	return e.loseLife(ctx)
}

// TimerTick counts down the current question. When the countdown expires the
// question is scored as a wrong answer with no selection.
func (e *Engine) TimerTick(ctx context.Context) error {
	if e.state.TimeRemaining == nil || e.state.HasAnswered || e.state.IsGameOver {
		return nil
	}
	if _, ok := e.state.CurrentQuestion(); !ok {
		return nil
	}

	remaining := *e.state.TimeRemaining - 1
	if remaining > 0 {
		e.state.TimeRemaining = &remaining
		return nil
	}

	remaining = 0
	e.state.TimeRemaining = &remaining
	e.state.SelectedOption = nil
	e.state.HasAnswered = true
	return e.loseLife(ctx)
}

// NextQuestion advances once the current question has been answered or timed out.
func (e *Engine) NextQuestion(ctx context.Context) error {
	if !e.state.HasAnswered || e.state.IsGameOver {
		return nil
	}

	e.state.Index++
	if e.state.Index >= len(e.state.Questions) {
		e.state.Index = len(e.state.Questions)
		return e.finish(ctx, domain.ReasonCompleted)
	}

	e.state.HasAnswered = false
	e.state.SelectedOption = nil
	e.resetTimer()
	return nil
}

// State returns a copy of the session state safe to hand to a renderer.
func (e *Engine) State() domain.SessionState {
	s := e.state
	s.Questions = slices.Clone(s.Questions)
	if s.SelectedOption != nil {
		v := *s.SelectedOption
		s.SelectedOption = &v
	}
	if s.TimeRemaining != nil {
		v := *s.TimeRemaining
		s.TimeRemaining = &v
	}
	if s.Best != nil {
		v := *s.Best
		s.Best = &v
	}
	return s
}

func (e *Engine) loseLife(ctx context.Context) error {
	rules, _ := e.state.Settings.Mode.Rules()
	if !rules.TracksLives || e.state.Lives == 0 {
		return nil
	}
	e.state.Lives--
	if e.state.Lives == 0 {
		return e.finish(ctx, domain.ReasonOutOfLives)
	}
	return nil
}

func (e *Engine) resetTimer() {
	limit, ok := e.state.Settings.Mode.TimePerQuestion()
	if !ok {
		e.state.TimeRemaining = nil
		return
	}
	e.state.TimeRemaining = &limit
}

// finish marks the session over and evaluates the high score. The evaluation
// runs at most once per session, even if it fails.
func (e *Engine) finish(ctx context.Context, reason domain.GameOverReason) error {
	e.state.IsGameOver = true
	e.state.Reason = reason
	if e.recorded || e.scores == nil {
		return nil
	}
	e.recorded = true

	mode, difficulty := e.state.Settings.Mode, e.state.Settings.Difficulty
	stored, ok, err := e.scores.Get(ctx, mode, difficulty)
	if err != nil {
		return fmt.Errorf("read high score: %w", err)
	}
	if ok {
		e.state.Best = &stored
		// Ties keep the earlier record.
		if e.state.Score <= stored.Value {
			return nil
		}
	}

	hs := domain.HighScore{Value: e.state.Score, Date: e.now()}
	written, err := e.scores.Record(ctx, mode, difficulty, hs)
	if err != nil {
		return fmt.Errorf("write high score: %w", err)
	}
	if !written {
		// Another session set an equal or better record after our read.
		current, ok, err := e.scores.Get(ctx, mode, difficulty)
		if err != nil {
			return fmt.Errorf("read high score: %w", err)
		}
		if ok {
			e.state.Best = &current
		}
		return nil
	}
	e.state.Best = &hs
	e.state.NewHighScore = true
	return nil
}
