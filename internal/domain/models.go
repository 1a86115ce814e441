package domain

import (
	"fmt"
	"slices"
	"time"
)

// Question is a multiple-choice question with exactly one correct option.
type Question struct {
	ID         string     `json:"id"`
	Text       string     `json:"text"`
	Options    []string   `json:"options"`
	Answer     string     `json:"answer"`
	Difficulty Difficulty `json:"difficulty"`
	Category   string     `json:"category,omitempty"`
}

// Validate checks the option count and that the answer is among the options.
func (q Question) Validate() error {
	if len(q.Options) < 2 || len(q.Options) > 4 {
		return fmt.Errorf("%w: %q has %d options", ErrInvalidQuestion, q.ID, len(q.Options))
	}
	if !q.HasOption(q.Answer) {
		return fmt.Errorf("%w: %q answer is not an option", ErrInvalidQuestion, q.ID)
	}
	return nil
}

func (q Question) HasOption(option string) bool {
	return slices.Contains(q.Options, option)
}

// HighScore is the best score recorded for a (mode, difficulty) pair.
type HighScore struct {
	Value int       `json:"value"`
	Date  time.Time `json:"date"`
}

// Status is the coarse state-machine position of a session.
type Status string

const (
	StatusNotStarted Status = "not_started"
	StatusInProgress Status = "in_progress"
	StatusGameOver   Status = "game_over"
)

// GameOverReason records why a session ended.
type GameOverReason string

const (
	ReasonCompleted  GameOverReason = "completed"
	ReasonOutOfLives GameOverReason = "out_of_lives"
)

// SessionState is everything a session engine owns for one playthrough.
type SessionState struct {
	Settings  GameSettings
	Questions []Question
	Index     int
	Score     int
	Lives     int

	SelectedOption *string
	HasAnswered    bool
	// TimeRemaining is nil unless the mode has a time limit.
	TimeRemaining *int
	IsGameOver    bool

	Reason       GameOverReason
	Best         *HighScore
	NewHighScore bool
}

func (s SessionState) Status() Status {
	switch {
	case s.IsGameOver:
		return StatusGameOver
	case len(s.Questions) == 0:
		return StatusNotStarted
	default:
		return StatusInProgress
	}
}

// CurrentQuestion returns the question at Index, if any remain.
func (s SessionState) CurrentQuestion() (Question, bool) {
	if s.Index < 0 || s.Index >= len(s.Questions) {
		return Question{}, false
	}
	return s.Questions[s.Index], true
}

// QuestionView is a question as shown to a player; the answer is never included.
type QuestionView struct {
	ID       string   `json:"id"`
	Text     string   `json:"text"`
	Options  []string `json:"options"`
	Category string   `json:"category,omitempty"`
}

// GameView is the render-ready snapshot of a session.
type GameView struct {
	SessionID      string         `json:"sessionId"`
	Settings       GameSettings   `json:"settings"`
	Status         Status         `json:"status"`
	Index          int            `json:"index"`
	Total          int            `json:"total"`
	Score          int            `json:"score"`
	Lives          int            `json:"lives"`
	Question       *QuestionView  `json:"question,omitempty"`
	SelectedOption *string        `json:"selectedOption,omitempty"`
	HasAnswered    bool           `json:"hasAnswered"`
	CorrectAnswer  string         `json:"correctAnswer,omitempty"`
	TimeRemaining  *int           `json:"timeRemaining,omitempty"`
	IsGameOver     bool           `json:"isGameOver"`
	Reason         GameOverReason `json:"reason,omitempty"`
	Best           *HighScore     `json:"best,omitempty"`
	NewHighScore   bool           `json:"newHighScore"`
}

// NewGameView projects a session state for the presentation layer. The correct
// answer is revealed only once the current question has been answered.
func NewGameView(sessionID string, s SessionState) GameView {
	v := GameView{
		SessionID:      sessionID,
		Settings:       s.Settings,
		Status:         s.Status(),
		Index:          s.Index,
		Total:          len(s.Questions),
		Score:          s.Score,
		Lives:          s.Lives,
		SelectedOption: s.SelectedOption,
		HasAnswered:    s.HasAnswered,
		TimeRemaining:  s.TimeRemaining,
		IsGameOver:     s.IsGameOver,
		Reason:         s.Reason,
		Best:           s.Best,
		NewHighScore:   s.NewHighScore,
	}
	if q, ok := s.CurrentQuestion(); ok {
		v.Question = &QuestionView{
			ID:       q.ID,
			Text:     q.Text,
			Options:  slices.Clone(q.Options),
			Category: q.Category,
		}
		if s.HasAnswered {
			v.CorrectAnswer = q.Answer
		}
	}
	return v
}
