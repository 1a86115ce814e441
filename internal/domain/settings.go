package domain

import (
	"fmt"
	"strings"
)

// DefaultLives is the number of lives a session starts with in modes that track lives.
const DefaultLives = 3

// MaxQuestionCount bounds GameSettings.NumberOfQuestions.
const MaxQuestionCount = 50

// Difficulty filters the questions drawn for a session.
type Difficulty string

const (
	DifficultyAny    Difficulty = "any"
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Difficulties lists every difficulty filter in display order.
var Difficulties = []Difficulty{DifficultyAny, DifficultyEasy, DifficultyMedium, DifficultyHard}

// ParseDifficulty accepts a difficulty name case-insensitively. Empty means any.
func ParseDifficulty(raw string) (Difficulty, error) {
	d := Difficulty(strings.ToLower(strings.TrimSpace(raw)))
	if d == "" {
		return DifficultyAny, nil
	}
	if !d.Valid() {
		return "", fmt.Errorf("%w: unknown difficulty %q", ErrInvalidSettings, raw)
	}
	return d, nil
}

func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyAny, DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// Matches reports whether a question tagged with q passes this filter.
func (d Difficulty) Matches(q Difficulty) bool {
	return d == DifficultyAny || d == q
}

// Mode is a named ruleset.
type Mode string

const (
	ModeClassic    Mode = "classic"
	ModeTimeAttack Mode = "time_attack"
	ModePractice   Mode = "practice"
)

// Modes lists every mode in display order.
var Modes = []Mode{ModeClassic, ModeTimeAttack, ModePractice}

// ModeRules is the data that distinguishes one mode from another.
type ModeRules struct {
	Title string
	// TimePerQuestion is in seconds; zero means no time limit.
	TimePerQuestion      int
	DefaultQuestionCount int
	// TracksLives is false for the score-only ruleset.
	TracksLives bool
}

var modeRules = map[Mode]ModeRules{
	ModeClassic:    {Title: "Classic", DefaultQuestionCount: 10, TracksLives: true},
	ModeTimeAttack: {Title: "Time Attack", TimePerQuestion: 10, DefaultQuestionCount: 15, TracksLives: true},
	ModePractice:   {Title: "Practice", DefaultQuestionCount: 10},
}

// ParseMode accepts a mode name case-insensitively. Empty means classic.
func ParseMode(raw string) (Mode, error) {
	m := Mode(strings.ToLower(strings.TrimSpace(raw)))
	if m == "" {
		return ModeClassic, nil
	}
	if _, ok := modeRules[m]; !ok {
		return "", fmt.Errorf("%w: unknown mode %q", ErrInvalidSettings, raw)
	}
	return m, nil
}

func (m Mode) Rules() (ModeRules, bool) {
	r, ok := modeRules[m]
	return r, ok
}

func (m Mode) Title() string {
	return modeRules[m].Title
}

// TimePerQuestion returns the per-question limit in seconds, if the mode has one.
func (m Mode) TimePerQuestion() (int, bool) {
	r := modeRules[m]
	return r.TimePerQuestion, r.TimePerQuestion > 0
}

// GameSettings is the immutable per-session configuration.
type GameSettings struct {
	Mode       Mode       `json:"mode"`
	Difficulty Difficulty `json:"difficulty"`
	// NumberOfQuestions overrides the mode's default count when set.
	NumberOfQuestions *int `json:"numberOfQuestions,omitempty"`
}

// QuestionCount resolves the number of questions a session will play.
func (s GameSettings) QuestionCount() int {
	if s.NumberOfQuestions != nil {
		return *s.NumberOfQuestions
	}
	return modeRules[s.Mode].DefaultQuestionCount
}

func (s GameSettings) Validate() error {
	if _, ok := modeRules[s.Mode]; !ok {
		return fmt.Errorf("%w: unknown mode %q", ErrInvalidSettings, s.Mode)
	}
	if !s.Difficulty.Valid() {
		return fmt.Errorf("%w: unknown difficulty %q", ErrInvalidSettings, s.Difficulty)
	}
	if n := s.QuestionCount(); n < 1 || n > MaxQuestionCount {
		return fmt.Errorf("%w: question count %d outside 1..%d", ErrInvalidSettings, n, MaxQuestionCount)
	}
	return nil
}
