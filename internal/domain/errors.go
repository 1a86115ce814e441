package domain

import "errors"

var (
	// ErrSessionNotFound is returned when a game session does not exist or has ended.
	ErrSessionNotFound = errors.New("game session not found")
	// ErrInsufficientQuestions indicates the question source cannot supply the requested count.
	ErrInsufficientQuestions = errors.New("insufficient questions")
	// ErrInvalidOption indicates an answer that is not one of the current question's options.
	ErrInvalidOption = errors.New("option not offered by current question")
	// ErrInvalidSettings indicates an unknown mode, difficulty or question count.
	ErrInvalidSettings = errors.New("invalid game settings")
	// ErrInvalidQuestion indicates malformed question content.
	ErrInvalidQuestion = errors.New("invalid question")
)
