package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidCEFRLevel is returned when a string is not one of A1..C2.
	ErrInvalidCEFRLevel = errors.New("invalid CEFR level")

	// ErrUnsupportedLanguage is returned for a language the trainer does not teach.
	ErrUnsupportedLanguage = errors.New("unsupported language")

	// ErrInvalidVerdict is returned when a verdict is not easy, known or new.
	ErrInvalidVerdict = errors.New("invalid verdict")

	// ErrEmptyUserID is returned when a scope carries no user identifier.
	ErrEmptyUserID = errors.New("user ID cannot be empty")
)

// Word record validation errors.
var (
	ErrWordIDEmpty          = errors.New("word ID cannot be empty")
	ErrWordEmpty            = errors.New("word cannot be empty")
	ErrTranslationEmpty     = errors.New("translation cannot be empty")
	ErrExampleSentenceEmpty = errors.New("example sentence cannot be empty")
	ErrInvalidSRSLevel      = errors.New("srs level must be between 1 and 8")
	ErrReviewBeforeLast     = errors.New("next review cannot precede last review")
)
