package domain

import "errors"

var (
	// ErrProfileNotFound is returned when no fan exists for the given identifier.
	ErrProfileNotFound = errors.New("fan profile not found")
	// ErrEmailTaken is returned when registration collides with an existing email.
	ErrEmailTaken = errors.New("email already registered")
	// ErrQuizNotFound indicates the quiz content could not be loaded.
	ErrQuizNotFound = errors.New("quiz not found")
	// ErrQuestionNotFound indicates a submitted question ID is invalid.
	ErrQuestionNotFound = errors.New("question not found")
	// ErrOptionNotFound indicates a submitted option ID is invalid.
	ErrOptionNotFound = errors.New("option not found")
	// ErrDuplicateAnswer indicates a submission answered the same question twice.
	ErrDuplicateAnswer = errors.New("question answered more than once")
	// ErrNegativeDelta rejects point deductions; points are only ever awarded.
	ErrNegativeDelta = errors.New("point delta must be non-negative")
	// ErrQuizAlreadyTaken is the daily gate's denial. It is an informational
	// outcome ("you already played today"), not a fault.
	ErrQuizAlreadyTaken = errors.New("daily quiz already taken today")
	// ErrNoEntrants is returned when a sweepstakes draw finds nobody enrolled.
	ErrNoEntrants = errors.New("no fans enrolled in the sweepstakes")
)
