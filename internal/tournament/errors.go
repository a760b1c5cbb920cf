package tournament

import "errors"

// Validation errors. Every operation that returns one of these leaves the input state untouched.
// Callers compare with errors.Is; the returned error may wrap the sentinel with extra detail.
var (
	ErrDuplicatePlayer    = errors.New("player already registered")
	ErrInvalidName        = errors.New("player name is required")
	ErrTournamentFinished = errors.New("tournament is finished")
	ErrInvalidRankSet     = errors.New("ranks must be consecutive from 1 with no repeats")
	ErrUnknownPlayer      = errors.New("player does not exist")
	ErrDuplicateResult    = errors.New("player appears more than once in the match")
	ErrInvalidState       = errors.New("invalid tournament document")
)
