package events

import "errors"

// Event operations return these as typed results so callers can render a
// specific message; they are never logged-and-swallowed like sync errors.
var (
	ErrNotAuthenticated  = errors.New("events: no authenticated user")
	ErrAlreadyEntered    = errors.New("events: already entered this week")
	ErrAlreadyClaimed    = errors.New("events: rewards already claimed")
	ErrEntryNotFound     = errors.New("events: no entry for the closed week")
	ErrInsufficientCoins = errors.New("events: not enough coins for the entry fee")
	ErrRemoteUnavailable = errors.New("events: remote store unavailable")
)
