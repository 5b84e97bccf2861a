package matchservice

import "errors"

// Domain errors for the match lifecycle service. These represent
// business rule failures the API maps to client errors; only
// ErrStorage signals infrastructure trouble.
var (
	// ErrMatchNotFound indicates the match does not exist.
	ErrMatchNotFound = errors.New("match not found")

	// ErrInvalidState indicates the match is not SCHEDULED, so no
	// further transitions are allowed.
	ErrInvalidState = errors.New("match is not in a schedulable state")

	// ErrNotParticipant indicates the caller does not play in this
	// match.
	ErrNotParticipant = errors.New("user is not a participant in this match")

	// ErrNotConfirmed indicates a result was reported before both
	// sides confirmed the match.
	ErrNotConfirmed = errors.New("match is not confirmed by both players")

	// ErrInvalidScore indicates negative scores or a tie.
	ErrInvalidScore = errors.New("invalid score")

	// ErrDuplicateMatch indicates the two players already have an open
	// match in this league.
	ErrDuplicateMatch = errors.New("players already have a scheduled match")

	// ErrSelfChallenge indicates a player challenged themselves.
	ErrSelfChallenge = errors.New("cannot schedule a match against yourself")

	// ErrNotLeagueMember indicates one of the users has no player row
	// in the league.
	ErrNotLeagueMember = errors.New("user is not a member of this league")

	// ErrPastScheduledDate indicates the requested date is not in the
	// future.
	ErrPastScheduledDate = errors.New("scheduled date must be in the future")

	// ErrStorage wraps infrastructure failures so storage internals
	// never leak to callers.
	ErrStorage = errors.New("storage failure")
)
