package playerservice

import "errors"

// Domain errors for the player service. These represent business logic
// failures callers should treat as normal outcomes, not retries.
var (
	// ErrPlayerNotFound indicates the player does not exist.
	ErrPlayerNotFound = errors.New("player not found")

	// ErrAlreadyMember indicates the user already has a player row in
	// the league.
	ErrAlreadyMember = errors.New("user is already a member of this league")

	// ErrStorage wraps infrastructure failures so storage internals
	// never leak to callers.
	ErrStorage = errors.New("storage failure")
)
