package leagueservice

import "errors"

// Domain errors for the league service.
var (
	// ErrLeagueNotFound indicates the league does not exist.
	ErrLeagueNotFound = errors.New("league not found")

	// ErrLeagueExists indicates the guild already has a league with
	// this name.
	ErrLeagueExists = errors.New("league name already taken")

	// ErrAlreadyMember indicates the user already has a player row in
	// the league.
	ErrAlreadyMember = errors.New("user is already a member of this league")

	// ErrNotLeagueMember indicates the user has no player row in the
	// league.
	ErrNotLeagueMember = errors.New("user is not a member of this league")

	// ErrActiveMatchesRemain blocks leaving a league while the player
	// still has scheduled matches.
	ErrActiveMatchesRemain = errors.New("player has scheduled matches in this league")

	// ErrStorage wraps infrastructure failures so storage internals
	// never leak to callers.
	ErrStorage = errors.New("storage failure")
)
