package leaguedb

import "errors"

// Sentinel errors for the repository layer.
var (
	// ErrNotFound indicates the requested league does not exist.
	ErrNotFound = errors.New("league not found")

	// ErrDuplicate indicates the guild already has a league with this
	// name.
	ErrDuplicate = errors.New("league name already taken in guild")
)
