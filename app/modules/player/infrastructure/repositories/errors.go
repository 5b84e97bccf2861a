package playerdb

import "errors"

// Sentinel errors for the repository layer. Infrastructure signals,
// not business decisions; the service layer maps them onto its own.
var (
	// ErrNotFound indicates the requested player row does not exist.
	ErrNotFound = errors.New("player not found")

	// ErrDuplicate indicates a unique constraint rejected the insert,
	// meaning the user already has a row in this league.
	ErrDuplicate = errors.New("player already exists in league")
)
