package matchdb

import "errors"

// Sentinel errors for the repository layer. Infrastructure signals,
// not business decisions; the service layer maps them onto its own.
var (
	// ErrNotFound indicates the requested match does not exist.
	ErrNotFound = errors.New("match not found")

	// ErrNoRowsAffected indicates an UPDATE affected zero rows.
	ErrNoRowsAffected = errors.New("no rows affected")

	// ErrDuplicate indicates an insert hit the unique index on the
	// league's open player pair.
	ErrDuplicate = errors.New("match already exists")
)
