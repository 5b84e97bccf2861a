package shared

import (
	"database/sql/driver"

	"github.com/google/uuid"
)

// UserID is the external Discord identifier for a person. It is stable
// across leagues; the same user has one player row per league joined.
type UserID string

// LeagueID identifies a league.
type LeagueID uuid.UUID

// PlayerID identifies a league-scoped player (one user in one league).
type PlayerID uuid.UUID

// MatchID identifies a match.
type MatchID uuid.UUID

func (id LeagueID) String() string { return uuid.UUID(id).String() }
func (id PlayerID) String() string { return uuid.UUID(id).String() }
func (id MatchID) String() string  { return uuid.UUID(id).String() }

// Scanner/Valuer and text marshalling so the ID types work in bun
// models and JSON payloads the same way uuid.UUID does.

func (id *LeagueID) Scan(src any) error          { return (*uuid.UUID)(id).Scan(src) }
func (id LeagueID) Value() (driver.Value, error) { return uuid.UUID(id).Value() }
func (id LeagueID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }
func (id *LeagueID) UnmarshalText(b []byte) error {
	return (*uuid.UUID)(id).UnmarshalText(b)
}

func (id *PlayerID) Scan(src any) error          { return (*uuid.UUID)(id).Scan(src) }
func (id PlayerID) Value() (driver.Value, error) { return uuid.UUID(id).Value() }
func (id PlayerID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }
func (id *PlayerID) UnmarshalText(b []byte) error {
	return (*uuid.UUID)(id).UnmarshalText(b)
}

func (id *MatchID) Scan(src any) error          { return (*uuid.UUID)(id).Scan(src) }
func (id MatchID) Value() (driver.Value, error) { return uuid.UUID(id).Value() }
func (id MatchID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }
func (id *MatchID) UnmarshalText(b []byte) error {
	return (*uuid.UUID)(id).UnmarshalText(b)
}

// NewLeagueID returns a random league id.
func NewLeagueID() LeagueID { return LeagueID(uuid.New()) }

// NewPlayerID returns a random player id.
func NewPlayerID() PlayerID { return PlayerID(uuid.New()) }

// NewMatchID returns a random match id.
func NewMatchID() MatchID { return MatchID(uuid.New()) }

// ParseLeagueID parses the canonical string form.
func ParseLeagueID(s string) (LeagueID, error) {
	u, err := uuid.Parse(s)
	return LeagueID(u), err
}

// ParsePlayerID parses the canonical string form.
func ParsePlayerID(s string) (PlayerID, error) {
	u, err := uuid.Parse(s)
	return PlayerID(u), err
}

// ParseMatchID parses the canonical string form.
func ParseMatchID(s string) (MatchID, error) {
	u, err := uuid.Parse(s)
	return MatchID(u), err
}

// Elo is a player's rating. Ratings never drop below 1.
type Elo int

// Tier is the named rank band a rating falls into.
type Tier string

const (
	TierBronze      Tier = "BRONZE"
	TierSilver      Tier = "SILVER"
	TierGold        Tier = "GOLD"
	TierDiamond     Tier = "DIAMOND"
	TierMaster      Tier = "MASTER"
	TierGrandmaster Tier = "GRANDMASTER"
)

// MatchStatus is the lifecycle state of a match. COMPLETED and
// CANCELLED are terminal.
type MatchStatus string

const (
	MatchStatusScheduled MatchStatus = "SCHEDULED"
	MatchStatusCompleted MatchStatus = "COMPLETED"
	MatchStatusCancelled MatchStatus = "CANCELLED"
)

// IsTerminal reports whether no further transitions are allowed.
func (s MatchStatus) IsTerminal() bool {
	return s == MatchStatusCompleted || s == MatchStatusCancelled
}
