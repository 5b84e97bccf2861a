// Package rating implements the ELO calculation and rank
// classification. Everything here is pure; persistence and league
// arbitration live in the match module.
package rating

import (
	"math"

	"github.com/ladderleague/ladder-bot/app/shared"
)

const (
	// KFactor scales how much a single result moves ratings.
	KFactor = 32

	// InitialElo is the rating every player starts a league with.
	InitialElo shared.Elo = 1000

	// EloFloor is the lowest rating a loss can leave a player at.
	EloFloor shared.Elo = 1

	// upsetThreshold is the rating gap above which a win counts as an
	// upset and earns the bonus multiplier.
	upsetThreshold  = 100
	upsetMultiplier = 1.5
)

// Delta returns the rating points transferred for a win, before the
// loser's floor is applied. The result is never negative.
func Delta(winnerElo, loserElo shared.Elo) int {
	expected := 1 / (1 + math.Pow(10, float64(loserElo-winnerElo)/400))
	base := KFactor * (1 - expected)
	if loserElo-winnerElo > upsetThreshold {
		base *= upsetMultiplier
	}
	return int(math.Round(base))
}

// Apply computes the post-match ratings. Both sides move by the same
// delta except that the loser never drops below EloFloor.
func Apply(winnerElo, loserElo shared.Elo) (newWinner, newLoser shared.Elo, delta int) {
	delta = Delta(winnerElo, loserElo)
	newWinner = winnerElo + shared.Elo(delta)
	newLoser = loserElo - shared.Elo(delta)
	if newLoser < EloFloor {
		newLoser = EloFloor
	}
	return newWinner, newLoser, delta
}
