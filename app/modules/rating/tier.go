package rating

import (
	"github.com/ladderleague/ladder-bot/app/shared"
)

// GrandmasterMinElo is the eligibility threshold for the Grandmaster
// tier. Only one player per league actually holds it; the match module
// arbitrates among eligibles after every completed match.
const GrandmasterMinElo shared.Elo = 2200

// ClassifyTier maps a rating to its tier band. A TierGrandmaster
// result means eligible; arbitration may still place the player at
// Master if someone else in the league outranks them.
func ClassifyTier(elo shared.Elo) shared.Tier {
	switch {
	case elo < 1400:
		return shared.TierBronze
	case elo < 1600:
		return shared.TierSilver
	case elo < 1800:
		return shared.TierGold
	case elo < 2000:
		return shared.TierDiamond
	case elo < GrandmasterMinElo:
		return shared.TierMaster
	default:
		return shared.TierGrandmaster
	}
}
