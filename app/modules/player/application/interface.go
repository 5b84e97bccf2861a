package playerservice

import (
	"context"

	playerdb "github.com/ladderleague/ladder-bot/app/modules/player/infrastructure/repositories"
	"github.com/ladderleague/ladder-bot/app/shared"
)

// Service is the player directory boundary.
type Service interface {
	RegisterPlayer(ctx context.Context, userID shared.UserID, leagueID shared.LeagueID) (*playerdb.Player, error)
	GetPlayer(ctx context.Context, playerID shared.PlayerID) (*playerdb.Player, error)
	GetPlayerByUser(ctx context.Context, userID shared.UserID, leagueID shared.LeagueID) (*playerdb.Player, error)
	GetRatingHistory(ctx context.Context, playerID shared.PlayerID) ([]*playerdb.RatingChange, error)
	RenderRatingChart(ctx context.Context, playerID shared.PlayerID) ([]byte, error)
}
