// Package attr provides slog attribute helpers for the domain types so
// log call sites stay consistent across modules.
package attr

import (
	"log/slog"

	"github.com/ladderleague/ladder-bot/app/shared"
)

func UserID(id shared.UserID) slog.Attr {
	return slog.String("user_id", string(id))
}

func LeagueID(id shared.LeagueID) slog.Attr {
	return slog.String("league_id", id.String())
}

func PlayerID(id shared.PlayerID) slog.Attr {
	return slog.String("player_id", id.String())
}

func MatchID(id shared.MatchID) slog.Attr {
	return slog.String("match_id", id.String())
}

func Elo(key string, elo shared.Elo) slog.Attr {
	return slog.Int(key, int(elo))
}

func Tier(key string, tier shared.Tier) slog.Attr {
	return slog.String(key, string(tier))
}

func String(key, value string) slog.Attr {
	return slog.String(key, value)
}

func Error(err error) slog.Attr {
	return slog.Any("error", err)
}

// CorrelationID tags a log line with the id threaded through event
// metadata and HTTP requests.
func CorrelationID(id string) slog.Attr {
	return slog.String("correlation_id", id)
}
