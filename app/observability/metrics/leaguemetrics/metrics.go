// Package leaguemetrics defines the metrics surface of the league module.
package leaguemetrics

import (
	"context"
	"time"
)

type LeagueMetrics interface {
	RecordOperationAttempt(ctx context.Context, operation string)
	RecordOperationSuccess(ctx context.Context, operation string)
	RecordOperationFailure(ctx context.Context, operation string)
	RecordOperationDuration(ctx context.Context, operation string, duration time.Duration)

	RecordLeagueCreated(ctx context.Context, guildID string)
	RecordStandingsExport(ctx context.Context, leagueID string)
}
