// Package matchmetrics defines the metrics surface of the match module.
package matchmetrics

import (
	"context"
	"time"
)

// MatchMetrics records what the match lifecycle service does.
type MatchMetrics interface {
	RecordOperationAttempt(ctx context.Context, operation string)
	RecordOperationSuccess(ctx context.Context, operation string)
	RecordOperationFailure(ctx context.Context, operation string)
	RecordOperationDuration(ctx context.Context, operation string, duration time.Duration)

	RecordMatchCompleted(ctx context.Context, leagueID string)
	RecordRatingDelta(ctx context.Context, delta int)
	RecordGrandmasterChange(ctx context.Context, leagueID string)
}
