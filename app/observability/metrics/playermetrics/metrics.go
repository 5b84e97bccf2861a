// Package playermetrics defines the metrics surface of the player module.
package playermetrics

import (
	"context"
	"time"
)

type PlayerMetrics interface {
	RecordOperationAttempt(ctx context.Context, operation string)
	RecordOperationSuccess(ctx context.Context, operation string)
	RecordOperationFailure(ctx context.Context, operation string)
	RecordOperationDuration(ctx context.Context, operation string, duration time.Duration)

	RecordRegistration(ctx context.Context, leagueID string)
}
