package leaguemetrics

import (
	"context"
	"time"
)

// NoOpMetrics is the test stand-in.
type NoOpMetrics struct{}

func (NoOpMetrics) RecordOperationAttempt(context.Context, string)                 {}
func (NoOpMetrics) RecordOperationSuccess(context.Context, string)                 {}
func (NoOpMetrics) RecordOperationFailure(context.Context, string)                 {}
func (NoOpMetrics) RecordOperationDuration(context.Context, string, time.Duration) {}
func (NoOpMetrics) RecordLeagueCreated(context.Context, string)                    {}
func (NoOpMetrics) RecordStandingsExport(context.Context, string)                  {}
