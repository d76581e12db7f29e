package analyses

import (
	"context"
	"time"
)

// Repo defines persistence and read-side aggregation for analyses.
type Repo interface {
	Create(ctx context.Context, analysis Analysis) (Analysis, error)
	FindMany(ctx context.Context, params FindParams) (Page, error)
	// DailyStats buckets analyses created in [start, end] by UTC calendar day.
	DailyStats(ctx context.Context, start, end time.Time) ([]DailyStat, error)
	SummaryStats(ctx context.Context, windowDays int, now time.Time) (SummaryStats, error)
}
