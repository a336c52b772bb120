package jobs

import (
	"context"

	"github.com/commune-hq/community-server-go/internal/features/forum"
)

// RankingWarmJob keeps the engagement ranking cache populated so the
// first request after an invalidation does not pay the full join cost.
type RankingWarmJob struct {
	engagement *forum.EngagementService
}

// NewRankingWarmJob creates the cache warming job.
func NewRankingWarmJob(engagement *forum.EngagementService) *RankingWarmJob {
	return &RankingWarmJob{engagement: engagement}
}

// Name identifies the job in scheduler logs.
func (j *RankingWarmJob) Name() string { return "engagement-ranking-warm" }

// Execute recomputes the ranking and refreshes the cache.
func (j *RankingWarmJob) Execute(ctx context.Context) error {
	return j.engagement.Refresh(ctx)
}
