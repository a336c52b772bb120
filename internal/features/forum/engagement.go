package forum

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"time"

	"log/slog"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/commune-hq/community-server-go/pkg/cache"
	"github.com/commune-hq/community-server-go/pkg/memory"
)

// engagementCacheKey holds the viewer-independent ranked payload; the
// isFollowing flag is annotated per viewer after retrieval.
const engagementCacheKey = "forums:engagement:v1"

// RankedForum is one entry of the engagement ranking: the full detail
// view plus the discussion count the ordering is based on.
type RankedForum struct {
	DetailView
	DiscussionCount int `json:"discussionCount"`
}

// EngagementService computes and caches the forum ranking by discussion
// volume. Redis is the shared cache; an in-process TTL cache covers
// deployments without Redis.
type EngagementService struct {
	db     *gorm.DB
	redis  *cache.RedisClient
	local  *memory.Cache
	ttl    time.Duration
	logger *slog.Logger
}

// NewEngagementService constructs the ranking service.
func NewEngagementService(db *gorm.DB, redis *cache.RedisClient, ttl time.Duration, logger *slog.Logger) *EngagementService {
	return &EngagementService{
		db:     db,
		redis:  redis,
		local:  memory.New(ttl),
		ttl:    ttl,
		logger: logger,
	}
}

// Close stops the in-process cache's background cleanup.
func (s *EngagementService) Close() {
	s.local.Stop()
}

// Ranked returns all forums ordered by engagement, serving from cache
// when possible.
func (s *EngagementService) Ranked(ctx context.Context) ([]RankedForum, error) {
	if cached, ok := s.fromCache(ctx); ok {
		return cached, nil
	}

	ranked, err := s.compute()
	if err != nil {
		return nil, err
	}

	s.store(ctx, ranked)
	return ranked, nil
}

// Refresh recomputes the ranking and overwrites the cache. Used by the
// background warm job.
func (s *EngagementService) Refresh(ctx context.Context) error {
	ranked, err := s.compute()
	if err != nil {
		return err
	}

	s.store(ctx, ranked)
	return nil
}

// Invalidate drops the cached ranking after writes that change
// discussion counts.
func (s *EngagementService) Invalidate(ctx context.Context) {
	s.local.Delete(engagementCacheKey)

	if err := s.redis.Delete(ctx, engagementCacheKey); err != nil && !errors.Is(err, cache.ErrDisabled) {
		s.logger.Warn("engagement cache invalidation failed", slog.String("error", err.Error()))
	}
}

func (s *EngagementService) compute() ([]RankedForum, error) {
	forums, err := ListWithEngagement(s.db)
	if err != nil {
		return nil, err
	}

	ranked := make([]RankedForum, 0, len(forums))
	for i := range forums {
		ranked = append(ranked, RankedForum{
			DetailView:      NewDetailView(&forums[i], nil),
			DiscussionCount: len(forums[i].Discussions),
		})
	}

	sortByEngagement(ranked)
	return ranked, nil
}

// sortByEngagement orders forums by discussion count descending, breaking
// ties by forum id ascending so equal counts always rank deterministically.
func sortByEngagement(ranked []RankedForum) {
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].DiscussionCount != ranked[j].DiscussionCount {
			return ranked[i].DiscussionCount > ranked[j].DiscussionCount
		}
		return ranked[i].ID.String() < ranked[j].ID.String()
	})
}

// AnnotateForViewer copies the ranked list with isFollowing derived for
// the given viewer. The cached entries stay viewer-free.
func AnnotateForViewer(ranked []RankedForum, viewer uuid.UUID) []RankedForum {
	annotated := make([]RankedForum, len(ranked))
	for i, entry := range ranked {
		following := DeriveIsFollowing(entry.Enrolled, &viewer)
		entry.IsFollowing = &following
		annotated[i] = entry
	}
	return annotated
}

func (s *EngagementService) fromCache(ctx context.Context) ([]RankedForum, bool) {
	if value, ok := s.local.Get(engagementCacheKey); ok {
		if ranked, ok := value.([]RankedForum); ok {
			return ranked, true
		}
	}

	raw, err := s.redis.Get(ctx, engagementCacheKey)
	if err != nil {
		if !errors.Is(err, cache.ErrDisabled) && !errors.Is(err, cache.ErrMiss) {
			s.logger.Warn("engagement cache read failed", slog.String("error", err.Error()))
		}
		return nil, false
	}

	var ranked []RankedForum
	if err := json.Unmarshal([]byte(raw), &ranked); err != nil {
		s.logger.Warn("engagement cache payload corrupt", slog.String("error", err.Error()))
		return nil, false
	}

	s.local.Set(engagementCacheKey, ranked)
	return ranked, true
}

func (s *EngagementService) store(ctx context.Context, ranked []RankedForum) {
	s.local.Set(engagementCacheKey, ranked)

	encoded, err := json.Marshal(ranked)
	if err != nil {
		s.logger.Warn("engagement cache encode failed", slog.String("error", err.Error()))
		return
	}

	if err := s.redis.Set(ctx, engagementCacheKey, encoded, s.ttl); err != nil && !errors.Is(err, cache.ErrDisabled) {
		s.logger.Warn("engagement cache write failed", slog.String("error", err.Error()))
	}
}
