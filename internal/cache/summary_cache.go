package cache

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"bizledger/internal/domain"
	applog "bizledger/internal/log"
)

// SummaryCache stores computed summaries per business, period and ranking
// limit. Redis failures are logged and treated as misses.
type SummaryCache struct {
	rc *RedisCache
}

func NewSummaryCache(rc *RedisCache) *SummaryCache { return &SummaryCache{rc: rc} }

func summaryKey(businessID string, p domain.Period, limit int) string {
	return fmt.Sprintf("summary:%s:%s:%d", businessID, p, limit)
}

func (s *SummaryCache) Get(ctx context.Context, businessID string, p domain.Period, limit int) (*domain.Summary, bool) {
	var sum domain.Summary
	err := s.rc.Get(ctx, summaryKey(businessID, p, limit), &sum)
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			applog.Error(nil, "cache.summary.get.fail", err, map[string]any{"business_id": businessID})
		}
		return nil, false
	}
	return &sum, true
}

func (s *SummaryCache) Put(ctx context.Context, sum *domain.Summary, limit int) {
	if err := s.rc.Set(ctx, summaryKey(sum.BusinessID, sum.Period, limit), sum); err != nil {
		applog.Error(nil, "cache.summary.set.fail", err, map[string]any{"business_id": sum.BusinessID})
	}
}

func (s *SummaryCache) Invalidate(ctx context.Context, businessID string) {
	if err := s.rc.DeleteByPattern(ctx, "summary:"+businessID+":*"); err != nil {
		applog.Error(nil, "cache.summary.invalidate.fail", err, map[string]any{"business_id": businessID})
	}
}
