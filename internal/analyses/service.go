package analyses

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"resume-screener/internal/shared/cache"
	"resume-screener/internal/shared/result"
	"resume-screener/internal/shared/telemetry"
)

const (
	summaryGenerationKey = "analytics:summary:gen"
	defaultSummaryTTL    = 30 * time.Second
)

// Service computes read-only projections over the analyses store.
type Service struct {
	Repo Repo
	// Cache is optional; summaries are recomputed on every call without it.
	Cache    cache.Cache
	CacheTTL time.Duration
	Now      func() time.Time
}

// NewService constructs a Service.
func NewService(repo Repo, c cache.Cache, ttl time.Duration) *Service {
	return &Service{Repo: repo, Cache: c, CacheTTL: ttl, Now: time.Now}
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// List returns one page of analyses joined with their résumés.
func (s *Service) List(ctx context.Context, params FindParams) result.Result[Page] {
	page, err := s.Repo.FindMany(ctx, params.Normalized())
	if err != nil {
		return result.Failure[Page](fmt.Errorf("list analyses: %w", err))
	}
	return result.Success(page)
}

// Timeseries returns sparse UTC daily buckets for [start, end].
func (s *Service) Timeseries(ctx context.Context, start, end time.Time) result.Result[[]DailyStat] {
	if start.After(end) {
		return result.Failure[[]DailyStat](ValidationErrors{{Param: "start", Message: "must not be after end"}})
	}
	items, err := s.Repo.DailyStats(ctx, start, end)
	if err != nil {
		return result.Failure[[]DailyStat](fmt.Errorf("daily stats: %w", err))
	}
	return result.Success(items)
}

// Summary returns all-time and windowed statistics plus the window change.
func (s *Service) Summary(ctx context.Context, windowDays int) result.Result[Summary] {
	if windowDays <= 0 {
		windowDays = DefaultWindowDays
	}

	key := s.summaryKey(ctx, windowDays)
	if cached, ok := s.cachedSummary(ctx, key); ok {
		return result.Success(cached)
	}

	stats, err := s.Repo.SummaryStats(ctx, windowDays, s.now())
	if err != nil {
		return result.Failure[Summary](fmt.Errorf("summary stats: %w", err))
	}
	out := Summary{
		SummaryStats:        stats,
		WindowDays:          windowDays,
		LastWindowChangePct: ChangePercent(stats.NewAnalysesLastWindow, stats.NewAnalysesPrevWindow),
	}
	s.storeSummary(ctx, key, out)
	return result.Success(out)
}

// AnalysisCreated invalidates cached summaries by bumping the cache generation.
func (s *Service) AnalysisCreated(ctx context.Context) {
	if s.Cache == nil {
		return
	}
	if _, err := s.Cache.Incr(ctx, summaryGenerationKey); err != nil {
		telemetry.Warn("analytics.cache_invalidate_failed", map[string]any{"error": err})
	}
}

func (s *Service) summaryKey(ctx context.Context, windowDays int) string {
	if s.Cache == nil {
		return ""
	}
	gen := "0"
	raw, found, err := s.Cache.Get(ctx, summaryGenerationKey)
	switch {
	case err != nil:
		telemetry.Warn("analytics.cache_unavailable", map[string]any{"error": err})
		return ""
	case found:
		if _, perr := strconv.ParseInt(string(raw), 10, 64); perr == nil {
			gen = string(raw)
		}
	}
	return fmt.Sprintf("analytics:summary:v%s:w%d", gen, windowDays)
}

func (s *Service) cachedSummary(ctx context.Context, key string) (Summary, bool) {
	if key == "" {
		return Summary{}, false
	}
	raw, found, err := s.Cache.Get(ctx, key)
	if err != nil || !found {
		return Summary{}, false
	}
	var out Summary
	if err := json.Unmarshal(raw, &out); err != nil {
		return Summary{}, false
	}
	return out, true
}

func (s *Service) storeSummary(ctx context.Context, key string, summary Summary) {
	if key == "" {
		return
	}
	raw, err := json.Marshal(summary)
	if err != nil {
		return
	}
	ttl := s.CacheTTL
	if ttl <= 0 {
		ttl = defaultSummaryTTL
	}
	if err := s.Cache.Set(ctx, key, raw, ttl); err != nil {
		telemetry.Warn("analytics.cache_store_failed", map[string]any{"error": err})
	}
}
