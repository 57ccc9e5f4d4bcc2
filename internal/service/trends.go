package service

import (
	"context"
	"crypto/sha256"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kitbuilder587/trendgate/internal/cache"
	"github.com/kitbuilder587/trendgate/internal/domain"
	"github.com/kitbuilder587/trendgate/internal/fallback"
	"github.com/kitbuilder587/trendgate/internal/metrics"
	"github.com/kitbuilder587/trendgate/internal/normalize"
	"github.com/kitbuilder587/trendgate/internal/trends"
)

// TrendsService - операции поверх trends-провайдера: валидация, кэш,
// нормализация и fallback-цепочки для trending-семейства.
type TrendsService interface {
	InterestOverTime(ctx context.Context, q domain.TrendsQuery) ([]domain.Record, error)
	InterestByRegion(ctx context.Context, q domain.RegionQuery) ([]domain.Record, error)
	RelatedTopics(ctx context.Context, q domain.TrendsQuery) (map[string]domain.TopRising, error)
	RelatedQueries(ctx context.Context, q domain.TrendsQuery) (map[string]domain.TopRising, error)

	// Trending-семейство не падает на отказах провайдера: отдаёт Outcome
	// с пометкой использованной стратегии, ошибка только на кривом входе.
	TrendingSearches(ctx context.Context, country string) (fallback.Outcome, error)
	RealtimeTrending(ctx context.Context, country, category string) (fallback.Outcome, error)
	TodaySearches(ctx context.Context, country string) (fallback.Outcome, error)

	TopCharts(ctx context.Context, year int, geo string) ([]domain.Record, error)
	Suggestions(ctx context.Context, keyword string) ([]domain.Record, error)
	Categories(ctx context.Context) (domain.Record, error)
}

type TrendsConfig struct {
	CacheTTL time.Duration
}

type TrendsServiceDeps struct {
	Provider trends.Provider
	Cache    cache.Cache
	Resolver *fallback.Resolver
	Logger   *zap.Logger
	Metrics  *metrics.Metrics
	Config   TrendsConfig
}

type trendsService struct {
	provider trends.Provider
	cache    cache.Cache
	resolver *fallback.Resolver
	logger   *zap.Logger
	metrics  *metrics.Metrics
	config   TrendsConfig
}

func NewTrendsService(deps TrendsServiceDeps) TrendsService {
	if deps.Config.CacheTTL == 0 {
		deps.Config.CacheTTL = 10 * time.Minute
	}
	return &trendsService{
		provider: deps.Provider,
		cache:    deps.Cache,
		resolver: deps.Resolver,
		logger:   deps.Logger,
		metrics:  deps.Metrics,
		config:   deps.Config,
	}
}

func (s *trendsService) interestRequest(q domain.TrendsQuery) trends.InterestRequest {
	return trends.InterestRequest{
		Keywords:  q.Keywords,
		Timeframe: q.Timeframe,
		Geo:       q.Geo,
		Hl:        q.Hl,
		Tz:        q.Tz,
		Cat:       q.Cat,
	}
}

// observe оборачивает вызов провайдера метрикой длительности и статуса.
func (s *trendsService) observe(call func() (domain.Result, error)) (domain.Result, error) {
	start := time.Now()
	result, err := call()
	if s.metrics != nil {
		status := "success"
		if err != nil {
			status = "error"
		}
		s.metrics.RecordUpstreamRequest("trends", status, time.Since(start))
	}
	return result, err
}

func (s *trendsService) InterestOverTime(ctx context.Context, q domain.TrendsQuery) ([]domain.Record, error) {
	q.Sanitize()
	if err := q.Validate(); err != nil {
		return nil, err
	}

	cacheKey := s.cacheKey("iot", q.Keywords, q.Timeframe, q.Geo)
	if records, ok := s.cachedRecords(cacheKey); ok {
		return records, nil
	}

	result, err := s.observe(func() (domain.Result, error) {
		return s.provider.InterestOverTime(ctx, s.interestRequest(q))
	})
	if err != nil {
		return nil, err
	}

	records := normalize.Records(result)
	s.cache.Set(cacheKey, records, s.config.CacheTTL)
	return records, nil
}

func (s *trendsService) InterestByRegion(ctx context.Context, q domain.RegionQuery) ([]domain.Record, error) {
	q.Sanitize()
	if err := q.Validate(); err != nil {
		return nil, err
	}

	cacheKey := s.cacheKey("region", q.Keywords, q.Timeframe, q.Geo, q.Resolution,
		fmt.Sprintf("%t/%t", q.IncLowVolume, q.IncGeoCode))
	if records, ok := s.cachedRecords(cacheKey); ok {
		return records, nil
	}

	result, err := s.observe(func() (domain.Result, error) {
		return s.provider.InterestByRegion(ctx, trends.RegionRequest{
			InterestRequest:  s.interestRequest(q.TrendsQuery),
			Resolution:       q.Resolution,
			IncludeLowVolume: q.IncLowVolume,
			IncludeGeoCode:   q.IncGeoCode,
		})
	})
	if err != nil {
		return nil, err
	}

	records := normalize.Records(result)
	s.cache.Set(cacheKey, records, s.config.CacheTTL)
	return records, nil
}

func (s *trendsService) RelatedTopics(ctx context.Context, q domain.TrendsQuery) (map[string]domain.TopRising, error) {
	return s.relatedCall(ctx, q, "topics", s.provider.RelatedTopics)
}

func (s *trendsService) RelatedQueries(ctx context.Context, q domain.TrendsQuery) (map[string]domain.TopRising, error) {
	return s.relatedCall(ctx, q, "queries", s.provider.RelatedQueries)
}

func (s *trendsService) relatedCall(
	ctx context.Context,
	q domain.TrendsQuery,
	kind string,
	call func(context.Context, trends.InterestRequest) (domain.Result, error),
) (map[string]domain.TopRising, error) {
	q.Sanitize()
	if err := q.Validate(); err != nil {
		return nil, err
	}

	cacheKey := s.cacheKey("related_"+kind, q.Keywords, q.Timeframe, q.Geo)
	if cached, ok := s.cache.Get(cacheKey); ok {
		if keyed, ok := cached.(map[string]domain.TopRising); ok {
			if s.metrics != nil {
				s.metrics.RecordCacheHit()
			}
			return keyed, nil
		}
	}
	if s.metrics != nil {
		s.metrics.RecordCacheMiss()
	}

	result, err := s.observe(func() (domain.Result, error) {
		return call(ctx, s.interestRequest(q))
	})
	if err != nil {
		return nil, err
	}

	keyed := normalize.Keyed(result, q.Keywords)
	s.cache.Set(cacheKey, keyed, s.config.CacheTTL)
	return keyed, nil
}

func (s *trendsService) TrendingSearches(ctx context.Context, country string) (fallback.Outcome, error) {
	code, err := domain.ResolveCountry(country)
	if err != nil {
		return fallback.Outcome{}, err
	}

	outcome := s.resolver.Resolve(ctx, []fallback.Strategy{
		{
			Name: "daily",
			Attempt: func(ctx context.Context) ([]domain.Record, error) {
				result, err := s.observe(func() (domain.Result, error) {
					return s.provider.TrendingSearches(ctx, domain.DailyTrendName(code))
				})
				if err != nil {
					return nil, err
				}
				return normalize.Records(result), nil
			},
		},
		{
			Name: "today",
			Attempt: func(ctx context.Context) ([]domain.Record, error) {
				return s.todayRecords(ctx, code)
			},
		},
	})
	return outcome, nil
}

func (s *trendsService) RealtimeTrending(ctx context.Context, country, category string) (fallback.Outcome, error) {
	code, err := domain.ResolveCountry(country)
	if err != nil {
		return fallback.Outcome{}, err
	}

	outcome := s.resolver.Resolve(ctx, []fallback.Strategy{
		{
			Name: "realtime",
			Attempt: func(ctx context.Context) ([]domain.Record, error) {
				result, err := s.observe(func() (domain.Result, error) {
					return s.provider.RealtimeTrendingSearches(ctx, code, category)
				})
				if err != nil {
					return nil, err
				}
				return normalize.Records(result), nil
			},
		},
		{
			Name: "today",
			Attempt: func(ctx context.Context) ([]domain.Record, error) {
				return s.todayRecords(ctx, code)
			},
		},
	})

	// деградация на дневные тренды помечается явно
	if outcome.UsedStrategy == "today" && outcome.Note == "" {
		outcome.Note = "realtime trends unavailable, showing today's trending searches"
	}
	return outcome, nil
}

func (s *trendsService) TodaySearches(ctx context.Context, country string) (fallback.Outcome, error) {
	code, err := domain.ResolveCountry(country)
	if err != nil {
		return fallback.Outcome{}, err
	}

	outcome := s.resolver.Resolve(ctx, []fallback.Strategy{
		{
			Name: "today",
			Attempt: func(ctx context.Context) ([]domain.Record, error) {
				return s.todayRecords(ctx, code)
			},
		},
	})
	return outcome, nil
}

func (s *trendsService) todayRecords(ctx context.Context, code string) ([]domain.Record, error) {
	result, err := s.observe(func() (domain.Result, error) {
		return s.provider.TodaySearches(ctx, code)
	})
	if err != nil {
		return nil, err
	}
	return normalize.Records(result), nil
}

func (s *trendsService) TopCharts(ctx context.Context, year int, geo string) ([]domain.Record, error) {
	if err := domain.ValidateChartYear(year, time.Now()); err != nil {
		return nil, err
	}

	cacheKey := s.cacheKey("topcharts", nil, fmt.Sprintf("%d", year), geo)
	if records, ok := s.cachedRecords(cacheKey); ok {
		return records, nil
	}

	result, err := s.observe(func() (domain.Result, error) {
		return s.provider.TopCharts(ctx, year, geo)
	})
	if err != nil {
		return nil, err
	}

	records := normalize.Records(result)
	s.cache.Set(cacheKey, records, s.config.CacheTTL)
	return records, nil
}

func (s *trendsService) Suggestions(ctx context.Context, keyword string) ([]domain.Record, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, domain.ErrEmptyQuery
	}

	cacheKey := s.cacheKey("suggest", nil, keyword)
	if records, ok := s.cachedRecords(cacheKey); ok {
		return records, nil
	}

	result, err := s.observe(func() (domain.Result, error) {
		return s.provider.Suggestions(ctx, keyword)
	})
	if err != nil {
		return nil, err
	}

	records := normalize.Records(result)
	s.cache.Set(cacheKey, records, s.config.CacheTTL)
	return records, nil
}

func (s *trendsService) Categories(ctx context.Context) (domain.Record, error) {
	const cacheKey = "trends:categories"
	if cached, ok := s.cache.Get(cacheKey); ok {
		if rec, ok := cached.(domain.Record); ok {
			if s.metrics != nil {
				s.metrics.RecordCacheHit()
			}
			return rec, nil
		}
	}
	if s.metrics != nil {
		s.metrics.RecordCacheMiss()
	}

	start := time.Now()
	categories, err := s.provider.Categories(ctx)
	if s.metrics != nil {
		status := "success"
		if err != nil {
			status = "error"
		}
		s.metrics.RecordUpstreamRequest("trends", status, time.Since(start))
	}
	if err != nil {
		return nil, err
	}

	s.cache.Set(cacheKey, categories, s.config.CacheTTL)
	return categories, nil
}

func (s *trendsService) cachedRecords(key string) ([]domain.Record, bool) {
	if cached, ok := s.cache.Get(key); ok {
		if records, ok := cached.([]domain.Record); ok {
			if s.metrics != nil {
				s.metrics.RecordCacheHit()
			}
			return records, true
		}
	}
	if s.metrics != nil {
		s.metrics.RecordCacheMiss()
	}
	return nil, false
}

func (s *trendsService) cacheKey(op string, keywords []string, parts ...string) string {
	data := strings.ToLower(strings.Join(keywords, ",")) + "|" + strings.Join(parts, "|")
	hash := sha256.Sum256([]byte(data))
	return fmt.Sprintf("trends:%s:%x", op, hash[:8])
}
