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
	"github.com/kitbuilder587/trendgate/internal/metrics"
	"github.com/kitbuilder587/trendgate/internal/suggest"
)

// AutocompleteQuery - параметры автодополнения.
type AutocompleteQuery struct {
	Keyword string
	Limit   int
	Lang    string
	Region  string
}

type AutocompleteService interface {
	Suggest(ctx context.Context, q AutocompleteQuery) ([]string, error)
}

type AutocompleteConfig struct {
	CacheTTL time.Duration
}

type AutocompleteServiceDeps struct {
	Provider suggest.Provider
	Cache    cache.Cache
	Logger   *zap.Logger
	Metrics  *metrics.Metrics
	Config   AutocompleteConfig
}

type autocompleteService struct {
	provider suggest.Provider
	cache    cache.Cache
	logger   *zap.Logger
	metrics  *metrics.Metrics
	config   AutocompleteConfig
}

func NewAutocompleteService(deps AutocompleteServiceDeps) AutocompleteService {
	if deps.Config.CacheTTL == 0 {
		deps.Config.CacheTTL = 10 * time.Minute
	}
	return &autocompleteService{
		provider: deps.Provider,
		cache:    deps.Cache,
		logger:   deps.Logger,
		metrics:  deps.Metrics,
		config:   deps.Config,
	}
}

func (s *autocompleteService) Suggest(ctx context.Context, q AutocompleteQuery) ([]string, error) {
	q.Keyword = strings.TrimSpace(q.Keyword)
	if q.Keyword == "" {
		return nil, domain.ErrEmptyQuery
	}

	cacheKey := s.cacheKey(q)
	if cached, ok := s.cache.Get(cacheKey); ok {
		if suggestions, ok := cached.([]string); ok {
			if s.metrics != nil {
				s.metrics.RecordCacheHit()
			}
			return suggestions, nil
		}
	}
	if s.metrics != nil {
		s.metrics.RecordCacheMiss()
	}

	start := time.Now()
	suggestions, err := s.provider.Suggest(ctx, suggest.Request{
		Keyword: q.Keyword,
		Limit:   q.Limit,
		Lang:    q.Lang,
		Region:  q.Region,
	})
	if s.metrics != nil {
		status := "success"
		if err != nil {
			status = "error"
		}
		s.metrics.RecordUpstreamRequest("suggest", status, time.Since(start))
	}
	if err != nil {
		return nil, err
	}

	if suggestions == nil {
		suggestions = []string{}
	}
	s.cache.Set(cacheKey, suggestions, s.config.CacheTTL)
	return suggestions, nil
}

func (s *autocompleteService) cacheKey(q AutocompleteQuery) string {
	data := fmt.Sprintf("%s|%d|%s|%s", strings.ToLower(q.Keyword), q.Limit, q.Lang, q.Region)
	hash := sha256.Sum256([]byte(data))
	return fmt.Sprintf("autocomplete:%x", hash[:8])
}
