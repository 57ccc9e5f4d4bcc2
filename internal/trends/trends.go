package trends

import (
	"context"
	"errors"

	"github.com/kitbuilder587/trendgate/internal/domain"
)

var (
	ErrRequestFailed = errors.New("trends request failed")
	ErrQuotaExceeded = errors.New("trends quota exceeded")
	ErrBadResponse   = errors.New("unexpected trends response")
	ErrNoWidget      = errors.New("widget not found in explore response")
)

// InterestRequest - общие параметры keyword-ориентированных вызовов.
type InterestRequest struct {
	Keywords  []string
	Timeframe string
	Geo       string
	Hl        string
	Tz        int
	Cat       int
}

// RegionRequest - параметры разбивки интереса по регионам.
type RegionRequest struct {
	InterestRequest
	Resolution       string
	IncludeLowVolume bool
	IncludeGeoCode   bool
}

// Provider - единственная блокирующая способность trends-источника.
// Каждый вызов несёт собственный таймаут и ретраи; наружу уходит либо
// нативный табличный результат, либо ошибка.
type Provider interface {
	InterestOverTime(ctx context.Context, req InterestRequest) (domain.Result, error)
	InterestByRegion(ctx context.Context, req RegionRequest) (domain.Result, error)
	RelatedTopics(ctx context.Context, req InterestRequest) (domain.Result, error)
	RelatedQueries(ctx context.Context, req InterestRequest) (domain.Result, error)

	// TrendingSearches принимает страну в формате daily-источника (united_states).
	TrendingSearches(ctx context.Context, country string) (domain.Result, error)
	// RealtimeTrendingSearches и TodaySearches принимают канонический ISO-код.
	RealtimeTrendingSearches(ctx context.Context, countryCode, category string) (domain.Result, error)
	TodaySearches(ctx context.Context, countryCode string) (domain.Result, error)

	TopCharts(ctx context.Context, year int, geo string) (domain.Result, error)
	Suggestions(ctx context.Context, keyword string) (domain.Result, error)
	Categories(ctx context.Context) (domain.Record, error)
}
