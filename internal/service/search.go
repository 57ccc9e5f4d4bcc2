package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kitbuilder587/trendgate/internal/domain"
	"github.com/kitbuilder587/trendgate/internal/gsearch"
	"github.com/kitbuilder587/trendgate/internal/metrics"
)

const (
	defaultSearchResults = 10
	maxSearchResults     = 50
)

// SearchQuery - параметры поисковой выдачи. Timeout в секундах
// ограничивает один запрос, ноль оставляет таймаут клиента.
type SearchQuery struct {
	Query         string
	NumResults    int
	Lang          string
	Advanced      bool
	SleepInterval float64
	Timeout       float64
}

// CombinedQuery - поиск, опционально обогащённый trends-данными по тому же
// запросу. Без IncludeTrends trends-провайдер не трогается вовсе.
type CombinedQuery struct {
	Query         string
	NumResults    int
	Lang          string
	Timeframe     string
	Geo           string
	IncludeTrends bool
}

// CombinedResult собирает выдачу и trends-срез. Отказ trends-части не
// роняет ответ: провал уходит в Notes, поисковая часть обязательна.
type CombinedResult struct {
	Query         string                      `json:"query"`
	SearchResults []gsearch.Result            `json:"search_results"`
	Interest      []domain.Record             `json:"interest_over_time"`
	Related       map[string]domain.TopRising `json:"related_queries"`
	Notes         []string                    `json:"notes,omitempty"`
}

type SearchService interface {
	Search(ctx context.Context, q SearchQuery) ([]gsearch.Result, error)
	Combined(ctx context.Context, q CombinedQuery) (CombinedResult, error)
}

type SearchServiceDeps struct {
	Provider gsearch.Provider
	Trends   TrendsService
	Logger   *zap.Logger
	Metrics  *metrics.Metrics
}

type searchService struct {
	provider gsearch.Provider
	trends   TrendsService
	logger   *zap.Logger
	metrics  *metrics.Metrics
}

func NewSearchService(deps SearchServiceDeps) SearchService {
	return &searchService{
		provider: deps.Provider,
		trends:   deps.Trends,
		logger:   deps.Logger,
		metrics:  deps.Metrics,
	}
}

func (q *SearchQuery) sanitize() error {
	q.Query = strings.TrimSpace(q.Query)
	if q.Query == "" {
		return domain.ErrEmptyQuery
	}
	if q.NumResults <= 0 {
		q.NumResults = defaultSearchResults
	}
	if q.NumResults > maxSearchResults {
		q.NumResults = maxSearchResults
	}
	return nil
}

func (s *searchService) Search(ctx context.Context, q SearchQuery) ([]gsearch.Result, error) {
	if err := q.sanitize(); err != nil {
		return nil, err
	}

	start := time.Now()
	results, err := s.provider.Search(ctx, gsearch.Request{
		Query:         q.Query,
		NumResults:    q.NumResults,
		Lang:          q.Lang,
		Advanced:      q.Advanced,
		SleepInterval: q.SleepInterval,
		Timeout:       time.Duration(q.Timeout * float64(time.Second)),
	})
	if s.metrics != nil {
		status := "success"
		if err != nil {
			status = "error"
		}
		s.metrics.RecordUpstreamRequest("gsearch", status, time.Since(start))
	}
	if err != nil {
		return nil, err
	}

	if results == nil {
		results = []gsearch.Result{}
	}
	return results, nil
}

// Combined выполняет поиск и, по запросу, trends-вызовы параллельно.
// Trends-запрос строится из того же ключевика, таймфрейм и geo берутся
// из запроса.
func (s *searchService) Combined(ctx context.Context, q CombinedQuery) (CombinedResult, error) {
	query := strings.TrimSpace(q.Query)
	if query == "" {
		return CombinedResult{}, domain.ErrEmptyQuery
	}

	result := CombinedResult{
		Query:    query,
		Interest: []domain.Record{},
		Related:  map[string]domain.TopRising{},
	}
	trendsQuery := domain.TrendsQuery{
		Keywords:  []string{query},
		Timeframe: q.Timeframe,
		Geo:       q.Geo,
	}

	var (
		interestNote string
		relatedNote  string
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		results, err := s.Search(gctx, SearchQuery{
			Query:      query,
			NumResults: q.NumResults,
			Lang:       q.Lang,
			Advanced:   true,
		})
		if err != nil {
			return err
		}
		result.SearchResults = results
		return nil
	})

	if q.IncludeTrends {
		g.Go(func() error {
			interest, err := s.trends.InterestOverTime(gctx, trendsQuery)
			if err != nil {
				interestNote = fmt.Sprintf("interest over time unavailable: %v", err)
				return nil
			}
			result.Interest = interest
			return nil
		})

		g.Go(func() error {
			related, err := s.trends.RelatedQueries(gctx, trendsQuery)
			if err != nil {
				relatedNote = fmt.Sprintf("related queries unavailable: %v", err)
				return nil
			}
			result.Related = related
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return CombinedResult{}, err
	}

	if interestNote != "" {
		s.logger.Warn("combined search degraded", zap.String("reason", interestNote))
		result.Notes = append(result.Notes, interestNote)
	}
	if relatedNote != "" {
		s.logger.Warn("combined search degraded", zap.String("reason", relatedNote))
		result.Notes = append(result.Notes, relatedNote)
	}

	return result, nil
}
