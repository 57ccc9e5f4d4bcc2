package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/kitbuilder587/trendgate/internal/cache/memory"
	"github.com/kitbuilder587/trendgate/internal/domain"
	"github.com/kitbuilder587/trendgate/internal/fallback"
	"github.com/kitbuilder587/trendgate/internal/gsearch"
	gsearchMock "github.com/kitbuilder587/trendgate/internal/gsearch/mock"
	trendsMock "github.com/kitbuilder587/trendgate/internal/trends/mock"
)

func newSearchService(provider *gsearchMock.Client, trendsProvider *trendsMock.Client) SearchService {
	logger := zap.NewNop()
	return NewSearchService(SearchServiceDeps{
		Provider: provider,
		Trends: NewTrendsService(TrendsServiceDeps{
			Provider: trendsProvider,
			Cache:    memory.New(),
			Resolver: fallback.New(logger, nil),
			Logger:   logger,
			Config:   TrendsConfig{CacheTTL: time.Minute},
		}),
		Logger: logger,
	})
}

func TestSearch_EmptyQuery(t *testing.T) {
	s := newSearchService(gsearchMock.New(), trendsMock.New())

	_, err := s.Search(context.Background(), SearchQuery{Query: "  "})
	if !errors.Is(err, domain.ErrEmptyQuery) {
		t.Errorf("err = %v, want ErrEmptyQuery", err)
	}
}

func TestSearch_DefaultsAndClamp(t *testing.T) {
	provider := gsearchMock.New().WithResults([]gsearch.Result{{URL: "https://a"}})
	s := newSearchService(provider, trendsMock.New())

	if _, err := s.Search(context.Background(), SearchQuery{Query: "golang"}); err != nil {
		t.Fatalf("Search: %v", err)
	}
	if provider.Requests[0].NumResults != defaultSearchResults {
		t.Errorf("NumResults = %d, want default %d", provider.Requests[0].NumResults, defaultSearchResults)
	}

	if _, err := s.Search(context.Background(), SearchQuery{Query: "golang", NumResults: 500}); err != nil {
		t.Fatalf("Search: %v", err)
	}
	if provider.Requests[1].NumResults != maxSearchResults {
		t.Errorf("NumResults = %d, want clamped %d", provider.Requests[1].NumResults, maxSearchResults)
	}
}

func TestSearch_TimeoutPassedThrough(t *testing.T) {
	provider := gsearchMock.New().WithResults([]gsearch.Result{{URL: "https://a"}})
	s := newSearchService(provider, trendsMock.New())

	if _, err := s.Search(context.Background(), SearchQuery{Query: "golang", Timeout: 2.5}); err != nil {
		t.Fatalf("Search: %v", err)
	}
	if got := provider.Requests[0].Timeout; got != 2500*time.Millisecond {
		t.Errorf("Timeout = %v, want 2.5s", got)
	}
}

func TestSearch_EmptyResultsNotNil(t *testing.T) {
	s := newSearchService(gsearchMock.New(), trendsMock.New())

	results, err := s.Search(context.Background(), SearchQuery{Query: "nothing"})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if results == nil {
		t.Error("results must be empty non-nil slice")
	}
}

func TestCombined_FullSuccess(t *testing.T) {
	provider := gsearchMock.New().WithResults([]gsearch.Result{
		{Title: "Go", URL: "https://go.dev/", Description: "language"},
	})
	top := domain.TableResult([]string{"query", "value"}, [][]any{{"golang jobs", float64(90)}})
	trendsProvider := trendsMock.New().
		WithMethodResult("InterestOverTime", domain.TableResult([]string{"date", "golang"}, [][]any{{"d1", float64(10)}})).
		WithMethodResult("RelatedQueries", domain.KeyedResults(map[string]domain.KeyedResult{"golang": {Top: &top}}))

	s := newSearchService(provider, trendsProvider)

	combined, err := s.Combined(context.Background(), CombinedQuery{Query: "golang", NumResults: 5, IncludeTrends: true})
	if err != nil {
		t.Fatalf("Combined: %v", err)
	}
	if len(combined.SearchResults) != 1 || combined.SearchResults[0].URL != "https://go.dev/" {
		t.Errorf("SearchResults = %v", combined.SearchResults)
	}
	if len(combined.Interest) != 1 {
		t.Errorf("Interest = %v, want one point", combined.Interest)
	}
	if len(combined.Related["golang"].Top) != 1 {
		t.Errorf("Related = %v", combined.Related)
	}
	if len(combined.Notes) != 0 {
		t.Errorf("Notes = %v, want none on full success", combined.Notes)
	}
}

func TestCombined_TrendsOffByDefault(t *testing.T) {
	provider := gsearchMock.New().WithResults([]gsearch.Result{{URL: "https://go.dev/"}})
	trendsProvider := trendsMock.New().
		WithMethodResult("InterestOverTime", domain.TableResult([]string{"date", "golang"}, [][]any{{"d1", float64(10)}}))

	s := newSearchService(provider, trendsProvider)

	combined, err := s.Combined(context.Background(), CombinedQuery{Query: "golang"})
	if err != nil {
		t.Fatalf("Combined: %v", err)
	}
	if len(trendsProvider.Calls) != 0 {
		t.Errorf("trends provider called %d times (%v), want none without IncludeTrends", len(trendsProvider.Calls), trendsProvider.Calls)
	}
	if len(combined.SearchResults) != 1 {
		t.Errorf("SearchResults = %v", combined.SearchResults)
	}
	if combined.Interest == nil || len(combined.Interest) != 0 {
		t.Errorf("Interest = %v, want empty non-nil", combined.Interest)
	}
	if combined.Related == nil || len(combined.Related) != 0 {
		t.Errorf("Related = %v, want empty non-nil", combined.Related)
	}
	if len(combined.Notes) != 0 {
		t.Errorf("Notes = %v, want none", combined.Notes)
	}
}

func TestCombined_TrendsFailureDegrades(t *testing.T) {
	provider := gsearchMock.New().WithResults([]gsearch.Result{{URL: "https://go.dev/"}})
	trendsProvider := trendsMock.New().WithError(errors.New("trends down"))

	s := newSearchService(provider, trendsProvider)

	combined, err := s.Combined(context.Background(), CombinedQuery{Query: "golang", IncludeTrends: true})
	if err != nil {
		t.Fatalf("Combined must not fail on trends errors: %v", err)
	}
	if len(combined.SearchResults) != 1 {
		t.Errorf("SearchResults = %v", combined.SearchResults)
	}
	if len(combined.Notes) != 2 {
		t.Fatalf("Notes = %v, want interest and related failures", combined.Notes)
	}
	for _, note := range combined.Notes {
		if !strings.Contains(note, "unavailable") {
			t.Errorf("note %q should explain degradation", note)
		}
	}
	if combined.Interest == nil || combined.Related == nil {
		t.Error("degraded sections must stay empty non-nil")
	}
}

func TestCombined_SearchFailureFatal(t *testing.T) {
	provider := gsearchMock.New().WithError(gsearch.ErrBlocked)
	s := newSearchService(provider, trendsMock.New())

	_, err := s.Combined(context.Background(), CombinedQuery{Query: "golang"})
	if !errors.Is(err, gsearch.ErrBlocked) {
		t.Errorf("err = %v, want ErrBlocked (search part is mandatory)", err)
	}
}
