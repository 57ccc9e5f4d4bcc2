package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/kitbuilder587/trendgate/internal/cache/memory"
	"github.com/kitbuilder587/trendgate/internal/config"
	"github.com/kitbuilder587/trendgate/internal/domain"
	"github.com/kitbuilder587/trendgate/internal/explore"
	"github.com/kitbuilder587/trendgate/internal/fallback"
	"github.com/kitbuilder587/trendgate/internal/gsearch"
	gsearchMock "github.com/kitbuilder587/trendgate/internal/gsearch/mock"
	"github.com/kitbuilder587/trendgate/internal/ratelimit"
	"github.com/kitbuilder587/trendgate/internal/service"
	suggestMock "github.com/kitbuilder587/trendgate/internal/suggest/mock"
	trendsMock "github.com/kitbuilder587/trendgate/internal/trends/mock"
	youtubeMock "github.com/kitbuilder587/trendgate/internal/youtube/mock"
)

type serverMocks struct {
	trends  *trendsMock.Client
	search  *gsearchMock.Client
	suggest *suggestMock.Client
	youtube *youtubeMock.Client
}

func newTestServer(t *testing.T, maxCalls int) (*Server, *serverMocks) {
	t.Helper()
	logger := zap.NewNop()

	mocks := &serverMocks{
		trends:  trendsMock.New(),
		search:  gsearchMock.New(),
		suggest: suggestMock.New(),
		youtube: youtubeMock.New(),
	}

	store := memory.New()
	resolver := fallback.New(logger, nil)
	trendsService := service.NewTrendsService(service.TrendsServiceDeps{
		Provider: mocks.trends,
		Cache:    store,
		Resolver: resolver,
		Logger:   logger,
		Config:   service.TrendsConfig{CacheTTL: time.Minute},
	})

	srv := New(Deps{
		Config:  &config.Config{Server: config.ServerConfig{Port: 8080}},
		Logger:  logger,
		Limiter: ratelimit.New(ratelimit.Config{MaxCalls: maxCalls, Window: time.Minute}),
		Trends:  trendsService,
		Search: service.NewSearchService(service.SearchServiceDeps{
			Provider: mocks.search,
			Trends:   trendsService,
			Logger:   logger,
		}),
		Autocomplete: service.NewAutocompleteService(service.AutocompleteServiceDeps{
			Provider: mocks.suggest,
			Cache:    store,
			Logger:   logger,
			Config:   service.AutocompleteConfig{CacheTTL: time.Minute},
		}),
		Topics: service.NewTopicService(service.TopicServiceDeps{
			Explorer: explore.New(explore.Config{Delay: time.Millisecond}, logger),
			Provider: mocks.suggest,
			Logger:   logger,
		}),
		Transcripts: service.NewTranscriptService(service.TranscriptServiceDeps{
			Provider: mocks.youtube,
			Logger:   logger,
		}),
	})
	return srv, mocks
}

func doRequest(t *testing.T, srv *Server, path string) (*http.Response, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	resp, err := srv.App.Test(req)
	if err != nil {
		t.Fatalf("app.Test(%s): %v", path, err)
	}

	raw, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	var body map[string]any
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &body); err != nil {
			t.Fatalf("unmarshal %q: %v", raw, err)
		}
	}
	return resp, body
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t, 100)

	resp, body := doRequest(t, srv, "/health")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if body["status"] != "healthy" {
		t.Errorf("status field = %v", body["status"])
	}
	rl, ok := body["rate_limit_status"].(map[string]any)
	if !ok {
		t.Fatal("rate_limit_status missing")
	}
	if rl["max_calls"] != float64(100) {
		t.Errorf("max_calls = %v, want 100", rl["max_calls"])
	}
}

func TestHealth_BypassesRateLimit(t *testing.T) {
	srv, mocks := newTestServer(t, 1)
	mocks.trends.WithResult(domain.SeriesResult([]string{"x"}))

	// выбираем квоту единственным разрешённым запросом
	resp, _ := doRequest(t, srv, "/trends/suggestions?keyword=bitcoin")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("first call status = %d", resp.StatusCode)
	}
	resp, _ = doRequest(t, srv, "/trends/categories")
	if resp.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("second call status = %d, want 429", resp.StatusCode)
	}

	resp, _ = doRequest(t, srv, "/health")
	if resp.StatusCode != http.StatusOK {
		t.Errorf("/health status = %d, want 200 despite exhausted quota", resp.StatusCode)
	}
}

func TestInterestOverTime_Success(t *testing.T) {
	srv, mocks := newTestServer(t, 100)
	mocks.trends.WithResult(domain.TableResult(
		[]string{"date", "bitcoin"},
		[][]any{{"2024-01-01", float64(42)}},
	))

	resp, body := doRequest(t, srv, "/trends/interest-over-time?keywords=bitcoin&timeframe=today%203-m")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, body = %v", resp.StatusCode, body)
	}
	if body["status"] != "success" || body["endpoint"] != "interest_over_time" {
		t.Errorf("envelope = %v", body)
	}
	data, ok := body["data"].([]any)
	if !ok || len(data) != 1 {
		t.Errorf("data = %v", body["data"])
	}
}

func TestInterestOverTime_ValidationError(t *testing.T) {
	srv, mocks := newTestServer(t, 100)

	resp, body := doRequest(t, srv, "/trends/interest-over-time")
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	if body["error"] != "keywords" {
		t.Errorf("error param = %v, want keywords", body["error"])
	}
	if len(mocks.trends.Calls) != 0 {
		t.Error("provider must not be called on validation failure")
	}
}

func TestInterestOverTime_UpstreamFailure(t *testing.T) {
	srv, mocks := newTestServer(t, 100)
	mocks.trends.WithError(errors.New("upstream down"))

	resp, body := doRequest(t, srv, "/trends/interest-over-time?keywords=bitcoin")
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", resp.StatusCode)
	}
	if body["status"] != "error" {
		t.Errorf("body = %v", body)
	}
}

func TestRealtimeTrending_DegradesWithNote(t *testing.T) {
	srv, mocks := newTestServer(t, 100)
	mocks.trends.WithMethodError("RealtimeTrendingSearches", errors.New("realtime down"))
	mocks.trends.WithMethodResult("TodaySearches", domain.SeriesResult([]string{"daily"}))

	resp, body := doRequest(t, srv, "/trends/realtime-trending-searches?pn=us")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200 (degraded, not failed)", resp.StatusCode)
	}
	if body["note"] == nil || body["note"] == "" {
		t.Error("degraded response must carry note")
	}
	meta := body["metadata"].(map[string]any)
	if meta["strategy"] != "today" {
		t.Errorf("strategy = %v, want today", meta["strategy"])
	}
}

func TestTrendingSearches_UnsupportedCountry(t *testing.T) {
	srv, _ := newTestServer(t, 100)

	resp, body := doRequest(t, srv, "/trends/trending-searches?pn=atlantis")
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	msg, _ := body["message"].(string)
	if msg == "" || body["error"] != "pn" {
		t.Errorf("body = %v", body)
	}
}

func TestTopCharts_NonIntegerYear(t *testing.T) {
	srv, _ := newTestServer(t, 100)

	resp, body := doRequest(t, srv, "/trends/top-charts?date=abc")
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	if body["error"] != "date" {
		t.Errorf("error param = %v, want date", body["error"])
	}
}

func TestTranscript_InvalidFormat(t *testing.T) {
	srv, _ := newTestServer(t, 100)

	resp, body := doRequest(t, srv, "/youtube/transcript?video_id=abc123&format=xml")
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	if body["error"] != "format" {
		t.Errorf("error param = %v, want format", body["error"])
	}
}

func TestUnknownRoute_ListsAvailable(t *testing.T) {
	srv, _ := newTestServer(t, 100)

	resp, body := doRequest(t, srv, "/nope")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}
	routes, ok := body["available_routes"].([]any)
	if !ok || len(routes) == 0 {
		t.Errorf("available_routes = %v", body["available_routes"])
	}
}

func TestRateLimit_Exhaustion(t *testing.T) {
	srv, mocks := newTestServer(t, 3)
	mocks.trends.WithResult(domain.SeriesResult([]string{"x"}))

	for i := 0; i < 3; i++ {
		resp, _ := doRequest(t, srv, "/trends/categories")
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("call %d status = %d, want 200", i, resp.StatusCode)
		}
	}
	resp, body := doRequest(t, srv, "/trends/categories")
	if resp.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", resp.StatusCode)
	}
	if body["status"] != "error" {
		t.Errorf("body = %v", body)
	}
}

func TestCombinedSearch_TrendsOnlyOnRequest(t *testing.T) {
	srv, mocks := newTestServer(t, 100)
	mocks.search.WithResults([]gsearch.Result{{URL: "https://go.dev/"}})
	mocks.trends.WithResult(domain.TableResult(
		[]string{"date", "bitcoin"},
		[][]any{{"2024-01-01", float64(42)}},
	))

	resp, _ := doRequest(t, srv, "/search/combined?q=bitcoin")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if len(mocks.trends.Calls) != 0 {
		t.Errorf("trends calls = %v, want none without include_trends", mocks.trends.Calls)
	}

	resp, _ = doRequest(t, srv, "/search/combined?q=bitcoin&include_trends=true")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if len(mocks.trends.Calls) == 0 {
		t.Error("include_trends=true must reach the trends provider")
	}
}

func TestAutocomplete(t *testing.T) {
	srv, mocks := newTestServer(t, 100)
	mocks.suggest.WithSuggestions([]string{"bitcoin price", "bitcoin news"})

	resp, body := doRequest(t, srv, "/autocomplete?keyword=bitcoin&num=5")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	data, ok := body["data"].([]any)
	if !ok || len(data) != 2 {
		t.Errorf("data = %v", body["data"])
	}
}

func TestNicheTopics(t *testing.T) {
	srv, mocks := newTestServer(t, 100)
	mocks.suggest.WithKeywordSuggestions("bitcoin", []string{"bitcoin price"})

	resp, body := doRequest(t, srv, "/niche-topics?keyword=bitcoin&depth=1&results_per_level=2")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	data, ok := body["data"].(map[string]any)
	if !ok || data["keyword"] != "bitcoin" {
		t.Errorf("data = %v", body["data"])
	}
}
