package google

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kitbuilder587/trendgate/internal/domain"
	"github.com/kitbuilder587/trendgate/internal/trends"
)

const (
	explorePath      = "/trends/api/explore"
	multilinePath    = "/trends/api/widgetdata/multiline"
	comparedGeoPath  = "/trends/api/widgetdata/comparedgeo"
	relatedPath      = "/trends/api/widgetdata/relatedsearches"
	dailyPath        = "/trends/api/dailytrends"
	realtimePath     = "/trends/api/realtimetrends"
	topChartsPath    = "/trends/api/topcharts"
	autocompletePath = "/trends/api/autocomplete/"
	categoriesPath   = "/trends/api/explore/pickers/category"
	hotTrendsPath    = "/trends/hottrends/visualize/internal/data"

	defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

type Config struct {
	BaseURL string
	Timeout time.Duration
	Retries int
	Backoff time.Duration
	Hl      string
	Tz      int
}

// Client ходит в недокументированный trends API. Ответы приходят с мусорным
// префиксом перед JSON, который приходится срезать.
type Client struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
	retries int
	backoff time.Duration
	hl      string
	tz      int
}

func New(cfg Config, logger *zap.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://trends.google.com"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 25 * time.Second
	}
	if cfg.Retries < 0 {
		cfg.Retries = 0
	}
	if cfg.Backoff == 0 {
		cfg.Backoff = 500 * time.Millisecond
	}
	if cfg.Hl == "" {
		cfg.Hl = "en-US"
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		client:  &http.Client{Timeout: cfg.Timeout},
		logger:  logger,
		retries: cfg.Retries,
		backoff: cfg.Backoff,
		hl:      cfg.Hl,
		tz:      cfg.Tz,
	}
}

// get выполняет запрос с ограниченными ретраями и фиксированным бэкоффом.
// Ретраится сетевая ошибка, 5xx и 429; прочие статусы фатальны сразу.
func (c *Client) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	var lastErr error

	for attempt := 0; attempt <= c.retries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(c.backoff):
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("User-Agent", defaultUserAgent)
		req.Header.Set("Accept", "application/json")

		resp, err := c.client.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("do request: %w", err)
			continue
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = fmt.Errorf("read response: %w", err)
			continue
		}

		switch {
		case resp.StatusCode == http.StatusOK:
			return stripJSONPrefix(body), nil
		case resp.StatusCode == http.StatusTooManyRequests:
			lastErr = trends.ErrQuotaExceeded
			continue
		case resp.StatusCode >= 500:
			lastErr = fmt.Errorf("server error: %d", resp.StatusCode)
			continue
		default:
			return nil, fmt.Errorf("%w: status %d for %s", trends.ErrRequestFailed, resp.StatusCode, path)
		}
	}

	if errors.Is(lastErr, trends.ErrQuotaExceeded) {
		return nil, lastErr
	}
	return nil, fmt.Errorf("%w: %v", trends.ErrRequestFailed, lastErr)
}

// stripJSONPrefix срезает anti-XSSI префикс вида ")]}'," перед телом JSON.
func stripJSONPrefix(body []byte) []byte {
	idx := bytes.IndexAny(body, "[{")
	if idx < 0 {
		return body
	}
	return body[idx:]
}

type widget struct {
	ID      string          `json:"id"`
	Token   string          `json:"token"`
	Request json.RawMessage `json:"request"`
}

func (c *Client) baseParams(hl string, tz int) url.Values {
	if hl == "" {
		hl = c.hl
	}
	if tz == 0 {
		tz = c.tz
	}
	params := url.Values{}
	params.Set("hl", hl)
	params.Set("tz", strconv.Itoa(tz))
	return params
}

// explore получает виджеты с токенами - обязательный первый шаг для
// timeseries/geo/related вызовов.
func (c *Client) explore(ctx context.Context, req trends.InterestRequest) ([]widget, error) {
	type comparisonItem struct {
		Keyword string `json:"keyword"`
		Geo     string `json:"geo"`
		Time    string `json:"time"`
	}
	payload := struct {
		ComparisonItem []comparisonItem `json:"comparisonItem"`
		Category       int              `json:"category"`
		Property       string           `json:"property"`
	}{
		Category: req.Cat,
	}
	for _, kw := range req.Keywords {
		payload.ComparisonItem = append(payload.ComparisonItem, comparisonItem{
			Keyword: kw,
			Geo:     req.Geo,
			Time:    req.Timeframe,
		})
	}

	reqJSON, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal explore payload: %w", err)
	}

	params := c.baseParams(req.Hl, req.Tz)
	params.Set("req", string(reqJSON))

	body, err := c.get(ctx, explorePath, params)
	if err != nil {
		return nil, err
	}

	var parsed struct {
		Widgets []widget `json:"widgets"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("%w: explore: %v", trends.ErrBadResponse, err)
	}
	return parsed.Widgets, nil
}

func findWidget(widgets []widget, id string) (widget, bool) {
	for _, w := range widgets {
		if w.ID == id {
			return w, true
		}
	}
	return widget{}, false
}

// findWidgets возвращает все виджеты с данным префиксом id в порядке выдачи -
// related-виджеты идут по одному на ключевик в порядке запроса.
func findWidgets(widgets []widget, prefix string) []widget {
	var out []widget
	for _, w := range widgets {
		if strings.HasPrefix(w.ID, prefix) {
			out = append(out, w)
		}
	}
	return out
}

func (c *Client) widgetData(ctx context.Context, path string, w widget, hl string, tz int) ([]byte, error) {
	params := c.baseParams(hl, tz)
	params.Set("req", string(w.Request))
	params.Set("token", w.Token)
	return c.get(ctx, path, params)
}

func (c *Client) InterestOverTime(ctx context.Context, req trends.InterestRequest) (domain.Result, error) {
	widgets, err := c.explore(ctx, req)
	if err != nil {
		return domain.EmptyResult(), err
	}
	w, ok := findWidget(widgets, "TIMESERIES")
	if !ok {
		return domain.EmptyResult(), fmt.Errorf("%w: TIMESERIES", trends.ErrNoWidget)
	}

	body, err := c.widgetData(ctx, multilinePath, w, req.Hl, req.Tz)
	if err != nil {
		return domain.EmptyResult(), err
	}

	var parsed struct {
		Default struct {
			TimelineData []struct {
				Time      string    `json:"time"`
				Value     []float64 `json:"value"`
				IsPartial bool      `json:"isPartial"`
			} `json:"timelineData"`
		} `json:"default"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return domain.EmptyResult(), fmt.Errorf("%w: multiline: %v", trends.ErrBadResponse, err)
	}

	columns := append([]string{"date"}, req.Keywords...)
	columns = append(columns, "isPartial")

	cells := make([][]any, 0, len(parsed.Default.TimelineData))
	for _, point := range parsed.Default.TimelineData {
		sec, err := strconv.ParseInt(point.Time, 10, 64)
		if err != nil {
			continue
		}
		row := make([]any, 0, len(columns))
		row = append(row, time.Unix(sec, 0).UTC())
		for i := range req.Keywords {
			if i < len(point.Value) {
				row = append(row, point.Value[i])
			} else {
				row = append(row, float64(0))
			}
		}
		row = append(row, point.IsPartial)
		cells = append(cells, row)
	}

	return domain.TableResult(columns, cells), nil
}

func (c *Client) InterestByRegion(ctx context.Context, req trends.RegionRequest) (domain.Result, error) {
	widgets, err := c.explore(ctx, req.InterestRequest)
	if err != nil {
		return domain.EmptyResult(), err
	}
	w, ok := findWidget(widgets, "GEO_MAP")
	if !ok {
		return domain.EmptyResult(), fmt.Errorf("%w: GEO_MAP", trends.ErrNoWidget)
	}

	// resolution и low-volume флаги живут внутри widget request
	var wreq map[string]any
	if err := json.Unmarshal(w.Request, &wreq); err != nil {
		return domain.EmptyResult(), fmt.Errorf("%w: geo widget request: %v", trends.ErrBadResponse, err)
	}
	wreq["resolution"] = req.Resolution
	wreq["includeLowSearchVolumeGeos"] = req.IncludeLowVolume
	patched, err := json.Marshal(wreq)
	if err != nil {
		return domain.EmptyResult(), fmt.Errorf("marshal geo widget request: %w", err)
	}
	w.Request = patched

	body, err := c.widgetData(ctx, comparedGeoPath, w, req.Hl, req.Tz)
	if err != nil {
		return domain.EmptyResult(), err
	}

	var parsed struct {
		Default struct {
			GeoMapData []struct {
				GeoName string    `json:"geoName"`
				GeoCode string    `json:"geoCode"`
				Value   []float64 `json:"value"`
				HasData []bool    `json:"hasData"`
			} `json:"geoMapData"`
		} `json:"default"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return domain.EmptyResult(), fmt.Errorf("%w: comparedgeo: %v", trends.ErrBadResponse, err)
	}

	columns := []string{"geoName"}
	if req.IncludeGeoCode {
		columns = append(columns, "geoCode")
	}
	columns = append(columns, req.Keywords...)

	cells := make([][]any, 0, len(parsed.Default.GeoMapData))
	for _, region := range parsed.Default.GeoMapData {
		if !req.IncludeLowVolume && len(region.HasData) > 0 && !region.HasData[0] {
			continue
		}
		row := make([]any, 0, len(columns))
		row = append(row, region.GeoName)
		if req.IncludeGeoCode {
			row = append(row, region.GeoCode)
		}
		for i := range req.Keywords {
			if i < len(region.Value) {
				row = append(row, region.Value[i])
			} else {
				row = append(row, float64(0))
			}
		}
		cells = append(cells, row)
	}

	return domain.TableResult(columns, cells), nil
}

func (c *Client) RelatedTopics(ctx context.Context, req trends.InterestRequest) (domain.Result, error) {
	return c.related(ctx, req, "RELATED_TOPICS", topicColumns)
}

func (c *Client) RelatedQueries(ctx context.Context, req trends.InterestRequest) (domain.Result, error) {
	return c.related(ctx, req, "RELATED_QUERIES", queryColumns)
}

var (
	queryColumns = []string{"query", "value"}
	topicColumns = []string{"title", "type", "value"}
)

type rankedEntry struct {
	Query string `json:"query"`
	Topic struct {
		Title string `json:"title"`
		Type  string `json:"type"`
	} `json:"topic"`
	Value          float64 `json:"value"`
	FormattedValue string  `json:"formattedValue"`
}

// related выкачивает top/rising таблицы - по одному виджету на ключевик,
// в порядке исходного запроса.
func (c *Client) related(ctx context.Context, req trends.InterestRequest, widgetID string, columns []string) (domain.Result, error) {
	widgets, err := c.explore(ctx, req)
	if err != nil {
		return domain.EmptyResult(), err
	}

	related := findWidgets(widgets, widgetID)
	keyed := make(map[string]domain.KeyedResult, len(req.Keywords))

	for i, kw := range req.Keywords {
		if i >= len(related) {
			break
		}

		body, err := c.widgetData(ctx, relatedPath, related[i], req.Hl, req.Tz)
		if err != nil {
			// частичный отказ по одному ключевику не роняет весь вызов
			c.logger.Warn("related widget fetch failed",
				zap.String("keyword", kw),
				zap.Error(err),
			)
			continue
		}

		var parsed struct {
			Default struct {
				RankedList []struct {
					RankedKeyword []rankedEntry `json:"rankedKeyword"`
				} `json:"rankedList"`
			} `json:"default"`
		}
		if err := json.Unmarshal(body, &parsed); err != nil {
			return domain.EmptyResult(), fmt.Errorf("%w: relatedsearches: %v", trends.ErrBadResponse, err)
		}

		entry := domain.KeyedResult{}
		lists := parsed.Default.RankedList
		if len(lists) > 0 {
			top := rankedTable(lists[0].RankedKeyword, columns)
			entry.Top = &top
		}
		if len(lists) > 1 {
			rising := rankedTable(lists[1].RankedKeyword, columns)
			entry.Rising = &rising
		}
		keyed[kw] = entry
	}

	return domain.KeyedResults(keyed), nil
}

func rankedTable(entries []rankedEntry, columns []string) domain.Result {
	cells := make([][]any, 0, len(entries))
	for _, e := range entries {
		if len(columns) == 2 {
			cells = append(cells, []any{e.Query, e.Value})
		} else {
			cells = append(cells, []any{e.Topic.Title, e.Topic.Type, e.Value})
		}
	}
	return domain.TableResult(columns, cells)
}

func (c *Client) TrendingSearches(ctx context.Context, country string) (domain.Result, error) {
	body, err := c.get(ctx, hotTrendsPath, c.baseParams("", 0))
	if err != nil {
		return domain.EmptyResult(), err
	}

	var parsed map[string][]string
	if err := json.Unmarshal(body, &parsed); err != nil {
		return domain.EmptyResult(), fmt.Errorf("%w: hottrends: %v", trends.ErrBadResponse, err)
	}

	return domain.SeriesResult(parsed[country]), nil
}

func (c *Client) TodaySearches(ctx context.Context, countryCode string) (domain.Result, error) {
	params := c.baseParams("", 0)
	params.Set("geo", countryCode)
	params.Set("ns", "15")

	body, err := c.get(ctx, dailyPath, params)
	if err != nil {
		return domain.EmptyResult(), err
	}

	var parsed struct {
		Default struct {
			TrendingSearchesDays []struct {
				TrendingSearches []struct {
					Title struct {
						Query string `json:"query"`
					} `json:"title"`
				} `json:"trendingSearches"`
			} `json:"trendingSearchesDays"`
		} `json:"default"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return domain.EmptyResult(), fmt.Errorf("%w: dailytrends: %v", trends.ErrBadResponse, err)
	}

	var queries []string
	for _, day := range parsed.Default.TrendingSearchesDays {
		for _, ts := range day.TrendingSearches {
			if ts.Title.Query != "" {
				queries = append(queries, ts.Title.Query)
			}
		}
	}
	return domain.SeriesResult(queries), nil
}

func (c *Client) RealtimeTrendingSearches(ctx context.Context, countryCode, category string) (domain.Result, error) {
	if category == "" {
		category = "all"
	}
	params := c.baseParams("", 0)
	params.Set("geo", countryCode)
	params.Set("cat", category)
	params.Set("fi", "0")
	params.Set("fs", "0")
	params.Set("ri", "300")
	params.Set("rs", "20")
	params.Set("sort", "0")

	body, err := c.get(ctx, realtimePath, params)
	if err != nil {
		return domain.EmptyResult(), err
	}

	var parsed struct {
		StorySummaries struct {
			TrendingStories []struct {
				Title       string   `json:"title"`
				EntityNames []string `json:"entityNames"`
			} `json:"trendingStories"`
		} `json:"storySummaries"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return domain.EmptyResult(), fmt.Errorf("%w: realtimetrends: %v", trends.ErrBadResponse, err)
	}

	cells := make([][]any, 0, len(parsed.StorySummaries.TrendingStories))
	for _, story := range parsed.StorySummaries.TrendingStories {
		entities := story.EntityNames
		if entities == nil {
			entities = []string{}
		}
		cells = append(cells, []any{story.Title, entities})
	}
	return domain.TableResult([]string{"title", "entities"}, cells), nil
}

func (c *Client) TopCharts(ctx context.Context, year int, geo string) (domain.Result, error) {
	if geo == "" {
		geo = "GLOBAL"
	}
	params := c.baseParams("", 0)
	params.Set("date", strconv.Itoa(year))
	params.Set("geo", geo)
	params.Set("isMobile", "false")

	body, err := c.get(ctx, topChartsPath, params)
	if err != nil {
		return domain.EmptyResult(), err
	}

	var parsed struct {
		TopCharts []struct {
			ListItems []struct {
				Title        string `json:"title"`
				ExploreQuery string `json:"exploreQuery"`
			} `json:"listItems"`
		} `json:"topCharts"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return domain.EmptyResult(), fmt.Errorf("%w: topcharts: %v", trends.ErrBadResponse, err)
	}

	var cells [][]any
	for _, chart := range parsed.TopCharts {
		for _, item := range chart.ListItems {
			cells = append(cells, []any{item.Title, item.ExploreQuery})
		}
	}
	return domain.TableResult([]string{"title", "exploreQuery"}, cells), nil
}

func (c *Client) Suggestions(ctx context.Context, keyword string) (domain.Result, error) {
	body, err := c.get(ctx, autocompletePath+url.PathEscape(keyword), c.baseParams("", 0))
	if err != nil {
		return domain.EmptyResult(), err
	}

	var parsed struct {
		Default struct {
			Topics []struct {
				Mid   string `json:"mid"`
				Title string `json:"title"`
				Type  string `json:"type"`
			} `json:"topics"`
		} `json:"default"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return domain.EmptyResult(), fmt.Errorf("%w: autocomplete: %v", trends.ErrBadResponse, err)
	}

	cells := make([][]any, 0, len(parsed.Default.Topics))
	for _, topic := range parsed.Default.Topics {
		cells = append(cells, []any{topic.Mid, topic.Title, topic.Type})
	}
	return domain.TableResult([]string{"mid", "title", "type"}, cells), nil
}

func (c *Client) Categories(ctx context.Context) (domain.Record, error) {
	body, err := c.get(ctx, categoriesPath, c.baseParams("", 0))
	if err != nil {
		return nil, err
	}

	var categories domain.Record
	if err := json.Unmarshal(body, &categories); err != nil {
		return nil, fmt.Errorf("%w: categories: %v", trends.ErrBadResponse, err)
	}
	return categories, nil
}
