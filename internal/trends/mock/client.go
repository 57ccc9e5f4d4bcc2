package mock

import (
	"context"
	"sync"
	"time"

	"github.com/kitbuilder587/trendgate/internal/domain"
	"github.com/kitbuilder587/trendgate/internal/trends"
)

// Client - настраиваемая заглушка trends-провайдера для тестов.
type Client struct {
	mu sync.Mutex

	result     domain.Result
	perMethod  map[string]domain.Result
	categories domain.Record
	err        error
	perErr     map[string]error
	delay      time.Duration

	Calls []string
}

func New() *Client {
	return &Client{
		result:    domain.EmptyResult(),
		perMethod: make(map[string]domain.Result),
		perErr:    make(map[string]error),
	}
}

// WithResult задаёт результат по умолчанию для всех методов.
func (c *Client) WithResult(r domain.Result) *Client {
	c.result = r
	return c
}

// WithMethodResult задаёт результат для конкретного метода.
func (c *Client) WithMethodResult(method string, r domain.Result) *Client {
	c.perMethod[method] = r
	return c
}

func (c *Client) WithCategories(rec domain.Record) *Client {
	c.categories = rec
	return c
}

func (c *Client) WithError(err error) *Client {
	c.err = err
	return c
}

// WithMethodError ломает только один метод, остальные работают.
func (c *Client) WithMethodError(method string, err error) *Client {
	c.perErr[method] = err
	return c
}

func (c *Client) WithDelay(d time.Duration) *Client {
	c.delay = d
	return c
}

func (c *Client) call(ctx context.Context, method string) (domain.Result, error) {
	c.mu.Lock()
	c.Calls = append(c.Calls, method)
	c.mu.Unlock()

	if c.delay > 0 {
		select {
		case <-ctx.Done():
			return domain.EmptyResult(), ctx.Err()
		case <-time.After(c.delay):
		}
	}
	if err, ok := c.perErr[method]; ok {
		return domain.EmptyResult(), err
	}
	if c.err != nil {
		return domain.EmptyResult(), c.err
	}
	if r, ok := c.perMethod[method]; ok {
		return r, nil
	}
	return c.result, nil
}

func (c *Client) InterestOverTime(ctx context.Context, req trends.InterestRequest) (domain.Result, error) {
	return c.call(ctx, "InterestOverTime")
}

func (c *Client) InterestByRegion(ctx context.Context, req trends.RegionRequest) (domain.Result, error) {
	return c.call(ctx, "InterestByRegion")
}

func (c *Client) RelatedTopics(ctx context.Context, req trends.InterestRequest) (domain.Result, error) {
	return c.call(ctx, "RelatedTopics")
}

func (c *Client) RelatedQueries(ctx context.Context, req trends.InterestRequest) (domain.Result, error) {
	return c.call(ctx, "RelatedQueries")
}

func (c *Client) TrendingSearches(ctx context.Context, country string) (domain.Result, error) {
	return c.call(ctx, "TrendingSearches")
}

func (c *Client) RealtimeTrendingSearches(ctx context.Context, countryCode, category string) (domain.Result, error) {
	return c.call(ctx, "RealtimeTrendingSearches")
}

func (c *Client) TodaySearches(ctx context.Context, countryCode string) (domain.Result, error) {
	return c.call(ctx, "TodaySearches")
}

func (c *Client) TopCharts(ctx context.Context, year int, geo string) (domain.Result, error) {
	return c.call(ctx, "TopCharts")
}

func (c *Client) Suggestions(ctx context.Context, keyword string) (domain.Result, error) {
	return c.call(ctx, "Suggestions")
}

func (c *Client) Categories(ctx context.Context) (domain.Record, error) {
	c.mu.Lock()
	c.Calls = append(c.Calls, "Categories")
	c.mu.Unlock()

	if err, ok := c.perErr["Categories"]; ok {
		return nil, err
	}
	if c.err != nil {
		return nil, c.err
	}
	if c.categories != nil {
		return c.categories, nil
	}
	return domain.Record{}, nil
}
