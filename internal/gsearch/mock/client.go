package mock

import (
	"context"
	"sync"
	"time"

	"github.com/kitbuilder587/trendgate/internal/gsearch"
)

// Client - заглушка поискового провайдера для тестов.
type Client struct {
	mu sync.Mutex

	results []gsearch.Result
	err     error
	delay   time.Duration

	Requests []gsearch.Request
}

func New() *Client {
	return &Client{}
}

func (c *Client) WithResults(results []gsearch.Result) *Client {
	c.results = results
	return c
}

func (c *Client) WithError(err error) *Client {
	c.err = err
	return c
}

func (c *Client) WithDelay(d time.Duration) *Client {
	c.delay = d
	return c
}

func (c *Client) Search(ctx context.Context, req gsearch.Request) ([]gsearch.Result, error) {
	c.mu.Lock()
	c.Requests = append(c.Requests, req)
	c.mu.Unlock()

	if c.delay > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(c.delay):
		}
	}
	if c.err != nil {
		return nil, c.err
	}
	if len(c.results) > req.NumResults && req.NumResults > 0 {
		return c.results[:req.NumResults], nil
	}
	return c.results, nil
}
