package mock

import (
	"context"
	"sync"

	"github.com/kitbuilder587/trendgate/internal/suggest"
)

// Client - заглушка suggest-провайдера. Подсказки можно задать
// по ключевику или одним списком на все вызовы.
type Client struct {
	mu sync.Mutex

	byKeyword map[string][]string
	fallback  []string
	err       error

	Requests []suggest.Request
}

func New() *Client {
	return &Client{byKeyword: make(map[string][]string)}
}

func (c *Client) WithSuggestions(s []string) *Client {
	c.fallback = s
	return c
}

func (c *Client) WithKeywordSuggestions(keyword string, s []string) *Client {
	c.byKeyword[keyword] = s
	return c
}

func (c *Client) WithError(err error) *Client {
	c.err = err
	return c
}

func (c *Client) Suggest(ctx context.Context, req suggest.Request) ([]string, error) {
	c.mu.Lock()
	c.Requests = append(c.Requests, req)
	c.mu.Unlock()

	if c.err != nil {
		return nil, c.err
	}

	out := c.fallback
	if s, ok := c.byKeyword[req.Keyword]; ok {
		out = s
	}
	if req.Limit > 0 && len(out) > req.Limit {
		out = out[:req.Limit]
	}
	return out, nil
}
