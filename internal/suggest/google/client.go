package google

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kitbuilder587/trendgate/internal/suggest"
)

const (
	completePath = "/complete/search"

	defaultLimit = 10
	maxLimit     = 20
)

type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client ходит в suggest-эндпоинт с client=firefox: этот вариант отдаёт
// чистый JSON-массив вместо JSONP.
type Client struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

func New(cfg Config, logger *zap.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://suggestqueries.google.com"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 5 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		client:  &http.Client{Timeout: cfg.Timeout},
		logger:  logger,
	}
}

func (c *Client) Suggest(ctx context.Context, req suggest.Request) ([]string, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	params := url.Values{}
	params.Set("client", "firefox")
	params.Set("q", req.Keyword)
	if req.Lang != "" {
		params.Set("hl", req.Lang)
	}
	if req.Region != "" {
		params.Set("gl", req.Region)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+completePath+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", suggest.ErrRequestFailed, resp.StatusCode)
	}

	// формат: ["query", ["suggestion one", "suggestion two", ...], ...]
	var parsed []json.RawMessage
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("%w: %v", suggest.ErrBadResponse, err)
	}
	if len(parsed) < 2 {
		return nil, fmt.Errorf("%w: array too short", suggest.ErrBadResponse)
	}

	var suggestions []string
	if err := json.Unmarshal(parsed[1], &suggestions); err != nil {
		return nil, fmt.Errorf("%w: %v", suggest.ErrBadResponse, err)
	}

	if len(suggestions) > limit {
		suggestions = suggestions[:limit]
	}
	return suggestions, nil
}
