package google

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/net/html"

	"github.com/kitbuilder587/trendgate/internal/gsearch"
)

const (
	searchPath = "/search"

	defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

	// страница выдачи отдаёт не больше этого числа позиций
	pageSize = 10

	maxResults = 50
)

type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client скрейпит HTML-выдачу. Контракта у разметки нет, поэтому парсер
// цепляется за блоки div.g и переживает их отсутствие пустым результатом.
type Client struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

func New(cfg Config, logger *zap.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://www.google.com"
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

func (c *Client) Search(ctx context.Context, req gsearch.Request) ([]gsearch.Result, error) {
	if req.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, req.Timeout)
		defer cancel()
	}

	num := req.NumResults
	if num <= 0 {
		num = pageSize
	}
	if num > maxResults {
		num = maxResults
	}

	results := make([]gsearch.Result, 0, num)
	for start := 0; len(results) < num; start += pageSize {
		if start > 0 && req.SleepInterval > 0 {
			if err := sleep(ctx, time.Duration(req.SleepInterval*float64(time.Second))); err != nil {
				return results, err
			}
		}

		page, err := c.fetchPage(ctx, req, start)
		if err != nil {
			return nil, err
		}
		if len(page) == 0 {
			break
		}
		results = append(results, page...)
	}

	if len(results) > num {
		results = results[:num]
	}
	return results, nil
}

func (c *Client) fetchPage(ctx context.Context, req gsearch.Request, start int) ([]gsearch.Result, error) {
	params := url.Values{}
	params.Set("q", req.Query)
	params.Set("num", strconv.Itoa(pageSize))
	params.Set("start", strconv.Itoa(start))
	if req.Lang != "" {
		params.Set("hl", req.Lang)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+searchPath+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("User-Agent", defaultUserAgent)
	httpReq.Header.Set("Accept", "text/html")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, gsearch.ErrBlocked
	case resp.StatusCode != http.StatusOK:
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("%w: status %d", gsearch.ErrRequestFailed, resp.StatusCode)
	}

	doc, err := html.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse page: %w", err)
	}

	return extractResults(doc, req.Advanced), nil
}

// extractResults собирает позиции из блоков div.g: ссылка - первый <a href>,
// заголовок - первый <h3>, сниппет - clamp-див рядом с заголовком.
func extractResults(doc *html.Node, advanced bool) []gsearch.Result {
	var results []gsearch.Result

	for _, block := range findAll(doc, func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.Data == "div" && hasClass(n, "g")
	}) {
		anchor := findFirst(block, func(n *html.Node) bool {
			return n.Type == html.ElementNode && n.Data == "a" && attr(n, "href") != ""
		})
		if anchor == nil {
			continue
		}
		link := cleanLink(attr(anchor, "href"))
		if link == "" {
			continue
		}

		result := gsearch.Result{URL: link}
		if advanced {
			if title := findFirst(block, func(n *html.Node) bool {
				return n.Type == html.ElementNode && n.Data == "h3"
			}); title != nil {
				result.Title = textContent(title)
			}
			if desc := findFirst(block, func(n *html.Node) bool {
				return n.Type == html.ElementNode && n.Data == "div" &&
					strings.Contains(attr(n, "style"), "-webkit-line-clamp")
			}); desc != nil {
				result.Description = textContent(desc)
			}
		}
		results = append(results, result)
	}

	return results
}

// cleanLink разворачивает redirect-ссылки вида /url?q=... и отбрасывает
// внутренние навигационные урлы.
func cleanLink(href string) string {
	if strings.HasPrefix(href, "/url?") {
		parsed, err := url.Parse(href)
		if err != nil {
			return ""
		}
		href = parsed.Query().Get("q")
	}
	if !strings.HasPrefix(href, "http://") && !strings.HasPrefix(href, "https://") {
		return ""
	}
	if strings.Contains(href, "google.com/") {
		return ""
	}
	return href
}

func sleep(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

func findFirst(root *html.Node, match func(*html.Node) bool) *html.Node {
	if match(root) {
		return root
	}
	for child := root.FirstChild; child != nil; child = child.NextSibling {
		if found := findFirst(child, match); found != nil {
			return found
		}
	}
	return nil
}

func findAll(root *html.Node, match func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if match(n) {
			out = append(out, n)
			return
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(root)
	return out
}

func textContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(n)
	return strings.TrimSpace(sb.String())
}
