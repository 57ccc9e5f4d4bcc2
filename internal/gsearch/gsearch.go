package gsearch

import (
	"context"
	"errors"
	"time"
)

var (
	ErrRequestFailed = errors.New("search request failed")
	ErrBlocked       = errors.New("search temporarily blocked")
)

// Request - параметры одного поискового запроса. Timeout ограничивает
// весь запрос вместе с пагинацией; ноль оставляет таймаут клиента.
type Request struct {
	Query         string
	NumResults    int
	Lang          string
	Advanced      bool
	SleepInterval float64
	Timeout       time.Duration
}

// Result - одна позиция выдачи. Title и Description пустые,
// если запрошен простой режим без сниппетов.
type Result struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description"`
}

type Provider interface {
	Search(ctx context.Context, req Request) ([]Result, error)
}
