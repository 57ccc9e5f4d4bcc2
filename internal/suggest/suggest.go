package suggest

import (
	"context"
	"errors"
)

var (
	ErrRequestFailed = errors.New("suggest request failed")
	ErrBadResponse   = errors.New("unexpected suggest response")
)

// Request - параметры автодополнения.
type Request struct {
	Keyword string
	Limit   int
	Lang    string
	Region  string
}

// Provider отдаёт подсказки автодополнения в порядке выдачи источника.
type Provider interface {
	Suggest(ctx context.Context, req Request) ([]string, error)
}
