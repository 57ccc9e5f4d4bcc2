package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/kitbuilder587/trendgate/internal/domain"
	"github.com/kitbuilder587/trendgate/internal/explore"
	"github.com/kitbuilder587/trendgate/internal/suggest"
)

// TopicQuery - параметры построения дерева смежных тем.
type TopicQuery struct {
	Keyword  string
	Depth    int
	PerLevel int
	Lang     string
	Region   string
}

type TopicService interface {
	Explore(ctx context.Context, q TopicQuery) (*domain.TopicNode, error)
}

type TopicServiceDeps struct {
	Explorer *explore.Explorer
	Provider suggest.Provider
	Logger   *zap.Logger
}

type topicService struct {
	explorer *explore.Explorer
	provider suggest.Provider
	logger   *zap.Logger
}

func NewTopicService(deps TopicServiceDeps) TopicService {
	return &topicService{
		explorer: deps.Explorer,
		provider: deps.Provider,
		logger:   deps.Logger,
	}
}

func (s *topicService) Explore(ctx context.Context, q TopicQuery) (*domain.TopicNode, error) {
	q.Keyword = strings.TrimSpace(q.Keyword)
	if q.Keyword == "" {
		return nil, domain.ErrEmptyQuery
	}

	suggestFn := func(ctx context.Context, keyword string, limit int) ([]string, error) {
		return s.provider.Suggest(ctx, suggest.Request{
			Keyword: keyword,
			Limit:   limit,
			Lang:    q.Lang,
			Region:  q.Region,
		})
	}

	tree := s.explorer.Explore(ctx, q.Keyword, q.Depth, q.PerLevel, suggestFn)

	s.logger.Info("topic tree built",
		zap.String("seed", q.Keyword),
		zap.Int("nodes", tree.Size()),
		zap.Int("depth", tree.Depth()),
	)
	return tree, nil
}
