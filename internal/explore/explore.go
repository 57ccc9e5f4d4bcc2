// Package explore строит дерево смежных тем вокруг seed-ключевика
// ограниченным обходом в ширину поверх suggestion-провайдера.
package explore

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/kitbuilder587/trendgate/internal/domain"
)

const (
	MinDepth = 1
	MaxDepth = 3

	MinPerLevel = 1
	MaxPerLevel = 10
)

// SuggestFunc отдаёт до limit подсказок для ключевика.
type SuggestFunc func(ctx context.Context, keyword string, limit int) ([]string, error)

type Explorer struct {
	delay  time.Duration
	logger *zap.Logger
}

type Config struct {
	// Delay - пауза между последовательными запросами подсказок,
	// чтобы не молотить upstream.
	Delay time.Duration
}

func New(cfg Config, logger *zap.Logger) *Explorer {
	delay := cfg.Delay
	if delay <= 0 {
		delay = 200 * time.Millisecond
	}
	return &Explorer{delay: delay, logger: logger}
}

type queueItem struct {
	keyword string
	depth   int
	parent  *domain.TopicNode
}

// Explore раскрывает seed в дерево глубиной не более depth, не более perLevel
// детей на узел. Ключевик не повторяется нигде в дереве (глобальный visited-набор),
// дети добавляются в порядке выдачи провайдера. Ошибка подсказок для одного
// ключевика обрезает только его ветку - уже построенная часть дерева сохраняется.
func (e *Explorer) Explore(ctx context.Context, seed string, depth, perLevel int, suggest SuggestFunc) *domain.TopicNode {
	depth = clamp(depth, MinDepth, MaxDepth)
	perLevel = clamp(perLevel, MinPerLevel, MaxPerLevel)

	root := domain.NewTopicNode(seed)
	visited := map[string]struct{}{seed: {}}
	queue := []queueItem{{keyword: seed, depth: 0, parent: root}}

	for len(queue) > 0 {
		item := queue[0]
		queue = queue[1:]

		if item.depth >= depth {
			continue
		}

		suggestions, err := suggest(ctx, item.keyword, perLevel)
		if err != nil {
			e.logger.Warn("suggestions fetch failed, pruning branch",
				zap.String("keyword", item.keyword),
				zap.Int("depth", item.depth),
				zap.Error(err),
			)
			continue
		}

		for _, s := range suggestions {
			// провайдер может не уважать limit
			if len(item.parent.Subtopics) >= perLevel {
				break
			}
			if s == "" {
				continue
			}
			if _, seen := visited[s]; seen {
				continue
			}

			node := domain.NewTopicNode(s)
			item.parent.Subtopics = append(item.parent.Subtopics, node)
			visited[s] = struct{}{}

			if item.depth < depth-1 {
				queue = append(queue, queueItem{keyword: s, depth: item.depth + 1, parent: node})
			}
		}

		if len(queue) > 0 {
			e.pause(ctx)
		}
	}

	return root
}

func (e *Explorer) pause(ctx context.Context) {
	select {
	case <-ctx.Done():
	case <-time.After(e.delay):
	}
}

func clamp(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
