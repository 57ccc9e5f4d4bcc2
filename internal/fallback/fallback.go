// Package fallback пробует упорядоченную цепочку стратегий получения данных
// и помечает результат именем сработавшей стратегии.
package fallback

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/kitbuilder587/trendgate/internal/domain"
	"github.com/kitbuilder587/trendgate/internal/metrics"
)

// StrategyNone - маркер исчерпанной цепочки.
const StrategyNone = "none"

// Strategy - один способ получить данные. Ретраи и таймауты живут внутри
// Attempt (клиенты провайдеров сами добивают свои ретраи до конца),
// резолвер только упорядочивает попытки.
type Strategy struct {
	Name    string
	Attempt func(ctx context.Context) ([]domain.Record, error)
}

// Outcome - результат прохода по цепочке. UsedStrategy == StrategyNone
// гарантирует пустой Data и непустой Note.
type Outcome struct {
	UsedStrategy string
	Data         []domain.Record
	Note         string
}

type Resolver struct {
	logger  *zap.Logger
	metrics *metrics.Metrics
}

func New(logger *zap.Logger, m *metrics.Metrics) *Resolver {
	return &Resolver{logger: logger, metrics: m}
}

// Resolve идёт по стратегиям по порядку. Ошибка и структурно пустой результат
// равнозначны: обе двигают цепочку дальше. Побеждает первая стратегия с
// непустыми данными. Полное исчерпание не выдумывает данных - возвращается
// пустой результат с пояснением, в которое свёрнуты накопленные ошибки.
func (r *Resolver) Resolve(ctx context.Context, strategies []Strategy) Outcome {
	var failures []string

	for _, s := range strategies {
		records, err := s.Attempt(ctx)
		if err != nil {
			r.logger.Warn("fallback strategy failed",
				zap.String("strategy", s.Name),
				zap.Error(err),
			)
			failures = append(failures, fmt.Sprintf("%s: %v", s.Name, err))
			continue
		}
		if len(records) == 0 {
			r.logger.Warn("fallback strategy returned no data",
				zap.String("strategy", s.Name),
			)
			failures = append(failures, fmt.Sprintf("%s: empty result", s.Name))
			continue
		}

		if r.metrics != nil {
			r.metrics.RecordFallbackOutcome(s.Name)
		}
		return Outcome{UsedStrategy: s.Name, Data: records}
	}

	if r.metrics != nil {
		r.metrics.RecordFallbackOutcome(StrategyNone)
	}

	note := "no strategy returned data"
	if len(failures) > 0 {
		note = fmt.Sprintf("no strategy returned data: %s", strings.Join(failures, "; "))
	}
	return Outcome{
		UsedStrategy: StrategyNone,
		Data:         []domain.Record{},
		Note:         note,
	}
}
