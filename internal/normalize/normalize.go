// Package normalize приводит нативные формы ответов провайдеров
// (серия, таблица, вложенный top/rising) к канонической JSON-структуре.
package normalize

import (
	"time"

	"github.com/kitbuilder587/trendgate/internal/domain"
)

// Records разворачивает табличные варианты Result в упорядоченный список записей.
// Пустой или nil-результат даёт пустой (не nil) срез. Одноколоночная серия
// оборачивается в записи вида {"query": value}.
func Records(r domain.Result) []domain.Record {
	switch r.Kind {
	case domain.ResultSeries:
		records := make([]domain.Record, 0, len(r.Series))
		for _, v := range r.Series {
			records = append(records, domain.Record{"query": v})
		}
		return records

	case domain.ResultTable:
		records := make([]domain.Record, 0, len(r.Cells))
		for _, row := range r.Cells {
			rec := make(domain.Record, len(r.Columns))
			for i, col := range r.Columns {
				if i < len(row) {
					rec[col] = canonical(row[i])
				}
			}
			records = append(records, rec)
		}
		return records

	default:
		return []domain.Record{}
	}
}

// Keyed разворачивает вложенный по ключевым словам результат. Отсутствующая
// или nil-часть top/rising нормализуется в пустой срез, никогда не в
// отсутствующий ключ: потребитель всегда может индексировать обе части.
func Keyed(r domain.Result, keywords []string) map[string]domain.TopRising {
	out := make(map[string]domain.TopRising, len(keywords))

	for _, kw := range keywords {
		entry := domain.TopRising{Top: []domain.Record{}, Rising: []domain.Record{}}
		if kr, ok := r.Keyed[kw]; ok {
			if kr.Top != nil {
				entry.Top = Records(*kr.Top)
			}
			if kr.Rising != nil {
				entry.Rising = Records(*kr.Rising)
			}
		}
		out[kw] = entry
	}
	return out
}

// canonical приводит скаляры к каноническому виду: время - в ISO-8601,
// целочисленные float из JSON-декодера - обратно в int64.
func canonical(v any) any {
	switch val := v.(type) {
	case time.Time:
		return val.UTC().Format(time.RFC3339)
	case float64:
		if val == float64(int64(val)) {
			return int64(val)
		}
		return val
	default:
		return v
	}
}
