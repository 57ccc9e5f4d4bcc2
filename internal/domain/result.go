package domain

// Record - одна строка нормализованного ответа провайдера.
type Record map[string]any

// TopRising группирует связанные запросы/темы по одному ключевому слову.
// Оба среза всегда не-nil: потребитель может индексировать top/rising без проверок.
type TopRising struct {
	Top    []Record `json:"top"`
	Rising []Record `json:"rising"`
}

type ResultKind int

const (
	// ResultEmpty - провайдер ответил, но данных нет.
	ResultEmpty ResultKind = iota
	// ResultSeries - одноколоночный табличный ответ (список строк).
	ResultSeries
	// ResultTable - многоколоночный табличный ответ.
	ResultTable
	// ResultKeyed - вложенный ответ по ключевым словам (top/rising).
	ResultKeyed
)

// Result - tagged-variant поверх нативных форм ответа провайдеров.
// Адаптер каждого провайдера собирает Result, normalize потребляет его единообразно.
type Result struct {
	Kind ResultKind

	// Kind == ResultSeries
	Series []string

	// Kind == ResultTable
	Columns []string
	Cells   [][]any

	// Kind == ResultKeyed; значения nil допустимы и трактуются как пустые
	Keyed map[string]KeyedResult
}

// KeyedResult - сырые top/rising таблицы для одного ключевого слова.
type KeyedResult struct {
	Top    *Result
	Rising *Result
}

func EmptyResult() Result {
	return Result{Kind: ResultEmpty}
}

func SeriesResult(values []string) Result {
	if len(values) == 0 {
		return EmptyResult()
	}
	return Result{Kind: ResultSeries, Series: values}
}

func TableResult(columns []string, cells [][]any) Result {
	if len(cells) == 0 {
		return EmptyResult()
	}
	return Result{Kind: ResultTable, Columns: columns, Cells: cells}
}

func KeyedResults(keyed map[string]KeyedResult) Result {
	return Result{Kind: ResultKeyed, Keyed: keyed}
}

// IsEmpty сообщает, есть ли в результате хоть какие-то данные.
func (r Result) IsEmpty() bool {
	switch r.Kind {
	case ResultSeries:
		return len(r.Series) == 0
	case ResultTable:
		return len(r.Cells) == 0
	case ResultKeyed:
		for _, kr := range r.Keyed {
			if kr.Top != nil && !kr.Top.IsEmpty() {
				return false
			}
			if kr.Rising != nil && !kr.Rising.IsEmpty() {
				return false
			}
		}
		return true
	default:
		return true
	}
}
