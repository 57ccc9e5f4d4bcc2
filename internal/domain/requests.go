package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

const MaxKeywords = 5

// timeframePattern покрывает формы, которые принимает trends-провайдер:
// "all", "today N-[ymd]", "now N-[dH]" и пара ISO-дат.
var timeframePattern = regexp.MustCompile(`^(all|today \d{1,3}-[ymd]|now \d{1,3}-[dH]|\d{4}-\d{2}-\d{2} \d{4}-\d{2}-\d{2})$`)

// geoPattern - ISO-код страны с необязательным суффиксом региона (US-CA).
// Пустой geo означает "весь мир" и тоже валиден.
var geoPattern = regexp.MustCompile(`^([A-Z]{2}(-[A-Z0-9]{1,3})?)?$`)

var validResolutions = map[string]bool{
	"COUNTRY": true,
	"REGION":  true,
	"CITY":    true,
	"DMA":     true,
}

// TrendsQuery - общие параметры для всех keyword-ориентированных trends-запросов.
type TrendsQuery struct {
	Keywords  []string
	Timeframe string
	Geo       string
	Hl        string
	Tz        int
	Cat       int
}

func (q *TrendsQuery) Sanitize() {
	cleaned := q.Keywords[:0]
	for _, kw := range q.Keywords {
		kw = strings.TrimSpace(kw)
		if kw != "" {
			cleaned = append(cleaned, kw)
		}
	}
	q.Keywords = cleaned
	q.Timeframe = strings.TrimSpace(q.Timeframe)
	q.Geo = strings.ToUpper(strings.TrimSpace(q.Geo))
	if q.Timeframe == "" {
		q.Timeframe = "today 3-m"
	}
	if q.Hl == "" {
		q.Hl = "en-US"
	}
}

func (q *TrendsQuery) Validate() error {
	if len(q.Keywords) == 0 {
		return ErrMissingKeywords
	}
	if len(q.Keywords) > MaxKeywords {
		return fmt.Errorf("%w: got %d, max %d", ErrTooManyKeywords, len(q.Keywords), MaxKeywords)
	}
	if !timeframePattern.MatchString(q.Timeframe) {
		return fmt.Errorf("%w: %q", ErrInvalidTimeframe, q.Timeframe)
	}
	if !geoPattern.MatchString(q.Geo) {
		return fmt.Errorf("%w: %q", ErrInvalidGeo, q.Geo)
	}
	return nil
}

// RegionQuery - параметры interest-by-region.
type RegionQuery struct {
	TrendsQuery
	Resolution   string
	IncLowVolume bool
	IncGeoCode   bool
}

func (q *RegionQuery) Sanitize() {
	q.TrendsQuery.Sanitize()
	q.Resolution = strings.ToUpper(strings.TrimSpace(q.Resolution))
	if q.Resolution == "" {
		q.Resolution = "COUNTRY"
	}
}

func (q *RegionQuery) Validate() error {
	if err := q.TrendsQuery.Validate(); err != nil {
		return err
	}
	if !validResolutions[q.Resolution] {
		return fmt.Errorf("%w: %q (use COUNTRY, REGION, CITY or DMA)", ErrInvalidRes, q.Resolution)
	}
	return nil
}

// ChartYearBounds возвращает допустимый диапазон лет для top-charts:
// данные существуют с 2001 года и только за завершённые годы.
func ChartYearBounds(now time.Time) (int, int) {
	return 2001, now.Year() - 1
}

func ValidateChartYear(year int, now time.Time) error {
	min, max := ChartYearBounds(now)
	if year < min || year > max {
		return fmt.Errorf("%w: %d (expected %d..%d)", ErrInvalidYear, year, min, max)
	}
	return nil
}
