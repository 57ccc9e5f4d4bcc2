package domain

import (
	"fmt"
	"sort"
	"strings"
)

// countryAliases сводит пользовательский ввод (коды, полные имена, snake_case)
// к каноническому двухбуквенному коду. Таблица статична и покрывает страны,
// для которых trends-провайдер стабильно отдаёт данные.
var countryAliases = map[string]string{
	"us": "US", "usa": "US", "united states": "US",
	"gb": "GB", "uk": "GB", "united kingdom": "GB",
	"jp": "JP", "japan": "JP",
	"ca": "CA", "canada": "CA",
	"de": "DE", "germany": "DE",
	"in": "IN", "india": "IN",
	"au": "AU", "australia": "AU",
	"br": "BR", "brazil": "BR",
	"fr": "FR", "france": "FR",
	"mx": "MX", "mexico": "MX",
	"it": "IT", "italy": "IT",
	"es": "ES", "spain": "ES",
}

// dailyTrendNames - формат страны, который принимает daily-trends источник
// (полное имя в snake_case вместо ISO-кода).
var dailyTrendNames = map[string]string{
	"US": "united_states",
	"GB": "united_kingdom",
	"JP": "japan",
	"CA": "canada",
	"DE": "germany",
	"IN": "india",
	"AU": "australia",
	"BR": "brazil",
	"FR": "france",
	"MX": "mexico",
	"IT": "italy",
	"ES": "spain",
}

// ResolveCountry нормализует ввод через таблицу алиасов и проверяет его против
// фиксированного набора поддерживаемых стран. Возвращённый код иммутабелен.
func ResolveCountry(input string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(input))
	normalized = strings.ReplaceAll(normalized, "_", " ")
	if normalized == "" {
		return "", fmt.Errorf("%w: empty country", ErrUnsupportedCountry)
	}

	code, ok := countryAliases[normalized]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedCountry, input)
	}
	return code, nil
}

// DailyTrendName переводит канонический код в имя, понятное daily-trends API.
func DailyTrendName(code string) string {
	if name, ok := dailyTrendNames[code]; ok {
		return name
	}
	return strings.ToLower(code)
}

// SupportedCountries возвращает отсортированный список канонических кодов
// для payload ошибки валидации.
func SupportedCountries() []string {
	codes := make([]string, 0, len(dailyTrendNames))
	for code := range dailyTrendNames {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}
