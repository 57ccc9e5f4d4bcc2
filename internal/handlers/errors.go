package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v3"

	"github.com/kitbuilder587/trendgate/internal/domain"
)

// validationParams сопоставляет сигнальные ошибки валидации имени
// параметра запроса, который их вызвал.
var validationParams = []struct {
	err   error
	param string
}{
	{domain.ErrMissingKeywords, "keywords"},
	{domain.ErrTooManyKeywords, "keywords"},
	{domain.ErrInvalidTimeframe, "timeframe"},
	{domain.ErrInvalidGeo, "geo"},
	{domain.ErrInvalidRes, "resolution"},
	{domain.ErrInvalidYear, "date"},
	{domain.ErrMissingVideoID, "video_id"},
	{domain.ErrInvalidFormat, "format"},
}

// respondError переводит ошибку сервиса в HTTP-ответ: валидация - 400 с
// именем параметра, всё прочее - 500 без внутренних деталей.
// queryParam - имя параметра для ErrEmptyQuery в контексте конкретного хендлера.
func respondError(c fiber.Ctx, err error, queryParam string) error {
	if errors.Is(err, domain.ErrEmptyQuery) {
		return badRequest(c, queryParam, err.Error())
	}
	if errors.Is(err, domain.ErrUnsupportedCountry) {
		return badRequest(c, "pn",
			err.Error()+" (supported: "+strings.Join(domain.SupportedCountries(), ", ")+")")
	}
	for _, m := range validationParams {
		if errors.Is(err, m.err) {
			return badRequest(c, m.param, err.Error())
		}
	}
	return serverError(c, "upstream request failed")
}
