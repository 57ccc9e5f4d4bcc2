package handlers

import (
	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"github.com/kitbuilder587/trendgate/internal/service"
)

type AutocompleteHandler struct {
	service service.AutocompleteService
	logger  *zap.Logger
}

func NewAutocompleteHandler(s service.AutocompleteService, logger *zap.Logger) *AutocompleteHandler {
	return &AutocompleteHandler{service: s, logger: logger}
}

func (h *AutocompleteHandler) Suggest(c fiber.Ctx) error {
	q := service.AutocompleteQuery{
		Keyword: c.Query("keyword", ""),
		Limit:   atoiOr(c.Query("num", ""), 0),
		Lang:    c.Query("language", ""),
		Region:  c.Query("region", ""),
	}

	suggestions, err := h.service.Suggest(c.Context(), q)
	if err != nil {
		return respondError(c, err, "keyword")
	}

	return success(c, "autocomplete", fiber.Map{
		"keyword":  q.Keyword,
		"language": q.Lang,
		"region":   q.Region,
	}, suggestions)
}
