package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"github.com/kitbuilder587/trendgate/internal/service"
)

type SearchHandler struct {
	service service.SearchService
	logger  *zap.Logger
}

func NewSearchHandler(s service.SearchService, logger *zap.Logger) *SearchHandler {
	return &SearchHandler{service: s, logger: logger}
}

func (h *SearchHandler) Search(c fiber.Ctx) error {
	q := service.SearchQuery{
		Query:      c.Query("q", ""),
		NumResults: atoiOr(c.Query("num", ""), 0),
		Lang:       c.Query("lang", ""),
		Advanced:   parseBool(c.Query("advanced", "")),
	}
	if raw := c.Query("sleep", ""); raw != "" {
		if sleep, err := strconv.ParseFloat(raw, 64); err == nil && sleep > 0 {
			q.SleepInterval = sleep
		}
	}
	if raw := c.Query("timeout", ""); raw != "" {
		if timeout, err := strconv.ParseFloat(raw, 64); err == nil && timeout > 0 {
			q.Timeout = timeout
		}
	}

	results, err := h.service.Search(c.Context(), q)
	if err != nil {
		return respondError(c, err, "q")
	}

	return success(c, "search", fiber.Map{
		"q":    q.Query,
		"num":  q.NumResults,
		"lang": q.Lang,
	}, results)
}

func (h *SearchHandler) Combined(c fiber.Ctx) error {
	q := service.CombinedQuery{
		Query:         c.Query("q", ""),
		NumResults:    atoiOr(c.Query("num", ""), 0),
		Lang:          c.Query("lang", ""),
		Timeframe:     c.Query("timeframe", ""),
		Geo:           c.Query("geo", ""),
		IncludeTrends: parseBool(c.Query("include_trends", "")),
	}

	combined, err := h.service.Combined(c.Context(), q)
	if err != nil {
		return respondError(c, err, "q")
	}

	note := ""
	if len(combined.Notes) > 0 {
		note = combined.Notes[0]
		for _, n := range combined.Notes[1:] {
			note += "; " + n
		}
	}

	return successWithNote(c, "search_combined", fiber.Map{
		"q":              q.Query,
		"include_trends": q.IncludeTrends,
	}, combined, note)
}
