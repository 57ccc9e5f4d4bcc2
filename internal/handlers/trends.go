package handlers

import (
	"context"
	"strconv"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"github.com/kitbuilder587/trendgate/internal/domain"
	"github.com/kitbuilder587/trendgate/internal/service"
)

type TrendsHandler struct {
	service service.TrendsService
	logger  *zap.Logger
}

func NewTrendsHandler(s service.TrendsService, logger *zap.Logger) *TrendsHandler {
	return &TrendsHandler{service: s, logger: logger}
}

func (h *TrendsHandler) trendsQuery(c fiber.Ctx) domain.TrendsQuery {
	return domain.TrendsQuery{
		Keywords:  splitCSV(c.Query("keywords", "")),
		Timeframe: c.Query("timeframe", ""),
		Geo:       c.Query("geo", ""),
		Hl:        c.Query("hl", ""),
		Tz:        atoiOr(c.Query("tz", ""), 0),
		Cat:       atoiOr(c.Query("cat", ""), 0),
	}
}

func (h *TrendsHandler) InterestOverTime(c fiber.Ctx) error {
	q := h.trendsQuery(c)

	records, err := h.service.InterestOverTime(c.Context(), q)
	if err != nil {
		return respondError(c, err, "keywords")
	}

	return success(c, "interest_over_time", fiber.Map{
		"keywords":  q.Keywords,
		"timeframe": q.Timeframe,
		"geo":       q.Geo,
	}, records)
}

func (h *TrendsHandler) InterestByRegion(c fiber.Ctx) error {
	q := domain.RegionQuery{
		TrendsQuery:  h.trendsQuery(c),
		Resolution:   c.Query("resolution", ""),
		IncLowVolume: parseBool(c.Query("inc_low_vol", "")),
		IncGeoCode:   parseBool(c.Query("inc_geo_code", "")),
	}

	records, err := h.service.InterestByRegion(c.Context(), q)
	if err != nil {
		return respondError(c, err, "keywords")
	}

	return success(c, "interest_by_region", fiber.Map{
		"keywords":   q.Keywords,
		"timeframe":  q.Timeframe,
		"geo":        q.Geo,
		"resolution": q.Resolution,
	}, records)
}

func (h *TrendsHandler) RelatedTopics(c fiber.Ctx) error {
	return h.related(c, "related_topics", h.service.RelatedTopics)
}

func (h *TrendsHandler) RelatedQueries(c fiber.Ctx) error {
	return h.related(c, "related_queries", h.service.RelatedQueries)
}

func (h *TrendsHandler) related(
	c fiber.Ctx,
	endpoint string,
	call func(ctx context.Context, q domain.TrendsQuery) (map[string]domain.TopRising, error),
) error {
	q := h.trendsQuery(c)

	keyed, err := call(c.Context(), q)
	if err != nil {
		return respondError(c, err, "keywords")
	}

	return success(c, endpoint, fiber.Map{
		"keywords":  q.Keywords,
		"timeframe": q.Timeframe,
		"geo":       q.Geo,
	}, keyed)
}

func (h *TrendsHandler) TrendingSearches(c fiber.Ctx) error {
	country := c.Query("pn", "united_states")

	outcome, err := h.service.TrendingSearches(c.Context(), country)
	if err != nil {
		return respondError(c, err, "pn")
	}

	return successWithNote(c, "trending_searches", fiber.Map{
		"pn":       country,
		"strategy": outcome.UsedStrategy,
	}, outcome.Data, outcome.Note)
}

func (h *TrendsHandler) RealtimeTrendingSearches(c fiber.Ctx) error {
	country := c.Query("pn", "united_states")
	category := c.Query("cat", "")

	outcome, err := h.service.RealtimeTrending(c.Context(), country, category)
	if err != nil {
		return respondError(c, err, "pn")
	}

	return successWithNote(c, "realtime_trending_searches", fiber.Map{
		"pn":       country,
		"cat":      category,
		"strategy": outcome.UsedStrategy,
	}, outcome.Data, outcome.Note)
}

func (h *TrendsHandler) TodaySearches(c fiber.Ctx) error {
	country := c.Query("pn", "united_states")

	outcome, err := h.service.TodaySearches(c.Context(), country)
	if err != nil {
		return respondError(c, err, "pn")
	}

	return successWithNote(c, "today_searches", fiber.Map{
		"pn":       country,
		"strategy": outcome.UsedStrategy,
	}, outcome.Data, outcome.Note)
}

func (h *TrendsHandler) TopCharts(c fiber.Ctx) error {
	rawYear := c.Query("date", "")
	year, err := strconv.Atoi(rawYear)
	if err != nil {
		return badRequest(c, "date", "date must be an integer year, got "+strconv.Quote(rawYear))
	}
	geo := c.Query("geo", "GLOBAL")

	records, err := h.service.TopCharts(c.Context(), year, geo)
	if err != nil {
		return respondError(c, err, "date")
	}

	return success(c, "top_charts", fiber.Map{
		"date": year,
		"geo":  geo,
	}, records)
}

func (h *TrendsHandler) Suggestions(c fiber.Ctx) error {
	keyword := c.Query("keyword", "")

	records, err := h.service.Suggestions(c.Context(), keyword)
	if err != nil {
		return respondError(c, err, "keyword")
	}

	return success(c, "suggestions", fiber.Map{"keyword": keyword}, records)
}

func (h *TrendsHandler) Categories(c fiber.Ctx) error {
	categories, err := h.service.Categories(c.Context())
	if err != nil {
		return respondError(c, err, "")
	}
	return success(c, "categories", fiber.Map{}, categories)
}
