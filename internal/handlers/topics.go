package handlers

import (
	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"github.com/kitbuilder587/trendgate/internal/explore"
	"github.com/kitbuilder587/trendgate/internal/service"
)

type TopicsHandler struct {
	service service.TopicService
	logger  *zap.Logger
}

func NewTopicsHandler(s service.TopicService, logger *zap.Logger) *TopicsHandler {
	return &TopicsHandler{service: s, logger: logger}
}

func (h *TopicsHandler) NicheTopics(c fiber.Ctx) error {
	// depth и results_per_level зажимаются в допустимые границы, не отклоняются
	q := service.TopicQuery{
		Keyword:  c.Query("keyword", ""),
		Depth:    atoiOr(c.Query("depth", ""), explore.MaxDepth-1),
		PerLevel: atoiOr(c.Query("results_per_level", ""), 5),
		Lang:     c.Query("lang", ""),
		Region:   c.Query("country", ""),
	}

	tree, err := h.service.Explore(c.Context(), q)
	if err != nil {
		return respondError(c, err, "keyword")
	}

	return success(c, "niche_topics", fiber.Map{
		"keyword":           q.Keyword,
		"depth":             q.Depth,
		"results_per_level": q.PerLevel,
	}, tree)
}
