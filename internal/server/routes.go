package server

import (
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"

	"github.com/kitbuilder587/trendgate/internal/handlers"
	"github.com/kitbuilder587/trendgate/internal/metrics"
)

// routeList отдаётся в 404-ответе.
var routeList = []string{
	"GET /health",
	"GET /metrics",
	"GET /trends/interest-over-time",
	"GET /trends/interest-by-region",
	"GET /trends/related-topics",
	"GET /trends/related-queries",
	"GET /trends/trending-searches",
	"GET /trends/realtime-trending-searches",
	"GET /trends/today-searches",
	"GET /trends/top-charts",
	"GET /trends/suggestions",
	"GET /trends/categories",
	"GET /search",
	"GET /search/combined",
	"GET /autocomplete",
	"GET /niche-topics",
	"GET /youtube/transcript",
	"GET /youtube/transcript/list",
	"GET /youtube/transcript/translate",
}

func (s *Server) registerRoutes(deps Deps) {
	trendsHandler := handlers.NewTrendsHandler(deps.Trends, s.logger)
	searchHandler := handlers.NewSearchHandler(deps.Search, s.logger)
	autocompleteHandler := handlers.NewAutocompleteHandler(deps.Autocomplete, s.logger)
	topicsHandler := handlers.NewTopicsHandler(deps.Topics, s.logger)
	youtubeHandler := handlers.NewYouTubeHandler(deps.Transcripts, s.logger)
	healthHandler := handlers.NewHealthHandler(deps.Limiter)

	s.App.Get("/", healthHandler.Health)
	s.App.Get("/health", healthHandler.Health)
	s.App.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))

	trends := s.App.Group("/trends")
	trends.Get("/interest-over-time", trendsHandler.InterestOverTime)
	trends.Get("/interest-by-region", trendsHandler.InterestByRegion)
	trends.Get("/related-topics", trendsHandler.RelatedTopics)
	trends.Get("/related-queries", trendsHandler.RelatedQueries)
	trends.Get("/trending-searches", trendsHandler.TrendingSearches)
	trends.Get("/realtime-trending-searches", trendsHandler.RealtimeTrendingSearches)
	trends.Get("/today-searches", trendsHandler.TodaySearches)
	trends.Get("/top-charts", trendsHandler.TopCharts)
	trends.Get("/suggestions", trendsHandler.Suggestions)
	trends.Get("/categories", trendsHandler.Categories)

	s.App.Get("/search", searchHandler.Search)
	s.App.Get("/search/combined", searchHandler.Combined)
	s.App.Get("/autocomplete", autocompleteHandler.Suggest)
	s.App.Get("/niche-topics", topicsHandler.NicheTopics)

	youtube := s.App.Group("/youtube")
	youtube.Get("/transcript", youtubeHandler.Get)
	youtube.Get("/transcript/list", youtubeHandler.List)
	youtube.Get("/transcript/translate", youtubeHandler.Translate)

	// неизвестный маршрут перечисляет доступные
	s.App.Use(func(c fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":           "error",
			"message":          "route not found",
			"available_routes": routeList,
		})
	})
}
