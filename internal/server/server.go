// Package server собирает fiber-приложение: middleware, маршруты
// и жизненный цикл.
package server

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"go.uber.org/zap"

	"github.com/kitbuilder587/trendgate/internal/config"
	"github.com/kitbuilder587/trendgate/internal/metrics"
	"github.com/kitbuilder587/trendgate/internal/ratelimit"
	"github.com/kitbuilder587/trendgate/internal/service"
)

type Deps struct {
	Config  *config.Config
	Logger  *zap.Logger
	Metrics *metrics.Metrics
	Limiter *ratelimit.Limiter

	Trends       service.TrendsService
	Search       service.SearchService
	Autocomplete service.AutocompleteService
	Topics       service.TopicService
	Transcripts  service.TranscriptService
}

type Server struct {
	App *fiber.App

	cfg     *config.Config
	logger  *zap.Logger
	metrics *metrics.Metrics
	limiter *ratelimit.Limiter
}

// bypassPaths не проходят через лимитер: health и метрики должны
// отвечать даже при выбранной квоте.
var bypassPaths = map[string]bool{
	"/":        true,
	"/health":  true,
	"/metrics": true,
}

func New(deps Deps) *Server {
	s := &Server{
		cfg:     deps.Config,
		logger:  deps.Logger,
		metrics: deps.Metrics,
		limiter: deps.Limiter,
	}

	app := fiber.New(fiber.Config{
		AppName: "trendgate",
		ErrorHandler: func(c fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			message := "internal server error"
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
				message = e.Message
			}
			return c.Status(code).JSON(fiber.Map{
				"status":  "error",
				"message": message,
			})
		},
	})

	app.Use(recover.New())
	app.Use(s.observe)
	app.Use(s.rateLimit)

	s.App = app
	s.registerRoutes(deps)
	return s
}

// observe пишет структурный лог запроса и HTTP-метрики.
func (s *Server) observe(c fiber.Ctx) error {
	start := time.Now()
	if s.metrics != nil {
		s.metrics.IncRequestsInFlight()
		defer s.metrics.DecRequestsInFlight()
	}

	err := c.Next()

	status := c.Response().StatusCode()
	if err != nil {
		if e, ok := err.(*fiber.Error); ok {
			status = e.Code
		} else {
			status = fiber.StatusInternalServerError
		}
	}

	duration := time.Since(start)
	path := c.Path()
	if s.metrics != nil {
		s.metrics.RecordHTTPRequest(path, strconv.Itoa(status), duration)
	}
	s.logger.Info("request handled",
		zap.String("method", c.Method()),
		zap.String("path", path),
		zap.Int("status", status),
		zap.Duration("duration", duration),
	)
	return err
}

func (s *Server) rateLimit(c fiber.Ctx) error {
	if bypassPaths[c.Path()] {
		return c.Next()
	}

	if !s.limiter.Allow() {
		if s.metrics != nil {
			s.metrics.RecordRateLimitRejection()
		}
		return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
			"status":  "error",
			"message": "rate limit exceeded, try again later",
		})
	}
	return c.Next()
}

func (s *Server) Listen() error {
	addr := ":" + strconv.Itoa(s.cfg.Server.Port)
	s.logger.Info("starting server", zap.String("addr", addr))
	return s.App.Listen(addr)
}

func (s *Server) Shutdown() error {
	return s.App.Shutdown()
}
