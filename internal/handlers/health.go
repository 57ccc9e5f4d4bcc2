package handlers

import (
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/kitbuilder587/trendgate/internal/ratelimit"
)

type HealthHandler struct {
	limiter *ratelimit.Limiter
}

func NewHealthHandler(limiter *ratelimit.Limiter) *HealthHandler {
	return &HealthHandler{limiter: limiter}
}

// Health всегда отвечает 200 и не проходит через лимитер.
func (h *HealthHandler) Health(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "healthy",
		"time":   time.Now().UTC().Format(time.RFC3339),
		"rate_limit_status": fiber.Map{
			"max_calls":      h.limiter.Limit(),
			"window_seconds": int(h.limiter.Window().Seconds()),
			"current_calls":  h.limiter.CurrentCalls(),
		},
	})
}
