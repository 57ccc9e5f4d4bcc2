package handlers

import (
	"github.com/gofiber/fiber/v3"
)

// success заворачивает данные в стандартный конверт. note присутствует
// только у деградировавших ответов.
func success(c fiber.Ctx, endpoint string, metadata fiber.Map, data any) error {
	return successWithNote(c, endpoint, metadata, data, "")
}

func successWithNote(c fiber.Ctx, endpoint string, metadata fiber.Map, data any, note string) error {
	body := fiber.Map{
		"status":   "success",
		"endpoint": endpoint,
		"metadata": metadata,
		"data":     data,
	}
	if note != "" {
		body["note"] = note
	}
	return c.JSON(body)
}

// badRequest называет проблемный параметр и ожидаемый формат.
func badRequest(c fiber.Ctx, param, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error":   param,
		"message": message,
	})
}

// serverError не протаскивает наружу внутренние детали.
func serverError(c fiber.Ctx, message string) error {
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"status":  "error",
		"message": message,
	})
}
