package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"github.com/kitbuilder587/trendgate/internal/service"
	"github.com/kitbuilder587/trendgate/internal/youtube"
)

type YouTubeHandler struct {
	service service.TranscriptService
	logger  *zap.Logger
}

func NewYouTubeHandler(s service.TranscriptService, logger *zap.Logger) *YouTubeHandler {
	return &YouTubeHandler{service: s, logger: logger}
}

// respondYouTubeError различает ошибки ролика (404) и ошибки валидации/сервера.
func (h *YouTubeHandler) respondYouTubeError(c fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, youtube.ErrVideoUnavailable),
		errors.Is(err, youtube.ErrTranscriptsDisabled),
		errors.Is(err, youtube.ErrNoTranscript),
		errors.Is(err, youtube.ErrNotTranslatable):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":  "error",
			"message": err.Error(),
		})
	default:
		return respondError(c, err, "video_id")
	}
}

func (h *YouTubeHandler) List(c fiber.Ctx) error {
	video := c.Query("video_id", "")

	infos, err := h.service.List(c.Context(), video)
	if err != nil {
		return h.respondYouTubeError(c, err)
	}

	return success(c, "transcript_list", fiber.Map{"video_id": video}, infos)
}

func (h *YouTubeHandler) Get(c fiber.Ctx) error {
	video := c.Query("video_id", "")
	languages := splitCSV(c.Query("languages", ""))
	format := c.Query("format", "")

	resp, err := h.service.Get(c.Context(), video, languages, format)
	if err != nil {
		return h.respondYouTubeError(c, err)
	}

	return success(c, "transcript", fiber.Map{
		"video_id":  video,
		"languages": languages,
	}, resp)
}

func (h *YouTubeHandler) Translate(c fiber.Ctx) error {
	video := c.Query("video_id", "")
	sourceLang := c.Query("source_lang", "")
	targetLang := c.Query("target_lang", "")
	format := c.Query("format", "")

	if targetLang == "" {
		return badRequest(c, "target_lang", "target_lang is required")
	}

	resp, err := h.service.Translate(c.Context(), video, sourceLang, targetLang, format)
	if err != nil {
		return h.respondYouTubeError(c, err)
	}

	return success(c, "transcript_translate", fiber.Map{
		"video_id":    video,
		"source_lang": sourceLang,
		"target_lang": targetLang,
	}, resp)
}
