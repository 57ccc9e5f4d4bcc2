package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kitbuilder587/trendgate/internal/domain"
	"github.com/kitbuilder587/trendgate/internal/metrics"
	"github.com/kitbuilder587/trendgate/internal/youtube"
)

const (
	FormatJSON = "json"
	FormatText = "text"
)

// TranscriptResponse - субтитры в одном из двух представлений:
// сегменты с таймингами либо сплошной текст.
type TranscriptResponse struct {
	VideoID      string            `json:"video_id"`
	LanguageCode string            `json:"language_code"`
	Segments     []youtube.Segment `json:"segments,omitempty"`
	Text         string            `json:"text,omitempty"`
}

type TranscriptService interface {
	// List принимает id или ссылку на ролик.
	List(ctx context.Context, video string) ([]youtube.TranscriptInfo, error)
	Get(ctx context.Context, video string, languages []string, format string) (TranscriptResponse, error)
	Translate(ctx context.Context, video, sourceLang, targetLang, format string) (TranscriptResponse, error)
}

type TranscriptServiceDeps struct {
	Provider youtube.Provider
	Logger   *zap.Logger
	Metrics  *metrics.Metrics
}

type transcriptService struct {
	provider youtube.Provider
	logger   *zap.Logger
	metrics  *metrics.Metrics
}

func NewTranscriptService(deps TranscriptServiceDeps) TranscriptService {
	return &transcriptService{
		provider: deps.Provider,
		logger:   deps.Logger,
		metrics:  deps.Metrics,
	}
}

func videoID(video string) (string, error) {
	id := youtube.ExtractVideoID(video)
	if id == "" {
		return "", domain.ErrMissingVideoID
	}
	return id, nil
}

func validateFormat(format string) (string, error) {
	switch format {
	case "", FormatJSON:
		return FormatJSON, nil
	case FormatText:
		return FormatText, nil
	default:
		return "", fmt.Errorf("%w: %q (use json or text)", domain.ErrInvalidFormat, format)
	}
}

func (s *transcriptService) observe(call func() error) error {
	start := time.Now()
	err := call()
	if s.metrics != nil {
		status := "success"
		if err != nil {
			status = "error"
		}
		s.metrics.RecordUpstreamRequest("youtube", status, time.Since(start))
	}
	return err
}

func (s *transcriptService) List(ctx context.Context, video string) ([]youtube.TranscriptInfo, error) {
	id, err := videoID(video)
	if err != nil {
		return nil, err
	}

	var infos []youtube.TranscriptInfo
	err = s.observe(func() error {
		var callErr error
		infos, callErr = s.provider.List(ctx, id)
		return callErr
	})
	if err != nil {
		return nil, err
	}
	if infos == nil {
		infos = []youtube.TranscriptInfo{}
	}
	return infos, nil
}

func (s *transcriptService) Get(ctx context.Context, video string, languages []string, format string) (TranscriptResponse, error) {
	id, err := videoID(video)
	if err != nil {
		return TranscriptResponse{}, err
	}
	format, err = validateFormat(format)
	if err != nil {
		return TranscriptResponse{}, err
	}

	cleaned := make([]string, 0, len(languages))
	for _, lang := range languages {
		if lang = strings.TrimSpace(lang); lang != "" {
			cleaned = append(cleaned, lang)
		}
	}

	var transcript youtube.Transcript
	err = s.observe(func() error {
		var callErr error
		transcript, callErr = s.provider.Fetch(ctx, id, cleaned)
		return callErr
	})
	if err != nil {
		return TranscriptResponse{}, err
	}
	return s.shape(transcript, format), nil
}

func (s *transcriptService) Translate(ctx context.Context, video, sourceLang, targetLang, format string) (TranscriptResponse, error) {
	id, err := videoID(video)
	if err != nil {
		return TranscriptResponse{}, err
	}
	sourceLang = strings.TrimSpace(sourceLang)
	targetLang = strings.TrimSpace(targetLang)
	if targetLang == "" {
		return TranscriptResponse{}, domain.ErrEmptyQuery
	}
	format, err = validateFormat(format)
	if err != nil {
		return TranscriptResponse{}, err
	}

	var transcript youtube.Transcript
	err = s.observe(func() error {
		var callErr error
		transcript, callErr = s.provider.Translate(ctx, id, sourceLang, targetLang)
		return callErr
	})
	if err != nil {
		return TranscriptResponse{}, err
	}
	return s.shape(transcript, format), nil
}

func (s *transcriptService) shape(t youtube.Transcript, format string) TranscriptResponse {
	resp := TranscriptResponse{
		VideoID:      t.VideoID,
		LanguageCode: t.LanguageCode,
	}
	if format == FormatText {
		resp.Text = t.PlainText()
		return resp
	}
	resp.Segments = t.Segments
	if resp.Segments == nil {
		resp.Segments = []youtube.Segment{}
	}
	return resp
}
