// Package youtube достаёт субтитры роликов через страницу просмотра:
// плеерный конфиг несёт список дорожек, дорожка отдаётся в формате json3.
package youtube

import (
	"context"
	"errors"
	"net/url"
	"strings"
)

var (
	ErrRequestFailed       = errors.New("youtube request failed")
	ErrVideoUnavailable    = errors.New("video unavailable")
	ErrTranscriptsDisabled = errors.New("transcripts are disabled for this video")
	ErrNoTranscript        = errors.New("no transcript in requested language")
	ErrNotTranslatable     = errors.New("transcript is not translatable")
)

// TranscriptInfo описывает одну доступную дорожку субтитров.
type TranscriptInfo struct {
	Language       string `json:"language"`
	LanguageCode   string `json:"language_code"`
	IsGenerated    bool   `json:"is_generated"`
	IsTranslatable bool   `json:"is_translatable"`
}

// Segment - одна реплика с таймингом в секундах.
type Segment struct {
	Text     string  `json:"text"`
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
}

type Transcript struct {
	VideoID      string    `json:"video_id"`
	LanguageCode string    `json:"language_code"`
	Segments     []Segment `json:"segments"`
}

// PlainText склеивает реплики в сплошной текст.
func (t Transcript) PlainText() string {
	parts := make([]string, 0, len(t.Segments))
	for _, s := range t.Segments {
		if s.Text != "" {
			parts = append(parts, s.Text)
		}
	}
	return strings.Join(parts, " ")
}

type Provider interface {
	List(ctx context.Context, videoID string) ([]TranscriptInfo, error)
	// Fetch выбирает первую доступную дорожку из languages; пустой список
	// означает любую дорожку.
	Fetch(ctx context.Context, videoID string, languages []string) (Transcript, error)
	// Translate переводит с указанной дорожки; пустой sourceLang означает
	// первую translatable-дорожку.
	Translate(ctx context.Context, videoID, sourceLang, targetLang string) (Transcript, error)
}

// ExtractVideoID принимает голый id, youtu.be и watch-ссылки.
func ExtractVideoID(input string) string {
	input = strings.TrimSpace(input)
	if input == "" {
		return ""
	}
	if !strings.Contains(input, "/") && !strings.Contains(input, "?") {
		return input
	}

	u, err := url.Parse(input)
	if err != nil {
		return ""
	}
	if strings.HasSuffix(u.Host, "youtu.be") {
		return strings.Trim(u.Path, "/")
	}
	if v := u.Query().Get("v"); v != "" {
		return v
	}
	// формы /embed/ID и /shorts/ID
	for _, prefix := range []string{"/embed/", "/shorts/", "/v/"} {
		if strings.HasPrefix(u.Path, prefix) {
			return strings.Trim(strings.TrimPrefix(u.Path, prefix), "/")
		}
	}
	return ""
}
