package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	watchPath = "/watch"

	captionTracksMarker = `"captionTracks":`

	defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

type Config struct {
	BaseURL string
	Timeout time.Duration
}

type Client struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

func NewClient(cfg Config, logger *zap.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://www.youtube.com"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 15 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		client:  &http.Client{Timeout: cfg.Timeout},
		logger:  logger,
	}
}

// captionTrack - элемент плеерного конфига внутри HTML страницы просмотра.
type captionTrack struct {
	BaseURL string `json:"baseUrl"`
	Name    struct {
		SimpleText string `json:"simpleText"`
	} `json:"name"`
	LanguageCode   string `json:"languageCode"`
	Kind           string `json:"kind"`
	IsTranslatable bool   `json:"isTranslatable"`
}

func (t captionTrack) generated() bool { return t.Kind == "asr" }

func (c *Client) List(ctx context.Context, videoID string) ([]TranscriptInfo, error) {
	tracks, err := c.captionTracks(ctx, videoID)
	if err != nil {
		return nil, err
	}

	infos := make([]TranscriptInfo, 0, len(tracks))
	for _, track := range tracks {
		infos = append(infos, TranscriptInfo{
			Language:       track.Name.SimpleText,
			LanguageCode:   track.LanguageCode,
			IsGenerated:    track.generated(),
			IsTranslatable: track.IsTranslatable,
		})
	}
	return infos, nil
}

func (c *Client) Fetch(ctx context.Context, videoID string, languages []string) (Transcript, error) {
	tracks, err := c.captionTracks(ctx, videoID)
	if err != nil {
		return Transcript{}, err
	}

	track, err := pickTrack(tracks, languages)
	if err != nil {
		return Transcript{}, err
	}
	return c.fetchTrack(ctx, videoID, track, "")
}

func (c *Client) Translate(ctx context.Context, videoID, sourceLang, targetLang string) (Transcript, error) {
	tracks, err := c.captionTracks(ctx, videoID)
	if err != nil {
		return Transcript{}, err
	}

	// переводить можно только с translatable-дорожки
	var source *captionTrack
	for i := range tracks {
		if !tracks[i].IsTranslatable {
			continue
		}
		if sourceLang != "" && !strings.EqualFold(tracks[i].LanguageCode, sourceLang) {
			continue
		}
		source = &tracks[i]
		break
	}
	if source == nil {
		if sourceLang != "" {
			return Transcript{}, fmt.Errorf("%w: no translatable %q track for %s", ErrNotTranslatable, sourceLang, videoID)
		}
		return Transcript{}, fmt.Errorf("%w: video %s", ErrNotTranslatable, videoID)
	}
	return c.fetchTrack(ctx, videoID, *source, targetLang)
}

// pickTrack выбирает дорожку по списку предпочтений; ручные субтитры
// приоритетнее сгенерированных при равном языке.
func pickTrack(tracks []captionTrack, languages []string) (captionTrack, error) {
	if len(languages) == 0 {
		return tracks[0], nil
	}
	for _, lang := range languages {
		var generated *captionTrack
		for i, track := range tracks {
			if !strings.EqualFold(track.LanguageCode, lang) {
				continue
			}
			if !track.generated() {
				return track, nil
			}
			if generated == nil {
				generated = &tracks[i]
			}
		}
		if generated != nil {
			return *generated, nil
		}
	}
	return captionTrack{}, fmt.Errorf("%w: wanted %v", ErrNoTranscript, languages)
}

// captionTracks выкусывает массив дорожек из HTML страницы просмотра.
func (c *Client) captionTracks(ctx context.Context, videoID string) ([]captionTrack, error) {
	params := url.Values{}
	params.Set("v", videoID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+watchPath+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", defaultUserAgent)
	req.Header.Set("Accept-Language", "en-US")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read watch page: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrRequestFailed, resp.StatusCode)
	}

	page := string(body)
	if strings.Contains(page, `"playabilityStatus":{"status":"ERROR"`) {
		return nil, fmt.Errorf("%w: %s", ErrVideoUnavailable, videoID)
	}

	idx := strings.Index(page, captionTracksMarker)
	if idx < 0 {
		return nil, fmt.Errorf("%w: %s", ErrTranscriptsDisabled, videoID)
	}

	var tracks []captionTrack
	decoder := json.NewDecoder(strings.NewReader(page[idx+len(captionTracksMarker):]))
	if err := decoder.Decode(&tracks); err != nil {
		return nil, fmt.Errorf("parse caption tracks: %w", err)
	}
	if len(tracks) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrTranscriptsDisabled, videoID)
	}
	return tracks, nil
}

// fetchTrack качает дорожку в формате json3 и разворачивает events в сегменты.
func (c *Client) fetchTrack(ctx context.Context, videoID string, track captionTrack, tlang string) (Transcript, error) {
	trackURL := track.BaseURL
	if strings.HasPrefix(trackURL, "/") {
		trackURL = c.baseURL + trackURL
	}
	trackURL += "&fmt=json3"
	if tlang != "" {
		trackURL += "&tlang=" + url.QueryEscape(tlang)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, trackURL, nil)
	if err != nil {
		return Transcript{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", defaultUserAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return Transcript{}, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return Transcript{}, fmt.Errorf("%w: track status %d", ErrRequestFailed, resp.StatusCode)
	}

	var parsed struct {
		Events []struct {
			TStartMs    float64 `json:"tStartMs"`
			DDurationMs float64 `json:"dDurationMs"`
			Segs        []struct {
				UTF8 string `json:"utf8"`
			} `json:"segs"`
		} `json:"events"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return Transcript{}, fmt.Errorf("parse track: %w", err)
	}

	lang := track.LanguageCode
	if tlang != "" {
		lang = tlang
	}

	segments := make([]Segment, 0, len(parsed.Events))
	for _, event := range parsed.Events {
		var sb strings.Builder
		for _, seg := range event.Segs {
			sb.WriteString(seg.UTF8)
		}
		text := strings.TrimSpace(sb.String())
		if text == "" {
			continue
		}
		segments = append(segments, Segment{
			Text:     text,
			Start:    event.TStartMs / 1000,
			Duration: event.DDurationMs / 1000,
		})
	}

	return Transcript{
		VideoID:      videoID,
		LanguageCode: lang,
		Segments:     segments,
	}, nil
}
