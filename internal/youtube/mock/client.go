package mock

import (
	"context"

	"github.com/kitbuilder587/trendgate/internal/youtube"
)

// Client - заглушка транскрипт-провайдера для тестов.
type Client struct {
	infos      []youtube.TranscriptInfo
	transcript youtube.Transcript
	err        error

	ListCalls      []string
	FetchCalls     [][]string
	TranslateCalls []string
}

func New() *Client {
	return &Client{}
}

func (c *Client) WithInfos(infos []youtube.TranscriptInfo) *Client {
	c.infos = infos
	return c
}

func (c *Client) WithTranscript(t youtube.Transcript) *Client {
	c.transcript = t
	return c
}

func (c *Client) WithError(err error) *Client {
	c.err = err
	return c
}

func (c *Client) List(ctx context.Context, videoID string) ([]youtube.TranscriptInfo, error) {
	c.ListCalls = append(c.ListCalls, videoID)
	if c.err != nil {
		return nil, c.err
	}
	return c.infos, nil
}

func (c *Client) Fetch(ctx context.Context, videoID string, languages []string) (youtube.Transcript, error) {
	c.FetchCalls = append(c.FetchCalls, append([]string{videoID}, languages...))
	if c.err != nil {
		return youtube.Transcript{}, c.err
	}
	return c.transcript, nil
}

func (c *Client) Translate(ctx context.Context, videoID, sourceLang, targetLang string) (youtube.Transcript, error) {
	c.TranslateCalls = append(c.TranslateCalls, videoID+":"+sourceLang+":"+targetLang)
	if c.err != nil {
		return youtube.Transcript{}, c.err
	}
	return c.transcript, nil
}
