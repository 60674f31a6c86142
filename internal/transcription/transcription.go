// Package transcription converts audio payloads to text via Deepgram. The
// gateway never surfaces an error: unconfigured, failed, or malformed calls
// all produce an empty transcript.
package transcription

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"assistlink-go/internal/config"
	"assistlink-go/internal/logger"
)

type Client struct {
	cfg        config.DeepgramConfig
	httpClient *http.Client
}

func NewClient(cfg config.DeepgramConfig) *Client {
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout()},
	}
}

type listenResponse struct {
	Results struct {
		Channels []struct {
			Alternatives []struct {
				Transcript string `json:"transcript"`
			} `json:"alternatives"`
		} `json:"channels"`
	} `json:"results"`
}

// Transcribe posts audio to Deepgram and returns the first alternative's
// transcript from the first channel. Empty string means unintelligible or
// unavailable; callers decide what to do with that.
func (c *Client) Transcribe(ctx context.Context, audio []byte) string {
	if !c.cfg.IsConfigured() {
		return ""
	}

	log := logger.New().WithComponent("transcription")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.cfg.ListenURL()+"?model=nova-2&language=en", bytes.NewReader(audio))
	if err != nil {
		return ""
	}
	req.Header.Set("Authorization", "Token "+c.cfg.APIKey)
	req.Header.Set("Content-Type", "audio/wav")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.WithError(err).Warn("deepgram transcription call failed")
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.WithField("status", resp.StatusCode).Warn("deepgram returned non-success status")
		return ""
	}

	body, _ := io.ReadAll(resp.Body)
	var parsed listenResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return ""
	}

	if len(parsed.Results.Channels) == 0 {
		return ""
	}
	alts := parsed.Results.Channels[0].Alternatives
	if len(alts) == 0 {
		return ""
	}
	return alts[0].Transcript
}
