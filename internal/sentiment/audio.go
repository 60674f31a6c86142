package sentiment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"assistlink-go/internal/config"
	"assistlink-go/internal/logger"
	"assistlink-go/internal/types"
)

// Analyzer is the audio sentiment gateway. Every failure mode collapses to a
// neutral result; it never returns an error.
type Analyzer struct {
	cfg    config.DeepgramConfig
	client *http.Client
}

func NewAnalyzer(cfg config.DeepgramConfig) *Analyzer {
	return &Analyzer{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout()},
	}
}

// listenResponse covers both response shapes Deepgram emits: per-sentence
// sentiment under paragraphs, and flat sentiment segments with an average.
// Any structural deviation is treated as "no data", not an error.
type listenResponse struct {
	Results struct {
		Channels []struct {
			Alternatives []struct {
				Transcript string `json:"transcript"`
				Paragraphs struct {
					Paragraphs []struct {
						Sentences []struct {
							Sentiment string `json:"sentiment"`
						} `json:"sentences"`
					} `json:"paragraphs"`
				} `json:"paragraphs"`
			} `json:"alternatives"`
		} `json:"channels"`
		Sentiments struct {
			Segments []struct {
				Sentiment string `json:"sentiment"`
			} `json:"segments"`
		} `json:"sentiments"`
	} `json:"results"`
}

// AnalyzeAudio submits raw audio for sentiment inference.
func (a *Analyzer) AnalyzeAudio(ctx context.Context, audio []byte) types.SentimentResult {
	if !a.cfg.IsConfigured() {
		return neutral(0.5, "Sentiment analysis unavailable - Deepgram API key not configured")
	}

	log := logger.New().WithComponent("sentiment.audio")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		a.cfg.ListenURL()+"?sentiment=true&language=en", bytes.NewReader(audio))
	if err != nil {
		return neutral(0.5, fmt.Sprintf("Sentiment analysis error: %v", err))
	}
	req.Header.Set("Authorization", "Token "+a.cfg.APIKey)
	req.Header.Set("Content-Type", "audio/wav")

	resp, err := a.client.Do(req)
	if err != nil {
		log.WithError(err).Warn("deepgram sentiment call failed")
		return neutral(0.5, fmt.Sprintf("Sentiment analysis error: %v", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return neutral(0.5, fmt.Sprintf("Deepgram API returned status %d", resp.StatusCode))
	}

	body, _ := io.ReadAll(resp.Body)
	var parsed listenResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return neutral(0.5, fmt.Sprintf("Sentiment analysis error: %v", err))
	}

	labels := extractSentiments(parsed)
	if len(labels) == 0 {
		return neutral(0.6, "Mixed or neutral sentiment detected")
	}
	return aggregate(labels)
}

func extractSentiments(parsed listenResponse) []string {
	var labels []string
	for _, ch := range parsed.Results.Channels {
		for _, alt := range ch.Alternatives {
			for _, para := range alt.Paragraphs.Paragraphs {
				for _, s := range para.Sentences {
					label := s.Sentiment
					if label == "" {
						label = types.SentimentNeutral
					}
					labels = append(labels, label)
				}
			}
		}
	}
	if len(labels) > 0 {
		return labels
	}
	for _, seg := range parsed.Results.Sentiments.Segments {
		if seg.Sentiment != "" {
			labels = append(labels, seg.Sentiment)
		}
	}
	return labels
}

func aggregate(labels []string) types.SentimentResult {
	var neg, pos int
	for _, l := range labels {
		switch l {
		case types.SentimentNegative:
			neg++
		case types.SentimentPositive:
			pos++
		}
	}
	total := len(labels)
	if frac := float64(neg) / float64(total); frac > 0.5 {
		return types.SentimentResult{
			Sentiment:  types.SentimentNegative,
			Confidence: frac,
			Details:    fmt.Sprintf("Detected negative sentiment in %d/%d segments", neg, total),
		}
	}
	if frac := float64(pos) / float64(total); frac > 0.5 {
		return types.SentimentResult{
			Sentiment:  types.SentimentPositive,
			Confidence: frac,
			Details:    fmt.Sprintf("Detected positive sentiment in %d/%d segments", pos, total),
		}
	}
	return neutral(0.6, "Mixed or neutral sentiment detected")
}

func neutral(confidence float64, details string) types.SentimentResult {
	return types.SentimentResult{
		Sentiment:  types.SentimentNeutral,
		Confidence: confidence,
		Details:    details,
	}
}
