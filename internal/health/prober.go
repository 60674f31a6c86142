// Package health probes the external integrations for reachability at
// startup. The probe retries transient failures; per-turn gateway calls do
// not, so this is the only place retry logic belongs.
package health

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"

	"assistlink-go/internal/config"
	"assistlink-go/internal/logger"
)

type Status struct {
	Deepgram string `json:"deepgram"`
	Trello   string `json:"trello"`
}

type Prober struct {
	deepgram config.DeepgramConfig
	trello   config.TrelloConfig
	client   *http.Client
}

func NewProber(dg config.DeepgramConfig, tr config.TrelloConfig) *Prober {
	return &Prober{
		deepgram: dg,
		trello:   tr,
		client:   &http.Client{Timeout: 5 * time.Second},
	}
}

// ConfigStatus reports which integrations carry credentials, without any
// network traffic.
func (p *Prober) ConfigStatus() Status {
	return Status{
		Deepgram: configured(p.deepgram.IsConfigured()),
		Trello:   configured(p.trello.IsConfigured()),
	}
}

// ProbeAtStartup checks reachability of each configured integration and
// logs the outcome. Failures are informational only; the service starts
// regardless, since every gateway degrades gracefully.
func (p *Prober) ProbeAtStartup(ctx context.Context) {
	log := logger.New().WithComponent("health")

	if p.deepgram.IsConfigured() {
		if err := p.probe(ctx, p.deepgram.BaseURL); err != nil {
			log.WithError(err).Warn("deepgram unreachable, voice turns will degrade")
		} else {
			log.Info("deepgram reachable")
		}
	}
	if p.trello.IsConfigured() {
		if err := p.probe(ctx, p.trello.BaseURL); err != nil {
			log.WithError(err).Warn("trello unreachable, tickets will use local ids")
		} else {
			log.Info("trello reachable")
		}
	}
}

func (p *Prober) probe(ctx context.Context, baseURL string) error {
	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = 15 * time.Second

	op := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL, nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		resp, err := p.client.Do(req)
		if err != nil {
			return err
		}
		resp.Body.Close()
		if resp.StatusCode >= 500 {
			return fmt.Errorf("server error: status %d", resp.StatusCode)
		}
		return nil
	}
	return backoff.Retry(op, backoff.WithContext(bo, ctx))
}

func configured(ok bool) string {
	if ok {
		return "configured"
	}
	return "not configured"
}
