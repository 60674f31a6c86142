package health_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"assistlink-go/internal/config"
	"assistlink-go/internal/health"
)

func TestConfigStatus(t *testing.T) {
	p := health.NewProber(
		config.DeepgramConfig{APIKey: "dg"},
		config.TrelloConfig{},
	)
	status := p.ConfigStatus()
	assert.Equal(t, "configured", status.Deepgram)
	assert.Equal(t, "not configured", status.Trello)
}

func TestProbeAtStartupNeverBlocksStartup(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	p := health.NewProber(
		config.DeepgramConfig{APIKey: "dg", BaseURL: srv.URL, TimeoutSec: 1},
		config.TrelloConfig{},
	)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	// Must return without error or panic whatever the providers do.
	p.ProbeAtStartup(ctx)
}
